package form

// Package form owns the donation form state machine: field values and
// validation, the touched set, the pending image attachment, and the
// submission lifecycle (Idle -> Submitting -> Succeeded/Failed). It drives a
// gateway.Gateway and is independent of any UI toolkit; the view subscribes
// through SetUpdateCallback and renders Snapshot values.
