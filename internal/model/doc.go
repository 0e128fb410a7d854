package model

// Package model defines domain data structures used across the app: donations
// returned by the API, form values, the pending image attachment, and the
// submission status enum. Structures are plain values so the UI can render
// snapshots of them without touching controller state.
