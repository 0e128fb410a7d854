package platform

// Package platform contains OS integration glue: reading attachment files
// with content sniffing, building map search links and opening URLs with
// the system handler.
