// Package domain holds the core types of the maitred dialog engine:
// the per-conversation session state, the reservation slots, the dialog
// execution state, recognition results and outbound replies.
//
// It has no dependencies on adapters or collaborators; every other
// package in the module speaks in terms of these types.
package domain
