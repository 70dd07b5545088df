// Package ports defines the interfaces between the dialog core and the
// outside world: session persistence, distributed locking, and the
// external collaborators (recognizer, knowledge base, speech).
//
// The core consumes these contracts; adapters implement them. This
// keeps the engine embeddable in any host (CLI, HTTP, MCP) without
// leaking transport or vendor detail into the dialog logic.
package ports
