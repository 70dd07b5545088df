// Package session coordinates access to conversation state. The
// Manager guarantees that no two turns for the same conversation
// interleave their reads and writes: turns are serialized per
// conversation ID, while different conversations proceed fully in
// parallel. An optional DistributedLocker extends the guarantee across
// replicas.
package session
