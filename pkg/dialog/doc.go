// Package dialog implements the reservation waterfall: a fixed,
// ordered sequence of slot prompts with skip-if-present semantics, a
// confirmation step and a terminal step, driven by a sequencer that
// suspends between turns by recording its position in the persisted
// conversation state.
package dialog
