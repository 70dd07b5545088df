package domain

// DialogStatus defines the current mode of the slot-filling dialog.
type DialogStatus string

const (
	// DialogEmpty means no dialog has been started for the conversation.
	DialogEmpty DialogStatus = "empty"
	// DialogWaiting means a prompt has been issued and the dialog is
	// suspended until the next inbound message.
	DialogWaiting DialogStatus = "waiting"
	// DialogComplete means the dialog ran to its final step.
	DialogComplete DialogStatus = "complete"
	// DialogCancelled means the dialog was reset defensively.
	DialogCancelled DialogStatus = "cancelled"
)

// Step identifies a position in the fixed waterfall.
// Order is significant: the sequencer walks steps in declaration order.
type Step string

const (
	StepTime      Step = "time"
	StepPartySize Step = "party_size"
	StepName      Step = "name"
	StepConfirm   Step = "confirm"
	StepDone      Step = "done"
)

// DialogState tracks where the waterfall is suspended. It is owned
// exclusively by the sequencer; hosts and the turn controller only read
// Status to branch.
type DialogState struct {
	Status DialogStatus `json:"status"`

	// Step is the step awaiting a reply while Status == DialogWaiting.
	Step Step `json:"step,omitempty"`

	// Confirmed records the answer given at the confirmation step, so
	// the final step can branch on it.
	Confirmed bool `json:"confirmed,omitempty"`
}

// Active reports whether the dialog is suspended awaiting user input.
func (d *DialogState) Active() bool { return d.Status == DialogWaiting }

// Reset discards the execution state, returning the dialog to empty.
// The reservation record is deliberately left untouched.
func (d *DialogState) Reset() {
	d.Status = DialogEmpty
	d.Step = ""
	d.Confirmed = false
}
