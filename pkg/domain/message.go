package domain

// InputKind distinguishes a regular message from the channel's
// join/setup signal.
type InputKind string

const (
	// KindMessage is a normal user utterance.
	KindMessage InputKind = "message"
	// KindJoin is the conversation-update signal sent when a user
	// first joins the channel. It triggers the welcome message only.
	KindJoin InputKind = "join"
)

// TurnInput is one inbound event for a conversation.
type TurnInput struct {
	ConversationID string    `json:"conversation_id"`
	Text           string    `json:"text,omitempty"`
	Kind           InputKind `json:"kind"`

	// Locale is an optional BCP 47 language tag used when generating
	// speech markup for the replies.
	Locale string `json:"locale,omitempty"`
}

// Message creates a plain message input.
func Message(conversationID, text string) TurnInput {
	return TurnInput{ConversationID: conversationID, Text: text, Kind: KindMessage}
}

// Join creates a join/setup input.
func Join(conversationID string) TurnInput {
	return TurnInput{ConversationID: conversationID, Kind: KindJoin}
}

// Card is a fixed multi-item visual reply (e.g. the menu). Hosts that
// cannot render cards fall back to Reply.Text.
type Card struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Reply is one outbound message produced during a turn. Speak carries
// optional speech markup; it is a pure formatting transform of Text and
// may be empty when no speech generator is configured.
type Reply struct {
	Text  string `json:"text"`
	Speak string `json:"speak,omitempty"`
	Card  *Card  `json:"card,omitempty"`
}

// TextReply builds a plain text reply.
func TextReply(text string) Reply { return Reply{Text: text} }
