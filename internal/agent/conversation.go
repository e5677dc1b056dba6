package agent

import "github.com/slok/swemas/internal/llm"

// Conversation is an append only sequence of messages. Appending returns a new
// conversation and never mutates the receiver.
type Conversation struct {
	msgs []llm.Message
}

// NewConversation returns a conversation seeded with the given messages.
func NewConversation(msgs ...llm.Message) Conversation {
	return Conversation{msgs: append([]llm.Message{}, msgs...)}
}

// Append returns a new conversation with the messages added at the end.
func (c Conversation) Append(msgs ...llm.Message) Conversation {
	n := make([]llm.Message, 0, len(c.msgs)+len(msgs))
	n = append(n, c.msgs...)
	n = append(n, msgs...)
	return Conversation{msgs: n}
}

// Messages returns a copy of the conversation messages.
func (c Conversation) Messages() []llm.Message {
	return append([]llm.Message{}, c.msgs...)
}

func (c Conversation) Len() int { return len(c.msgs) }

// Last returns the last message of the conversation, if any.
func (c Conversation) Last() (llm.Message, bool) {
	if len(c.msgs) == 0 {
		return llm.Message{}, false
	}
	return c.msgs[len(c.msgs)-1], true
}
