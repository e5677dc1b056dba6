package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/swemas/internal/agent"
	"github.com/slok/swemas/internal/llm"
)

func TestConversationAppendDoesNotMutate(t *testing.T) {
	assert := assert.New(t)

	c1 := agent.NewConversation(llm.UserMessage("a"))
	c2 := c1.Append(llm.UserMessage("b"))
	c3 := c1.Append(llm.UserMessage("c"))

	assert.Equal(1, c1.Len())
	assert.Equal(2, c2.Len())
	assert.Equal(2, c3.Len())

	last, ok := c2.Last()
	assert.True(ok)
	assert.Equal("b", last.Content)

	last, ok = c3.Last()
	assert.True(ok)
	assert.Equal("c", last.Content)

	msgs := c2.Messages()
	msgs[0].Content = "changed"
	assert.Equal("a", c2.Messages()[0].Content)

	_, ok = agent.NewConversation().Last()
	assert.False(ok)
}
