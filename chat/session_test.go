// ABOUTME: Tests for chat session state
// ABOUTME: Welcome and clear semantics, ordering, and flag handling
package chat

import (
	"sort"
	"testing"
	"time"

	"github.com/harperreed/inscrm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return refTime }

func TestNewSessionStartsWithWelcome(t *testing.T) {
	s := newSession(ModeLocal, fixedClock)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.SenderBot, msgs[0].Sender)
	assert.Equal(t, WelcomeText, msgs[0].Content)
	assert.False(t, s.IsOpen())
	assert.False(t, s.Processing())
	assert.Equal(t, ModeLocal, s.Mode())
}

func TestClearLeavesSingleGreeting(t *testing.T) {
	s := newSession(ModeLocal, fixedClock)
	s.Append(models.SenderUser, "hello")
	s.Append(models.SenderBot, "hi")
	require.Equal(t, 3, s.Len())

	s.Clear()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, GreetingText, msgs[0].Content)
	assert.Equal(t, models.SenderBot, msgs[0].Sender)
}

func TestMessageIDsSortInInsertionOrder(t *testing.T) {
	// Same timestamp for every message; monotonic entropy keeps order.
	s := newSession(ModeLocal, fixedClock)
	for i := 0; i < 50; i++ {
		s.Append(models.SenderUser, "msg")
	}

	msgs := s.Messages()
	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	assert.True(t, sort.StringsAreSorted(ids))

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := newSession(ModeLocal, fixedClock)
	msgs := s.Messages()
	msgs[0].Content = "changed"

	assert.Equal(t, WelcomeText, s.Messages()[0].Content)
}

func TestToggleAndMode(t *testing.T) {
	s := NewSession("")
	assert.Equal(t, ModeLocal, s.Mode())

	assert.True(t, s.Toggle())
	assert.False(t, s.Toggle())

	s.SetMode(ModeRemote)
	assert.Equal(t, ModeRemote, s.Mode())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("remote")
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, m)

	_, err = ParseMode("hybrid")
	assert.Error(t, err)
}
