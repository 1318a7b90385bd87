// ABOUTME: Tests for remote request construction
// ABOUTME: Message order, history window, and the named-client data snapshot
package chat

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harperreed/inscrm/llm"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDataContextNamedClient(t *testing.T) {
	s := store.NewSeeded(refTime)

	dc, err := BuildDataContext(s, "Tell me about Jamal Haija", refTime)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-07", dc.Today)
	assert.Equal(t, 11, dc.Summary.TotalClients)
	assert.Equal(t, 5, dc.Summary.ExpiringSoon)
	assert.Equal(t, 3, dc.Summary.TasksDueToday)

	require.NotNil(t, dc.Client)
	assert.Equal(t, "CL-1001", dc.Client.Client.ID)
	assert.Len(t, dc.Client.Policies, 2)
	assert.Equal(t, 2, dc.Client.Client.ActivePolicies)
}

func TestBuildDataContextAmbiguousOrMissingName(t *testing.T) {
	s := store.NewSeeded(refTime)

	dc, err := BuildDataContext(s, "Tell me about Sarah", refTime)
	require.NoError(t, err)
	assert.Nil(t, dc.Client)

	dc, err = BuildDataContext(s, "how is business?", refTime)
	require.NoError(t, err)
	assert.Nil(t, dc.Client)
}

func TestBuildRequestOrder(t *testing.T) {
	s := newSession(ModeRemote, fixedClock)
	s.Append(models.SenderUser, "one")
	s.Append(models.SenderBot, "two")
	s.Append(models.SenderUser, "three")
	s.Append(models.SenderBot, "four")

	dc := &DataContext{Today: "2025-03-07"}
	req, err := BuildRequest("gpt-test", 0.2, dc, s.Messages(), "five")
	require.NoError(t, err)

	assert.Equal(t, "gpt-test", req.Model)
	assert.Equal(t, 0.2, req.Temperature)
	require.Len(t, req.Messages, 6)

	assert.Equal(t, llm.Message{Role: llm.RoleSystem, Content: SystemInstruction}, req.Messages[0])
	assert.Equal(t, llm.RoleSystem, req.Messages[1].Role)
	require.True(t, strings.HasPrefix(req.Messages[1].Content, "CRM data (JSON): "))

	var decoded DataContext
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(req.Messages[1].Content, "CRM data (JSON): ")), &decoded))
	assert.Equal(t, "2025-03-07", decoded.Today)

	assert.Equal(t, []llm.Message{
		{Role: llm.RoleAssistant, Content: "two"},
		{Role: llm.RoleUser, Content: "three"},
		{Role: llm.RoleAssistant, Content: "four"},
		{Role: llm.RoleUser, Content: "five"},
	}, req.Messages[2:])
}

func TestBuildRequestShortHistory(t *testing.T) {
	s := newSession(ModeRemote, fixedClock)

	req, err := BuildRequest("m", 0.7, &DataContext{}, s.Messages(), "hi")
	require.NoError(t, err)
	require.Len(t, req.Messages, 4)
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: WelcomeText}, req.Messages[2])
}
