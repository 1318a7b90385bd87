// ABOUTME: Tests for entity extraction from chat messages
// ABOUTME: Covers names, policy types, date phrases, topic flags, and custom vocabularies
package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractClientNames(t *testing.T) {
	tests := []struct {
		msg  string
		want []string
	}{
		{"find client Jamal", []string{"Jamal"}},
		{"Tell me about Sarah Johnson", []string{"Sarah Johnson"}},
		{"show policies for Jamal Haija's household", []string{"Jamal Haija"}},
		{"emails from Michael Chen and to Priya", []string{"Michael Chen", "Priya"}},
		{"Find Client Jamal", []string{"Jamal"}},
		{"Tell me about Client Jamal Haija", []string{"Jamal Haija"}},
		{"email Customer Priya about Priya", []string{"Priya"}},
		{"find client jamal", nil},
		{"how many clients do we have", nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := Extract(tt.msg)
			assert.Equal(t, tt.want, got.ClientNames)
		})
	}
}

func TestExtractPolicyTypes(t *testing.T) {
	tests := []struct {
		msg  string
		want []string
	}{
		{"list home insurance policies", []string{"home"}},
		{"any Commercial Property policies expiring?", []string{"commercial_property"}},
		{"professional  liability coverage and auto policy", []string{"professional_liability", "auto"}},
		{"car insurance quotes", []string{"auto"}},
		{"home sweet home", nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.msg).PolicyTypes)
		})
	}
}

func TestExtractDatePhrases(t *testing.T) {
	tests := []struct {
		msg  string
		want []string
	}{
		{"what is due by tomorrow", []string{"tomorrow"}},
		{"renewals in the next 30 days", []string{"the next 30 days"}},
		{"tasks due on Friday", []string{"Friday"}},
		{"calls since 2025-03-01 and before March 7th", []string{"2025-03-01", "March 7th"}},
		{"policies ending by 04/01/2025", []string{"04/01/2025"}},
		{"in the office", nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.msg).DatePhrases)
		})
	}
}

func TestExtractTopics(t *testing.T) {
	e := Extract("Which clients have overdue tasks and open opportunities?")
	assert.True(t, e.Has(TopicClient))
	assert.True(t, e.Has(TopicTask))
	assert.True(t, e.Has(TopicOpportunity))
	assert.False(t, e.Has(TopicPolicy))
	assert.True(t, e.Found())

	none := Extract("hello there")
	assert.False(t, none.Found())
	assert.Empty(t, none.ClientNames)
	assert.Empty(t, none.PolicyTypes)
	assert.Empty(t, none.DatePhrases)
}

func TestCustomVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	v.NameTriggers = append(v.NameTriggers, "ring")
	v.PolicyTypes = append(v.PolicyTypes, "pet")
	v.TopicKeywords[TopicTask] = append(v.TopicKeywords[TopicTask], "chore")

	e, err := NewExtractor(v)
	require.NoError(t, err)

	got := e.Extract("ring Olivia about her pet insurance chore")
	assert.Equal(t, []string{"Olivia"}, got.ClientNames)
	assert.Equal(t, []string{"pet"}, got.PolicyTypes)
	assert.True(t, got.Has(TopicTask))

	// The default extractor is untouched.
	assert.Empty(t, Extract("ring Olivia").ClientNames)
}

func TestNewExtractorRejectsEmptyVocabulary(t *testing.T) {
	_, err := NewExtractor(Vocabulary{})
	assert.Error(t, err)
}
