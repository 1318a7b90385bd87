// ABOUTME: Tests for resolving name candidates to clients
// ABOUTME: Verifies the exact pass runs before the substring fallback and results are deduplicated
package assistant

import (
	"testing"

	"github.com/harperreed/inscrm/models"
	"github.com/stretchr/testify/assert"
)

var matcherClients = []models.Client{
	{ID: "c1", FirstName: "Jamal", LastName: "Haija"},
	{ID: "c2", FirstName: "Sarah", LastName: "Johnson"},
	{ID: "c3", FirstName: "Sarah", LastName: "Mitchell"},
	{ID: "c4", FirstName: "Jamala", LastName: "Brooks"},
	{ID: "c5", FirstName: "John", LastName: "Sarahson"},
}

func ids(clients []models.Client) []string {
	var out []string
	for _, c := range clients {
		out = append(out, c.ID)
	}
	return out
}

func TestMatchClients(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       []string
	}{
		{"single token exact first name wins over substring", []string{"Jamal"}, []string{"c1"}},
		{"single token matches first or last", []string{"haija"}, []string{"c1"}},
		{"two tokens need first and last", []string{"Sarah Johnson"}, []string{"c2"}},
		{"two tokens wrong pairing does not match exactly", []string{"Sarah Haija"}, nil},
		{"ambiguous first name", []string{"Sarah"}, []string{"c2", "c3"}},
		{"substring fallback", []string{"Mitch"}, []string{"c3"}},
		{"fallback across first and last", []string{"al Hai"}, []string{"c1"}},
		{"dedup across candidates", []string{"Sarah", "Sarah Mitchell", "Johnson"}, []string{"c2", "c3"}},
		{"exact in any candidate suppresses fallback", []string{"Jam", "Haija"}, []string{"c1"}},
		{"no candidates", nil, nil},
		{"nothing matches", []string{"Zed"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(MatchClients(matcherClients, tt.candidates)))
		})
	}
}
