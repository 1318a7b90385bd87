// ABOUTME: Resolves extracted name candidates to client records
// ABOUTME: Exact token matching across all candidates first, substring fallback second
package assistant

import (
	"strings"

	"github.com/harperreed/inscrm/models"
)

// MatchClients resolves candidates to clients. The exact pass runs over every
// candidate before the substring fallback is considered; the fallback only
// runs when the exact pass found nobody. Results are deduplicated by ID in
// first-seen order. An empty result means no client was found.
func MatchClients(clients []models.Client, candidates []string) []models.Client {
	var out []models.Client
	seen := make(map[string]bool)
	add := func(c models.Client) {
		if seen[c.ID] {
			return
		}
		seen[c.ID] = true
		out = append(out, c)
	}

	for _, cand := range candidates {
		tokens := strings.Fields(cand)
		for _, c := range clients {
			if exactMatch(c, tokens) {
				add(c)
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, cand := range candidates {
		needle := strings.ToLower(strings.Join(strings.Fields(cand), " "))
		if needle == "" {
			continue
		}
		for _, c := range clients {
			if strings.Contains(strings.ToLower(c.FirstName+" "+c.LastName), needle) {
				add(c)
			}
		}
	}
	return out
}

func exactMatch(c models.Client, tokens []string) bool {
	switch len(tokens) {
	case 1:
		return strings.EqualFold(tokens[0], c.FirstName) || strings.EqualFold(tokens[0], c.LastName)
	case 2:
		return strings.EqualFold(tokens[0], c.FirstName) && strings.EqualFold(tokens[1], c.LastName)
	default:
		return false
	}
}
