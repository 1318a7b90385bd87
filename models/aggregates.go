// ABOUTME: Recomputation helpers for denormalized client aggregates
// ABOUTME: Derives active policy counts and premium totals from the policy set
package models

// ClientAggregates holds values derived from a client's policies.
type ClientAggregates struct {
	ActivePolicies int
	TotalPremium   float64
}

// ComputeClientAggregates derives ActivePolicies and TotalPremium for a client
// from the policy collection. Client.ActivePolicies and Client.TotalPremium are
// caller-maintained display values; anything that makes a decision should use
// this instead.
func ComputeClientAggregates(clientID string, policies []Policy) ClientAggregates {
	var agg ClientAggregates
	for _, p := range policies {
		if p.ClientID != clientID || p.Status != PolicyStatusActive {
			continue
		}
		agg.ActivePolicies++
		agg.TotalPremium += p.Premium
	}
	return agg
}

// RecomputeClient returns a copy of the client with aggregates refreshed.
func RecomputeClient(c Client, policies []Policy) Client {
	agg := ComputeClientAggregates(c.ID, policies)
	c.ActivePolicies = agg.ActivePolicies
	c.TotalPremium = agg.TotalPremium
	return c
}

// AggregatesStale reports whether the stored aggregates disagree with the policy set.
func AggregatesStale(c Client, policies []Policy) bool {
	agg := ComputeClientAggregates(c.ID, policies)
	return agg.ActivePolicies != c.ActivePolicies || agg.TotalPremium != c.TotalPremium
}
