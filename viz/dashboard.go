// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides ASCII dashboard for the agency book of business
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// StaleAfterDays is how long a client can go without contact before the
// dashboard flags them.
const StaleAfterDays = 30

type DashboardStats struct {
	assistant.Stats

	// Portfolio overview
	PoliciesByType map[string]TypeStats

	ExpiringPolicies []ExpiringPolicy
	TasksDueToday    []models.Task
	OverdueTasks     []models.Task

	// Needs attention
	StaleClients []StaleClient
}

type TypeStats struct {
	Type    string
	Count   int
	Premium float64
}

type ExpiringPolicy struct {
	Policy     models.Policy
	ClientName string
	DaysLeft   int
}

type StaleClient struct {
	Name      string
	DaysSince int
}

// GenerateDashboardStats reads the stores once. Expiring and due-today use
// the same windows as the assistant so both surfaces agree.
func GenerateDashboardStats(s store.Store, now time.Time) (*DashboardStats, error) {
	summary, err := assistant.Summarize(s, now)
	if err != nil {
		return nil, err
	}
	ds, err := store.Snapshot(s)
	if err != nil {
		return nil, fmt.Errorf("failed to read stores: %w", err)
	}

	stats := &DashboardStats{
		Stats:          summary,
		PoliciesByType: make(map[string]TypeStats),
	}

	names := make(map[string]string, len(ds.Clients))
	for _, c := range ds.Clients {
		names[c.ID] = c.FullName()
	}

	for _, p := range ds.Policies {
		if p.Status != models.PolicyStatusActive {
			continue
		}
		ts := stats.PoliciesByType[p.Type]
		ts.Type = p.Type
		ts.Count++
		ts.Premium += p.Premium
		stats.PoliciesByType[p.Type] = ts
	}

	today := assistant.StartOfDay(now)
	for _, p := range assistant.ExpiringSoon(ds.Policies, now) {
		stats.ExpiringPolicies = append(stats.ExpiringPolicies, ExpiringPolicy{
			Policy:     p,
			ClientName: names[p.ClientID],
			DaysLeft:   int(assistant.StartOfDay(p.EndDate).Sub(today).Hours() / 24),
		})
	}
	sort.SliceStable(stats.ExpiringPolicies, func(i, j int) bool {
		return stats.ExpiringPolicies[i].Policy.EndDate.Before(stats.ExpiringPolicies[j].Policy.EndDate)
	})

	stats.TasksDueToday = assistant.DueToday(ds.Tasks, now)
	stats.OverdueTasks = assistant.Overdue(ds.Tasks, now)

	for _, c := range ds.Clients {
		if c.Status != models.ClientStatusActive {
			continue
		}
		if c.LastContactAt == nil {
			stats.StaleClients = append(stats.StaleClients, StaleClient{Name: c.FullName(), DaysSince: -1})
			continue
		}
		days := int(now.Sub(*c.LastContactAt).Hours() / 24)
		if days > StaleAfterDays {
			stats.StaleClients = append(stats.StaleClients, StaleClient{Name: c.FullName(), DaysSince: days})
		}
	}

	return stats, nil
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  INSURANCE CRM DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PORTFOLIO\n")
	renderPortfolio(&out, stats.PoliciesByType)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  👥 %d clients (%d active)  📄 %d policies (%d active)  💵 %s/yr\n",
		stats.TotalClients, stats.ActiveClients, stats.TotalPolicies, stats.ActivePolicies,
		assistant.Money(stats.AnnualPremium)))
	out.WriteString(fmt.Sprintf("  💡 %d open opportunities (%d high priority)\n\n",
		stats.OpenOpportunities, stats.HighPriorityOpportunities))

	if len(stats.ExpiringPolicies) > 0 {
		out.WriteString("EXPIRING WITHIN A MONTH\n")
		for _, e := range stats.ExpiringPolicies {
			out.WriteString(fmt.Sprintf("  %-10s %-18s %-22s %3dd\n",
				e.Policy.PolicyNumber, e.ClientName, models.HumanizeType(e.Policy.Type), e.DaysLeft))
		}
		out.WriteString("\n")
	}

	if len(stats.TasksDueToday) > 0 || len(stats.OverdueTasks) > 0 || len(stats.StaleClients) > 0 {
		out.WriteString("NEEDS ATTENTION\n")

		if len(stats.TasksDueToday) > 0 {
			out.WriteString(fmt.Sprintf("  📌 %d tasks due today\n", len(stats.TasksDueToday)))
		}
		if len(stats.OverdueTasks) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d tasks overdue\n", len(stats.OverdueTasks)))
		}
		if len(stats.StaleClients) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d clients - no contact in %d+ days\n", len(stats.StaleClients), StaleAfterDays))
		}
	}

	return out.String()
}

func renderPortfolio(out *strings.Builder, byType map[string]TypeStats) {
	maxCount := 0
	for _, ts := range byType {
		if ts.Count > maxCount {
			maxCount = ts.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, t := range models.PolicyTypes {
		ts, exists := byType[t]
		if !exists {
			continue
		}

		// 0-10 blocks
		barLength := (ts.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-22s %s  %2d (%s)\n",
			models.HumanizeType(t), bar, ts.Count, assistant.Money(ts.Premium)))
	}
}
