// ABOUTME: Tests for dashboard stats, reports, and portfolio graphs
// ABOUTME: Runs against the seeded in-memory store at a fixed reference time
package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/harperreed/inscrm/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

func TestGenerateDashboardStats(t *testing.T) {
	stats, err := GenerateDashboardStats(store.NewSeeded(refTime), refTime)
	require.NoError(t, err)

	assert.Equal(t, 11, stats.TotalClients)
	assert.Len(t, stats.ExpiringPolicies, 5)
	assert.Len(t, stats.TasksDueToday, 3)
	assert.Len(t, stats.OverdueTasks, 2)

	// Soonest first.
	assert.Equal(t, "PL-2010", stats.ExpiringPolicies[0].Policy.ID)
	assert.Equal(t, 5, stats.ExpiringPolicies[0].DaysLeft)
	for i := 1; i < len(stats.ExpiringPolicies); i++ {
		assert.LessOrEqual(t, stats.ExpiringPolicies[i-1].DaysLeft, stats.ExpiringPolicies[i].DaysLeft)
	}

	var total float64
	for _, ts := range stats.PoliciesByType {
		total += ts.Premium
	}
	assert.Equal(t, stats.AnnualPremium, total)
}

func TestRenderDashboard(t *testing.T) {
	stats, err := GenerateDashboardStats(store.NewSeeded(refTime), refTime)
	require.NoError(t, err)

	out := RenderDashboard(stats)
	assert.Contains(t, out, "INSURANCE CRM DASHBOARD")
	assert.Contains(t, out, "EXPIRING WITHIN A MONTH")
	assert.Contains(t, out, "3 tasks due today")
	assert.Contains(t, out, "2 tasks overdue")
	assert.Contains(t, out, "$31,530/yr")
}

func TestBuildReports(t *testing.T) {
	reports, err := BuildReports(store.NewSeeded(refTime), refTime)
	require.NoError(t, err)
	require.Len(t, reports, 4)

	byCategory := make(map[string]map[string]float64)
	for _, r := range reports {
		byCategory[r.Category] = r.Metrics
		assert.Equal(t, refTime, r.GeneratedAt)
	}

	var premium float64
	for _, v := range byCategory[ReportSales] {
		premium += v
	}
	assert.Equal(t, 31530.0, premium)
	assert.Equal(t, 9.0, byCategory[ReportRetention]["active_clients"])
	assert.Equal(t, 11.0, byCategory[ReportRetention]["total_clients"])
	assert.Equal(t, 5.0, byCategory[ReportRenewals]["expiring_policies"])
	assert.Equal(t, 6.0, byCategory[ReportPipeline]["open_opportunities"])
}

func TestGenerateClientGraph(t *testing.T) {
	g := NewGraphGenerator(store.NewSeeded(refTime))

	dot, err := g.GenerateClientGraph("CL-1001")
	require.NoError(t, err)
	assert.Contains(t, dot, "Jamal Haija")
	assert.True(t, strings.Contains(dot, "->"), "expected directed edges")

	_, err = g.GenerateClientGraph("CL-9999")
	assert.Error(t, err)
}

func TestGeneratePortfolioGraph(t *testing.T) {
	dot, err := NewGraphGenerator(store.NewSeeded(refTime)).GeneratePortfolioGraph()
	require.NoError(t, err)
	assert.Contains(t, dot, "Michael Chen")
	assert.Contains(t, dot, "Agency portfolio")
}
