// ABOUTME: Report metrics computed from the live stores
// ABOUTME: Simple reductions for the sales, retention, renewals, and pipeline reports
package viz

import (
	"time"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// Report categories.
const (
	ReportSales     = "sales"
	ReportRetention = "retention"
	ReportRenewals  = "renewals"
	ReportPipeline  = "pipeline"
)

// BuildReports recomputes the standard reports as of now.
func BuildReports(s store.Store, now time.Time) ([]models.Report, error) {
	ds, err := store.Snapshot(s)
	if err != nil {
		return nil, err
	}

	sales := map[string]float64{}
	for _, p := range ds.Policies {
		if p.Status == models.PolicyStatusActive {
			sales[p.Type] += p.Premium
		}
	}

	var active float64
	for _, c := range ds.Clients {
		if c.Status == models.ClientStatusActive {
			active++
		}
	}

	expiring := assistant.ExpiringSoon(ds.Policies, now)
	var expiringPremium float64
	for _, p := range expiring {
		expiringPremium += p.Premium
	}

	var open, revenue, savings float64
	for _, o := range ds.Opportunities {
		if !o.IsOpen() {
			continue
		}
		open++
		revenue += o.PotentialRevenue
		savings += o.PotentialSavings
	}

	return []models.Report{
		{
			ID:          "live-" + ReportSales,
			Name:        "Premium by policy type",
			Category:    ReportSales,
			Description: "Annual premium written per line of business.",
			GeneratedAt: now,
			Metrics:     sales,
		},
		{
			ID:          "live-" + ReportRetention,
			Name:        "Retention",
			Category:    ReportRetention,
			Description: "Active clients against total book.",
			GeneratedAt: now,
			Metrics: map[string]float64{
				"active_clients": active,
				"total_clients":  float64(len(ds.Clients)),
			},
		},
		{
			ID:          "live-" + ReportRenewals,
			Name:        "Renewal pipeline",
			Category:    ReportRenewals,
			Description: "Active policies ending within the next month.",
			GeneratedAt: now,
			Metrics: map[string]float64{
				"expiring_policies": float64(len(expiring)),
				"expiring_premium":  expiringPremium,
			},
		},
		{
			ID:          "live-" + ReportPipeline,
			Name:        "Opportunity pipeline",
			Category:    ReportPipeline,
			Description: "Open cross-sell, upsell, and review opportunities.",
			GeneratedAt: now,
			Metrics: map[string]float64{
				"open_opportunities": open,
				"potential_revenue":  revenue,
				"potential_savings":  savings,
			},
		},
	}, nil
}
