// ABOUTME: Reports CLI command
// ABOUTME: Prints stored reports or recomputes them from live data
package cli

import (
	"flag"
	"fmt"
	"sort"

	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/harperreed/inscrm/viz"
)

// ReportsCommand prints reports with their metrics.
func ReportsCommand(s store.Store, args []string) error {
	fs := flag.NewFlagSet("reports", flag.ContinueOnError)
	live := fs.Bool("live", false, "Recompute metrics from the current data")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		reports []models.Report
		err     error
	)
	if *live {
		reports, err = viz.BuildReports(s, now())
	} else {
		reports, err = s.Reports()
	}
	if err != nil {
		return fmt.Errorf("failed to load reports: %w", err)
	}

	for i, r := range reports {
		if i > 0 {
			printf("\n")
		}
		printf("%s [%s]  generated %s\n", r.Name, r.Category, r.GeneratedAt.Format("2006-01-02 15:04"))
		if r.Description != "" {
			printf("  %s\n", r.Description)
		}

		keys := make([]string, 0, len(r.Metrics))
		for k := range r.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			printf("  %-22s %v\n", k, r.Metrics[k])
		}
	}
	if len(reports) == 0 {
		printf("No reports found.\n")
	}
	return nil
}
