// ABOUTME: Visualization CLI commands
// ABOUTME: Handles viz dashboard and graph generation commands
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/harperreed/inscrm/store"
	"github.com/harperreed/inscrm/viz"
)

// VizGraphClientCommand generates a graph of one client's policies and opportunities.
func VizGraphClientCommand(s store.Store, args []string) error {
	fs := flag.NewFlagSet("viz graph client", flag.ContinueOnError)
	output := fs.String("output", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("client ID or name required")
	}

	client, err := resolveClient(s, strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}

	dot, err := viz.NewGraphGenerator(s).GenerateClientGraph(client.ID)
	if err != nil {
		return err
	}
	return writeDOT(*output, dot)
}

// VizGraphPortfolioCommand generates a graph of the whole book of business.
func VizGraphPortfolioCommand(s store.Store, args []string) error {
	fs := flag.NewFlagSet("viz graph portfolio", flag.ContinueOnError)
	output := fs.String("output", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	dot, err := viz.NewGraphGenerator(s).GeneratePortfolioGraph()
	if err != nil {
		return err
	}
	return writeDOT(*output, dot)
}

func VizDashboardCommand(s store.Store, args []string) error {
	stats, err := viz.GenerateDashboardStats(s, now())
	if err != nil {
		return fmt.Errorf("failed to generate dashboard stats: %w", err)
	}

	printf("%s", viz.RenderDashboard(stats))
	return nil
}

func writeDOT(path, dot string) error {
	if path != "" {
		return os.WriteFile(path, []byte(dot), 0644)
	}
	printf("%s\n", dot)
	return nil
}
