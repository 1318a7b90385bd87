// ABOUTME: Opportunity CLI commands
// ABOUTME: Lists cross-sell, upsell, and review opportunities
package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// ListOpportunitiesCommand lists opportunities.
func ListOpportunitiesCommand(s store.Store, args []string) error {
	fs := flag.NewFlagSet("list-opportunities", flag.ContinueOnError)
	clientRef := fs.String("client", "", "Client ID or name")
	priority := fs.String("priority", "", "Filter by priority (high, medium, low)")
	openOnly := fs.Bool("open", false, "Hide completed and rejected opportunities")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		opps []models.Opportunity
		err  error
	)
	if *clientRef != "" {
		client, err := resolveClient(s, *clientRef)
		if err != nil {
			return err
		}
		if opps, err = s.OpportunitiesByClient(client.ID); err != nil {
			return fmt.Errorf("failed to list opportunities: %w", err)
		}
	} else if opps, err = s.Opportunities(); err != nil {
		return fmt.Errorf("failed to list opportunities: %w", err)
	}

	names, err := clientNames(s)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tTITLE\tCLIENT\tTYPE\tPRIORITY\tSTATUS\tVALUE")
	fmt.Fprintln(w, "--\t-----\t------\t----\t--------\t------\t-----")
	shown := 0
	for _, o := range opps {
		if *priority != "" && o.Priority != *priority {
			continue
		}
		if *openOnly && !o.IsOpen() {
			continue
		}
		value := "-"
		switch {
		case o.PotentialRevenue > 0:
			value = "+" + assistant.Money(o.PotentialRevenue)
		case o.PotentialSavings > 0:
			value = "saves " + assistant.Money(o.PotentialSavings)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.ID, truncate(o.Title, 40), names[o.ClientID], models.HumanizeType(o.Type), o.Priority, o.Status, value)
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if shown == 0 {
		printf("No opportunities found.\n")
	}
	return nil
}
