// ABOUTME: Policy CLI commands
// ABOUTME: Lists policies with client, type, status, and expiring filters
package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// ListPoliciesCommand lists policies.
func ListPoliciesCommand(s store.Store, args []string) error {
	fs := flag.NewFlagSet("list-policies", flag.ContinueOnError)
	clientRef := fs.String("client", "", "Client ID or name")
	policyType := fs.String("type", "", "Filter by type (home, auto, life, ...)")
	status := fs.String("status", "", "Filter by status (active, pending, expired, cancelled)")
	expiring := fs.Bool("expiring", false, "Only active policies ending within the next month")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		policies []models.Policy
		err      error
	)
	if *clientRef != "" {
		client, err := resolveClient(s, *clientRef)
		if err != nil {
			return err
		}
		policies, err = s.PoliciesByClient(client.ID)
		if err != nil {
			return fmt.Errorf("failed to list policies: %w", err)
		}
	} else if policies, err = s.Policies(); err != nil {
		return fmt.Errorf("failed to list policies: %w", err)
	}

	if *expiring {
		policies = assistant.ExpiringSoon(policies, now())
	}

	names, err := clientNames(s)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tNUMBER\tCLIENT\tTYPE\tSTATUS\tPREMIUM\tENDS")
	fmt.Fprintln(w, "--\t------\t------\t----\t------\t-------\t----")
	shown := 0
	for _, p := range policies {
		if *policyType != "" && p.Type != *policyType {
			continue
		}
		if *status != "" && p.Status != *status {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.PolicyNumber, names[p.ClientID], models.HumanizeType(p.Type), p.Status,
			assistant.Money(p.Premium), p.EndDate.Format(models.DateLayout))
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if shown == 0 {
		printf("No policies found.\n")
	}
	return nil
}

func clientNames(s store.Store) (map[string]string, error) {
	clients, err := s.Clients()
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.FullName()
	}
	return names, nil
}
