// ABOUTME: Client CLI commands
// ABOUTME: Human-friendly commands for listing, showing, and adding clients
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// ListClientsCommand lists clients.
func ListClientsCommand(s store.Store, args []string) error {
	fs := flag.NewFlagSet("list-clients", flag.ContinueOnError)
	query := fs.String("query", "", "Search by name")
	status := fs.String("status", "", "Filter by status (active, inactive, pending)")
	limit := fs.Int("limit", 50, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	clients, err := s.Clients()
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}
	policies, err := s.Policies()
	if err != nil {
		return fmt.Errorf("failed to list policies: %w", err)
	}

	if *query != "" {
		clients = assistant.MatchClients(clients, []string{*query})
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPOLICIES\tPREMIUM\tEMAIL")
	fmt.Fprintln(w, "--\t----\t------\t--------\t-------\t-----")
	shown := 0
	for _, c := range clients {
		if *status != "" && c.Status != *status {
			continue
		}
		if shown >= *limit {
			break
		}
		agg := models.ComputeClientAggregates(c.ID, policies)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			c.ID, c.FullName(), c.Status, agg.ActivePolicies, assistant.Money(agg.TotalPremium), c.Email)
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if shown == 0 {
		printf("No clients found.\n")
	}
	return nil
}

// ShowClientCommand prints one client with related records.
func ShowClientCommand(s store.Store, args []string) error {
	fs := flag.NewFlagSet("show-client", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("client ID or name required")
	}
	ref := strings.Join(fs.Args(), " ")

	client, err := resolveClient(s, ref)
	if err != nil {
		return err
	}

	policies, err := s.PoliciesByClient(client.ID)
	if err != nil {
		return fmt.Errorf("failed to list policies: %w", err)
	}
	tasks, err := s.TasksByClient(client.ID)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	opps, err := s.OpportunitiesByClient(client.ID)
	if err != nil {
		return fmt.Errorf("failed to list opportunities: %w", err)
	}
	agg := models.ComputeClientAggregates(client.ID, policies)

	printf("%s (%s)\n", client.FullName(), client.ID)
	printf("  Status:   %s\n", client.Status)
	if client.Email != "" {
		printf("  Email:    %s\n", client.Email)
	}
	if client.Phone != "" {
		printf("  Phone:    %s\n", client.Phone)
	}
	if client.Address != "" {
		printf("  Address:  %s\n", client.Address)
	}
	printf("  Premium:  %s across %d active policies\n", assistant.Money(agg.TotalPremium), agg.ActivePolicies)
	if client.LastContactAt != nil {
		printf("  Last contact: %s\n", assistant.ShortDate(*client.LastContactAt))
	}

	if len(policies) > 0 {
		printf("\nPolicies:\n")
		for _, p := range policies {
			printf("  %s  %-22s %-9s %s  ends %s\n",
				p.PolicyNumber, models.HumanizeType(p.Type), p.Status, assistant.Money(p.Premium), assistant.ShortDate(p.EndDate))
		}
	}
	if len(tasks) > 0 {
		printf("\nTasks:\n")
		for _, t := range tasks {
			printf("  [%s] %s (due %s, %s)\n", t.ID, t.Title, assistant.ShortDate(t.DueDate), t.Status)
		}
	}
	if len(opps) > 0 {
		printf("\nOpportunities:\n")
		for _, o := range opps {
			printf("  [%s] %s (%s priority, %s)\n", o.ID, o.Title, o.Priority, o.Status)
		}
	}
	return nil
}

// resolveClient accepts an ID or a name. Ambiguous names are an error.
func resolveClient(s store.Store, ref string) (*models.Client, error) {
	client, err := s.Client(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	if client != nil {
		return client, nil
	}

	clients, err := s.Clients()
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	matches := assistant.MatchClients(clients, []string{ref})
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("client not found: %s", ref)
	case 1:
		return &matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = fmt.Sprintf("%s (%s)", m.FullName(), m.ID)
		}
		return nil, fmt.Errorf("%q matches several clients: %s", ref, strings.Join(names, ", "))
	}
}

// AddClientCommand adds a client to the session copy.
func AddClientCommand(s store.Writer, args []string) error {
	fs := flag.NewFlagSet("add-client", flag.ContinueOnError)
	first := fs.String("first", "", "First name (required)")
	last := fs.String("last", "", "Last name (required)")
	email := fs.String("email", "", "Email address (required)")
	phone := fs.String("phone", "", "Phone number")
	address := fs.String("address", "", "Mailing address")
	status := fs.String("status", "", "Status (default: pending)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := models.ClientForm{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Phone:     *phone,
		Address:   *address,
		Status:    *status,
	}
	if err := form.Validate(); err != nil {
		return err
	}

	client := form.ToClient(store.NewID("CL"), now())
	if err := s.AddClient(&client); err != nil {
		return fmt.Errorf("failed to add client: %w", err)
	}

	printf("✓ Client added: %s (ID: %s)\n", client.FullName(), client.ID)
	printf("  Email: %s\n", client.Email)
	printf("%s\n", localNote)
	return nil
}
