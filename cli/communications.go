// ABOUTME: Communication CLI commands
// ABOUTME: Lists the client communication log, newest first
package cli

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// ListCommunicationsCommand lists communications.
func ListCommunicationsCommand(s store.Store, args []string) error {
	fs := flag.NewFlagSet("list-communications", flag.ContinueOnError)
	clientRef := fs.String("client", "", "Client ID or name")
	commType := fs.String("type", "", "Filter by type (email, call, sms, meeting, note, letter)")
	limit := fs.Int("limit", 20, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		comms []models.Communication
		err   error
	)
	if *clientRef != "" {
		client, err := resolveClient(s, *clientRef)
		if err != nil {
			return err
		}
		if comms, err = s.CommunicationsByClient(client.ID); err != nil {
			return fmt.Errorf("failed to list communications: %w", err)
		}
	} else if comms, err = s.Communications(); err != nil {
		return fmt.Errorf("failed to list communications: %w", err)
	}

	sort.SliceStable(comms, func(i, j int) bool {
		return comms[i].SentAt.After(comms[j].SentAt)
	})

	names, err := clientNames(s)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tDATE\tCLIENT\tTYPE\tSTATUS\tSUBJECT\tATTACHMENTS")
	fmt.Fprintln(w, "--\t----\t------\t----\t------\t-------\t-----------")
	shown := 0
	for _, c := range comms {
		if *commType != "" && c.Type != *commType {
			continue
		}
		if shown >= *limit {
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.SentAt.Format(models.DateLayout), names[c.ClientID], c.Type, c.Status,
			truncate(c.Subject, 40), strings.Join(c.Attachments, ", "))
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if shown == 0 {
		printf("No communications found.\n")
	}
	return nil
}
