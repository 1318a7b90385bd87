// ABOUTME: Handlers that build answers for each route in the decision list
// ABOUTME: Every handler re-reads the stores it needs; aggregates are recomputed from policies
package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// FallbackText is the constant answer when no route matched.
const FallbackText = "I'm not sure how to help with that. Try rephrasing your question, or ask me about clients, policies, tasks, or opportunities."

// Fallback returns the answer used when nothing else applies.
func Fallback() Response {
	return textResponse(RouteFallback, FallbackText)
}

// HelpText lists what the assistant can answer locally.
const HelpText = `I can answer questions about your book of business. Try:
• "Give me a dashboard overview"
• "How many clients do we have?"
• "Who is our top premium client?"
• "Find client Jamal Haija"
• "Which policies are expiring soon?"
• "Show policies for Sarah Johnson"
• "List home insurance policies"
• "What tasks are due today?" or "Any overdue tasks?"
• "Show high priority opportunities"
• "Recent communications with Michael Chen"
• "Revenue summary"`

func help(q *Query) (Response, error) {
	return textResponse(RouteHelp, HelpText), nil
}

func dashboardSummary(q *Query) (Response, error) {
	stats, err := Summarize(q.Store, q.Now)
	if err != nil {
		return Response{}, err
	}

	lines := []string{
		"Here's your dashboard overview:",
		fmt.Sprintf("• %s (%d active)", plural(stats.TotalClients, "client", "clients"), stats.ActiveClients),
		fmt.Sprintf("• %s, %s in annual premium", plural(stats.ActivePolicies, "active policy", "active policies"), Money(stats.AnnualPremium)),
		fmt.Sprintf("• %s expiring within the next month", plural(stats.ExpiringSoon, "policy", "policies")),
		fmt.Sprintf("• %s due today, %d overdue", plural(stats.TasksDueToday, "task", "tasks"), stats.OverdueTasks),
		fmt.Sprintf("• %s, %d high priority", plural(stats.OpenOpportunities, "open opportunity", "open opportunities"), stats.HighPriorityOpportunities),
	}
	return textResponse(RouteDashboardSummary, strings.Join(lines, "\n")), nil
}

func clientCount(q *Query) (Response, error) {
	clients, err := q.Store.Clients()
	if err != nil {
		return Response{}, err
	}
	counts := map[string]int{}
	for _, c := range clients {
		counts[c.Status]++
	}
	text := fmt.Sprintf("You have %s: %d active, %d inactive, %d pending.",
		plural(len(clients), "client", "clients"),
		counts[models.ClientStatusActive], counts[models.ClientStatusInactive], counts[models.ClientStatusPending])
	return textResponse(RouteClientCount, text), nil
}

func topPremiumClient(q *Query) (Response, error) {
	clients, err := q.Store.Clients()
	if err != nil {
		return Response{}, err
	}
	policies, err := q.Store.Policies()
	if err != nil {
		return Response{}, err
	}
	if len(clients) == 0 {
		return textResponse(RouteTopPremiumClient, "There are no clients on file yet."), nil
	}

	var best models.Client
	found := false
	for _, c := range clients {
		c = models.RecomputeClient(c, policies)
		if !found || c.TotalPremium > best.TotalPremium {
			best, found = c, true
		}
	}
	text := fmt.Sprintf("%s has the highest total premium at %s across %s.",
		best.FullName(), Money(best.TotalPremium), plural(best.ActivePolicies, "active policy", "active policies"))
	return textResponse(RouteTopPremiumClient, text), nil
}

var searchFiller = map[string]bool{
	"for": true, "a": true, "the": true, "client": true, "clients": true, "customer": true,
	"customers": true, "named": true, "called": true, "me": true, "my": true, "please": true,
	"with": true, "by": true, "email": true, "address": true,
}

// searchTerm pulls the words after the search verb when no capitalised name was found.
func searchTerm(q *Query) string {
	idx, verbLen := -1, 0
	for _, v := range searchVerbs {
		if i := strings.Index(q.Lower, v); i >= 0 && (idx < 0 || i < idx) {
			idx, verbLen = i, len(v)
		}
	}
	if idx < 0 {
		return ""
	}
	var words []string
	for _, w := range strings.Fields(q.Lower[idx+verbLen:]) {
		w = strings.Trim(w, "?.!,\"'")
		if w == "" || searchFiller[w] {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

func clientSearch(q *Query) (Response, error) {
	clients, err := q.Store.Clients()
	if err != nil {
		return Response{}, err
	}

	var matches []models.Client
	term := strings.Join(q.Entities.ClientNames, ", ")
	if len(q.Entities.ClientNames) > 0 {
		matches = MatchClients(clients, q.Entities.ClientNames)
	} else {
		term = searchTerm(q)
		if term == "" {
			return textResponse(RouteClientSearch, "Please specify a client name or email to search for."), nil
		}
		for _, c := range clients {
			if strings.Contains(strings.ToLower(c.FullName()), term) || strings.Contains(strings.ToLower(c.Email), term) {
				matches = append(matches, c)
			}
		}
	}

	switch len(matches) {
	case 0:
		return textResponse(RouteClientSearch, fmt.Sprintf("I couldn't find any clients matching %q.", term)), nil
	case 1:
		policies, err := q.Store.Policies()
		if err != nil {
			return Response{}, err
		}
		return textResponse(RouteClientSearch, describeClient(models.RecomputeClient(matches[0], policies))), nil
	}

	items := make([]Item, 0, len(matches))
	for _, c := range matches {
		items = append(items, clientItem(c))
	}
	return listResponse(RouteClientSearch, fmt.Sprintf("I found %d clients matching %q:", len(matches), term), items), nil
}

func describeClient(c models.Client) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", c.FullName(), c.Status)
	if c.Email != "" {
		fmt.Fprintf(&b, "\nEmail: %s", c.Email)
	}
	if c.Phone != "" {
		fmt.Fprintf(&b, "\nPhone: %s", c.Phone)
	}
	fmt.Fprintf(&b, "\n%s, %s annual premium", plural(c.ActivePolicies, "active policy", "active policies"), Money(c.TotalPremium))
	if c.LastContactAt != nil {
		fmt.Fprintf(&b, "\nLast contact: %s", ShortDate(*c.LastContactAt))
	}
	return b.String()
}

func clientItem(c models.Client) Item {
	return Item{ID: c.ID, Title: c.FullName(), Detail: fmt.Sprintf("%s, %s", c.Email, c.Status)}
}

func clientNames(clients []models.Client) map[string]string {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.FullName()
	}
	return names
}

func expiringPolicies(q *Query) (Response, error) {
	policies, err := q.Store.Policies()
	if err != nil {
		return Response{}, err
	}
	clients, err := q.Store.Clients()
	if err != nil {
		return Response{}, err
	}

	expiring := ExpiringSoon(policies, q.Now)
	if len(expiring) == 0 {
		return textResponse(RouteExpiringPolicies, "No active policies expire within the next month."), nil
	}

	names := clientNames(clients)
	items := make([]Item, 0, len(expiring))
	for _, p := range expiring {
		items = append(items, Item{
			ID:     p.ID,
			Title:  fmt.Sprintf("%s (%s)", p.PolicyNumber, names[p.ClientID]),
			Detail: fmt.Sprintf("%s, ends %s, %s premium", models.HumanizeType(p.Type), ShortDate(p.EndDate), Money(p.Premium)),
		})
	}
	text := fmt.Sprintf("%s expiring within the next month:", plural(len(expiring), "policy is", "policies are"))
	return listResponse(RouteExpiringPolicies, text, items), nil
}

// resolveOne maps the extracted names to exactly one client, or returns the
// answer to give when that is not possible.
func resolveOne(q *Query, category string) (*models.Client, *Response, error) {
	clients, err := q.Store.Clients()
	if err != nil {
		return nil, nil, err
	}
	matches := MatchClients(clients, q.Entities.ClientNames)
	switch len(matches) {
	case 0:
		r := textResponse(category, fmt.Sprintf("I couldn't find a client named %s.", strings.Join(q.Entities.ClientNames, " or ")))
		return nil, &r, nil
	case 1:
		return &matches[0], nil, nil
	}
	names := make([]string, 0, len(matches))
	for _, c := range matches {
		names = append(names, c.FullName())
	}
	r := textResponse(category, fmt.Sprintf("Several clients match: %s. Please be more specific.", strings.Join(names, ", ")))
	return nil, &r, nil
}

func clientPolicies(q *Query) (Response, error) {
	client, answer, err := resolveOne(q, RouteClientPolicies)
	if err != nil || answer != nil {
		return deref(answer), err
	}

	policies, err := q.Store.PoliciesByClient(client.ID)
	if err != nil {
		return Response{}, err
	}
	if len(policies) == 0 {
		return textResponse(RouteClientPolicies, fmt.Sprintf("%s has no policies on file.", client.FullName())), nil
	}

	agg := models.ComputeClientAggregates(client.ID, policies)
	items := make([]Item, 0, len(policies))
	for _, p := range policies {
		items = append(items, policyItem(p))
	}
	text := fmt.Sprintf("%s has %s (%d active, %s annual premium):",
		client.FullName(), plural(len(policies), "policy", "policies"), agg.ActivePolicies, Money(agg.TotalPremium))
	return listResponse(RouteClientPolicies, text, items), nil
}

func policyItem(p models.Policy) Item {
	return Item{
		ID:     p.ID,
		Title:  fmt.Sprintf("%s %s", p.PolicyNumber, models.HumanizeType(p.Type)),
		Detail: fmt.Sprintf("%s, %s premium, ends %s", p.Status, Money(p.Premium), ShortDate(p.EndDate)),
	}
}

func policiesByType(q *Query) (Response, error) {
	policies, err := q.Store.Policies()
	if err != nil {
		return Response{}, err
	}

	if len(q.Entities.PolicyTypes) == 0 {
		counts := map[string]int{}
		for _, p := range policies {
			if p.Status == models.PolicyStatusActive {
				counts[p.Type]++
			}
		}
		var items []Item
		for _, t := range models.PolicyTypes {
			if counts[t] > 0 {
				items = append(items, Item{ID: t, Title: models.HumanizeType(t), Detail: plural(counts[t], "active policy", "active policies")})
			}
		}
		sort.SliceStable(items, func(i, j int) bool { return counts[items[i].ID] > counts[items[j].ID] })
		text := fmt.Sprintf("Your %s by type:", plural(len(policies), "policy", "policies"))
		return listResponse(RoutePoliciesByType, text, items), nil
	}

	wanted := map[string]bool{}
	for _, t := range q.Entities.PolicyTypes {
		wanted[t] = true
	}
	var matches []models.Policy
	active := 0
	for _, p := range policies {
		if wanted[p.Type] {
			matches = append(matches, p)
			if p.Status == models.PolicyStatusActive {
				active++
			}
		}
	}

	label := models.HumanizeType(strings.Join(q.Entities.PolicyTypes, "/"))
	if len(matches) == 0 {
		return textResponse(RoutePoliciesByType, fmt.Sprintf("No %s policies found.", label)), nil
	}
	items := make([]Item, 0, len(matches))
	for _, p := range matches {
		items = append(items, policyItem(p))
	}
	text := fmt.Sprintf("There %s %d %s %s (%d active):", isAre(len(matches)), len(matches), label, pluralWord(len(matches), "policy", "policies"), active)
	return listResponse(RoutePoliciesByType, text, items), nil
}

func isAre(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}

func pluralWord(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func taskItems(tasks []models.Task, names map[string]string) []Item {
	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		detail := t.Priority + " priority"
		if t.ClientID != nil {
			detail = names[*t.ClientID] + ", " + detail
		}
		items = append(items, Item{ID: t.ID, Title: t.Title, Detail: detail})
	}
	return items
}

func tasksDueToday(q *Query) (Response, error) {
	tasks, err := q.Store.Tasks()
	if err != nil {
		return Response{}, err
	}
	clients, err := q.Store.Clients()
	if err != nil {
		return Response{}, err
	}

	due := DueToday(tasks, q.Now)
	if len(due) == 0 {
		return textResponse(RouteTasksDueToday, "You have no tasks due today."), nil
	}
	text := fmt.Sprintf("You have %s due today:", plural(len(due), "task", "tasks"))
	return listResponse(RouteTasksDueToday, text, taskItems(due, clientNames(clients))), nil
}

func overdueTasks(q *Query) (Response, error) {
	tasks, err := q.Store.Tasks()
	if err != nil {
		return Response{}, err
	}
	clients, err := q.Store.Clients()
	if err != nil {
		return Response{}, err
	}

	overdue := Overdue(tasks, q.Now)
	if len(overdue) == 0 {
		return textResponse(RouteOverdueTasks, "Nothing is overdue. Nice work!"), nil
	}
	text := fmt.Sprintf("You have %s overdue:", plural(len(overdue), "task", "tasks"))
	return listResponse(RouteOverdueTasks, text, taskItems(overdue, clientNames(clients))), nil
}

func priorityOpportunities(q *Query) (Response, error) {
	opps, err := q.Store.Opportunities()
	if err != nil {
		return Response{}, err
	}
	clients, err := q.Store.Clients()
	if err != nil {
		return Response{}, err
	}

	open := 0
	var high []models.Opportunity
	for _, o := range opps {
		if !o.IsOpen() {
			continue
		}
		open++
		if o.Priority == models.PriorityHigh {
			high = append(high, o)
		}
	}
	if len(high) == 0 {
		return textResponse(RoutePriorityOpportunities, fmt.Sprintf("There are no high-priority open opportunities (%d open in total).", open)), nil
	}

	names := clientNames(clients)
	items := make([]Item, 0, len(high))
	for _, o := range high {
		items = append(items, Item{ID: o.ID, Title: o.Title, Detail: names[o.ClientID] + ", " + opportunityValue(o)})
	}
	text := fmt.Sprintf("%s (%d open in total):", plural(len(high), "high-priority open opportunity", "high-priority open opportunities"), open)
	return listResponse(RoutePriorityOpportunities, text, items), nil
}

func opportunityValue(o models.Opportunity) string {
	if o.PotentialRevenue > 0 {
		return Money(o.PotentialRevenue) + " potential revenue"
	}
	if o.PotentialSavings > 0 {
		return Money(o.PotentialSavings) + " potential savings"
	}
	return models.HumanizeType(o.Type)
}

func clientCommunications(q *Query) (Response, error) {
	var (
		comms []models.Communication
		err   error
		who   string
	)
	if len(q.Entities.ClientNames) > 0 {
		client, answer, err := resolveOne(q, RouteClientCommunications)
		if err != nil || answer != nil {
			return deref(answer), err
		}
		if comms, err = q.Store.CommunicationsByClient(client.ID); err != nil {
			return Response{}, err
		}
		who = " with " + client.FullName()
	} else if comms, err = q.Store.Communications(); err != nil {
		return Response{}, err
	}

	if len(comms) == 0 {
		return textResponse(RouteClientCommunications, "No communications"+who+" on file."), nil
	}

	sort.SliceStable(comms, func(i, j int) bool { return comms[i].SentAt.After(comms[j].SentAt) })
	clients, err := q.Store.Clients()
	if err != nil {
		return Response{}, err
	}
	names := clientNames(clients)
	items := make([]Item, 0, len(comms))
	for _, c := range comms {
		title := c.Subject
		if title == "" {
			title = models.HumanizeType(c.Type)
		}
		detail := fmt.Sprintf("%s %s, %s", c.Type, c.Status, ShortDate(c.SentAt))
		if who == "" {
			detail = names[c.ClientID] + ", " + detail
		}
		items = append(items, Item{ID: c.ID, Title: title, Detail: detail})
	}
	text := fmt.Sprintf("Most recent communications%s (%d total):", who, len(comms))
	return listResponse(RouteClientCommunications, text, items), nil
}

func revenueSummary(q *Query) (Response, error) {
	policies, err := q.Store.Policies()
	if err != nil {
		return Response{}, err
	}
	opps, err := q.Store.Opportunities()
	if err != nil {
		return Response{}, err
	}

	var total float64
	active := 0
	byType := map[string]float64{}
	for _, p := range policies {
		if p.Status != models.PolicyStatusActive {
			continue
		}
		active++
		total += p.Premium
		byType[p.Type] += p.Premium
	}
	var revenue, savings float64
	for _, o := range opps {
		if o.IsOpen() {
			revenue += o.PotentialRevenue
			savings += o.PotentialSavings
		}
	}

	lines := []string{
		fmt.Sprintf("Annual premium from active policies: %s across %s.", Money(total), plural(active, "policy", "policies")),
	}
	if active > 0 {
		lines = append(lines, fmt.Sprintf("Average premium: %s.", Money(total/float64(active))))
		topType := ""
		for _, t := range models.PolicyTypes {
			if byType[t] > byType[topType] {
				topType = t
			}
		}
		lines = append(lines, fmt.Sprintf("Largest line: %s at %s.", models.HumanizeType(topType), Money(byType[topType])))
	}
	lines = append(lines, fmt.Sprintf("Open opportunities could add %s in revenue and %s in client savings.", Money(revenue), Money(savings)))
	return textResponse(RouteRevenueSummary, strings.Join(lines, "\n")), nil
}

func deref(r *Response) Response {
	if r == nil {
		return Response{}
	}
	return *r
}

// Stats are the headline numbers shared by the dashboard answer and the
// remote data context.
type Stats struct {
	TotalClients              int     `json:"total_clients"`
	ActiveClients             int     `json:"active_clients"`
	TotalPolicies             int     `json:"total_policies"`
	ActivePolicies            int     `json:"active_policies"`
	AnnualPremium             float64 `json:"annual_premium"`
	ExpiringSoon              int     `json:"expiring_soon"`
	TotalTasks                int     `json:"total_tasks"`
	TasksDueToday             int     `json:"tasks_due_today"`
	OverdueTasks              int     `json:"overdue_tasks"`
	TotalOpportunities        int     `json:"total_opportunities"`
	OpenOpportunities         int     `json:"open_opportunities"`
	HighPriorityOpportunities int     `json:"high_priority_opportunities"`
}

// Summarize computes Stats from the stores using the shared windows.
func Summarize(s store.Store, now time.Time) (Stats, error) {
	var st Stats

	clients, err := s.Clients()
	if err != nil {
		return st, fmt.Errorf("failed to list clients: %w", err)
	}
	policies, err := s.Policies()
	if err != nil {
		return st, fmt.Errorf("failed to list policies: %w", err)
	}
	tasks, err := s.Tasks()
	if err != nil {
		return st, fmt.Errorf("failed to list tasks: %w", err)
	}
	opps, err := s.Opportunities()
	if err != nil {
		return st, fmt.Errorf("failed to list opportunities: %w", err)
	}

	st.TotalClients = len(clients)
	for _, c := range clients {
		if c.Status == models.ClientStatusActive {
			st.ActiveClients++
		}
	}
	st.TotalPolicies = len(policies)
	for _, p := range policies {
		if p.Status == models.PolicyStatusActive {
			st.ActivePolicies++
			st.AnnualPremium += p.Premium
		}
	}
	st.ExpiringSoon = len(ExpiringSoon(policies, now))
	st.TotalTasks = len(tasks)
	st.TasksDueToday = len(DueToday(tasks, now))
	st.OverdueTasks = len(Overdue(tasks, now))
	st.TotalOpportunities = len(opps)
	for _, o := range opps {
		if o.IsOpen() {
			st.OpenOpportunities++
			if o.Priority == models.PriorityHigh {
				st.HighPriorityOpportunities++
			}
		}
	}
	return st, nil
}
