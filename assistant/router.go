// ABOUTME: Decision-list router that answers chat messages from the CRM stores
// ABOUTME: Routes are evaluated in declared order and the first matching predicate wins
package assistant

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/harperreed/inscrm/store"
	"go.uber.org/zap"
)

// Query is what a route sees for one message.
type Query struct {
	Ctx      context.Context
	Raw      string
	Lower    string
	Entities Entities
	Store    store.Store
	Now      time.Time
}

// Contains reports whether the lowercased message contains any of the phrases.
func (q *Query) Contains(phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(q.Lower, p) {
			return true
		}
	}
	return false
}

// Route pairs a predicate with the handler that answers when it matches.
type Route struct {
	Name   string
	Match  func(q *Query) bool
	Handle func(q *Query) (Response, error)
}

// Router answers messages locally by walking its routes.
type Router struct {
	store     store.Store
	extractor *Extractor
	routes    []Route
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*Router)

// WithExtractor replaces the default vocabulary.
func WithExtractor(e *Extractor) Option {
	return func(r *Router) { r.extractor = e }
}

// WithClock fixes the reference time, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// WithRoutes replaces the declared route list.
func WithRoutes(routes []Route) Option {
	return func(r *Router) { r.routes = routes }
}

func NewRouter(s store.Store, opts ...Option) *Router {
	r := &Router{
		store:     s,
		extractor: defaultExtractor,
		routes:    DefaultRoutes(),
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Routes returns the route list in evaluation order.
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Respond answers msg. It never fails: a handler error is logged and the
// fallback answer is returned instead.
func (r *Router) Respond(ctx context.Context, msg string) Response {
	q := &Query{
		Ctx:      ctx,
		Raw:      msg,
		Lower:    strings.ToLower(strings.TrimSpace(msg)),
		Entities: r.extractor.Extract(msg),
		Store:    r.store,
		Now:      r.now(),
	}

	for _, route := range r.routes {
		if !route.Match(q) {
			continue
		}
		resp, err := route.Handle(q)
		if err != nil {
			r.logger.Error("route handler failed",
				zap.String("route", route.Name),
				zap.Error(err),
			)
			return Fallback()
		}
		if resp.Category == "" {
			resp.Category = route.Name
		}
		r.logger.Debug("route matched", zap.String("route", route.Name))
		return resp
	}

	return Fallback()
}

// Route names in declared order.
const (
	RouteDashboardSummary      = "dashboard_summary"
	RouteClientCount           = "client_count"
	RouteTopPremiumClient      = "top_premium_client"
	RouteClientSearch          = "client_search"
	RouteExpiringPolicies      = "expiring_policies"
	RouteClientPolicies        = "client_policies"
	RoutePoliciesByType        = "policies_by_type"
	RouteTasksDueToday         = "tasks_due_today"
	RouteOverdueTasks          = "overdue_tasks"
	RoutePriorityOpportunities = "priority_opportunities"
	RouteClientCommunications  = "client_communications"
	RouteRevenueSummary        = "revenue_summary"
	RouteHelp                  = "help"
	RouteFallback              = "fallback"
)

// DefaultRoutes returns the assistant's decision list.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteDashboardSummary, Match: matchDashboard, Handle: dashboardSummary},
		{Name: RouteClientCount, Match: matchClientCount, Handle: clientCount},
		{Name: RouteTopPremiumClient, Match: matchTopPremium, Handle: topPremiumClient},
		{Name: RouteClientSearch, Match: matchClientSearch, Handle: clientSearch},
		{Name: RouteExpiringPolicies, Match: matchExpiring, Handle: expiringPolicies},
		{Name: RouteClientPolicies, Match: matchClientPolicies, Handle: clientPolicies},
		{Name: RoutePoliciesByType, Match: matchPoliciesByType, Handle: policiesByType},
		{Name: RouteTasksDueToday, Match: matchTasksDueToday, Handle: tasksDueToday},
		{Name: RouteOverdueTasks, Match: matchOverdue, Handle: overdueTasks},
		{Name: RoutePriorityOpportunities, Match: matchOpportunities, Handle: priorityOpportunities},
		{Name: RouteClientCommunications, Match: matchCommunications, Handle: clientCommunications},
		{Name: RouteRevenueSummary, Match: matchRevenue, Handle: revenueSummary},
		{Name: RouteHelp, Match: matchHelp, Handle: help},
	}
}

func matchDashboard(q *Query) bool {
	if q.Contains("dashboard", "overview", "at a glance", "how are we doing", "how's business") {
		return true
	}
	return q.Contains("summary", "summarize") && !q.Contains("revenue", "premium")
}

func matchClientCount(q *Query) bool {
	return q.Contains("how many clients", "how many customers", "number of clients", "client count",
		"count of clients", "total clients", "how many active clients")
}

var rankingWords = regexp.MustCompile(`\b(?:` + alternation([]string{"highest", "top", "biggest", "largest", "most valuable", "best"}) + `)\b`)

func matchTopPremium(q *Query) bool {
	return rankingWords.MatchString(q.Lower) &&
		q.Contains("premium", "paying", "valuable", "client", "customer")
}

var searchVerbs = []string{"find", "search", "look up", "lookup", "who is", "show me client", "show client", "client named", "details for", "info on", "information about", "tell me about"}

var (
	correspondenceWords = regexp.MustCompile(`\b(?:communications?|emails?|calls?|messages?)\b`)
	// "by email", "with email" and "search email" name the field being searched.
	emailField = regexp.MustCompile(`\b(?:by|with|search|find|lookup|look up)\s+email\b`)
	// "find email from Michael" is still about correspondence.
	emailExchange = regexp.MustCompile(`\bemail\s+(?:from|with|to)\b`)
)

func matchClientSearch(q *Query) bool {
	if !q.Contains(searchVerbs...) {
		return false
	}
	e := q.Entities
	if e.Has(TopicPolicy) || e.Has(TopicTask) || e.Has(TopicOpportunity) {
		return false
	}
	if strings.Contains(q.Lower, "@") {
		return true
	}
	lower := q.Lower
	if !emailExchange.MatchString(lower) {
		lower = emailField.ReplaceAllString(lower, "")
	}
	return !correspondenceWords.MatchString(lower)
}

func matchExpiring(q *Query) bool {
	return q.Contains("expiring", "expire", "expiration", "up for renewal", "renewing", "lapsing")
}

func matchClientPolicies(q *Query) bool {
	return q.Entities.Has(TopicPolicy) && len(q.Entities.ClientNames) > 0
}

func matchPoliciesByType(q *Query) bool {
	if len(q.Entities.PolicyTypes) > 0 {
		return true
	}
	return q.Entities.Has(TopicPolicy) && q.Contains("by type", "breakdown", "how many policies", "list", "all policies", "show policies", "policy mix")
}

func matchTasksDueToday(q *Query) bool {
	if q.Contains("overdue", "past due") {
		return false
	}
	if q.Contains("my day", "agenda", "to do today", "todo today") {
		return true
	}
	return q.Entities.Has(TopicTask) && q.Contains("today", "due")
}

func matchOverdue(q *Query) bool {
	return q.Contains("overdue", "past due", "late tasks", "missed")
}

func matchOpportunities(q *Query) bool {
	return q.Entities.Has(TopicOpportunity) || q.Contains("high priority", "high-priority", "priorities")
}

func matchCommunications(q *Query) bool {
	return q.Contains("communication", "emails", "email", "calls", "contact history", "messages", "last contact", "spoke", "talked", "correspondence")
}

func matchRevenue(q *Query) bool {
	return q.Contains("revenue", "premium", "income", "earnings", "book of business", "sales")
}

func matchHelp(q *Query) bool {
	return q.Contains("help", "what can you do", "capabilities", "commands", "how do i", "how to use", "what do you know")
}
