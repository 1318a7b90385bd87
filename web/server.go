// ABOUTME: Web UI server with embedded templates
// ABOUTME: Read-mostly dashboard pages plus the JSON chat API at localhost:8080
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/chat"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/harperreed/inscrm/viz"
)

//go:embed templates/*
var templatesFS embed.FS

type Server struct {
	store      store.ReadWriter
	dispatcher *chat.Dispatcher
	templates  *template.Template
	generator  *viz.GraphGenerator
	logger     *zap.Logger
	now        func() time.Time
}

func NewServer(s store.ReadWriter, d *chat.Dispatcher, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Helper functions for templates
	funcMap := template.FuncMap{
		"money":    assistant.Money,
		"date":     assistant.ShortDate,
		"humanize": models.HumanizeType,
		"pct": func(part, total int) int {
			if total == 0 {
				return 0
			}
			return part * 100 / total
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		store:      s,
		dispatcher: d,
		templates:  tmpl,
		generator:  viz.NewGraphGenerator(s),
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Handler returns the routing table. Start serves it; tests call it directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /clients", s.handleClients)
	mux.HandleFunc("POST /clients", s.handleAddClient)
	mux.HandleFunc("GET /policies", s.handlePolicies)
	mux.HandleFunc("GET /tasks", s.handleTasks)
	mux.HandleFunc("POST /tasks/{id}/status", s.handleTaskStatus)
	mux.HandleFunc("GET /opportunities", s.handleOpportunities)
	mux.HandleFunc("GET /reports", s.handleReports)
	mux.HandleFunc("GET /graphs", s.handleGraphs)

	// Partials for HTMX
	mux.HandleFunc("GET /partials/client-detail", s.handleClientDetail)
	mux.HandleFunc("GET /partials/graph", s.handleGraphPartial)

	// Chat API
	mux.HandleFunc("GET /api/chat", s.handleChatState)
	mux.HandleFunc("POST /api/chat", s.handleChatSend)
	mux.HandleFunc("POST /api/chat/mode", s.handleChatMode)
	mux.HandleFunc("POST /api/chat/clear", s.handleChatClear)
	mux.HandleFunc("POST /api/chat/toggle", s.handleChatToggle)

	return mux
}

// Start serves on port until ctx is cancelled.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", zap.String("url", fmt.Sprintf("http://localhost%s", srv.Addr)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	// Execute the specified template (usually layout.html)
	// The data map includes ContentTemplate to specify which content block to render
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		s.logger.Error("template error", zap.String("template", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Server) renderPage(w http.ResponseWriter, title, content string, data map[string]interface{}) {
	data["Title"] = title
	data["ContentTemplate"] = content
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := viz.GenerateDashboardStats(s.store, s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "Dashboard", "dashboard-content", map[string]interface{}{
		"Stats":  stats,
		"Types":  models.PolicyTypes,
		"Window": viz.StaleAfterDays,
	})
}

type clientView struct {
	models.Client
	Name string
}

func (s *Server) clientViews(query, status string) ([]clientView, error) {
	clients, err := s.store.Clients()
	if err != nil {
		return nil, err
	}
	policies, err := s.store.Policies()
	if err != nil {
		return nil, err
	}
	if query != "" {
		clients = assistant.MatchClients(clients, []string{query})
	}

	var views []clientView
	for _, c := range clients {
		if status != "" && c.Status != status {
			continue
		}
		c = models.RecomputeClient(c, policies)
		views = append(views, clientView{Client: c, Name: c.FullName()})
	}
	return views, nil
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")

	views, err := s.clientViews(query, status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "Clients", "clients-content", map[string]interface{}{
		"Clients": views,
		"Query":   query,
		"Status":  status,
	})
}

func (s *Server) handleAddClient(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := models.ClientForm{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		Address:   r.PostFormValue("address"),
		Status:    r.PostFormValue("status"),
	}
	if err := form.Validate(); err != nil {
		var verrs models.ValidationErrors
		if !errors.As(err, &verrs) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		views, lerr := s.clientViews("", "")
		if lerr != nil {
			http.Error(w, lerr.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.renderPage(w, "Clients", "clients-content", map[string]interface{}{
			"Clients": views,
			"Form":    form,
			"Errors":  verrs,
		})
		return
	}

	client := form.ToClient(store.NewID("CL"), s.now())
	if err := s.store.AddClient(&client); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("client added", zap.String("client_id", client.ID))
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

func (s *Server) handleClientDetail(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	client, err := s.store.Client(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if client == nil {
		http.Error(w, "Client not found", http.StatusNotFound)
		return
	}

	policies, _ := s.store.PoliciesByClient(id)
	tasks, _ := s.store.TasksByClient(id)
	opps, _ := s.store.OpportunitiesByClient(id)
	comms, _ := s.store.CommunicationsByClient(id)
	fresh := models.RecomputeClient(*client, policies)

	s.renderTemplate(w, "partials/client-detail.html", map[string]interface{}{
		"Client":         fresh,
		"Name":           fresh.FullName(),
		"Policies":       policies,
		"Tasks":          tasks,
		"Opportunities":  opps,
		"Communications": comms,
	})
}

type policyView struct {
	models.Policy
	ClientName string
	Expiring   bool
}

func (s *Server) handlePolicies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	policyType := q.Get("type")
	status := q.Get("status")
	expiringOnly := q.Get("expiring") != ""

	policies, err := s.store.Policies()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	names, err := s.clientNames()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := s.now()
	var views []policyView
	for _, p := range policies {
		if policyType != "" && p.Type != policyType {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		expiring := assistant.IsExpiringSoon(p, now)
		if expiringOnly && !expiring {
			continue
		}
		views = append(views, policyView{Policy: p, ClientName: names[p.ClientID], Expiring: expiring})
	}

	s.renderPage(w, "Policies", "policies-content", map[string]interface{}{
		"Policies": views,
		"Types":    models.PolicyTypes,
		"Type":     policyType,
		"Expiring": expiringOnly,
	})
}

type taskView struct {
	models.Task
	ClientName string
	Overdue    bool
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("view")

	tasks, err := s.store.Tasks()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	names, err := s.clientNames()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := s.now()
	switch filter {
	case "today":
		tasks = assistant.DueToday(tasks, now)
	case "overdue":
		tasks = assistant.Overdue(tasks, now)
	}

	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		v := taskView{Task: t, Overdue: t.IsOverdue(now)}
		if t.ClientID != nil {
			v.ClientName = names[*t.ClientID]
		}
		views = append(views, v)
	}

	s.renderPage(w, "Tasks", "tasks-content", map[string]interface{}{
		"Tasks": views,
		"View":  filter,
	})
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	status := r.FormValue("status")

	task, err := s.store.UpdateTaskStatus(id, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = fmt.Fprintf(w, `<span class="text-green-600">✓ %s</span>`, template.HTMLEscapeString(task.Status))
	if err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

type opportunityView struct {
	models.Opportunity
	ClientName string
}

func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	priority := r.URL.Query().Get("priority")
	openOnly := r.URL.Query().Get("open") != ""

	opps, err := s.store.Opportunities()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	names, err := s.clientNames()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var views []opportunityView
	for _, o := range opps {
		if priority != "" && o.Priority != priority {
			continue
		}
		if openOnly && !o.IsOpen() {
			continue
		}
		views = append(views, opportunityView{Opportunity: o, ClientName: names[o.ClientID]})
	}

	s.renderPage(w, "Opportunities", "opportunities-content", map[string]interface{}{
		"Opportunities": views,
		"Priority":      priority,
	})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	stored, err := s.store.Reports()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	live, err := viz.BuildReports(s.store, s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "Reports", "reports-content", map[string]interface{}{
		"Stored": stored,
		"Live":   live,
	})
}

func (s *Server) handleGraphs(w http.ResponseWriter, r *http.Request) {
	views, err := s.clientViews("", "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.renderPage(w, "Graphs", "graphs-content", map[string]interface{}{
		"Clients": views,
	})
}

func (s *Server) handleGraphPartial(w http.ResponseWriter, r *http.Request) {
	graphType := r.URL.Query().Get("type")
	clientID := r.URL.Query().Get("client_id")

	var dot string
	var err error

	switch graphType {
	case "client":
		if clientID == "" {
			http.Error(w, "Client ID required", http.StatusBadRequest)
			return
		}
		dot, err = s.generator.GenerateClientGraph(clientID)
	case "portfolio":
		dot, err = s.generator.GeneratePortfolioGraph()
	default:
		http.Error(w, "Invalid graph type", http.StatusBadRequest)
		return
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "partials/graph.html", map[string]interface{}{
		"DOT": dot,
	})
}

func (s *Server) clientNames() (map[string]string, error) {
	clients, err := s.store.Clients()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = strings.TrimSpace(c.FullName())
	}
	return names, nil
}
