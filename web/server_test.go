// ABOUTME: Tests for the web UI handlers and chat API
// ABOUTME: Exercises the routing table through httptest against the seeded store
package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/chat"
	"github.com/harperreed/inscrm/store"
)

var refTime = time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return refTime }

func setupServer(t *testing.T) (*Server, *store.Memory) {
	t.Helper()
	s := store.NewSeeded(refTime)
	local := &chat.LocalStrategy{Router: assistant.NewRouter(s, assistant.WithClock(clock))}
	remote := &chat.RemoteStrategy{Store: s}
	d := chat.NewDispatcher(chat.NewSession(chat.ModeLocal), local, remote, zap.NewNop())

	srv, err := NewServer(s, d, zap.NewNop())
	require.NoError(t, err)
	srv.now = clock
	return srv, s
}

func do(t *testing.T, srv *Server, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) chatState {
	t.Helper()
	var st chatState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestPagesRender(t *testing.T) {
	srv, _ := setupServer(t)

	pages := map[string]string{
		"/":                                   "Dashboard",
		"/clients":                            "Jamal Haija",
		"/clients?q=Sarah":                    "Sarah",
		"/policies":                           "HO-448210",
		"/policies?type=cyber":                "CY-771204",
		"/tasks":                              "Complete",
		"/tasks?view=overdue":                 "Overdue",
		"/opportunities?priority=high&open=1": "Opportunities",
		"/reports":                            "open opportunities",
		"/graphs":                             "Whole portfolio",
	}
	for path, want := range pages {
		t.Run(path, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, path, "", "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), want)
		})
	}
}

func TestPolicyFilterExcludesOtherTypes(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/policies?type=cyber", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "HO-448210")
}

func TestDashboardShowsTotals(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "9 active")
	assert.Contains(t, body, "Not contacted in 30+ days")
}

func TestUnknownPathIs404(t *testing.T) {
	srv, _ := setupServer(t)
	rec := do(t, srv, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddClient(t *testing.T) {
	srv, s := setupServer(t)
	formType := "application/x-www-form-urlencoded"

	t.Run("validation errors re-render the form", func(t *testing.T) {
		form := url.Values{"first_name": {"Ana"}, "email": {"not-an-email"}}
		rec := do(t, srv, http.MethodPost, "/clients", form.Encode(), formType)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "last name is required")
		assert.Contains(t, rec.Body.String(), "email is not a valid address")
		assert.Contains(t, rec.Body.String(), `value="Ana"`)
	})

	t.Run("valid form redirects", func(t *testing.T) {
		form := url.Values{"first_name": {"Ana"}, "last_name": {"Ruiz"}, "email": {"ana@example.com"}}
		rec := do(t, srv, http.MethodPost, "/clients", form.Encode(), formType)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/clients", rec.Header().Get("Location"))

		clients, err := s.Clients()
		require.NoError(t, err)
		assert.Len(t, clients, 12)
	})
}

func TestClientDetailPartial(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/partials/client-detail?id=CL-1001", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "$2,430 across 2 active policies")
	assert.NotContains(t, rec.Body.String(), "<nav")

	rec = do(t, srv, http.MethodGet, "/partials/client-detail?id=CL-9999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskStatus(t *testing.T) {
	srv, s := setupServer(t)
	formType := "application/x-www-form-urlencoded"

	rec := do(t, srv, http.MethodPost, "/tasks/TK-4001/status", "status=completed", formType)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "completed")

	task, err := s.Task("TK-4001")
	require.NoError(t, err)
	assert.NotNil(t, task.CompletedAt)

	rec = do(t, srv, http.MethodPost, "/tasks/TK-9999/status", "status=completed", formType)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPost, "/tasks/TK-4002/status", "status=bogus", formType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGraphPartial(t *testing.T) {
	srv, _ := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/partials/graph?type=client", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/partials/graph?type=sideways", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/partials/graph?type=client&client_id=CL-1001", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jamal Haija")

	rec = do(t, srv, http.MethodGet, "/partials/graph?type=portfolio", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "-&gt;")
}

func TestChatAPI(t *testing.T) {
	srv, _ := setupServer(t)
	jsonType := "application/json"

	rec := do(t, srv, http.MethodGet, "/api/chat", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Equal(t, chat.ModeLocal, st.Mode)
	assert.False(t, st.Open)
	require.Len(t, st.Messages, 1)
	assert.Equal(t, chat.GreetingText, st.Messages[0].Content)

	rec = do(t, srv, http.MethodPost, "/api/chat/toggle", "", "")
	assert.True(t, decodeState(t, rec).Open)

	rec = do(t, srv, http.MethodPost, "/api/chat", `{"message": "How many clients do we have?"}`, jsonType)
	require.Equal(t, http.StatusOK, rec.Code)
	var sent chatSendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	assert.Contains(t, sent.Reply.Content, "You have 11 clients: 9 active, 1 inactive, 1 pending.")
	assert.Equal(t, chat.ModeLocal, sent.Mode)

	rec = do(t, srv, http.MethodGet, "/api/chat", "", "")
	assert.Len(t, decodeState(t, rec).Messages, 3)

	rec = do(t, srv, http.MethodPost, "/api/chat/clear", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeState(t, rec).Messages, 1)
}

func TestChatAPIRejectsBadInput(t *testing.T) {
	srv, _ := setupServer(t)
	jsonType := "application/json"

	rec := do(t, srv, http.MethodPost, "/api/chat", `{"message": "   "}`, jsonType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/chat", `not json`, jsonType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/chat/mode", `{"mode": "psychic"}`, jsonType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/chat/mode", `{"mode": "remote"}`, jsonType)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, chat.ModeRemote, decodeState(t, rec).Mode)
}

func TestRemoteWithoutCompleterApologizes(t *testing.T) {
	srv, _ := setupServer(t)
	srv.dispatcher.Session().SetMode(chat.ModeRemote)

	rec := do(t, srv, http.MethodPost, "/api/chat", `{"message": "Who is up for renewal?"}`, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	var sent chatSendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	assert.NotEmpty(t, sent.Reply.Content)
	assert.Equal(t, chat.ModeRemote, sent.Mode)
}
