package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"git.sr.ht/~jakintosh/tasklist/internal/domain"
	"git.sr.ht/~jakintosh/tasklist/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.InMemoryStore) {
	t.Helper()
	st := store.NewInMemoryStore(&domain.CounterGenerator{})
	srv, err := NewServer(st, ServerOptions{})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv, st
}

func do(srv http.Handler, method, target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func currentState(t *testing.T, st domain.Store) domain.State {
	t.Helper()
	s, err := st.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	return s
}

func TestIndexEmptyState(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(srv, http.MethodGet, "/", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>Todo List</title>",
		`placeholder="Add a new task"`,
		emptyMessage,
		`<option value="General" selected>General</option>`,
		`<option value="Shopping">Shopping</option>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestCreateTaskHTMX(t *testing.T) {
	srv, st := newTestServer(t)

	rec := do(srv, http.MethodPost, "/tasks", url.Values{"text": {"Buy milk"}, "category": {"Shopping"}}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	s := currentState(t, st)
	want := domain.Task{ID: "1", Text: "Buy milk", Category: domain.Shopping}
	if len(s.Tasks) != 1 || s.Tasks[0] != want {
		t.Fatalf("Tasks: got %+v, want [%+v]", s.Tasks, want)
	}
	if s.Draft != "" {
		t.Errorf("Draft: got %q, want empty", s.Draft)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `id="task-1"`) || !strings.Contains(body, "[Shopping]") {
		t.Errorf("list fragment missing task: %s", body)
	}
	if !strings.Contains(body, "entering") {
		t.Errorf("new task not flagged for entry: %s", body)
	}
	if !strings.Contains(body, `hx-swap-oob="true"`) {
		t.Errorf("form not sent out of band: %s", body)
	}
	if strings.Contains(body, emptyMessage) {
		t.Error("empty message shown with one task")
	}

	var trigger map[string]triggerDetail
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger); err != nil {
		t.Fatalf("HX-Trigger: %v", err)
	}
	added, ok := trigger[string(domain.TaskAdded)]
	if !ok || len(added.IDs) != 1 || added.IDs[0] != "1" {
		t.Errorf("HX-Trigger task-added: got %+v", trigger)
	}
}

func TestCreateTaskBlankIsRejected(t *testing.T) {
	srv, st := newTestServer(t)

	rec := do(srv, http.MethodPost, "/tasks", url.Values{"text": {"   "}, "category": {"General"}}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	s := currentState(t, st)
	if !s.Empty() {
		t.Errorf("Tasks: got %+v, want none", s.Tasks)
	}
	if s.Draft != "   " {
		t.Errorf("Draft: got %q, want kept", s.Draft)
	}
	if !strings.Contains(rec.Body.String(), emptyMessage) {
		t.Error("expected empty message after rejected add")
	}
	if strings.Contains(rec.Header().Get("HX-Trigger"), string(domain.TaskAdded)) {
		t.Errorf("unexpected task-added trigger: %s", rec.Header().Get("HX-Trigger"))
	}
}

func TestCreateTaskWithoutHTMXRedirects(t *testing.T) {
	srv, st := newTestServer(t)

	rec := do(srv, http.MethodPost, "/tasks", url.Values{"text": {"A"}, "category": {"Work"}}, false)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want /", loc)
	}
	if s := currentState(t, st); len(s.Tasks) != 1 {
		t.Errorf("Tasks: got %+v", s.Tasks)
	}
}

func TestDraftAndCategory(t *testing.T) {
	srv, st := newTestServer(t)

	if rec := do(srv, http.MethodPost, "/draft", url.Values{"text": {"Call mom"}}, true); rec.Code != http.StatusNoContent {
		t.Fatalf("draft status: got %d, want 204", rec.Code)
	}
	if rec := do(srv, http.MethodPost, "/category", url.Values{"category": {"Personal"}}, true); rec.Code != http.StatusNoContent {
		t.Fatalf("category status: got %d, want 204", rec.Code)
	}
	if rec := do(srv, http.MethodPost, "/category", url.Values{"category": {"Errands"}}, true); rec.Code != http.StatusNoContent {
		t.Fatalf("unknown category status: got %d, want 204", rec.Code)
	}

	s := currentState(t, st)
	if s.Draft != "Call mom" || s.Category != domain.Personal {
		t.Fatalf("state: got %+v", s)
	}

	// A submit carrying no fields adds from the stored draft.
	do(srv, http.MethodPost, "/tasks", url.Values{}, true)
	s = currentState(t, st)
	want := domain.Task{ID: "1", Text: "Call mom", Category: domain.Personal}
	if len(s.Tasks) != 1 || s.Tasks[0] != want {
		t.Errorf("Tasks: got %+v, want [%+v]", s.Tasks, want)
	}

	body := do(srv, http.MethodGet, "/", nil, false).Body.String()
	if !strings.Contains(body, `<option value="Personal" selected>Personal</option>`) {
		t.Error("selected category not rendered")
	}
}

func TestToggleAndDelete(t *testing.T) {
	srv, st := newTestServer(t)
	st.Dispatch(domain.Add{Text: "A", Category: domain.General})
	st.Dispatch(domain.Add{Text: "B", Category: domain.Work})

	rec := do(srv, http.MethodPatch, "/tasks/1/toggle", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `class="task completed"`) {
		t.Errorf("toggled task not struck through: %s", rec.Body.String())
	}
	s := currentState(t, st)
	if !s.Tasks[0].Completed || s.Tasks[1].Completed {
		t.Errorf("after toggle: %+v", s.Tasks)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), string(domain.TaskToggled)) {
		t.Errorf("HX-Trigger: got %q", rec.Header().Get("HX-Trigger"))
	}

	rec = do(srv, http.MethodDelete, "/tasks/1", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status: got %d, want 200", rec.Code)
	}
	s = currentState(t, st)
	if len(s.Tasks) != 1 || s.Tasks[0].Text != "B" {
		t.Errorf("after delete: %+v", s.Tasks)
	}

	rec = do(srv, http.MethodPost, "/tasks/2/delete", nil, false)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("fallback delete status: got %d, want 303", rec.Code)
	}
	if s := currentState(t, st); !s.Empty() {
		t.Errorf("after fallback delete: %+v", s.Tasks)
	}
}

func TestUnknownTaskIsNoop(t *testing.T) {
	srv, st := newTestServer(t)
	st.Dispatch(domain.Add{Text: "A", Category: domain.General})

	for _, tc := range []struct {
		method, target string
	}{
		{http.MethodPatch, "/tasks/42/toggle"},
		{http.MethodDelete, "/tasks/42"},
	} {
		rec := do(srv, tc.method, tc.target, nil, true)
		if rec.Code != http.StatusOK {
			t.Errorf("%s %s: got %d, want 200", tc.method, tc.target, rec.Code)
		}
		if rec.Header().Get("HX-Trigger") != "" {
			t.Errorf("%s %s: unexpected trigger %q", tc.method, tc.target, rec.Header().Get("HX-Trigger"))
		}
	}

	s := currentState(t, st)
	if len(s.Tasks) != 1 || s.Tasks[0].Completed {
		t.Errorf("state changed: %+v", s.Tasks)
	}
}

func TestTaskTextIsEscaped(t *testing.T) {
	srv, st := newTestServer(t)
	st.Dispatch(domain.Add{Text: "<script>alert(1)</script>", Category: domain.General})

	body := do(srv, http.MethodGet, "/", nil, false).Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("task text rendered unescaped")
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(srv, http.MethodGet, "/healthz", nil, false)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz: got %d %q", rec.Code, rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(srv, http.MethodGet, "/tasks/1/toggle", nil, false)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rec.Code)
	}
}
