package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/unitpile/unitpile/pkg/pile"
	"github.com/unitpile/unitpile/pkg/pipeline"
	"github.com/unitpile/unitpile/pkg/store/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := NewServer(pipeline.NewRunner(nil, nil, logger), memory.New(), logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createHabit(t *testing.T, ts *httptest.Server, name string) pile.Habit {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q}`, name)
	resp, err := http.Post(ts.URL+"/v1/habits", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/habits error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /v1/habits status = %d, want 201", resp.StatusCode)
	}
	var h pile.Habit
	decodeJSON(t, resp, &h)
	return h
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/layout?count=100&width=400&height=300")
	if err != nil {
		t.Fatalf("GET /v1/layout error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out layoutResponse
	decodeJSON(t, resp, &out)

	if out.Count != 100 || out.Visible != 100 || out.Overflow != 0 {
		t.Errorf("counts = %d/%d/%d, want 100/100/0", out.Count, out.Visible, out.Overflow)
	}
	if out.Layout.CellSize < 1 {
		t.Errorf("CellSize = %d, want >= 1", out.Layout.CellSize)
	}
	if out.Layout.Columns*out.Layout.Rows < 100 {
		t.Errorf("capacity = %d, want >= 100", out.Layout.Columns*out.Layout.Rows)
	}
}

func TestLayoutEndpointOverflow(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/layout?count=20000&width=800&height=600")
	if err != nil {
		t.Fatalf("GET /v1/layout error: %v", err)
	}
	var out layoutResponse
	decodeJSON(t, resp, &out)

	if out.Visible != 15000 {
		t.Errorf("Visible = %d, want 15000", out.Visible)
	}
	if out.Overflow != 5000 {
		t.Errorf("Overflow = %d, want 5000", out.Overflow)
	}
	if out.Badge != "+5,000" {
		t.Errorf("Badge = %q, want %q", out.Badge, "+5,000")
	}
}

func TestLayoutEndpointValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing count", "", http.StatusBadRequest},
		{"non-numeric count", "count=abc", http.StatusBadRequest},
		{"negative count", "count=-5", http.StatusBadRequest},
		{"bad width", "count=10&width=wide", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/v1/layout?" + tt.query)
			if err != nil {
				t.Fatalf("GET error: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}

			var env errorEnvelope
			if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
				t.Fatalf("decode error envelope: %v", err)
			}
			if env.Error.Code == "" {
				t.Error("error code should not be empty")
			}
		})
	}
}

func TestHabitCRUD(t *testing.T) {
	ts := newTestServer(t)

	h := createHabit(t, ts, "Meditate")
	if h.ID == "" {
		t.Fatal("habit ID should not be empty")
	}
	if h.Color == "" {
		t.Error("habit should get a palette color")
	}

	// Get
	resp, err := http.Get(ts.URL + "/v1/habits/" + h.ID)
	if err != nil {
		t.Fatalf("GET habit error: %v", err)
	}
	var got pile.Habit
	decodeJSON(t, resp, &got)
	if got.Name != "Meditate" {
		t.Errorf("Name = %q, want %q", got.Name, "Meditate")
	}

	// List
	resp, err = http.Get(ts.URL + "/v1/habits")
	if err != nil {
		t.Fatalf("GET habits error: %v", err)
	}
	var habits []pile.Habit
	decodeJSON(t, resp, &habits)
	if len(habits) != 1 {
		t.Errorf("habits = %d, want 1", len(habits))
	}

	// Delete
	delReq, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/habits/"+h.ID, nil)
	resp, err = http.DefaultClient.Do(delReq)
	if err != nil {
		t.Fatalf("DELETE habit error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", resp.StatusCode)
	}

	// Get after delete
	resp, err = http.Get(ts.URL + "/v1/habits/" + h.ID)
	if err != nil {
		t.Fatalf("GET deleted habit error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET deleted status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateHabitValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":""}`},
		{"bad color", `{"name":"Run","color":"red"}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/habits", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestLogUnits(t *testing.T) {
	ts := newTestServer(t)
	h := createHabit(t, ts, "Read")

	resp, err := http.Post(ts.URL+"/v1/habits/"+h.ID+"/units", "application/json",
		bytes.NewReader([]byte(`{"count":3}`)))
	if err != nil {
		t.Fatalf("POST units error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var out logUnitResponse
	decodeJSON(t, resp, &out)
	if out.Logged != 3 || out.Total != 3 {
		t.Errorf("logged/total = %d/%d, want 3/3", out.Logged, out.Total)
	}

	// Empty body logs one unit
	resp, err = http.Post(ts.URL+"/v1/habits/"+h.ID+"/units", "application/json", nil)
	if err != nil {
		t.Fatalf("POST single unit error: %v", err)
	}
	decodeJSON(t, resp, &out)
	if out.Logged != 1 || out.Total != 4 {
		t.Errorf("logged/total = %d/%d, want 1/4", out.Logged, out.Total)
	}

	// Unknown habit
	resp, err = http.Post(ts.URL+"/v1/habits/does-not-exist/units", "application/json", nil)
	if err != nil {
		t.Fatalf("POST unknown habit error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRenderPile(t *testing.T) {
	ts := newTestServer(t)
	h := createHabit(t, ts, "Exercise")

	resp, err := http.Post(ts.URL+"/v1/habits/"+h.ID+"/units", "application/json",
		bytes.NewReader([]byte(`{"count":9}`)))
	if err != nil {
		t.Fatalf("POST units error: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/v1/habits/" + h.ID + "/pile?width=300&height=300")
	if err != nil {
		t.Fatalf("GET pile error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if got := strings.Count(string(body), `class="cell"`); got != 9 {
		t.Errorf("cell count = %d, want 9", got)
	}
	if !strings.Contains(string(body), h.Color) {
		t.Error("svg should use the habit's color")
	}
}

func TestRenderPileJSON(t *testing.T) {
	ts := newTestServer(t)
	h := createHabit(t, ts, "Write")

	resp, err := http.Get(ts.URL + "/v1/habits/" + h.ID + "/pile?format=json")
	if err != nil {
		t.Fatalf("GET pile error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRenderPileBadFormat(t *testing.T) {
	ts := newTestServer(t)
	h := createHabit(t, ts, "Sleep")

	resp, err := http.Get(ts.URL + "/v1/habits/" + h.ID + "/pile?format=gif")
	if err != nil {
		t.Fatalf("GET pile error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
