package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unitpile/unitpile/pkg/errors"
	"github.com/unitpile/unitpile/pkg/grid"
	"github.com/unitpile/unitpile/pkg/pile"
	"github.com/unitpile/unitpile/pkg/pipeline"
)

// layoutResponse is the body of GET /v1/layout.
type layoutResponse struct {
	Layout   grid.Layout `json:"layout"`
	Count    int         `json:"count"`
	Visible  int         `json:"visible"`
	Overflow int         `json:"overflow"`
	Badge    string      `json:"badge,omitempty"`
}

// handleLayout solves a grid layout for a bare count and frame.
// Query parameters: count (required), width, height, max_visible.
func (s *Server) handleLayout(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	count, err := intParam(q.Get("count"), "count")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateCount(count); err != nil {
		writeError(w, err)
		return
	}

	width, height, err := frameParams(q.Get("width"), q.Get("height"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.Options{Count: count, Width: width, Height: height}
	if v := q.Get("max_visible"); v != "" {
		maxVisible, err := intParam(v, "max_visible")
		if err != nil {
			writeError(w, err)
			return
		}
		opts.MaxVisible = maxVisible
	}
	opts.SetLayoutDefaults()

	visible := opts.VisibleCount(count)
	l, _, err := s.runner.SolveWithCacheInfo(req.Context(), visible, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	overflow := count - visible
	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:   l,
		Count:    count,
		Visible:  visible,
		Overflow: overflow,
		Badge:    grid.OverflowBadge(overflow),
	})
}

// createHabitRequest is the body of POST /v1/habits.
type createHabitRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Bad   bool   `json:"bad,omitempty"`
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, req *http.Request) {
	var body createHabitRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid JSON body: %v", err))
		return
	}

	existing, err := s.store.ListHabits(req.Context())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "list habits"))
		return
	}

	h, err := pile.NewHabit(body.Name, body.Color, body.Bad, len(existing))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.CreateHabit(req.Context(), h); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "create habit"))
		return
	}

	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleListHabits(w http.ResponseWriter, req *http.Request) {
	habits, err := s.store.ListHabits(req.Context())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "list habits"))
		return
	}
	if habits == nil {
		habits = []pile.Habit{}
	}
	writeJSON(w, http.StatusOK, habits)
}

func (s *Server) handleGetHabit(w http.ResponseWriter, req *http.Request) {
	h, err := s.store.GetHabit(req.Context(), chi.URLParam(req, "habitID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, req *http.Request) {
	if err := s.store.DeleteHabit(req.Context(), chi.URLParam(req, "habitID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// logUnitRequest is the body of POST /v1/habits/{id}/units. Count allows
// logging several units at once; zero means one.
type logUnitRequest struct {
	Count       int  `json:"count,omitempty"`
	Highlighted bool `json:"highlighted,omitempty"`
}

type logUnitResponse struct {
	Logged int   `json:"logged"`
	Total  int64 `json:"total"`
}

func (s *Server) handleLogUnit(w http.ResponseWriter, req *http.Request) {
	habitID := chi.URLParam(req, "habitID")

	var body logUnitRequest
	if req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid JSON body: %v", err))
			return
		}
	}
	if body.Count == 0 {
		body.Count = 1
	}
	if body.Count < 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidCount, "count must be positive, got %d", body.Count))
		return
	}

	for i := 0; i < body.Count; i++ {
		u := pile.NewUnit(habitID)
		u.Highlighted = body.Highlighted
		if err := s.store.AppendUnit(req.Context(), u); err != nil {
			writeError(w, err)
			return
		}
	}

	total, err := s.store.CountUnits(req.Context(), habitID)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "count units"))
		return
	}

	writeJSON(w, http.StatusCreated, logUnitResponse{Logged: body.Count, Total: total})
}

// handleRenderPile renders a habit's pile in the requested format.
// Query parameters: width, height, format (svg|png|json), style, background.
func (s *Server) handleRenderPile(w http.ResponseWriter, req *http.Request) {
	habitID := chi.URLParam(req, "habitID")
	q := req.URL.Query()

	habit, err := s.store.GetHabit(req.Context(), habitID)
	if err != nil {
		writeError(w, err)
		return
	}

	width, height, err := frameParams(q.Get("width"), q.Get("height"))
	if err != nil {
		writeError(w, err)
		return
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "format"))
		return
	}

	units, err := s.store.ListUnits(req.Context(), habitID, 0)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "list units"))
		return
	}

	opts := pipeline.Options{
		Width:      width,
		Height:     height,
		Formats:    []string{format},
		Style:      q.Get("style"),
		Background: q.Get("background"),
	}
	items := pile.Items(units, map[string]pile.Habit{habit.ID: habit})

	result, err := s.runner.Execute(req.Context(), items, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	data := result.Artifacts[format]
	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "application/json; charset=utf-8"
	}
}

// intParam parses a required integer query parameter.
func intParam(value, name string) (int, error) {
	if value == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s is required", name)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, value)
	}
	return n, nil
}

// frameParams parses optional width/height query parameters, leaving zero
// to pick up the pipeline defaults.
func frameParams(widthStr, heightStr string) (float64, float64, error) {
	var width, height float64
	var err error
	if widthStr != "" {
		width, err = strconv.ParseFloat(widthStr, 64)
		if err != nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidArea, "width must be a number, got %q", widthStr)
		}
	}
	if heightStr != "" {
		height, err = strconv.ParseFloat(heightStr, 64)
		if err != nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidArea, "height must be a number, got %q", heightStr)
		}
	}
	if err := errors.ValidateFrame(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}
