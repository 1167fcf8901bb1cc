// Package pile defines the habit-tracking domain model: habits, the units of
// progress logged against them, and the adapter that turns stored units into
// grid items for rendering.
package pile

import (
	"time"

	"github.com/google/uuid"

	"github.com/unitpile/unitpile/pkg/errors"
	"github.com/unitpile/unitpile/pkg/grid"
)

// DefaultPalette supplies cell colors for habits created without an explicit
// color, assigned round-robin by creation order.
var DefaultPalette = []string{
	"#4ade80", // green
	"#60a5fa", // blue
	"#fbbf24", // amber
	"#f472b6", // pink
	"#a78bfa", // violet
	"#34d399", // teal
}

// BadHabitColor is the warning color used for habits the user wants to
// reduce, overriding the palette.
const BadHabitColor = "#f87171"

// Habit is a user-defined habit. Bad marks habits the user is trying to
// reduce; their units render in the warning palette.
type Habit struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Color     string    `json:"color,omitempty" bson:"color,omitempty"`
	Bad       bool      `json:"bad,omitempty" bson:"bad,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Unit is one logged unit of progress against a habit.
type Unit struct {
	ID          string    `json:"id" bson:"id"`
	HabitID     string    `json:"habit_id" bson:"habit_id"`
	LoggedAt    time.Time `json:"logged_at" bson:"logged_at"`
	Highlighted bool      `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

// NewHabit builds a validated habit with a fresh UUID. An empty color picks
// from DefaultPalette using paletteIndex (typically the current habit count).
func NewHabit(name, color string, bad bool, paletteIndex int) (Habit, error) {
	if err := errors.ValidateHabitName(name); err != nil {
		return Habit{}, err
	}
	if err := errors.ValidateColor(color); err != nil {
		return Habit{}, err
	}

	if color == "" {
		color = DefaultPalette[((paletteIndex%len(DefaultPalette))+len(DefaultPalette))%len(DefaultPalette)]
	}
	if bad {
		color = BadHabitColor
	}

	return Habit{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		Bad:       bad,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewUnit builds a unit logged now against the given habit.
func NewUnit(habitID string) Unit {
	return Unit{
		ID:       uuid.NewString(),
		HabitID:  habitID,
		LoggedAt: time.Now().UTC(),
	}
}

// Items converts stored units into grid items in input order. Each item
// takes its habit's color; units of unknown habits fall back to the first
// palette color so a stale reference never drops a logged unit.
func Items(units []Unit, habits map[string]Habit) []grid.Item {
	items := make([]grid.Item, len(units))
	for i, u := range units {
		color := DefaultPalette[0]
		if h, ok := habits[u.HabitID]; ok && h.Color != "" {
			color = h.Color
		}
		items[i] = grid.Item{
			ID:          u.ID,
			Color:       color,
			Highlighted: u.Highlighted,
		}
	}
	return items
}

// CountItems builds n anonymous same-colored items. Used by surfaces that
// take a bare count (the layout endpoint, the render command) rather than
// stored units.
func CountItems(n int, color string) []grid.Item {
	if n <= 0 {
		return nil
	}
	if color == "" {
		color = DefaultPalette[0]
	}
	items := make([]grid.Item, n)
	for i := range items {
		items[i] = grid.Item{ID: uuid.NewString(), Color: color}
	}
	return items
}
