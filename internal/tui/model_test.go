package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/otfkit/internal/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func testWorkouts() []models.Workout {
	return []models.Workout{
		{
			PerformanceSummaryID: "ps-1",
			BookingID:            "b1",
			Coach:                strPtr("Jo March"),
			CaloriesBurned:       intPtr(512),
			HeartRate:            models.HeartRate{MaxHR: intPtr(188)},
			OtfClass:             models.WorkoutClass{Name: "Orange 60", StartsAt: strPtr("2024-01-15T10:00:00")},
		},
		{
			PerformanceSummaryID: "ps-2",
			BookingID:            "b2",
			OtfClass:             models.WorkoutClass{Name: "Strength 50"},
		},
	}
}

func TestRow(t *testing.T) {
	ws := testWorkouts()

	got := Row(ws[0])
	want := []string{"Mon Jan 15 10:00", "Orange 60", "Jo March", "512", "-", "188", "-", "b1"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Row() = %v, want %v", got, want)
	}

	got = Row(ws[1])
	if got[0] != "-" || got[2] != "-" || got[3] != "-" {
		t.Errorf("Row() with missing data = %v", got)
	}
	if len(got) != len(Headers) {
		t.Errorf("Row() has %d cells, want %d", len(got), len(Headers))
	}
}

func TestModelNavigation(t *testing.T) {
	var m tea.Model = New(testWorkouts())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	sel, ok := m.(Model).Selected()
	if !ok || sel.BookingID != "b2" {
		t.Errorf("Selected() after down = %v, %v", sel.BookingID, ok)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.(Model).showDetail {
		t.Error("enter should open details")
	}
	if !strings.Contains(m.View(), "Strength 50") {
		t.Error("view should include the selected workout")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestModelEmpty(t *testing.T) {
	m := New(nil)
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on empty model should report false")
	}
	if !strings.Contains(m.View(), "No workouts") {
		t.Error("empty view should say there are no workouts")
	}
}

func TestDetail(t *testing.T) {
	d := Detail(testWorkouts()[0])
	for _, want := range []string{"ps-1", "Jo March", "512", "max 188"} {
		if !strings.Contains(d, want) {
			t.Errorf("Detail() missing %q:\n%s", want, d)
		}
	}
}
