package service

import (
	"strings"
	"testing"

	"wordgrid/internal/models"
)

func emailTestPuzzle() models.Puzzle {
	return models.Puzzle{
		Categories: map[models.Difficulty]models.SelectedCategory{
			models.DifficultyEasiest: {"Fruits": {"apple", "pear", "plum", "fig"}},
			models.DifficultyHard:    {"___ Ball": {"base", "foot", "hand", "odd"}},
		},
		AllWords: []string{"pear", "foot", "fig", "base", "plum", "odd", "apple", "hand"},
	}
}

func TestBuildPuzzleText(t *testing.T) {
	body := buildPuzzleText(emailTestPuzzle(), "puzzle-123")

	for _, word := range []string{"apple", "foot", "odd"} {
		if !strings.Contains(body, word) {
			t.Errorf("body missing board word %q", word)
		}
	}
	if !strings.Contains(body, "ANSWER KEY") {
		t.Error("body missing answer key section")
	}
	if !strings.Contains(body, "Easiest — Fruits") {
		t.Error("body missing answer key entry for Easiest")
	}
	if !strings.Contains(body, "puzzle-123") {
		t.Error("body missing puzzle id")
	}
	// Board comes before the answer key.
	if strings.Index(body, "pear") > strings.Index(body, "ANSWER KEY") {
		t.Error("answer key appears before the board")
	}
}

func TestBuildPuzzleHTMLEscapes(t *testing.T) {
	puzzle := models.Puzzle{
		Categories: map[models.Difficulty]models.SelectedCategory{
			models.DifficultyEasy: {"<b>Tags</b>": {"a", "b", "c", "d"}},
		},
		AllWords: []string{"a", "b", "c", "<script>"},
	}

	body := buildPuzzleHTML(puzzle, "id")
	if strings.Contains(body, "<script>") {
		t.Error("board word not HTML-escaped")
	}
	if strings.Contains(body, "<b>Tags</b>") {
		t.Error("category name not HTML-escaped")
	}
}

func TestSendPuzzleDisabledService(t *testing.T) {
	svc := &EmailService{enabled: false}
	if err := svc.SendPuzzle(t.Context(), "someone@example.com", emailTestPuzzle(), "id"); err != nil {
		t.Errorf("disabled service should silently skip, got %v", err)
	}
}

func TestSortedDifficulties(t *testing.T) {
	puzzle := models.Puzzle{
		Categories: map[models.Difficulty]models.SelectedCategory{
			models.DifficultyHard:    {"H": {"1", "2", "3", "4"}},
			models.DifficultyEasiest: {"E": {"1", "2", "3", "4"}},
			"Bonus":                  {"B": {"1", "2", "3", "4"}},
		},
	}

	got := sortedDifficulties(puzzle)
	want := []models.Difficulty{models.DifficultyEasiest, models.DifficultyHard, "Bonus"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
