package service

import (
	"errors"
	"testing"

	"wordgrid/internal/crossword"
	"wordgrid/internal/models"
)

func TestParseBank(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, bank models.WordBank)
	}{
		{
			name:  "valid bank",
			input: `{"Easiest": {"Fruits": ["apple", "pear", "plum", "fig"]}, "Hard": {"___ Ball": ["base", "foot"]}}`,
			check: func(t *testing.T, bank models.WordBank) {
				if len(bank) != 2 {
					t.Errorf("got %d difficulties, want 2", len(bank))
				}
				words := bank[models.DifficultyEasiest]["Fruits"]
				if len(words) != 4 || words[0] != "apple" {
					t.Errorf("unexpected Fruits words: %v", words)
				}
				// Short categories are kept; selection filters them later.
				if len(bank[models.DifficultyHard]["___ Ball"]) != 2 {
					t.Error("short category dropped at parse time")
				}
			},
		},
		{
			name:  "empty bank",
			input: `{}`,
			check: func(t *testing.T, bank models.WordBank) {
				if len(bank) != 0 {
					t.Errorf("got %d difficulties, want 0", len(bank))
				}
			},
		},
		{
			name:    "not an object",
			input:   `["apple"]`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			input:   `{`,
			wantErr: true,
		},
		{
			name:    "blank category name",
			input:   `{"Easy": {"  ": ["a", "b", "c", "d"]}}`,
			wantErr: true,
		},
		{
			name:    "blank word",
			input:   `{"Easy": {"Pets": ["cat", ""]}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank, err := ParseBank([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var malformed *MalformedBankError
				if !errors.As(err, &malformed) {
					t.Errorf("error is %T, want *MalformedBankError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBank: %v", err)
			}
			tt.check(t, bank)
		})
	}
}

func TestParseClues(t *testing.T) {
	input := `{
		"stare": ["Look intently", "Fixate"],
		"bad word": ["Has a space"],
		"mute": []
	}`

	entries, err := ParseClues([]byte(input), crossword.ValidWord)
	if err != nil {
		t.Fatalf("ParseClues: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %v", len(entries), entries)
	}
	clues, ok := entries["STARE"]
	if !ok {
		t.Fatal("expected uppercased STARE entry")
	}
	if len(clues) != 2 {
		t.Errorf("got %d clues, want 2", len(clues))
	}
}

func TestParseCluesMalformed(t *testing.T) {
	if _, err := ParseClues([]byte(`"just a string"`), nil); err == nil {
		t.Error("expected error for non-object clue file")
	}
}
