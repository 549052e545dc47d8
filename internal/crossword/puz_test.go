package crossword

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"wordgrid/internal/models"
)

func buildTestPuzzle(t *testing.T) *Puzzle {
	t.Helper()
	g := NewGenerator(5, rand.New(rand.NewSource(0)))
	g.reset()
	g.place("SHARE", "Divide up", 1, 0, models.DirectionAcross)
	g.place("HEN", "Egg layer", 1, 1, models.DirectionDown)
	g.assignNumbers()
	return g.build()
}

func TestEncodePuzHeader(t *testing.T) {
	puzzle := buildTestPuzzle(t)
	puzzle.Metadata.Title = "Test Mini"
	puzzle.Metadata.Author = "tester"

	data, err := EncodePuz(puzzle, "© 2026")
	if err != nil {
		t.Fatalf("EncodePuz: %v", err)
	}

	if got := string(data[0x02:0x0E]); got != puzMagic {
		t.Errorf("magic = %q, want %q", got, puzMagic)
	}
	if got := string(data[0x18:0x1C]); got != puzVersion {
		t.Errorf("version = %q, want %q", got, puzVersion)
	}
	if data[offCIB] != 5 || data[offCIB+1] != 5 {
		t.Errorf("dimensions = %dx%d, want 5x5", data[offCIB], data[offCIB+1])
	}
	if got := binary.LittleEndian.Uint16(data[offCIB+2:]); got != 2 {
		t.Errorf("clue count = %d, want 2", got)
	}

	// Both checksums must match a recomputation over the written bytes.
	if got, want := binary.LittleEndian.Uint16(data[offCIBChecksum:]), checksum(data[offCIB:offCIB+cibLength], 0); got != want {
		t.Errorf("CIB checksum = %#x, want %#x", got, want)
	}
	if got, want := binary.LittleEndian.Uint16(data[offFileChecksum:]), checksum(data[offCIB:], 0); got != want {
		t.Errorf("file checksum = %#x, want %#x", got, want)
	}
}

func TestEncodePuzBoards(t *testing.T) {
	puzzle := buildTestPuzzle(t)
	data, err := EncodePuz(puzzle, "")
	if err != nil {
		t.Fatalf("EncodePuz: %v", err)
	}

	boardLen := 25
	solution := data[offCIB+cibLength : offCIB+cibLength+boardLen]
	player := data[offCIB+cibLength+boardLen : offCIB+cibLength+2*boardLen]

	// Row 1 holds SHARE; row 2 holds the E of HEN at column 1.
	if got := string(solution[5:10]); got != "SHARE" {
		t.Errorf("solution row 1 = %q, want %q", got, "SHARE")
	}
	if solution[2*5+1] != 'E' {
		t.Errorf("solution (2,1) = %q, want E", solution[2*5+1])
	}
	for i, b := range solution {
		isBlack := b == '.'
		if isBlack && player[i] != '.' {
			t.Errorf("cell %d: black in solution but %q in player grid", i, player[i])
		}
		if !isBlack && player[i] != '-' {
			t.Errorf("cell %d: fillable but player grid has %q", i, player[i])
		}
	}
}

func TestEncodePuzStrings(t *testing.T) {
	puzzle := buildTestPuzzle(t)
	puzzle.Metadata.Title = "Test Mini"
	puzzle.Metadata.Author = "tester"

	data, err := EncodePuz(puzzle, "copy")
	if err != nil {
		t.Fatalf("EncodePuz: %v", err)
	}

	strSection := data[offCIB+cibLength+2*25:]
	fields := bytes.Split(strSection, []byte{0})
	// title, author, copyright, two clues, notes, then the final empty split.
	want := []string{"Test Mini", "tester", "copy", "Divide up", "Egg layer", ""}
	if len(fields) < len(want) {
		t.Fatalf("got %d string fields, want at least %d", len(fields), len(want))
	}
	for i, w := range want {
		if got := string(fields[i]); got != w {
			t.Errorf("string field %d = %q, want %q", i, got, w)
		}
	}
}

func TestEncodePuzRejectsEmpty(t *testing.T) {
	if _, err := EncodePuz(&Puzzle{Metadata: Metadata{Size: 5}}, ""); err == nil {
		t.Error("expected error for puzzle with no words")
	}
}
