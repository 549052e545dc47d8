package models

import "time"

// WordDirection is the orientation of a placed crossword word.
type WordDirection string

const (
	DirectionAcross WordDirection = "across"
	DirectionDown   WordDirection = "down"
)

// PlacedWord is a word positioned on the crossword grid.
type PlacedWord struct {
	Text      string        `json:"word"`
	Clue      string        `json:"clue"`
	Row       int           `json:"row"`
	Col       int           `json:"col"`
	Direction WordDirection `json:"direction"`
	Number    int           `json:"number"`
}

// CluePool identifies which bank a clue word came from. The generator
// interleaves the two pools when building its candidate list.
type CluePool string

const (
	PoolPrimary   CluePool = "primary"
	PoolSecondary CluePool = "secondary"
)

// ClueWord is a crossword answer with its candidate clues.
type ClueWord struct {
	ID    int64
	Word  string
	Pool  CluePool
	Clues []string
}

// StoredPuzzle is a persisted generated puzzle of any kind.
type StoredPuzzle struct {
	ID        string // uuid
	Kind      string // one of the PuzzleKind constants
	Payload   []byte // JSON-encoded puzzle
	CreatedAt time.Time
}

// Puzzle kinds for StoredPuzzle.Kind.
const (
	PuzzleKindConnections = "connections"
	PuzzleKindDaily       = "connections_daily"
	PuzzleKindMini        = "mini"
)
