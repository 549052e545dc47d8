package models

// Difficulty labels a puzzle tier. The bank groups categories by tier and a
// generated puzzle picks one category per tier.
type Difficulty string

const (
	DifficultyEasiest Difficulty = "Easiest"
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
)

// DefaultDifficulties returns the canonical tier order for a full puzzle.
func DefaultDifficulties() []Difficulty {
	return []Difficulty{
		DifficultyEasiest,
		DifficultyEasy,
		DifficultyMedium,
		DifficultyHard,
	}
}

// WordBank maps a difficulty tier to its categories, and each category name
// to its candidate words. Generation treats the bank as read-only.
type WordBank map[Difficulty]map[string][]string

// SelectedCategory maps a chosen category name to exactly four chosen words.
type SelectedCategory map[string][]string

// Puzzle is a generated word-grouping game: one selected category per tier
// that had at least one usable category, plus the shuffled board of all
// chosen words.
type Puzzle struct {
	Categories map[Difficulty]SelectedCategory `json:"categories"`
	AllWords   []string                        `json:"all_words"`
}

// WordCount returns the number of words on the puzzle board.
func (p Puzzle) WordCount() int {
	return len(p.AllWords)
}
