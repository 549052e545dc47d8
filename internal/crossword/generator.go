// Package crossword builds small intersection-connected crossword grids from
// a clue bank and exports them as JSON or AcrossLite .puz files.
package crossword

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"wordgrid/internal/models"
)

const (
	// DefaultSize is the grid edge length for a mini puzzle.
	DefaultSize = 8
	// DefaultTarget is how many words a generation run tries to place.
	DefaultTarget = 8
	// MinPlacedWords is the fewest placed words accepted as a valid puzzle.
	MinPlacedWords = 7

	emptyCell = ' '
)

var wordPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// ValidWord reports whether a word can go on the grid: letters only, no
// digits, spaces or punctuation.
func ValidWord(word string) bool {
	return wordPattern.MatchString(word)
}

// Cell is one square of the rendered grid.
type Cell struct {
	Letter string `json:"letter,omitempty"`
	Number int    `json:"number,omitempty"`
	Black  bool   `json:"black"`
}

// Metadata describes a generated puzzle.
type Metadata struct {
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Size    int       `json:"size"`
	Created time.Time `json:"created"`
}

// Clues holds clue text keyed by the word's grid number.
type Clues struct {
	Across map[string]string `json:"across"`
	Down   map[string]string `json:"down"`
}

// Puzzle is a completed crossword.
type Puzzle struct {
	Metadata Metadata            `json:"metadata"`
	Grid     [][]Cell            `json:"grid"`
	Words    []models.PlacedWord `json:"words"`
	Clues    Clues               `json:"clues"`
}

// Generator places words on a square grid. Not safe for concurrent use; each
// generation run owns its own Generator.
type Generator struct {
	size    int
	rng     *rand.Rand
	grid    [][]byte
	numbers [][]int
	placed  []models.PlacedWord
}

// NewGenerator creates a generator for a size×size grid.
func NewGenerator(size int, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Generator{size: size, rng: rng}
	g.reset()
	return g
}

func (g *Generator) reset() {
	g.grid = make([][]byte, g.size)
	g.numbers = make([][]int, g.size)
	for i := range g.grid {
		g.grid[i] = make([]byte, g.size)
		for j := range g.grid[i] {
			g.grid[i][j] = emptyCell
		}
		g.numbers[i] = make([]int, g.size)
	}
	g.placed = nil
}

// candidate is a word queued for placement with its chosen clue.
type candidate struct {
	word string
	clue string
}

// Generate builds a puzzle from the two clue pools, targeting target placed
// words. The first candidate is placed across at the grid center and every
// later word must intersect one already on the grid. Fails if fewer than
// MinPlacedWords end up connected.
func (g *Generator) Generate(primary, secondary []models.ClueWord, target int) (*Puzzle, error) {
	candidates := g.prepareCandidates(primary, secondary)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no usable words in clue bank")
	}

	g.reset()

	first := candidates[0]
	row := g.size / 2
	col := (g.size - len(first.word)) / 2
	if col < 0 {
		col = 0
	}
	g.place(first.word, first.clue, row, col, models.DirectionAcross)

	for _, c := range candidates[1:] {
		if len(g.placed) >= target {
			break
		}
		g.tryPlace(c)
	}

	if len(g.placed) < MinPlacedWords {
		return nil, fmt.Errorf("only placed %d connected words, need %d", len(g.placed), MinPlacedWords)
	}

	g.assignNumbers()
	return g.build(), nil
}

// prepareCandidates filters, uppercases and shuffles both pools, then
// interleaves them so every second usable candidate comes from the secondary
// pool while it lasts. Each word gets one uniformly chosen clue.
func (g *Generator) prepareCandidates(primary, secondary []models.ClueWord) []candidate {
	usable := func(entries []models.ClueWord) []models.ClueWord {
		var out []models.ClueWord
		for _, e := range entries {
			if !ValidWord(e.Word) || len(e.Clues) == 0 || len(e.Word) > g.size {
				continue
			}
			out = append(out, e)
		}
		g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	first := usable(primary)
	second := usable(secondary)

	pick := func(e models.ClueWord) candidate {
		return candidate{
			word: strings.ToUpper(e.Word),
			clue: e.Clues[g.rng.Intn(len(e.Clues))],
		}
	}

	var candidates []candidate
	secondIdx := 0
	for i, e := range first {
		if (i+1)%2 == 0 && secondIdx < len(second) {
			candidates = append(candidates, pick(second[secondIdx]))
			secondIdx++
		}
		candidates = append(candidates, pick(e))
	}
	for ; secondIdx < len(second); secondIdx++ {
		candidates = append(candidates, pick(second[secondIdx]))
	}

	return candidates
}

// tryPlace attempts to intersect the candidate with any placed word, in
// random order, and places it at the first legal spot.
func (g *Generator) tryPlace(c candidate) bool {
	order := g.rng.Perm(len(g.placed))
	for _, idx := range order {
		spots := g.intersections(c.word, g.placed[idx])
		g.rng.Shuffle(len(spots), func(i, j int) { spots[i], spots[j] = spots[j], spots[i] })
		for _, s := range spots {
			if g.canPlace(c.word, s.row, s.col, s.direction) {
				g.place(c.word, c.clue, s.row, s.col, s.direction)
				return true
			}
		}
	}
	return false
}

// spot is a candidate grid position for a word.
type spot struct {
	row, col  int
	direction models.WordDirection
}

// intersections finds positions where word crosses an already-placed word at
// a shared letter, running perpendicular to it.
func (g *Generator) intersections(word string, placed models.PlacedWord) []spot {
	var spots []spot
	for i := 0; i < len(word); i++ {
		for j := 0; j < len(placed.Text); j++ {
			if word[i] != placed.Text[j] {
				continue
			}
			if placed.Direction == models.DirectionAcross {
				row := placed.Row - i
				col := placed.Col + j
				if row >= 0 && row+len(word) <= g.size && col >= 0 && col < g.size {
					spots = append(spots, spot{row: row, col: col, direction: models.DirectionDown})
				}
			} else {
				row := placed.Row + j
				col := placed.Col - i
				if col >= 0 && col+len(word) <= g.size && row >= 0 && row < g.size {
					spots = append(spots, spot{row: row, col: col, direction: models.DirectionAcross})
				}
			}
		}
	}
	return spots
}

// canPlace checks the standard placement rules: the word must fit, the cells
// before and after it must be empty, every cell must be empty or already hold
// the same letter, the word must not run along an existing word in the same
// direction, and empty cells must not touch a parallel word.
func (g *Generator) canPlace(word string, row, col int, direction models.WordDirection) bool {
	if g.overlaysPlacedWord(word, row, col, direction) {
		return false
	}

	if direction == models.DirectionAcross {
		if col+len(word) > g.size {
			return false
		}
		if col > 0 && g.grid[row][col-1] != emptyCell {
			return false
		}
		if col+len(word) < g.size && g.grid[row][col+len(word)] != emptyCell {
			return false
		}
		for i := 0; i < len(word); i++ {
			c := col + i
			cell := g.grid[row][c]
			if cell != emptyCell && cell != word[i] {
				return false
			}
			if cell == emptyCell {
				if row > 0 && g.grid[row-1][c] != emptyCell {
					return false
				}
				if row < g.size-1 && g.grid[row+1][c] != emptyCell {
					return false
				}
			}
		}
		return true
	}

	if row+len(word) > g.size {
		return false
	}
	if row > 0 && g.grid[row-1][col] != emptyCell {
		return false
	}
	if row+len(word) < g.size && g.grid[row+len(word)][col] != emptyCell {
		return false
	}
	for i := 0; i < len(word); i++ {
		r := row + i
		cell := g.grid[r][col]
		if cell != emptyCell && cell != word[i] {
			return false
		}
		if cell == emptyCell {
			if col > 0 && g.grid[r][col-1] != emptyCell {
				return false
			}
			if col < g.size-1 && g.grid[r][col+1] != emptyCell {
				return false
			}
		}
	}
	return true
}

// overlaysPlacedWord reports whether the candidate shares any cell with an
// already-placed word running in the same direction. Such words are collinear,
// so one would extend or cover the other; they'd share a start cell and grid
// number, collapsing two clues into one.
func (g *Generator) overlaysPlacedWord(word string, row, col int, direction models.WordDirection) bool {
	for _, w := range g.placed {
		if w.Direction != direction {
			continue
		}
		if direction == models.DirectionAcross {
			if w.Row == row && col < w.Col+len(w.Text) && w.Col < col+len(word) {
				return true
			}
		} else {
			if w.Col == col && row < w.Row+len(w.Text) && w.Row < row+len(word) {
				return true
			}
		}
	}
	return false
}

func (g *Generator) place(word, clue string, row, col int, direction models.WordDirection) {
	for i := 0; i < len(word); i++ {
		if direction == models.DirectionAcross {
			g.grid[row][col+i] = word[i]
		} else {
			g.grid[row+i][col] = word[i]
		}
	}
	g.placed = append(g.placed, models.PlacedWord{
		Text:      word,
		Clue:      clue,
		Row:       row,
		Col:       col,
		Direction: direction,
	})
}

// assignNumbers numbers starting cells row-major, so an across and a down
// word sharing a start cell share a number.
func (g *Generator) assignNumbers() {
	starts := make(map[[2]int]bool)
	for _, w := range g.placed {
		starts[[2]int{w.Row, w.Col}] = true
	}

	positions := make([][2]int, 0, len(starts))
	for pos := range starts {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i][0] != positions[j][0] {
			return positions[i][0] < positions[j][0]
		}
		return positions[i][1] < positions[j][1]
	})

	numberOf := make(map[[2]int]int, len(positions))
	for i := range g.numbers {
		for j := range g.numbers[i] {
			g.numbers[i][j] = 0
		}
	}
	for i, pos := range positions {
		numberOf[pos] = i + 1
		g.numbers[pos[0]][pos[1]] = i + 1
	}
	for i := range g.placed {
		g.placed[i].Number = numberOf[[2]int{g.placed[i].Row, g.placed[i].Col}]
	}
}

// build renders the grid state into the exported puzzle structure.
func (g *Generator) build() *Puzzle {
	grid := make([][]Cell, g.size)
	for i := range grid {
		grid[i] = make([]Cell, g.size)
		for j := range grid[i] {
			if g.grid[i][j] == emptyCell {
				grid[i][j] = Cell{Black: true}
				continue
			}
			grid[i][j] = Cell{
				Letter: string(g.grid[i][j]),
				Number: g.numbers[i][j],
			}
		}
	}

	words := append([]models.PlacedWord(nil), g.placed...)
	sort.Slice(words, func(i, j int) bool {
		if words[i].Number != words[j].Number {
			return words[i].Number < words[j].Number
		}
		return words[i].Direction == models.DirectionAcross
	})

	clues := Clues{Across: make(map[string]string), Down: make(map[string]string)}
	for _, w := range words {
		key := strconv.Itoa(w.Number)
		if w.Direction == models.DirectionAcross {
			clues.Across[key] = w.Clue
		} else {
			clues.Down[key] = w.Clue
		}
	}

	return &Puzzle{
		Metadata: Metadata{
			Title:   "Generated Crossword",
			Author:  "wordgrid",
			Size:    g.size,
			Created: time.Now().UTC(),
		},
		Grid:  grid,
		Words: words,
		Clues: clues,
	}
}
