// Package connections generates word-grouping puzzles from a word bank:
// one category per difficulty tier, four words per category, and a shuffled
// board of all chosen words.
package connections

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"wordgrid/internal/models"
)

// WordsPerCategory is the number of words drawn from each selected category.
const WordsPerCategory = 4

// NoticeReason identifies why a tier was skipped during generation.
type NoticeReason string

const (
	ReasonMissingDifficulty  NoticeReason = "missing_difficulty"
	ReasonNoEligibleCategory NoticeReason = "no_eligible_category"
)

// Notice reports a skipped tier. Skips are expected conditions, not errors;
// generation continues with the remaining tiers.
type Notice struct {
	Difficulty models.Difficulty
	Reason     NoticeReason
}

func (n Notice) String() string {
	switch n.Reason {
	case ReasonMissingDifficulty:
		return fmt.Sprintf("difficulty %q not found in word bank", n.Difficulty)
	case ReasonNoEligibleCategory:
		return fmt.Sprintf("no category for %q has at least %d words", n.Difficulty, WordsPerCategory)
	default:
		return fmt.Sprintf("difficulty %q skipped (%s)", n.Difficulty, n.Reason)
	}
}

// Generate builds a puzzle from the bank, processing the given tiers in
// order. For each tier present in the bank with at least one category of
// WordsPerCategory or more words, it picks one eligible category uniformly,
// samples four of its words without replacement, and records them under the
// tier. Tiers that are absent or have no eligible category are skipped and
// reported through notify (which may be nil). The board is shuffled after
// all tiers are processed, independently of the per-category sampling.
//
// The bank is never mutated. With a seeded rng the result is deterministic.
func Generate(rng *rand.Rand, bank models.WordBank, difficulties []models.Difficulty, notify func(Notice)) models.Puzzle {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	puzzle := models.Puzzle{
		Categories: make(map[models.Difficulty]models.SelectedCategory),
		AllWords:   []string{},
	}

	for _, difficulty := range difficulties {
		categories, ok := bank[difficulty]
		if !ok {
			emit(notify, Notice{Difficulty: difficulty, Reason: ReasonMissingDifficulty})
			continue
		}

		// Sorted for deterministic selection under a seeded rng; map
		// iteration order would break seed reproducibility.
		var eligible []string
		for name, words := range categories {
			if len(words) >= WordsPerCategory {
				eligible = append(eligible, name)
			}
		}
		if len(eligible) == 0 {
			emit(notify, Notice{Difficulty: difficulty, Reason: ReasonNoEligibleCategory})
			continue
		}
		sort.Strings(eligible)

		chosen := eligible[rng.Intn(len(eligible))]
		words := sampleWords(rng, categories[chosen], WordsPerCategory)

		puzzle.Categories[difficulty] = models.SelectedCategory{chosen: words}
		puzzle.AllWords = append(puzzle.AllWords, words...)
	}

	rng.Shuffle(len(puzzle.AllWords), func(i, j int) {
		puzzle.AllWords[i], puzzle.AllWords[j] = puzzle.AllWords[j], puzzle.AllWords[i]
	})

	return puzzle
}

// sampleWords draws n distinct words uniformly without replacement, leaving
// the source slice untouched.
func sampleWords(rng *rand.Rand, words []string, n int) []string {
	sample := make([]string, 0, n)
	for _, idx := range rng.Perm(len(words))[:n] {
		sample = append(sample, words[idx])
	}
	return sample
}

func emit(notify func(Notice), n Notice) {
	if notify != nil {
		notify(n)
	}
}
