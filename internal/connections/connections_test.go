package connections

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"wordgrid/internal/models"
)

func testBank() models.WordBank {
	return models.WordBank{
		models.DifficultyEasiest: {
			"Fruits":  {"apple", "pear", "plum", "fig", "grape"},
			"Colours": {"red", "blue", "green", "gold"},
		},
		models.DifficultyEasy: {
			"Metals": {"iron", "zinc", "lead", "tin", "gold", "copper"},
		},
		models.DifficultyMedium: {
			"Rivers": {"nile", "amazon", "danube", "volga"},
		},
		models.DifficultyHard: {
			"___ Ball": {"base", "basket", "foot", "hand", "odd"},
		},
	}
}

func TestGenerateFullBank(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	puzzle := Generate(rng, testBank(), models.DefaultDifficulties(), nil)

	if got, want := len(puzzle.Categories), 4; got != want {
		t.Fatalf("selected %d difficulties, want %d", got, want)
	}
	if got, want := puzzle.WordCount(), 4*len(puzzle.Categories); got != want {
		t.Errorf("board has %d words, want %d", got, want)
	}

	bank := testBank()
	for difficulty, entry := range puzzle.Categories {
		if len(entry) != 1 {
			t.Fatalf("%s: entry has %d categories, want 1", difficulty, len(entry))
		}
		for name, words := range entry {
			source, ok := bank[difficulty][name]
			if !ok {
				t.Fatalf("%s: selected unknown category %q", difficulty, name)
			}
			if len(words) != WordsPerCategory {
				t.Errorf("%s/%s: got %d words, want %d", difficulty, name, len(words), WordsPerCategory)
			}
			seen := make(map[string]bool)
			for _, w := range words {
				if seen[w] {
					t.Errorf("%s/%s: duplicate word %q", difficulty, name, w)
				}
				seen[w] = true
				if !contains(source, w) {
					t.Errorf("%s/%s: word %q not in source list", difficulty, name, w)
				}
			}
		}
	}
}

func TestGenerateBoardIsPermutationOfSelections(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	puzzle := Generate(rng, testBank(), models.DefaultDifficulties(), nil)

	var selected []string
	for _, entry := range puzzle.Categories {
		for _, words := range entry {
			selected = append(selected, words...)
		}
	}

	board := append([]string(nil), puzzle.AllWords...)
	sort.Strings(selected)
	sort.Strings(board)
	if !reflect.DeepEqual(selected, board) {
		t.Errorf("board is not a permutation of selected words:\nboard    %v\nselected %v", board, selected)
	}
}

func TestGenerateSkipsShortCategories(t *testing.T) {
	bank := models.WordBank{
		models.DifficultyEasiest: {
			"Fruits": {"apple", "pear", "plum", "fig", "grape"},
		},
		models.DifficultyEasy: {
			"Too Short": {"one", "two", "three"},
		},
	}

	var notices []Notice
	rng := rand.New(rand.NewSource(3))
	puzzle := Generate(rng, bank, models.DefaultDifficulties(), func(n Notice) {
		notices = append(notices, n)
	})

	if _, ok := puzzle.Categories[models.DifficultyEasy]; ok {
		t.Error("difficulty with only short categories produced an entry")
	}
	if _, ok := puzzle.Categories[models.DifficultyEasiest]; !ok {
		t.Error("eligible difficulty missing from result")
	}
	if got, want := len(puzzle.AllWords), 4; got != want {
		t.Errorf("board has %d words, want %d", got, want)
	}

	wantNotices := map[models.Difficulty]NoticeReason{
		models.DifficultyEasy:   ReasonNoEligibleCategory,
		models.DifficultyMedium: ReasonMissingDifficulty,
		models.DifficultyHard:   ReasonMissingDifficulty,
	}
	if len(notices) != len(wantNotices) {
		t.Fatalf("got %d notices, want %d: %v", len(notices), len(wantNotices), notices)
	}
	for _, n := range notices {
		if wantNotices[n.Difficulty] != n.Reason {
			t.Errorf("notice for %s: got reason %q, want %q", n.Difficulty, n.Reason, wantNotices[n.Difficulty])
		}
	}
}

func TestGenerateEmptyBank(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	puzzle := Generate(rng, models.WordBank{}, models.DefaultDifficulties(), nil)

	if len(puzzle.Categories) != 0 {
		t.Errorf("empty bank produced %d entries", len(puzzle.Categories))
	}
	if len(puzzle.AllWords) != 0 {
		t.Errorf("empty bank produced %d board words", len(puzzle.AllWords))
	}
	if puzzle.AllWords == nil {
		t.Error("board should be an empty slice, not nil")
	}
}

func TestGenerateExactlyFourWordCategories(t *testing.T) {
	bank := models.WordBank{
		models.DifficultyEasiest: {"A": {"a1", "a2", "a3", "a4"}},
		models.DifficultyEasy:    {"B": {"b1", "b2", "b3", "b4"}},
		models.DifficultyMedium:  {"C": {"c1", "c2", "c3", "c4"}},
		models.DifficultyHard:    {"D": {"d1", "d2", "d3", "d4"}},
	}

	rng := rand.New(rand.NewSource(11))
	puzzle := Generate(rng, bank, models.DefaultDifficulties(), nil)

	if got, want := len(puzzle.AllWords), 16; got != want {
		t.Fatalf("board has %d words, want %d", got, want)
	}
	seen := make(map[string]bool)
	for _, w := range puzzle.AllWords {
		if seen[w] {
			t.Errorf("duplicate board word %q", w)
		}
		seen[w] = true
	}
	for difficulty, entry := range puzzle.Categories {
		for name, words := range entry {
			sorted := append([]string(nil), words...)
			sort.Strings(sorted)
			source := append([]string(nil), bank[difficulty][name]...)
			sort.Strings(source)
			if !reflect.DeepEqual(sorted, source) {
				t.Errorf("%s/%s: got %v, want all of %v", difficulty, name, words, source)
			}
		}
	}
}

func TestGenerateDoesNotMutateBank(t *testing.T) {
	bank := testBank()
	want := make(map[models.Difficulty]map[string][]string)
	for difficulty, categories := range bank {
		want[difficulty] = make(map[string][]string)
		for name, words := range categories {
			want[difficulty][name] = append([]string(nil), words...)
		}
	}

	for seed := int64(0); seed < 20; seed++ {
		Generate(rand.New(rand.NewSource(seed)), bank, models.DefaultDifficulties(), nil)
	}

	if !reflect.DeepEqual(models.WordBank(want), bank) {
		t.Error("generation mutated the word bank")
	}
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		first := Generate(rand.New(rand.NewSource(seed)), testBank(), models.DefaultDifficulties(), nil)
		second := Generate(rand.New(rand.NewSource(seed)), testBank(), models.DefaultDifficulties(), nil)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("seed %d: repeated runs differ:\n%+v\n%+v", seed, first, second)
		}
	}
}

func TestGenerateCustomDifficulties(t *testing.T) {
	bank := models.WordBank{
		"Bonus": {"Extras": {"w1", "w2", "w3", "w4", "w5"}},
	}

	puzzle := Generate(rand.New(rand.NewSource(2)), bank, []models.Difficulty{"Bonus"}, nil)
	if _, ok := puzzle.Categories["Bonus"]; !ok {
		t.Fatal("custom difficulty label not processed")
	}
	if got, want := len(puzzle.AllWords), 4; got != want {
		t.Errorf("board has %d words, want %d", got, want)
	}
}

func TestGenerateCategorySelectionUniform(t *testing.T) {
	bank := models.WordBank{
		models.DifficultyEasiest: {
			// Word-count imbalance must not bias category choice.
			"Small": {"s1", "s2", "s3", "s4"},
			"Big":   {"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8", "b9", "b10"},
			"Mid":   {"m1", "m2", "m3", "m4", "m5", "m6"},
		},
	}

	const trials = 6000
	rng := rand.New(rand.NewSource(42))
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		puzzle := Generate(rng, bank, []models.Difficulty{models.DifficultyEasiest}, nil)
		for name := range puzzle.Categories[models.DifficultyEasiest] {
			counts[name]++
		}
	}

	expected := trials / 3
	for name, count := range counts {
		if count < expected*8/10 || count > expected*12/10 {
			t.Errorf("category %q selected %d times, expected about %d", name, count, expected)
		}
	}
	if len(counts) != 3 {
		t.Errorf("only %d of 3 categories ever selected", len(counts))
	}
}

func TestGenerateWordSamplingUniform(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f"}
	bank := models.WordBank{
		models.DifficultyEasiest: {"Only": words},
	}

	const trials = 9000
	rng := rand.New(rand.NewSource(99))
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		puzzle := Generate(rng, bank, []models.Difficulty{models.DifficultyEasiest}, nil)
		for _, w := range puzzle.Categories[models.DifficultyEasiest]["Only"] {
			counts[w]++
		}
	}

	// Each of the 6 words should appear in 4/6 of the trials.
	expected := trials * 4 / 6
	for _, w := range words {
		if counts[w] < expected*9/10 || counts[w] > expected*11/10 {
			t.Errorf("word %q drawn %d times, expected about %d", w, counts[w], expected)
		}
	}
}

func TestNoticeString(t *testing.T) {
	tests := []struct {
		name   string
		notice Notice
		want   string
	}{
		{
			name:   "missing difficulty",
			notice: Notice{Difficulty: models.DifficultyHard, Reason: ReasonMissingDifficulty},
			want:   `difficulty "Hard" not found in word bank`,
		},
		{
			name:   "no eligible category",
			notice: Notice{Difficulty: models.DifficultyEasy, Reason: ReasonNoEligibleCategory},
			want:   `no category for "Easy" has at least 4 words`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.notice.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func contains(words []string, w string) bool {
	for _, candidate := range words {
		if candidate == w {
			return true
		}
	}
	return false
}
