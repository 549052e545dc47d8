package service

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"wordgrid/internal/crossword"
	"wordgrid/internal/models"
	"wordgrid/internal/repository"
)

// maxCrosswordAttempts bounds the reseeded retries when a word set refuses
// to interlock.
const maxCrosswordAttempts = 5

// CrosswordService generates and stores mini crossword puzzles
type CrosswordService struct {
	clueRepo   *repository.ClueRepository
	puzzleRepo *repository.PuzzleRepository
	size       int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCrosswordService creates a new crossword service for the given grid size
func NewCrosswordService(clueRepo *repository.ClueRepository, puzzleRepo *repository.PuzzleRepository, size int) *CrosswordService {
	if size <= 0 {
		size = crossword.DefaultSize
	}
	return &CrosswordService{
		clueRepo:   clueRepo,
		puzzleRepo: puzzleRepo,
		size:       size,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateCrossword builds a crossword from the stored clue bank and
// persists it. Placement is stochastic, so a handful of attempts with fresh
// shuffles are made before giving up.
func (s *CrosswordService) GenerateCrossword() (*models.StoredPuzzle, *crossword.Puzzle, error) {
	primary, err := s.clueRepo.LoadPool(models.PoolPrimary)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load clue bank: %w", err)
	}
	secondary, err := s.clueRepo.LoadPool(models.PoolSecondary)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secondary clue bank: %w", err)
	}

	var puzzle *crossword.Puzzle
	for attempt := 0; attempt < maxCrosswordAttempts; attempt++ {
		g := crossword.NewGenerator(s.size, s.childRNG())
		puzzle, err = g.Generate(primary, secondary, crossword.DefaultTarget)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("crossword generation failed after %d attempts: %w", maxCrosswordAttempts, err)
	}

	payload, err := json.Marshal(puzzle)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode crossword: %w", err)
	}

	stored, err := s.puzzleRepo.Save(models.PuzzleKindMini, payload)
	if err != nil {
		return nil, nil, err
	}

	return stored, puzzle, nil
}

// ExportPuz renders a crossword as an AcrossLite .puz file
func (s *CrosswordService) ExportPuz(puzzle *crossword.Puzzle) ([]byte, error) {
	copyright := fmt.Sprintf("© %d", time.Now().Year())
	return crossword.EncodePuz(puzzle, copyright)
}

// childRNG derives an independently usable generator from the shared one, so
// concurrent generation runs don't race on a single rand.Rand.
func (s *CrosswordService) childRNG() *rand.Rand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rand.New(rand.NewSource(s.rng.Int63()))
}
