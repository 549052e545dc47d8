package service

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"wordgrid/internal/connections"
	"wordgrid/internal/models"
	"wordgrid/internal/repository"
)

// PuzzleService generates and stores connections puzzles
type PuzzleService struct {
	bankRepo   *repository.BankRepository
	puzzleRepo *repository.PuzzleRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPuzzleService creates a new puzzle service with a time-seeded generator
func NewPuzzleService(bankRepo *repository.BankRepository, puzzleRepo *repository.PuzzleRepository) *PuzzleService {
	return &PuzzleService{
		bankRepo:   bankRepo,
		puzzleRepo: puzzleRepo,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GeneratePuzzle builds a fresh puzzle from the stored bank and persists it.
// A non-nil seed makes the result reproducible; otherwise the shared
// generator is used.
func (s *PuzzleService) GeneratePuzzle(seed *int64) (*models.StoredPuzzle, models.Puzzle, error) {
	return s.generate(seed, models.PuzzleKindConnections)
}

func (s *PuzzleService) generate(seed *int64, kind string) (*models.StoredPuzzle, models.Puzzle, error) {
	bank, err := s.bankRepo.LoadBank()
	if err != nil {
		return nil, models.Puzzle{}, fmt.Errorf("failed to load word bank: %w", err)
	}

	notify := func(n connections.Notice) {
		log.Printf("Warning: %s", n)
	}

	var puzzle models.Puzzle
	if seed != nil {
		puzzle = connections.Generate(rand.New(rand.NewSource(*seed)), bank, models.DefaultDifficulties(), notify)
	} else {
		s.mu.Lock()
		puzzle = connections.Generate(s.rng, bank, models.DefaultDifficulties(), notify)
		s.mu.Unlock()
	}

	payload, err := json.Marshal(puzzle)
	if err != nil {
		return nil, models.Puzzle{}, fmt.Errorf("failed to encode puzzle: %w", err)
	}

	stored, err := s.puzzleRepo.Save(kind, payload)
	if err != nil {
		return nil, models.Puzzle{}, err
	}

	log.Printf("Generated %s puzzle %s (%d words)", kind, stored.ID, puzzle.WordCount())
	return stored, puzzle, nil
}

// DailyPuzzle returns the puzzle generated for the current UTC day, creating
// it on first request
func (s *PuzzleService) DailyPuzzle() (*models.StoredPuzzle, models.Puzzle, error) {
	midnight := time.Now().UTC().Truncate(24 * time.Hour)

	stored, err := s.puzzleRepo.LatestSince(models.PuzzleKindDaily, midnight)
	if err != nil {
		return nil, models.Puzzle{}, err
	}
	if stored != nil {
		var puzzle models.Puzzle
		if err := json.Unmarshal(stored.Payload, &puzzle); err != nil {
			return nil, models.Puzzle{}, fmt.Errorf("failed to decode stored puzzle: %w", err)
		}
		return stored, puzzle, nil
	}

	return s.generate(nil, models.PuzzleKindDaily)
}

// GetPuzzle retrieves a stored puzzle by id, or nil if not found
func (s *PuzzleService) GetPuzzle(id string) (*models.StoredPuzzle, error) {
	return s.puzzleRepo.GetByID(id)
}

// PurgeOldPuzzles deletes puzzles older than the retention window
func (s *PuzzleService) PurgeOldPuzzles(retention time.Duration) (int64, error) {
	return s.puzzleRepo.DeleteOlderThan(time.Now().UTC().Add(-retention))
}
