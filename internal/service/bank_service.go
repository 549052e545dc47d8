package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"wordgrid/internal/models"
	"wordgrid/internal/repository"
)

// MalformedBankError reports word-bank or clue-bank input that does not match
// the expected shape. Unlike skipped tiers during generation, this is a hard
// failure: there is nothing sensible to generate from.
type MalformedBankError struct {
	Reason string
}

func (e *MalformedBankError) Error() string {
	return "malformed word bank: " + e.Reason
}

// BankService is the boundary between external word-bank files and the
// stored bank: it parses, validates and imports them, and exports the stored
// bank back out
type BankService struct {
	bankRepo *repository.BankRepository
	clueRepo *repository.ClueRepository
}

// NewBankService creates a new bank service
func NewBankService(bankRepo *repository.BankRepository, clueRepo *repository.ClueRepository) *BankService {
	return &BankService{bankRepo: bankRepo, clueRepo: clueRepo}
}

// ParseBank decodes and validates word-bank JSON: difficulty label →
// category name → words. Categories with fewer than four words are allowed
// here; the generator skips them at selection time.
func ParseBank(data []byte) (models.WordBank, error) {
	var raw map[string]map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedBankError{Reason: err.Error()}
	}

	bank := make(models.WordBank, len(raw))
	for label, categories := range raw {
		if strings.TrimSpace(label) == "" {
			return nil, &MalformedBankError{Reason: "empty difficulty label"}
		}
		tier := make(map[string][]string, len(categories))
		for name, words := range categories {
			if strings.TrimSpace(name) == "" {
				return nil, &MalformedBankError{Reason: fmt.Sprintf("empty category name under %q", label)}
			}
			for _, word := range words {
				if strings.TrimSpace(word) == "" {
					return nil, &MalformedBankError{Reason: fmt.Sprintf("empty word in category %q", name)}
				}
			}
			tier[name] = words
		}
		bank[models.Difficulty(label)] = tier
	}
	return bank, nil
}

// ParseClues decodes and validates clue-bank JSON: word → clue list. Words
// that cannot go on a grid are dropped with a warning rather than rejected,
// matching how clue files are curated by hand.
func ParseClues(data []byte, valid func(string) bool) (map[string][]string, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedBankError{Reason: err.Error()}
	}

	entries := make(map[string][]string, len(raw))
	for word, clues := range raw {
		if valid != nil && !valid(word) {
			log.Printf("Warning: skipping invalid clue word %q", word)
			continue
		}
		if len(clues) == 0 {
			continue
		}
		entries[strings.ToUpper(word)] = clues
	}
	return entries, nil
}

// ImportBankFile replaces the stored word bank with the contents of a JSON file
func (s *BankService) ImportBankFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read word bank file: %w", err)
	}
	bank, err := ParseBank(data)
	if err != nil {
		return err
	}
	if err := s.bankRepo.ReplaceBank(bank); err != nil {
		return fmt.Errorf("failed to store word bank: %w", err)
	}
	return nil
}

// ImportClueFile replaces one clue pool with the contents of a JSON file
func (s *BankService) ImportClueFile(path string, pool models.CluePool, valid func(string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read clue file: %w", err)
	}
	entries, err := ParseClues(data, valid)
	if err != nil {
		return err
	}
	if err := s.clueRepo.ReplacePool(pool, entries); err != nil {
		return fmt.Errorf("failed to store clue pool: %w", err)
	}
	return nil
}

// ExportBank returns the stored word bank as JSON
func (s *BankService) ExportBank() ([]byte, error) {
	bank, err := s.bankRepo.LoadBank()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(bank, "", "  ")
}

// SeedIfEmpty loads the seed files into an empty database. A missing seed
// file is not an error; the bank can be filled over the admin API instead.
func (s *BankService) SeedIfEmpty(bankPath, primaryCluesPath, secondaryCluesPath string, valid func(string) bool) error {
	empty, err := s.bankRepo.IsEmpty()
	if err != nil {
		return err
	}
	if empty {
		if err := s.seedFile(bankPath, func(p string) error { return s.ImportBankFile(p) }); err != nil {
			return err
		}
	}

	pools := []struct {
		path string
		pool models.CluePool
	}{
		{primaryCluesPath, models.PoolPrimary},
		{secondaryCluesPath, models.PoolSecondary},
	}
	for _, p := range pools {
		empty, err := s.clueRepo.IsEmpty(p.pool)
		if err != nil {
			return err
		}
		if !empty {
			continue
		}
		pool := p.pool
		if err := s.seedFile(p.path, func(path string) error {
			return s.ImportClueFile(path, pool, valid)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *BankService) seedFile(path string, load func(string) error) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Seed file %s not found, skipping", path)
		return nil
	}
	if err := load(path); err != nil {
		return fmt.Errorf("failed to seed from %s: %w", path, err)
	}
	log.Printf("Seeded data from %s", path)
	return nil
}
