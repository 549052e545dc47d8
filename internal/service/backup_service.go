package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"wordgrid/internal/models"
	"wordgrid/internal/repository"
)

// BackupData is the portable JSON form of the whole word dataset
type BackupData struct {
	Version        string                         `json:"version"`
	ExportedAt     time.Time                      `json:"exported_at"`
	Bank           map[string]map[string][]string `json:"bank"`
	PrimaryClues   map[string][]string            `json:"primary_clues"`
	SecondaryClues map[string][]string            `json:"secondary_clues"`
}

const backupVersion = "1"

// BackupService exports and imports the word dataset for the bankctl tool
type BackupService struct {
	bankRepo *repository.BankRepository
	clueRepo *repository.ClueRepository
}

// NewBackupService creates a new backup service
func NewBackupService(bankRepo *repository.BankRepository, clueRepo *repository.ClueRepository) *BackupService {
	return &BackupService{bankRepo: bankRepo, clueRepo: clueRepo}
}

// ExportToFile writes the full dataset to a JSON file
func (s *BackupService) ExportToFile(path string) error {
	bank, err := s.bankRepo.LoadBank()
	if err != nil {
		return fmt.Errorf("failed to load word bank: %w", err)
	}

	data := BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
		Bank:       make(map[string]map[string][]string, len(bank)),
	}
	for difficulty, categories := range bank {
		data.Bank[string(difficulty)] = categories
	}

	if data.PrimaryClues, err = s.exportPool(models.PoolPrimary); err != nil {
		return err
	}
	if data.SecondaryClues, err = s.exportPool(models.PoolSecondary); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	log.Printf("Exported dataset to %s (%d difficulties, %d primary clue words)",
		path, len(data.Bank), len(data.PrimaryClues))
	return nil
}

// ImportFromFile replaces the stored dataset with a backup file's contents
func (s *BackupService) ImportFromFile(path string) error {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var data BackupData
	if err := json.Unmarshal(encoded, &data); err != nil {
		return fmt.Errorf("failed to decode backup file: %w", err)
	}
	if data.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", data.Version)
	}

	bank := make(models.WordBank, len(data.Bank))
	for label, categories := range data.Bank {
		bank[models.Difficulty(label)] = categories
	}
	if err := s.bankRepo.ReplaceBank(bank); err != nil {
		return fmt.Errorf("failed to import word bank: %w", err)
	}

	if err := s.clueRepo.ReplacePool(models.PoolPrimary, data.PrimaryClues); err != nil {
		return fmt.Errorf("failed to import primary clues: %w", err)
	}
	if err := s.clueRepo.ReplacePool(models.PoolSecondary, data.SecondaryClues); err != nil {
		return fmt.Errorf("failed to import secondary clues: %w", err)
	}

	log.Printf("Imported dataset from %s", path)
	return nil
}

func (s *BackupService) exportPool(pool models.CluePool) (map[string][]string, error) {
	entries, err := s.clueRepo.LoadPool(pool)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s clue pool: %w", pool, err)
	}
	out := make(map[string][]string, len(entries))
	for _, e := range entries {
		out[e.Word] = e.Clues
	}
	return out, nil
}
