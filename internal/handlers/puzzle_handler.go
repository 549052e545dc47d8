package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"wordgrid/internal/service"
)

// PuzzleHandler handles word-grouping puzzle HTTP requests
type PuzzleHandler struct {
	puzzleService *service.PuzzleService
}

// NewPuzzleHandler creates a new puzzle handler
func NewPuzzleHandler(puzzleService *service.PuzzleService) *PuzzleHandler {
	return &PuzzleHandler{puzzleService: puzzleService}
}

type puzzleResponse struct {
	ID        string          `json:"id"`
	CreatedAt string          `json:"created_at"`
	Puzzle    json.RawMessage `json:"puzzle"`
}

// Generate creates a fresh puzzle, optionally from a caller-supplied seed
func (h *PuzzleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var seed *int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid seed parameter", "", nil)
			return
		}
		seed = &value
	}

	stored, _, err := h.puzzleService.GeneratePuzzle(seed)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate puzzle", "Puzzle generation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, puzzleResponse{
		ID:        stored.ID,
		CreatedAt: stored.CreatedAt.UTC().Format(timeFormat),
		Puzzle:    json.RawMessage(stored.Payload),
	})
}

// Daily returns today's puzzle, generating it on first request
func (h *PuzzleHandler) Daily(w http.ResponseWriter, r *http.Request) {
	stored, _, err := h.puzzleService.DailyPuzzle()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load daily puzzle", "Daily puzzle failed", err)
		return
	}

	respondJSON(w, http.StatusOK, puzzleResponse{
		ID:        stored.ID,
		CreatedAt: stored.CreatedAt.UTC().Format(timeFormat),
		Puzzle:    json.RawMessage(stored.Payload),
	})
}

// GetByID returns a previously generated puzzle
func (h *PuzzleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	stored, err := h.puzzleService.GetPuzzle(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load puzzle", "Puzzle lookup failed", err)
		return
	}
	if stored == nil {
		respondWithError(w, http.StatusNotFound, "Puzzle not found", "", nil)
		return
	}

	respondJSON(w, http.StatusOK, puzzleResponse{
		ID:        stored.ID,
		CreatedAt: stored.CreatedAt.UTC().Format(timeFormat),
		Puzzle:    json.RawMessage(stored.Payload),
	})
}

const timeFormat = "2006-01-02T15:04:05Z"
