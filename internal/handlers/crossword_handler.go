package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"
	"wordgrid/internal/service"
)

// CrosswordHandler handles mini crossword HTTP requests
type CrosswordHandler struct {
	crosswordService *service.CrosswordService
}

// NewCrosswordHandler creates a new crossword handler
func NewCrosswordHandler(crosswordService *service.CrosswordService) *CrosswordHandler {
	return &CrosswordHandler{crosswordService: crosswordService}
}

// Generate creates a fresh mini crossword and returns it as JSON
func (h *CrosswordHandler) Generate(w http.ResponseWriter, r *http.Request) {
	stored, puzzle, err := h.crosswordService.GenerateCrossword()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate crossword", "Crossword generation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":     stored.ID,
		"puzzle": puzzle,
	})
}

// Download creates a fresh mini crossword and returns it as an AcrossLite file
func (h *CrosswordHandler) Download(w http.ResponseWriter, r *http.Request) {
	_, puzzle, err := h.crosswordService.GenerateCrossword()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate crossword", "Crossword generation failed", err)
		return
	}

	data, err := h.crosswordService.ExportPuz(puzzle)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export crossword", "Crossword export failed", err)
		return
	}

	filename := fmt.Sprintf("mini-%s.puz", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing crossword file: %v", err)
	}
}
