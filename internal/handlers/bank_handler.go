package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"wordgrid/internal/models"
	"wordgrid/internal/repository"
	"wordgrid/internal/service"
)

// BankHandler handles admin word bank HTTP requests
type BankHandler struct {
	bankService   *service.BankService
	bankRepo      *repository.BankRepository
	puzzleService *service.PuzzleService
	emailService  *service.EmailService
}

// NewBankHandler creates a new bank handler
func NewBankHandler(bankService *service.BankService, bankRepo *repository.BankRepository, puzzleService *service.PuzzleService, emailService *service.EmailService) *BankHandler {
	return &BankHandler{
		bankService:   bankService,
		bankRepo:      bankRepo,
		puzzleService: puzzleService,
		emailService:  emailService,
	}
}

// ExportBank returns the full word bank as JSON
func (h *BankHandler) ExportBank(w http.ResponseWriter, r *http.Request) {
	data, err := h.bankService.ExportBank()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export word bank", "Bank export failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to write word bank", "Bank write failed", err)
	}
}

type createCategoryRequest struct {
	Difficulty string   `json:"difficulty"`
	Name       string   `json:"name"`
	Words      []string `json:"words"`
}

// CreateCategory adds a category, optionally with an initial word list
func (h *BankHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Difficulty = strings.TrimSpace(req.Difficulty)
	if req.Difficulty == "" || req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Difficulty and name are required", "", nil)
		return
	}

	tiers, err := h.bankRepo.ListDifficulties()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load difficulty tiers", "Difficulty lookup failed", err)
		return
	}
	known := false
	for _, tier := range tiers {
		if tier.Label == models.Difficulty(req.Difficulty) {
			known = true
			break
		}
	}
	if !known {
		respondWithError(w, http.StatusBadRequest, "Unknown difficulty tier", "", nil)
		return
	}

	category, err := h.bankRepo.CreateCategory(models.Difficulty(req.Difficulty), req.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create category", "Category creation failed", err)
		return
	}

	if len(req.Words) > 0 {
		if err := h.bankRepo.AddWords(category.ID, req.Words); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to add words", "Word insert failed", err)
			return
		}
	}

	full, err := h.bankRepo.GetCategory(category.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load category", "Category lookup failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, full)
}

type addWordsRequest struct {
	Words []string `json:"words"`
}

// AddWords appends words to an existing category
func (h *BankHandler) AddWords(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID", "", nil)
		return
	}

	var req addWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}
	if len(req.Words) == 0 {
		respondWithError(w, http.StatusBadRequest, "At least one word is required", "", nil)
		return
	}
	for i, word := range req.Words {
		req.Words[i] = strings.TrimSpace(word)
		if req.Words[i] == "" {
			respondWithError(w, http.StatusBadRequest, "Words must not be blank", "", nil)
			return
		}
	}

	existing, err := h.bankRepo.GetCategory(categoryID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load category", "Category lookup failed", err)
		return
	}
	if existing == nil {
		respondWithError(w, http.StatusNotFound, "Category not found", "", nil)
		return
	}

	if err := h.bankRepo.AddWords(categoryID, req.Words); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to add words", "Word insert failed", err)
		return
	}

	full, err := h.bankRepo.GetCategory(categoryID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load category", "Category lookup failed", err)
		return
	}

	respondJSON(w, http.StatusOK, full)
}

// DeleteCategory removes a category and its words
func (h *BankHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID", "", nil)
		return
	}

	existing, err := h.bankRepo.GetCategory(categoryID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load category", "Category lookup failed", err)
		return
	}
	if existing == nil {
		respondWithError(w, http.StatusNotFound, "Category not found", "", nil)
		return
	}

	if err := h.bankRepo.DeleteCategory(categoryID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete category", "Category delete failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type shareRequest struct {
	PuzzleID string `json:"puzzle_id"`
	Email    string `json:"email"`
}

// SharePuzzle emails a stored puzzle to a recipient
func (h *BankHandler) SharePuzzle(w http.ResponseWriter, r *http.Request) {
	if !h.emailService.IsEnabled() {
		respondWithError(w, http.StatusServiceUnavailable, "Email sending is disabled", "", nil)
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid email address", "", nil)
		return
	}

	stored, err := h.puzzleService.GetPuzzle(req.PuzzleID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load puzzle", "Puzzle lookup failed", err)
		return
	}
	if stored == nil || stored.Kind == models.PuzzleKindMini {
		respondWithError(w, http.StatusNotFound, "Puzzle not found", "", nil)
		return
	}

	var puzzle models.Puzzle
	if err := json.Unmarshal(stored.Payload, &puzzle); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to decode puzzle", "Puzzle decode failed", err)
		return
	}

	if err := h.emailService.SendPuzzle(r.Context(), req.Email, puzzle, stored.ID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to send email", "Email send failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
