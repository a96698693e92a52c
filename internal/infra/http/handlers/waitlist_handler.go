package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/thearchitech/waitlist-api/internal/entity"
	"github.com/thearchitech/waitlist-api/internal/infra/http/middleware"
	"github.com/thearchitech/waitlist-api/internal/usecase"
)

type WaitlistHandler struct {
	JoinUC      *usecase.JoinWaitlistUseCase
	LookupUC    *usecase.LookupEntryUseCase
	rateLimiter *RateLimiter
}

func NewWaitlistHandler(joinUC *usecase.JoinWaitlistUseCase, lookupUC *usecase.LookupEntryUseCase) *WaitlistHandler {
	return &WaitlistHandler{
		JoinUC:      joinUC,
		LookupUC:    lookupUC,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

// HandleJoin implements POST /api/waitlist.
func (h *WaitlistHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.JoinWaitlistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.JoinUC.Execute(r.Context(), input)
	if err != nil {
		var conflict *usecase.ConflictError
		var domainErr *usecase.DomainError

		switch {
		case errors.As(err, &conflict):
			middleware.RecordSignupConflict()
			writeJSON(w, http.StatusConflict, APIResponse{
				Success: false,
				Error:   "Email already exists",
				Data:    publicFields(conflict.Entry),
			})
		case errors.As(err, &domainErr):
			writeError(w, http.StatusBadRequest, domainErr.Message)
		default:
			log.Printf("[WAITLIST] join failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	middleware.RecordSignup(input.Source, output.Language)
	writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Message: "You're on the waitlist!",
		Data:    output,
	})
}

// HandleLookup implements GET /api/waitlist?email=<address>.
func (h *WaitlistHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	entry, err := h.LookupUC.Execute(r.Context(), email)
	if err != nil {
		var domainErr *usecase.DomainError

		switch {
		case errors.Is(err, entity.ErrEntryNotFound):
			writeError(w, http.StatusNotFound, "Email not found on the waitlist")
		case errors.As(err, &domainErr):
			writeError(w, http.StatusBadRequest, domainErr.Message)
		default:
			log.Printf("[WAITLIST] lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    entry,
	})
}

func publicFields(e *entity.WaitlistEntry) usecase.JoinWaitlistOutput {
	return usecase.JoinWaitlistOutput{
		Email:        e.Email,
		Position:     e.Position,
		ReferralCode: e.ReferralCode,
		Language:     e.Language,
		CreatedAt:    e.CreatedAt,
	}
}
