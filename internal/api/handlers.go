package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/maternalcare/sms-reminders/internal/model"
	"github.com/maternalcare/sms-reminders/internal/service"
)

type Handler struct {
	directory  *service.Directory
	dispatcher *service.Dispatcher
}

func NewHandler(directory *service.Directory, dispatcher *service.Dispatcher) *Handler {
	return &Handler{directory: directory, dispatcher: dispatcher}
}

type registerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	DueDate string `json:"dueDate"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.directory.Register(r.Context(), req.Name, req.Phone, req.DueDate)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		var cerr *service.ConflictError
		if errors.As(err, &cerr) {
			writeError(w, http.StatusConflict, cerr.Reason)
			return
		}
		slog.Error("registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully!",
		"userId":  user.ID.Hex(),
		"user":    user,
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.ListActive(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if users == nil {
		users = []model.User{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *Handler) SendReminders(w http.ResponseWriter, r *http.Request) {
	report, err := h.dispatcher.DispatchReminders(r.Context())
	if err != nil {
		slog.Error("reminder dispatch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if report.TotalUsers == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "No active users found",
			"results": report.Results,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Reminders processed for %d users", report.TotalUsers),
		"results": report.Results,
	})
}

func (h *Handler) Education(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tips": service.EducationalContent()})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": map[string]string{
			"mongo":      "connected",
			"smsGateway": "configured",
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
