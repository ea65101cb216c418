package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fueldesk/fuel-manager/internal/db"
	"github.com/fueldesk/fuel-manager/internal/ledger"
	"github.com/fueldesk/fuel-manager/internal/middleware"
)

// TanksHandler handles fuel tank requests
type TanksHandler struct {
	tanks  db.TankCollection
	ledger *ledger.Service
}

// NewTanksHandler creates a new tanks handler
func NewTanksHandler(tanks db.TankCollection, ledgerService *ledger.Service) *TanksHandler {
	return &TanksHandler{tanks: tanks, ledger: ledgerService}
}

// ServeHTTP routes /api/tanks and /api/tanks/{id}/capacity
func (h *TanksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tanks"), "/")
	switch {
	case r.Method == http.MethodGet && rest == "":
		h.list(w, r)
	case r.Method == http.MethodPut && strings.HasSuffix(rest, "/capacity"):
		h.updateCapacity(w, r, strings.TrimSuffix(rest, "/capacity"))
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TanksHandler) list(w http.ResponseWriter, r *http.Request) {
	tanks, err := h.tanks.FindTanks(r.Context())
	if err != nil {
		http.Error(w, "Failed to load tanks", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tanks)
}

func (h *TanksHandler) updateCapacity(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var req struct {
		Capacity float64 `json:"capacity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	tank, err := h.ledger.UpdateTankCapacity(r.Context(), claims, id, req.Capacity)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidCapacity):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ledger.ErrPermissionDenied):
			http.Error(w, "Insufficient permissions", http.StatusForbidden)
		case errors.Is(err, db.ErrTankNotFound):
			http.Error(w, "Tank not found", http.StatusNotFound)
		default:
			http.Error(w, "Failed to update tank", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tank)
}
