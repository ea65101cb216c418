package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fueldesk/fuel-manager/internal/db"
	"github.com/fueldesk/fuel-manager/internal/models"
)

// DashboardHandler serves the landing view: tank levels plus the most
// recent ledger activity.
type DashboardHandler struct {
	store *db.Store
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(store *db.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// ServeHTTP answers GET /api/dashboard.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tanks, err := h.store.Tanks.FindTanks(r.Context())
	if err != nil {
		http.Error(w, "Failed to load tanks", http.StatusInternalServerError)
		return
	}
	recent, err := h.store.Transactions.FindRecentTransactions(r.Context(), 10)
	if err != nil {
		http.Error(w, "Failed to load transactions", http.StatusInternalServerError)
		return
	}

	response := struct {
		Tanks              []models.FuelTank        `json:"tanks"`
		RecentTransactions []models.FuelTransaction `json:"recent_transactions"`
	}{
		Tanks:              tanks,
		RecentTransactions: recent,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
