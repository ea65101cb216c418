package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fueldesk/fuel-manager/internal/db"
	"github.com/fueldesk/fuel-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriversHandler handles driver management requests
type DriversHandler struct {
	drivers      db.DriverCollection
	transactions db.TransactionCollection
}

// NewDriversHandler creates a new drivers handler
func NewDriversHandler(drivers db.DriverCollection, transactions db.TransactionCollection) *DriversHandler {
	return &DriversHandler{drivers: drivers, transactions: transactions}
}

// ServeHTTP routes /api/drivers and /api/drivers/{id}
func (h *DriversHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/drivers"), "/")
	switch {
	case r.Method == http.MethodGet && id == "":
		h.list(w, r)
	case r.Method == http.MethodPost && id == "":
		h.create(w, r)
	case r.Method == http.MethodDelete && id != "":
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DriversHandler) list(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.drivers.FindDrivers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load drivers", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(drivers)
}

func (h *DriversHandler) create(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, r, "manage_drivers") {
		return
	}
	var req struct {
		Name          string `json:"name"`
		LicenseNumber string `json:"license_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	driver := models.Driver{
		ID:            primitive.NewObjectID(),
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		CreatedAt:     time.Now(),
	}
	if err := h.drivers.InsertDriver(r.Context(), driver); err != nil {
		http.Error(w, "Failed to create driver", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(driver)
}

// delete removes a driver unless the ledger still references it.
func (h *DriversHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if !requirePermission(w, r, "manage_drivers") {
		return
	}
	count, err := h.transactions.CountByDriver(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to check driver transactions", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "Driver has recorded transactions", http.StatusConflict)
		return
	}

	if err := h.drivers.DeleteDriver(r.Context(), id); err != nil {
		http.Error(w, "Driver not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Driver deleted"})
}
