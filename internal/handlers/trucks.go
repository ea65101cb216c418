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

// TrucksHandler handles truck management requests
type TrucksHandler struct {
	trucks       db.TruckCollection
	transactions db.TransactionCollection
}

// NewTrucksHandler creates a new trucks handler
func NewTrucksHandler(trucks db.TruckCollection, transactions db.TransactionCollection) *TrucksHandler {
	return &TrucksHandler{trucks: trucks, transactions: transactions}
}

// ServeHTTP routes /api/trucks and /api/trucks/{id}
func (h *TrucksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/trucks"), "/")
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

func (h *TrucksHandler) list(w http.ResponseWriter, r *http.Request) {
	trucks, err := h.trucks.FindTrucks(r.Context())
	if err != nil {
		http.Error(w, "Failed to load trucks", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trucks)
}

func (h *TrucksHandler) create(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, r, "manage_trucks") {
		return
	}
	var req struct {
		PlateNumber  string  `json:"plate_number"`
		Model        string  `json:"model"`
		Year         int     `json:"year"`
		TankCapacity float64 `json:"tank_capacity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.PlateNumber == "" {
		http.Error(w, "Plate number is required", http.StatusBadRequest)
		return
	}

	truck := models.Truck{
		ID:           primitive.NewObjectID(),
		PlateNumber:  req.PlateNumber,
		Model:        req.Model,
		Year:         req.Year,
		TankCapacity: req.TankCapacity,
		CreatedAt:    time.Now(),
	}
	if err := h.trucks.InsertTruck(r.Context(), truck); err != nil {
		http.Error(w, "Failed to create truck", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(truck)
}

// delete removes a truck unless the ledger still references it.
func (h *TrucksHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if !requirePermission(w, r, "manage_trucks") {
		return
	}
	count, err := h.transactions.CountByTruck(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to check truck transactions", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "Truck has recorded transactions", http.StatusConflict)
		return
	}

	if err := h.trucks.DeleteTruck(r.Context(), id); err != nil {
		http.Error(w, "Truck not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Truck deleted"})
}
