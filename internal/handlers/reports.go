package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fueldesk/fuel-manager/internal/db"
	"github.com/fueldesk/fuel-manager/internal/reports"
)

// ReportsHandler handles reporting requests
type ReportsHandler struct {
	transactions db.TransactionCollection
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(transactions db.TransactionCollection) *ReportsHandler {
	return &ReportsHandler{transactions: transactions}
}

// Report is the payload for GET /api/reports.
type Report struct {
	Start     string                         `json:"start"`
	End       string                         `json:"end"`
	Summary   reports.Summary                `json:"summary"`
	PerDriver map[string]reports.EntityStats `json:"per_driver"`
	PerTruck  map[string]reports.EntityStats `json:"per_truck"`
}

// ServeHTTP answers GET /api/reports?start=YYYY-MM-DD&end=YYYY-MM-DD.
// The range defaults to the last 30 days and is inclusive on both ends.
func (h *ReportsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)

	if v := r.URL.Query().Get("start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Invalid start date", http.StatusBadRequest)
			return
		}
		start = parsed
	}
	if v := r.URL.Query().Get("end"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Invalid end date", http.StatusBadRequest)
			return
		}
		end = parsed
	}

	txns, err := h.transactions.FindTransactions(r.Context())
	if err != nil {
		http.Error(w, "Failed to load transactions", http.StatusInternalServerError)
		return
	}

	report := Report{
		Start:     start.Format("2006-01-02"),
		End:       end.Format("2006-01-02"),
		Summary:   reports.Summarize(txns, start, end),
		PerDriver: reports.PerDriverStats(txns, start, end),
		PerTruck:  reports.PerTruckStats(txns, start, end),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
