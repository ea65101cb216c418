package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fueldesk/fuel-manager/internal/db"
	log "github.com/sirupsen/logrus"
)

// BackupHandler handles data export and import
type BackupHandler struct {
	store *db.Store
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(store *db.Store) *BackupHandler {
	return &BackupHandler{store: store}
}

// Export answers GET /api/backup/export with a snapshot of all four
// collections as a downloadable JSON document.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	backup, err := db.Export(r.Context(), h.store)
	if err != nil {
		log.WithError(err).Error("export failed")
		http.Error(w, "Failed to export data", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("fuel-manager-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	json.NewEncoder(w).Encode(backup)
}

// Import answers POST /api/backup/import. Collections present in the
// document wholly replace the stored ones; absent collections are left
// untouched. Clients reload their state afterward.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var backup db.Backup
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := db.Import(r.Context(), h.store, &backup); err != nil {
		log.WithError(err).Error("import failed")
		http.Error(w, "Failed to import data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Data imported"})
}
