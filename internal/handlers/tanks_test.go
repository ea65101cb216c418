package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fueldesk/fuel-manager/internal/ledger"
	"github.com/fueldesk/fuel-manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTanksHandler_List(t *testing.T) {
	tanks := newFakeTanks(seedTank())
	handler := NewTanksHandler(tanks, ledger.NewService(tanks, &fakeTransactionCollection{}))

	req := withClaims(httptest.NewRequest(http.MethodGet, "/api/tanks", nil), models.RoleUser)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var listed []models.FuelTank
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	assert.Len(t, listed, 1)
}

func TestTanksHandler_UpdateCapacity(t *testing.T) {
	tank := seedTank() // 1000L in a 5000L tank at 1.0/L
	tanks := newFakeTanks(tank)
	handler := NewTanksHandler(tanks, ledger.NewService(tanks, &fakeTransactionCollection{}))

	body, _ := json.Marshal(map[string]float64{"capacity": 600})
	req := withClaims(httptest.NewRequest(http.MethodPut, "/api/tanks/"+tank.ID.Hex()+"/capacity", bytes.NewBuffer(body)), models.RoleAdmin)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var updated models.FuelTank
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, 600.0, updated.Capacity)
	assert.Equal(t, 600.0, updated.CurrentLevel)
	assert.InDelta(t, 600.0, updated.TotalValue, 1e-9)
}

func TestTanksHandler_UpdateCapacityForbiddenForEmployee(t *testing.T) {
	tank := seedTank()
	tanks := newFakeTanks(tank)
	handler := NewTanksHandler(tanks, ledger.NewService(tanks, &fakeTransactionCollection{}))

	body, _ := json.Marshal(map[string]float64{"capacity": 600})
	req := withClaims(httptest.NewRequest(http.MethodPut, "/api/tanks/"+tank.ID.Hex()+"/capacity", bytes.NewBuffer(body)), models.RoleUser)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTanksHandler_UpdateCapacityRejectsNonPositive(t *testing.T) {
	tank := seedTank()
	tanks := newFakeTanks(tank)
	handler := NewTanksHandler(tanks, ledger.NewService(tanks, &fakeTransactionCollection{}))

	body, _ := json.Marshal(map[string]float64{"capacity": 0})
	req := withClaims(httptest.NewRequest(http.MethodPut, "/api/tanks/"+tank.ID.Hex()+"/capacity", bytes.NewBuffer(body)), models.RoleAdmin)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
