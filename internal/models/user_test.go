package models

import (
	"testing"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"admin role", RoleAdmin, true},
		{"user role", RoleUser, true},
		{"invalid role", "manager", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestRole_HasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		action   string
		expected bool
	}{
		{"admin can record refills", RoleAdmin, "record_refill", true},
		{"admin can manage drivers", RoleAdmin, "manage_drivers", true},
		{"admin can view reports", RoleAdmin, "view_reports", true},
		{"user can view dashboard", RoleUser, "view_dashboard", true},
		{"user can view fuel data", RoleUser, "view_fuel", true},
		{"user can record consumption", RoleUser, "record_consumption", true},
		{"user cannot record refills", RoleUser, "record_refill", false},
		{"user cannot manage drivers", RoleUser, "manage_drivers", false},
		{"user cannot manage trucks", RoleUser, "manage_trucks", false},
		{"user cannot view reports", RoleUser, "view_reports", false},
		{"user cannot manage settings", RoleUser, "manage_settings", false},
		{"unknown role has nothing", Role("viewer"), "view_dashboard", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.role.HasPermission(tt.action)
			if result != tt.expected {
				t.Errorf("%s.HasPermission(%s) = %v, want %v", tt.role, tt.action, result, tt.expected)
			}
		})
	}
}

func TestIsValidFuelKind(t *testing.T) {
	if !IsValidFuelKind(FuelDiesel) || !IsValidFuelKind(FuelAdBlue) {
		t.Error("expected diesel and adblue to be valid fuel kinds")
	}
	if IsValidFuelKind("petrol") || IsValidFuelKind("") {
		t.Error("expected unknown fuel kinds to be invalid")
	}
}

func TestIsValidTransactionKind(t *testing.T) {
	if !IsValidTransactionKind(TransactionRefill) || !IsValidTransactionKind(TransactionConsumption) {
		t.Error("expected refill and consumption to be valid transaction kinds")
	}
	if IsValidTransactionKind("transfer") {
		t.Error("expected unknown transaction kinds to be invalid")
	}
}
