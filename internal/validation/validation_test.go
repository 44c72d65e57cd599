package validation

import (
	"testing"

	"github.com/mmeshcher/cafe-order-system/internal/model"
)

func TestIsValidRating(t *testing.T) {
	tests := []struct {
		rating int
		want   bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
		{-1, false},
	}

	for _, tt := range tests {
		if got := IsValidRating(tt.rating); got != tt.want {
			t.Errorf("IsValidRating(%d) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestIsValidPaymentMethod(t *testing.T) {
	valid := []model.PaymentMethod{model.PaymentCash, model.PaymentQRIS, model.PaymentEWallet}
	for _, m := range valid {
		if !IsValidPaymentMethod(m) {
			t.Errorf("IsValidPaymentMethod(%q) = false, want true", m)
		}
	}

	if IsValidPaymentMethod("Bitcoin") {
		t.Errorf("IsValidPaymentMethod(Bitcoin) = true, want false")
	}
	if IsValidPaymentMethod("") {
		t.Errorf("IsValidPaymentMethod(empty) = true, want false")
	}
}

func TestIsValidStatus(t *testing.T) {
	valid := []model.OrderStatus{
		model.OrderStatusPending, model.OrderStatusProcessing,
		model.OrderStatusCompleted, model.OrderStatusCancelled,
	}
	for _, s := range valid {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false, want true", s)
		}
	}

	if IsValidStatus("Shipped") {
		t.Errorf("IsValidStatus(Shipped) = true, want false")
	}
}

func TestIsValidCategoryAndRole(t *testing.T) {
	if !IsValidCategory(model.CategoryDessert) {
		t.Errorf("IsValidCategory(Dessert) = false, want true")
	}
	if IsValidCategory("Sides") {
		t.Errorf("IsValidCategory(Sides) = true, want false")
	}
	if !IsValidRole(model.RoleAdmin) {
		t.Errorf("IsValidRole(admin) = false, want true")
	}
	if IsValidRole("root") {
		t.Errorf("IsValidRole(root) = true, want false")
	}
}
