package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFinalUnitPrice(t *testing.T) {
	cases := []struct {
		price    float64
		discount int
		want     string
	}{
		{100, 10, "90"},
		{100, 0, "100"},
		{100, -5, "100"},
		{100, 100, "0"},
		{3.5, 0, "3.5"},
		{19.99, 25, "14.9925"},
	}
	for _, tc := range cases {
		got := FinalUnitPrice(tc.price, tc.discount)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("FinalUnitPrice(%v, %d) = %s, want %s", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	total := FinalUnitPrice(100, 10).Mul(decimal.NewFromInt(2))
	if got := FormatAmount(total); got != "180.00" {
		t.Errorf("FormatAmount = %q, want \"180.00\"", got)
	}
	if got := FormatAmount(decimal.Zero); got != "0.00" {
		t.Errorf("FormatAmount(0) = %q, want \"0.00\"", got)
	}
}

func TestClampDiscount(t *testing.T) {
	if got := ClampDiscount(-10); got != 0 {
		t.Errorf("ClampDiscount(-10) = %d", got)
	}
	if got := ClampDiscount(150); got != 100 {
		t.Errorf("ClampDiscount(150) = %d", got)
	}
	if got := ClampDiscount(35); got != 35 {
		t.Errorf("ClampDiscount(35) = %d", got)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("shipped") {
		t.Error("ValidStatus accepted an unknown status")
	}
}
