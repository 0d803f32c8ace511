package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/asharbutt0314/foodexpress/models"
)

func testOrder() *models.Order {
	return &models.Order{
		ID:              "abcdef-123456789012",
		OrderDate:       time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		DeliveryAddress: "12 Mall Road",
		City:            "Lahore",
		Phone:           "+923001234567",
		TotalAmount:     "180.00",
		Items: []models.OrderItem{{
			Name:           "Pizza",
			RestaurantName: "tandoor",
			Price:          100,
			Discount:       10,
			Quantity:       2,
			FinalPrice:     90,
		}},
	}
}

func TestOtpHTMLContainsCode(t *testing.T) {
	html := OtpHTML("483921", "FoodExpress")
	if !strings.Contains(html, "483921") {
		t.Fatal("OTP code missing from mail body")
	}
	if !strings.Contains(html, "10 minutes") {
		t.Fatal("expiry hint missing from mail body")
	}
}

func TestShortOrderID(t *testing.T) {
	if got := ShortOrderID("abcdef-123456789012"); got != "789012" {
		t.Fatalf("ShortOrderID = %q", got)
	}
	if got := ShortOrderID("abc"); got != "abc" {
		t.Fatalf("ShortOrderID short input = %q", got)
	}
}

func TestOrderStatusSubjects(t *testing.T) {
	o := testOrder()
	cases := map[models.OrderStatus]string{
		models.StatusConfirmed: "Order Confirmed!",
		models.StatusPreparing: "Order Being Prepared!",
		models.StatusDelivered: "Order Completed!",
		models.StatusCancelled: "Order Declined",
		models.StatusPending:   "Order Update",
	}
	for status, title := range cases {
		subject := OrderStatusSubject(o, status)
		if !strings.Contains(subject, title) || !strings.Contains(subject, "#789012") {
			t.Errorf("subject for %s = %q", status, subject)
		}
	}
}

func TestOrderHTMLCarriesLineTotals(t *testing.T) {
	o := testOrder()
	for _, html := range []string{
		OrderConfirmationHTML("Ali", o),
		OrderStatusHTML("Ali", o, models.StatusConfirmed),
	} {
		if !strings.Contains(html, "Hi Ali,") {
			t.Error("greeting missing")
		}
		// 90.00 final price x 2
		if !strings.Contains(html, "PKR 180.00") {
			t.Error("line total missing")
		}
		if !strings.Contains(html, "12 Mall Road") {
			t.Error("delivery address missing")
		}
	}
}
