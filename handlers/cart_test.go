package handlers_test

import (
	"net/http"
	"testing"

	"github.com/asharbutt0314/foodexpress/cart"
	"github.com/asharbutt0314/foodexpress/handlers"

	"github.com/gin-gonic/gin"
)

func cartAdd(t *testing.T, r *gin.Engine, productID, action string) (int, []cart.Line) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/products/cart/add", map[string]any{
		"productId": productID,
		"action":    action,
	})
	var body struct {
		Cart []cart.Line `json:"cart"`
	}
	if w.Code == http.StatusOK {
		decodeBody(t, w, &body)
	}
	return w.Code, body.Cart
}

func TestCartCrossRestaurantConflict(t *testing.T) {
	r, _ := newTestServer(t)
	tandoor := seedRestaurant(t, "tandoor")
	wok := seedRestaurant(t, "wok")
	naan := seedProduct(t, tandoor.ID, "Naan", 3.50, 0)
	rice := seedProduct(t, wok.ID, "Fried Rice", 8.00, 0)

	if code, _ := cartAdd(t, r, naan.ID, ""); code != http.StatusOK {
		t.Fatalf("first add = %d", code)
	}

	// Second restaurant's product is rejected and the cart keeps only
	// the first restaurant's lines.
	if code, _ := cartAdd(t, r, rice.ID, ""); code != http.StatusBadRequest {
		t.Fatalf("cross-restaurant add = %d, want 400", code)
	}
	lines := handlers.Cart.Lines("")
	if len(lines) != 1 || lines[0].ProductID != naan.ID {
		t.Fatalf("cart after conflict = %+v", lines)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	r, _ := newTestServer(t)
	if code, _ := cartAdd(t, r, "no-such-product", ""); code != http.StatusNotFound {
		t.Fatalf("unknown product add = %d, want 404", code)
	}
}

func TestCartDecrementToZeroRemovesLine(t *testing.T) {
	r, _ := newTestServer(t)
	owner := seedRestaurant(t, "tandoor")
	naan := seedProduct(t, owner.ID, "Naan", 3.50, 0)

	cartAdd(t, r, naan.ID, "increment")

	code, lines := cartAdd(t, r, naan.ID, "decrement")
	if code != http.StatusOK {
		t.Fatalf("decrement = %d", code)
	}
	if len(lines) != 0 {
		t.Fatalf("cart after decrement to zero = %+v, want empty", lines)
	}
}

func TestCartDecrementAbsentLine(t *testing.T) {
	r, _ := newTestServer(t)
	owner := seedRestaurant(t, "tandoor")
	naan := seedProduct(t, owner.ID, "Naan", 3.50, 0)

	if code, _ := cartAdd(t, r, naan.ID, "decrement"); code != http.StatusBadRequest {
		t.Fatalf("decrement absent line = %d, want 400", code)
	}
}

func TestCartRemoveAbsentIs404(t *testing.T) {
	r, _ := newTestServer(t)
	owner := seedRestaurant(t, "tandoor")
	naan := seedProduct(t, owner.ID, "Naan", 3.50, 0)

	w := doJSON(t, r, http.MethodDelete, "/products/cart/remove", map[string]any{
		"productId": naan.ID,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("remove from empty cart = %d, want 404", w.Code)
	}

	cartAdd(t, r, naan.ID, "")
	w = doJSON(t, r, http.MethodDelete, "/products/cart/remove", map[string]any{
		"productId": naan.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("remove = %d: %s", w.Code, w.Body.String())
	}
	if lines := handlers.Cart.Lines(""); len(lines) != 0 {
		t.Fatalf("cart after remove = %+v", lines)
	}
}

func TestCartClearAndRestaurantLookup(t *testing.T) {
	r, _ := newTestServer(t)
	owner := seedRestaurant(t, "tandoor")
	naan := seedProduct(t, owner.ID, "Naan", 3.50, 0)

	// Empty cart has no restaurant.
	w := doJSON(t, r, http.MethodGet, "/products/cart/restaurant", nil)
	var lookup struct {
		RestaurantID   *string `json:"restaurantId"`
		RestaurantName *string `json:"restaurantName"`
	}
	decodeBody(t, w, &lookup)
	if lookup.RestaurantID != nil {
		t.Fatalf("empty cart restaurant = %v, want null", *lookup.RestaurantID)
	}

	cartAdd(t, r, naan.ID, "")
	w = doJSON(t, r, http.MethodGet, "/products/cart/restaurant", nil)
	decodeBody(t, w, &lookup)
	if lookup.RestaurantID == nil || *lookup.RestaurantID != owner.ID {
		t.Fatalf("cart restaurant = %v, want %s", lookup.RestaurantID, owner.ID)
	}
	if lookup.RestaurantName == nil || *lookup.RestaurantName != "tandoor" {
		t.Fatalf("cart restaurant name = %v", lookup.RestaurantName)
	}

	w = doJSON(t, r, http.MethodDelete, "/products/cart/clear", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear = %d", w.Code)
	}
	if lines := handlers.Cart.Lines(""); len(lines) != 0 {
		t.Fatalf("cart after clear = %+v", lines)
	}
}

func TestCartKeyedByShopper(t *testing.T) {
	r, _ := newTestServer(t)
	owner := seedRestaurant(t, "tandoor")
	naan := seedProduct(t, owner.ID, "Naan", 3.50, 0)

	w := doJSON(t, r, http.MethodPost, "/products/cart/add", map[string]any{
		"productId": naan.ID,
		"userId":    "alice",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("keyed add = %d", w.Code)
	}
	if lines := handlers.Cart.Lines(""); len(lines) != 0 {
		t.Fatalf("anonymous cart picked up alice's line: %+v", lines)
	}
	if lines := handlers.Cart.Lines("alice"); len(lines) != 1 {
		t.Fatalf("alice's cart = %+v", lines)
	}
	handlers.Cart.Clear("alice")
}
