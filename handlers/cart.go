package handlers

import (
	"errors"
	"net/http"

	"github.com/asharbutt0314/foodexpress/cart"
	"github.com/asharbutt0314/foodexpress/config"
	"github.com/asharbutt0314/foodexpress/models"

	"github.com/gin-gonic/gin"
)

// Cart is the process cart store. Requests without a userId share one
// anonymous cart, which is what the single-shopper frontend expects.
var Cart = cart.NewStore()

type CartRequest struct {
	ProductID string `json:"productId"`
	Action    string `json:"action"`
	UserID    string `json:"userId"`
}

// cartOwner resolves the restaurant that owns the cart's first line,
// if the cart is non-empty and the product still resolves.
func cartOwner(key string) (string, bool) {
	first, ok := Cart.First(key)
	if !ok {
		return "", false
	}
	var product models.Product
	if err := config.DB.Where("id = ?", first.ProductID).First(&product).Error; err != nil {
		return "", false
	}
	return product.OwnerID, true
}

// AddToCart upserts or decrements a cart line depending on the action.
// The single-restaurant rule is enforced against the first line before
// any insertion, so it holds for the whole cart.
func AddToCart(c *gin.Context) {
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID is required"})
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", req.ProductID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	if req.Action == "decrement" {
		if err := Cart.Decrement(req.UserID, req.ProductID); err != nil {
			if errors.Is(err, cart.ErrNotInCart) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Product not in cart"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": Cart.Lines(req.UserID)})
		return
	}

	if owner, ok := cartOwner(req.UserID); ok && owner != product.OwnerID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You can add products from 1 restaurant at a time"})
		return
	}

	Cart.Add(req.UserID, req.ProductID)
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": Cart.Lines(req.UserID)})
}

// ViewCart returns the cart's lines.
func ViewCart(c *gin.Context) {
	c.JSON(http.StatusOK, Cart.Lines(c.Query("userId")))
}

// RemoveFromCart drops a line outright.
func RemoveFromCart(c *gin.Context) {
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID is required"})
		return
	}
	if err := Cart.Remove(req.UserID, req.ProductID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "cart": Cart.Lines(req.UserID)})
}

// ClearCart empties the cart unconditionally.
func ClearCart(c *gin.Context) {
	var req CartRequest
	_ = c.ShouldBindJSON(&req)
	Cart.Clear(req.UserID)
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "cart": Cart.Lines(req.UserID)})
}

// GetCartRestaurant reports which restaurant the cart is locked to.
func GetCartRestaurant(c *gin.Context) {
	key := c.Query("userId")
	first, ok := Cart.First(key)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"restaurantId": nil, "restaurantName": nil})
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", first.ProductID).First(&product).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"restaurantId": nil, "restaurantName": nil})
		return
	}

	name := "Unknown Restaurant"
	if owner := accountByID(models.KindRestaurant, product.OwnerID); owner != nil {
		name = owner.RestaurantName
	}
	c.JSON(http.StatusOK, gin.H{"restaurantId": product.OwnerID, "restaurantName": name})
}
