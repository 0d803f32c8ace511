package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/asharbutt0314/foodexpress/config"
	"github.com/asharbutt0314/foodexpress/mailer"
	"github.com/asharbutt0314/foodexpress/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	DinerID string `json:"userId" binding:"required"`
	Items   []struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required"`
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	City            string `json:"city" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	Allergies       string `json:"allergies"`
	PaymentMethod   string `json:"paymentMethod"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// orderWithCustomer decorates an order with the diner's display name
// for the restaurant-facing views.
type orderWithCustomer struct {
	models.Order
	CustomerName string `json:"customerName"`
}

func customerName(dinerID string) string {
	if diner := accountByID(models.KindDiner, dinerID); diner != nil {
		return diner.Username
	}
	return "Unknown"
}

// restaurantNames maps owner account ids to restaurant names, fetched
// once per checkout.
func restaurantNames() map[string]string {
	var owners []models.Account
	config.DB.Where("kind = ?", models.KindRestaurant).Find(&owners)
	names := make(map[string]string, len(owners))
	for _, o := range owners {
		names[o.ID] = o.RestaurantName
	}
	return names
}

// CreateOrder snapshots the requested lines into an immutable order.
// Lines whose product no longer resolves are skipped without error;
// stale carts should not block checkout. Prices and discounts are
// captured at this moment and never re-read.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to create order", "error": err.Error()})
		return
	}

	names := restaurantNames()

	var items []models.OrderItem
	total := decimal.Zero
	for _, line := range req.Items {
		var product models.Product
		if err := config.DB.Where("id = ?", line.ProductID).First(&product).Error; err != nil {
			continue
		}
		final := models.FinalUnitPrice(product.Price, product.Discount)
		finalFloat, _ := final.Float64()

		restaurantName := names[product.OwnerID]
		if restaurantName == "" {
			restaurantName = "Unknown Restaurant"
		}

		items = append(items, models.OrderItem{
			ProductID:      product.ID,
			Name:           product.Name,
			RestaurantName: restaurantName,
			Price:          product.Price,
			Discount:       product.Discount,
			Quantity:       line.Quantity,
			FinalPrice:     finalFloat,
		})
		total = total.Add(final.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	order := models.Order{
		DinerID:         req.DinerID,
		Items:           items,
		TotalAmount:     models.FormatAmount(total),
		Status:          models.StatusPending,
		OrderDate:       time.Now(),
		DeliveryAddress: req.DeliveryAddress,
		City:            req.City,
		Phone:           req.Phone,
		Allergies:       req.Allergies,
		PaymentMethod:   paymentMethod,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order", "error": err.Error()})
		return
	}

	// The order is durable at this point; a failed confirmation email
	// must not fail the checkout.
	if diner := accountByID(models.KindDiner, req.DinerID); diner != nil {
		if err := mailer.Send(diner.Email, mailer.OrderConfirmationSubject(&order), mailer.OrderConfirmationHTML(diner.Username, &order)); err != nil {
			log.Printf("order %s confirmation email failed: %v", order.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// GetUserOrders lists a diner's orders, newest first.
func GetUserOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Preload("Items").
		Where("diner_id = ?", c.Param("userId")).
		Order("order_date desc").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetAllOrders lists every order with the customer's name attached.
func GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Preload("Items").Order("order_date desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": err.Error()})
		return
	}
	out := make([]orderWithCustomer, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderWithCustomer{Order: o, CustomerName: customerName(o.DinerID)})
	}
	c.JSON(http.StatusOK, out)
}

// ownedProductIDs returns the product ids currently in a restaurant's
// catalog. Snapshots referencing deleted products fall out of the
// restaurant views, matching how the order book always behaved.
func ownedProductIDs(ownerID string) map[string]bool {
	var products []models.Product
	config.DB.Where("owner_id = ?", ownerID).Find(&products)
	ids := make(map[string]bool, len(products))
	for _, p := range products {
		ids[p.ID] = true
	}
	return ids
}

// projectOrder keeps only the items owned by the restaurant and
// recomputes the total over that subset.
func projectOrder(o models.Order, owned map[string]bool) (orderWithCustomer, bool) {
	var kept []models.OrderItem
	total := decimal.Zero
	for _, it := range o.Items {
		if owned[it.ProductID] {
			kept = append(kept, it)
			total = total.Add(decimal.NewFromFloat(it.FinalPrice).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	if len(kept) == 0 {
		return orderWithCustomer{}, false
	}
	o.Items = kept
	o.TotalAmount = models.FormatAmount(total)
	return orderWithCustomer{Order: o, CustomerName: customerName(o.DinerID)}, true
}

// GetClientOrders derives the restaurant's view of the order book:
// only orders containing its products, projected down to its items,
// with the total recomputed over the projection. Full scan, no index —
// fine at this scale.
func GetClientOrders(c *gin.Context) {
	owned := ownedProductIDs(c.Param("clientId"))
	if len(owned) == 0 {
		c.JSON(http.StatusOK, []orderWithCustomer{})
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("Items").Order("order_date desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch client orders", "error": err.Error()})
		return
	}

	out := make([]orderWithCustomer, 0)
	for _, o := range orders {
		if view, ok := projectOrder(o, owned); ok {
			out = append(out, view)
		}
	}
	c.JSON(http.StatusOK, out)
}

// GetOrderDetails returns one order with the customer's name.
func GetOrderDetails(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items").Where("id = ?", c.Param("orderId")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, orderWithCustomer{Order: order, CustomerName: customerName(order.DinerID)})
}

// UpdateOrderStatus overwrites the order's status. Any status may
// follow any other; callers own the lifecycle discipline. The diner is
// notified best-effort afterwards.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update order", "error": "invalid status"})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").Where("id = ?", c.Param("orderId")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	order.Status = req.Status
	if err := config.DB.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order", "error": err.Error()})
		return
	}

	if diner := accountByID(models.KindDiner, order.DinerID); diner != nil {
		if err := mailer.Send(diner.Email, mailer.OrderStatusSubject(&order, req.Status), mailer.OrderStatusHTML(diner.Username, &order, req.Status)); err != nil {
			log.Printf("order %s status email failed: %v", order.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// GetClientOrderCount counts delivered orders containing the
// restaurant's products. Deliberately narrower than the diner count,
// which covers every status; the dashboard reads this as "completed
// orders".
func GetClientOrderCount(c *gin.Context) {
	owned := ownedProductIDs(c.Param("clientId"))

	var orders []models.Order
	if err := config.DB.Preload("Items").Where("status = ?", models.StatusDelivered).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	count := 0
	for _, o := range orders {
		for _, it := range o.Items {
			if owned[it.ProductID] {
				count++
				break
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetUserOrderCount counts every order the diner ever placed.
func GetUserOrderCount(c *gin.Context) {
	var count int64
	if err := config.DB.Model(&models.Order{}).Where("diner_id = ?", c.Param("userId")).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetOrderStatus returns just the status field.
func GetOrderStatus(c *gin.Context) {
	var order models.Order
	if err := config.DB.Select("id, status").Where("id = ?", c.Param("orderId")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.Status})
}

// TestEmail sends the confirmation template with canned data so the
// SMTP setup can be checked without placing a real order.
func TestEmail(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	testOrder := models.Order{
		ID:              "test-order-439011",
		OrderDate:       time.Now(),
		DeliveryAddress: "Test Address, City",
		City:            "Test City",
		Phone:           "+1234567890",
		TotalAmount:     "25.99",
		Items: []models.OrderItem{{
			Name:       "Test Pizza",
			Quantity:   2,
			Price:      15.99,
			Discount:   10,
			FinalPrice: 14.39,
		}},
	}

	if err := mailer.Send(req.Email, mailer.OrderConfirmationSubject(&testOrder), mailer.OrderConfirmationHTML("Test User", &testOrder)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send test email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Test email sent successfully"})
}
