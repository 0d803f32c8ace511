package mailer

import (
	"fmt"
	"strings"

	"github.com/asharbutt0314/foodexpress/models"

	"github.com/shopspring/decimal"
)

// OtpHTML renders the OTP code email.
func OtpHTML(code, brand string) string {
	return fmt.Sprintf(`
<div style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; max-width: 600px; margin: 0 auto; background: linear-gradient(135deg, #FF5722 0%%, #FF9800 100%%); border-radius: 20px; overflow: hidden;">
  <div style="background: white; margin: 20px; border-radius: 15px; padding: 40px; text-align: center;">
    <h1 style="color: #FF5722; margin-bottom: 10px; font-size: 2rem;">%s</h1>
    <h2 style="color: #333; margin-bottom: 30px;">Your OTP Code</h2>
    <div style="background: linear-gradient(45deg, #4CAF50, #8BC34A); color: white; padding: 20px; border-radius: 15px; font-size: 2rem; font-weight: bold; letter-spacing: 3px; margin: 30px 0;">%s</div>
    <p style="color: #666; font-size: 1.1rem; margin: 20px 0;">This code will expire in <strong style="color: #FF5722;">10 minutes</strong></p>
    <p style="color: #999; font-size: 0.9rem;">If you didn't request this code, please ignore this email.</p>
  </div>
</div>`, brand, code)
}

type statusInfo struct {
	Title   string
	Message string
	Color   string
}

func statusLine(status models.OrderStatus) statusInfo {
	switch status {
	case models.StatusConfirmed:
		return statusInfo{"Order Confirmed!", "Your order has been accepted and is being prepared.", "#4CAF50"}
	case models.StatusPreparing:
		return statusInfo{"Order Being Prepared!", "The vendor is making your order. Please wait!", "#FF5722"}
	case models.StatusDelivered:
		return statusInfo{"Order Completed!", "Your order has been completed and delivered!", "#2196F3"}
	case models.StatusCancelled:
		return statusInfo{"Order Declined", "We apologize, but your order has been declined by the vendor.", "#f44336"}
	default:
		return statusInfo{"Order Update", "Your order status has been updated.", "#FF9800"}
	}
}

// ShortOrderID is the human-facing order reference used in subjects.
func ShortOrderID(id string) string {
	if len(id) > 6 {
		return id[len(id)-6:]
	}
	return id
}

func itemsTable(items []models.OrderItem) string {
	var sb strings.Builder
	for _, it := range items {
		lineTotal := decimal.NewFromFloat(it.FinalPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
		fmt.Fprintf(&sb, `<tr>
  <td style="padding: 10px; border-bottom: 1px solid #eee;">%s<br><small style="color: #666;">%s</small></td>
  <td style="padding: 10px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
  <td style="padding: 10px; border-bottom: 1px solid #eee; text-align: right; font-weight: bold;">PKR %s</td>
</tr>`, it.Name, restaurantOrUnknown(it.RestaurantName), it.Quantity, models.FormatAmount(lineTotal))
	}
	return sb.String()
}

func restaurantOrUnknown(name string) string {
	if name == "" {
		return "Unknown Restaurant"
	}
	return name
}

// OrderStatusSubject builds the subject line for a status notification.
func OrderStatusSubject(order *models.Order, status models.OrderStatus) string {
	return fmt.Sprintf("%s - Order #%s", statusLine(status).Title, ShortOrderID(order.ID))
}

// OrderStatusHTML renders the status-change notification.
func OrderStatusHTML(userName string, order *models.Order, status models.OrderStatus) string {
	info := statusLine(status)
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #f8f9fa; padding: 20px;">
  <div style="background: linear-gradient(135deg, %s 0%%, #FF9800 100%%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="margin: 0; font-size: 28px;">FoodExpress</h1>
    <h2 style="margin: 10px 0 0 0; font-size: 20px;">%s</h2>
  </div>
  <div style="background: white; padding: 30px; border-radius: 0 0 10px 10px;">
    <p style="font-size: 18px; color: #333;">Hi %s,</p>
    <p style="color: #666; font-size: 16px;">%s</p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 10px; margin-bottom: 25px;">
      <p><strong>Order ID:</strong> #%s</p>
      <p><strong>Order Date:</strong> %s</p>
      <p><strong>Status:</strong> <span style="color: %s; font-weight: bold;">%s</span></p>
    </div>
    %s
    <table style="width: 100%%; border-collapse: collapse; margin-bottom: 25px;">%s</table>
    <p style="text-align: right; font-size: 18px;"><strong>Total: PKR %s</strong></p>
  </div>
</div>`,
		info.Color, info.Title, userName, info.Message,
		ShortOrderID(order.ID), order.OrderDate.Format("1/2/2006"),
		info.Color, strings.ToUpper(string(status)),
		deliveryBlock(order), itemsTable(order.Items), order.TotalAmount)
}

// OrderConfirmationSubject builds the subject line for the checkout email.
func OrderConfirmationSubject(order *models.Order) string {
	return fmt.Sprintf("Order Confirmation - Order #%s", ShortOrderID(order.ID))
}

// OrderConfirmationHTML renders the checkout confirmation.
func OrderConfirmationHTML(userName string, order *models.Order) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #f8f9fa; padding: 20px;">
  <div style="background: linear-gradient(135deg, #FF5722 0%%, #FF9800 100%%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="margin: 0; font-size: 28px;">FoodExpress</h1>
    <h2 style="margin: 10px 0 0 0; font-size: 20px;">Order Received!</h2>
  </div>
  <div style="background: white; padding: 30px; border-radius: 0 0 10px 10px;">
    <p style="font-size: 18px; color: #333;">Hi %s,</p>
    <p style="color: #666; font-size: 16px;">Thanks for your order! The vendor has been notified and will confirm it shortly.</p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 10px; margin-bottom: 25px;">
      <p><strong>Order ID:</strong> #%s</p>
      <p><strong>Order Date:</strong> %s</p>
    </div>
    %s
    <table style="width: 100%%; border-collapse: collapse; margin-bottom: 25px;">%s</table>
    <p style="text-align: right; font-size: 18px;"><strong>Total: PKR %s</strong></p>
  </div>
</div>`,
		userName, ShortOrderID(order.ID), order.OrderDate.Format("1/2/2006"),
		deliveryBlock(order), itemsTable(order.Items), order.TotalAmount)
}

func deliveryBlock(order *models.Order) string {
	allergies := ""
	if order.Allergies != "" {
		allergies = fmt.Sprintf(`<p style="margin-bottom: 8px;"><strong>Special Instructions:</strong> %s</p>`, order.Allergies)
	}
	return fmt.Sprintf(`
<div style="margin-bottom: 25px;">
  <h3 style="color: #FF5722;">Delivery Information</h3>
  <p style="margin-bottom: 8px;"><strong>Address:</strong> %s</p>
  <p style="margin-bottom: 8px;"><strong>City:</strong> %s</p>
  <p style="margin-bottom: 8px;"><strong>Phone:</strong> %s</p>
  <p style="margin-bottom: 8px;"><strong>Payment Method:</strong> Cash on Delivery</p>
  %s
</div>`, order.DeliveryAddress, order.City, order.Phone, allergies)
}
