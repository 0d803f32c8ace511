package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the order lifecycle enum. Transitions are not policed:
// the update operation overwrites whatever status the caller sends.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is a member of the lifecycle enum.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	DinerID         string      `json:"userId" gorm:"index;not null"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount     string      `json:"totalAmount" gorm:"not null"`
	Status          OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	OrderDate       time.Time   `json:"orderDate"`
	DeliveryAddress string      `json:"deliveryAddress" gorm:"not null"`
	City            string      `json:"city" gorm:"not null"`
	Phone           string      `json:"phone" gorm:"not null"`
	Allergies       string      `json:"allergies"`
	PaymentMethod   string      `json:"paymentMethod" gorm:"default:'cash'"`
}

// OrderItem is a snapshot taken at checkout. It never changes afterwards,
// even if the source product is repriced or deleted.
type OrderItem struct {
	ID             string  `json:"-" gorm:"primaryKey"`
	OrderID        string  `json:"-" gorm:"index;not null"`
	ProductID      string  `json:"productId" gorm:"not null"`
	Name           string  `json:"name"`
	RestaurantName string  `json:"restaurantName"`
	Price          float64 `json:"price"`
	Discount       int     `json:"discount"`
	Quantity       int     `json:"quantity"`
	FinalPrice     float64 `json:"finalPrice"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// FinalUnitPrice applies the percentage discount to a unit price.
func FinalUnitPrice(price float64, discount int) decimal.Decimal {
	p := decimal.NewFromFloat(price)
	if discount <= 0 {
		return p
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(discount)).Div(decimal.NewFromInt(100)))
	return p.Mul(factor)
}

// FormatAmount renders a monetary total fixed to two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
