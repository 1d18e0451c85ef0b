// Package readmodel holds the flat, JSON-ready views returned by command and query handlers.
package readmodel

import (
	"math"
	"time"

	"orderservice/internal/core/domain/model/cart"
	"orderservice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customerId"`
	MerchantID      uuid.UUID       `json:"merchantId"`
	OrderName       string          `json:"orderName"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Currency        string          `json:"currency"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress *Address        `json:"shippingAddress,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	ShippedAt       *time.Time      `json:"shippedAt,omitempty"`
	CancelledAt     *time.Time      `json:"cancelledAt,omitempty"`
	Cart            *Cart           `json:"cart,omitempty"`
}

type OrderItem struct {
	ProductID  uuid.UUID       `json:"productId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Cart struct {
	ID        uuid.UUID  `json:"id"`
	CartItems []CartItem `json:"cartItems"`
}

type CartItem struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(p.TotalCount) / float64(p.PageSize)))
}

// FromOrder flattens an order and, when given, its cart.
func FromOrder(o *order.Order, c *cart.Cart) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ProductID:  item.ProductID().UUID().Bytes(),
			Quantity:   item.Quantity().Value(),
			UnitPrice:  item.UnitPrice().Amount(),
			TotalPrice: item.TotalPrice().Amount(),
		})
	}

	view := Order{
		ID:          o.ID().Bytes(),
		CustomerID:  o.CustomerID().Bytes(),
		MerchantID:  o.MerchantID().Bytes(),
		OrderName:   o.Name().String(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		TotalAmount: o.TotalAmount().Amount(),
		Currency:    o.TotalAmount().Currency(),
		Items:       items,
		PaidAt:      o.PaidAt(),
		ShippedAt:   o.ShippedAt(),
		CancelledAt: o.CancelledAt(),
	}

	if addr := o.ShippingAddress(); addr != nil {
		view.ShippingAddress = &Address{
			Street:     addr.Street(),
			City:       addr.City(),
			State:      addr.State(),
			PostalCode: addr.PostalCode(),
			Country:    addr.Country(),
		}
	}

	if c != nil {
		cv := FromCart(c)
		view.Cart = &cv
	}

	return view
}

func FromCart(c *cart.Cart) Cart {
	items := make([]CartItem, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, CartItem{
			ID:       item.ID().Bytes(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}
	return Cart{ID: c.ID().Bytes(), CartItems: items}
}
