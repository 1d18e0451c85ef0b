package order

import (
	"orderservice/internal/core/domain/model/kernel"
)

// OrderItem is one product line of an order. It has no identity outside its order.
type OrderItem struct {
	productID ProductID
	quantity  kernel.Quantity
	unitPrice kernel.Money
}

// NewOrderItem builds a line from already validated parts.
func NewOrderItem(productID ProductID, quantity kernel.Quantity, unitPrice kernel.Money) (*OrderItem, error) {
	if productID.UUID().IsNil() {
		return nil, ErrInvalidProductID
	}
	if err := quantity.Validate(); err != nil {
		return nil, err
	}
	if err := unitPrice.Validate(); err != nil {
		return nil, err
	}

	return &OrderItem{productID: productID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (i *OrderItem) ProductID() ProductID {
	return i.productID
}

func (i *OrderItem) Quantity() kernel.Quantity {
	return i.quantity
}

func (i *OrderItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// TotalPrice is unit price times quantity, in the unit price currency.
func (i *OrderItem) TotalPrice() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}
