package cartrepo

import (
	"time"

	"orderservice/internal/core/domain/model/cart"
	"orderservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time     `gorm:"not null"`
	Items     []CartItemDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

type CartItemDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position int             `gorm:"type:int;not null"`
	Name     string          `gorm:"type:varchar(255);not null"`
	Quantity int             `gorm:"type:int;not null"`
	Price    decimal.Decimal `gorm:"type:numeric(19,4);not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

func fromDomain(c *cart.Cart) CartDTO {
	cartID := c.ID().Bytes()
	items := make([]CartItemDTO, 0, len(c.Items()))

	for i, item := range c.Items() {
		items = append(items, CartItemDTO{
			ID:       item.ID().Bytes(),
			CartID:   cartID,
			Position: i,
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}

	return CartDTO{
		ID:        cartID,
		CreatedAt: c.CreatedAt(),
		Items:     items,
	}
}

// ToDomain rebuilds a cart. Items must already be sorted by Position.
func ToDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := cart.NewItem(itemID, itemDTO.Name, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return cart.RestoreCart(id, dto.CreatedAt, items)
}
