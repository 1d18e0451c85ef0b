package orderrepo

import (
	"time"

	"orderservice/internal/adapters/out/postgres/cartrepo"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name            string            `gorm:"type:varchar(5);not null"`
	CustomerID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	MerchantID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_orders_merchant_request"`
	RequestKey      *string           `gorm:"type:varchar(255);uniqueIndex:idx_orders_merchant_request"`
	CartID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	Cart            *cartrepo.CartDTO `gorm:"foreignKey:CartID"`
	Status          string            `gorm:"type:varchar(16);not null;index"`
	ShippingAddress *AddressDTO       `gorm:"embedded;embeddedPrefix:shipping_"`
	TotalAmount     decimal.Decimal   `gorm:"type:numeric(19,4);not null"`
	Currency        string            `gorm:"type:varchar(3);not null"`
	Items           []OrderItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"not null;index"`
	Version         int               `gorm:"type:int;not null"`
	PaidAt          *time.Time
	ShippedAt       *time.Time
	CancelledAt     *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Street     string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(255)"`
	State      string `gorm:"type:varchar(255)"`
	PostalCode string `gorm:"type:varchar(32)"`
	Country    string `gorm:"type:varchar(255)"`
}

type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"type:int;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Currency  string          `gorm:"type:varchar(3);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var requestKey *string
	if key := o.RequestKey(); key != "" {
		requestKey = &key
	}

	var address *AddressDTO
	if a := o.ShippingAddress(); a != nil {
		address = &AddressDTO{
			Street:     a.Street(),
			City:       a.City(),
			State:      a.State(),
			PostalCode: a.PostalCode(),
			Country:    a.Country(),
		}
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   orderID,
			ProductID: item.ProductID().UUID().Bytes(),
			Quantity:  item.Quantity().Value(),
			UnitPrice: item.UnitPrice().Amount(),
			Currency:  item.UnitPrice().Currency(),
		})
	}

	return OrderDTO{
		ID:              orderID,
		Name:            o.Name().String(),
		CustomerID:      o.CustomerID().Bytes(),
		MerchantID:      o.MerchantID().Bytes(),
		RequestKey:      requestKey,
		CartID:          o.CartID().Bytes(),
		Status:          o.Status().String(),
		ShippingAddress: address,
		TotalAmount:     o.TotalAmount().Amount(),
		Currency:        o.TotalAmount().Currency(),
		Items:           items,
		CreatedAt:       o.CreatedAt(),
		PaidAt:          o.PaidAt(),
		ShippedAt:       o.ShippedAt(),
		CancelledAt:     o.CancelledAt(),
		Version:         o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}
	cartID, err := kernel.UUIDFromBytes(dto.CartID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var address *kernel.Address
	if a := dto.ShippingAddress; a != nil && a.Street != "" {
		restored, addrErr := kernel.NewAddress(a.Street, a.City, a.State, a.PostalCode, a.Country)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &restored
	}

	items := make([]order.ItemSnapshot, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		items = append(items, order.ItemSnapshot{
			ProductID: productID,
			Quantity:  itemDTO.Quantity,
			UnitPrice: itemDTO.UnitPrice,
			Currency:  itemDTO.Currency,
		})
	}

	var requestKey string
	if dto.RequestKey != nil {
		requestKey = *dto.RequestKey
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		Name:            dto.Name,
		CustomerID:      customerID,
		MerchantID:      merchantID,
		CartID:          cartID,
		ShippingAddress: address,
		Status:          status,
		Items:           items,
		CreatedAt:       dto.CreatedAt,
		PaidAt:          dto.PaidAt,
		ShippedAt:       dto.ShippedAt,
		CancelledAt:     dto.CancelledAt,
		RequestKey:      requestKey,
		Version:         dto.Version,
	})
}
