package postgres

import (
	"orderservice/internal/adapters/out/postgres/cartrepo"
	"orderservice/internal/adapters/out/postgres/orderrepo"
	"orderservice/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the service, children first.
var Tables = []string{"order_items", "orders", "cart_items", "carts", "outbox"}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&cartrepo.CartDTO{},
		&cartrepo.CartItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&outboxrepo.MessageDTO{},
	)
}
