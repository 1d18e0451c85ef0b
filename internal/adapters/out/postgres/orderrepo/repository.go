package orderrepo

import (
	"context"
	"errors"

	"orderservice/internal/adapters/out/postgres/cartrepo"
	"orderservice/internal/adapters/out/postgres/dberrors"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"

	"gorm.io/gorm"
)

const newestFirst = "orders.created_at DESC, orders.id DESC"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects written aggregates and the events they raised.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any, events ...order.DomainEvent)
}

// NewGormOrderRepository creates a new GORM order repository. A nil tracker is
// allowed for read-only use.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items. The stored version starts at 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order, events ...order.DomainEvent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Omit("Cart").Create(&dto).Error; err != nil {
		return translateError(err)
	}

	aggregate.SetVersion(dto.Version)
	r.track(aggregate, events)
	return nil
}

// Update writes the order if the stored version still matches the aggregate's
// and replaces its items.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, events ...order.DomainEvent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(columns(dto, aggregate.Version()+1))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrConflict(ctx, aggregate.ID())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
		return translateError(err)
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return translateError(err)
		}
	}

	aggregate.SetVersion(aggregate.Version() + 1)
	r.track(aggregate, events)
	return nil
}

// Delete removes the order row and its items. The cart is left in place.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order, events ...order.DomainEvent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().Bytes()
	db := r.db.WithContext(ctx)

	if err := db.Where("order_id = ?", id).Delete(&OrderItemDTO{}).Error; err != nil {
		return translateError(err)
	}

	result := db.Where("id = ? AND version = ?", id, aggregate.Version()).Delete(&OrderDTO{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrConflict(ctx, aggregate.ID())
	}

	r.track(aggregate, events)
	return nil
}

// Get retrieves an order with its items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items", itemsInOrder).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound.WithMessagef("order %s not found", id)
		}
		return nil, translateError(err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetByRequestKey(
	ctx context.Context,
	merchantID kernel.UUID,
	requestKey string,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", itemsInOrder).
		First(&dto, "merchant_id = ? AND request_key = ?", merchantID.Bytes(), requestKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound.WithMessagef("merchant %s has no order for request %q", merchantID, requestKey)
		}
		return nil, translateError(err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetWithCart(ctx context.Context, id kernel.UUID) (ports.OrderWithCart, error) {
	if err := id.Validate(); err != nil {
		return ports.OrderWithCart{}, err
	}

	var dto OrderDTO
	if err := withAssociations(r.db.WithContext(ctx)).First(&dto, "orders.id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.OrderWithCart{}, order.ErrOrderNotFound.WithMessagef("order %s not found", id)
		}
		return ports.OrderWithCart{}, translateError(err)
	}

	return toOrderWithCart(dto)
}

func (r *GormOrderRepository) GetByStatus(ctx context.Context, status order.Status) ([]ports.OrderWithCart, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := withAssociations(r.db.WithContext(ctx)).
		Scopes(hasStatus(status)).
		Order(newestFirst).
		Find(&dtos).Error; err != nil {
		return nil, translateError(err)
	}

	return toOrdersWithCart(dtos)
}

func (r *GormOrderRepository) GetByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	return r.findPage(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("orders.customer_id = ?", customerID.Bytes())
	})
}

func (r *GormOrderRepository) GetAll(
	ctx context.Context,
	filter ports.OrderFilter,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	scopes := make([]func(*gorm.DB) *gorm.DB, 0, 3)
	if filter.Status != nil {
		scopes = append(scopes, hasStatus(*filter.Status))
	}
	if filter.From != nil {
		from := filter.From.UTC()
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("orders.created_at >= ?", from)
		})
	}
	if filter.To != nil {
		to := filter.To.UTC()
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("orders.created_at <= ?", to)
		})
	}

	return r.findPage(ctx, page, scopes...)
}

func (r *GormOrderRepository) findPage(
	ctx context.Context,
	page ports.PageRequest,
	scopes ...func(*gorm.DB) *gorm.DB,
) (ports.OrderPage, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&OrderDTO{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return ports.OrderPage{}, translateError(err)
	}

	var dtos []OrderDTO
	if err := withAssociations(db).
		Scopes(scopes...).
		Order(newestFirst).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&dtos).Error; err != nil {
		return ports.OrderPage{}, translateError(err)
	}

	items, err := toOrdersWithCart(dtos)
	if err != nil {
		return ports.OrderPage{}, err
	}

	return ports.OrderPage{Items: items, TotalCount: total}, nil
}

func (r *GormOrderRepository) missingOrConflict(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return order.ErrOrderNotFound.WithMessagef("order %s not found", id)
	}
	return errs.ErrConcurrencyConflict.WithMessagef("order %s was modified by another operation", id)
}

func (r *GormOrderRepository) track(aggregate *order.Order, events []order.DomainEvent) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate, events...)
	}
}

func columns(dto OrderDTO, version int) map[string]any {
	cols := map[string]any{
		"name":         dto.Name,
		"customer_id":  dto.CustomerID,
		"merchant_id":  dto.MerchantID,
		"cart_id":      dto.CartID,
		"status":       dto.Status,
		"total_amount": dto.TotalAmount,
		"currency":     dto.Currency,
		"paid_at":      dto.PaidAt,
		"shipped_at":   dto.ShippedAt,
		"cancelled_at": dto.CancelledAt,
		"version":      version,
	}

	var address AddressDTO
	if dto.ShippingAddress != nil {
		address = *dto.ShippingAddress
	}
	cols["shipping_street"] = address.Street
	cols["shipping_city"] = address.City
	cols["shipping_state"] = address.State
	cols["shipping_postal_code"] = address.PostalCode
	cols["shipping_country"] = address.Country

	return cols
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", itemsInOrder).Preload("Cart.Items", cartrepo.ItemsInOrder)
}

func itemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}

func hasStatus(status order.Status) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("orders.status = ?", status.String())
	}
}

func toOrderWithCart(dto OrderDTO) (ports.OrderWithCart, error) {
	o, err := toDomain(dto)
	if err != nil {
		return ports.OrderWithCart{}, err
	}

	result := ports.OrderWithCart{Order: o}
	if dto.Cart != nil {
		c, cartErr := cartrepo.ToDomain(*dto.Cart)
		if cartErr != nil {
			return ports.OrderWithCart{}, cartErr
		}
		result.Cart = c
	}
	return result, nil
}

func toOrdersWithCart(dtos []OrderDTO) ([]ports.OrderWithCart, error) {
	result := make([]ports.OrderWithCart, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toOrderWithCart(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// translateError maps storage failures onto coded errors. Unique violations on
// orders can only come from the merchant request key index.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return order.ErrDuplicateOrder.WithCause(err)
	}
	return dberrors.Translate(err)
}
