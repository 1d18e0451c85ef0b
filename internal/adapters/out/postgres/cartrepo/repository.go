package cartrepo

import (
	"context"
	"errors"

	"orderservice/internal/adapters/out/postgres/dberrors"
	"orderservice/internal/core/domain/model/cart"
	"orderservice/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// ItemsInOrder preloads cart items in their stored order.
func ItemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *GormCartRepository) Create(ctx context.Context, c *cart.Cart) (*cart.Cart, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, dberrors.Translate(err)
	}

	return ToDomain(dto)
}

func (r *GormCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).Preload("Items", ItemsInOrder).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound.WithMessagef("cart %s not found", id)
		}
		return nil, dberrors.Translate(err)
	}

	return ToDomain(dto)
}

// Update replaces the stored items of the cart.
func (r *GormCartRepository) Update(ctx context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&CartDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return dberrors.Translate(err)
	}
	if count == 0 {
		return cart.ErrCartNotFound.WithMessagef("cart %s not found", c.ID())
	}

	if err := db.Where("cart_id = ?", dto.ID).Delete(&CartItemDTO{}).Error; err != nil {
		return dberrors.Translate(err)
	}
	if err := db.Create(&dto.Items).Error; err != nil {
		return dberrors.Translate(err)
	}

	return nil
}
