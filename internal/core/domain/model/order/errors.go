package order

import "orderservice/internal/pkg/errs"

var (
	ErrInvalidItemPrice    = errs.New(errs.KindValidation, "INVALID_ITEM_PRICE", "item price must be greater than zero")
	ErrInvalidItemQuantity = errs.New(errs.KindValidation, "INVALID_ITEM_QUANTITY", "item quantity must be greater than zero")
	ErrInvalidProductID    = errs.New(errs.KindValidation, "INVALID_PRODUCT_ID", "product id is required")
	ErrInvalidNameLength   = errs.New(errs.KindValidation, "INVALID_LENGTH", "order name must be exactly 5 characters")
	ErrInvalidNameChars    = errs.New(errs.KindValidation, "INVALID_CHARACTERS", "order name may contain only A-Z and 0-9")

	ErrOrderNotPending     = errs.New(errs.KindDomain, "ORDER_NOT_PENDING", "only pending orders can be modified")
	ErrOrderItemNotFound   = errs.New(errs.KindDomain, "ORDER_ITEM_NOT_FOUND", "order has no item for this product")
	ErrCannotPayOrder      = errs.New(errs.KindDomain, "CANNOT_PAY_ORDER", "an order without items cannot be paid")
	ErrAlreadyCancelled    = errs.New(errs.KindDomain, "ALREADY_CANCELLED", "order is already cancelled")
	ErrOrderShipping       = errs.New(errs.KindDomain, "ORDER_SHIPPING_ERROR", "only paid orders can be shipped")
	ErrEmptyOrderShipping  = errs.New(errs.KindDomain, "EMPTY_ORDER_SHIPPING", "an order without items cannot be shipped")
	ErrNullAddress         = errs.New(errs.KindDomain, "NULL_ADDRESS", "shipping address is required")
	ErrOrderDeleted        = errs.New(errs.KindDomain, "ORDER_DELETED", "order is deleted")

	ErrOrderNotFound  = errs.New(errs.KindNotFound, "ORDER_NOT_FOUND", "order not found")
	ErrDuplicateOrder = errs.New(errs.KindDuplicate, "DUPLICATE_ENTITY", "order already exists")
)
