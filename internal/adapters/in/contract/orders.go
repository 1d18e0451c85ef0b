package contract

import (
	"encoding/json"
	"errors"
	"strings"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrMalformedBody = errs.New(errs.KindValidation, "MALFORMED_BODY", "body is not a valid JSON document")

type CartItem struct {
	Name     string          `json:"name"     validate:"required,max=255"`
	Quantity int             `json:"quantity" validate:"lte=2147483647"`
	Price    decimal.Decimal `json:"price"`
}

type Cart struct {
	CartItems []CartItem `json:"cartItems" validate:"required,min=1,dive"`
}

// CreateOrderRequest is the body of POST /api/v1/orders and of a create-order message.
type CreateOrderRequest struct {
	OrderName  string `json:"orderName"           validate:"required"`
	CustomerID string `json:"customerId"          validate:"required,uuid"`
	MerchantID string `json:"merchantId"          validate:"required,uuid"`
	Cart       Cart   `json:"cart"`
	RequestID  string `json:"requestId,omitempty" validate:"omitempty,max=255"`
}

// DecodeCreateOrderRequest parses a message body. Anything that is not a JSON
// object of the right shape fails with ErrMalformedBody.
func DecodeCreateOrderRequest(body []byte) (CreateOrderRequest, error) {
	var req CreateOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return CreateOrderRequest{}, ErrMalformedBody.WithCause(err)
	}
	return req, nil
}

// ToCommand validates the request. fallbackKey is used as the request key when
// the body carries no requestId.
func (r CreateOrderRequest) ToCommand(v *Validator, fallbackKey string) (commands.CreateOrderCommand, error) {
	if err := v.Validate(r); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	customerID, merchantID, err := parseParties(r.CustomerID, r.MerchantID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	key := strings.TrimSpace(r.RequestID)
	if key == "" {
		key = fallbackKey
	}
	return commands.NewCreateOrderCommand(r.OrderName, customerID, merchantID, r.Cart.inputs(), key)
}

// UpdateOrderRequest is the body of PUT /api/v1/orders/:id.
type UpdateOrderRequest struct {
	ID         string `json:"id"         validate:"required,uuid"`
	OrderName  string `json:"orderName"  validate:"required"`
	CustomerID string `json:"customerId" validate:"required,uuid"`
	MerchantID string `json:"merchantId" validate:"required,uuid"`
	Cart       Cart   `json:"cart"`
}

func (r UpdateOrderRequest) ToCommand(v *Validator, routeID kernel.UUID) (commands.UpdateOrderCommand, error) {
	if err := v.Validate(r); err != nil {
		return commands.UpdateOrderCommand{}, err
	}

	orderID, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return commands.UpdateOrderCommand{}, errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	customerID, merchantID, err := parseParties(r.CustomerID, r.MerchantID)
	if err != nil {
		return commands.UpdateOrderCommand{}, err
	}

	return commands.NewUpdateOrderCommand(routeID, orderID, r.OrderName, customerID, merchantID, r.Cart.inputs())
}

// AddItemRequest is the body of POST /api/v1/orders/:id/items.
type AddItemRequest struct {
	ProductID string          `json:"productId"          validate:"required,uuid"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency,omitempty" validate:"omitempty,len=3"`
}

func (r AddItemRequest) ToCommand(v *Validator, orderID kernel.UUID) (commands.AddOrderItemCommand, error) {
	if err := v.Validate(r); err != nil {
		return commands.AddOrderItemCommand{}, err
	}

	productID, err := kernel.UUIDFromString(r.ProductID)
	if err != nil {
		return commands.AddOrderItemCommand{}, errs.NewValidationError(
			errs.NewValueIsInvalidErrorWithCause("productId", err))
	}
	return commands.NewAddOrderItemCommand(orderID, productID, r.Quantity, r.Price, strings.ToUpper(r.Currency))
}

// ShippingAddressRequest is the body of PUT /api/v1/orders/:id/shipping-address.
type ShippingAddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (r ShippingAddressRequest) ToCommand(orderID kernel.UUID) (commands.SetShippingAddressCommand, error) {
	return commands.NewSetShippingAddressCommand(orderID, r.Street, r.City, r.State, r.PostalCode, r.Country)
}

func (c Cart) inputs() []commands.CartItemInput {
	inputs := make([]commands.CartItemInput, 0, len(c.CartItems))
	for _, item := range c.CartItems {
		inputs = append(inputs, commands.CartItemInput{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}
	return inputs
}

func parseParties(customer, merchant string) (kernel.UUID, kernel.UUID, error) {
	customerID, customerErr := kernel.UUIDFromString(customer)
	if customerErr != nil {
		customerErr = errs.NewValueIsInvalidErrorWithCause("customerId", customerErr)
	}
	merchantID, merchantErr := kernel.UUIDFromString(merchant)
	if merchantErr != nil {
		merchantErr = errs.NewValueIsInvalidErrorWithCause("merchantId", merchantErr)
	}
	if err := errors.Join(customerErr, merchantErr); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValidationError(err)
	}
	return customerID, merchantID, nil
}
