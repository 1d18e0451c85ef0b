package contract

import (
	"strings"
	"testing"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	customerID = "0b9a4f1e-7c2d-4d5e-9f10-2a3b4c5d6e7f"
	merchantID = "5f6e7d8c-9b0a-4c1d-8e2f-3a4b5c6d7e8f"
)

func validBody() string {
	return `{
		"orderName": "AB123",
		"customerId": "` + customerID + `",
		"merchantId": "` + merchantID + `",
		"cart": {"cartItems": [{"name": "Coffee", "quantity": 2, "price": 3.50}]},
		"requestId": "req-1"
	}`
}

func TestDecodeCreateOrderRequest(t *testing.T) {
	req, err := DecodeCreateOrderRequest([]byte(validBody()))
	require.NoError(t, err)

	cmd, err := req.ToCommand(NewValidator(), "message-1")
	require.NoError(t, err)

	assert.Equal(t, "AB123", cmd.OrderName())
	assert.Equal(t, customerID, cmd.CustomerID().String())
	assert.Equal(t, merchantID, cmd.MerchantID().String())
	assert.Equal(t, "req-1", cmd.RequestKey())
	require.Len(t, cmd.CartItems(), 1)
	assert.Equal(t, "3.5", cmd.CartItems()[0].Price.String())
}

func TestDecodeCreateOrderRequest_Malformed(t *testing.T) {
	for _, body := range []string{"", "not json", `["array"]`, `{"orderName": 5}`} {
		_, err := DecodeCreateOrderRequest([]byte(body))
		require.ErrorIs(t, err, ErrMalformedBody, body)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	}
}

func TestCreateOrderRequest_FallbackRequestKey(t *testing.T) {
	req, err := DecodeCreateOrderRequest([]byte(validBody()))
	require.NoError(t, err)
	req.RequestID = "  "

	cmd, err := req.ToCommand(NewValidator(), "message-1")
	require.NoError(t, err)
	assert.Equal(t, "message-1", cmd.RequestKey())
}

func TestCreateOrderRequest_ValidationDetails(t *testing.T) {
	req := CreateOrderRequest{
		CustomerID: "not-a-uuid",
		MerchantID: merchantID,
		Cart:       Cart{CartItems: []CartItem{{Quantity: 1}}},
	}

	_, err := req.ToCommand(NewValidator(), "")
	require.Error(t, err)

	var coded *errs.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errs.CodeValidation, coded.Code)
	assert.ElementsMatch(t, []errs.Detail{
		{Field: "orderName", Message: "is required"},
		{Field: "customerId", Message: "must be a UUID"},
		{Field: "cart.cartItems[0].name", Message: "is required"},
	}, coded.Details)
}

func TestCreateOrderRequest_ColumnBounds(t *testing.T) {
	req := CreateOrderRequest{
		OrderName:  "AB123",
		CustomerID: customerID,
		MerchantID: merchantID,
		Cart: Cart{CartItems: []CartItem{{
			Name:     strings.Repeat("n", 256),
			Quantity: 2147483648,
		}}},
		RequestID: strings.Repeat("r", 256),
	}

	_, err := req.ToCommand(NewValidator(), "")

	var coded *errs.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errs.KindValidation, coded.Kind)
	assert.ElementsMatch(t, []errs.Detail{
		{Field: "cart.cartItems[0].name", Message: "must be at most 255 characters long"},
		{Field: "cart.cartItems[0].quantity", Message: "must be at most 2147483647"},
		{Field: "requestId", Message: "must be at most 255 characters long"},
	}, coded.Details)
}

func TestCreateOrderRequest_LongFallbackRequestKey(t *testing.T) {
	req, err := DecodeCreateOrderRequest([]byte(validBody()))
	require.NoError(t, err)
	req.RequestID = ""

	_, err = req.ToCommand(NewValidator(), strings.Repeat("m", 256))

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestCreateOrderRequest_EmptyCart(t *testing.T) {
	req := CreateOrderRequest{OrderName: "AB123", CustomerID: customerID, MerchantID: merchantID}

	_, err := req.ToCommand(NewValidator(), "")

	var coded *errs.Error
	require.ErrorAs(t, err, &coded)
	require.Len(t, coded.Details, 1)
	assert.Equal(t, "cart.cartItems", coded.Details[0].Field)
}

func TestUpdateOrderRequest_RouteMismatch(t *testing.T) {
	req := UpdateOrderRequest{
		ID:         kernel.NewUUID().String(),
		OrderName:  "AB123",
		CustomerID: customerID,
		MerchantID: merchantID,
		Cart:       Cart{CartItems: []CartItem{{Name: "Tea", Quantity: 1}}},
	}

	_, err := req.ToCommand(NewValidator(), kernel.NewUUID())

	var coded *errs.Error
	require.ErrorAs(t, err, &coded)
	require.NotEmpty(t, coded.Details)
	assert.Equal(t, "id", coded.Details[0].Field)
}

func TestAddItemRequest(t *testing.T) {
	orderID := kernel.NewUUID()
	productID := kernel.NewUUID()

	cmd, err := AddItemRequest{ProductID: productID.String(), Quantity: 2, Currency: "eur"}.
		ToCommand(NewValidator(), orderID)
	require.NoError(t, err)
	assert.True(t, cmd.ProductID().IsEqual(productID))
	assert.Equal(t, "EUR", cmd.Currency())

	_, err = AddItemRequest{ProductID: "x"}.ToCommand(NewValidator(), orderID)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestShippingAddressRequest(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := ShippingAddressRequest{
		Street: "1 Main St", City: "Springfield", State: "IL", PostalCode: "62701", Country: "US",
	}.ToCommand(orderID)
	require.NoError(t, err)
	assert.Equal(t, "Springfield", cmd.Address().City())

	_, err = ShippingAddressRequest{Street: "1 Main St"}.ToCommand(orderID)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}
