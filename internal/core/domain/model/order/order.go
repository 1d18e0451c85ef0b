package order

import (
	"errors"
	"slices"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a customer's purchase from a merchant.
//
// Invariants:
//   - the name, customer, merchant and cart references are always valid
//   - totalAmount equals the sum of item totals and all items share one currency
//   - an item appears at most once per product
//   - paidAt, shippedAt and cancelledAt are set once, by their transition
type Order struct {
	kernel.Entity

	name            Name
	customerID      kernel.UUID
	merchantID      kernel.UUID
	cartID          kernel.UUID
	shippingAddress *kernel.Address
	status          Status
	items           []*OrderItem
	totalAmount     kernel.Money

	paidAt      *time.Time
	shippedAt   *time.Time
	cancelledAt *time.Time

	// requestKey is the caller supplied idempotency key, empty when none was given.
	requestKey string
	// version is the optimistic locking counter of the stored row, 0 until first persisted.
	version int

	isConstructed bool
}

// NewOrder creates a Pending order without items.
//
//	o, err := order.NewOrder(kernel.NewUUID(), name, customerID, merchantID, cartID, "")
func NewOrder(
	id kernel.UUID,
	name Name,
	customerID kernel.UUID,
	merchantID kernel.UUID,
	cartID kernel.UUID,
	requestKey string,
) (*Order, error) {
	entity, err := kernel.NewEntity(id, now())
	if err != nil {
		return nil, err
	}

	o := &Order{
		Entity:        entity,
		status:        Pending,
		items:         make([]*OrderItem, 0),
		totalAmount:   kernel.ZeroMoney(kernel.DefaultCurrency),
		requestKey:    requestKey,
		isConstructed: true,
	}

	if err = errors.Join(
		o.setName(name),
		o.setCustomerID(customerID),
		o.setMerchantID(merchantID),
		o.setCartID(cartID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the stored form of an order, used to rebuild it with RestoreOrder.
type Snapshot struct {
	ID              kernel.UUID
	Name            string
	CustomerID      kernel.UUID
	MerchantID      kernel.UUID
	CartID          kernel.UUID
	ShippingAddress *kernel.Address
	Status          Status
	Items           []ItemSnapshot
	CreatedAt       time.Time
	PaidAt          *time.Time
	ShippedAt       *time.Time
	CancelledAt     *time.Time
	RequestKey      string
	Version         int
}

// ItemSnapshot is the stored form of an order item.
type ItemSnapshot struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Currency  string
}

// RestoreOrder rebuilds an order from storage. The total is recomputed, never trusted.
func RestoreOrder(s Snapshot) (*Order, error) {
	entity, err := kernel.NewEntity(s.ID, s.CreatedAt)
	if err != nil {
		return nil, err
	}

	name, err := NewName(s.Name)
	if err != nil {
		return nil, err
	}

	if err = s.Status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		Entity:          entity,
		status:          s.Status,
		items:           make([]*OrderItem, 0, len(s.Items)),
		shippingAddress: s.ShippingAddress,
		paidAt:          utcPtr(s.PaidAt),
		shippedAt:       utcPtr(s.ShippedAt),
		cancelledAt:     utcPtr(s.CancelledAt),
		requestKey:      s.RequestKey,
		version:         s.Version,
		isConstructed:   true,
	}

	if err = errors.Join(
		o.setName(name),
		o.setCustomerID(s.CustomerID),
		o.setMerchantID(s.MerchantID),
		o.setCartID(s.CartID),
	); err != nil {
		return nil, err
	}

	for _, is := range s.Items {
		item, itemErr := restoreItem(is)
		if itemErr != nil {
			return nil, itemErr
		}
		o.items = append(o.items, item)
	}

	if err = o.recalculateTotal(); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.ID().IsEqual(other.ID())
}

func (o *Order) Name() Name {
	return o.name
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) MerchantID() kernel.UUID {
	return o.merchantID
}

func (o *Order) CartID() kernel.UUID {
	return o.cartID
}

// ShippingAddress returns nil until SetShippingAddress is called.
func (o *Order) ShippingAddress() *kernel.Address {
	return o.shippingAddress
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the item list in insertion order.
func (o *Order) Items() []*OrderItem {
	return slices.Clone(o.items)
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

func (o *Order) RequestKey() string {
	return o.requestKey
}

func (o *Order) Version() int {
	return o.version
}

// SetVersion records the version of the stored row after a successful write.
func (o *Order) SetVersion(version int) {
	o.version = version
}

// AddItem adds a product line or merges the quantity into an existing line for the
// same product. A merge keeps the existing unit price and raises no event.
// A blank currency means kernel.DefaultCurrency.
func (o *Order) AddItem(productID kernel.UUID, quantity int, price decimal.Decimal, currency string) ([]DomainEvent, error) {
	if err := o.status.ValidateModifiable(); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, ErrInvalidItemPrice.WithMessagef("item price must be greater than zero, got %s", price.String())
	}
	if !kernel.FitsAmount(price) {
		return nil, ErrInvalidItemPrice.WithMessagef(
			"item price must have at most %d decimal places and 15 integer digits, got %s", kernel.MaxScale, price.String())
	}
	if quantity <= 0 || quantity > kernel.MaxQuantity {
		return nil, ErrInvalidItemQuantity.WithMessagef(
			"item quantity must be between 1 and %d, got %d", kernel.MaxQuantity, quantity)
	}
	pid, err := NewProductID(productID)
	if err != nil {
		return nil, err
	}

	if currency == "" {
		currency = kernel.DefaultCurrency
	}
	unitPrice, err := kernel.NewMoney(price, currency)
	if err != nil {
		return nil, err
	}
	if len(o.items) > 0 && o.totalAmount.Currency() != unitPrice.Currency() {
		return nil, kernel.ErrCurrencyMismatch.WithMessagef(
			"order is priced in %s, item in %s", o.totalAmount.Currency(), unitPrice.Currency())
	}

	if idx := o.itemIndex(pid); idx >= 0 {
		existing := o.items[idx]
		merged, increaseErr := existing.quantity.Increase(quantity)
		if increaseErr != nil {
			return nil, increaseErr
		}
		items := slices.Clone(o.items)
		items[idx] = &OrderItem{productID: existing.productID, quantity: merged, unitPrice: existing.unitPrice}
		return nil, o.replaceItems(items)
	}

	qty, err := kernel.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}
	item, err := NewOrderItem(pid, qty, unitPrice)
	if err != nil {
		return nil, err
	}

	if err = o.replaceItems(append(slices.Clone(o.items), item)); err != nil {
		return nil, err
	}

	return []DomainEvent{OrderItemAdded{
		OrderID:    o.ID(),
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice.Amount(),
		Currency:   unitPrice.Currency(),
		OccurredOn: now(),
	}}, nil
}

// RemoveItem drops the line for productID.
func (o *Order) RemoveItem(productID kernel.UUID) ([]DomainEvent, error) {
	if err := o.status.ValidateModifiable(); err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(o.items, func(i *OrderItem) bool {
		return i.productID.UUID().IsEqual(productID)
	})
	if idx < 0 {
		return nil, ErrOrderItemNotFound.WithMessagef("order has no item for product %s", productID)
	}

	o.items = slices.Delete(o.items, idx, idx+1)
	if err := o.recalculateTotal(); err != nil {
		return nil, err
	}

	return []DomainEvent{OrderItemRemoved{
		OrderID:    o.ID(),
		ProductID:  productID,
		OccurredOn: now(),
	}}, nil
}

// MarkAsPaid moves a non-empty Pending order to Paid.
func (o *Order) MarkAsPaid() ([]DomainEvent, error) {
	next, err := o.status.Pay()
	if err != nil {
		return nil, err
	}
	if len(o.items) == 0 {
		return nil, ErrCannotPayOrder
	}

	at := now()
	o.status = next
	o.paidAt = &at

	return []DomainEvent{OrderPaid{
		OrderID:     o.ID(),
		TotalAmount: o.totalAmount.Amount(),
		Currency:    o.totalAmount.Currency(),
		OccurredOn:  at,
	}}, nil
}

// Ship moves a non-empty Paid order to Shipped.
func (o *Order) Ship() ([]DomainEvent, error) {
	next, err := o.status.Ship()
	if err != nil {
		return nil, err
	}
	if len(o.items) == 0 {
		return nil, ErrEmptyOrderShipping
	}

	at := now()
	o.status = next
	o.shippedAt = &at

	return []DomainEvent{OrderShipped{OrderID: o.ID(), OccurredOn: at}}, nil
}

// Cancel moves the order to Cancelled from any other state, Paid and Shipped included.
func (o *Order) Cancel() ([]DomainEvent, error) {
	previous := o.status
	next, err := o.status.Cancel()
	if err != nil {
		return nil, err
	}

	at := now()
	o.status = next
	o.cancelledAt = &at

	return []DomainEvent{OrderCancelled{
		OrderID:        o.ID(),
		PreviousStatus: previous.String(),
		OccurredOn:     at,
	}}, nil
}

// Delete marks the order as administratively removed.
func (o *Order) Delete() ([]DomainEvent, error) {
	next, err := o.status.Delete()
	if err != nil {
		return nil, err
	}
	o.status = next

	return []DomainEvent{OrderDeleted{OrderID: o.ID(), OccurredOn: now()}}, nil
}

// SetShippingAddress replaces the destination. It is allowed in every state.
func (o *Order) SetShippingAddress(address *kernel.Address) error {
	if address == nil {
		return ErrNullAddress
	}
	if err := address.Validate(); err != nil {
		return err
	}

	addr := *address
	o.shippingAddress = &addr
	return nil
}

// UpdateDetails changes the descriptive references of a Pending order.
func (o *Order) UpdateDetails(name Name, customerID, merchantID kernel.UUID) error {
	if err := o.status.ValidateModifiable(); err != nil {
		return err
	}

	updated := *o
	if err := errors.Join(
		updated.setName(name),
		updated.setCustomerID(customerID),
		updated.setMerchantID(merchantID),
	); err != nil {
		return err
	}

	o.name, o.customerID, o.merchantID = updated.name, updated.customerID, updated.merchantID
	return nil
}

func (o *Order) itemIndex(productID ProductID) int {
	return slices.IndexFunc(o.items, func(i *OrderItem) bool {
		return i.productID.Equal(productID)
	})
}

func (o *Order) recalculateTotal() error {
	return o.replaceItems(o.items)
}

// replaceItems installs items only when their total is representable.
func (o *Order) replaceItems(items []*OrderItem) error {
	currency := kernel.DefaultCurrency
	if len(items) > 0 {
		currency = items[0].unitPrice.Currency()
	}

	total := kernel.ZeroMoney(currency)
	for _, item := range items {
		sum, err := total.Add(item.TotalPrice())
		if err != nil {
			return err
		}
		total = sum
	}

	o.items = items
	o.totalAmount = total
	return nil
}

func (o *Order) setName(name Name) error {
	if err := name.Validate(); err != nil {
		return err
	}
	o.name = name
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if id.IsNil() {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = id
	return nil
}

func (o *Order) setMerchantID(id kernel.UUID) error {
	if id.IsNil() {
		return errs.NewValueIsRequiredError("merchantId")
	}
	o.merchantID = id
	return nil
}

func (o *Order) setCartID(id kernel.UUID) error {
	if id.IsNil() {
		return errs.NewValueIsRequiredError("cartId")
	}
	o.cartID = id
	return nil
}

func restoreItem(s ItemSnapshot) (*OrderItem, error) {
	pid, err := NewProductID(s.ProductID)
	if err != nil {
		return nil, err
	}
	qty, err := kernel.NewQuantity(s.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(s.UnitPrice, s.Currency)
	if err != nil {
		return nil, err
	}
	return NewOrderItem(pid, qty, price)
}

func now() time.Time {
	return time.Now().UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
