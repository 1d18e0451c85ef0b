// Package kernel holds the value objects shared by the order and cart aggregates:
// identifiers, money, quantities, postal addresses and the identity/audit part
// embedded by every entity.
//
// All values are immutable. Their zero values are invalid and fail Validate;
// build them through the New* constructors or, for identifiers, the UUIDFrom* parsers.
package kernel
