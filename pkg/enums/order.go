package enums

import "fmt"

// DeliveryType maps to the delivery_type enum in Postgres.
type DeliveryType string

const (
	DeliveryTypeDriverDispatch DeliveryType = "driver_dispatch"
	DeliveryTypePickup         DeliveryType = "pickup"
	DeliveryTypeShopCourier    DeliveryType = "shop_courier"
)

var validDeliveryTypes = []DeliveryType{
	DeliveryTypeDriverDispatch,
	DeliveryTypePickup,
	DeliveryTypeShopCourier,
}

// String implements fmt.Stringer.
func (d DeliveryType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryType.
func (d DeliveryType) IsValid() bool {
	for _, candidate := range validDeliveryTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryType converts raw input into a DeliveryType.
func ParseDeliveryType(value string) (DeliveryType, error) {
	for _, candidate := range validDeliveryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery type %q", value)
}

// OrderStatus tracks the coarse lifecycle of an order as seen by dispatch.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusAssigned  OrderStatus = "assigned"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusAssigned,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}
