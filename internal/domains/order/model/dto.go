package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Validate checks a single item line
func (r OrderItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(50)),
	)
}

// DeliveryAddress is the destination for delivery orders
type DeliveryAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Validate checks the address fields
func (a DeliveryAddress) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Street, validation.Required, validation.Length(1, 200)),
		validation.Field(&a.City, validation.Required, validation.Length(1, 100)),
		validation.Field(&a.PostalCode, validation.Required, validation.Length(3, 12)),
	)
}

// CreateOrderRequest captures a new kiosk order
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	DeliveryOption  string             `json:"delivery_option"`
	TableNumber     *int               `json:"table_number"`
	DeliveryAddress *DeliveryAddress   `json:"delivery_address"`
}

// Validate checks the request, including the delivery-option rules:
// on-site orders need a table number and delivery orders an address.
func (r CreateOrderRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.DeliveryOption, validation.Required,
			validation.In(DeliveryOnSite, DeliveryDelivery, DeliveryPickup)),
	)
	if err != nil {
		return err
	}

	for _, item := range r.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	switch r.DeliveryOption {
	case DeliveryOnSite:
		if r.TableNumber == nil || *r.TableNumber < 1 {
			return validation.Errors{
				"table_number": validation.NewError("validation_required", "table number is required for on-site orders"),
			}
		}
	case DeliveryDelivery:
		if r.DeliveryAddress == nil {
			return validation.Errors{
				"delivery_address": validation.NewError("validation_required", "delivery address is required for delivery orders"),
			}
		}
		if err := r.DeliveryAddress.Validate(); err != nil {
			return err
		}
	}

	return nil
}
