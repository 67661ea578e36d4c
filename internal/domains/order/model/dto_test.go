package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func validItems() []OrderItemRequest {
	return []OrderItemRequest{{ProductID: 1, Quantity: 2}}
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	cases := []struct {
		name    string
		req     CreateOrderRequest
		wantErr bool
	}{
		{
			name:    "pickup needs nothing extra",
			req:     CreateOrderRequest{Items: validItems(), DeliveryOption: DeliveryPickup},
			wantErr: false,
		},
		{
			name:    "on-site with table number",
			req:     CreateOrderRequest{Items: validItems(), DeliveryOption: DeliveryOnSite, TableNumber: intPtr(7)},
			wantErr: false,
		},
		{
			name:    "on-site without table number",
			req:     CreateOrderRequest{Items: validItems(), DeliveryOption: DeliveryOnSite},
			wantErr: true,
		},
		{
			name: "delivery with full address",
			req: CreateOrderRequest{
				Items:          validItems(),
				DeliveryOption: DeliveryDelivery,
				DeliveryAddress: &DeliveryAddress{
					Street: "ul. Prosta 1", City: "Warszawa", PostalCode: "00-850",
				},
			},
			wantErr: false,
		},
		{
			name:    "delivery without address",
			req:     CreateOrderRequest{Items: validItems(), DeliveryOption: DeliveryDelivery},
			wantErr: true,
		},
		{
			name: "delivery with incomplete address",
			req: CreateOrderRequest{
				Items:           validItems(),
				DeliveryOption:  DeliveryDelivery,
				DeliveryAddress: &DeliveryAddress{Street: "ul. Prosta 1"},
			},
			wantErr: true,
		},
		{
			name:    "unknown delivery option",
			req:     CreateOrderRequest{Items: validItems(), DeliveryOption: "teleport"},
			wantErr: true,
		},
		{
			name:    "empty items",
			req:     CreateOrderRequest{Items: nil, DeliveryOption: DeliveryPickup},
			wantErr: true,
		},
		{
			name: "zero quantity",
			req: CreateOrderRequest{
				Items:          []OrderItemRequest{{ProductID: 1, Quantity: 0}},
				DeliveryOption: DeliveryPickup,
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
