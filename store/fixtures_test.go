package store_test

import (
	"net/netip"
	"time"

	"github.com/google/uuid"

	"rowcodec/record"
	"rowcodec/value"
)

// Product is an item available for sale. Prices are kept in cents.
type Product struct {
	ID          int64       `row:"rename=id"`
	SKU         string      `row:"rename=sku"`
	Name        string      `row:"rename=name"`
	Description *string     `row:"rename=description"`
	PriceCents  int64       `row:"rename=price_cents"`
	Inventory   uint16      `row:"rename=inventory_count"`
	Status      OrderStatus `row:"rename=status"`
	Tags        []string    `row:"rename=tags"`
	CreatedAt   time.Time   `row:"rename=created_at"`
}

// Order carries the less common column types.
type Order struct {
	ID       uuid.UUID         `row:"rename=id"`
	Customer int64             `row:"rename=customer_id"`
	PlacedOn value.Date        `row:"rename=placed_on"`
	Window   time.Duration     `row:"rename=delivery_window"`
	Origin   netip.Addr        `row:"rename=origin"`
	Attrs    map[string]string `row:"rename=attrs"`
	Paid     bool              `row:"rename=paid"`
	Weight   float64           `row:"rename=weight"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var (
	products = record.Must[Product]()
	orders   = record.Must[Order]()
)

func ptr[T any](v T) *T { return &v }

func sampleProducts() []Product {
	created := time.Date(2024, time.March, 1, 12, 30, 0, 250000000, time.UTC)

	return []Product{
		{
			ID: 1, SKU: "TEA-001", Name: "Green tea", Description: ptr("loose leaf"),
			PriceCents: 450, Inventory: 12, Status: StatusPaid,
			Tags: []string{"tea", "organic"}, CreatedAt: created,
		},
		{
			ID: 2, SKU: "MUG-002", Name: "Mug",
			PriceCents: 1200, Inventory: 0, Status: StatusPending,
			Tags: []string{}, CreatedAt: created.Add(time.Hour),
		},
	}
}
