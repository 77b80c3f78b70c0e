package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xypherlux/storefront-backend/pkg/config"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
)

// Pricer computes cart totals from line items. Rates are fixed at construction
// so a cart is always priced consistently within one request.
type Pricer struct {
	flatShipping decimal.Decimal
	taxRate      decimal.Decimal
}

// NewPricer parses the configured flat shipping amount and tax rate.
func NewPricer(cfg config.PricingConfig) (*Pricer, error) {
	shipping, err := decimal.NewFromString(cfg.FlatShipping)
	if err != nil {
		return nil, fmt.Errorf("parsing flat shipping %q: %w", cfg.FlatShipping, err)
	}
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("parsing tax rate %q: %w", cfg.TaxRate, err)
	}
	if shipping.IsNegative() || rate.IsNegative() {
		return nil, fmt.Errorf("shipping and tax rate must be non-negative")
	}
	return &Pricer{flatShipping: shipping, taxRate: rate}, nil
}

// Totals is the computed money breakdown for a cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping_cost"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Subtotal sums unit price times quantity across lines. Lines whose product
// failed to preload contribute nothing.
func Subtotal(items []models.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		sum = sum.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Shipping returns the flat rate for non-empty carts and zero otherwise.
func (p *Pricer) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsPositive() {
		return p.flatShipping
	}
	return decimal.Zero
}

// Tax applies the configured rate to the subtotal, rounded half-up to cents.
func (p *Pricer) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.taxRate).Round(2)
}

// Compute derives the full totals breakdown for the provided lines.
func (p *Pricer) Compute(items []models.CartItem) Totals {
	subtotal := Subtotal(items)
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
