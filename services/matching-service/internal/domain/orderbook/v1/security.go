package orderbookv1

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Security is the static configuration of the traded instrument.
type Security struct {
	Symbol   string          `json:"symbol" env:"SYMBOL,required"`
	Kind     string          `json:"kind" env:"KIND" envDefault:"equity"`
	TickSize decimal.Decimal `json:"tickSize" env:"TICK_SIZE" envDefault:"1"`
	// ProtectionTicks bounds synthetic market pricing. Zero means unset.
	ProtectionTicks int64 `json:"protectionTicks" env:"PROTECTION_TICKS" envDefault:"0"`
}

// Validate checks the descriptor is usable by a book.
func (s Security) Validate() error {
	if s.Symbol == "" {
		return fmt.Errorf("security symbol cannot be empty")
	}
	if !s.TickSize.IsPositive() {
		return fmt.Errorf("tick size must be positive, got %s", s.TickSize)
	}
	if s.ProtectionTicks < 0 {
		return fmt.Errorf("protection ticks cannot be negative, got %d", s.ProtectionTicks)
	}
	return nil
}

// HasProtection reports whether market orders are bounded by protection ticks.
func (s Security) HasProtection() bool {
	return s.ProtectionTicks > 0
}

// ProtectionDistance returns protection ticks expressed as a price distance.
func (s Security) ProtectionDistance() decimal.Decimal {
	return s.TickSize.Mul(decimal.NewFromInt(s.ProtectionTicks))
}

// OnTick reports whether price is positive and an exact multiple of the tick size.
func (s Security) OnTick(price decimal.Decimal) bool {
	return price.IsPositive() && price.Mod(s.TickSize).IsZero()
}
