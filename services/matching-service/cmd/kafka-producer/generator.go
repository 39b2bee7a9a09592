package main

import (
	"fmt"
	"math/rand/v2"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

type liveOrder struct {
	clientID string
	orderID  string
}

// generator produces a realistic command stream around a base price. Cancels
// and updates only target orders it created earlier.
type generator struct {
	rng         *rand.Rand
	symbol      string
	basePrice   decimal.Decimal
	tickSize    decimal.Decimal
	spreadTicks int64
	clients     []string

	seq  int
	live []liveOrder
}

func newGenerator(seed uint64, symbol string, basePrice, tickSize decimal.Decimal, spreadTicks int64, clients int) *generator {
	g := &generator{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		symbol:      symbol,
		basePrice:   basePrice.Div(tickSize).Round(0).Mul(tickSize),
		tickSize:    tickSize,
		spreadTicks: max(spreadTicks, 1),
	}
	for i := 0; i < max(clients, 1); i++ {
		g.clients = append(g.clients, fmt.Sprintf("client-%02d", i+1))
	}
	return g
}

// sessionOpen returns the commands that take a closed market to Open.
func (g *generator) sessionOpen() []orderbookv1.Action {
	return []orderbookv1.Action{
		orderbookv1.UpdateStatus{Symbol: g.symbol, Status: orderbookv1.MarketStatusPreOpen},
		orderbookv1.UpdateStatus{Symbol: g.symbol, Status: orderbookv1.MarketStatusOpen},
	}
}

func (g *generator) next() orderbookv1.Action {
	if len(g.live) > 0 {
		switch r := g.rng.Float64(); {
		case r < 0.10:
			return g.cancel()
		case r < 0.20:
			return g.update()
		}
	}
	return g.create()
}

func (g *generator) create() orderbookv1.CreateOrder {
	g.seq++
	cmd := orderbookv1.CreateOrder{
		Symbol:   g.symbol,
		ClientID: g.clients[g.rng.IntN(len(g.clients))],
		OrderID:  fmt.Sprintf("o-%06d", g.seq),
		Validity: orderbookv1.ValidityDay,
		Side:     orderbookv1.SideSell,
		Quantity: g.rng.Int64N(100) + 1,
	}
	if g.rng.Float64() < 0.2 {
		cmd.Validity = orderbookv1.ValidityGoodTilCanceled
	}

	buy := g.rng.Float64() < 0.5
	if buy {
		cmd.Side = orderbookv1.SideBuy
	}

	// limit orders rest on their own side of the base price, stops trigger on
	// the far side
	switch r := g.rng.Float64(); {
	case r < 0.65:
		cmd.Price = decimal.NewNullDecimal(g.away(buy))
	case r < 0.80:
	case r < 0.90:
		cmd.TriggerPrice = decimal.NewNullDecimal(g.away(!buy))
	default:
		cmd.TriggerPrice = decimal.NewNullDecimal(g.away(!buy))
		cmd.Price = cmd.TriggerPrice
	}

	g.live = append(g.live, liveOrder{clientID: cmd.ClientID, orderID: cmd.OrderID})
	return cmd
}

func (g *generator) cancel() orderbookv1.CancelOrder {
	i := g.rng.IntN(len(g.live))
	target := g.live[i]
	g.live = append(g.live[:i], g.live[i+1:]...)
	return orderbookv1.CancelOrder{Symbol: g.symbol, ClientID: target.clientID, OrderID: target.orderID}
}

func (g *generator) update() orderbookv1.UpdateOrder {
	target := g.live[g.rng.IntN(len(g.live))]
	qty := g.rng.Int64N(100) + 1
	return orderbookv1.UpdateOrder{Symbol: g.symbol, ClientID: target.clientID, OrderID: target.orderID, Quantity: &qty}
}

// away returns a tick-aligned price below the base for bids and above it for
// asks, never below one tick.
func (g *generator) away(below bool) decimal.Decimal {
	offset := g.tickSize.Mul(decimal.NewFromInt(g.rng.Int64N(g.spreadTicks) + 1))
	if !below {
		return g.basePrice.Add(offset)
	}
	price := g.basePrice.Sub(offset)
	if price.LessThan(g.tickSize) {
		return g.tickSize
	}
	return price
}
