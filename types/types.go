package types

import "time"

// Side is the direction of a position.
type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

// OrderType is the order kind the host should use for an action.
type OrderType string

const (
	Limit  OrderType = "limit"
	Market OrderType = "market"
)

// TimeInForce controls how long a resting order stays on the book.
type TimeInForce string

const (
	GTC TimeInForce = "gtc"
	FOK TimeInForce = "fok"
	IOC TimeInForce = "ioc"
	PO  TimeInForce = "po"
)

// Candle is one OHLCV sample for a fixed interval.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Metadata accompanies every frame handed to the strategy.
type Metadata struct {
	Pair      string
	Timeframe string
}

// PairTimeframe names an additional data series a strategy wants the host
// to download alongside the traded pair.
type PairTimeframe struct {
	Pair      string
	Timeframe string
}

// Trade is an open position owned by the host. Strategies only read it.
type Trade struct {
	Pair            string
	Side            Side
	OpenTime        time.Time
	OpenRate        float64
	Leverage        float64
	EntryTag        string
	StopLoss        float64 // current stop price
	InitialStopLoss float64 // stop price set at entry
}

// IsShort reports whether the trade is a short position.
func (t *Trade) IsShort() bool { return t != nil && t.Side == Short }
