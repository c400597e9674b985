package rates

import (
	"fmt"
	"math"
	"strconv"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/feed"
)

// Source identifies which upstream endpoint a symbol is served from.
type Source int

const (
	SourceSpot Source = iota
	SourceFutures
)

// Instrument maps a required upstream symbol to its key in the bundle.
type Instrument struct {
	Key    string
	Symbol string
	Source Source
}

// Instruments is the fixed set of tracked instruments. A bundle is only
// complete when every one of them was found in the upstream responses.
var Instruments = []Instrument{
	{Key: "gold", Symbol: "GOLD", Source: SourceFutures},
	{Key: "silver", Symbol: "SILVER", Source: SourceFutures},
	{Key: "spot_gold", Symbol: "SPOTGold", Source: SourceSpot},
	{Key: "spot_silver", Symbol: "SPOTSilver", Source: SourceSpot},
	{Key: "usd_inr", Symbol: "USDINR", Source: SourceSpot},
}

// Quote holds the parsed numeric fields of one instrument.
type Quote struct {
	Buy    float64 `json:"buy"`
	Sell   float64 `json:"sell"`
	Change float64 `json:"chg"`
	Rate   float64 `json:"rate"`
}

// Bundle is a full snapshot of derived market rates, keyed by instrument.
type Bundle map[string]Quote

// MissingSymbolError is returned when a required symbol is absent from the
// upstream response. No partial bundle is ever produced.
type MissingSymbolError struct {
	Symbol string
}

func (e *MissingSymbolError) Error() string {
	return fmt.Sprintf("required symbol %q missing from feed response", e.Symbol)
}

// Extract builds a Bundle from the two upstream responses. Malformed
// numeric strings become NaN rather than failing the extraction; that
// matches the data quality of the upstream and is deliberate.
func Extract(spot, futures []feed.RawTicker) (Bundle, error) {
	bundle := make(Bundle, len(Instruments))
	for _, inst := range Instruments {
		records := spot
		if inst.Source == SourceFutures {
			records = futures
		}
		ticker, ok := findTicker(records, inst.Symbol)
		if !ok {
			return nil, &MissingSymbolError{Symbol: inst.Symbol}
		}
		bundle[inst.Key] = Quote{
			Buy:    parseField(ticker.Buy),
			Sell:   parseField(ticker.Sell),
			Change: parseField(ticker.Change),
			Rate:   parseField(ticker.Rate),
		}
	}
	return bundle, nil
}

// findTicker returns the first record whose symbol matches.
func findTicker(records []feed.RawTicker, symbol string) (feed.RawTicker, bool) {
	for _, r := range records {
		if r.Symbol == symbol {
			return r, true
		}
	}
	return feed.RawTicker{}, false
}

func parseField(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Equal reports whether two bundles are structurally identical. NaN is
// never equal to NaN, so a bundle containing NaN always registers as a
// change and gets written through.
func (b Bundle) Equal(other Bundle) bool {
	if len(b) != len(other) {
		return false
	}
	for key, q := range b {
		oq, ok := other[key]
		if !ok || q != oq {
			return false
		}
	}
	return true
}
