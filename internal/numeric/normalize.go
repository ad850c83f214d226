// Package numeric coerces the loosely-typed numeric values coming back
// from market-data providers into canonical rounded decimals. Provider
// fields arrive as plain numbers, numeric strings, scientific notation or
// placeholders; every downstream consumer treats a failed coercion as
// "value unavailable" rather than an error.
package numeric

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Places is the canonical precision for normalized values.
const Places = 5

// Normalize coerces v into a float64 rounded to Places decimal places.
// Rounding is half away from zero. The second return value is false when
// the value is unavailable: nil input, a string that does not parse as a
// number, a boolean, or any non-numeric type. Normalize never panics and
// is safe to call from concurrent workers.
func Normalize(v any) (float64, bool) {
	var d decimal.Decimal

	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		d = decimal.NewFromFloat(val)
	case float32:
		d = decimal.NewFromFloat32(val)
	case int:
		d = decimal.NewFromInt(int64(val))
	case int32:
		d = decimal.NewFromInt32(val)
	case int64:
		d = decimal.NewFromInt(val)
	case json.Number:
		parsed, err := decimal.NewFromString(val.String())
		if err != nil {
			return 0, false
		}
		d = parsed
	case string:
		// decimal.NewFromString accepts scientific notation ("1.2e-5").
		parsed, err := decimal.NewFromString(val)
		if err != nil {
			return 0, false
		}
		d = parsed
	default:
		// Booleans land here deliberately: upstream "True"-shaped
		// placeholders are not prices.
		return 0, false
	}

	f, _ := d.Round(Places).Float64()
	return f, true
}

// NormalizePtr is Normalize returning a nil pointer for unavailable
// values, matching the nullable price fields on model.Quote.
func NormalizePtr(v any) *float64 {
	f, ok := Normalize(v)
	if !ok {
		return nil
	}
	return &f
}
