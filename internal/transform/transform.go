// Package transform holds the per-field functions that turn navigated raw
// values into exported Record values. Every function here is pure and total
// over absence: it returns a default or fails on purpose.
package transform

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentic-research/playmap/api"
	"github.com/agentic-research/playmap/internal/extract"
)

// Sentinels for versions whose upstream no longer reports the required
// Android version. Each schema version keeps its own spelling.
const (
	VariesShort = "VARY"
	VariesLong  = "Varies with device"
)

// Const ignores the raw value and always yields v.
func Const(v any) api.Transform {
	return func(any, bool) (any, error) { return v, nil }
}

// OrDefault yields raw when it is truthy, def otherwise.
func OrDefault(def any) api.Transform {
	return func(raw any, ok bool) (any, error) {
		if ok && extract.Truthy(raw) {
			return raw, nil
		}
		return def, nil
	}
}

// IfAbsent yields raw when present, def otherwise.
func IfAbsent(def any) api.Transform {
	return func(raw any, ok bool) (any, error) {
		if ok {
			return raw, nil
		}
		return def, nil
	}
}

// Boolean reports the truthiness of raw; absence is false.
func Boolean(raw any, ok bool) (any, error) {
	return ok && extract.Truthy(raw), nil
}

// PriceText is the display price, "Free" when absent or empty.
var PriceText = OrDefault("Free")

// Price converts integer micros to currency units. Absence, zero and
// non-numeric input all give 0.
func Price(raw any, ok bool) (any, error) {
	if !ok {
		return 0.0, nil
	}
	f, isNum := toFloat(raw)
	if !isNum || math.IsNaN(f) {
		return 0.0, nil
	}
	return f / 1_000_000, nil
}

// Free is true only for an exact numeric zero price. Absence is not free.
func Free(raw any, ok bool) (any, error) {
	if !ok {
		return false, nil
	}
	switch v := raw.(type) {
	case int:
		return v == 0, nil
	case int64:
		return v == 0, nil
	case float64:
		return v == 0, nil
	}
	return false, nil
}

// Scale multiplies a numeric value by factor, keeping integers integral.
// Absent or non-numeric input stays absent.
func Scale(factor int64) api.Transform {
	return func(raw any, ok bool) (any, error) {
		if !ok {
			return nil, nil
		}
		switch v := raw.(type) {
		case int:
			return int64(v) * factor, nil
		case int64:
			return v * factor, nil
		case float64:
			return v * float64(factor), nil
		}
		return nil, nil
	}
}

// DeveloperID returns a transform that takes the segment of a developer URL
// following marker. It fails when the value is missing or carries no marker.
func DeveloperID(marker string) api.Transform {
	return func(raw any, ok bool) (any, error) {
		s, err := requireString(raw, ok)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, marker)
		if len(parts) < 2 {
			return nil, fmt.Errorf("developer url %q has no %q", s, marker)
		}
		return parts[1], nil
	}
}

// ResolveURL resolves a relative link against base. Absent or unparsable
// links degrade to "".
func ResolveURL(base string) api.Transform {
	baseURL, err := url.Parse(base)
	if err != nil {
		panic(fmt.Sprintf("transform: bad base url %q: %v", base, err))
	}
	return func(raw any, ok bool) (any, error) {
		s, isStr := raw.(string)
		if !ok || !isStr {
			return "", nil
		}
		ref, err := url.Parse(s)
		if err != nil {
			return "", nil
		}
		return baseURL.ResolveReference(ref).String(), nil
	}
}

// AndroidVersion keeps the leading numeric token of a version string such as
// "4.1 and up", or VariesShort when that token is not a non-zero number.
func AndroidVersion(raw any, ok bool) (any, error) {
	s, err := requireString(raw, ok)
	if err != nil {
		return nil, err
	}
	token := strings.Split(s, " ")[0]
	if f, ok := leadingFloat(token); ok && f != 0 {
		return token, nil
	}
	return VariesShort, nil
}

// AndroidVersionText renders "<v> and up", or VariesLong when absent.
func AndroidVersionText(raw any, ok bool) (any, error) {
	if !ok || !extract.Truthy(raw) {
		return VariesLong, nil
	}
	return fmt.Sprintf("%v and up", raw), nil
}

var (
	symbolRun = regexp.MustCompile(`[^0-9.,\s]+`)
	numberRun = regexp.MustCompile(`[0-9.,]+`)
)

// Currency isolates the currency symbol of a formatted price like "$2.99"
// or "2,99 €". Absent price strings give an absent currency.
func Currency(raw any, ok bool) (any, error) {
	if !ok {
		return nil, nil
	}
	s, isStr := raw.(string)
	if !isStr {
		return nil, fmt.Errorf("price %v is %T, not a string", raw, raw)
	}
	sym := symbolRun.FindString(s)
	if sym == "" {
		return nil, fmt.Errorf("price %q has no currency symbol", s)
	}
	return sym, nil
}

// PriceFromText parses the amount out of a formatted price string. Only the
// leading decimal of the numeric run counts, so "1,99" reads as 1.
func PriceFromText(raw any, ok bool) (any, error) {
	if !ok {
		return 0.0, nil
	}
	s, isStr := raw.(string)
	if !isStr {
		return nil, fmt.Errorf("price %v is %T, not a string", raw, raw)
	}
	run := numberRun.FindString(s)
	if run == "" {
		return nil, fmt.Errorf("price %q has no amount", s)
	}
	f, _ := leadingFloat(run)
	return f, nil
}

// FreeIfAbsent is true when no price string is present.
func FreeIfAbsent(_ any, ok bool) (any, error) {
	return !ok, nil
}

func requireString(raw any, ok bool) (string, error) {
	if !ok {
		return "", extract.ErrNoValue
	}
	s, isStr := raw.(string)
	if !isStr {
		return "", fmt.Errorf("value %v is %T, not a string", raw, raw)
	}
	return s, nil
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return int64(t), true
	}
	return 0, false
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)

// leadingFloat parses the longest numeric prefix of s.
func leadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	return f, err == nil
}
