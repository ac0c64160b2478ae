package telemetry

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number coerces an arbitrary decoded-JSON value to a finite float64.
// Native numbers and numeric strings are accepted; NaN, infinities and
// every other type report absent. The feed mixes bare numbers and quoted
// numbers element by element, so this is the single entry point for all
// coordinate parsing.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		// ParseFloat accepts "Inf", "Infinity" and "NaN"; those are
		// absent for our purposes, so the finite check still applies.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
