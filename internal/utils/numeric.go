// Package utils provides small shared helpers.
package utils

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoerceFloat converts an arbitrary decoded JSON value to a float64,
// treating anything non-numeric as 0. This is the explicit
// parse-with-default step at the ingestion boundary: the valuation
// arithmetic never sees a non-numeric value and never fails on one.
func CoerceFloat(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		// Tolerate spreadsheet-style formatting: whitespace, thousands
		// separators, currency prefix.
		s := strings.TrimSpace(n)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimPrefix(s, "$")
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
