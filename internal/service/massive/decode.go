package massive

import (
	"encoding/json"
	"strconv"
)

// optFloat decodes an optional numeric field. A missing, null, or
// non-numeric value leaves v nil rather than failing the whole response:
// one malformed field must only void its own metric downstream.
type optFloat struct {
	v *float64
}

func (o *optFloat) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		o.v = &f
		return nil
	}

	// Some providers quote numbers.
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			o.v = &f
		}
	}
	return nil
}

// valueField is the {"value": N, "unit": ..., "label": ...} wrapper the
// financials endpoint uses for every figure.
type valueField struct {
	Value optFloat `json:"value"`
}
