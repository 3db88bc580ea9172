package action

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gridact/gridact-go/pkg/gridact/models"
)

// NormalizeSortSpec turns a loosely-typed sort payload into a canonical
// SortSpec. It first tries the structured JSON form
// {"column": 1, "ascending": false, "hasHeaders": true}; on parse failure
// it falls back to the "key:value,key:value" string grammar. Unrecognized
// keys are ignored; missing fields keep their defaults (column 0,
// ascending, with headers). Parse failures never surface to the caller.
func NormalizeSortSpec(data string) models.SortSpec {
	spec := models.SortSpec{Column: 0, Ascending: true, HasHeaders: true}
	if data == "" {
		return spec
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return sortSpecFromString(data, spec)
	}

	for key, v := range raw {
		switch strings.ToLower(key) {
		case "column", "columnindex":
			if n, err := asInt(v); err == nil && n >= 0 {
				spec.Column = n
			}
		case "ascending":
			if b, ok := v.(bool); ok {
				spec.Ascending = b
			}
		case "hasheaders":
			if b, ok := v.(bool); ok {
				spec.HasHeaders = b
			}
		}
	}
	return spec
}

// sortSpecFromString parses the semi-structured grammar,
// e.g. "column:2,ascending:false".
func sortSpecFromString(data string, spec models.SortSpec) models.SortSpec {
	for _, pair := range strings.Split(data, ",") {
		key, value, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "column", "columnindex":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				spec.Column = n
			}
		case "ascending":
			if b, err := strconv.ParseBool(value); err == nil {
				spec.Ascending = b
			}
		case "hasheaders":
			if b, err := strconv.ParseBool(value); err == nil {
				spec.HasHeaders = b
			}
		}
	}
	return spec
}

// filterPayload is the JSON shape of a filter payload. Values is loosely
// typed so numeric allowed-values coerce to their string form.
type filterPayload struct {
	Column *int          `json:"column"`
	Values []interface{} `json:"values"`
}

// NormalizeFilterSpec parses and validates a filter payload. Both the
// column and at least one allowed value are required; anything less is an
// ErrInvalidFilterSpec — filter actions have no safe fallback.
func NormalizeFilterSpec(data string) (models.FilterSpec, error) {
	var p filterPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return models.FilterSpec{}, fmt.Errorf("%w: %v", ErrInvalidFilterSpec, err)
	}
	if p.Column == nil || *p.Column < 0 {
		return models.FilterSpec{}, fmt.Errorf("%w: missing column", ErrInvalidFilterSpec)
	}

	values := make([]string, 0, len(p.Values))
	for _, v := range p.Values {
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(t)
		default:
			continue
		}
		if s != "" {
			values = append(values, s)
		}
	}
	if len(values) == 0 {
		return models.FilterSpec{}, fmt.Errorf("%w: no allowed values", ErrInvalidFilterSpec)
	}

	return models.FilterSpec{Column: *p.Column, Values: values}, nil
}
