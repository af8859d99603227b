package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errNotNumeric = errors.New("not a number")

// ParseNumber parses a numeric string such as "5" or " 2.5 ". Non-finite values are rejected.
func ParseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%q: %w", s, errNotNumeric)
	}
	return n, nil
}

// lenientNumber decodes a JSON number or a numeric string. null and "" decode to zero.
type lenientNumber float64

func (n *lenientNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*n = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*n = 0
			return nil
		}
		f, err := ParseNumber(s)
		if err != nil {
			return err
		}
		*n = lenientNumber(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = lenientNumber(f)
	return nil
}

// lenientString decodes a JSON string, or a JSON number kept as its literal text
type lenientString string

func (s *lenientString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = lenientString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = lenientString(num.String())
	return nil
}
