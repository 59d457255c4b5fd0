package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var leadingNumberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Amount is a money or quantity value. It decodes from JSON numbers and
// numeric strings; anything unparseable decodes to zero.
type Amount float64

// ParseAmount reads the leading decimal number of raw, ignoring any suffix.
func ParseAmount(raw string) Amount {
	match := leadingNumberPattern.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0
	}
	return Amount(value)
}

func (amount Amount) Float64() float64 {
	return float64(amount)
}

func (amount Amount) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(amount))
}

func (amount *Amount) UnmarshalJSON(data []byte) error {
	*amount = decodeLenientNumber(data)
	return nil
}

func (amount Amount) Value() (driver.Value, error) {
	return float64(amount), nil
}

func (amount *Amount) Scan(value any) error {
	switch typed := value.(type) {
	case nil:
		*amount = 0
	case float64:
		*amount = Amount(typed)
	case int64:
		*amount = Amount(typed)
	case []byte:
		*amount = ParseAmount(string(typed))
	case string:
		*amount = ParseAmount(typed)
	default:
		return fmt.Errorf("unsupported amount column type %T", value)
	}
	return nil
}

// FlexibleInt decodes whole numbers posted either as JSON numbers or as
// strings, truncating fractions.
type FlexibleInt int

func (value *FlexibleInt) UnmarshalJSON(data []byte) error {
	*value = FlexibleInt(int(decodeLenientNumber(data)))
	return nil
}

func (value FlexibleInt) Int() int {
	return int(value)
}

func (value FlexibleInt) Value() (driver.Value, error) {
	return int64(value), nil
}

func (value *FlexibleInt) Scan(raw any) error {
	var amount Amount
	if err := amount.Scan(raw); err != nil {
		return err
	}
	*value = FlexibleInt(int(amount))
	return nil
}

func decodeLenientNumber(data []byte) Amount {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return 0
		}
		return ParseAmount(text)
	}
	return ParseAmount(string(trimmed))
}
