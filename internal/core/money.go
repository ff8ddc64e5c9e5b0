// Package core holds the customer domain: records, money handling and the
// derived dashboard statistics.
//
// This file contains the validated money type. Amounts are stored as integer
// centavos; the wire format stays a plain JSON number in reais to match the
// HTTP contract.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is a non-negative BRL amount with centavo scale.
type Money struct {
	Centavos int64
}

// ParseDecimalToCentavos converts a decimal string to centavos with half-up
// rounding on the third decimal place. Both dot (12.34) and comma (12,34)
// separators are accepted. Zero is legal (a customer may owe nothing); a
// negative or malformed amount returns ErrInvalidAmount. The empty string
// parses to zero, mirroring the client's "debt field left blank" case.
//
// Examples:
//
//	ParseDecimalToCentavos("12.34")  -> 1234, nil
//	ParseDecimalToCentavos("12,34")  -> 1234, nil
//	ParseDecimalToCentavos("12.346") -> 1235, nil (rounds up)
//	ParseDecimalToCentavos("-5")     -> 0, ErrInvalidAmount
func ParseDecimalToCentavos(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only unsigned values allowed; debt is never negative
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; half-up rounding on the third
	var fracCentavos int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCentavos = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCentavos += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCentavos++
			}
		}
	}
	return iv*100 + fracCentavos, nil
}

func (m Money) Validate() error {
	if m.Centavos < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Reais returns the amount as a float64 for display purposes.
// Use centavos for calculations to avoid floating-point precision issues.
func (m Money) Reais() float64 {
	return float64(m.Centavos) / 100.0
}

// String formats the amount as a BRL string, e.g. "R$ 12,34".
func (m Money) String() string {
	c := m.Centavos
	neg := c < 0
	if neg {
		c = -c
	}
	s := strconv.FormatInt(c/100, 10) + "," + pad2(c%100)
	if neg {
		return "-R$ " + s
	}
	return "R$ " + s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// MarshalJSON emits the amount as a JSON number in reais ("5500" or "55.5"),
// matching what the original API put on the wire.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Reais(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts JSON numbers and numeric strings. Several client
// variants send the debt as a string, so both forms parse; negatives fail.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		m.Centavos = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	c, err := ParseDecimalToCentavos(s)
	if err != nil {
		return err
	}
	m.Centavos = c
	return nil
}
