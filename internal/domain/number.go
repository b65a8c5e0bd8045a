package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// Number is a float64 that also accepts JSON strings. Browser forms send
// "70" as often as 70, and models write "150g" where 150 was asked for;
// the leading numeric part is kept. Unparsable strings decode to zero.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] != '"' {
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = Number(leadingFloat(s))
	return nil
}

// Float64 returns n as a plain float64.
func (n Number) Float64() float64 {
	return float64(n)
}

func leadingFloat(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	end := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || (i == 0 && (r == '-' || r == '+')) {
			end = i + 1
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}
