package types

import "strconv"

// Number is an optional numeric field value.
//
// The zero value is an absent field. A present field is either numeric or
// carries the raw text of a non-numeric value (a string, null, a boolean...).
type Number struct {
	present bool
	numeric bool
	value   float64
	raw     string
}

// NumberOf returns a present, numeric value.
func NumberOf(v float64) Number {
	return Number{present: true, numeric: true, value: v}
}

// NonNumeric returns a present value that is not a number.
func NonNumeric(raw string) Number {
	return Number{present: true, raw: raw}
}

// Float returns the numeric value and whether the field holds a number.
func (n Number) Float() (float64, bool) {
	return n.value, n.numeric
}

// Present reports whether the field was present in the source record.
func (n Number) Present() bool {
	return n.present
}

// String renders the value as it appeared in the source.
func (n Number) String() string {
	switch {
	case !n.present:
		return "<absent>"
	case n.numeric:
		return strconv.FormatFloat(n.value, 'f', -1, 64)
	default:
		return n.raw
	}
}

// Text is an optional string field value. The zero value is absent.
type Text struct {
	present bool
	value   string
}

// TextOf returns a text value. An empty string is treated as absent.
func TextOf(s string) Text {
	if s == "" {
		return Text{}
	}
	return Text{present: true, value: s}
}

// Value returns the text and whether it is present.
func (t Text) Value() (string, bool) {
	return t.value, t.present
}

// String returns the text, or "" when absent.
func (t Text) String() string {
	return t.value
}
