package loader

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/compute-sales/internal/types"
)

// cell is a value read from a tabular source. Cells are always text; whether
// they hold a number is decided when the field is converted.
type cell string

// numberFrom converts a decoded field value into a types.Number. Only JSON
// numbers, YAML ints/floats and numeric cells are numeric.
func numberFrom(v any, present bool) types.Number {
	if !present {
		return types.Number{}
	}

	switch x := v.(type) {
	case nil:
		return types.NonNumeric("null")
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return types.NonNumeric(x.String())
		}
		return types.NumberOf(f)
	case float64:
		return types.NumberOf(x)
	case float32:
		return types.NumberOf(float64(x))
	case int:
		return types.NumberOf(float64(x))
	case int64:
		return types.NumberOf(float64(x))
	case uint64:
		return types.NumberOf(float64(x))
	case cell:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return types.NonNumeric(string(x))
		}
		return types.NumberOf(f)
	case string:
		return types.NonNumeric(x)
	case bool:
		return types.NonNumeric(strconv.FormatBool(x))
	default:
		return types.NonNumeric(fmt.Sprint(x))
	}
}

// textFrom converts a decoded field value into a types.Text. Falsy values
// (null, "", false, numeric zero, empty collections) are absent.
func textFrom(v any, present bool) types.Text {
	if !present || isFalsy(v) {
		return types.Text{}
	}
	if s, ok := scalarText(v); ok {
		return types.TextOf(s)
	}
	return types.TextOf(fmt.Sprint(v))
}

// scalarText renders a scalar value as text. It fails for collections.
func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case cell:
		return string(x), true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	}
	return "", false
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case cell:
		return x == ""
	case bool:
		return !x
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case float64:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	case uint64:
		return x == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}
