package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"time"
)

// kindRank orders values of different kinds against each other.
type kindRank int

const (
	rankBool kindRank = iota
	rankNumber
	rankTime
	rankString
	rankOther
)

var timeType = reflect.TypeOf(time.Time{})

// Compare orders two defined values by the natural order of their runtime
// type. It returns -1, 0 or +1. Integers, unsigned integers and floats
// compare numerically with each other; strings bytewise; false before true;
// time.Time chronologically. Values of different kinds order by kind
// (bool, number, time, string, other). Anything else compares by its
// fmt representation.
func Compare(a, b any) int {
	va, vb := indirect(reflect.ValueOf(a)), indirect(reflect.ValueOf(b))
	ra, rb := rankOf(va), rankOf(vb)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankBool:
		return compareBool(va.Bool(), vb.Bool())
	case rankNumber:
		return compareNumber(va, vb)
	case rankTime:
		return va.Interface().(time.Time).Compare(vb.Interface().(time.Time))
	case rankString:
		return cmp.Compare(va.String(), vb.String())
	default:
		return cmp.Compare(sprint(va), sprint(vb))
	}
}

func sprint(v reflect.Value) string {
	if !v.IsValid() || !v.CanInterface() {
		return ""
	}
	return fmt.Sprint(v.Interface())
}

// isMissing reports whether v counts as an absent value for sorting:
// nil, a nil pointer or interface, or a zero time.Time.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	if rv.Type() == timeType {
		return rv.Interface().(time.Time).IsZero()
	}
	return false
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

func rankOf(v reflect.Value) kindRank {
	if !v.IsValid() {
		return rankOther
	}
	if v.Type() == timeType {
		return rankTime
	}
	switch v.Kind() {
	case reflect.Bool:
		return rankBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rankNumber
	case reflect.String:
		return rankString
	default:
		return rankOther
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// compareNumber compares two numeric values without losing precision when
// both are integers of the same signedness.
func compareNumber(a, b reflect.Value) int {
	switch {
	case a.CanInt() && b.CanInt():
		return cmp.Compare(a.Int(), b.Int())
	case a.CanUint() && b.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())
	default:
		return cmp.Compare(toFloat(a), toFloat(b))
	}
}

func toFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	default:
		return v.Float()
	}
}
