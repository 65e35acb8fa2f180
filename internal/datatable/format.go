package datatable

import (
	"fmt"
	"strconv"
	"time"
)

// FormatValue renders a raw field value as cell text.
func FormatValue(v any) string {
	if isMissing(v) {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04")
	case fmt.Stringer:
		return val.String()
	case bool:
		if val {
			return "Sí"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case *string:
		return *val
	case *int:
		return strconv.Itoa(*val)
	default:
		return fmt.Sprintf("%v", v)
	}
}
