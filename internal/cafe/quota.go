package cafe

import (
	"math"
	"strconv"
	"strings"
)

// Quota is the Saturday headcount per floor
type Quota struct {
	AndarCima  int `json:"andarCima"`
	AndarBaixo int `json:"andarBaixo"`
}

// Total is the Saturday headcount
func (q Quota) Total() int {
	return q.AndarCima + q.AndarBaixo
}

// Clamped returns q with negative values replaced by zero
func (q Quota) Clamped() Quota {
	return Quota{AndarCima: clampCount(q.AndarCima), AndarBaixo: clampCount(q.AndarBaixo)}
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ParseCount reads a quota input field. Anything that is not a
// non-negative integer becomes 0; fractional numbers are truncated.
func ParseCount(v any) int {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 || x > math.MaxInt32 {
			return 0
		}
		return int(x)
	case int:
		return clampCount(x)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		return clampCount(n)
	default:
		return 0
	}
}
