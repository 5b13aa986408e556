package export

import (
	"fmt"
	"strconv"
)

// FormatNumber renders n compactly for display: 1.2M, 45.0K, 999.
func FormatNumber(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
