package browse

import (
	"fmt"
	"math"
)

var units = [...]string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// prettyBytes renders n using base-1000 units (kB, MB, ...), matching the
// display the original implementation used for directory listings.
func prettyBytes(n int64) string {
	v := float64(n)
	if v < 1 {
		return fmt.Sprintf("%.0f %s", v, units[0])
	}
	const delimiter = 1000.0
	exponent := int(math.Min(math.Floor(math.Log(v)/math.Log(delimiter)), float64(len(units)-1)))
	scaled := v / math.Pow(delimiter, float64(exponent))
	return fmt.Sprintf("%.2f %s", scaled, units[exponent])
}
