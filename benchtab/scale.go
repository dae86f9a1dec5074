// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"
	"math"
)

// FormatValue formats v in the given unit. "sec/op" values are scaled
// to ns, µs, ms, or s; other units are printed with four significant
// digits.
func FormatValue(v float64, unit string) string {
	if unit == "sec/op" {
		return FormatSeconds(v)
	}
	return sigFigs(v)
}

// FormatSeconds scales a duration in seconds to the largest unit that
// keeps the mantissa at or above one.
func FormatSeconds(sec float64) string {
	abs := math.Abs(sec)
	switch {
	case abs == 0:
		return "0s"
	case abs < 1e-6:
		return sigFigs(sec*1e9) + "ns"
	case abs < 1e-3:
		return sigFigs(sec*1e6) + "µs"
	case abs < 1:
		return sigFigs(sec*1e3) + "ms"
	default:
		return sigFigs(sec) + "s"
	}
}

// sigFigs formats v with roughly four significant digits.
func sigFigs(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1000 || abs == 0:
		return fmt.Sprintf("%.0f", v)
	case abs >= 100:
		return fmt.Sprintf("%.1f", v)
	case abs >= 10:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
