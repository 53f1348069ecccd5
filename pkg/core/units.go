package core

import (
	"fmt"
	"math"
	"strconv"
)

const sizeUnits = "KMGTPE"

// HumanSize renders a byte count the way df -h and du -h do: powers of
// 1024, rounded up, one decimal below ten.
func HumanSize(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10)
	}
	v := float64(n)
	i := -1
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	if v < 10 {
		if r := math.Ceil(v*10) / 10; r < 10 {
			return fmt.Sprintf("%.1f%c", r, sizeUnits[i])
		}
		return fmt.Sprintf("10%c", sizeUnits[i])
	}
	return fmt.Sprintf("%.0f%c", math.Ceil(v), sizeUnits[i])
}

// KiB is n in kibibytes, rounded up.
func KiB(n int64) int64 {
	return (n + 1023) / 1024
}
