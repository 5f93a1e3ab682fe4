// internal/matching/height.go
package matching

import (
	"regexp"
	"strconv"
)

var heightPattern = regexp.MustCompile(`(\d+)'(\d+)"`)

// ParseHeight converts a height such as 5'6" to inches. Anything that does not contain
// the feet'inches" form yields 0.
func ParseHeight(height string) int {
	m := heightPattern.FindStringSubmatch(height)
	if m == nil {
		return 0
	}
	feet, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	inches, err := strconv.Atoi(m[2])
	if err != nil {
		return 0
	}
	return feet*12 + inches
}
