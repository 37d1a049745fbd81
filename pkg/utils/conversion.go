package utils

import (
	"strconv"
	"strings"
)

// StringToUint64 parses a decimal id taken from a URL parameter.
// Returns 0 when the value is not a positive integer.
func StringToUint64(str string) uint64 {
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

// ParseBool reads the boolean spellings the frontend sends in query strings.
func ParseBool(str string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}
