package trellis

import "net/url"

// LogMaskVal hides sensitive values in log messages.
const LogMaskVal = "xxxxxx"

// Mask replaces every value of key in vals with a single LogMaskVal.
// vals is left alone if it does not hold key.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals[key] = []string{LogMaskVal}
}
