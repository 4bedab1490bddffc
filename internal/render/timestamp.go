package render

import "fmt"

// SRTTimestamp formats non-negative seconds as an SRT timestamp,
// HH:MM:SS,mmm with a comma millisecond separator.
func SRTTimestamp(seconds float64) string {
	h, m, s, ms := splitSeconds(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// VTTTimestamp formats non-negative seconds as a WebVTT timestamp,
// HH:MM:SS.mmm with a dot millisecond separator.
func VTTTimestamp(seconds float64) string {
	h, m, s, ms := splitSeconds(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// splitSeconds decomposes seconds into hour/minute/second/millisecond fields,
// truncating each field toward zero.
func splitSeconds(seconds float64) (h, m, s, ms int) {
	h = int(seconds / 3600)
	m = int(seconds/60) % 60
	s = int(seconds) % 60
	ms = int((seconds - float64(int(seconds))) * 1000)
	return h, m, s, ms
}
