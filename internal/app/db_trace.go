package app

import (
	"strings"
)

const maxTracedQueryLength = 512

// formatDBQueryForTrace flattens a query onto one line for span attributes.
// Line comments are dropped so migration banners and hints don't eat the cap.
func formatDBQueryForTrace(query string) string {
	var b strings.Builder
	b.Grow(len(query))

	for _, line := range strings.Split(query, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		for _, field := range strings.Fields(line) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(field)
		}
		if b.Len() > maxTracedQueryLength {
			break
		}
	}

	out := b.String()
	if len(out) <= maxTracedQueryLength {
		return out
	}
	return out[:maxTracedQueryLength] + "..."
}
