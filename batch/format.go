package batch

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%016x", h)
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatRate formats a throughput of n posts over elapsed.
func FormatRate(n int, elapsed time.Duration) string {
	if elapsed <= 0 {
		return fmt.Sprintf("%d posts", n)
	}
	return fmt.Sprintf("%.1f posts/s", float64(n)/elapsed.Seconds())
}
