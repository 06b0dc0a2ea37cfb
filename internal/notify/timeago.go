package notify

import (
	"fmt"
	"time"
)

// TimeAgo renders a timestamp as a compact relative age: "Just now"
// under a minute, then minutes, hours, and days. Values are truncated,
// not rounded, matching the web client.
func TimeAgo(t, now time.Time) string {
	minutes := int(now.Sub(t).Minutes())

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%dh ago", minutes/60)
	default:
		return fmt.Sprintf("%dd ago", minutes/(24*60))
	}
}
