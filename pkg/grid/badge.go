package grid

import "github.com/dustin/go-humanize"

// OverflowBadge formats an overflow count as a "+N" badge with thousands
// separators, e.g. 5000 -> "+5,000". Counts of zero or less produce the
// empty string, meaning no badge should be shown.
func OverflowBadge(count int) string {
	if count <= 0 {
		return ""
	}
	return "+" + humanize.Comma(int64(count))
}
