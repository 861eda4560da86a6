package common

import "strings"

// SplitList splits a comma separated list, trimming blanks and dropping empty
// items. "a, b,,c" yields [a b c].
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
