// Package render holds the small text helpers shared by both presenters
// and the digest builder.
package render

import "strings"

// StarBar renders a rating as a five-step scale indicator. Values outside
// 0..5 are clamped.
func StarBar(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
