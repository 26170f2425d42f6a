package translation

import "strings"

// Join concatenates the outcome texts in order, separated by single spaces.
// Callers only pass outcomes that all succeeded.
func Join(outcomes []Outcome) string {
	var sb strings.Builder
	for i, o := range outcomes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(o.Text)
	}
	return sb.String()
}
