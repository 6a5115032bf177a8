package mailbox

import (
	"fmt"
	"strings"
)

// buildCandidateQuery builds the Gmail search expression for a job title.
// The title is matched in three case variants (as given, lower, upper) and
// restricted to unread messages.
func buildCandidateQuery(title string) string {
	title = strings.TrimSpace(title)

	variants := []string{title, strings.ToLower(title), strings.ToUpper(title)}
	seen := make(map[string]bool, len(variants))
	quoted := make([]string, 0, len(variants))
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		quoted = append(quoted, fmt.Sprintf("%q", v))
	}

	return fmt.Sprintf("subject:(%s) is:unread", strings.Join(quoted, " OR "))
}
