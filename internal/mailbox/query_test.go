package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCandidateQuery(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			"mixed case title produces three variants",
			"Backend Engineer",
			`subject:("Backend Engineer" OR "backend engineer" OR "BACKEND ENGINEER") is:unread`,
		},
		{
			"all lowercase title collapses duplicates",
			"devops",
			`subject:("devops" OR "DEVOPS") is:unread`,
		},
		{
			"all uppercase title collapses duplicates",
			"SRE",
			`subject:("SRE" OR "sre") is:unread`,
		},
		{
			"surrounding whitespace is trimmed",
			"  Data Analyst ",
			`subject:("Data Analyst" OR "data analyst" OR "DATA ANALYST") is:unread`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildCandidateQuery(tt.title))
		})
	}
}

func TestBuildCandidateQuery_AlwaysUnreadOnly(t *testing.T) {
	assert.Contains(t, buildCandidateQuery("Any Role"), "is:unread")
}
