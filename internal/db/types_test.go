package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplication_HasValidScore(t *testing.T) {
	score := func(n int) *int { return &n }

	tests := []struct {
		name     string
		score    *int
		expected bool
	}{
		{"nil score", nil, false},
		{"minimum", score(1), true},
		{"maximum", score(10), true},
		{"mid range", score(7), true},
		{"below range", score(0), false},
		{"above range", score(15), false},
		{"negative", score(-3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Application{Score: tt.score}
			assert.Equal(t, tt.expected, a.HasValidScore())
		})
	}
}

func TestApplicationType(t *testing.T) {
	now := time.Now()
	a := Application{
		EmailID:        "18f2a9b0c3",
		ApplicantEmail: "candidate@example.com",
		SubjectLine:    "Backend Engineer",
		Timestamp:      now,
	}

	assert.Equal(t, "18f2a9b0c3", a.EmailID)
	assert.Nil(t, a.Score)
	assert.False(t, a.HasValidScore())
	assert.Equal(t, now, a.Timestamp)
}
