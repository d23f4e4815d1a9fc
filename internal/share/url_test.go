package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	assert.Equal(t,
		"https://aicost.dev/compare?state=tok",
		BuildURL("https://aicost.dev/compare", "tok"))

	// A base that already carries a query gets & instead of ?.
	assert.Equal(t,
		"https://aicost.dev/compare?lang=en&state=tok",
		BuildURL("https://aicost.dev/compare?lang=en", "tok"))
}

func TestStateParam(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full url",
			input: "https://aicost.dev/compare?state=%5B%7B%22id%22%3A%22openai%22%7D%5D",
			want:  "%5B%7B%22id%22%3A%22openai%22%7D%5D",
		},
		{
			name:  "url with other params",
			input: "https://aicost.dev/compare?lang=en&state=abc",
			want:  "abc",
		},
		{
			name:  "bare token",
			input: "%5B%5D",
			want:  "%5B%5D",
		},
		{
			name:  "query string only",
			input: "?state=xyz",
			want:  "xyz",
		},
		{
			name:  "url without state",
			input: "https://aicost.dev/compare?lang=en",
			want:  "",
		},
		{
			name:  "url without query",
			input: "https://aicost.dev/compare",
			want:  "",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "empty state param",
			input: "https://aicost.dev/compare?state=",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateParam(tt.input))
		})
	}
}
