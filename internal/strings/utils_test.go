package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"short enough", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"tiny n clamped", "hello world", 2, "h..."},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.s, tt.n))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héllo", TruncateRunes("héllo", 5))
	assert.Equal(t, "hél...", TruncateRunes("héllo wörld", 6))
}

func TestHasPrefixFold(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		prefix string
		want   bool
	}{
		{"exact", "Claude", "Claude", true},
		{"case folds", "Claude", "cl", true},
		{"upper query", "claude", "CL", true},
		{"prefix only, not substring", "ChatGPT", "gpt", false},
		{"empty prefix matches", "Gemini", "", true},
		{"longer than subject", "Ge", "Gemini", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPrefixFold(tt.s, tt.prefix))
		})
	}
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "short", WordWrap("short", 10))
	assert.Equal(t, "one two\nthree", WordWrap("one two three", 8))
	assert.Equal(t, "keep\nnewlines", WordWrap("keep\nnewlines", 20))
	assert.Equal(t, "as is", WordWrap("as is", 0))
}

func TestWordWrapLongWord(t *testing.T) {
	// A word longer than the width stays intact on its own line.
	got := WordWrap("a verylongunbreakableword b", 5)
	assert.Contains(t, got, "verylongunbreakableword")
}
