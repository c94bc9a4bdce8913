package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tags := NormalizeTags([]string{" Go ", "go", "GO", "", "sql", "  "})
	assert.Equal(t, []string{"Go", "sql"}, tags)
}

func TestNormalizeTags_DropsOverlongEntries(t *testing.T) {
	long := strings.Repeat("x", MaxTagLength+1)
	tags := NormalizeTags([]string{long, "ok"})
	assert.Equal(t, []string{"ok"}, tags)
}

func TestNormalizeTags_CapsCount(t *testing.T) {
	input := make([]string, MaxTags+10)
	for i := range input {
		input[i] = strings.Repeat("a", i+1)
	}
	assert.Len(t, NormalizeTags(input), MaxTags)
}

func TestNormalizeTags_Empty(t *testing.T) {
	assert.Empty(t, NormalizeTags(nil))
}
