package orders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderCodeFormat(t *testing.T) {
	code := NewOrderCode()
	assert.True(t, strings.HasPrefix(code, "SC"), "code %q must start with SC", code)
	assert.GreaterOrEqual(t, len(code), 2+4)
	for _, c := range code {
		ok := (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')
		assert.True(t, ok, "unexpected char %q in code %q", c, code)
	}
}

func TestNewOrderCodeEntropy(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code := NewOrderCode()
		assert.False(t, seen[code], "duplicate code %q", code)
		seen[code] = true
	}
}
