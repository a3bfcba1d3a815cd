package id

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	reUUIDv4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	reKey32  = regexp.MustCompile(`^[0-9a-f]{32}$`)
)

func TestGenerators(t *testing.T) {
	tests := []struct {
		name string
		gen  func() string
		re   *regexp.Regexp
	}{
		{"primary key", New, reUUIDv4},
		{"storage key", NewID32, reKey32},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen := make(map[string]bool, 100)
			for i := 0; i < 100; i++ {
				v := tc.gen()
				assert.Regexp(t, tc.re, v)
				assert.False(t, seen[v], "duplicate %q", v)
				seen[v] = true
			}
		})
	}
}
