package access

import (
	"sort"
	"strings"
)

// Set is an additive permission set. "*" grants everything and
// "module.*" grants every action of module.
type Set map[string]struct{}

func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(name string) bool {
	if _, ok := s[Wildcard]; ok {
		return true
	}
	if _, ok := s[name]; ok {
		return true
	}
	if i := strings.IndexByte(name, '.'); i > 0 {
		if _, ok := s[name[:i]+".*"]; ok {
			return true
		}
	}
	return false
}

func (s Set) HasAny(names ...string) bool {
	for _, n := range names {
		if s.Has(n) {
			return true
		}
	}
	return false
}

func (s Set) HasAll(names ...string) bool {
	for _, n := range names {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

func (s Set) IsWildcard() bool {
	_, ok := s[Wildcard]
	return ok
}

func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
