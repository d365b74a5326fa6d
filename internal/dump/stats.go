package dump

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Stats counts nodes by kind.
type Stats struct {
	Items    int            `json:"items" yaml:"items" msgpack:"items"`
	MaxDepth int            `json:"max_depth" yaml:"max_depth" msgpack:"max_depth"`
	ByKind   map[string]int `json:"by_kind,omitempty" yaml:"by_kind,omitempty" msgpack:"by_kind,omitempty"`
}

// Count walks nodes and their children.
func Count(nodes []Node) Stats {
	var s Stats
	s.add(nodes, 1)
	return s
}

func (s *Stats) add(nodes []Node, depth int) {
	if len(nodes) > 0 && depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	for _, n := range nodes {
		s.Items++
		if s.ByKind == nil {
			s.ByKind = make(map[string]int)
		}
		s.ByKind[n.Kind]++
		s.add(n.Children, depth+1)
	}
}

// Merge adds other's counts to s.
func (s *Stats) Merge(other Stats) {
	s.Items += other.Items
	s.MaxDepth = max(s.MaxDepth, other.MaxDepth)
	for k, v := range other.ByKind {
		if s.ByKind == nil {
			s.ByKind = make(map[string]int)
		}
		s.ByKind[k] += v
	}
}

// String renders "12 items (Note 8, Music 2, ...)", kinds sorted by name.
func (s Stats) String() string {
	if s.Items == 0 {
		return "0 items"
	}
	parts := make([]string, 0, len(s.ByKind))
	for _, k := range slices.Sorted(maps.Keys(s.ByKind)) {
		parts = append(parts, fmt.Sprintf("%s %d", k, s.ByKind[k]))
	}
	return fmt.Sprintf("%d items (%s)", s.Items, strings.Join(parts, ", "))
}
