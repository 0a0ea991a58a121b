package dom

import (
	"sort"

	"github.com/aretw0/reorder/pkg/domain"
)

// style holds inline properties and classes of an element.
type style struct {
	props   map[domain.Property]string
	classes map[string]struct{}
}

func newStyle() style {
	return style{
		props:   make(map[domain.Property]string),
		classes: make(map[string]struct{}),
	}
}

// SetProperty writes an inline property. An empty value removes it.
func (s *style) SetProperty(p domain.Property, v string) {
	if v == "" {
		delete(s.props, p)
		return
	}
	s.props[p] = v
}

// Property returns an inline property, or "".
func (s *style) Property(p domain.Property) string { return s.props[p] }

func (s *style) AddClass(c string) {
	if c != "" {
		s.classes[c] = struct{}{}
	}
}

func (s *style) RemoveClass(c string) { delete(s.classes, c) }

// HasClass reports whether the class is set.
func (s *style) HasClass(c string) bool {
	_, ok := s.classes[c]
	return ok
}

// Classes returns the class list sorted.
func (s *style) Classes() []string {
	out := make([]string, 0, len(s.classes))
	for c := range s.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
