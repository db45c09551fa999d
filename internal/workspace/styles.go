package workspace

// ElementStyle holds the subset of visual properties
// "styles { element "tag" { ... } }" can set. Field names follow the DSL
// keywords (background, colour/color, stroke, shape, border, opacity,
// width, height, fontSize, metadata, description, icon) rather than any
// rendering engine's internal representation — this package never draws
// anything, it only stores what the DSL declared (SPEC_FULL.md §1
// Non-goals: rendering/layout/export).
type ElementStyle struct {
	Tag         string
	Background  string
	Color       string
	Stroke      string
	Shape       string
	Border      string
	Opacity     int
	Width       int
	Height      int
	FontSize    int
	Metadata    *bool
	Description *bool
	Icon        string
}

// RelationshipStyle holds the subset of visual properties
// "styles { relationship "tag" { ... } }" can set.
type RelationshipStyle struct {
	Tag       string
	Thickness int
	Color     string
	Dashed    *bool
	Opacity   int
	Width     int
	FontSize  int
	Position  int
	Routing   string
}

// Styles is the "styles { }" block's content: a set of element and
// relationship styles, keyed by the tag they apply to.
type Styles struct {
	Elements      []*ElementStyle
	Relationships []*RelationshipStyle
}

// ElementStyleFor returns the style for tag, creating one if none exists
// yet — the DSL allows repeated "element" blocks for the same tag to layer
// properties, so later property lines on the same tag should mutate the
// existing entry rather than create a duplicate.
func (s *Styles) ElementStyleFor(tag string) *ElementStyle {
	for _, es := range s.Elements {
		if es.Tag == tag {
			return es
		}
	}
	es := &ElementStyle{Tag: tag}
	s.Elements = append(s.Elements, es)
	return es
}

// RelationshipStyleFor returns the style for tag, creating one if needed.
func (s *Styles) RelationshipStyleFor(tag string) *RelationshipStyle {
	for _, rs := range s.Relationships {
		if rs.Tag == tag {
			return rs
		}
	}
	rs := &RelationshipStyle{Tag: tag}
	s.Relationships = append(s.Relationships, rs)
	return rs
}
