package workspace

import "testing"

func TestElementStyleForReusesExistingTag(t *testing.T) {
	s := &Styles{}
	first := s.ElementStyleFor("Person")
	first.Background = "#08427b"
	second := s.ElementStyleFor("Person")
	if second.Background != "#08427b" {
		t.Errorf("expected a repeated style block for the same tag to mutate the existing entry, got %+v", second)
	}
	if len(s.Elements) != 1 {
		t.Errorf("expected one element style entry for one tag, got %d", len(s.Elements))
	}
}

func TestRelationshipStyleForReusesExistingTag(t *testing.T) {
	s := &Styles{}
	first := s.RelationshipStyleFor("Async")
	first.Dashed = boolPtr(true)
	second := s.RelationshipStyleFor("Async")
	if second.Dashed == nil || !*second.Dashed {
		t.Errorf("expected a repeated relationship style block for the same tag to mutate the existing entry, got %+v", second)
	}
	if len(s.Relationships) != 1 {
		t.Errorf("expected one relationship style entry for one tag, got %d", len(s.Relationships))
	}
}

func boolPtr(b bool) *bool { return &b }
