package workspace

import "testing"

func TestAddElementGeneratesIdentifierWhenEmpty(t *testing.T) {
	m := NewModel()
	el, err := m.AddElement("", KindPerson, "Anonymous User", "", "")
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	if el.ID == "" {
		t.Fatalf("expected a generated identifier, got empty string")
	}
	if got, ok := m.Element(el.ID); !ok || got != el {
		t.Errorf("Element(%q) did not return the element just added", el.ID)
	}
}

func TestAddElementRejectsDuplicateID(t *testing.T) {
	m := NewModel()
	if _, err := m.AddElement("u", KindPerson, "A", "", ""); err != nil {
		t.Fatalf("first AddElement: %v", err)
	}
	if _, err := m.AddElement("U", KindPerson, "B", "", ""); err == nil {
		t.Errorf("expected an error for a case-insensitively duplicate id, got nil")
	}
}

func TestElementLookupIsCaseInsensitive(t *testing.T) {
	m := NewModel()
	if _, err := m.AddElement("WebApp", KindSoftwareSystem, "Web App", "", ""); err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	if _, ok := m.Element("webapp"); !ok {
		t.Errorf("expected case-insensitive lookup to find 'WebApp' via 'webapp'")
	}
}

func TestElementsPreservesInsertionOrder(t *testing.T) {
	m := NewModel()
	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		if _, err := m.AddElement(id, KindPerson, id, "", ""); err != nil {
			t.Fatalf("AddElement(%q): %v", id, err)
		}
	}
	got := m.Elements()
	if len(got) != len(ids) {
		t.Fatalf("expected %d elements, got %d", len(ids), len(got))
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Errorf("Elements()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestAddRelationshipGeneratesIdentifierWhenEmpty(t *testing.T) {
	m := NewModel()
	rel, err := m.AddRelationship("", "a", "b", "uses", "", false)
	if err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}
	if rel.ID == "" {
		t.Errorf("expected a generated relationship identifier, got empty string")
	}
	if rel.Implied {
		t.Errorf("expected Implied=false for a directly declared relationship")
	}
}

func TestApplyImpliedRelationshipsAddsAncestorEdges(t *testing.T) {
	m := NewModel()
	sys, _ := m.AddElement("sys", KindSoftwareSystem, "Sys", "", "")
	web, _ := m.AddElement("web", KindContainer, "Web", "", "")
	web.ParentID = sys.ID
	other, _ := m.AddElement("other", KindSoftwareSystem, "Other", "", "")

	if _, err := m.AddRelationship("", web.ID, other.ID, "calls", "", false); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}

	m.ApplyImpliedRelationships()

	var sysToOther bool
	for _, r := range m.Relationships() {
		if r.SourceID == sys.ID && r.DestinationID == other.ID {
			sysToOther = true
			if !r.Implied {
				t.Errorf("expected the ancestor-derived relationship to be marked Implied")
			}
		}
	}
	if !sysToOther {
		t.Errorf("expected an implied relationship from the container's parent (%q) to %q", sys.ID, other.ID)
	}
}

func TestApplyImpliedRelationshipsDoesNotDuplicateExisting(t *testing.T) {
	m := NewModel()
	sys, _ := m.AddElement("sys", KindSoftwareSystem, "Sys", "", "")
	web, _ := m.AddElement("web", KindContainer, "Web", "", "")
	web.ParentID = sys.ID
	other, _ := m.AddElement("other", KindSoftwareSystem, "Other", "", "")

	// Both the direct and the would-be-implied relationship already exist.
	if _, err := m.AddRelationship("", web.ID, other.ID, "calls", "", false); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}
	if _, err := m.AddRelationship("", sys.ID, other.ID, "uses", "", false); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}

	before := len(m.Relationships())
	m.ApplyImpliedRelationships()
	after := len(m.Relationships())

	if after != before {
		t.Errorf("expected no new relationships when the implied edge already exists: before=%d after=%d", before, after)
	}
}

func TestAddTagDeduplicates(t *testing.T) {
	el := &Element{}
	el.AddTag("Element")
	el.AddTag("Element")
	el.AddTag("Person")
	if len(el.Tags) != 2 {
		t.Errorf("expected AddTag to deduplicate, got %v", el.Tags)
	}
}
