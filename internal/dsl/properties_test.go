package dsl

import (
	"errors"
	"os"
	"testing"
)

// TestPropertyRoundTripSourcePreservation is spec.md §8 property 1: the
// preserved source buffer, re-parsed, yields an equal workspace.
func TestPropertyRoundTripSourcePreservation(t *testing.T) {
	source := `
workspace {
    model {
        u = person "User" "a person"
        s = softwareSystem "S" "a system"
        u -> s "uses" "HTTP"
    }
}`
	p1 := New()
	if err := p1.ParseString(source); err != nil {
		t.Fatalf("first parse: %v", err)
	}

	p2 := New()
	if err := p2.ParseString(p1.Workspace().Source); err != nil {
		t.Fatalf("re-parsing preserved source: %v\npreserved source:\n%s", err, p1.Workspace().Source)
	}

	ws1, ws2 := p1.Workspace(), p2.Workspace()
	if len(ws1.Model.Elements()) != len(ws2.Model.Elements()) {
		t.Fatalf("element count differs after round-trip: %d vs %d", len(ws1.Model.Elements()), len(ws2.Model.Elements()))
	}
	for _, e1 := range ws1.Model.Elements() {
		e2, ok := ws2.Model.Element(e1.ID)
		if !ok {
			t.Fatalf("element %q missing after round-trip", e1.ID)
		}
		if e1.Name != e2.Name || e1.Description != e2.Description || e1.Kind != e2.Kind {
			t.Errorf("element %q changed across round-trip: %+v vs %+v", e1.ID, e1, e2)
		}
	}
	if len(ws1.Model.Relationships()) != len(ws2.Model.Relationships()) {
		t.Fatalf("relationship count differs after round-trip: %d vs %d",
			len(ws1.Model.Relationships()), len(ws2.Model.Relationships()))
	}
}

// TestPropertyContextBalance is spec.md §8 property 2: every accepted input
// has matching open/close sentinel counts, and the context stack ends empty.
func TestPropertyContextBalance(t *testing.T) {
	p := New()
	err := p.ParseString(`
workspace {
    model {
        s = softwareSystem "S" {
            web = container "W" {
            }
        }
    }
    views {
    }
}`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if depth := len(p.ctx.entries); depth != 0 {
		t.Errorf("expected an empty context stack after a balanced parse, got depth %d", depth)
	}
}

// TestPropertyIdentifierUniqueness is spec.md §8 property 3: no identifier
// is ever accepted twice, regardless of which declaration kind introduces it.
func TestPropertyIdentifierUniqueness(t *testing.T) {
	cases := []string{
		`workspace { model { u = person "A" u = person "B" } }`,
		`workspace { model { u = person "A" u -> u "self" } }`,
	}
	for _, src := range cases {
		p := New()
		err := p.ParseString(src)
		if err == nil {
			t.Errorf("expected a duplicate-identifier error for %q, got nil", src)
			continue
		}
		if !errors.Is(err, ErrDuplicateIdentifier) {
			t.Errorf("expected ErrDuplicateIdentifier for %q, got %v", src, err)
		}
	}
}

// TestPropertySubstitutionPurity is spec.md §8 property 4: substitution is
// idempotent on placeholder-free text, and constants mask environment
// variables sharing the same name.
func TestPropertySubstitutionPurity(t *testing.T) {
	s := newSubstitutor(newSymbolTable(), false)
	for _, text := range []string{"no placeholders", "plain ${unmatched", "}{reversed"} {
		once := s.apply(text)
		twice := s.apply(once)
		if once != twice {
			t.Errorf("apply() not idempotent on %q: %q then %q", text, once, twice)
		}
	}

	os.Setenv("DSL_PURITY_TEST", "from-env")
	defer os.Unsetenv("DSL_PURITY_TEST")
	symbols := newSymbolTable()
	symbols.setConstant("DSL_PURITY_TEST", "from-constant", TokenLine{Number: 1})
	masked := newSubstitutor(symbols, false)
	if got := masked.apply("${DSL_PURITY_TEST}"); got != "from-constant" {
		t.Errorf("constants must mask same-named environment variables, got %q", got)
	}
}

// TestPropertyRestrictedModeSafety is spec.md §8 property 5: restricted mode
// never reads the filesystem beyond the initial parse target, and never
// reads the environment.
func TestPropertyRestrictedModeSafety(t *testing.T) {
	os.Setenv("DSL_RESTRICTED_SAFETY", "leak-if-read")
	defer os.Unsetenv("DSL_RESTRICTED_SAFETY")

	dir := t.TempDir()
	missingPath := "definitely-does-not-exist.dsl"

	p := New()
	p.SetRestricted(true)
	err := p.ParseStringIn(`
workspace {
    model {
        !include `+missingPath+`
        person "${DSL_RESTRICTED_SAFETY}"
    }
}`, dir)
	if err != nil {
		t.Fatalf("restricted !include of a missing file must be a silent no-op, got error: %v", err)
	}
	els := p.Workspace().Model.Elements()
	if len(els) != 1 || els[0].Name != "${DSL_RESTRICTED_SAFETY}" {
		t.Fatalf("expected the placeholder to survive unexpanded in restricted mode, got %+v", els)
	}
}

// TestPropertyCommentNeutrality is spec.md §8 property 6: removing
// fully-commented lines (single- or multi-line) never changes the result.
func TestPropertyCommentNeutrality(t *testing.T) {
	withComments := `
workspace {
    // a leading comment
    model {
        /* a
           multi-line
           comment */
        u = person "User"
        # shell-style comment
        s = softwareSystem "S"
        u -> s "uses"
    }
}`
	withoutComments := `
workspace {
    model {
        u = person "User"
        s = softwareSystem "S"
        u -> s "uses"
    }
}`

	p1 := New()
	if err := p1.ParseString(withComments); err != nil {
		t.Fatalf("ParseString (with comments): %v", err)
	}
	p2 := New()
	if err := p2.ParseString(withoutComments); err != nil {
		t.Fatalf("ParseString (without comments): %v", err)
	}

	ws1, ws2 := p1.Workspace(), p2.Workspace()
	if len(ws1.Model.Elements()) != len(ws2.Model.Elements()) {
		t.Errorf("comment removal changed element count: %d vs %d", len(ws1.Model.Elements()), len(ws2.Model.Elements()))
	}
	if len(ws1.Model.Relationships()) != len(ws2.Model.Relationships()) {
		t.Errorf("comment removal changed relationship count: %d vs %d",
			len(ws1.Model.Relationships()), len(ws2.Model.Relationships()))
	}
}

// TestPropertyErrorLocality is spec.md §8 property 7: a raised error's
// LineNumber indexes a line whose text equals SourceLine, for both a
// top-level and an included source.
func TestPropertyErrorLocality(t *testing.T) {
	p := New()
	src := `
workspace {
    model {
        u = person "U"
        u = person "U2"
    }
}`
	err := p.ParseString(src)
	var perr *ParserError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParserError, got %T: %v", err, err)
	}

	lines := splitLinesForTest(src)
	if perr.LineNumber < 1 || perr.LineNumber > len(lines) {
		t.Fatalf("LineNumber %d out of range for a %d-line source", perr.LineNumber, len(lines))
	}
	want := lines[perr.LineNumber-1]
	if perr.SourceLine != want {
		t.Errorf("SourceLine %q does not match actual line %d text %q", perr.SourceLine, perr.LineNumber, want)
	}
}

func splitLinesForTest(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
