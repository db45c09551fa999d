package workspace

// Workspace is the top-level object the DSL engine populates and the
// consumer (CLI, tests) reads back. It is the concrete type behind the
// "workspace façade" SPEC_FULL.md §6 describes: the engine calls the
// methods below and the sub-type methods on Model/ViewSet/Styles, and also
// sets exported fields directly (Name, Branding, view and element fields).
type Workspace struct {
	Name        string
	Description string

	// Source holds the preserved, post-substitution DSL source text the
	// parser dispatched, joined with "\n" — spec.md §3's "Source-line
	// buffer" and the vehicle for the round-trip preservation invariant in
	// spec.md §8: re-parsing Source must produce an equal workspace.
	Source string

	Model         *Model
	Views         *ViewSet
	Styles        *Styles
	Branding      *Branding
	Terminology   *Terminology
	Configuration *Configuration

	// ImpliedRelationshipsStrategy records whether "!impliedRelationships
	// true|false" was declared, and with what value; nil means "never set".
	ImpliedRelationshipsStrategy *bool
}

// New returns an empty workspace with every sub-structure initialized, so
// the dispatcher never needs nil checks before reaching into them.
func New() *Workspace {
	return &Workspace{
		Model:         NewModel(),
		Views:         &ViewSet{},
		Styles:        &Styles{},
		Branding:      &Branding{},
		Terminology:   &Terminology{},
		Configuration: &Configuration{},
	}
}

// SetSource records the parser's preserved source-line buffer. Called once,
// after a parse completes successfully (dsl.Parser.finish).
func (w *Workspace) SetSource(source string) {
	w.Source = source
}

// SetImpliedRelationships records the "!impliedRelationships" directive.
// The directive is conventionally declared near the top of a "model"
// block, before any relationships exist to derive from, so applying the
// pass here rather than deferring it to FinalizeImpliedRelationships would
// make it a no-op for realistic files.
func (w *Workspace) SetImpliedRelationships(enabled bool) {
	w.ImpliedRelationshipsStrategy = &enabled
	w.Model.ImpliedRelationships = enabled
}

// FinalizeImpliedRelationships applies the implied-relationships pass once,
// over every relationship declared during the whole parse, if the
// directive was ever set true. Called once at end-of-parse (dsl.Parser.finish).
func (w *Workspace) FinalizeImpliedRelationships() {
	if w.ImpliedRelationshipsStrategy != nil && *w.ImpliedRelationshipsStrategy {
		w.Model.ApplyImpliedRelationships()
	}
}

// Summary is a small, serialization-friendly snapshot used by the CLI's
// --format=yaml output and by tests asserting on parse results without
// reaching into unexported fields.
type Summary struct {
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description,omitempty"`
	ElementCount       int      `yaml:"elements"`
	RelationshipCount  int      `yaml:"relationships"`
	ViewCount          int      `yaml:"views"`
	ElementKinds       []string `yaml:"elementKinds,omitempty"`
}

// Summarize builds a Summary for the current workspace state.
func (w *Workspace) Summarize() Summary {
	kindSeen := map[string]bool{}
	var kinds []string
	for _, el := range w.Model.Elements() {
		k := el.Kind.String()
		if !kindSeen[k] {
			kindSeen[k] = true
			kinds = append(kinds, k)
		}
	}
	return Summary{
		Name:              w.Name,
		Description:       w.Description,
		ElementCount:      len(w.Model.Elements()),
		RelationshipCount: len(w.Model.Relationships()),
		ViewCount:         len(w.Views.Views),
		ElementKinds:      kinds,
	}
}
