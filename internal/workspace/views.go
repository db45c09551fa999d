package workspace

// ViewKind enumerates the six view kinds plus the filtered-view derivative
// the DSL can declare inside a "views { }" block.
type ViewKind int

const (
	ViewSystemLandscape ViewKind = iota
	ViewSystemContext
	ViewContainer
	ViewComponent
	ViewDynamic
	ViewDeployment
	ViewFiltered
)

// AnimationStep is one "animation { include ... }" entry within a view,
// recording which element/relationship identifiers become visible at that
// step.
type AnimationStep struct {
	Elements      []string
	Relationships []string
}

// View is one declared view. StaticView-kind fields (Include/Exclude) are
// populated for the five static kinds (system landscape, system context,
// container, component, deployment); dynamic views append their
// "source -> destination" content expressions to Include as well.
type View struct {
	Kind        ViewKind
	Key         string
	SoftwareSystemID string // scope for context/container/component/dynamic views
	EnvironmentID    string // scope for deployment views
	BaseViewKey      string // for filtered views, the view they filter
	Title       string
	Description string
	AutoLayout  bool
	Animations  []AnimationStep
	Include     []string
	Exclude     []string

	// FilterMode and FilterTags apply only to ViewFiltered.
	FilterMode string // "include" or "exclude"
	FilterTags []string
}

// AddInclude implements dsl.StaticView.
func (v *View) AddInclude(expr string) { v.Include = append(v.Include, expr) }

// AddExclude implements dsl.StaticView.
func (v *View) AddExclude(expr string) { v.Exclude = append(v.Exclude, expr) }

// BeginAnimationStep appends a fresh animation step and returns it so the
// dispatcher can populate it as "include"/relationship lines are parsed
// inside the nested "animation { }" block.
func (v *View) BeginAnimationStep() *AnimationStep {
	v.Animations = append(v.Animations, AnimationStep{})
	return &v.Animations[len(v.Animations)-1]
}

// ViewSet collects every view declared in a "views { }" block, along with
// the theme references and top-level styles/branding/terminology that live
// alongside it in the source grammar (styles/branding/terminology are kept
// as siblings on Workspace instead, matching the DSL grammar more closely
// than the Java object model, which nests them under ViewSet).
type ViewSet struct {
	Views  []*View
	Themes []string
}

// AddView appends and returns a new view of the given kind.
func (vs *ViewSet) AddView(kind ViewKind, key string) *View {
	v := &View{Kind: kind, Key: key}
	vs.Views = append(vs.Views, v)
	return v
}

// FindByKey looks up a previously declared view by its key. The DSL engine
// does not call it; a filtered view records its base only as BaseViewKey.
func (vs *ViewSet) FindByKey(key string) (*View, bool) {
	for _, v := range vs.Views {
		if v.Key == key {
			return v, true
		}
	}
	return nil, false
}
