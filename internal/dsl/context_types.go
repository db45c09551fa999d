package dsl

import "github.com/dsleng/structurizr-dsl/internal/workspace"

// base is embedded by every concrete context to provide OpenLine() without
// repeating the field and method on each type.
type base struct {
	open TokenLine
}

func (b base) OpenLine() TokenLine { return b.open }

// workspaceContext is the outermost "workspace { }" block.
type workspaceContext struct {
	base
}

func (workspaceContext) Tag() Tag { return TagWorkspace }

// modelContext is "model { }", nested directly inside workspace.
type modelContext struct {
	base
	group     string
	groupOpen bool
}

func (modelContext) Tag() Tag                  { return TagModel }
func (c *modelContext) CurrentGroup() string    { return c.group }
func (c *modelContext) hasOpenGroup() bool      { return c.groupOpen }
func (c *modelContext) setGroupOpen(open bool)  { c.groupOpen = open }

// enterpriseContext is "enterprise "name" { }" nested inside model.
type enterpriseContext struct {
	base
	name      string
	group     string
	groupOpen bool
}

func (enterpriseContext) Tag() Tag                 { return TagEnterprise }
func (c *enterpriseContext) CurrentGroup() string   { return c.group }
func (c *enterpriseContext) hasOpenGroup() bool     { return c.groupOpen }
func (c *enterpriseContext) setGroupOpen(open bool) { c.groupOpen = open }

// groupContext is "group "name" { }", legal only directly inside model,
// enterprise, a software system or a container — and only when that
// enclosing context has no group already open (gate checked before this is
// pushed; see groupGate). It does not nest: a "group" block's own legal
// contexts never include TagGroup, so a second "group" directly inside an
// open one is rejected as unexpected tokens, matching
// original_source/StructurizrDslParser.java:246-260. Two sibling "group"
// blocks at the same level (opened one after the other) remain legal, since
// the gate is cleared again when the first one closes.
type groupContext struct {
	base
	name       string
	parentPath string
	gate       groupGate
}

func (groupContext) Tag() Tag { return TagGroup }

// CurrentGroup makes a group block Groupable, so elements declared directly
// inside it inherit its full path.
func (c *groupContext) CurrentGroup() string { return c.Path() }

// Path returns the full slash-joined group path, e.g. "Team A/Team B" when
// a groupable element nests a group of its own beneath an enclosing one.
func (c *groupContext) Path() string {
	if c.parentPath == "" {
		return c.name
	}
	return c.parentPath + "/" + c.name
}

// Close clears the enclosing context's "group open" gate, so a sibling
// "group" block declared after this one closes is still legal.
func (c *groupContext) Close() {
	if c.gate != nil {
		c.gate.setGroupOpen(false)
	}
}

// elementContext represents any model element block: person, software
// system, container, component, deployment node, infrastructure node, or
// instance. A single struct covers all of them (rather than one Go type per
// DSL keyword, unlike the Java class-per-keyword hierarchy) because the
// engine's job stops at "this identifier, this kind, this workspace
// element" — per-keyword field grammars are the out-of-scope production
// parser's concern (SPEC_FULL.md §1).
type elementContext struct {
	base
	tag       Tag
	el        *workspace.Element
	group     string
	groupOpen bool
}

func (c *elementContext) Tag() Tag                 { return c.tag }
func (c *elementContext) CurrentGroup() string      { return c.group }
func (c *elementContext) ElementID() string         { return c.el.ID }
func (c *elementContext) hasOpenGroup() bool        { return c.groupOpen }
func (c *elementContext) setGroupOpen(open bool)    { c.groupOpen = open }

// deploymentEnvironmentContext is "deploymentEnvironment "name" { }" nested
// inside model.
type deploymentEnvironmentContext struct {
	base
	name  string
	group string
}

func (deploymentEnvironmentContext) Tag() Tag                { return TagDeploymentEnvironment }
func (c *deploymentEnvironmentContext) CurrentGroup() string { return c.group }

// relationshipContext is pushed only when a relationship line ends in "{"
// (e.g. to attach tags/properties/perspectives to it), which the grammar
// allows even though most relationship lines are single-line statements.
type relationshipContext struct {
	base
	rel *workspace.Relationship
}

func (c *relationshipContext) Tag() Tag         { return TagRelationship }
func (c *relationshipContext) ElementID() string { return c.rel.ID }

// viewsContext is "views { }".
type viewsContext struct{ base }

func (viewsContext) Tag() Tag { return TagViews }

// viewKindTag maps a workspace.ViewKind to its dsl.Tag, so the dispatcher
// can push the right context without the workspace package knowing about
// dsl.Tag.
func viewKindTag(k workspace.ViewKind) Tag {
	switch k {
	case workspace.ViewSystemLandscape:
		return TagSystemLandscapeView
	case workspace.ViewSystemContext:
		return TagSystemContextView
	case workspace.ViewContainer:
		return TagContainerView
	case workspace.ViewComponent:
		return TagComponentView
	case workspace.ViewDynamic:
		return TagDynamicView
	case workspace.ViewDeployment:
		return TagDeploymentView
	default:
		return TagFilteredView
	}
}

// viewContext is any one of the six view kinds (or a filtered view) pushed
// inside "views { }".
type viewContext struct {
	base
	tag  Tag
	view *workspace.View
}

func (c *viewContext) Tag() Tag                { return c.tag }
func (c *viewContext) AddInclude(expr string)   { c.view.AddInclude(expr) }
func (c *viewContext) AddExclude(expr string)   { c.view.AddExclude(expr) }
func (c *viewContext) BeginAnimationStep() Context {
	step := c.view.BeginAnimationStep()
	return &animationContext{base: base{}, view: c.view, step: step}
}

// isStatic reports whether this view kind supports include/exclude content
// lines (all but dynamic and filtered).
func (c *viewContext) isStatic() bool {
	switch c.tag {
	case TagSystemLandscapeView, TagSystemContextView, TagContainerView, TagComponentView, TagDeploymentView:
		return true
	default:
		return false
	}
}

// animationContext is "animation { }" nested inside a view.
type animationContext struct {
	base
	view *workspace.View
	step *workspace.AnimationStep
}

func (animationContext) Tag() Tag { return TagAnimation }

func (c *animationContext) addElement(id string)      { c.step.Elements = append(c.step.Elements, id) }
func (c *animationContext) addRelationship(id string) { c.step.Relationships = append(c.step.Relationships, id) }

// stylesContext is "styles { }".
type stylesContext struct{ base }

func (stylesContext) Tag() Tag { return TagStyles }

// elementStyleContext is "element "tag" { }" nested inside styles.
type elementStyleContext struct {
	base
	style *workspace.ElementStyle
}

func (elementStyleContext) Tag() Tag { return TagElementStyle }

// relationshipStyleContext is "relationship "tag" { }" nested inside styles.
type relationshipStyleContext struct {
	base
	style *workspace.RelationshipStyle
}

func (relationshipStyleContext) Tag() Tag { return TagRelationshipStyle }

// brandingContext is "branding { }".
type brandingContext struct{ base }

func (brandingContext) Tag() Tag { return TagBranding }

// terminologyContext is "terminology { }".
type terminologyContext struct{ base }

func (terminologyContext) Tag() Tag { return TagTerminology }

// configurationContext is "configuration { }".
type configurationContext struct{ base }

func (configurationContext) Tag() Tag { return TagConfiguration }

// usersContext is "users { }" nested inside configuration. Each line inside
// is "username role", a free-form key/value pair rather than a fixed
// keyword, so it implements keyValueContext like properties/perspectives.
type usersContext struct {
	base
	cfg *workspace.Configuration
}

func (usersContext) Tag() Tag { return TagUsers }

func (c *usersContext) SetKeyValue(username, role string) error {
	c.cfg.AddUser(username, role)
	return nil
}

// keyValueContext is implemented by any context whose nested lines are
// arbitrary "key value" pairs rather than a fixed keyword vocabulary:
// properties, perspectives, and the users block.
type keyValueContext interface {
	Context
	SetKeyValue(key, value string) error
}

// modelItemPropertiesContext is "properties { }" nested inside an element
// or relationship block, holding a reference back to whichever one opened
// it so SetKeyValue can write straight into its Properties map.
type modelItemPropertiesContext struct {
	base
	element      *workspace.Element
	relationship *workspace.Relationship
}

func (modelItemPropertiesContext) Tag() Tag { return TagModelItemProperties }

func (c *modelItemPropertiesContext) owner() (*workspace.Element, *workspace.Relationship) {
	return c.element, c.relationship
}

func (c *modelItemPropertiesContext) SetKeyValue(key, value string) error {
	if c.element != nil {
		c.element.Properties[key] = value
	} else if c.relationship != nil {
		c.relationship.Properties[key] = value
	}
	return nil
}

// perspectivesContext is "perspectives { }" nested inside an element or
// relationship block.
type perspectivesContext struct {
	base
	element      *workspace.Element
	relationship *workspace.Relationship
}

func (perspectivesContext) Tag() Tag { return TagPerspectives }

func (c *perspectivesContext) owner() (*workspace.Element, *workspace.Relationship) {
	return c.element, c.relationship
}

func (c *perspectivesContext) SetKeyValue(key, value string) error {
	if c.element != nil {
		c.element.Perspectives[key] = value
	} else if c.relationship != nil {
		c.relationship.Perspectives[key] = value
	}
	return nil
}

// multilineCommentContext represents a "/*" ... "*/" span. It is never
// pushed: parseLines tracks comment spans with a local flag, checked before
// tokenizing, so comment lines never reach the dispatcher or the context
// stack (the counterpart of StructurizrDslParser's dedicated
// MULTI_LINE_COMMENT_START/END_TOKEN handling).
type multilineCommentContext struct{ base }

func (multilineCommentContext) Tag() Tag { return TagMultilineComment }
