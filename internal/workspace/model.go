// Package workspace is the minimal domain-model façade the DSL engine
// drives. SPEC_FULL.md §1 treats the workspace model as an external
// collaborator the engine talks to through a narrow interface; since no such
// collaborator ships in this pack, this package provides a self-contained
// implementation sized to exactly what that façade (SPEC_FULL.md §6)
// requires — element/relationship storage, identifier scoping, views,
// styles, branding, terminology and configuration — with no rendering,
// layout or export behaviour.
package workspace

import (
	"fmt"
	"sort"
	"strings"
)

// ElementKind distinguishes the element types the DSL can create.
type ElementKind int

const (
	KindPerson ElementKind = iota
	KindSoftwareSystem
	KindContainer
	KindComponent
	KindDeploymentNode
	KindInfrastructureNode
	KindSoftwareSystemInstance
	KindContainerInstance
)

func (k ElementKind) String() string {
	switch k {
	case KindPerson:
		return "Person"
	case KindSoftwareSystem:
		return "Software System"
	case KindContainer:
		return "Container"
	case KindComponent:
		return "Component"
	case KindDeploymentNode:
		return "Deployment Node"
	case KindInfrastructureNode:
		return "Infrastructure Node"
	case KindSoftwareSystemInstance:
		return "Software System Instance"
	case KindContainerInstance:
		return "Container Instance"
	default:
		return "Element"
	}
}

// Element is any node the model can hold: a person, software system,
// container, component, deployment node, infrastructure node or instance.
// A single concrete type is enough here because the engine never inspects
// element-kind-specific fields beyond what this struct exposes — per-field
// production parsing (the exact set of legal properties on a "container"
// block) is explicitly out of scope (SPEC_FULL.md §1).
type Element struct {
	ID          string
	Kind        ElementKind
	Name        string
	Description string
	Technology  string
	Tags        []string
	URL         string
	Properties  map[string]string
	Perspectives map[string]string
	Group       string
	ParentID    string // container->softwaresystem, component->container, nodes nested under a deploymentNode
	InstanceOf  string // for *Instance elements, the ID of the deployable they instantiate

	// Environment is set on deployment nodes/infrastructure nodes/instances
	// to record which deploymentEnvironment block they were declared in.
	Environment string
}

// AddTag appends tag if it isn't already present.
func (e *Element) AddTag(tag string) {
	for _, t := range e.Tags {
		if t == tag {
			return
		}
	}
	e.Tags = append(e.Tags, tag)
}

// Relationship is a directed edge between two elements, identified by
// source/destination element IDs (never resolved to pointers by the engine —
// identifier resolution is the façade's job, per SPEC_FULL.md §6).
type Relationship struct {
	ID           string
	SourceID     string
	DestinationID string
	Description  string
	Technology   string
	Tags         []string
	Properties   map[string]string
	Perspectives map[string]string
	Implied      bool
}

// Model holds every element and relationship in the workspace, plus the
// identifier bookkeeping the DSL needs: explicit "id = keyword ..." bindings
// are recorded verbatim, and implicit (unbound) declarations receive a
// generated identifier so the engine and later references (by name) still
// have something to key off of.
type Model struct {
	Enterprise string

	elements      map[string]*Element
	relationships map[string]*Relationship
	order         []string // element IDs, insertion order — for deterministic output
	anonSeq       int

	ImpliedRelationships bool
}

func NewModel() *Model {
	return &Model{
		elements:      make(map[string]*Element),
		relationships: make(map[string]*Relationship),
	}
}

// nextAnonID produces a stable synthetic identifier for an element declared
// without an explicit "id = " binding, e.g. "person1", "softwaresystem2".
func (m *Model) nextAnonID(kind ElementKind) string {
	m.anonSeq++
	return fmt.Sprintf("%s%d", strings.ToLower(strings.ReplaceAll(kind.String(), " ", "")), m.anonSeq)
}

// AddElement registers a new element. If id is empty, an identifier is
// generated. Returns an error if id is already bound to something else —
// the engine is expected to have already validated uniqueness via its own
// symbol table, so this is a defensive backstop, not the primary check.
func (m *Model) AddElement(id string, kind ElementKind, name, description, technology string) (*Element, error) {
	if id == "" {
		id = m.nextAnonID(kind)
	}
	key := strings.ToLower(id)
	if _, exists := m.elements[key]; exists {
		return nil, fmt.Errorf("element id %q already exists", id)
	}
	el := &Element{
		ID:           id,
		Kind:         kind,
		Name:         name,
		Description:  description,
		Technology:   technology,
		Properties:   make(map[string]string),
		Perspectives: make(map[string]string),
	}
	m.elements[key] = el
	m.order = append(m.order, key)
	return el, nil
}

// Element looks up a previously added element by identifier (case
// insensitive, matching the DSL's identifier rules).
func (m *Model) Element(id string) (*Element, bool) {
	e, ok := m.elements[strings.ToLower(id)]
	return e, ok
}

// Elements returns every element in insertion order.
func (m *Model) Elements() []*Element {
	out := make([]*Element, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.elements[key])
	}
	return out
}

// AddRelationship registers a directed relationship between two element
// identifiers. The engine resolves "this" to the enclosing element's ID
// before calling here ("this" is never stored in the symbol table, only
// resolved at reference time).
func (m *Model) AddRelationship(id, sourceID, destinationID, description, technology string, implied bool) (*Relationship, error) {
	if id == "" {
		m.anonSeq++
		id = fmt.Sprintf("relationship%d", m.anonSeq)
	}
	rel := &Relationship{
		ID:            id,
		SourceID:      sourceID,
		DestinationID: destinationID,
		Description:   description,
		Technology:    technology,
		Properties:    make(map[string]string),
		Perspectives:  make(map[string]string),
		Implied:       implied,
	}
	m.relationships[strings.ToLower(id)] = rel
	return rel, nil
}

// Relationships returns every relationship, sorted by ID. Insertion order
// is not tracked (relationships don't participate in identifier scoping the
// way elements do), so the map walk is sorted by ID for determinism in tests.
func (m *Model) Relationships() []*Relationship {
	out := make([]*Relationship, 0, len(m.relationships))
	for _, r := range m.relationships {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ApplyImpliedRelationships walks the element parent chain for every
// existing relationship and adds implied relationships between ancestors
// that don't already have a direct one — the "!impliedRelationships true"
// behaviour. A minimal, deterministic implementation: for each relationship
// source->destination, add source.Parent->destination and
// source->destination.Parent (and so on up both chains) when not already
// present.
func (m *Model) ApplyImpliedRelationships() {
	existing := make(map[[2]string]bool)
	for _, r := range m.relationships {
		existing[[2]string{strings.ToLower(r.SourceID), strings.ToLower(r.DestinationID)}] = true
	}

	var toAdd [][2]string
	for _, r := range m.relationships {
		for _, src := range m.ancestorChain(r.SourceID) {
			for _, dst := range m.ancestorChain(r.DestinationID) {
				if src == strings.ToLower(r.SourceID) && dst == strings.ToLower(r.DestinationID) {
					continue
				}
				key := [2]string{src, dst}
				if !existing[key] {
					existing[key] = true
					toAdd = append(toAdd, key)
				}
			}
		}
	}
	for _, pair := range toAdd {
		srcEl, _ := m.Element(pair[0])
		dstEl, _ := m.Element(pair[1])
		if srcEl == nil || dstEl == nil {
			continue
		}
		_, _ = m.AddRelationship("", srcEl.ID, dstEl.ID, "", "", true)
	}
}

// ancestorChain returns id followed by each of its ancestors (via ParentID),
// lower-cased, innermost first.
func (m *Model) ancestorChain(id string) []string {
	var chain []string
	cur := strings.ToLower(id)
	seen := map[string]bool{}
	for cur != "" && !seen[cur] {
		chain = append(chain, cur)
		seen[cur] = true
		el, ok := m.elements[cur]
		if !ok || el.ParentID == "" {
			break
		}
		cur = strings.ToLower(el.ParentID)
	}
	return chain
}
