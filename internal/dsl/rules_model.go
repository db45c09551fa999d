package dsl

import (
	"strings"

	"github.com/dsleng/structurizr-dsl/internal/workspace"
)

// handleExplicitRelationship parses "sourceRef -> destRef ["description"
// ["technology"]] [{]" — legal inside model, enterprise, or any model
// element/instance context (see relationshipEligible).
//
// Unlike newInstanceRule's ref, source/dest are not checked against
// p.symbols here, so a relationship to an undeclared identifier is
// accepted at parse time rather than rejected as ErrUnknownIdentifier.
// Forward references (a relationship line preceding the element it names)
// are routine in real DSL files; per-reference binding validation at this
// layer is production-parser territory (SPEC_FULL.md §1).
func (p *Parser) handleExplicitRelationship(line TokenLine, id string, tokens []Token, opensBlock bool) error {
	if len(tokens) < 3 {
		return newParseError(line, ErrUnexpectedTokens, "relationship requires a source, '->' and a destination")
	}
	source, err := p.resolveRef(tokens[0].Text, line)
	if err != nil {
		return err
	}
	dest, err := p.resolveRef(tokens[2].Text, line)
	if err != nil {
		return err
	}
	description := arg(tokens, 3)
	technology := arg(tokens, 4)
	return p.finishRelationship(line, id, source, dest, description, technology, opensBlock)
}

// handleImplicitRelationship parses "-> destRef [\"description\" [\"technology\"]]
// [{]" where the source is always the enclosing element ("this").
func (p *Parser) handleImplicitRelationship(line TokenLine, id string, tokens []Token, opensBlock bool) error {
	if len(tokens) < 2 {
		return newParseError(line, ErrUnexpectedTokens, "relationship requires a destination after '->'")
	}
	source, err := p.thisID(line)
	if err != nil {
		return err
	}
	dest, err := p.resolveRef(tokens[1].Text, line)
	if err != nil {
		return err
	}
	description := arg(tokens, 2)
	technology := arg(tokens, 3)
	return p.finishRelationship(line, id, source, dest, description, technology, opensBlock)
}

func (p *Parser) finishRelationship(line TokenLine, id, source, dest, description, technology string, opensBlock bool) error {
	if id != "" {
		if err := p.symbols.bind(id, line); err != nil {
			return err
		}
	}
	rel, err := p.ws.Model.AddRelationship(id, source, dest, description, technology, false)
	if err != nil {
		return wrapError(line, err)
	}
	if opensBlock {
		p.ctx.push(&relationshipContext{base: base{line}, rel: rel})
	}
	return nil
}

// newElementRule builds a dispatch rule that creates an element of kind
// when keyword is seen in one of parentTags, optionally deriving ParentID
// from the innermost context carrying parentElementTag (e.g. a container's
// parent is the enclosing software system).
// noParentTag marks a newElementRule call where the created element has no
// natural parent-element lookup (person, software system).
const noParentTag Tag = -1

func newElementRule(keyword string, kind workspace.ElementKind, tag Tag, parentTags []Tag, parentElementTag Tag, useTechnology bool) dispatchRule {
	return rule("create "+keyword, parentTags, keyword, func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		name := arg(args, 0)
		description := arg(args, 1)
		technology := ""
		if useTechnology {
			technology = arg(args, 2)
		}
		if id != "" {
			if err := p.symbols.bind(id, line); err != nil {
				return err
			}
		}
		el, err := p.ws.Model.AddElement(id, kind, name, description, technology)
		if err != nil {
			return wrapError(line, err)
		}
		el.Group = p.currentGroupPath()
		if parentElementTag != noParentTag {
			if parentCtx, ok := p.ctx.findTag(parentElementTag); ok {
				if mi, ok := parentCtx.(ModelItem); ok {
					el.ParentID = mi.ElementID()
				}
			}
		}
		if opensBlock {
			p.ctx.push(&elementContext{base: base{line}, tag: tag, el: el, group: el.Group})
		}
		return nil
	})
}

// modelElementRules covers person/softwareSystem/container/component
// creation and the group/enterprise blocks they can nest inside.
func modelElementRules() []dispatchRule {
	var rules []dispatchRule

	rules = append(rules,
		newElementRule("person", workspace.KindPerson, TagPerson, []Tag{TagModel, TagEnterprise, TagGroup}, noParentTag, false),
		newElementRule("softwaresystem", workspace.KindSoftwareSystem, TagSoftwareSystem, []Tag{TagModel, TagEnterprise, TagGroup}, noParentTag, false),
		newElementRule("container", workspace.KindContainer, TagContainer, []Tag{TagSoftwareSystem, TagGroup}, TagSoftwareSystem, true),
		newElementRule("component", workspace.KindComponent, TagComponent, []Tag{TagContainer, TagGroup}, TagContainer, true),
	)

	rules = append(rules, rule("enterprise", []Tag{TagModel}, "enterprise", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		name := arg(args, 0)
		p.ws.Model.Enterprise = name
		if opensBlock {
			p.ctx.push(&enterpriseContext{base: base{line}, name: name})
		}
		return nil
	}))

	rules = append(rules, rule("group", []Tag{TagModel, TagEnterprise, TagSoftwareSystem, TagContainer}, "group", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "group requires a block")
		}
		gate, _ := p.ctx.current().(groupGate)
		if gate != nil && gate.hasOpenGroup() {
			return newParseError(line, ErrUnexpectedTokens, "group cannot nest directly inside another group")
		}
		name := arg(args, 0)
		parent := p.currentGroupPath()
		if gate != nil {
			gate.setGroupOpen(true)
		}
		p.ctx.push(&groupContext{base: base{line}, name: name, parentPath: parent, gate: gate})
		return nil
	}))

	return rules
}

// modelItemRules covers "url"/"tags"/"description"/"perspectives"/nested
// "properties" lines legal inside any ModelItem context (an element or
// relationship block).
func modelItemRules() []dispatchRule {
	modelItemTags := []Tag{
		TagPerson, TagSoftwareSystem, TagContainer, TagComponent,
		TagDeploymentNode, TagInfrastructureNode,
		TagSoftwareSystemInstance, TagContainerInstance, TagRelationship,
	}

	var rules []dispatchRule

	rules = append(rules, rule("url", modelItemTags, "url", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		el, rel := currentModelItem(p.ctx.current())
		url := arg(args, 0)
		if el != nil {
			el.URL = url
		} else if rel != nil {
			// Relationship has no dedicated URL field in this façade;
			// stored as a property instead, same storage the DSL uses
			// for anything without a first-class field.
			rel.Properties["url"] = url
		}
		return nil
	}))

	rules = append(rules, rule("tags", modelItemTags, "tags", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		el, rel := currentModelItem(p.ctx.current())
		for _, t := range args {
			for _, tag := range strings.Split(t.Text, ",") {
				tag = strings.TrimSpace(tag)
				if tag == "" {
					continue
				}
				if el != nil {
					el.AddTag(tag)
				} else if rel != nil {
					rel.Tags = append(rel.Tags, tag)
				}
			}
		}
		return nil
	}))

	rules = append(rules, rule("description", modelItemTags, "description", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		el, rel := currentModelItem(p.ctx.current())
		desc := arg(args, 0)
		if el != nil {
			el.Description = desc
		} else if rel != nil {
			rel.Description = desc
		}
		return nil
	}))

	rules = append(rules, rule("properties", modelItemTags, "properties", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "properties requires a block")
		}
		el, rel := currentModelItem(p.ctx.current())
		p.ctx.push(&modelItemPropertiesContext{base: base{line}, element: el, relationship: rel})
		return nil
	}))

	rules = append(rules, rule("perspectives", modelItemTags, "perspectives", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "perspectives requires a block")
		}
		el, rel := currentModelItem(p.ctx.current())
		p.ctx.push(&perspectivesContext{base: base{line}, element: el, relationship: rel})
		return nil
	}))

	// Lines inside a "properties { }" / "perspectives { }" sub-block are
	// "key value" pairs rather than keywords, so they never reach this
	// table: dispatch hands them to the keyValueContext on top of the stack.

	return rules
}

// currentModelItem returns the Element and/or Relationship backing the
// innermost ModelItem-capable context (nil, nil if none is open).
func currentModelItem(ctx Context) (*workspace.Element, *workspace.Relationship) {
	switch c := ctx.(type) {
	case *elementContext:
		return c.el, nil
	case *relationshipContext:
		return nil, c.rel
	case *modelItemPropertiesContext:
		return c.owner()
	case *perspectivesContext:
		return c.owner()
	default:
		return nil, nil
	}
}
