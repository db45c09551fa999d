package dsl

import "github.com/dsleng/structurizr-dsl/internal/workspace"

// viewRules covers "views { }" and everything nested inside it: the six
// view kinds, filtered views, their shared include/exclude/autoLayout/title
// content, and animation steps.
func viewRules() []dispatchRule {
	var rules []dispatchRule

	rules = append(rules, rule("views", []Tag{TagModel}, "views", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "views requires a block")
		}
		p.ctx.push(&viewsContext{base{line}})
		return nil
	}))
	// "views" can also legally appear as a sibling of "model" directly
	// inside "workspace { }", matching the original grammar's flexibility
	// about declaration order.
	rules = append(rules, rule("views (workspace)", []Tag{TagWorkspace}, "views", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "views requires a block")
		}
		p.ctx.push(&viewsContext{base{line}})
		return nil
	}))

	rules = append(rules,
		newViewRule("systemlandscape", workspace.ViewSystemLandscape, false),
		newViewRule("systemcontext", workspace.ViewSystemContext, true),
		newViewRule("container", workspace.ViewContainer, true),
		newViewRule("component", workspace.ViewComponent, true),
		newViewRule("dynamic", workspace.ViewDynamic, true),
		newViewRule("deployment", workspace.ViewDeployment, true),
	)

	rules = append(rules, rule("filtered", []Tag{TagViews}, "filtered", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "filtered requires a block")
		}
		baseKey := arg(args, 0)
		key := arg(args, 1)
		v := p.ws.Views.AddView(workspace.ViewFiltered, key)
		v.BaseViewKey = baseKey
		v.FilterMode = arg(args, 2)
		p.ctx.push(&viewContext{base: base{line}, tag: TagFilteredView, view: v})
		return nil
	}))

	viewTags := []Tag{
		TagSystemLandscapeView, TagSystemContextView, TagContainerView,
		TagComponentView, TagDynamicView, TagDeploymentView,
	}

	rules = append(rules, rule("include", viewTags, "include", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		vc := p.ctx.current().(*viewContext)
		vc.AddInclude(arg(args, 0))
		return nil
	}))
	rules = append(rules, rule("exclude", viewTags, "exclude", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		vc := p.ctx.current().(*viewContext)
		vc.AddExclude(arg(args, 0))
		return nil
	}))
	rules = append(rules, rule("autoLayout", viewTags, "autolayout", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		vc := p.ctx.current().(*viewContext)
		vc.view.AutoLayout = true
		return nil
	}))
	rules = append(rules, rule("title", viewTags, "title", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		vc := p.ctx.current().(*viewContext)
		vc.view.Title = arg(args, 0)
		return nil
	}))
	rules = append(rules, rule("description (view)", viewTags, "description", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		vc := p.ctx.current().(*viewContext)
		vc.view.Description = arg(args, 0)
		return nil
	}))

	rules = append(rules, rule("animation", viewTags, "animation", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "animation requires a block")
		}
		vc := p.ctx.current().(ViewWithAnimation)
		p.ctx.push(vc.BeginAnimationStep())
		return nil
	}))
	rules = append(rules, rule("animation include", []Tag{TagAnimation}, "include", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		ac := p.ctx.current().(*animationContext)
		ac.addElement(arg(args, 0))
		return nil
	}))

	rules = append(rules, rule("themes", []Tag{TagViews}, "themes", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		for _, a := range args {
			p.ws.Views.Themes = append(p.ws.Views.Themes, a.Text)
		}
		return nil
	}))

	// Dynamic views additionally accept relationship lines
	// ("sourceRef -> destRef \"description\"") as content. These are not
	// rules in this table: dispatchDynamicViewContent in dispatch.go matches
	// them before the table is consulted and records them on the view.
	// TagDynamicView is not relationshipEligible, so such a line never
	// creates a model relationship.

	return rules
}

// newViewRule builds the rule for one of the six "<kind> <scopeRef>? <key>
// { }" forms. scoped is true for every kind but systemLandscape, which has
// no software-system scope argument.
func newViewRule(keyword string, kind workspace.ViewKind, scoped bool) dispatchRule {
	return rule(keyword+"View", []Tag{TagViews}, keyword, func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "%s view requires a block", keyword)
		}
		var scopeRef, key string
		if scoped {
			scopeRef = arg(args, 0)
			key = arg(args, 1)
		} else {
			key = arg(args, 0)
		}
		v := p.ws.Views.AddView(kind, key)
		if kind == workspace.ViewDeployment {
			v.EnvironmentID = scopeRef
		} else {
			v.SoftwareSystemID = scopeRef
		}
		p.ctx.push(&viewContext{base: base{line}, tag: viewKindTag(kind), view: v})
		return nil
	})
}
