package dsl

import (
	"strings"

	"github.com/dsleng/structurizr-dsl/internal/workspace"
)

// topLevelRules covers the two structural pushes that bracket everything
// else: "workspace { }" at the very top, and "model { }" directly inside it.
func topLevelRules() []dispatchRule {
	var rules []dispatchRule

	rules = append(rules, topRule("workspace", "workspace", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "workspace requires a block")
		}
		p.ws.Name = arg(args, 0)
		p.ws.Description = arg(args, 1)
		p.ctx.push(&workspaceContext{base{line}})
		return nil
	}))

	rules = append(rules, rule("model", []Tag{TagWorkspace}, "model", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "model requires a block")
		}
		p.ctx.push(&modelContext{base: base{line}})
		return nil
	}))

	return rules
}

// miscRules covers branding, terminology, configuration/users,
// !impliedRelationships, !constant, !include and the opaque !docs/!adrs
// handlers.
func miscRules() []dispatchRule {
	var rules []dispatchRule

	rules = append(rules, rule("branding", []Tag{TagWorkspace}, "branding", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "branding requires a block")
		}
		p.ctx.push(&brandingContext{base{line}})
		return nil
	}))
	rules = append(rules, rule("branding.logo", []Tag{TagBranding}, "logo", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if p.restricted {
			return nil
		}
		p.ws.Branding.Logo = arg(args, 0)
		return nil
	}))
	rules = append(rules, rule("branding.font", []Tag{TagBranding}, "font", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		p.ws.Branding.FontName = arg(args, 0)
		p.ws.Branding.FontURL = arg(args, 1)
		return nil
	}))

	rules = append(rules, rule("terminology", []Tag{TagWorkspace}, "terminology", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "terminology requires a block")
		}
		p.ctx.push(&terminologyContext{base{line}})
		return nil
	}))
	for kw, setter := range terminologyFields() {
		kwCopy, setterCopy := kw, setter
		rules = append(rules, rule("terminology."+kwCopy, []Tag{TagTerminology}, kwCopy, func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
			setterCopy(p.ws.Terminology, arg(args, 0))
			return nil
		}))
	}

	rules = append(rules, rule("configuration", []Tag{TagWorkspace}, "configuration", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "configuration requires a block")
		}
		p.ctx.push(&configurationContext{base{line}})
		return nil
	}))
	rules = append(rules, rule("configuration.visibility", []Tag{TagConfiguration}, "visibility", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		p.ws.Configuration.Visibility = arg(args, 0)
		return nil
	}))
	rules = append(rules, rule("users", []Tag{TagConfiguration}, "users", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "users requires a block")
		}
		p.ctx.push(&usersContext{base: base{line}, cfg: p.ws.Configuration})
		return nil
	}))

	rules = append(rules, rule("!impliedRelationships", []Tag{TagModel, TagWorkspace}, "!impliedrelationships", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		p.ws.SetImpliedRelationships(strings.EqualFold(arg(args, 0), "true"))
		return nil
	}))

	rules = append(rules, dispatchRule{
		name: "!constant",
		applies: func(ctx Context, kw string) bool { return kw == "!constant" },
		handle: func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
			name := arg(args, 0)
			value := arg(args, 1)
			p.symbols.setConstant(name, value, line)
			return nil
		},
	})

	rules = append(rules, dispatchRule{
		name:    "!include",
		applies: func(ctx Context, kw string) bool { return kw == "!include" },
		handle:  (*Parser).handleInclude,
	})

	rules = append(rules, dispatchRule{
		name:    "!docs",
		applies: func(ctx Context, kw string) bool { return kw == "!docs" },
		handle: func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
			// Documentation import (markdown files / ADRs) is handled by
			// an opaque production-side handler in the full system; this
			// engine only needs to recognize and no-op it, including in
			// restricted mode where it is always a no-op.
			return nil
		},
	})
	rules = append(rules, dispatchRule{
		name:    "!adrs",
		applies: func(ctx Context, kw string) bool { return kw == "!adrs" },
		handle: func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
			return nil
		},
	})

	return rules
}

// terminologyFields maps each terminology sub-keyword to the Terminology
// field it sets — eight forms: enterprise, person, softwareSystem,
// container, component, deploymentNode, infrastructureNode, relationship.
func terminologyFields() map[string]func(t *workspace.Terminology, value string) {
	return map[string]func(t *workspace.Terminology, value string){
		"enterprise":         func(t *workspace.Terminology, v string) { t.Enterprise = v },
		"person":             func(t *workspace.Terminology, v string) { t.Person = v },
		"softwaresystem":     func(t *workspace.Terminology, v string) { t.SoftwareSystem = v },
		"container":          func(t *workspace.Terminology, v string) { t.Container = v },
		"component":          func(t *workspace.Terminology, v string) { t.Component = v },
		"deploymentnode":     func(t *workspace.Terminology, v string) { t.DeploymentNode = v },
		"infrastructurenode": func(t *workspace.Terminology, v string) { t.InfrastructureNode = v },
		"relationship":       func(t *workspace.Terminology, v string) { t.Relationship = v },
	}
}
