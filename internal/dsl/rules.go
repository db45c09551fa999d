package dsl

// buildRules assembles the full ordered dispatch table. Order matters only
// between rules that could both match the same (context, keyword) pair —
// in practice that never happens here since no two rules share both a
// keyword and a legal context, but the table is still built in the same order as
// StructurizrDslParser's if/else-if chain for ease of cross-referencing.
func buildRules() []dispatchRule {
	var rules []dispatchRule
	rules = append(rules, topLevelRules()...)
	rules = append(rules, modelItemRules()...)
	rules = append(rules, modelElementRules()...)
	rules = append(rules, deploymentRules()...)
	rules = append(rules, viewRules()...)
	rules = append(rules, styleRules()...)
	rules = append(rules, miscRules()...)
	return rules
}

// ctxTagIn reports whether ctx is non-nil and its tag is one of tags.
func ctxTagIn(ctx Context, tags ...Tag) bool {
	if ctx == nil {
		return false
	}
	for _, t := range tags {
		if ctx.Tag() == t {
			return true
		}
	}
	return false
}

// ctxNil reports whether there is no open context (only true before
// "workspace {" or after its closing brace).
func ctxNil(ctx Context) bool { return ctx == nil }

// rule builds a dispatchRule that fires when the current context has one of
// tags and the keyword matches exactly.
func rule(name string, tags []Tag, keyword string, handle func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error) dispatchRule {
	return dispatchRule{
		name: name,
		applies: func(ctx Context, kw string) bool {
			return kw == keyword && ctxTagIn(ctx, tags...)
		},
		handle: handle,
	}
}

// topRule builds a dispatchRule that fires only when there is no open
// context at all (the "workspace" keyword itself).
func topRule(name, keyword string, handle func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error) dispatchRule {
	return dispatchRule{
		name: name,
		applies: func(ctx Context, kw string) bool {
			return kw == keyword && ctxNil(ctx)
		},
		handle: handle,
	}
}

// arg returns the i'th argument's text, or "" if out of range — most
// production parsers treat a missing trailing description/technology
// argument as "not specified" rather than an error.
func arg(args []Token, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i].Text
}
