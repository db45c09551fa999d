package dsl

import "strconv"

// styleRules covers "styles { }" and the nested "element"/"relationship"
// style blocks and their field lines. Converting each KRY-style property
// keyword into a struct field assignment generalizes the switch-based
// property conversion kryc's style_resolver.go uses for KRB properties
// (background_color, border_width, ...) to this DSL's element/relationship
// style fields.
func styleRules() []dispatchRule {
	var rules []dispatchRule

	rules = append(rules, rule("styles", []Tag{TagWorkspace, TagViews}, "styles", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "styles requires a block")
		}
		p.ctx.push(&stylesContext{base{line}})
		return nil
	}))

	rules = append(rules, rule("element", []Tag{TagStyles}, "element", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "element style requires a block")
		}
		tag := arg(args, 0)
		style := p.ws.Styles.ElementStyleFor(tag)
		p.ctx.push(&elementStyleContext{base: base{line}, style: style})
		return nil
	}))

	rules = append(rules, rule("relationship", []Tag{TagStyles}, "relationship", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "relationship style requires a block")
		}
		tag := arg(args, 0)
		style := p.ws.Styles.RelationshipStyleFor(tag)
		p.ctx.push(&relationshipStyleContext{base: base{line}, style: style})
		return nil
	}))

	for _, f := range elementStyleFields {
		rules = append(rules, rule("elementStyle."+f.keyword, []Tag{TagElementStyle}, f.keyword, f.apply))
	}
	for _, f := range relationshipStyleFields {
		rules = append(rules, rule("relationshipStyle."+f.keyword, []Tag{TagRelationshipStyle}, f.keyword, f.apply))
	}

	return rules
}

type styleField struct {
	keyword string
	apply   func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error
}

var elementStyleFields = []styleField{
	{"background", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		p.ctx.current().(*elementStyleContext).style.Background = arg(a, 0)
		return nil
	}},
	{"color", setElementColor},
	{"colour", setElementColor},
	{"stroke", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		p.ctx.current().(*elementStyleContext).style.Stroke = arg(a, 0)
		return nil
	}},
	{"shape", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		p.ctx.current().(*elementStyleContext).style.Shape = arg(a, 0)
		return nil
	}},
	{"border", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		p.ctx.current().(*elementStyleContext).style.Border = arg(a, 0)
		return nil
	}},
	{"opacity", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		n, err := parseStyleInt(a, l)
		if err != nil {
			return err
		}
		p.ctx.current().(*elementStyleContext).style.Opacity = n
		return nil
	}},
	{"width", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		n, err := parseStyleInt(a, l)
		if err != nil {
			return err
		}
		p.ctx.current().(*elementStyleContext).style.Width = n
		return nil
	}},
	{"height", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		n, err := parseStyleInt(a, l)
		if err != nil {
			return err
		}
		p.ctx.current().(*elementStyleContext).style.Height = n
		return nil
	}},
	{"fontsize", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		n, err := parseStyleInt(a, l)
		if err != nil {
			return err
		}
		p.ctx.current().(*elementStyleContext).style.FontSize = n
		return nil
	}},
	{"metadata", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		b := parseStyleBool(a)
		p.ctx.current().(*elementStyleContext).style.Metadata = &b
		return nil
	}},
	{"description", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		b := parseStyleBool(a)
		p.ctx.current().(*elementStyleContext).style.Description = &b
		return nil
	}},
	{"icon", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		if p.restricted {
			return nil
		}
		p.ctx.current().(*elementStyleContext).style.Icon = arg(a, 0)
		return nil
	}},
}

func setElementColor(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
	p.ctx.current().(*elementStyleContext).style.Color = arg(a, 0)
	return nil
}

var relationshipStyleFields = []styleField{
	{"thickness", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		n, err := parseStyleInt(a, l)
		if err != nil {
			return err
		}
		p.ctx.current().(*relationshipStyleContext).style.Thickness = n
		return nil
	}},
	{"color", setRelationshipColor},
	{"colour", setRelationshipColor},
	{"dashed", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		b := parseStyleBool(a)
		p.ctx.current().(*relationshipStyleContext).style.Dashed = &b
		return nil
	}},
	{"opacity", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		n, err := parseStyleInt(a, l)
		if err != nil {
			return err
		}
		p.ctx.current().(*relationshipStyleContext).style.Opacity = n
		return nil
	}},
	{"width", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		n, err := parseStyleInt(a, l)
		if err != nil {
			return err
		}
		p.ctx.current().(*relationshipStyleContext).style.Width = n
		return nil
	}},
	{"fontsize", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		n, err := parseStyleInt(a, l)
		if err != nil {
			return err
		}
		p.ctx.current().(*relationshipStyleContext).style.FontSize = n
		return nil
	}},
	{"position", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		n, err := parseStyleInt(a, l)
		if err != nil {
			return err
		}
		p.ctx.current().(*relationshipStyleContext).style.Position = n
		return nil
	}},
	{"routing", func(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
		p.ctx.current().(*relationshipStyleContext).style.Routing = arg(a, 0)
		return nil
	}},
}

func setRelationshipColor(p *Parser, id, kw string, a []Token, l TokenLine, ob bool) error {
	p.ctx.current().(*relationshipStyleContext).style.Color = arg(a, 0)
	return nil
}

func parseStyleInt(args []Token, line TokenLine) (int, error) {
	s := arg(args, 0)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, newParseError(line, ErrUnexpectedTokens, "expected an integer, got %q", s)
	}
	return n, nil
}

func parseStyleBool(args []Token) bool {
	s := arg(args, 0)
	return s == "true"
}
