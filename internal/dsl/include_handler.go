package dsl

// handleInclude implements "!include \"path\"": splices the named file's
// lines into the current parse, sharing this parser's context stack and
// symbol tables — unlike kryc's preprocessor.go, which textually splices
// include content before any parsing begins, this recurses into the same
// line-by-line dispatch loop the top-level parse uses, matching
// StructurizrDslParser's parse(context.getLines(), context.getFile())
// recursion. In restricted mode this is a silent no-op (SPEC_FULL.md §6).
func (p *Parser) handleInclude(id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
	if p.restricted {
		return nil
	}
	raw := arg(args, 0)
	if raw == "" {
		return newParseError(line, ErrUnexpectedTokens, "!include requires a path")
	}

	path := p.includes.resolve(raw)
	leave, err := p.includes.enter(path, line)
	if err != nil {
		return err
	}
	defer leave()

	source, err := readFile(path)
	if err != nil {
		return wrapError(line, err)
	}
	if err := p.parseLines(readLines(source)); err != nil {
		return err
	}
	return nil
}
