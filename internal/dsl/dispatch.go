package dsl

import (
	"regexp"
	"strings"
)

var commentLinePattern = regexp.MustCompile(`^\s*(//|#)`)

const relationshipToken = "->"

// dispatchRule is one entry in the ordered rule table the dispatcher
// consults for every non-structural line. Replacing a chain of
// "instanceof ThisDslContext" checks (as StructurizrDslParser does, and as
// kryc's parser.go does with its BlockContextType switch) with an ordered
// table of small predicates is the capability-based REDESIGN FLAG called
// out in SPEC_FULL.md §3: a context only needs to satisfy the predicate,
// never belong to a specific concrete type.
type dispatchRule struct {
	name    string
	applies func(ctx Context, keyword string) bool
	handle  func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error
}

// dispatch processes one already-substituted, non-empty source line against
// the current context stack. It mirrors the ordering of
// StructurizrDslParser.parse's if/else-if chain: structural handling
// (closing brace) first, then identifier-binding extraction, then
// relationship shorthand, then the keyword rule table, then a final
// "unexpected tokens" failure.
func (p *Parser) dispatch(line TokenLine) error {
	if line.endsBlock() {
		_, err := p.ctx.pop(line)
		return err
	}

	tokens := line.Tokens
	var id string
	if line.isIdentifierBinding() {
		id = tokens[0].Text
		tokens = tokens[2:]
	}

	opensBlock := len(tokens) > 0 && tokens[len(tokens)-1].Text == "{"
	if opensBlock {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return newParseError(line, ErrUnexpectedTokens, "expected a keyword")
	}

	if handled, err := p.dispatchRelationship(line, id, tokens, opensBlock); handled {
		return err
	}
	if handled, err := p.dispatchDynamicViewContent(line, tokens); handled {
		return err
	}

	// Free-form "key value" blocks (properties/perspectives/users) don't
	// have a fixed keyword set, so they're matched by context capability
	// rather than by a literal keyword in the rule table.
	if kv, ok := p.ctx.current().(keyValueContext); ok {
		key := tokens[0].Text
		value := arg(tokens, 1)
		return kv.SetKeyValue(key, value)
	}

	keyword := strings.ToLower(tokens[0].Text)
	args := tokens[1:]
	current := p.ctx.current()

	for _, rule := range p.rules {
		if rule.applies(current, keyword) {
			if err := rule.handle(p, id, keyword, args, line, opensBlock); err != nil {
				return err
			}
			if opensBlock && p.ctx.current() == current {
				// A rule that opens a block is expected to push its own
				// context; if it didn't, the line's trailing "{" has
				// nothing to attach to.
				return newParseError(line, ErrUnexpectedTokens, "%q does not open a block", keyword)
			}
			return nil
		}
	}

	return newParseError(line, ErrUnexpectedTokens, "unexpected tokens for context %v: %q", tagOf(current), keyword)
}

func tagOf(ctx Context) interface{} {
	if ctx == nil {
		return "<top level>"
	}
	return ctx.Tag()
}

// isCommentLine reports whether raw is a full-line "//" or "#" comment,
// checked before tokenizing — StructurizrDslParser's COMMENT_PATTERN.
func isCommentLine(raw string) bool {
	return commentLinePattern.MatchString(raw)
}

// relationshipEligible reports whether ctx is one of the contexts that may
// contain a relationship statement: model, enterprise, or any model
// element/instance context. Mirrors the Java chain's repeated
// "inContext(Foo.class)" checks across ModelDslContext, EnterpriseDslContext,
// PersonDslContext, SoftwareSystemDslContext, ContainerDslContext,
// ComponentDslContext, DeploymentEnvironmentDslContext,
// DeploymentNodeDslContext, InfrastructureNodeDslContext,
// SoftwareSystemInstanceDslContext and ContainerInstanceDslContext.
func relationshipEligible(ctx Context) bool {
	if ctx == nil {
		return false
	}
	switch ctx.Tag() {
	case TagModel, TagEnterprise, TagPerson, TagSoftwareSystem, TagContainer, TagComponent,
		TagDeploymentEnvironment, TagDeploymentNode, TagInfrastructureNode,
		TagSoftwareSystemInstance, TagContainerInstance:
		return true
	default:
		return false
	}
}

// dispatchRelationship handles both explicit ("source -> destination ...")
// and implicit ("-> destination ..." meaning "this -> destination") forms.
// Returns handled=false when the line isn't a relationship at all, so the
// caller falls through to the keyword rule table.
func (p *Parser) dispatchRelationship(line TokenLine, id string, tokens []Token, opensBlock bool) (handled bool, err error) {
	current := p.ctx.current()
	if !relationshipEligible(current) {
		return false, nil
	}

	switch {
	case len(tokens) >= 2 && tokens[1].Text == relationshipToken:
		return true, p.handleExplicitRelationship(line, id, tokens, opensBlock)
	case len(tokens) >= 1 && tokens[0].Text == relationshipToken:
		return true, p.handleImplicitRelationship(line, id, tokens, opensBlock)
	default:
		return false, nil
	}
}

// dispatchDynamicViewContent handles "sourceRef -> destRef [\"description\"]"
// lines inside a dynamic view, which add content to the view (an ordering
// step referencing an existing or implied relationship) rather than
// creating a new model relationship.
func (p *Parser) dispatchDynamicViewContent(line TokenLine, tokens []Token) (handled bool, err error) {
	vc, ok := p.ctx.current().(*viewContext)
	if !ok || vc.tag != TagDynamicView {
		return false, nil
	}
	if len(tokens) < 3 || tokens[1].Text != relationshipToken {
		return false, nil
	}
	vc.view.Include = append(vc.view.Include, tokens[0].Text+" -> "+tokens[2].Text)
	return true, nil
}
