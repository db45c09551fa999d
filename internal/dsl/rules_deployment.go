package dsl

import "github.com/dsleng/structurizr-dsl/internal/workspace"

// deploymentRules covers deploymentEnvironment, deploymentNode (which can
// nest inside another deploymentNode), infrastructureNode, and the two
// instance kinds. Mirrors the Java chain's DeploymentEnvironmentDslContext/
// DeploymentNodeDslContext/InfrastructureNodeDslContext/
// SoftwareSystemInstanceDslContext/ContainerInstanceDslContext handling.
func deploymentRules() []dispatchRule {
	var rules []dispatchRule

	rules = append(rules, rule("deploymentEnvironment", []Tag{TagModel}, "deploymentenvironment", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		if !opensBlock {
			return newParseError(line, ErrUnexpectedTokens, "deploymentEnvironment requires a block")
		}
		name := arg(args, 0)
		p.ctx.push(&deploymentEnvironmentContext{base: base{line}, name: name, group: p.currentGroupPath()})
		return nil
	}))

	rules = append(rules, rule("deploymentNode", []Tag{TagDeploymentEnvironment, TagDeploymentNode, TagGroup}, "deploymentnode", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		name := arg(args, 0)
		description := arg(args, 1)
		technology := arg(args, 2)
		if id != "" {
			if err := p.symbols.bind(id, line); err != nil {
				return err
			}
		}
		el, err := p.ws.Model.AddElement(id, workspace.KindDeploymentNode, name, description, technology)
		if err != nil {
			return wrapError(line, err)
		}
		el.Group = p.currentGroupPath()
		el.Environment = p.currentEnvironment()
		if parent, ok := p.ctx.findTag(TagDeploymentNode); ok {
			el.ParentID = parent.(ModelItem).ElementID()
		}
		if opensBlock {
			p.ctx.push(&elementContext{base: base{line}, tag: TagDeploymentNode, el: el, group: el.Group})
		}
		return nil
	}))

	rules = append(rules, rule("infrastructureNode", []Tag{TagDeploymentNode}, "infrastructurenode", func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		name := arg(args, 0)
		description := arg(args, 1)
		technology := arg(args, 2)
		if id != "" {
			if err := p.symbols.bind(id, line); err != nil {
				return err
			}
		}
		el, err := p.ws.Model.AddElement(id, workspace.KindInfrastructureNode, name, description, technology)
		if err != nil {
			return wrapError(line, err)
		}
		el.Environment = p.currentEnvironment()
		if parent, ok := p.ctx.findTag(TagDeploymentNode); ok {
			el.ParentID = parent.(ModelItem).ElementID()
		}
		if opensBlock {
			p.ctx.push(&elementContext{base: base{line}, tag: TagInfrastructureNode, el: el})
		}
		return nil
	}))

	rules = append(rules,
		newInstanceRule("softwaresystem", workspace.KindSoftwareSystemInstance, TagSoftwareSystemInstance),
		newInstanceRule("container", workspace.KindContainerInstance, TagContainerInstance),
	)

	return rules
}

// newInstanceRule builds the rule for "softwareSystemInstance <ref>" or
// "containerInstance <ref>" lines, legal only inside a deploymentNode.
func newInstanceRule(keyword string, kind workspace.ElementKind, tag Tag) dispatchRule {
	fullKeyword := map[workspace.ElementKind]string{
		workspace.KindSoftwareSystemInstance: "softwaresysteminstance",
		workspace.KindContainerInstance:      "containerinstance",
	}[kind]
	_ = keyword
	return rule(fullKeyword, []Tag{TagDeploymentNode}, fullKeyword, func(p *Parser, id, keyword string, args []Token, line TokenLine, opensBlock bool) error {
		ref := arg(args, 0)
		if !p.symbols.lookup(ref) {
			return newParseError(line, ErrUnknownIdentifier, "instance refers to unknown identifier %q", ref)
		}
		if id != "" {
			if err := p.symbols.bind(id, line); err != nil {
				return err
			}
		}
		el, err := p.ws.Model.AddElement(id, kind, "", "", "")
		if err != nil {
			return wrapError(line, err)
		}
		el.InstanceOf = ref
		el.Environment = p.currentEnvironment()
		if parent, ok := p.ctx.findTag(TagDeploymentNode); ok {
			el.ParentID = parent.(ModelItem).ElementID()
		}
		if opensBlock {
			p.ctx.push(&elementContext{base: base{line}, tag: tag, el: el})
		}
		return nil
	})
}

// currentEnvironment returns the name of the innermost deploymentEnvironment
// context, or "" if none is open (shouldn't happen for deployment
// constructs, which are only reachable from inside one).
func (p *Parser) currentEnvironment() string {
	if c, ok := p.ctx.findTag(TagDeploymentEnvironment); ok {
		return c.(*deploymentEnvironmentContext).name
	}
	return ""
}
