package extract

import (
	"strings"

	"smell-bot/internal/model"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// NewJavaExtractor handles methods and constructors
func NewJavaExtractor() (*TreeSitterExtractor, error) {
	return newTreeSitterExtractor("java", tree_sitter.NewLanguage(java.Language()), readJavaMethod,
		"method_declaration", "constructor_declaration")
}

func readJavaMethod(node *tree_sitter.Node, source []byte) (*model.MethodFact, bool) {
	m := model.NewMethodFact(fieldText(node, "name", source))
	m.ReturnType = fieldText(node, "type", source)
	m.Body = blockBody(node.ChildByFieldName("body"), source)

	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			for _, mod := range children(child) {
				if strings.HasSuffix(mod.Kind(), "annotation") {
					continue
				}
				m.Keywords = append(m.Keywords, nodeText(mod, source))
			}
		case "throws":
			for _, exc := range namedChildren(child) {
				m.Exceptions = append(m.Exceptions, nodeText(exc, source))
			}
		}
	}

	for _, param := range namedChildren(node.ChildByFieldName("parameters")) {
		switch param.Kind() {
		case "formal_parameter":
			m.Parameters = append(m.Parameters, model.ParameterFact{
				Type: fieldText(param, "type", source),
				Name: fieldText(param, "name", source),
			})
		case "spread_parameter":
			p := model.ParameterFact{}
			for _, part := range namedChildren(param) {
				switch part.Kind() {
				case "modifiers":
				case "variable_declarator":
					p.Name = fieldText(part, "name", source)
				case "identifier":
					p.Name = nodeText(part, source)
				default:
					p.Type = nodeText(part, source) + "..."
				}
			}
			m.Parameters = append(m.Parameters, p)
		}
	}

	return m, true
}
