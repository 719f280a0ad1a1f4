package extract

import (
	"smell-bot/internal/model"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// NewGoExtractor handles functions and methods. The receiver is not
// counted as a parameter.
func NewGoExtractor() (*TreeSitterExtractor, error) {
	return newTreeSitterExtractor("go", tree_sitter.NewLanguage(golang.Language()), readGoFunction,
		"function_declaration", "method_declaration")
}

func readGoFunction(node *tree_sitter.Node, source []byte) (*model.MethodFact, bool) {
	m := model.NewMethodFact(fieldText(node, "name", source))
	m.ReturnType = fieldText(node, "result", source)
	m.Body = blockBody(node.ChildByFieldName("body"), source)

	for _, decl := range namedChildren(node.ChildByFieldName("parameters")) {
		typ := fieldText(decl, "type", source)
		switch decl.Kind() {
		case "parameter_declaration":
			names := 0
			for _, part := range namedChildren(decl) {
				if part.Kind() == "identifier" {
					m.Parameters = append(m.Parameters, model.ParameterFact{Type: typ, Name: nodeText(part, source)})
					names++
				}
			}
			// func(int, string) declares unnamed parameters
			if names == 0 {
				m.Parameters = append(m.Parameters, model.ParameterFact{Type: typ})
			}
		case "variadic_parameter_declaration":
			m.Parameters = append(m.Parameters, model.ParameterFact{
				Type: "..." + typ,
				Name: fieldText(decl, "name", source),
			})
		}
	}

	return m, true
}
