package extract

import (
	"smell-bot/internal/model"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// NewPythonExtractor handles function definitions. For functions defined
// directly in a class body a leading self or cls parameter is not counted.
func NewPythonExtractor() (*TreeSitterExtractor, error) {
	return newTreeSitterExtractor("python", tree_sitter.NewLanguage(python.Language()), readPythonFunction,
		"function_definition")
}

func readPythonFunction(node *tree_sitter.Node, source []byte) (*model.MethodFact, bool) {
	m := model.NewMethodFact(fieldText(node, "name", source))
	m.ReturnType = fieldText(node, "return_type", source)
	m.Body = nodeText(node.ChildByFieldName("body"), source)

	for _, child := range children(node) {
		if child.Kind() == "async" {
			m.Keywords = append(m.Keywords, "async")
		}
	}
	if parent := node.Parent(); parent != nil && parent.Kind() == "decorated_definition" {
		for _, d := range namedChildren(parent) {
			if d.Kind() == "decorator" {
				m.Keywords = append(m.Keywords, nodeText(d, source))
			}
		}
	}

	for _, param := range namedChildren(node.ChildByFieldName("parameters")) {
		p := model.ParameterFact{}
		switch param.Kind() {
		case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
			p.Name = nodeText(param, source)
		case "default_parameter":
			p.Name = fieldText(param, "name", source)
		case "typed_default_parameter":
			p.Name = fieldText(param, "name", source)
			p.Type = fieldText(param, "type", source)
		case "typed_parameter":
			if parts := namedChildren(param); len(parts) > 0 {
				p.Name = nodeText(parts[0], source)
			}
			p.Type = fieldText(param, "type", source)
		default:
			// positional and keyword separators, comments
			continue
		}
		m.Parameters = append(m.Parameters, p)
	}

	if isClassMember(node) && len(m.Parameters) > 0 {
		if first := m.Parameters[0].Name; first == "self" || first == "cls" {
			m.Parameters = m.Parameters[1:]
		}
	}

	return m, true
}

func isClassMember(node *tree_sitter.Node) bool {
	parent := node.Parent()
	if parent != nil && parent.Kind() == "decorated_definition" {
		parent = parent.Parent()
	}
	if parent == nil || parent.Kind() != "block" {
		return false
	}
	owner := parent.Parent()
	return owner != nil && owner.Kind() == "class_definition"
}
