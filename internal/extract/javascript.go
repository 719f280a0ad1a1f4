package extract

import (
	"smell-bot/internal/model"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var ecmaScriptKinds = []string{
	"function_declaration",
	"generator_function_declaration",
	"method_definition",
	"function_expression",
	"arrow_function",
}

var ecmaScriptKeywords = map[string]bool{
	"async":                  true,
	"static":                 true,
	"get":                    true,
	"set":                    true,
	"abstract":               true,
	"readonly":               true,
	"accessibility_modifier": true,
	"override_modifier":      true,
}

func NewJavaScriptExtractor() (*TreeSitterExtractor, error) {
	return newTreeSitterExtractor("javascript", tree_sitter.NewLanguage(javascript.Language()), readEcmaScriptFunction,
		ecmaScriptKinds...)
}

func NewTypeScriptExtractor() (*TreeSitterExtractor, error) {
	return newTreeSitterExtractor("typescript", tree_sitter.NewLanguage(typescript.LanguageTypescript()), readEcmaScriptFunction,
		ecmaScriptKinds...)
}

// readEcmaScriptFunction serves both grammars; TypeScript only adds type
// annotations and modifiers on top of the JavaScript node kinds.
func readEcmaScriptFunction(node *tree_sitter.Node, source []byte) (*model.MethodFact, bool) {
	name := fieldText(node, "name", source)
	if name == "" {
		name = bindingName(node, source)
	}
	if name == "" {
		return nil, false
	}

	m := model.NewMethodFact(name)
	m.ReturnType = trimTypeAnnotation(fieldText(node, "return_type", source))

	body := node.ChildByFieldName("body")
	if body != nil && body.Kind() == "statement_block" {
		m.Body = blockBody(body, source)
	} else {
		m.Body = nodeText(body, source)
	}

	for _, child := range children(node) {
		if ecmaScriptKeywords[child.Kind()] {
			m.Keywords = append(m.Keywords, nodeText(child, source))
		}
	}

	if single := node.ChildByFieldName("parameter"); single != nil {
		m.Parameters = append(m.Parameters, model.ParameterFact{Name: nodeText(single, source)})
		return m, true
	}

	for _, param := range namedChildren(node.ChildByFieldName("parameters")) {
		if isComment(param) {
			continue
		}
		p := model.ParameterFact{}
		switch param.Kind() {
		case "required_parameter", "optional_parameter":
			p.Name = fieldText(param, "pattern", source)
			p.Type = trimTypeAnnotation(fieldText(param, "type", source))
		case "assignment_pattern":
			p.Name = fieldText(param, "left", source)
		default:
			p.Name = nodeText(param, source)
		}
		m.Parameters = append(m.Parameters, p)
	}

	return m, true
}

// bindingName names function expressions by the variable, property or
// field they are assigned to
func bindingName(node *tree_sitter.Node, source []byte) string {
	parent := node.Parent()
	if parent == nil {
		return ""
	}
	switch parent.Kind() {
	case "variable_declarator", "public_field_definition", "field_definition":
		if n := fieldText(parent, "name", source); n != "" {
			return n
		}
		return fieldText(parent, "property", source)
	case "pair":
		return fieldText(parent, "key", source)
	case "assignment_expression":
		return fieldText(parent, "left", source)
	}
	return ""
}
