package extract

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"smell-bot/internal/model"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// declarationReader builds a fact from a declaration node. It returns false
// for nodes that should not be reported, such as anonymous callbacks.
type declarationReader func(node *tree_sitter.Node, source []byte) (*model.MethodFact, bool)

// TreeSitterExtractor finds method declarations with a tree-sitter grammar
type TreeSitterExtractor struct {
	language string
	parser   *tree_sitter.Parser
	kinds    map[string]bool
	read     declarationReader
	mu       sync.Mutex // Protects parser (tree-sitter parsers are not thread-safe)
}

func newTreeSitterExtractor(name string, language *tree_sitter.Language, read declarationReader, kinds ...string) (*TreeSitterExtractor, error) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set %s language: %w", name, err)
	}

	kindSet := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		kindSet[k] = true
	}

	return &TreeSitterExtractor{
		language: name,
		parser:   parser,
		kinds:    kindSet,
		read:     read,
	}, nil
}

func (e *TreeSitterExtractor) Language() string {
	return e.language
}

func (e *TreeSitterExtractor) Extract(ctx context.Context, path string, source []byte) ([]*model.MethodFact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tree := e.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source %s", e.language, path)
	}
	defer tree.Close()

	methods := make([]*model.MethodFact, 0)
	e.traverseNode(tree.RootNode(), source, func(node *tree_sitter.Node, m *model.MethodFact) {
		m.FilePath = path
		m.Language = e.language
		m.StartLine = int(node.StartPosition().Row) + 1
		m.EndLine = int(node.EndPosition().Row) + 1
		methods = append(methods, m)
	})

	return methods, nil
}

// Close releases the native parser
func (e *TreeSitterExtractor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.parser.Close()
}

func (e *TreeSitterExtractor) traverseNode(node *tree_sitter.Node, source []byte, emit func(*tree_sitter.Node, *model.MethodFact)) {
	if node == nil {
		return
	}

	if e.kinds[node.Kind()] {
		if m, ok := e.read(node, source); ok {
			emit(node, m)
		}
	}

	// Nested declarations (inner classes, closures) are reported too
	for i := uint(0); i < node.ChildCount(); i++ {
		e.traverseNode(node.Child(i), source, emit)
	}
}

func nodeText(node *tree_sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(source)
}

func fieldText(node *tree_sitter.Node, field string, source []byte) string {
	return nodeText(node.ChildByFieldName(field), source)
}

// blockBody returns the text of a body node without its outer braces
func blockBody(node *tree_sitter.Node, source []byte) string {
	text := nodeText(node, source)
	if len(text) >= 2 && strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text[1 : len(text)-1]
	}
	return text
}

// trimTypeAnnotation turns ": string" into "string"
func trimTypeAnnotation(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), ":"))
}

func namedChildren(node *tree_sitter.Node) []*tree_sitter.Node {
	if node == nil {
		return nil
	}
	children := make([]*tree_sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child != nil {
			children = append(children, child)
		}
	}
	return children
}

func children(node *tree_sitter.Node) []*tree_sitter.Node {
	if node == nil {
		return nil
	}
	all := make([]*tree_sitter.Node, 0, node.ChildCount())
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			all = append(all, child)
		}
	}
	return all
}

func isComment(node *tree_sitter.Node) bool {
	switch node.Kind() {
	case "comment", "line_comment", "block_comment":
		return true
	}
	return false
}
