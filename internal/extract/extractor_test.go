package extract

import (
	"context"
	"testing"

	"smell-bot/internal/smells/bloaters"
	"smell-bot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, e *TreeSitterExtractor, path, source string) []*model.MethodFact {
	t.Helper()
	defer e.Close()
	methods, err := e.Extract(context.Background(), path, []byte(source))
	require.NoError(t, err)
	return methods
}

func paramNames(m *model.MethodFact) []string {
	names := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		names = append(names, p.Name)
	}
	return names
}

func TestJavaExtractor(t *testing.T) {
	source := `public class Account {
    public Account(String id) {
        this.id = id;
    }

    @Override
    public static int transfer(Account from, Account to, long amount) throws IOException, IllegalStateException {
        int x = 1;

        return x;
    }

    abstract void sum(int... values);
}
`
	e, err := NewJavaExtractor()
	require.NoError(t, err)
	methods := extract(t, e, "src/Account.java", source)
	require.Len(t, methods, 3)

	ctor := methods[0]
	assert.Equal(t, "Account", ctor.Name)
	assert.Equal(t, "", ctor.ReturnType)
	assert.Equal(t, []model.ParameterFact{{Type: "String", Name: "id"}}, ctor.Parameters)
	assert.Equal(t, []string{"public"}, ctor.Keywords)
	assert.Equal(t, 2, ctor.StartLine)
	assert.Equal(t, 4, ctor.EndLine)

	transfer := methods[1]
	assert.Equal(t, "transfer", transfer.Name)
	assert.Equal(t, "int", transfer.ReturnType)
	assert.Equal(t, []string{"public", "static"}, transfer.Keywords)
	assert.Equal(t, []string{"from", "to", "amount"}, paramNames(transfer))
	assert.Equal(t, "long", transfer.Parameters[2].Type)
	assert.Equal(t, []string{"IOException", "IllegalStateException"}, transfer.Exceptions)
	assert.Equal(t, 2, bloaters.EffectiveLineCount(transfer.Body))
	assert.NotContains(t, transfer.Body, "{")
	assert.Equal(t, "src/Account.java", transfer.FilePath)
	assert.Equal(t, "java", transfer.Language)
	assert.Empty(t, transfer.CodeSmells)

	sum := methods[2]
	assert.Equal(t, "sum", sum.Name)
	assert.Equal(t, "", sum.Body)
	require.Len(t, sum.Parameters, 1)
	assert.Equal(t, "values", sum.Parameters[0].Name)
	assert.Equal(t, "int...", sum.Parameters[0].Type)
}

func TestGoExtractor(t *testing.T) {
	source := `package demo

func Add(a, b int, names ...string) (int, error) {
	return a + b, nil
}

func (s *Server) Handle(ctx context.Context, req *Request) {
	s.count++
}
`
	e, err := NewGoExtractor()
	require.NoError(t, err)
	methods := extract(t, e, "demo.go", source)
	require.Len(t, methods, 2)

	add := methods[0]
	assert.Equal(t, "Add", add.Name)
	assert.Equal(t, "(int, error)", add.ReturnType)
	assert.Equal(t, []model.ParameterFact{
		{Type: "int", Name: "a"},
		{Type: "int", Name: "b"},
		{Type: "...string", Name: "names"},
	}, add.Parameters)
	assert.Equal(t, 3, add.StartLine)
	assert.Equal(t, 1, bloaters.EffectiveLineCount(add.Body))

	handle := methods[1]
	assert.Equal(t, "Handle", handle.Name)
	assert.Equal(t, []string{"ctx", "req"}, paramNames(handle))
	assert.Equal(t, "*Request", handle.Parameters[1].Type)
}

func TestPythonExtractor(t *testing.T) {
	source := `class Service:
    @staticmethod
    def build(a, b: int, c=1, *args, d: str = "x", **kwargs) -> Service:
        return None

    def run(self, job):
        pass

def helper(x, y):
    return x + y
`
	e, err := NewPythonExtractor()
	require.NoError(t, err)
	methods := extract(t, e, "service.py", source)
	require.Len(t, methods, 3)

	build := methods[0]
	assert.Equal(t, "build", build.Name)
	assert.Equal(t, "Service", build.ReturnType)
	assert.Equal(t, []string{"a", "b", "c", "*args", "d", "**kwargs"}, paramNames(build))
	assert.Equal(t, "int", build.Parameters[1].Type)
	assert.Contains(t, build.Keywords, "@staticmethod")

	run := methods[1]
	assert.Equal(t, "run", run.Name)
	assert.Equal(t, []string{"job"}, paramNames(run))

	helper := methods[2]
	assert.Equal(t, "helper", helper.Name)
	assert.Equal(t, []string{"x", "y"}, paramNames(helper))
	assert.Equal(t, 1, bloaters.EffectiveLineCount(helper.Body))
}

func TestJavaScriptExtractor(t *testing.T) {
	source := `function greet(name, greeting = "hi", ...rest) {
  return greeting + name;
}

const add = (a, b) => a + b;

class Calc {
  static async compute(x) {
    return x;
  }
}

[1, 2].map(x => x * 2);
`
	e, err := NewJavaScriptExtractor()
	require.NoError(t, err)
	methods := extract(t, e, "calc.js", source)
	require.Len(t, methods, 3)

	assert.Equal(t, "greet", methods[0].Name)
	assert.Equal(t, []string{"name", "greeting", "...rest"}, paramNames(methods[0]))

	assert.Equal(t, "add", methods[1].Name)
	assert.Equal(t, []string{"a", "b"}, paramNames(methods[1]))
	assert.Equal(t, "a + b", methods[1].Body)

	assert.Equal(t, "compute", methods[2].Name)
	assert.Equal(t, []string{"static", "async"}, methods[2].Keywords)
}

func TestTypeScriptExtractor(t *testing.T) {
	source := `export function total(items: Item[], discount?: number): number {
  return 0;
}
`
	e, err := NewTypeScriptExtractor()
	require.NoError(t, err)
	methods := extract(t, e, "total.ts", source)
	require.Len(t, methods, 1)

	total := methods[0]
	assert.Equal(t, "total", total.Name)
	assert.Equal(t, "number", total.ReturnType)
	assert.Equal(t, []model.ParameterFact{
		{Type: "Item[]", Name: "items"},
		{Type: "number", Name: "discount"},
	}, total.Parameters)
}

func TestExtract_CancelledContext(t *testing.T) {
	e, err := NewGoExtractor()
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = e.Extract(ctx, "x.go", []byte("package x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry(t *testing.T) {
	registry, err := NewDefaultRegistry()
	require.NoError(t, err)
	defer registry.Close()

	assert.Equal(t, []string{"go", "java", "javascript", "python", "typescript"}, registry.SupportedLanguages())

	e, ok := registry.ForPath("src/Main.JAVA")
	require.True(t, ok)
	assert.Equal(t, "java", e.Language())

	e, ok = registry.ForPath("web/app.mjs")
	require.True(t, ok)
	assert.Equal(t, "javascript", e.Language())

	_, ok = registry.ForPath("README.md")
	assert.False(t, ok)

	_, err = registry.Get("cobol")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	e, err = registry.Get("Python")
	require.NoError(t, err)
	assert.Equal(t, "python", e.Language())
}

func TestRegistry_EnabledLanguages(t *testing.T) {
	registry, err := NewDefaultRegistry("go", "java")
	require.NoError(t, err)
	defer registry.Close()

	assert.Equal(t, []string{"go", "java"}, registry.SupportedLanguages())
	_, ok := registry.ForPath("main.py")
	assert.False(t, ok)
}
