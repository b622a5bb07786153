package analyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJavaScriptAnalyzer_Analyze_SimpleFunction(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	source := `function add(a, b) {
  return a + b;
}`
	result, err := a.Analyze(source)
	require.NoError(t, err)
	require.Len(t, result.Functions, 1)
	assert.Empty(t, result.Classes)

	fn := result.Functions[0]
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, 1, fn.StartLine)
	assert.Equal(t, 3, fn.EndLine)
	assert.Equal(t, TypeUnknown, fn.ReturnType)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, Parameter{Name: "a", Type: TypeUnknown}, fn.Parameters[0])
	assert.Equal(t, Parameter{Name: "b", Type: TypeUnknown}, fn.Parameters[1])
}

func TestJavaScriptAnalyzer_Analyze_ParameterShapes(t *testing.T) {
	a := NewJavaScriptAnalyzer()

	tests := []struct {
		name   string
		source string
		params []string
	}{
		{"defaults stripped", "function f(a = 1, b) {}", []string{"a", "b"}},
		{"rest parameter", "function f(first, ...rest) {}", []string{"first", "rest"}},
		{"call in default", "function f(a = g(1, 2), b) {}", []string{"a", "b"}},
		{"destructured object", "function f({x, y}, z) {}", []string{"x", "z"}},
		{"no parameters", "function f() {}", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.Analyze(tt.source)
			require.NoError(t, err)
			require.Len(t, result.Functions, 1)

			names := make([]string, 0)
			for _, p := range result.Functions[0].Parameters {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.params, names)
		})
	}
}

func TestJavaScriptAnalyzer_Analyze_AsyncFunction(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	source := `async function load(url) {
  const res = await fetch(url);
  return res.json();
}`
	result, err := a.Analyze(source)
	require.NoError(t, err)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, "load", result.Functions[0].Name)
	assert.Equal(t, 4, result.Functions[0].EndLine)
}

func TestJavaScriptAnalyzer_Analyze_BracesInStringsAndComments(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	source := "function tricky(s) {\n" +
		"  const t = \"}\";\n" +
		"  // stray } in a comment\n" +
		"  /* and { another } */\n" +
		"  const u = `template ${ {a: 1} } with }`;\n" +
		"  return s;\n" +
		"}"
	result, err := a.Analyze(source)
	require.NoError(t, err)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, 1, result.Functions[0].StartLine)
	assert.Equal(t, 7, result.Functions[0].EndLine)
}

func TestJavaScriptAnalyzer_Analyze_KeywordInStringNotMatched(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	result, err := a.Analyze(`const s = "function fake(a) {";`)
	require.NoError(t, err)
	assert.Empty(t, result.Functions)
	assert.Empty(t, result.Classes)
}

func TestJavaScriptAnalyzer_Analyze_NestedFunctionNotSurfaced(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	source := `function outer() {
  function inner() {}
  return inner;
}`
	result, err := a.Analyze(source)
	require.NoError(t, err)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, "outer", result.Functions[0].Name)
	assert.Equal(t, 4, result.Functions[0].EndLine)
}

func TestJavaScriptAnalyzer_Analyze_ClassOneLiner(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	result, err := a.Analyze(`class C extends D { m(x) { return x; } }`)
	require.NoError(t, err)
	assert.Empty(t, result.Functions)
	require.Len(t, result.Classes, 1)

	cls := result.Classes[0]
	assert.Equal(t, "C", cls.Name)
	assert.Equal(t, []string{"D"}, cls.Bases)
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, Method{Name: "m", Args: []string{"x"}}, cls.Methods[0])
	assert.Empty(t, cls.Attributes)
}

func TestJavaScriptAnalyzer_Analyze_ClassMembers(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	source := `class Queue extends Base {
  limit = 10;

  constructor(size) {
    this.size = size;
    this.items = [];
  }

  push(item) {
    this.items.push(item);
    this.head = item;
  }

  static create(opts) {
    return new Queue(opts.size);
  }

  async drain() {
    this.head = null;
  }
}`
	result, err := a.Analyze(source)
	require.NoError(t, err)
	require.Len(t, result.Classes, 1)

	cls := result.Classes[0]
	assert.Equal(t, "Queue", cls.Name)
	assert.Equal(t, []string{"Base"}, cls.Bases)

	require.Len(t, cls.Methods, 4)
	assert.Equal(t, Method{Name: "constructor", Args: []string{"size"}}, cls.Methods[0])
	assert.Equal(t, Method{Name: "push", Args: []string{"item"}}, cls.Methods[1])
	assert.Equal(t, Method{Name: "create", Args: []string{"opts"}}, cls.Methods[2])
	assert.Equal(t, Method{Name: "drain", Args: []string{}}, cls.Methods[3])

	// Field initializer first, then this.* assignments in method order,
	// duplicates suppressed.
	assert.Equal(t, []string{"limit", "size", "items", "head"}, cls.Attributes)
}

func TestJavaScriptAnalyzer_Analyze_FieldInitializerWithCall(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	source := `class C {
  state = makeState(1)

  config = {
    deep: true,
  };

  m(x) {
    return x;
  }
}`
	result, err := a.Analyze(source)
	require.NoError(t, err)
	require.Len(t, result.Classes, 1)

	// The initializer expressions must not be scanned as declarations:
	// makeState(1) is a call, not a method.
	cls := result.Classes[0]
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, Method{Name: "m", Args: []string{"x"}}, cls.Methods[0])
	assert.Equal(t, []string{"state", "config"}, cls.Attributes)
}

func TestJavaScriptAnalyzer_Analyze_RegexLiteralBraces(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	source := `const re = /}{+/;
const cls = /[/{]/g;

function f(a) {
  return re.test(a);
}`
	result, err := a.Analyze(source)
	require.NoError(t, err)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, "f", result.Functions[0].Name)
	assert.Equal(t, 4, result.Functions[0].StartLine)
	assert.Equal(t, 6, result.Functions[0].EndLine)
}

func TestJavaScriptAnalyzer_Analyze_ClassWithoutExtends(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	result, err := a.Analyze("class Plain {\n  run() {}\n}")
	require.NoError(t, err)
	require.Len(t, result.Classes, 1)
	assert.Equal(t, []string{}, result.Classes[0].Bases)
}

func TestJavaScriptAnalyzer_Analyze_NoDeclarations(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	source := `const x = 5;
let y = x * 2;
console.log(y);`
	result, err := a.Analyze(source)
	require.NoError(t, err)
	assert.Empty(t, result.Functions)
	assert.Empty(t, result.Classes)
	assert.NotNil(t, result.Functions)
	assert.NotNil(t, result.Classes)
}

func TestJavaScriptAnalyzer_Analyze_EmptySource(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	result, err := a.Analyze("")
	require.NoError(t, err)
	assert.Empty(t, result.Functions)
	assert.Empty(t, result.Classes)
}

func TestJavaScriptAnalyzer_Analyze_UnbalancedBraces(t *testing.T) {
	a := NewJavaScriptAnalyzer()

	result, err := a.Analyze("function broken() {\n  return 1;\n")
	require.Error(t, err)
	assert.Nil(t, result)

	var internalErr *InternalError
	require.True(t, errors.As(err, &internalErr))
}

func TestJavaScriptAnalyzer_Analyze_Idempotent(t *testing.T) {
	a := NewJavaScriptAnalyzer()
	source := `class C extends D { m(x) { this.last = x; } }
function f(a) { return a; }`
	first, err := a.Analyze(source)
	require.NoError(t, err)
	second, err := a.Analyze(source)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
