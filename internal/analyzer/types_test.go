package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_JSONShape(t *testing.T) {
	result := &Result{
		Functions: []Function{
			{
				Name:       "f",
				StartLine:  1,
				EndLine:    2,
				Parameters: []Parameter{{Name: "a", Type: TypeUnknown}},
				ReturnType: "int",
			},
		},
		Classes: []Class{
			{
				Name:       "C",
				Methods:    []Method{{Name: "m", Args: []string{"x"}}},
				Attributes: []string{"count"},
				Bases:      []string{"D"},
			},
		},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	expected := `{
		"functions": [
			{
				"name": "f",
				"start_line": 1,
				"end_line": 2,
				"parameters": [{"name": "a", "type": "unknown"}],
				"return_type": "int"
			}
		],
		"classes": [
			{
				"name": "C",
				"methods": [{"name": "m", "args": ["x"]}],
				"attributes": ["count"],
				"bases": ["D"]
			}
		]
	}`
	assert.JSONEq(t, expected, string(data))
}

func TestNewResult_EmptySequencesNotNull(t *testing.T) {
	data, err := json.Marshal(NewResult())
	require.NoError(t, err)
	assert.JSONEq(t, `{"functions": [], "classes": []}`, string(data))
}

func TestSyntaxError_Error(t *testing.T) {
	withPos := &SyntaxError{Line: 3, Column: 7, Msg: "invalid syntax"}
	assert.Equal(t, "syntax error at line 3, column 7: invalid syntax", withPos.Error())

	withoutPos := &SyntaxError{Msg: "invalid syntax"}
	assert.Equal(t, "syntax error: invalid syntax", withoutPos.Error())
}
