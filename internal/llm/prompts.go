package llm

import (
	"fmt"
	"strings"

	"github.com/JuanJml01/Lector/internal/analyzer"
)

// ExplainSystemPrompt grounds the model when a prompt is accompanied by a
// file's structural analysis.
const ExplainSystemPrompt = `You are a code analysis assistant. You are given the structural inventory of a source file (its functions and classes with line spans, parameters and attributes) followed by the file content. Answer questions about the file using the inventory as your index into the code. Be concise and reference definitions by name and line span.`

// BuildExplainPrompt renders an analysis result plus the source into prompt
// context for a question about the file.
func BuildExplainPrompt(path, source string, result *analyzer.Result, question string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "File: %s\n\n", path)

	b.WriteString("Functions:\n")
	if len(result.Functions) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, fn := range result.Functions {
		params := make([]string, 0, len(fn.Parameters))
		for _, p := range fn.Parameters {
			params = append(params, fmt.Sprintf("%s (%s)", p.Name, p.Type))
		}
		fmt.Fprintf(&b, "  %s(%s) -> %s [lines %d-%d]\n",
			fn.Name, strings.Join(params, ", "), fn.ReturnType, fn.StartLine, fn.EndLine)
	}

	b.WriteString("\nClasses:\n")
	if len(result.Classes) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, cls := range result.Classes {
		fmt.Fprintf(&b, "  %s", cls.Name)
		if len(cls.Bases) > 0 {
			fmt.Fprintf(&b, " extends %s", strings.Join(cls.Bases, ", "))
		}
		b.WriteString("\n")
		for _, m := range cls.Methods {
			fmt.Fprintf(&b, "    method %s(%s)\n", m.Name, strings.Join(m.Args, ", "))
		}
		if len(cls.Attributes) > 0 {
			fmt.Fprintf(&b, "    attributes: %s\n", strings.Join(cls.Attributes, ", "))
		}
	}

	fmt.Fprintf(&b, "\nSource:\n```\n%s\n```\n\nQuestion: %s\n", source, question)

	return b.String()
}
