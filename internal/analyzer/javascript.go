package analyzer

import (
	"regexp"
	"strings"
)

// javascriptAnalyzer extracts definitions from JavaScript source without a
// parse tree: declaration keywords are matched lexically and line spans come
// from brace-depth tracking. Strings, comments and template literals are
// masked out first so their braces never reach the counter.
type javascriptAnalyzer struct{}

// NewJavaScriptAnalyzer creates the scan-based JavaScript analyzer.
func NewJavaScriptAnalyzer() Analyzer {
	return &javascriptAnalyzer{}
}

var (
	jsFunctionRe = regexp.MustCompile(`^(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(`)
	jsClassRe    = regexp.MustCompile(`^class\s+([A-Za-z_$][\w$]*)(?:\s+extends\s+([A-Za-z_$][\w$.]*))?`)
	jsMethodRe   = regexp.MustCompile(`^(?:static\s+)?(?:async\s+)?(?:get\s+|set\s+)?\*?\s*([A-Za-z_$][\w$]*)\s*\(`)
	jsFieldRe    = regexp.MustCompile(`^([A-Za-z_$][\w$]*)\s*=[^=]`)
	jsThisAttrRe = regexp.MustCompile(`this\.([A-Za-z_$][\w$]*)\s*=[^=]`)
	jsIdentRe    = regexp.MustCompile(`[A-Za-z_$][\w$]*`)
)

// jsReservedNames are statement keywords that look like method shorthand
// when followed by a parenthesized list.
var jsReservedNames = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "function": true, "return": true, "do": true,
	"else": true, "new": true, "typeof": true,
}

// Analyze scans the source for top-level function and class declarations.
// Source without any declaration keyword yields an empty Result. A matched
// declaration whose body braces never balance fails with *InternalError.
func (a *javascriptAnalyzer) Analyze(source string) (*Result, error) {
	masked := maskJS(source)
	result := NewResult()

	depth := 0
	for i := 0; i < len(masked); i++ {
		c := masked[i]
		switch c {
		case '{':
			depth++
			continue
		case '}':
			depth--
			continue
		}
		if depth != 0 || !atWordStart(masked, i) {
			continue
		}

		if m := jsFunctionRe.FindStringSubmatchIndex(masked[i:]); m != nil {
			fn, next, err := a.scanFunction(masked, i, m)
			if err != nil {
				return nil, err
			}
			result.Functions = append(result.Functions, fn)
			i = next
			continue
		}
		if m := jsClassRe.FindStringSubmatchIndex(masked[i:]); m != nil {
			cls, next, err := a.scanClass(masked, i, m)
			if err != nil {
				return nil, err
			}
			result.Classes = append(result.Classes, cls)
			i = next
		}
	}

	return result, nil
}

// scanFunction emits the Function declared at offset. The returned index is
// the closing brace of the body; the caller resumes after it, so neither
// body brace reaches the caller's depth counter.
func (a *javascriptAnalyzer) scanFunction(masked string, offset int, m []int) (Function, int, error) {
	fn := Function{
		Name:       masked[offset+m[2] : offset+m[3]],
		StartLine:  lineAt(masked, offset),
		Parameters: make([]Parameter, 0),
		ReturnType: TypeUnknown,
	}

	openParen := offset + m[1] - 1
	closeParen, ok := matchDelims(masked, openParen, '(', ')')
	if !ok {
		return fn, 0, &InternalError{Op: "scan function " + fn.Name, Msg: "unbalanced parameter list"}
	}
	fn.Parameters = parseParamList(masked[openParen+1 : closeParen])

	openBrace := strings.IndexByte(masked[closeParen:], '{')
	if openBrace < 0 {
		return fn, 0, &InternalError{Op: "scan function " + fn.Name, Msg: "no function body"}
	}
	openBrace += closeParen
	closeBrace, ok := matchDelims(masked, openBrace, '{', '}')
	if !ok {
		return fn, 0, &InternalError{Op: "scan function " + fn.Name, Msg: "unbalanced braces"}
	}
	fn.EndLine = lineAt(masked, closeBrace)

	return fn, closeBrace, nil
}

// scanClass emits the Class declared at offset, walking its balanced body
// for method shorthand, field initializers, and this.field assignments.
func (a *javascriptAnalyzer) scanClass(masked string, offset int, m []int) (Class, int, error) {
	cls := Class{
		Name:       masked[offset+m[2] : offset+m[3]],
		Methods:    make([]Method, 0),
		Attributes: make([]string, 0),
		Bases:      make([]string, 0),
	}
	if m[4] >= 0 {
		cls.Bases = append(cls.Bases, masked[offset+m[4]:offset+m[5]])
	}

	openBrace := strings.IndexByte(masked[offset+m[1]:], '{')
	if openBrace < 0 {
		return cls, 0, &InternalError{Op: "scan class " + cls.Name, Msg: "no class body"}
	}
	openBrace += offset + m[1]
	bodyEnd, ok := matchDelims(masked, openBrace, '{', '}')
	if !ok {
		return cls, 0, &InternalError{Op: "scan class " + cls.Name, Msg: "unbalanced braces"}
	}

	seen := make(map[string]bool)
	addAttr := func(name string) {
		if !seen[name] {
			seen[name] = true
			cls.Attributes = append(cls.Attributes, name)
		}
	}

	depth := 0
	for i := openBrace + 1; i < bodyEnd; i++ {
		c := masked[i]
		switch c {
		case '{':
			depth++
			continue
		case '}':
			depth--
			continue
		}
		if depth != 0 || !atWordStart(masked, i) {
			continue
		}

		if mm := jsMethodRe.FindStringSubmatchIndex(masked[i:]); mm != nil {
			name := masked[i+mm[2] : i+mm[3]]
			if jsReservedNames[name] {
				continue
			}
			openP := i + mm[1] - 1
			closeP, ok := matchDelims(masked, openP, '(', ')')
			if !ok {
				return cls, 0, &InternalError{Op: "scan class " + cls.Name, Msg: "unbalanced parameter list in method " + name}
			}
			method := Method{Name: name, Args: make([]string, 0)}
			for _, p := range parseParamList(masked[openP+1 : closeP]) {
				method.Args = append(method.Args, p.Name)
			}

			bodyOpen := strings.IndexByte(masked[closeP:bodyEnd], '{')
			if bodyOpen < 0 {
				return cls, 0, &InternalError{Op: "scan class " + cls.Name, Msg: "no body for method " + name}
			}
			bodyOpen += closeP
			bodyClose, ok := matchDelims(masked, bodyOpen, '{', '}')
			if !ok {
				return cls, 0, &InternalError{Op: "scan class " + cls.Name, Msg: "unbalanced braces in method " + name}
			}
			cls.Methods = append(cls.Methods, method)
			for _, am := range jsThisAttrRe.FindAllStringSubmatch(masked[bodyOpen:bodyClose], -1) {
				addAttr(am[1])
			}
			i = bodyClose // skip the body, both braces included
			continue
		}
		if fm := jsFieldRe.FindStringSubmatch(masked[i:]); fm != nil {
			addAttr(fm[1])
			// Skip the initializer expression so a call or object literal
			// in it is not re-scanned as a method declaration.
			i = statementEnd(masked, i, bodyEnd)
		}
	}

	return cls, bodyEnd, nil
}

// parseParamList splits a verbatim parameter list on top-level commas and
// reduces each segment to its bound identifier: rest prefixes and default
// values are stripped, destructuring patterns contribute their first bound
// name. Types are always unknown for this adapter.
func parseParamList(list string) []Parameter {
	params := make([]Parameter, 0)

	for _, segment := range splitTopLevel(list) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		segment = strings.TrimPrefix(segment, "...")
		if eq := topLevelIndex(segment, '='); eq >= 0 {
			segment = segment[:eq]
		}
		if name := jsIdentRe.FindString(segment); name != "" {
			params = append(params, Parameter{Name: name, Type: TypeUnknown})
		}
	}

	return params
}

// splitTopLevel splits on commas not nested inside parens, brackets or
// braces.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// statementEnd returns the index of the semicolon or newline terminating
// the statement at from, skipping over nested parens, brackets and braces.
// Returns limit when the statement runs to it.
func statementEnd(s string, from, limit int) int {
	depth := 0
	for i := from; i < limit; i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ';', '\n':
			if depth == 0 {
				return i
			}
		}
	}
	return limit
}

func topLevelIndex(s string, target byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if s[i] == target && depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchDelims returns the index of the delimiter closing the one at open.
func matchDelims(s string, open int, openDelim, closeDelim byte) (int, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case openDelim:
			depth++
		case closeDelim:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// atWordStart reports whether offset begins an identifier rather than
// continuing one such as myfunction, or following a property dot.
func atWordStart(s string, offset int) bool {
	if !isIdentByte(s[offset]) {
		return false
	}
	if offset == 0 {
		return true
	}
	p := s[offset-1]
	return !isIdentByte(p) && p != '.' && !(p >= '0' && p <= '9')
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// lineAt converts a byte offset to a 1-indexed line number.
func lineAt(s string, offset int) int {
	return strings.Count(s[:offset], "\n") + 1
}

// maskJS blanks out comments, string literals, template literals
// (interpolations included) and regex literals so declaration matching and
// brace counting only see code. The output has the same length and line
// structure as the input. A slash after an operator or opening delimiter
// starts a regex literal; after a value it is division.
func maskJS(source string) string {
	const (
		stCode = iota
		stLineComment
		stBlockComment
		stSingle
		stDouble
		stTemplate
		stRegex
	)

	out := []byte(source)
	state := stCode
	interp := 0
	inClass := false
	var lastCode byte

	for i := 0; i < len(out); i++ {
		c := out[i]
		if c == '\n' {
			if state == stLineComment || state == stRegex {
				state = stCode
			}
			continue
		}

		switch state {
		case stCode:
			switch {
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				state = stLineComment
				out[i] = ' '
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				state = stBlockComment
				out[i] = ' '
			case c == '/' && regexCanFollow(lastCode):
				state = stRegex
				inClass = false
				out[i] = ' '
			case c == '\'':
				state = stSingle
				out[i] = ' '
			case c == '"':
				state = stDouble
				out[i] = ' '
			case c == '`':
				state = stTemplate
				interp = 0
				out[i] = ' '
			default:
				if c != ' ' && c != '\t' {
					lastCode = c
				}
			}
		case stLineComment:
			out[i] = ' '
		case stBlockComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				state = stCode
			} else {
				out[i] = ' '
			}
		case stSingle, stDouble:
			if c == '\\' && i+1 < len(out) {
				out[i] = ' '
				if out[i+1] != '\n' {
					out[i+1] = ' '
				}
				i++
			} else {
				quote := byte('\'')
				if state == stDouble {
					quote = '"'
				}
				out[i] = ' '
				if c == quote {
					state = stCode
					lastCode = quote
				}
			}
		case stTemplate:
			switch {
			case c == '\\' && i+1 < len(out):
				out[i] = ' '
				if out[i+1] != '\n' {
					out[i+1] = ' '
				}
				i++
			case c == '$' && i+1 < len(out) && out[i+1] == '{':
				interp++
				out[i], out[i+1] = ' ', ' '
				i++
			case c == '}' && interp > 0:
				interp--
				out[i] = ' '
			case c == '`' && interp == 0:
				out[i] = ' '
				state = stCode
				lastCode = '`'
			default:
				out[i] = ' '
			}
		case stRegex:
			switch {
			case c == '\\' && i+1 < len(out):
				out[i] = ' '
				if out[i+1] != '\n' {
					out[i+1] = ' '
				}
				i++
			case c == '[':
				inClass = true
				out[i] = ' '
			case c == ']':
				inClass = false
				out[i] = ' '
			case c == '/' && !inClass:
				out[i] = ' '
				state = stCode
				lastCode = ']'
			default:
				out[i] = ' '
			}
		}
	}

	return string(out)
}

// regexCanFollow reports whether a slash after this byte can start a regex
// literal. Zero means start of input.
func regexCanFollow(c byte) bool {
	switch c {
	case 0, '=', '(', ',', '[', '!', '&', '|', '?', ':', ';', '{', '+', '-', '*', '%', '<', '>', '~', '^':
		return true
	}
	return false
}
