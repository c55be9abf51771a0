package player

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/ytx/internal/logger"
)

var log = logger.WithComponent(logger.ComponentPlayer)

// The player script is analyzed as text, never executed. The descrambling
// entry function has a stable minified idiom: split the signature, call a
// short sequence of helpers from one actions object, join the result. Each
// helper body matches one of three canonical shapes.
const (
	jsVar      = `[a-zA-Z_\$][a-zA-Z_0-9]*`
	reverseStr = `:function\(a\)\{` +
		`(?:return )?a\.reverse\(\)` +
		`\}`
	spliceStr = `:function\(a,b\)\{` +
		`a\.splice\(0,b\)` +
		`\}`
	swapStr = `:function\(a,b\)\{` +
		`var c=a\[0\];a\[0\]=a\[b(?:%a\.length)?\];a\[b(?:%a\.length)?\]=c(?:;return a)?` +
		`\}`
)

var (
	entryFuncRegexps = []*regexp.Regexp{
		// function XX(a){a=a.split("");...;return a.join("")}
		regexp.MustCompile(fmt.Sprintf(
			`function(?:\s+%s)?\(a\)\{`+
				`a=a\.split\([^\)]*\);\s*`+
				`((?:(?:a=)?%s(?:\.%s|\[[^\]]+\])\(a,\d+\);?\s*)+)`+
				`return a\.join\([^\)]*\)`+
				`\}`, jsVar, jsVar, jsVar)),
		// XX=function(a){...}
		regexp.MustCompile(fmt.Sprintf(
			`%s\s*=\s*function\(a\)\{`+
				`a=a\.split\([^\)]*\);\s*`+
				`((?:(?:a=)?%s(?:\.%s|\[[^\]]+\])\(a,\d+\);?\s*)+)`+
				`return a\.join\([^\)]*\)`+
				`\}`, jsVar, jsVar, jsVar)),
	}

	// One helper call inside the entry function: OBJ.fn(a,N) or OBJ["fn"](a,N).
	helperCallRegexp = regexp.MustCompile(fmt.Sprintf(
		`(?:a=)?(%s)(?:\.(%s)|\[(?:"(%s)"|'(%s)')\])\(a,(\d+)\)`,
		jsVar, jsVar, jsVar, jsVar))

	// One entry inside the actions object literal. Helper bodies are flat.
	helperDefRegexp = regexp.MustCompile(fmt.Sprintf(
		`(%s)\s*:\s*function\(a(?:,b)?\)\{([^{}]*)\}`, jsVar))

	reverseShapeRegexp = regexp.MustCompile(fmt.Sprintf(`(?:^|,|\n)%s%s`, jsVar, reverseStr))
	spliceShapeRegexp  = regexp.MustCompile(fmt.Sprintf(`(?:^|,|\n)%s%s`, jsVar, spliceStr))
	swapShapeRegexp    = regexp.MustCompile(fmt.Sprintf(`(?:^|,|\n)%s%s`, jsVar, swapStr))

	nFunctionNameRegexps = []*regexp.Regexp{
		// b=XY[0](b) with the real name behind an alias table.
		regexp.MustCompile(`\.get\("n"\)\)\s*&&\s*\(b=([a-zA-Z0-9$]+)\[(\d+)\]\([a-zA-Z0-9$]+\)`),
		// b=XY(b)
		regexp.MustCompile(`\.get\("n"\)\)\s*&&\s*\(b=([a-zA-Z0-9$]+)\([a-zA-Z0-9$]+\)`),
	}
)

// Analyze scans a player script and compiles its descrambling function into
// a typed operation list, tagged with the player version it came from.
//
// Returns ErrCodeProgramNotFound when the entry function or its actions
// object cannot be located, and ErrCodeUnknownOperationShape when the entry
// function invokes a helper whose body matches none of the canonical shapes.
// The first usually means the upstream minifier moved things around, the
// second that a new operation appeared.
func Analyze(source, version string) (*Program, error) {
	chain := findCallChain(source)
	if chain == "" {
		return nil, NewError(ErrCodeProgramNotFound, "descrambling entry function not found", version)
	}

	calls := helperCallRegexp.FindAllStringSubmatch(chain, -1)
	if len(calls) == 0 {
		return nil, NewError(ErrCodeProgramNotFound, "entry function invokes no helpers", version)
	}

	obj := calls[0][1]
	objBody, ok := objectLiteral(source, obj)
	if !ok {
		return nil, NewError(ErrCodeProgramNotFound, "actions object not found", obj)
	}

	ops, err := compileCalls(objBody, calls, version)
	if err != nil {
		return nil, err
	}

	program := &Program{Version: version, SigOps: ops}
	program.NOps = analyzeNTransform(source)

	log.Debug("Analyzed player script", map[string]interface{}{
		"version": version,
		"sig_ops": len(program.SigOps),
		"n_ops":   len(program.NOps),
	})
	return program, nil
}

// findCallChain locates the entry function and returns its helper call
// sequence text.
func findCallChain(source string) string {
	for _, re := range entryFuncRegexps {
		if m := re.FindStringSubmatch(source); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// objectLiteral extracts the body of `var OBJ={...}` with balanced braces,
// so nested helper-function bodies do not cut the literal short.
func objectLiteral(source, name string) (string, bool) {
	for _, form := range []string{"var ", "let ", "const "} {
		idx := strings.Index(source, form+name+"={")
		if idx < 0 {
			continue
		}
		open := idx + len(form) + len(name) + 1
		body, err := balancedBody(source[open:])
		if err != nil {
			return "", false
		}
		return body, true
	}
	return "", false
}

// balancedBody returns the contents of the brace block starting at s[0]
// (which must be '{'), tracking string and escape state.
func balancedBody(s string) (string, error) {
	if len(s) == 0 || s[0] != '{' {
		return "", fmt.Errorf("no block at scan start")
	}
	depth := 0
	var strChar byte
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strChar != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == strChar:
				strChar = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			strChar = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], nil
			}
		}
	}
	return "", fmt.Errorf("block never closes")
}

// compileCalls resolves each helper call in order against the classified
// actions object. Order is load-bearing: the operations do not commute.
func compileCalls(objBody string, calls [][]string, version string) ([]Op, error) {
	kinds := classifyHelpers(objBody)

	ops := make([]Op, 0, len(calls))
	for _, call := range calls {
		name := firstNonEmpty(call[2], call[3], call[4])
		kind, known := kinds[name]
		if !known {
			return nil, NewError(ErrCodeUnknownOperationShape,
				"helper matches no canonical operation shape",
				map[string]string{"helper": name, "version": version})
		}
		arg, _ := strconv.Atoi(call[5])
		ops = append(ops, Op{Kind: kind, Arg: arg})
	}
	return ops, nil
}

// classifyHelpers maps each helper name in the actions object to an
// operation kind. Helpers with unrecognized bodies are omitted, so a call
// to one surfaces as an unknown shape.
func classifyHelpers(objBody string) map[string]OpKind {
	kinds := make(map[string]OpKind)
	for _, def := range helperDefRegexp.FindAllStringSubmatch(objBody, -1) {
		name, entry := def[1], ","+def[0]
		switch {
		case reverseShapeRegexp.MatchString(entry):
			kinds[name] = OpReverse
		case spliceShapeRegexp.MatchString(entry):
			kinds[name] = OpSplice
		case swapShapeRegexp.MatchString(entry):
			kinds[name] = OpSwap
		}
	}
	return kinds
}

// analyzeNTransform locates the throttling n-function and tries to compile
// it with the same structural matching. Most player versions use a long
// n-function outside the closed operation set; those yield no ops and the
// n value passes through unchanged.
func analyzeNTransform(source string) []Op {
	name := findNFunctionName(source)
	if name == "" {
		return nil
	}
	fnText, err := extractFunction(source, name)
	if err != nil {
		return nil
	}

	chain := findCallChain(fnText)
	if chain == "" {
		return nil
	}
	calls := helperCallRegexp.FindAllStringSubmatch(chain, -1)
	if len(calls) == 0 {
		return nil
	}
	objBody, ok := objectLiteral(source, calls[0][1])
	if !ok {
		return nil
	}
	ops, err := compileCalls(objBody, calls, "")
	if err != nil {
		return nil
	}
	return ops
}

func findNFunctionName(source string) string {
	for _, re := range nFunctionNameRegexps {
		m := re.FindStringSubmatch(source)
		if len(m) == 0 {
			continue
		}
		if len(m) == 3 {
			// Alias-table form: resolve XY[N] through `var XY=[name]`.
			if idx, err := strconv.Atoi(m[2]); err == nil {
				if real := resolveAlias(source, m[1], idx); real != "" {
					return real
				}
			}
			continue
		}
		return m[1]
	}
	return ""
}

// resolveAlias resolves `var table=[fnA,fnB]` references to the idx-th name.
func resolveAlias(source, table string, idx int) string {
	re := regexp.MustCompile(`var\s+` + regexp.QuoteMeta(table) + `\s*=\s*\[([^\]]*)\]`)
	m := re.FindStringSubmatch(source)
	if len(m) < 2 {
		return ""
	}
	names := strings.Split(m[1], ",")
	if idx < 0 || idx >= len(names) {
		return ""
	}
	return strings.TrimSpace(names[idx])
}

// extractFunction returns the full text of the named function definition,
// scanning to its balanced closing brace.
func extractFunction(source, name string) (string, error) {
	defs := []string{
		name + "=function(",
		name + " = function(",
		"function " + name + "(",
	}
	start := -1
	for _, def := range defs {
		if start = strings.Index(source, def); start >= 0 {
			break
		}
	}
	if start < 0 {
		return "", fmt.Errorf("function %s not defined", name)
	}
	open := strings.IndexByte(source[start:], '{')
	if open < 0 {
		return "", fmt.Errorf("function %s has no body", name)
	}
	body, err := balancedBody(source[start+open:])
	if err != nil {
		return "", err
	}
	return source[start:start+open] + "{" + body + "}", nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
