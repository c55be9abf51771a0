package player

import (
	"testing"
)

// fixtureScript follows the minified descrambling idiom: an actions object
// with one helper per operation shape and an entry function calling them.
const fixtureScript = `var wP={
mS:function(a,b){a.splice(0,b)},
zP:function(a){a.reverse()},
aK:function(a,b){var c=a[0];a[0]=a[b%a.length];a[b%a.length]=c}};
function Wx(a){a=a.split("");wP.aK(a,2);wP.mS(a,1);wP.zP(a,3);return a.join("")}`

func TestAnalyze(t *testing.T) {
	program, err := Analyze(fixtureScript, "4fbb4d5b")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if program.Version != "4fbb4d5b" {
		t.Errorf("Expected version 4fbb4d5b, got %s", program.Version)
	}

	want := []Op{
		{Kind: OpSwap, Arg: 2},
		{Kind: OpSplice, Arg: 1},
		{Kind: OpReverse, Arg: 3},
	}
	if len(program.SigOps) != len(want) {
		t.Fatalf("Expected %d ops, got %d: %v", len(want), len(program.SigOps), program.SigOps)
	}
	for i, op := range program.SigOps {
		if op != want[i] {
			t.Errorf("Op %d: expected %v, got %v", i, want[i], op)
		}
	}
}

func TestAnalyze_FunctionExpressionForm(t *testing.T) {
	script := `var qT={rV:function(a){return a.reverse()},sP:function(a,b){a.splice(0,b)}};
Xy=function(a){a=a.split("");qT.rV(a,1);qT.sP(a,2);return a.join("")}`

	program, err := Analyze(script, "v2")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	want := []Op{{Kind: OpReverse, Arg: 1}, {Kind: OpSplice, Arg: 2}}
	if len(program.SigOps) != 2 || program.SigOps[0] != want[0] || program.SigOps[1] != want[1] {
		t.Errorf("Unexpected ops: %v", program.SigOps)
	}
}

func TestAnalyze_BracketCallForm(t *testing.T) {
	script := `var wP={zP:function(a){a.reverse()}};
function Wx(a){a=a.split("");wP["zP"](a,0);return a.join("")}`

	program, err := Analyze(script, "v3")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(program.SigOps) != 1 || program.SigOps[0].Kind != OpReverse {
		t.Errorf("Unexpected ops: %v", program.SigOps)
	}
}

func TestAnalyze_ProgramNotFound(t *testing.T) {
	_, err := Analyze(`var x = 1; function unrelated(b){return b+1}`, "v4")
	if err == nil {
		t.Fatal("Expected error for script without entry function")
	}
	if !IsProgramNotFound(err) {
		t.Errorf("Expected program-not-found error, got %v", err)
	}
	if IsUnknownShape(err) {
		t.Error("Error should not classify as unknown shape")
	}
}

func TestAnalyze_UnknownOperationShape(t *testing.T) {
	// The entry function calls a helper whose body matches no known shape.
	script := `var wP={
zP:function(a){a.reverse()},
qQ:function(a,b){a.sort()}};
function Wx(a){a=a.split("");wP.qQ(a,2);wP.zP(a,0);return a.join("")}`

	_, err := Analyze(script, "v5")
	if err == nil {
		t.Fatal("Expected error for unrecognized helper body")
	}
	if !IsUnknownShape(err) {
		t.Errorf("Expected unknown-shape error, got %v", err)
	}
	if IsProgramNotFound(err) {
		t.Error("Unknown shape must stay distinct from program-not-found")
	}
}

func TestAnalyze_NTransform(t *testing.T) {
	script := fixtureScript + `
var nX=function(a){a=a.split("");wP.zP(a,0);wP.mS(a,1);return a.join("")};
c.get("v"),d.get("n"))&&(b=nX(b),e.set("n",b))`

	program, err := Analyze(script, "v6")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	want := []Op{{Kind: OpReverse, Arg: 0}, {Kind: OpSplice, Arg: 1}}
	if len(program.NOps) != 2 || program.NOps[0] != want[0] || program.NOps[1] != want[1] {
		t.Errorf("Unexpected n ops: %v", program.NOps)
	}
}

func TestAnalyze_NTransformAbsent(t *testing.T) {
	program, err := Analyze(fixtureScript, "v7")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(program.NOps) != 0 {
		t.Errorf("Expected no n ops, got %v", program.NOps)
	}

	// Without a recognized n transform the value passes through.
	out, err := program.ResolveNParam("abc123")
	if err != nil || out != "abc123" {
		t.Errorf("ResolveNParam = (%q, %v), want passthrough", out, err)
	}
}

func TestBalancedBody(t *testing.T) {
	body, err := balancedBody(`{a:{b:1},c:"}"}`)
	if err != nil {
		t.Fatalf("balancedBody failed: %v", err)
	}
	if body != `a:{b:1},c:"}"` {
		t.Errorf("Unexpected body: %q", body)
	}

	if _, err := balancedBody(`{never closes`); err == nil {
		t.Error("Expected error for unterminated block")
	}
	if _, err := balancedBody(`no block`); err == nil {
		t.Error("Expected error for missing block")
	}
}

func TestExtractFunction(t *testing.T) {
	src := `var pad=1;nX=function(a){if(a){return a}return ""};var tail=2`
	fn, err := extractFunction(src, "nX")
	if err != nil {
		t.Fatalf("extractFunction failed: %v", err)
	}
	if fn != `nX=function(a){if(a){return a}return ""}` {
		t.Errorf("Unexpected function text: %q", fn)
	}

	if _, err := extractFunction(src, "missing"); err == nil {
		t.Error("Expected error for undefined function")
	}
}
