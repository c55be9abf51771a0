package player

import (
	"net/url"
	"strings"
	"testing"

	"github.com/ytget/ytx/types"
)

func TestResolveStreamURL_CipherPayload(t *testing.T) {
	// reverse then splice(2): "abcdefghij" -> "jihgfedcba" -> "hgfedcba"
	program := &Program{SigOps: []Op{{Kind: OpReverse}, {Kind: OpSplice, Arg: 2}}}
	stream := &types.Stream{
		Itag:            137,
		SignatureCipher: "s=abcdefghij&sp=sig&url=" + url.QueryEscape("https://r1.example/videoplayback?id=1"),
	}

	resolved, err := ResolveStreamURL(program, stream)
	if err != nil {
		t.Fatalf("ResolveStreamURL failed: %v", err)
	}

	u, err := url.Parse(resolved)
	if err != nil {
		t.Fatalf("Resolved URL unparseable: %v", err)
	}
	if got := u.Query().Get("sig"); got != "hgfedcba" {
		t.Errorf("Expected sig=hgfedcba, got %q", got)
	}
	if u.Query().Get("ratebypass") != "yes" {
		t.Error("Expected ratebypass=yes on resolved URL")
	}
	if u.Host != "r1.example" {
		t.Errorf("Unexpected host %q", u.Host)
	}
}

func TestResolveStreamURL_DefaultSignatureParam(t *testing.T) {
	program := &Program{SigOps: []Op{{Kind: OpReverse}}}
	stream := &types.Stream{
		SignatureCipher: "s=abc&url=" + url.QueryEscape("https://r1.example/v"),
	}

	resolved, err := ResolveStreamURL(program, stream)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resolved, "signature=cba") {
		t.Errorf("Missing sp fallback param, got %s", resolved)
	}
}

func TestResolveStreamURL_DirectURLWithNParam(t *testing.T) {
	program := &Program{NOps: []Op{{Kind: OpReverse}}}
	stream := &types.Stream{URL: "https://r1.example/videoplayback?n=abc&id=2"}

	resolved, err := ResolveStreamURL(program, stream)
	if err != nil {
		t.Fatal(err)
	}
	u, _ := url.Parse(resolved)
	if got := u.Query().Get("n"); got != "cba" {
		t.Errorf("Expected transformed n=cba, got %q", got)
	}
}

func TestResolveStreamURL_InvalidPayloads(t *testing.T) {
	program := &Program{SigOps: []Op{{Kind: OpReverse}}}

	tests := []struct {
		name   string
		stream types.Stream
	}{
		{"no url no cipher", types.Stream{Itag: 1}},
		{"payload missing s", types.Stream{SignatureCipher: "url=" + url.QueryEscape("https://r1.example/v")}},
		{"payload missing url", types.Stream{SignatureCipher: "s=abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ResolveStreamURL(program, &tt.stream); !IsInvalidInput(err) {
				t.Errorf("Expected invalid-input error, got %v", err)
			}
		})
	}
}

func TestFindScriptURL(t *testing.T) {
	page := []byte(`{"PLAYER_JS_URL":"x","jsUrl":"\/s\/player\/4fbb4d5b\/player_ias.vflset\/en_US\/base.js"}`)

	got, err := FindScriptURL(page)
	if err != nil {
		t.Fatalf("FindScriptURL failed: %v", err)
	}
	want := "https://www.youtube.com/s/player/4fbb4d5b/player_ias.vflset/en_US/base.js"
	if got != want {
		t.Errorf("FindScriptURL = %q, want %q", got, want)
	}

	if _, err := FindScriptURL([]byte(`<html>no script here</html>`)); !IsProgramNotFound(err) {
		t.Errorf("Expected script-not-found error, got %v", err)
	}
}

func TestVersionFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/s/player/4fbb4d5b/player_ias.vflset/en_US/base.js", "4fbb4d5b"},
		{"https://www.youtube.com/s/player/ab_C-123/base.js", "ab_C-123"},
		{"https://example.com/unrecognized.js", "https://example.com/unrecognized.js"},
	}

	for _, tt := range tests {
		if got := VersionFromURL(tt.url); got != tt.want {
			t.Errorf("VersionFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
