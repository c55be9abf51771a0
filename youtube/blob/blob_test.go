package blob

import (
	"errors"
	"testing"

	"github.com/ytget/ytx/errs"
)

const watchPage = `<!DOCTYPE html>
<html><head><title>watch</title></head><body>
<script>var ytInitialPlayerResponse = {"videoDetails":{"videoId":"dQw4w9WgXcQ","title":"Test {video}"}};var meta = 1;</script>
<script>ytcfg.set({"INNERTUBE_API_KEY":"AIzaKey","PLAYER_JS_URL":"/s/player/4fbb4d5b/player_ias.vflset/en_US/base.js"});</script>
</body></html>`

func TestLocate_PlayerResponse(t *testing.T) {
	raw, err := Locate([]byte(watchPage), KindPlayerResponse)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if raw.Kind != KindPlayerResponse {
		t.Errorf("Expected kind %v, got %v", KindPlayerResponse, raw.Kind)
	}

	want := `{"videoDetails":{"videoId":"dQw4w9WgXcQ","title":"Test {video}"}}`
	if string(raw.Data) != want {
		t.Errorf("Expected %s, got %s", want, raw.Data)
	}
}

func TestLocate_Config(t *testing.T) {
	raw, err := Locate([]byte(watchPage), KindConfig)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	want := `{"INNERTUBE_API_KEY":"AIzaKey","PLAYER_JS_URL":"/s/player/4fbb4d5b/player_ias.vflset/en_US/base.js"}`
	if string(raw.Data) != want {
		t.Errorf("Expected %s, got %s", want, raw.Data)
	}
}

func TestLocate_InitialData_WindowForm(t *testing.T) {
	page := `<html><body><script>window["ytInitialData"] = {"contents":{"items":[1,2,3]}};</script></body></html>`

	raw, err := Locate([]byte(page), KindInitialData)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	want := `{"contents":{"items":[1,2,3]}}`
	if string(raw.Data) != want {
		t.Errorf("Expected %s, got %s", want, raw.Data)
	}
}

func TestLocate_Missing(t *testing.T) {
	page := `<html><body><script>var somethingElse = {};</script></body></html>`

	_, err := Locate([]byte(page), KindInitialData)
	if !errors.Is(err, errs.ErrBlobMissing) {
		t.Errorf("Expected ErrBlobMissing, got %v", err)
	}
	if !errs.IsRecoverable(err) {
		t.Error("Missing blob should be recoverable")
	}
}

func TestLocate_Malformed(t *testing.T) {
	page := `<html><body><script>var ytInitialData = {"contents":{"broken":[1,2</script></body></html>`

	_, err := Locate([]byte(page), KindInitialData)
	var malformed *errs.BlobMalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected BlobMalformedError, got %v", err)
	}
	if malformed.Kind != "initial_data" {
		t.Errorf("Expected kind initial_data, got %s", malformed.Kind)
	}
}

func TestLocate_BracesInsideStrings(t *testing.T) {
	page := `<script>var ytInitialData = {"title":"a } b { c","esc":"quote \" and brace }"};</script>`

	raw, err := Locate([]byte(page), KindInitialData)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	want := `{"title":"a } b { c","esc":"quote \" and brace }"}`
	if string(raw.Data) != want {
		t.Errorf("Expected %s, got %s", want, raw.Data)
	}
}

func TestLocate_RawScriptInput(t *testing.T) {
	// Not an HTML page at all; the scanner must fall back to the raw body.
	body := `var ytInitialPlayerResponse = {"videoDetails":{"videoId":"abcdefghijk"}};`

	raw, err := Locate([]byte(body), KindPlayerResponse)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if string(raw.Data) != `{"videoDetails":{"videoId":"abcdefghijk"}}` {
		t.Errorf("Unexpected data: %s", raw.Data)
	}
}

func TestScanObject_NoObject(t *testing.T) {
	if _, err := scanObject(`"just a string"`); err == nil {
		t.Error("Expected error for non-object input")
	}
	if _, err := scanObject(``); err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInitialData, "initial_data"},
		{KindPlayerResponse, "player_response"},
		{KindConfig, "config"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
