package types

import (
	"testing"
)

func TestStreamNeedsDeciphering(t *testing.T) {
	direct := Stream{Itag: 22, URL: "https://example.com/video.mp4"}
	if direct.NeedsDeciphering() {
		t.Error("stream with a direct URL should not need deciphering")
	}

	ciphered := Stream{Itag: 137, SignatureCipher: "s=abc&sp=sig&url=https%3A%2F%2Fexample.com"}
	if !ciphered.NeedsDeciphering() {
		t.Error("stream with a signature cipher should need deciphering")
	}
}

func TestStreamKindString(t *testing.T) {
	tests := []struct {
		kind StreamKind
		want string
	}{
		{StreamMuxed, "muxed"},
		{StreamVideo, "video"},
		{StreamAudio, "audio"},
		{StreamKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("StreamKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"naked id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"too short", "dQw4w9WgXc", "", true},
		{"too long", "dQw4w9WgXcQQ", "", true},
		{"bad char", "dQw4w9WgXc!", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVideoID(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVideoID(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseChannelID(t *testing.T) {
	const id = "UC38IQsAvIsxxjztdMZQtwHA"

	got, err := ParseChannelID(id)
	if err != nil {
		t.Fatalf("ParseChannelID(%q) failed: %v", id, err)
	}
	if got != id {
		t.Errorf("ParseChannelID(%q) = %q", id, got)
	}

	got, err = ParseChannelID("https://www.youtube.com/channel/" + id)
	if err != nil {
		t.Fatalf("ParseChannelID with url failed: %v", err)
	}
	if got != id {
		t.Errorf("ParseChannelID with url = %q, want %q", got, id)
	}

	if _, err := ParseChannelID("UC38IQsAvIsxxjztdMZQtwH"); err == nil {
		t.Error("short channel id should fail")
	}
}

func TestParsePlaylistID(t *testing.T) {
	const id = "PLdU2XZF6997p2YT2mxRSNx3sNMKKAhnpq"

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"naked id", id, id, false},
		{"playlist url", "https://www.youtube.com/playlist?list=" + id, id, false},
		{"watch later", "WL", "WL", false},
		{"liked videos", "LL", "LL", false},
		{"my mix", "RDMM", "RDMM", false},
		{"wrong length", "PLdU2XZF6997p2YT2mxRSNx3sNMKKAhnp", "", true},
		{"bad char", "PLdU2XZF6997p2YT2mxRSNx3sNMKKAhnp!", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlaylistID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePlaylistID(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlaylistID(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePlaylistID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
