package types

import "fmt"

// Id lengths used by the upstream site. Ids are opaque tokens over the
// charset [0-9A-Za-z_-] with a fixed length per entity.
const (
	VideoIDLength    = 11
	ChannelIDLength  = 24
	PlaylistIDLength = 34
)

var videoIDPrefixes = []string{
	"https://www.youtube.com/watch?v=",
	"https://youtube.com/watch?v=",
	"https://youtu.be/",
	"https://www.youtube.com/embed/",
}

var channelIDPrefixes = []string{
	"https://www.youtube.com/channel/",
	"https://youtube.com/channel/",
}

var playlistIDPrefixes = []string{
	"https://www.youtube.com/playlist?list=",
	"https://youtube.com/playlist?list=",
}

// System playlist ids that do not follow the fixed-length rule.
var systemPlaylistIDs = map[string]bool{
	"WL":   true, // watch later
	"LL":   true, // liked videos
	"RDMM": true, // my mix
}

// InvalidIDError reports an id that failed validation.
type InvalidIDError struct {
	Entity string
	Value  string
	Reason string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s id %q: %s", e.Entity, e.Value, e.Reason)
}

func validIDChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}

func stripPrefix(value string, prefixes []string) string {
	for _, p := range prefixes {
		if len(value) > len(p) && value[:len(p)] == p {
			return value[len(p):]
		}
	}
	// No prefix matched. Possibly a naked id; length and charset are
	// checked by the caller.
	return value
}

func parseID(entity, value string, prefixes []string, length int) (string, error) {
	id := stripPrefix(value, prefixes)
	for i := 0; i < len(id); i++ {
		if !validIDChar(id[i]) {
			return "", &InvalidIDError{Entity: entity, Value: value, Reason: "bad character"}
		}
	}
	if len(id) != length {
		return "", &InvalidIDError{
			Entity: entity,
			Value:  value,
			Reason: fmt.Sprintf("expected length %d, got %d", length, len(id)),
		}
	}
	return id, nil
}

// ParseVideoID validates a video id, accepting watch/short/embed URLs as
// well as naked ids.
func ParseVideoID(value string) (string, error) {
	return parseID("video", value, videoIDPrefixes, VideoIDLength)
}

// ParseChannelID validates a channel id, accepting channel URLs as well as
// naked ids.
func ParseChannelID(value string) (string, error) {
	return parseID("channel", value, channelIDPrefixes, ChannelIDLength)
}

// ParsePlaylistID validates a playlist id, accepting playlist URLs, naked
// ids, and the system aliases (WL, LL, RDMM).
func ParsePlaylistID(value string) (string, error) {
	id := stripPrefix(value, playlistIDPrefixes)
	if systemPlaylistIDs[id] {
		return id, nil
	}
	return parseID("playlist", id, nil, PlaylistIDLength)
}
