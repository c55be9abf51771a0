// Package types holds the domain entities produced by the extraction
// pipeline. Entities own their scalar fields; references to other entities
// (channel-from-video, owner-from-playlist) are weak links by id.
package types

// UnknownCount marks a numeric field that was absent upstream, as opposed to
// a real zero.
const UnknownCount int64 = -1

// StreamKind classifies what a stream carries.
type StreamKind int

const (
	// StreamMuxed carries audio and video combined.
	StreamMuxed StreamKind = iota
	// StreamVideo carries video only.
	StreamVideo
	// StreamAudio carries audio only.
	StreamAudio
)

func (k StreamKind) String() string {
	switch k {
	case StreamMuxed:
		return "muxed"
	case StreamVideo:
		return "video"
	case StreamAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Thumbnail is a preview image at a specific resolution.
type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// ChannelRef is a weak reference to a channel: id and display name only,
// no ownership.
type ChannelRef struct {
	ID   string
	Name string
}

// Stream describes an available media stream. Before resolution exactly one
// of URL and SignatureCipher is set; Resolve* operations produce a direct
// URL from a cipher payload.
type Stream struct {
	Kind            StreamKind
	Itag            int
	MimeType        string
	Codecs          []string
	Quality         string
	Bitrate         int
	ContentLength   int64
	URL             string
	SignatureCipher string

	// Video-only fields.
	Width  int
	Height int
	FPS    int

	// Audio-only fields.
	SampleRate int
	Channels   int
}

// NeedsDeciphering reports whether the stream carries a cipher payload
// instead of a direct URL.
func (s *Stream) NeedsDeciphering() bool {
	return s.URL == "" && s.SignatureCipher != ""
}

// Video describes a single video with its unresolved streams.
type Video struct {
	ID          string
	Title       string
	Description string
	Duration    int // seconds
	Channel     ChannelRef
	Thumbnails  []Thumbnail // ordered by ascending resolution
	Keywords    []string
	Category    string
	PublishDate string
	UploadDate  string
	ViewCount   int64 // truncated to 3 significant digits, UnknownCount if absent

	Private    bool
	Live       bool
	Unlisted   bool
	FamilySafe bool

	Streams []Stream
}
