// Package entity converts normalized trees into domain entities, enforcing
// the data-model invariants: mandatory fields present, counts truncated to
// display precision, streams carrying exactly one of direct URL or cipher
// payload.
package entity

import (
	"sort"
	"strings"

	"github.com/ytget/ytx/errs"
	"github.com/ytget/ytx/internal/logger"
	"github.com/ytget/ytx/types"
	"github.com/ytget/ytx/youtube/schema"
)

var log = logger.WithComponent(logger.ComponentEntity)

// Reserved itags carrying server-stitched advertisement content rather than
// the actual video. Never surfaced as streams.
var adItags = map[int64]bool{
	89: true, 90: true, 91: true, 92: true, 93: true, 94: true,
}

// BuildVideo builds a Video from a normalized player response. Playability
// errors (private, geo blocked, removed) surface as the matching sentinel;
// a page missing id or title surfaces as IncompleteEntityError.
func BuildVideo(tree *schema.Tree) (*types.Video, error) {
	if err := checkPlayability(tree); err != nil {
		return nil, err
	}

	var missing []string
	id, ok := tree.FirstStr(schema.VideoID...)
	if !ok {
		missing = append(missing, "id")
	}
	title, ok := tree.FirstStr(schema.VideoTitle...)
	if !ok {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return nil, &errs.IncompleteEntityError{Entity: "video", Missing: missing}
	}
	if _, err := types.ParseVideoID(id); err != nil {
		return nil, &errs.IncompleteEntityError{Entity: "video", Missing: []string{"id"}}
	}

	video := &types.Video{
		ID:        id,
		Title:     title,
		ViewCount: types.UnknownCount,
	}

	if desc, ok := tree.FirstStr(schema.VideoDescription...); ok {
		video.Description = desc
	}
	if dur, ok := tree.FirstInt(schema.VideoDuration...); ok && dur >= 0 {
		video.Duration = int(dur)
	}
	if views, ok := tree.FirstInt(schema.VideoViewCount...); ok {
		video.ViewCount = TruncateCount(views)
	}
	if keywords, ok := tree.StrList(schema.VideoKeywords[0]); ok {
		video.Keywords = keywords
	}
	video.Channel = types.ChannelRef{}
	if chID, ok := tree.FirstStr(schema.VideoChannelID...); ok {
		video.Channel.ID = chID
	}
	if author, ok := tree.FirstStr(schema.VideoAuthor...); ok {
		video.Channel.Name = author
	}
	if thumbs, ok := tree.FirstList(schema.VideoThumbnails...); ok {
		video.Thumbnails = buildThumbnails(thumbs)
	}
	if category, ok := tree.FirstStr(schema.VideoCategory...); ok {
		video.Category = category
	}
	if published, ok := tree.FirstStr(schema.VideoPublishDate...); ok {
		video.PublishDate = published
	}
	if uploaded, ok := tree.FirstStr(schema.VideoUploadDate...); ok {
		video.UploadDate = uploaded
	}
	video.Private, _ = tree.Bool(schema.VideoPrivate[0])
	video.Live, _ = tree.Bool(schema.VideoLive[0])
	video.Unlisted, _ = tree.Bool(schema.VideoUnlisted[0])
	if safe, ok := tree.Bool(schema.VideoFamilySafe[0]); ok {
		video.FamilySafe = safe
	}

	video.Streams = BuildStreams(tree)

	log.Debug("Built video", map[string]interface{}{
		"id":      video.ID,
		"streams": len(video.Streams),
	})
	return video, nil
}

// BuildStreams collects stream descriptors from both the progressive and
// adaptive format lists. Advertisement entries, segmented (OTF) entries and
// entries with neither a URL nor a cipher payload are skipped.
func BuildStreams(tree *schema.Tree) []types.Stream {
	var streams []types.Stream

	if formats, ok := tree.FirstList(schema.StreamFormats...); ok {
		for _, f := range formats {
			if s, ok := buildStream(f, types.StreamMuxed); ok {
				streams = append(streams, s)
			}
		}
	}
	if formats, ok := tree.FirstList(schema.StreamAdaptiveFormats...); ok {
		for _, f := range formats {
			if s, ok := buildStream(f, adaptiveKind(f)); ok {
				streams = append(streams, s)
			}
		}
	}
	return streams
}

func adaptiveKind(f *schema.Tree) types.StreamKind {
	mime, _ := f.FirstStr(schema.FormatMimeType...)
	if strings.HasPrefix(mime, "audio/") {
		return types.StreamAudio
	}
	return types.StreamVideo
}

func buildStream(f *schema.Tree, kind types.StreamKind) (types.Stream, bool) {
	itag, ok := f.FirstInt(schema.FormatItag...)
	if !ok || adItags[itag] {
		return types.Stream{}, false
	}
	// Segmented streams have no byte-addressable URL to resolve.
	if t, ok := f.Str("type"); ok && t == "FORMAT_STREAM_TYPE_OTF" {
		return types.Stream{}, false
	}

	s := types.Stream{
		Kind:          kind,
		Itag:          int(itag),
		ContentLength: types.UnknownCount,
	}

	url, hasURL := f.FirstStr(schema.FormatURL...)
	cipher, hasCipher := f.FirstStr(schema.FormatSignatureCipher...)
	switch {
	case hasURL:
		s.URL = url
	case hasCipher:
		s.SignatureCipher = cipher
	default:
		return types.Stream{}, false
	}

	if mime, ok := f.FirstStr(schema.FormatMimeType...); ok {
		s.MimeType, s.Codecs = splitMime(mime)
	}
	if quality, ok := f.FirstStr(schema.FormatQuality...); ok {
		s.Quality = quality
	}
	if bitrate, ok := f.FirstInt(schema.FormatBitrate...); ok {
		s.Bitrate = int(bitrate)
	}
	if length, ok := f.FirstInt(schema.FormatContentLength...); ok {
		s.ContentLength = length
	}
	if w, ok := f.FirstInt(schema.FormatWidth...); ok {
		s.Width = int(w)
	}
	if h, ok := f.FirstInt(schema.FormatHeight...); ok {
		s.Height = int(h)
	}
	if fps, ok := f.FirstInt(schema.FormatFPS...); ok {
		s.FPS = int(fps)
	}
	if rate, ok := f.FirstInt(schema.FormatSampleRate...); ok {
		s.SampleRate = int(rate)
	}
	if ch, ok := f.FirstInt(schema.FormatChannels...); ok {
		s.Channels = int(ch)
	}
	return s, true
}

// splitMime separates `video/mp4; codecs="avc1.4d401f, mp4a.40.2"` into the
// bare MIME type and the codec list.
func splitMime(mime string) (string, []string) {
	base, rest, found := strings.Cut(mime, ";")
	base = strings.TrimSpace(base)
	if !found {
		return base, nil
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, "codecs=")
	rest = strings.Trim(rest, `"`)
	if rest == "" {
		return base, nil
	}
	codecs := strings.Split(rest, ",")
	for i := range codecs {
		codecs[i] = strings.TrimSpace(codecs[i])
	}
	return base, codecs
}

func buildThumbnails(items []*schema.Tree) []types.Thumbnail {
	thumbs := make([]types.Thumbnail, 0, len(items))
	for _, item := range items {
		url, ok := item.Str("url")
		if !ok {
			continue
		}
		t := types.Thumbnail{URL: url}
		if w, ok := item.Int("width"); ok {
			t.Width = int(w)
		}
		if h, ok := item.Int("height"); ok {
			t.Height = int(h)
		}
		thumbs = append(thumbs, t)
	}
	// Upstream mostly serves these smallest-first already, but the order
	// is part of the contract.
	sort.SliceStable(thumbs, func(i, j int) bool {
		return thumbs[i].Width*thumbs[i].Height < thumbs[j].Width*thumbs[j].Height
	})
	return thumbs
}

// checkPlayability maps the page's playability block onto the sentinel
// errors. Status OK (or an absent block) passes.
func checkPlayability(tree *schema.Tree) error {
	status, ok := tree.FirstStr(schema.PlayabilityStatus...)
	if !ok || status == "OK" {
		return nil
	}

	reason, _ := tree.FirstStr(schema.PlayabilityReason...)
	lower := strings.ToLower(reason)
	switch {
	case strings.Contains(lower, "private"):
		return errs.ErrPrivate
	case strings.Contains(lower, "age"):
		return errs.ErrAgeRestricted
	case strings.Contains(lower, "country") || strings.Contains(lower, "region"):
		return errs.ErrGeoBlocked
	}
	switch status {
	case "LOGIN_REQUIRED":
		return errs.ErrPrivate
	case "AGE_CHECK_REQUIRED", "AGE_VERIFICATION_REQUIRED", "CONTENT_CHECK_REQUIRED":
		return errs.ErrAgeRestricted
	}
	return errs.ErrVideoUnavailable
}
