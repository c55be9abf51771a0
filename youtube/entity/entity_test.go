package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytx/errs"
	"github.com/ytget/ytx/types"
	"github.com/ytget/ytx/youtube/schema"
)

const watchFixture = `{
	"playabilityStatus": {"status": "OK"},
	"videoDetails": {
		"videoId": "dQw4w9WgXcQ",
		"title": "Never Gonna Give You Up",
		"shortDescription": "The official video.",
		"lengthSeconds": "212",
		"channelId": "UC38IQsAvIsxxjztdMZQtwHA",
		"author": "Rick Astley",
		"keywords": ["rick astley", "80s"],
		"viewCount": "164583",
		"isPrivate": false,
		"isLiveContent": false,
		"thumbnail": {"thumbnails": [
			{"url": "https://i.example/default.jpg", "width": 120, "height": 90},
			{"url": "https://i.example/hq.jpg", "width": 480, "height": 360}
		]}
	},
	"microformat": {"playerMicroformatRenderer": {
		"category": "Music",
		"publishDate": "2009-10-25",
		"uploadDate": "2009-10-25",
		"isFamilySafe": true,
		"isUnlisted": false
	}},
	"streamingData": {
		"formats": [
			{"itag": 18, "url": "https://r1.example/muxed", "mimeType": "video/mp4; codecs=\"avc1.42001E, mp4a.40.2\"", "bitrate": 500000, "qualityLabel": "360p", "width": 640, "height": 360}
		],
		"adaptiveFormats": [
			{"itag": 137, "signatureCipher": "s=ABC&sp=sig&url=https%3A%2F%2Fr2.example%2Fvideo", "mimeType": "video/mp4; codecs=\"avc1.640028\"", "bitrate": 4000000, "qualityLabel": "1080p", "contentLength": "123456789", "width": 1920, "height": 1080, "fps": 30},
			{"itag": 140, "url": "https://r3.example/audio", "mimeType": "audio/mp4; codecs=\"mp4a.40.2\"", "bitrate": 128000, "audioSampleRate": "44100", "audioChannels": 2},
			{"itag": 91, "url": "https://ads.example/x", "mimeType": "video/mp4"},
			{"itag": 299, "url": "https://r4.example/otf", "mimeType": "video/mp4", "type": "FORMAT_STREAM_TYPE_OTF"},
			{"itag": 303, "mimeType": "video/webm; codecs=\"vp9\""}
		]
	}
}`

func watchTree(t *testing.T) *schema.Tree {
	t.Helper()
	tree, err := schema.NormalizeJSON("player_response", []byte(watchFixture))
	require.NoError(t, err)
	return tree
}

func TestBuildVideo(t *testing.T) {
	video, err := BuildVideo(watchTree(t))
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", video.ID)
	assert.Equal(t, "Never Gonna Give You Up", video.Title)
	assert.Equal(t, "The official video.", video.Description)
	assert.Equal(t, 212, video.Duration)
	assert.Equal(t, "UC38IQsAvIsxxjztdMZQtwHA", video.Channel.ID)
	assert.Equal(t, "Rick Astley", video.Channel.Name)
	assert.Equal(t, []string{"rick astley", "80s"}, video.Keywords)
	assert.Equal(t, "Music", video.Category)
	assert.Equal(t, "2009-10-25", video.PublishDate)
	assert.True(t, video.FamilySafe)
	assert.False(t, video.Private)
	assert.Len(t, video.Thumbnails, 2)
	assert.Equal(t, 480, video.Thumbnails[1].Width)

	// 164583 truncated to display precision.
	assert.Equal(t, int64(164000), video.ViewCount)
}

func TestBuildVideo_MissingMandatoryFields(t *testing.T) {
	tree, err := schema.NormalizeJSON("player_response", []byte(`{"videoDetails":{"viewCount":"10"}}`))
	require.NoError(t, err)

	_, err = BuildVideo(tree)
	var incomplete *errs.IncompleteEntityError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "video", incomplete.Entity)
	assert.ElementsMatch(t, []string{"id", "title"}, incomplete.Missing)
}

func TestBuildVideo_BadID(t *testing.T) {
	tree, err := schema.NormalizeJSON("player_response", []byte(`{"videoDetails":{"videoId":"short","title":"x"}}`))
	require.NoError(t, err)

	_, err = BuildVideo(tree)
	var incomplete *errs.IncompleteEntityError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"id"}, incomplete.Missing)
}

func TestBuildVideo_Playability(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		reason  string
		wantErr error
	}{
		{"private", "LOGIN_REQUIRED", "This is a private video.", errs.ErrPrivate},
		{"age", "AGE_CHECK_REQUIRED", "Sign in to confirm your age", errs.ErrAgeRestricted},
		{"geo", "UNPLAYABLE", "The uploader has not made this video available in your country", errs.ErrGeoBlocked},
		{"removed", "ERROR", "This video is no longer available", errs.ErrVideoUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"playabilityStatus":{"status":"` + tt.status + `","reason":"` + tt.reason + `"}}`
			tree, err := schema.NormalizeJSON("player_response", []byte(payload))
			require.NoError(t, err)

			_, err = BuildVideo(tree)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildStreams_Classification(t *testing.T) {
	streams := BuildStreams(watchTree(t))

	// Ad itag 91, the OTF entry and the URL-less entry are all skipped.
	require.Len(t, streams, 3)

	muxed := streams[0]
	assert.Equal(t, types.StreamMuxed, muxed.Kind)
	assert.Equal(t, 18, muxed.Itag)
	assert.Equal(t, "video/mp4", muxed.MimeType)
	assert.Equal(t, []string{"avc1.42001E", "mp4a.40.2"}, muxed.Codecs)
	assert.False(t, muxed.NeedsDeciphering())

	video := streams[1]
	assert.Equal(t, types.StreamVideo, video.Kind)
	assert.Equal(t, 137, video.Itag)
	assert.True(t, video.NeedsDeciphering())
	assert.Empty(t, video.URL)
	assert.Equal(t, int64(123456789), video.ContentLength)
	assert.Equal(t, 1080, video.Height)
	assert.Equal(t, 30, video.FPS)

	audio := streams[2]
	assert.Equal(t, types.StreamAudio, audio.Kind)
	assert.Equal(t, 140, audio.Itag)
	assert.Equal(t, 44100, audio.SampleRate)
	assert.Equal(t, 2, audio.Channels)
	assert.Equal(t, types.UnknownCount, audio.ContentLength)
}

func TestSplitMime(t *testing.T) {
	base, codecs := splitMime(`video/webm; codecs="vp9, opus"`)
	assert.Equal(t, "video/webm", base)
	assert.Equal(t, []string{"vp9", "opus"}, codecs)

	base, codecs = splitMime("audio/mp4")
	assert.Equal(t, "audio/mp4", base)
	assert.Nil(t, codecs)
}
