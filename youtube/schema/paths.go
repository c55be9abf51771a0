package schema

// Alternate-path tables for logical fields, tried in priority order. These
// track upstream schema history: new upstream variants are handled by
// appending another path, never by branching the pipeline. Treat this file
// as configuration data maintained separately from the lookup logic.

// Player response (watch page).
var (
	VideoID          = []string{"videoDetails.videoId"}
	VideoTitle       = []string{"videoDetails.title", "microformat.playerMicroformatRenderer.title.simpleText"}
	VideoDescription = []string{"videoDetails.shortDescription", "microformat.playerMicroformatRenderer.description.simpleText"}
	VideoDuration    = []string{"videoDetails.lengthSeconds", "microformat.playerMicroformatRenderer.lengthSeconds"}
	VideoChannelID   = []string{"videoDetails.channelId", "microformat.playerMicroformatRenderer.externalChannelId"}
	VideoAuthor      = []string{"videoDetails.author", "microformat.playerMicroformatRenderer.ownerChannelName"}
	VideoKeywords    = []string{"videoDetails.keywords"}
	VideoThumbnails  = []string{"videoDetails.thumbnail.thumbnails", "microformat.playerMicroformatRenderer.thumbnail.thumbnails"}
	VideoViewCount   = []string{"videoDetails.viewCount", "microformat.playerMicroformatRenderer.viewCount"}
	VideoPrivate     = []string{"videoDetails.isPrivate"}
	VideoLive        = []string{"videoDetails.isLiveContent"}
	VideoUnlisted    = []string{"microformat.playerMicroformatRenderer.isUnlisted"}
	VideoFamilySafe  = []string{"microformat.playerMicroformatRenderer.isFamilySafe"}
	VideoCategory    = []string{"microformat.playerMicroformatRenderer.category"}
	VideoPublishDate = []string{"microformat.playerMicroformatRenderer.publishDate"}
	VideoUploadDate  = []string{"microformat.playerMicroformatRenderer.uploadDate"}

	PlayabilityStatus = []string{"playabilityStatus.status"}
	PlayabilityReason = []string{"playabilityStatus.reason", "playabilityStatus.errorScreen.playerErrorMessageRenderer.reason.simpleText"}

	StreamFormats         = []string{"streamingData.formats"}
	StreamAdaptiveFormats = []string{"streamingData.adaptiveFormats"}
)

// Stream format entry fields, relative to one formats[] element.
var (
	FormatItag            = []string{"itag"}
	FormatURL             = []string{"url"}
	FormatSignatureCipher = []string{"signatureCipher", "cipher"}
	FormatMimeType        = []string{"mimeType", "type"}
	FormatBitrate         = []string{"bitrate", "averageBitrate"}
	FormatContentLength   = []string{"contentLength"}
	FormatQuality         = []string{"qualityLabel", "quality"}
	FormatWidth           = []string{"width"}
	FormatHeight          = []string{"height"}
	FormatFPS             = []string{"fps"}
	FormatSampleRate      = []string{"audioSampleRate"}
	FormatChannels        = []string{"audioChannels"}
)

// Initial data (browse page) for playlists.
var (
	PlaylistItems = []string{
		"contents.twoColumnBrowseResultsRenderer.tabs.0.tabRenderer.content.sectionListRenderer.contents.0.itemSectionRenderer.contents.0.playlistVideoListRenderer.contents",
		"contents.twoColumnBrowseResultsRenderer.tabs.0.tabRenderer.content.richGridRenderer.contents",
	}
	PlaylistID          = []string{"contents.twoColumnBrowseResultsRenderer.tabs.0.tabRenderer.content.sectionListRenderer.contents.0.itemSectionRenderer.contents.0.playlistVideoListRenderer.playlistId"}
	PlaylistTitle       = []string{"microformat.microformatDataRenderer.title", "metadata.playlistMetadataRenderer.title"}
	PlaylistDescription = []string{"microformat.microformatDataRenderer.description", "metadata.playlistMetadataRenderer.description"}
	PlaylistUnlisted    = []string{"microformat.microformatDataRenderer.unlisted"}
	PlaylistThumbnails  = []string{"microformat.microformatDataRenderer.thumbnail.thumbnails"}
	PlaylistStats       = []string{"sidebar.playlistSidebarRenderer.items.0.playlistSidebarPrimaryInfoRenderer.stats"}
	PlaylistOwner       = []string{"sidebar.playlistSidebarRenderer.items.1.playlistSidebarSecondaryInfoRenderer.videoOwner.videoOwnerRenderer"}
	PageAlerts          = []string{"alerts"}

	// Watch-page sidebar with related video suggestions.
	RelatedItems = []string{"contents.twoColumnWatchNextResults.secondaryResults.secondaryResults.results"}

	ContinuationItems = []string{
		"onResponseReceivedActions.0.appendContinuationItemsAction.continuationItems",
		"continuationContents.playlistVideoListContinuation.contents",
	}
)

// Listing entry renderers. Playlist pages wrap items in
// playlistVideoRenderer, channel video tabs in richItemRenderer (newer) or
// gridVideoRenderer (older), watch-page sidebars in compactVideoRenderer.
var ItemRenderers = []string{
	"playlistVideoRenderer",
	"richItemRenderer.content.videoRenderer",
	"gridVideoRenderer",
	"videoRenderer",
	"compactVideoRenderer",
}

// Listing entry fields, relative to the renderer.
var (
	ItemVideoID     = []string{"videoId"}
	ItemTitle       = []string{"title.runs.0.text", "title.simpleText"}
	ItemLength      = []string{"lengthSeconds"}
	ItemLengthClock = []string{"lengthText.simpleText", "thumbnailOverlays.0.thumbnailOverlayTimeStatusRenderer.text.simpleText"}
	ItemIndex       = []string{"index.simpleText"}
	ItemPlayable    = []string{"isPlayable"}
	ItemOwner       = []string{"shortBylineText.runs.0", "longBylineText.runs.0"}

	ItemToken = []string{"continuationItemRenderer.continuationEndpoint.continuationCommand.token"}

	// Pre-2021 continuation shape, kept as a fallback.
	LegacyContinuation = []string{
		"continuationContents.playlistVideoListContinuation.continuations.0.nextContinuationData.continuation",
		"contents.twoColumnBrowseResultsRenderer.tabs.0.tabRenderer.content.sectionListRenderer.contents.0.itemSectionRenderer.contents.0.playlistVideoListRenderer.continuations.0.nextContinuationData.continuation",
	}
)

// Initial data (browse page) for channels.
var (
	ChannelID          = []string{"header.c4TabbedHeaderRenderer.channelId", "metadata.channelMetadataRenderer.externalId"}
	ChannelTitle       = []string{"header.c4TabbedHeaderRenderer.title", "metadata.channelMetadataRenderer.title"}
	ChannelDescription = []string{"metadata.channelMetadataRenderer.description"}
	ChannelAvatar      = []string{"header.c4TabbedHeaderRenderer.avatar.thumbnails", "metadata.channelMetadataRenderer.avatar.thumbnails"}
	ChannelBanner      = []string{"header.c4TabbedHeaderRenderer.banner.thumbnails"}
	ChannelSubscribers = []string{"header.c4TabbedHeaderRenderer.subscriberCountText.simpleText"}
	ChannelFamilySafe  = []string{"metadata.channelMetadataRenderer.isFamilySafe"}
)

// Page configuration (ytcfg).
var (
	ConfigAPIKey        = []string{"INNERTUBE_API_KEY"}
	ConfigPlayerJSURL   = []string{"PLAYER_JS_URL", "WEB_PLAYER_CONTEXT_CONFIGS.WEB_PLAYER_CONTEXT_CONFIG_ID_KEVLAR_WATCH.jsUrl"}
	ConfigClientVersion = []string{"INNERTUBE_CONTEXT_CLIENT_VERSION", "INNERTUBE_CONTEXT.client.clientVersion"}
)
