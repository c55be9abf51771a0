package entity

import (
	"strings"

	"github.com/ytget/ytx/errs"
	"github.com/ytget/ytx/types"
	"github.com/ytget/ytx/youtube/schema"
)

// BuildPlaylistInfo builds playlist metadata from a normalized browse page.
func BuildPlaylistInfo(tree *schema.Tree) (*types.PlaylistInfo, error) {
	if err := checkAlerts(tree); err != nil {
		return nil, err
	}

	var missing []string
	id, ok := tree.FirstStr(schema.PlaylistID...)
	if !ok {
		missing = append(missing, "id")
	}
	title, ok := tree.FirstStr(schema.PlaylistTitle...)
	if !ok {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return nil, &errs.IncompleteEntityError{Entity: "playlist", Missing: missing}
	}

	info := &types.PlaylistInfo{
		ID:         id,
		Title:      title,
		VideoCount: types.UnknownCount,
		ViewCount:  types.UnknownCount,
	}

	if desc, ok := tree.FirstStr(schema.PlaylistDescription...); ok {
		info.Description = desc
	}
	info.Unlisted, _ = tree.Bool(schema.PlaylistUnlisted[0])
	if thumbs, ok := tree.FirstList(schema.PlaylistThumbnails...); ok {
		info.Thumbnails = buildThumbnails(thumbs)
	}

	// Sidebar stats carry the video count, the view count and the update
	// date, in that order.
	if stats, ok := tree.FirstList(schema.PlaylistStats...); ok && len(stats) >= 2 {
		if text, ok := stats[0].FirstStr("runs.0.text", "simpleText"); ok {
			if n, ok := ParseAbbreviatedCount(firstToken(text)); ok {
				info.VideoCount = n
			}
		}
		if text, ok := stats[1].FirstStr("simpleText", "runs.0.text"); ok {
			if n, ok := ParseAbbreviatedCount(firstToken(text)); ok {
				info.ViewCount = TruncateCount(n)
			}
		}
	}

	if owner, ok := tree.FirstSub(schema.PlaylistOwner...); ok {
		info.Owner.Name, _ = owner.Str("title.runs.0.text")
		info.Owner.ID, _ = owner.FirstStr(
			"navigationEndpoint.browseEndpoint.browseId",
			"title.runs.0.navigationEndpoint.browseEndpoint.browseId",
		)
	}

	return info, nil
}

// BuildPlaylistItems extracts the video summaries and the next continuation
// token from a browse page or a continuation response. An empty token means
// the listing is exhausted. Entries of unrecognized renderer types are
// skipped, not failed.
func BuildPlaylistItems(tree *schema.Tree) ([]types.PlaylistItem, string, error) {
	if err := checkAlerts(tree); err != nil {
		return nil, "", err
	}

	entries, ok := tree.FirstList(schema.PlaylistItems...)
	if !ok {
		entries, ok = tree.FirstList(schema.ContinuationItems...)
	}
	if !ok {
		return nil, "", &errs.SchemaViolationError{Kind: tree.Kind(), Path: schema.PlaylistItems[0]}
	}

	var items []types.PlaylistItem
	var next string
	for _, entry := range entries {
		if token, ok := entry.FirstStr(schema.ItemToken...); ok {
			next = token
			continue
		}
		if item, ok := buildListingItem(entry); ok {
			items = append(items, item)
		}
	}
	if next == "" {
		next, _ = tree.FirstStr(schema.LegacyContinuation...)
	}
	return items, next, nil
}

// BuildRelatedVideos extracts the watch-page sidebar suggestions for a
// video. Non-video sidebar entries (mixes, ads) are skipped.
func BuildRelatedVideos(tree *schema.Tree) ([]types.PlaylistItem, error) {
	entries, ok := tree.FirstList(schema.RelatedItems...)
	if !ok {
		return nil, &errs.SchemaViolationError{Kind: tree.Kind(), Path: schema.RelatedItems[0]}
	}

	var items []types.PlaylistItem
	for _, entry := range entries {
		if item, ok := buildListingItem(entry); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// buildListingItem builds one video summary from a listing entry of any of
// the known renderer wrappings. Entries without a recognized renderer or a
// video id are skipped.
func buildListingItem(entry *schema.Tree) (types.PlaylistItem, bool) {
	r, ok := entry.FirstSub(schema.ItemRenderers...)
	if !ok {
		return types.PlaylistItem{}, false
	}
	videoID, ok := r.FirstStr(schema.ItemVideoID...)
	if !ok {
		return types.PlaylistItem{}, false
	}

	item := types.PlaylistItem{VideoID: videoID}
	item.Title, _ = r.FirstStr(schema.ItemTitle...)
	if length, ok := r.FirstInt(schema.ItemLength...); ok {
		item.Length = int(length)
	} else if clock, ok := r.FirstStr(schema.ItemLengthClock...); ok {
		if secs, ok := ParseClockDuration(clock); ok {
			item.Length = secs
		}
	}
	if idx, ok := r.FirstInt(schema.ItemIndex...); ok {
		item.Index = int(idx)
	}
	// A listed entry is playable unless the renderer flags it otherwise.
	item.Playable = true
	if playable, ok := r.Bool(schema.ItemPlayable[0]); ok {
		item.Playable = playable
	}
	if owner, ok := r.FirstSub(schema.ItemOwner...); ok {
		item.Channel.Name, _ = owner.Str("text")
		item.Channel.ID, _ = owner.Str("navigationEndpoint.browseEndpoint.browseId")
	}
	return item, true
}

// BuildChannelInfo builds channel metadata from a normalized browse page.
func BuildChannelInfo(tree *schema.Tree) (*types.ChannelInfo, error) {
	if err := checkAlerts(tree); err != nil {
		return nil, err
	}

	var missing []string
	id, ok := tree.FirstStr(schema.ChannelID...)
	if !ok {
		missing = append(missing, "id")
	}
	title, ok := tree.FirstStr(schema.ChannelTitle...)
	if !ok {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return nil, &errs.IncompleteEntityError{Entity: "channel", Missing: missing}
	}

	info := &types.ChannelInfo{
		ID:          id,
		Title:       title,
		Subscribers: types.UnknownCount,
	}

	if desc, ok := tree.FirstStr(schema.ChannelDescription...); ok {
		info.Description = desc
	}
	if avatar, ok := tree.FirstList(schema.ChannelAvatar...); ok {
		info.Avatar = buildThumbnails(avatar)
	}
	if banner, ok := tree.FirstList(schema.ChannelBanner...); ok {
		info.Banner = buildThumbnails(banner)
	}
	if safe, ok := tree.Bool(schema.ChannelFamilySafe[0]); ok {
		info.FamilySafe = safe
	}
	// Rendered as e.g. "1.4M subscribers"; the count is the first token.
	if text, ok := tree.FirstStr(schema.ChannelSubscribers...); ok {
		if n, ok := ParseAbbreviatedCount(firstToken(text)); ok {
			info.Subscribers = TruncateCount(n)
		}
	}

	return info, nil
}

// checkAlerts surfaces page-level error alerts (deleted or private
// listings). Informational alerts pass.
func checkAlerts(tree *schema.Tree) error {
	alerts, ok := tree.FirstList(schema.PageAlerts...)
	if !ok {
		return nil
	}
	for _, alert := range alerts {
		kind, _ := alert.Str("alertRenderer.type")
		if kind != "ERROR" {
			continue
		}
		text, _ := alert.FirstStr("alertRenderer.text.runs.0.text", "alertRenderer.text.simpleText")
		if strings.Contains(strings.ToLower(text), "private") {
			return errs.ErrPrivate
		}
		return errs.ErrVideoUnavailable
	}
	return nil
}

func firstToken(s string) string {
	if i := strings.IndexByte(strings.TrimSpace(s), ' '); i > 0 {
		return strings.TrimSpace(s)[:i]
	}
	return strings.TrimSpace(s)
}
