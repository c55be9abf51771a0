// Package ytx extracts structured metadata and playable stream URLs from
// YouTube watch, playlist, and channel pages. The page-level entry points
// work on raw HTML documents; the network-backed entry points fetch pages,
// player scripts, and browse continuations through the internal client.
package ytx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ytget/ytx/client"
	"github.com/ytget/ytx/errs"
	"github.com/ytget/ytx/internal/logger"
	"github.com/ytget/ytx/types"
	"github.com/ytget/ytx/youtube/blob"
	"github.com/ytget/ytx/youtube/browse"
	"github.com/ytget/ytx/youtube/entity"
	"github.com/ytget/ytx/youtube/player"
	"github.com/ytget/ytx/youtube/schema"
)

const (
	watchURLPrefix    = "https://www.youtube.com/watch?v="
	playlistURLPrefix = "https://www.youtube.com/playlist?list="
	channelURLPrefix  = "https://www.youtube.com/channel/"
)

var log = logger.WithComponent(logger.ComponentApp)

// PageConfig carries the per-page runtime parameters discovered in the
// ytcfg blob: the innertube API key, the page's player script URL, and
// the client version to echo on continuation requests.
type PageConfig struct {
	APIKey        string
	PlayerJSURL   string
	ClientVersion string
}

// Extractor is the high-level API. It owns an HTTP client and a bounded
// cache of analyzed player programs keyed by player version.
type Extractor struct {
	httpClient *client.Client
	programs   *player.Cache
}

// New creates an Extractor with a default client and program cache.
func New() *Extractor {
	return &Extractor{
		httpClient: client.New(),
		programs:   player.NewCache(player.DefaultCacheSize),
	}
}

// WithClient sets a custom HTTP client to be used for all network calls.
func (e *Extractor) WithClient(c *client.Client) *Extractor {
	if c != nil {
		e.httpClient = c
	}
	return e
}

// WithCacheSize bounds how many analyzed player versions are kept.
func (e *Extractor) WithCacheSize(size int) *Extractor {
	e.programs = player.NewCache(size)
	return e
}

// ExtractVideo builds a Video from a watch page document. Streams that
// carry a scrambled signature are returned with an empty URL; resolve them
// with ResolveStreams.
func (e *Extractor) ExtractVideo(page []byte) (*types.Video, error) {
	raw, err := blob.Locate(page, blob.KindPlayerResponse)
	if err != nil {
		return nil, err
	}
	tree, err := schema.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return entity.BuildVideo(tree)
}

// ExtractPlaylistPage builds the playlist summary, the first page of items,
// and the continuation token for the next page (empty when the listing fits
// on one page). A raw continuation response body is accepted too; those
// carry no summary, so the info result is nil.
func (e *Extractor) ExtractPlaylistPage(page []byte) (*types.PlaylistInfo, []types.PlaylistItem, string, error) {
	tree, err := initialDataTree(page)
	if err != nil {
		if !errs.IsRecoverable(err) || !json.Valid(page) {
			return nil, nil, "", err
		}
		tree, err = schema.NormalizeJSON("browse", page)
		if err != nil {
			return nil, nil, "", err
		}
		items, token, err := entity.BuildPlaylistItems(tree)
		if err != nil {
			return nil, nil, "", err
		}
		return nil, items, token, nil
	}
	info, err := entity.BuildPlaylistInfo(tree)
	if err != nil {
		return nil, nil, "", err
	}
	items, token, err := entity.BuildPlaylistItems(tree)
	if err != nil {
		return nil, nil, "", err
	}
	return info, items, token, nil
}

// ExtractRelated builds the list of related video suggestions from a watch
// page document.
func (e *Extractor) ExtractRelated(page []byte) ([]types.PlaylistItem, error) {
	tree, err := initialDataTree(page)
	if err != nil {
		return nil, err
	}
	return entity.BuildRelatedVideos(tree)
}

// ExtractChannel builds a channel summary from a channel page document.
func (e *Extractor) ExtractChannel(page []byte) (*types.ChannelInfo, error) {
	tree, err := initialDataTree(page)
	if err != nil {
		return nil, err
	}
	return entity.BuildChannelInfo(tree)
}

// ExtractConfig reads the page's ytcfg blob. Missing fields stay empty;
// only a missing blob is an error.
func (e *Extractor) ExtractConfig(page []byte) (*PageConfig, error) {
	raw, err := blob.Locate(page, blob.KindConfig)
	if err != nil {
		return nil, err
	}
	tree, err := schema.Normalize(raw)
	if err != nil {
		return nil, err
	}
	cfg := &PageConfig{}
	cfg.APIKey, _ = tree.FirstStr(schema.ConfigAPIKey...)
	cfg.PlayerJSURL, _ = tree.FirstStr(schema.ConfigPlayerJSURL...)
	cfg.ClientVersion, _ = tree.FirstStr(schema.ConfigClientVersion...)
	return cfg, nil
}

// ResolveStreams fills in the playable URL of every stream that still needs
// deciphering, using the player script referenced by the page the video was
// extracted from. Streams with a direct URL are normalized too (n-parameter
// and rate-bypass handling).
func (e *Extractor) ResolveStreams(ctx context.Context, page []byte, v *types.Video) error {
	if v == nil || len(v.Streams) == 0 {
		return nil
	}

	scriptURL, err := e.scriptURL(page)
	if err != nil {
		return err
	}
	version := player.VersionFromURL(scriptURL)
	program, err := e.programs.Program(ctx, version, func(ctx context.Context) (string, error) {
		return e.httpClient.FetchPlayerScript(ctx, scriptURL)
	})
	if err != nil {
		return err
	}

	for i := range v.Streams {
		resolved, err := player.ResolveStreamURL(program, &v.Streams[i])
		if err != nil {
			return fmt.Errorf("resolve stream itag %d: %w", v.Streams[i].Itag, err)
		}
		v.Streams[i].URL = resolved
		v.Streams[i].SignatureCipher = ""
	}
	return nil
}

// Video fetches a watch page by video ID or URL and returns the Video with
// every stream URL resolved.
func (e *Extractor) Video(ctx context.Context, idOrURL string) (*types.Video, error) {
	id, err := types.ParseVideoID(idOrURL)
	if err != nil {
		return nil, err
	}

	page, err := e.httpClient.Fetch(ctx, watchURLPrefix+id)
	if err != nil {
		return nil, err
	}
	v, err := e.ExtractVideo(page)
	if err != nil {
		return nil, err
	}
	if err := e.ResolveStreams(ctx, page, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Playlist fetches a playlist page by ID or URL and returns its summary
// plus a Walker over all of its items. The walker pulls continuation pages
// lazily through the innertube browse endpoint.
func (e *Extractor) Playlist(ctx context.Context, idOrURL string) (*types.PlaylistInfo, *browse.Walker, error) {
	id, err := types.ParsePlaylistID(idOrURL)
	if err != nil {
		return nil, nil, err
	}

	page, err := e.httpClient.Fetch(ctx, playlistURLPrefix+id)
	if err != nil {
		return nil, nil, err
	}
	firstTree, err := initialDataTree(page)
	if err != nil {
		return nil, nil, err
	}
	info, err := entity.BuildPlaylistInfo(firstTree)
	if err != nil {
		return nil, nil, err
	}

	walker, err := e.listingWalker(page, firstTree)
	if err != nil {
		return nil, nil, err
	}
	return info, walker, nil
}

// ChannelVideos fetches a channel's videos tab by ID or URL and returns a
// Walker over its uploads. The walker pulls continuation pages lazily
// through the innertube browse endpoint.
func (e *Extractor) ChannelVideos(ctx context.Context, idOrURL string) (*browse.Walker, error) {
	id, err := types.ParseChannelID(idOrURL)
	if err != nil {
		return nil, err
	}

	page, err := e.httpClient.Fetch(ctx, channelURLPrefix+id+"/videos")
	if err != nil {
		return nil, err
	}
	firstTree, err := initialDataTree(page)
	if err != nil {
		return nil, err
	}
	return e.listingWalker(page, firstTree)
}

// listingWalker builds a Walker whose first pull consumes the already
// fetched page tree and whose later pulls go through the browse endpoint
// with the page's innertube parameters.
func (e *Extractor) listingWalker(page []byte, firstTree *schema.Tree) (*browse.Walker, error) {
	// Continuations need the page's innertube parameters. A page without a
	// config blob is recoverable only while the listing fits on one page.
	if cfg, cfgErr := e.ExtractConfig(page); cfgErr == nil {
		e.httpClient.WithAPIKey(cfg.APIKey).WithClientVersion(cfg.ClientVersion)
	} else if !errs.IsRecoverable(cfgErr) {
		return nil, cfgErr
	}

	return browse.NewWalker(func(ctx context.Context, token string) (*schema.Tree, error) {
		if token == "" {
			tree := firstTree
			firstTree = nil
			if tree == nil {
				return nil, fmt.Errorf("initial page already consumed")
			}
			return tree, nil
		}
		body, err := e.httpClient.Continuation(ctx, token)
		if err != nil {
			return nil, err
		}
		return schema.NormalizeJSON("browse", body)
	}), nil
}

// Channel fetches a channel page by ID or URL and returns its summary.
func (e *Extractor) Channel(ctx context.Context, idOrURL string) (*types.ChannelInfo, error) {
	id, err := types.ParseChannelID(idOrURL)
	if err != nil {
		return nil, err
	}

	page, err := e.httpClient.Fetch(ctx, channelURLPrefix+id+"/about")
	if err != nil {
		return nil, err
	}
	return e.ExtractChannel(page)
}

// scriptURL finds the player script for a page, preferring the direct page
// reference and falling back to the config blob.
func (e *Extractor) scriptURL(page []byte) (string, error) {
	if u, err := player.FindScriptURL(page); err == nil {
		return u, nil
	}
	cfg, err := e.ExtractConfig(page)
	if err != nil || cfg.PlayerJSURL == "" {
		return "", player.NewError(player.ErrCodeScriptNotFound, "no player script reference on page")
	}
	u := cfg.PlayerJSURL
	if len(u) > 0 && u[0] == '/' {
		u = "https://www.youtube.com" + u
	}
	log.Debug("player script url from config blob", map[string]interface{}{"url": u})
	return u, nil
}

func initialDataTree(page []byte) (*schema.Tree, error) {
	raw, err := blob.Locate(page, blob.KindInitialData)
	if err != nil {
		return nil, err
	}
	return schema.Normalize(raw)
}
