package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ytget/ytx"
	"github.com/ytget/ytx/client"
	"github.com/ytget/ytx/internal/logger"
	"github.com/ytget/ytx/types"
)

func main() {
	var (
		flagPlaylist bool
		flagChannel  bool
		flagJSON     bool
		flagStreams  bool
		flagLimit    int
		flagTimeout  time.Duration
		flagRetries  int
		flagUA       string
		flagProxy    string
	)

	flag.BoolVar(&flagPlaylist, "playlist", false, "Treat input as playlist URL or ID")
	flag.BoolVar(&flagChannel, "channel", false, "Treat input as channel URL or ID")
	flag.BoolVar(&flagJSON, "json", false, "Emit JSON instead of text")
	flag.BoolVar(&flagStreams, "streams", false, "List resolved stream URLs for a video")
	flag.IntVar(&flagLimit, "limit", 0, "Max playlist items to walk (0 means all)")
	flag.DurationVar(&flagTimeout, "http-timeout", 30*time.Second, "HTTP timeout (e.g., 30s, 1m)")
	flag.IntVar(&flagRetries, "retries", 3, "HTTP retries for transient errors")
	flag.StringVar(&flagUA, "ua", "", "Override User-Agent header")
	flag.StringVar(&flagProxy, "proxy", "", "Proxy URL (http/https/socks)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <video_playlist_or_channel_url>\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}

	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := strings.TrimSpace(args[0])

	if l, err := logger.CreateLoggerFromConfig(logger.EnvironmentConfig()); err == nil {
		logger.SetGlobalLogger(l)
	}

	c := client.NewWith(client.Config{
		Timeout:   flagTimeout,
		Retries:   flagRetries,
		UserAgent: flagUA,
		ProxyURL:  flagProxy,
	})
	e := ytx.New().WithClient(c)
	ctx := context.Background()

	var err error
	switch {
	case flagPlaylist:
		err = runPlaylist(ctx, e, input, flagLimit, flagJSON)
	case flagChannel:
		err = runChannel(ctx, e, input, flagJSON)
	default:
		err = runVideo(ctx, e, input, flagJSON, flagStreams)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runVideo(ctx context.Context, e *ytx.Extractor, input string, asJSON, withStreams bool) error {
	v, err := e.Video(ctx, input)
	if err != nil {
		return err
	}
	if asJSON {
		return emitJSON(v)
	}

	fmt.Printf("%s\n", v.Title)
	fmt.Printf("  id: %s  channel: %s  duration: %s\n", v.ID, v.Channel.Name, formatDuration(v.Duration))
	if v.ViewCount != types.UnknownCount {
		fmt.Printf("  views: ~%d\n", v.ViewCount)
	}
	if withStreams {
		for _, s := range v.Streams {
			fmt.Printf("  [%d] %s %s\n      %s\n", s.Itag, s.Kind, s.Quality, s.URL)
		}
	}
	return nil
}

func runPlaylist(ctx context.Context, e *ytx.Extractor, input string, limit int, asJSON bool) error {
	info, walker, err := e.Playlist(ctx, input)
	if err != nil {
		return err
	}

	var items []types.PlaylistItem
	for limit <= 0 || len(items) < limit {
		item, ok, err := walker.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		items = append(items, item)
	}

	if asJSON {
		return emitJSON(struct {
			Playlist *types.PlaylistInfo  `json:"playlist"`
			Items    []types.PlaylistItem `json:"items"`
		}{info, items})
	}

	fmt.Printf("%s (%s)\n", info.Title, info.ID)
	if info.Owner.Name != "" {
		fmt.Printf("  by %s\n", info.Owner.Name)
	}
	for _, item := range items {
		fmt.Printf("  %3d. %s [%s] %s\n", item.Index, item.VideoID, formatDuration(item.Length), item.Title)
	}
	return nil
}

func runChannel(ctx context.Context, e *ytx.Extractor, input string, asJSON bool) error {
	info, err := e.Channel(ctx, input)
	if err != nil {
		return err
	}
	if asJSON {
		return emitJSON(info)
	}

	fmt.Printf("%s (%s)\n", info.Title, info.ID)
	if info.Subscribers != types.UnknownCount {
		fmt.Printf("  subscribers: ~%d\n", info.Subscribers)
	}
	if info.Description != "" {
		fmt.Printf("  %s\n", info.Description)
	}
	return nil
}

func emitJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
