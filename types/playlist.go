package types

// PlaylistItem is a video summary yielded while walking a playlist or a
// channel upload listing.
type PlaylistItem struct {
	VideoID  string
	Title    string
	Length   int // seconds, 0 when upstream omits it
	Channel  ChannelRef
	Index    int
	Playable bool
}

// PlaylistInfo describes playlist metadata.
type PlaylistInfo struct {
	ID          string
	Title       string
	Description string
	Owner       ChannelRef
	Thumbnails  []Thumbnail
	Unlisted    bool
	VideoCount  int64 // UnknownCount if absent
	ViewCount   int64 // truncated to 3 significant digits, UnknownCount if absent
}

// ChannelInfo describes channel metadata.
type ChannelInfo struct {
	ID          string
	Title       string
	Description string
	Avatar      []Thumbnail
	Banner      []Thumbnail
	FamilySafe  bool
	Subscribers int64 // truncated to 3 significant digits, UnknownCount if absent
}
