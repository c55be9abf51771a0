package blob

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ytget/ytx/errs"
	"github.com/ytget/ytx/internal/logger"
)

// Kind identifies a named embedded data block on a watch/browse page.
type Kind int

const (
	// KindInitialData is the browse payload (playlists, channels, search).
	KindInitialData Kind = iota
	// KindPlayerResponse is the watch payload (video metadata and streams).
	KindPlayerResponse
	// KindConfig is the page configuration object (API key, player script URL).
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindInitialData:
		return "initial_data"
	case KindPlayerResponse:
		return "player_response"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Raw is a located blob: the kind it was found under and its JSON bytes.
// It lives only until normalization; callers must not retain it past the
// extraction call that produced it.
type Raw struct {
	Kind Kind
	Data json.RawMessage
}

// Marker prefixes per kind, in priority order. Upstream has shipped both
// the var form and the window-property form over time.
var markers = map[Kind][]string{
	KindInitialData: {
		`var ytInitialData = `,
		`window["ytInitialData"] = `,
		`window.ytInitialData = `,
	},
	KindPlayerResponse: {
		`var ytInitialPlayerResponse = `,
		`window["ytInitialPlayerResponse"] = `,
	},
	KindConfig: {
		`ytcfg.set(`,
	},
}

var log = logger.WithComponent(logger.ComponentBlob)

// Locate scans a page body for the embedded block of the given kind and
// returns its raw JSON bytes.
//
// The page is first narrowed to <script> elements; if the document does not
// parse as HTML the whole body is scanned instead, so raw JS input also
// works. Returns errs.ErrBlobMissing when no marker is present and
// *errs.BlobMalformedError when a marker is found but its object never
// balances before the end of input.
func Locate(page []byte, kind Kind) (*Raw, error) {
	prefixes, ok := markers[kind]
	if !ok {
		return nil, fmt.Errorf("blob: unknown kind %d", kind)
	}

	for _, text := range scriptSections(page) {
		for _, prefix := range prefixes {
			idx := strings.Index(text, prefix)
			if idx < 0 {
				continue
			}
			start := idx + len(prefix)
			data, err := scanObject(text[start:])
			if err != nil {
				return nil, &errs.BlobMalformedError{Kind: kind.String(), Offset: start}
			}
			if !json.Valid([]byte(data)) {
				return nil, &errs.BlobMalformedError{Kind: kind.String(), Offset: start}
			}
			log.Debug("Located blob", map[string]interface{}{
				"kind":   kind.String(),
				"marker": strings.TrimSpace(prefix),
				"size":   len(data),
			})
			return &Raw{Kind: kind, Data: json.RawMessage(data)}, nil
		}
	}

	return nil, fmt.Errorf("blob %s: %w", kind, errs.ErrBlobMissing)
}

// scriptSections returns the text of each <script> element, falling back to
// the raw body when the input is not parseable HTML or carries no scripts.
func scriptSections(page []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err == nil {
		var sections []string
		doc.Find("script").Each(func(_ int, s *goquery.Selection) {
			if text := s.Text(); text != "" {
				sections = append(sections, text)
			}
		})
		if len(sections) > 0 {
			return sections
		}
	}
	return []string{string(page)}
}

// scanObject extracts a balanced JSON object from the start of s. It tracks
// brace/bracket depth together with string and escape state, so braces
// inside string values do not confuse the scan. The trailing delimiter
// (";", ")" or nothing at all) is ignored.
func scanObject(s string) (string, error) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	if i >= len(s) || s[i] != '{' {
		return "", fmt.Errorf("no object at scan start")
	}

	depth := 0
	inString := false
	escaped := false
	for j := i; j < len(s); j++ {
		c := s[j]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[i : j+1], nil
			}
			if depth < 0 {
				return "", fmt.Errorf("unbalanced nesting at offset %d", j)
			}
		}
	}
	return "", fmt.Errorf("nesting never balances")
}
