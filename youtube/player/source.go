package player

import (
	"regexp"
	"strings"
)

const scriptBase = "https://www.youtube.com"

var (
	jsURLRegexp   = regexp.MustCompile(`"jsUrl":"([^"]+)"`)
	versionRegexp = regexp.MustCompile(`/s/player/([0-9a-zA-Z_-]+)/`)
)

// FindScriptURL scrapes the player script reference from a page body and
// returns its absolute URL.
func FindScriptURL(page []byte) (string, error) {
	m := jsURLRegexp.FindSubmatch(page)
	if len(m) < 2 || len(m[1]) == 0 {
		return "", NewError(ErrCodeScriptNotFound, "no player script reference on page")
	}
	raw := strings.ReplaceAll(string(m[1]), `\/`, `/`)
	if strings.HasPrefix(raw, "http") {
		return raw, nil
	}
	return scriptBase + raw, nil
}

// VersionFromURL extracts the player version identifier from a script URL.
// The version keys the program cache; an unrecognized URL shape falls back
// to the URL itself so distinct scripts never share a cache slot.
func VersionFromURL(url string) string {
	if m := versionRegexp.FindStringSubmatch(url); len(m) == 2 {
		return m[1]
	}
	return url
}
