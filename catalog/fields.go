package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	durationPattern = regexp.MustCompile(`^(?:(\d+):)?(\d+):(\d+)`)
	datePattern     = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})`)
	episodePattern  = regexp.MustCompile(`(?i)season\s*(\d+)\s*episode\s*(\d+)`)
	seasonPattern   = regexp.MustCompile(`(?i)season\s\d+`)
	schemePattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

const defaultAired = "2000-01-01"

// ParseDuration converts "[hh:]mm:ss" to seconds. Anything else is 0.
func ParseDuration(s string) int {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	return atoi(m[1])*3600 + atoi(m[2])*60 + atoi(m[3])
}

// ParseDate converts "MM/DD/YYYY" to "YYYY-MM-DD", defaulting to 2000-01-01.
func ParseDate(s string) string {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return defaultAired
	}
	return m[3] + "-" + m[1] + "-" + m[2]
}

// ParseSeasonEpisode extracts the numbers from labels like
// "Season 3 Episode 12". Both are nil when the label carries none.
func ParseSeasonEpisode(s string) (season, episode *int) {
	m := episodePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}
	return intPtr(atoi(m[1])), intPtr(atoi(m[2]))
}

// IsSeasonLabel reports whether a selector label names a numbered season.
func IsSeasonLabel(s string) bool {
	return seasonPattern.MatchString(s)
}

// encodeColons percent-encodes ":" in the path and query of u, leaving a
// leading scheme separator and host port alone.
func encodeColons(u string) string {
	prefix := ""
	if loc := schemePattern.FindStringIndex(u); loc != nil {
		rest := u[loc[1]:]
		slash := strings.IndexAny(rest, "/?#")
		if slash < 0 {
			return u
		}
		prefix = u[:loc[1]] + rest[:slash]
		u = rest[slash:]
	}
	return prefix + strings.ReplaceAll(u, ":", "%3A")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
