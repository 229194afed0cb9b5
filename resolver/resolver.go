package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cc-catalog/catalog"
	"cc-catalog/config"
	"cc-catalog/storage"

	"github.com/sirupsen/logrus"
)

var (
	ErrMediaUnavailable     = errors.New("media unavailable")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// Encoding is one candidate stream of an act.
type Encoding struct {
	Height   int
	URL      string
	FormatID string
}

// Segment is one act of a video, ready to be queued.
type Segment struct {
	Index     int
	Label     string
	URL       string
	Encodings []Encoding
	Subtitles []string
	Thumbnail string
	Info      catalog.VideoInfo
}

// PlaylistEntry is a segment placed in the player queue.
type PlaylistEntry struct {
	Position  int
	Label     string
	URL       string
	Subtitles []string
	Thumbnail string
	Info      catalog.VideoInfo
	Start     bool
	// Adaptive hands the HLS manifest to an adaptive streaming player.
	Adaptive bool
}

type Resolver struct {
	cfg       *config.Config
	extractor Extractor
	cache     storage.Cache
	log       *logrus.Entry
}

func NewResolver(cfg *config.Config, extractor Extractor, cache storage.Cache, log *logrus.Entry) *Resolver {
	return &Resolver{
		cfg:       cfg,
		extractor: extractor,
		cache:     cache,
		log:       log.WithField("component", "resolver"),
	}
}

// Resolve returns the acts of the video at url, ordered by act index. When
// selectQuality is set each act streams the best encoding under the
// configured ceiling; otherwise the default stream is kept.
func (r *Resolver) Resolve(ctx context.Context, name, url, locator string, selectQuality bool) ([]Segment, error) {
	if locator != "" && !strings.HasPrefix(locator, "mgid") {
		locator = r.cfg.BaseMGID + locator
	}
	target := locator
	if target == "" {
		target = url
	}
	log := r.log.WithField("url", url).WithField("locator", locator)

	ext := r.extract(ctx, target)
	if ext == nil {
		log.Error("extraction returned nothing")
		return nil, fmt.Errorf("%w: %s", ErrMediaUnavailable, target)
	}
	if ext.Type != "playlist" {
		log.WithField("type", ext.Type).Error("extraction type not supported")
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, ext.Type)
	}

	info, _ := catalog.CachedInfo(ctx, r.cfg, r.cache, url)
	ceiling := r.cfg.Ceiling()

	segments := make([]Segment, 0, len(ext.Entries))
	for i, entry := range ext.Entries {
		idx := entry.PlaylistIndex
		if idx == 0 {
			idx = entry.PlaylistAutonumber
		}
		if idx == 0 {
			idx = i + 1
		}

		label := fmt.Sprintf("%s - Act %d", name, idx)
		if entry.NEntries == 1 {
			label = name
		}

		seg := Segment{
			Index:     idx,
			Label:     label,
			URL:       entry.URL,
			Encodings: encodings(entry.Formats),
			Subtitles: englishVTT(entry.Subtitles),
			Thumbnail: entry.Thumbnail,
			Info:      info,
		}
		seg.Info.Title = label
		if entry.Duration > 0 {
			d := int(entry.Duration)
			seg.Info.Duration = &d
		}

		if selectQuality {
			if enc, ok := SelectEncoding(seg.Encodings, ceiling); ok {
				log.WithField("format", enc.FormatID).Debug("quality found")
				seg.URL = enc.URL
			}
		}
		segments = append(segments, seg)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Index < segments[j].Index
	})
	return segments, nil
}

// extract returns the cached extraction for target or runs the extractor.
// Failures yield nil.
func (r *Resolver) extract(ctx context.Context, target string) *Extraction {
	key := storage.Key(r.cfg.AddonID, "ytInfo", target)

	var cached Extraction
	if ok, err := storage.GetJSON(ctx, r.cache, key, &cached); err == nil && ok {
		return &cached
	}

	ext, err := r.extractor.Extract(ctx, target)
	if err != nil || ext == nil {
		r.log.WithField("locator", target).WithError(err).Warn("extraction failed")
		return nil
	}
	if err := storage.SetJSON(ctx, r.cache, key, ext, r.cfg.MetaTTL); err != nil {
		r.log.WithError(err).Warn("failed to cache extraction")
	}
	return ext
}

// SelectEncoding scans encodings from the top (they are sorted ascending by
// height) and returns the first one not taller than ceiling.
func SelectEncoding(encodings []Encoding, ceiling int) (Encoding, bool) {
	for i := len(encodings) - 1; i >= 0; i-- {
		if encodings[i].Height <= ceiling {
			return encodings[i], true
		}
	}
	return Encoding{}, false
}

// encodings keeps the formats that declare a height, in upstream order.
func encodings(formats []Format) []Encoding {
	out := make([]Encoding, 0, len(formats))
	for _, f := range formats {
		if f.Height == nil || f.URL == "" {
			continue
		}
		out = append(out, Encoding{Height: *f.Height, URL: f.URL, FormatID: f.FormatID})
	}
	return out
}

func englishVTT(subs map[string][]Subtitle) []string {
	var urls []string
	for _, s := range subs["en"] {
		if s.URL != "" && s.Ext == "vtt" {
			urls = append(urls, s.URL)
		}
	}
	return urls
}

// Playlist places segments in queue order; the first act starts playback.
func Playlist(segments []Segment) []PlaylistEntry {
	entries := make([]PlaylistEntry, 0, len(segments))
	for i, s := range segments {
		entries = append(entries, PlaylistEntry{
			Position:  s.Index - 1,
			Label:     s.Label,
			URL:       s.URL,
			Subtitles: s.Subtitles,
			Thumbnail: s.Thumbnail,
			Info:      s.Info,
			Start:     i == 0,
		})
	}
	return entries
}
