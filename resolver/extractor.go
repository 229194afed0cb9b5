package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"cc-catalog/config"

	"github.com/sirupsen/logrus"
)

// Extractor turns a page URL or media locator into a playlist of entries,
// each with its alternative encodings.
type Extractor interface {
	Extract(ctx context.Context, locator string) (*Extraction, error)
}

// Extraction is the subset of the extraction result the resolver reads.
type Extraction struct {
	Type    string  `json:"_type"`
	Entries []Entry `json:"entries"`
}

type Entry struct {
	URL                string                `json:"url"`
	PlaylistIndex      int                   `json:"playlist_index"`
	PlaylistAutonumber int                   `json:"playlist_autonumber"`
	NEntries           int                   `json:"n_entries"`
	Thumbnail          string                `json:"thumbnail"`
	Duration           float64               `json:"duration"`
	Formats            []Format              `json:"formats"`
	Subtitles          map[string][]Subtitle `json:"subtitles"`
}

// Format is one encoding. Height is nil for audio-only and unknown formats.
type Format struct {
	FormatID string `json:"format_id"`
	URL      string `json:"url"`
	Height   *int   `json:"height"`
}

type Subtitle struct {
	URL string `json:"url"`
	Ext string `json:"ext"`
}

// YTDLP runs the yt-dlp binary and decodes its JSON dump.
type YTDLP struct {
	path    string
	timeout time.Duration
	log     *logrus.Entry
}

func NewYTDLP(path string, timeout time.Duration, log *logrus.Entry) *YTDLP {
	if path == "" {
		path = "yt-dlp"
	}
	return &YTDLP{path: path, timeout: timeout, log: log.WithField("component", "yt-dlp")}
}

// NewYTDLPFromConfig uses the configured binary and the shared request
// timeout.
func NewYTDLPFromConfig(cfg *config.Config, log *logrus.Entry) *YTDLP {
	return NewYTDLP(cfg.YTDLPPath, cfg.Timeout, log)
}

func (y *YTDLP) Extract(ctx context.Context, locator string) (*Extraction, error) {
	bin, err := exec.LookPath(y.path)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp not found: %v", err)
	}

	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	args := []string{"--dump-single-json", "--no-warnings", "--no-progress", locator}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	y.log.WithField("locator", locator).Debug("extracting media")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	var out Extraction
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("failed to decode yt-dlp output: %v", err)
	}
	return &out, nil
}
