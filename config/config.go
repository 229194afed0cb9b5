package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL = "https://www.cc.com"
	DefaultAddonID = "plugin.video.cc.com"
	DefaultMGID    = "mgid:arc:video:comedycentral.com:"
	DefaultTimeout = 15 * time.Second
)

// Menu modes as they travel in navigation parameters.
const (
	ModeShows    = "SHOWS"
	ModeGeneric  = "GENERIC"
	ModeSeason   = "SEASON"
	ModeEpisodes = "EPISODES"
	ModePlay     = "PLAY"
)

// MenuEntry is one static entry of the root menu.
type MenuEntry struct {
	Label string
	Mode  string
	URL   string
	Name  string
}

// Config is built once at startup and shared read-only by every component.
type Config struct {
	BaseURL  string
	BaseMGID string
	AddonID  string
	// Crumbs are the path segments that identify browsable page shapes.
	Crumbs []string
	// Qualities is the ceiling table indexed by Quality; the last tier is
	// effectively unlimited.
	Qualities []int
	Quality   int
	Debug     bool

	UseInputStream   bool
	ForceInputStream bool

	Timeout     time.Duration
	PageTTL     time.Duration
	EpisodesTTL time.Duration
	MetaTTL     time.Duration

	UserAgent string
	YTDLPPath string
	DataPath  string
	RunMode   string
	PurgeSpec string
	WarmSpec  string

	Fanart string
	Icon   string

	MainMenu []MenuEntry
	Messages map[string]string
}

var defaultMessages = map[string]string{
	"shows":             "Shows",
	"full.episodes":     "Full Episodes",
	"standup":           "Stand-Up",
	"digital.original":  "Digital Originals",
	"load.more":         "Load More...",
	"error.openurl":     "Unable to open the requested page",
	"error.no.json":     "No data found in the requested page",
	"error.no.video":    "Video not available",
	"error.wrong.type":  "Video type not supported",
	"error.unsupported": "This page is not supported",
	"error.generic":     "Something went wrong",
}

// Default returns the configuration used when no environment overrides apply.
func Default() *Config {
	c := &Config{
		BaseURL:     DefaultBaseURL,
		BaseMGID:    DefaultMGID,
		AddonID:     DefaultAddonID,
		Crumbs:      []string{"topic", "collections", "shows"},
		Qualities:   []int{360, 540, 720, 1080, 9999},
		Quality:     4,
		Timeout:     DefaultTimeout,
		PageTTL:     24 * time.Hour,
		EpisodesTTL: time.Hour,
		MetaTTL:     2 * time.Hour,
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		YTDLPPath:   "yt-dlp",
		DataPath:    "./data",
		RunMode:     "once",
		PurgeSpec:   "0 0 * * * *",
		WarmSpec:    "0 0 10,17 * * *",
		Messages:    copyMessages(defaultMessages),
	}
	c.buildMainMenu()
	return c
}

// Load reads the configuration from the environment. Call LoadEnvFile first
// to pick up a .env file.
func Load() *Config {
	c := Default()
	c.BaseURL = strings.TrimRight(getEnv("CC_BASE_URL", c.BaseURL), "/")
	c.BaseMGID = getEnv("CC_BASE_MGID", c.BaseMGID)
	c.AddonID = getEnv("CC_ADDON_ID", c.AddonID)
	c.Quality = getEnvInt("CC_QUALITY", c.Quality)
	c.Debug = getEnvBool("CC_DEBUG", c.Debug)
	c.UseInputStream = getEnvBool("CC_USE_INPUTSTREAM", c.UseInputStream)
	c.ForceInputStream = getEnvBool("CC_FORCE_INPUTSTREAM", c.ForceInputStream)
	c.Timeout = getEnvDuration("CC_TIMEOUT", c.Timeout)
	c.PageTTL = getEnvDuration("CC_PAGE_TTL", c.PageTTL)
	c.EpisodesTTL = getEnvDuration("CC_EPISODES_TTL", c.EpisodesTTL)
	c.MetaTTL = getEnvDuration("CC_META_TTL", c.MetaTTL)
	c.UserAgent = getEnv("CC_USER_AGENT", c.UserAgent)
	c.YTDLPPath = getEnv("CC_YTDLP_PATH", c.YTDLPPath)
	c.DataPath = getEnv("DATA_PATH", c.DataPath)
	c.RunMode = getEnv("RUN_MODE", c.RunMode)
	c.PurgeSpec = getEnv("CC_PURGE_SCHEDULE", c.PurgeSpec)
	c.WarmSpec = getEnv("CC_WARM_SCHEDULE", c.WarmSpec)
	c.Fanart = os.Getenv("CC_FANART")
	c.Icon = os.Getenv("CC_ICON")
	c.buildMainMenu()
	return c
}

// LoadEnvFile loads KEY=value pairs from path without overriding variables
// already present. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Ceiling returns the maximum encoding height for the configured quality.
// Out of range indexes clamp to the nearest tier.
func (c *Config) Ceiling() int {
	if len(c.Qualities) == 0 {
		return 0
	}
	i := c.Quality
	if i < 0 {
		i = 0
	}
	if i >= len(c.Qualities) {
		i = len(c.Qualities) - 1
	}
	return c.Qualities[i]
}

// SelectQuality reports whether the resolver should pick an encoding itself
// instead of handing the default stream to an adaptive player.
func (c *Config) SelectQuality() bool {
	return !c.UseInputStream || c.ForceInputStream
}

// T returns the display string for key, or the key itself when unknown.
func (c *Config) T(key string) string {
	if s, ok := c.Messages[key]; ok {
		return s
	}
	return key
}

func (c *Config) buildMainMenu() {
	c.MainMenu = []MenuEntry{
		{Label: c.T("shows"), Mode: ModeShows, URL: c.BaseURL + "/api/shows/1/40"},
		{Label: c.T("full.episodes"), Mode: ModeEpisodes, URL: c.BaseURL + "/api/episodes/1/20", Name: c.T("full.episodes")},
		{Label: c.T("standup"), Mode: ModeGeneric, URL: c.BaseURL + "/topic/stand-up", Name: c.T("standup")},
		{Label: c.T("digital.original"), Mode: ModeGeneric, URL: c.BaseURL + "/topic/digital-originals", Name: c.T("digital.original")},
	}
}

func copyMessages(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// getEnvDuration accepts Go durations ("90m") or a bare number of hours.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if h, err := strconv.Atoi(v); err == nil {
		return time.Duration(h) * time.Hour
	}
	return def
}
