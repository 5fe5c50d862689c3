package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/reviewlens/internal/notify"
)

// Default configuration values.
const (
	// DefaultEndpoint is the analyze route of a review service running
	// next to reviewlens.
	DefaultEndpoint = "http://127.0.0.1:8000/analyze"

	// DefaultListenAddress is where the web front end listens.
	DefaultListenAddress = ":8080"

	// DefaultTimeout of zero leaves analyze calls unbounded. Review
	// summarization can take minutes on long product pages.
	DefaultTimeout time.Duration = 0

	// DefaultLanguage selects English notifications.
	DefaultLanguage = "en"

	// DefaultParallel submits analyze URLs one at a time.
	DefaultParallel = 1

	// DefaultSessionTTL drops web sessions after 30 idle minutes.
	DefaultSessionTTL = 30 * time.Minute

	// DefaultUserAgent identifies reviewlens in the endpoint's access logs.
	DefaultUserAgent = "reviewlens/1.0 (+https://github.com/nao1215/reviewlens)"

	// DefaultMaxBodySize limits the analyze response body size.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "reviewlens"
)

// Config holds all configuration options for reviewlens.
// It is built from defaults, then the config file, then CLI flags.
type Config struct {
	// Endpoint is the absolute URL of the analyze route.
	// The product URL is appended as the "url" query parameter.
	Endpoint string

	// ListenAddress is the web front end's listen address ("host:port").
	ListenAddress string

	// Timeout bounds each analyze call. Zero means no bound.
	Timeout time.Duration

	// ProxyAddress routes analyze calls through a SOCKS5 proxy ("host:port").
	// Empty means direct connections (HTTP_PROXY and friends still apply).
	ProxyAddress string

	// UserAgent is the User-Agent header sent to the endpoint.
	UserAgent string

	// Headers are extra request headers sent to the endpoint, typically
	// an API key.
	Headers map[string]string

	// Language is the notification language ("en" or "tr").
	Language string

	// MaxBodySize is the largest accepted response body in bytes.
	MaxBodySize int64

	// Parallel is the number of overlapping submits for the analyze command.
	Parallel int

	// SessionTTL is how long an idle web session is kept.
	SessionTTL time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit configuration file path, if any.
	ConfigFilePath string

	// JSONReport selects JSON output for the analyze command.
	JSONReport bool

	// MarkdownReport selects Markdown output for the analyze command.
	MarkdownReport bool

	// ReportFile is an extra destination for the analyze report. The
	// report is always printed to stdout as well.
	ReportFile string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Endpoint:      DefaultEndpoint,
		ListenAddress: DefaultListenAddress,
		Timeout:       DefaultTimeout,
		UserAgent:     DefaultUserAgent,
		Language:      DefaultLanguage,
		MaxBodySize:   DefaultMaxBodySize,
		Parallel:      DefaultParallel,
		SessionTTL:    DefaultSessionTTL,
	}
}

// ApplyFile overlays the values set in f onto c.
// Zero values in f leave c unchanged; headers are merged with f winning.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Endpoint != "" {
		c.Endpoint = f.Endpoint
	}
	if f.Listen != "" {
		c.ListenAddress = f.Listen
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.Proxy != "" {
		c.ProxyAddress = f.Proxy
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if len(f.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			c.Headers[k] = v
		}
	}
	if f.Language != "" {
		c.Language = f.Language
	}
	if f.MaxBodySize != 0 {
		c.MaxBodySize = f.MaxBodySize
	}
	if f.Parallel != 0 {
		c.Parallel = f.Parallel
	}
	if f.SessionTTL != 0 {
		c.SessionTTL = f.SessionTTL
	}
}

// XDGConfigDir returns the XDG config directory for reviewlens.
// On Linux: ~/.config/reviewlens
// On macOS: ~/Library/Application Support/reviewlens
// On Windows: %APPDATA%\reviewlens
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the config file path inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrNoEndpoint
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.Endpoint)
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	if _, err := notify.ParseLanguage(c.Language); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, c.Language)
	}

	if c.Parallel <= 0 {
		return ErrInvalidParallel
	}

	if c.SessionTTL <= 0 {
		return ErrInvalidSessionTTL
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
