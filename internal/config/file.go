package config

import "time"

// File is the structure of the .reviewlens configuration file.
// Every field is optional; unset fields keep the defaults.
type File struct {
	// Endpoint is the analyze route, e.g. http://127.0.0.1:8000/analyze.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Listen is the web front end's listen address.
	Listen string `yaml:"listen,omitempty"`

	// Timeout bounds each analyze call ("30s", "2m"). Zero means no bound.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Proxy is a SOCKS5 proxy address ("host:port").
	Proxy string `yaml:"proxy,omitempty"`

	UserAgent string `yaml:"userAgent,omitempty"`

	// Headers are sent with every analyze request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Language is the notification language ("en" or "tr").
	Language string `yaml:"language,omitempty"`

	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`

	// Parallel is the default --parallel of the analyze command.
	Parallel int `yaml:"parallel,omitempty"`

	// SessionTTL is how long an idle web session is kept.
	SessionTTL time.Duration `yaml:"sessionTTL,omitempty"`
}
