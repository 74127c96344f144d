package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the Estudio terminal client.
//
// Fields:
//   - ServerURL: base URL of the REST API, including the /api prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionDir: where the saved login lives; "~/" expands to the home dir.
//   - WeekStart: first column of the month calendar.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	SessionDir     string
	WeekStart      time.Weekday
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000/api"
	c.RequestTimeout = 10 * time.Second
	c.SessionDir = "~/.estudio"
	c.WeekStart = time.Sunday
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON or YAML file (-c/-config) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	return cfg
}

// ParseWeekday accepts an English day name, case-insensitive, or its
// three-letter prefix.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}
