package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/khonsu303/estudio/internal/flagx"
	"github.com/khonsu303/estudio/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used for decoding the client config file. It relies
// on timex.Duration so the timeout can be written as "5s" or as integer
// nanoseconds.
type FileConfig struct {
	ServerURL      string         `json:"server_url" yaml:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	SessionDir     string         `json:"session_dir" yaml:"session_dir"`
	WeekStart      string         `json:"week_start" yaml:"week_start"`
}

// parseFile overlays cfg with the file named by -c/-config. YAML is picked
// by extension, JSON otherwise. Read, decode and weekday errors panic.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.SessionDir != "" {
		cfg.SessionDir = fc.SessionDir
	}
	if fc.WeekStart != "" {
		d, err := ParseWeekday(fc.WeekStart)
		if err != nil {
			panic(err)
		}
		cfg.WeekStart = d
	}
}
