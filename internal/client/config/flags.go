package config

import (
	"flag"
	"time"

	"github.com/khonsu303/estudio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   server base URL
//	-t int      request timeout (in seconds)
//	-s string   session directory
//	-w string   first day of the week in the calendar
//
// Only these flags are looked at; the rest of args is ignored.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-s", "-w"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDir, "s", cfg.SessionDir, "session directory")
	weekStart := fs.String("w", "", "first day of the week")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	if *weekStart != "" {
		d, err := ParseWeekday(*weekStart)
		if err != nil {
			panic(err)
		}
		cfg.WeekStart = d
	}
}
