// Package config loads runtime configuration for the Estudio terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   server base URL, e.g. http://localhost:5000/api
//	-t int      request timeout (seconds)
//	-s string   session directory
//	-w string   week start (sunday, mon, ...)
//
// # File schema
//
//	{
//	  "server_url": "http://localhost:5000/api",
//	  "request_timeout": "10s",
//	  "session_dir": "~/.estudio",
//	  "week_start": "monday"
//	}
package config
