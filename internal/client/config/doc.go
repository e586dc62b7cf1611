// Package config loads runtime configuration for the pdfdrop CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string     base URL of the pdfdrop server
//	-d string     path of the local SQLite database holding the session
//	-t duration   timeout for API calls (login, presigned-url); uploads are not bounded
//	-v            debug logging on stderr
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "db_path": "pdfdrop.db",
//	  "timeout": "30s",
//	  "verbose": false
//	}
package config
