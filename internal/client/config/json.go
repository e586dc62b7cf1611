package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pdfdrop/internal/flagx"
	"github.com/dmitrijs2005/pdfdrop/internal/timex"
)

// JsonConfig mirrors Config for the optional JSON file. Nil fields are
// left alone.
type JsonConfig struct {
	ServerURL *string         `json:"server_url"`
	DBPath    *string         `json:"db_path"`
	Timeout   *timex.Duration `json:"timeout"`
	Verbose   *bool           `json:"verbose"`
}

func (j *JsonConfig) apply(cfg *Config) {
	if j.ServerURL != nil {
		cfg.ServerURL = *j.ServerURL
	}
	if j.DBPath != nil {
		cfg.DBPath = *j.DBPath
	}
	if j.Timeout != nil {
		cfg.Timeout = j.Timeout.Duration
	}
	if j.Verbose != nil {
		cfg.Verbose = *j.Verbose
	}
}

// parseJson overlays cfg with the file named by -c/-config. It panics on read
// or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}
