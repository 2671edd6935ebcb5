package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Board maps link-host suffixes to a display label ("Seek", "Indeed", ...).
type Board struct {
	Label    string   `yaml:"label" json:"label"`
	Suffixes []string `yaml:"suffixes" json:"suffixes"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Search struct {
		Engine       string  `yaml:"engine" json:"engine"`
		Location     string  `yaml:"location" json:"location"`
		DefaultPages int     `yaml:"default_pages" json:"default_pages"`
		MaxPages     int     `yaml:"max_pages" json:"max_pages"`
		PagePauseMS  int     `yaml:"page_pause_ms" json:"page_pause_ms"`
		Boards       []Board `yaml:"boards" json:"boards"`
	} `yaml:"search" json:"search"`

	Airtable struct {
		BaseID          string `yaml:"base_id" json:"base_id"`
		Table           string `yaml:"table" json:"table"`
		View            string `yaml:"view" json:"view"`
		NameField       string `yaml:"name_field" json:"name_field"`
		ProfessionField string `yaml:"profession_field" json:"profession_field"`
	} `yaml:"airtable" json:"airtable"`

	Export struct {
		FilenameMax     int    `yaml:"filename_max" json:"filename_max"`
		DefaultBasename string `yaml:"default_basename" json:"default_basename"`
	} `yaml:"export" json:"export"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 38472
	}
	if cfg.Search.Engine == "" {
		cfg.Search.Engine = "google_jobs"
	}
	if cfg.Search.Location == "" {
		cfg.Search.Location = "New Zealand"
	}
	if cfg.Search.DefaultPages == 0 {
		cfg.Search.DefaultPages = 2
	}
	if cfg.Search.MaxPages == 0 {
		cfg.Search.MaxPages = 5
	}
	if cfg.Search.PagePauseMS == 0 {
		cfg.Search.PagePauseMS = 600
	}
	if cfg.Export.FilenameMax == 0 {
		cfg.Export.FilenameMax = 120
	}
	if cfg.Export.DefaultBasename == "" {
		cfg.Export.DefaultBasename = "results"
	}
}
