package config

import (
	"fmt"
	"os"

	"github.com/clearbrook/stream-temp-sim/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadSiteParams reads the site parameter YAML file. Only keys present in
// the file are set; the rest stay nil so validation skips them. An empty
// path returns an empty parameter set.
func LoadSiteParams(path string) (domain.SiteParams, error) {
	if path == "" {
		return domain.SiteParams{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SiteParams{}, fmt.Errorf("read site params file %q: %w", path, err)
	}

	var params domain.SiteParams
	if err := yaml.Unmarshal(data, &params); err != nil {
		return domain.SiteParams{}, fmt.Errorf("parse site params file %q: %w", path, err)
	}
	return params, nil
}
