// Package feed fetches and normalizes RSS/Atom entries from the configured
// source list. It uses the gofeed library with circuit breaker and retry
// logic; a failing source is skipped, never fatal to the run.
package feed

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one configured RSS/Atom feed.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Label returns the display name used as the item source, falling back to
// the URL when no name is configured.
func (s Source) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

type sourceFile struct {
	Feeds []Source `yaml:"feeds"`
}

// LoadSources reads the feed list from a YAML file. A missing or unreadable
// file yields an empty list with a warning; the digest still goes out, just
// without a news section.
func LoadSources(path string) []Source {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("feed source file not readable",
			slog.String("path", path),
			slog.Any("error", err))
		return nil
	}

	var f sourceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		slog.Warn("feed source file not parseable",
			slog.String("path", path),
			slog.Any("error", err))
		return nil
	}

	sources := make([]Source, 0, len(f.Feeds))
	for _, s := range f.Feeds {
		if s.URL == "" {
			slog.Warn("skipping feed source without url", slog.String("name", s.Name))
			continue
		}
		sources = append(sources, s)
	}
	return sources
}

// MustLoadSources is LoadSources for callers that treat an empty feed list
// as a configuration error.
func MustLoadSources(path string) ([]Source, error) {
	sources := LoadSources(path)
	if len(sources) == 0 {
		return nil, fmt.Errorf("MustLoadSources: no usable sources in %s", path)
	}
	return sources, nil
}
