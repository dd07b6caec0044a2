package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/roadtrip/internal/route"
)

// Source describes a spreadsheet or web page to read a table from.
type Source struct {
	Path      string `yaml:"path"`
	Format    string `yaml:"format"` // "xlsx" (default) or "html"
	Sheet     string `yaml:"sheet"`  // empty means the first sheet
	HeaderRow int    `yaml:"header_row"`
}

type Search struct {
	MaxSpan    int `yaml:"max_span"` // 0 means one day per team
	MaxSpanCap int `yaml:"max_span_cap"`
}

type Server struct {
	Addr      string `yaml:"addr"`
	CacheSize int    `yaml:"cache_size"`
}

type Stadium struct {
	Team string  `yaml:"team"`
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

type Config struct {
	Schedule  Source    `yaml:"schedule"`
	Distances Source    `yaml:"distances"`
	Search    Search    `yaml:"search"`
	Server    Server    `yaml:"server"`
	Stadiums  []Stadium `yaml:"stadiums"`
}

// StadiumMap returns the configured stadiums keyed by team.
func (c *Config) StadiumMap() map[string]route.Stadium {
	m := make(map[string]route.Stadium, len(c.Stadiums))
	for _, st := range c.Stadiums {
		m[st.Team] = route.Stadium{Name: st.Name, Lat: st.Lat, Lon: st.Lon}
	}
	return m
}

// LoadFromBytes parses YAML bytes into a Config, fills defaults and
// validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) setDefaults() {
	for _, s := range []*Source{&c.Schedule, &c.Distances} {
		if s.Format == "" {
			s.Format = "xlsx"
		}
		if s.HeaderRow == 0 {
			s.HeaderRow = 1
		}
	}
	if c.Search.MaxSpanCap == 0 {
		c.Search.MaxSpanCap = 14
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = 256
	}
}

func (c *Config) validate() error {
	if c.Schedule.Path == "" {
		return fmt.Errorf("schedule.path is required")
	}

	sources := []struct {
		name string
		src  Source
	}{
		{"schedule", c.Schedule},
		{"distances", c.Distances},
	}
	for _, entry := range sources {
		name, s := entry.name, entry.src
		switch strings.ToLower(s.Format) {
		case "xlsx", "html":
		default:
			return fmt.Errorf("%s.format %q must be xlsx or html", name, s.Format)
		}
		if s.HeaderRow < 1 {
			return fmt.Errorf("%s.header_row must be at least 1", name)
		}
	}
	if c.Distances.Path != "" && strings.EqualFold(c.Distances.Format, "html") {
		return fmt.Errorf("distances can only be read from xlsx")
	}

	if c.Search.MaxSpan < 0 {
		return fmt.Errorf("search.max_span must not be negative")
	}
	if c.Search.MaxSpanCap < 1 {
		return fmt.Errorf("search.max_span_cap must be at least 1")
	}
	if c.Search.MaxSpan > c.Search.MaxSpanCap {
		return fmt.Errorf("search.max_span %d exceeds max_span_cap %d", c.Search.MaxSpan, c.Search.MaxSpanCap)
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("server.cache_size must not be negative")
	}

	seen := make(map[string]bool)
	for _, st := range c.Stadiums {
		if st.Team == "" {
			return fmt.Errorf("stadium %q has no team", st.Name)
		}
		if seen[st.Team] {
			return fmt.Errorf("team %q has more than one stadium", st.Team)
		}
		seen[st.Team] = true
		if st.Lat < -90 || st.Lat > 90 || st.Lon < -180 || st.Lon > 180 {
			return fmt.Errorf("stadium %q has invalid coordinates (%v, %v)", st.Name, st.Lat, st.Lon)
		}
	}

	return nil
}
