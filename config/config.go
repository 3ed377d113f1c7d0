// Package config loads the generator configuration and the environment
// identifiers that select the vendor catalog.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/sramgen/fitting"
	"github.com/sarchlab/sramgen/wrapper"
)

// Names of the environment variables that identify the target.
const (
	EnvTechnology = "SRAMGEN_TECH"
	EnvChip       = "SRAMGEN_CHIP"
)

// ErrInvalidConfig is returned when a configuration file cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of the generator.
type Config struct {
	// CatalogRoot is the directory holding the technology catalogs.
	CatalogRoot string `yaml:"catalogRoot"`

	// OutputDir receives the generated module files.
	OutputDir string `yaml:"outputDir"`

	// Vendors maps chip identifiers to vendors. Unmapped chips name their
	// vendor directly.
	Vendors map[string]string `yaml:"vendors"`

	Fitting fitting.Options `yaml:"fitting"`

	// RecordPath is the run history database. Empty disables the history.
	RecordPath string `yaml:"recordPath"`

	GuardPrefix string `yaml:"guardPrefix"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		CatalogRoot: "catalog",
		OutputDir:   ".",
		Vendors:     map[string]string{},
		Fitting:     fitting.DefaultOptions(),
		GuardPrefix: wrapper.DefaultGuardPrefix,
	}
}

// SearchPaths lists the files tried, in order, when no path is given.
func SearchPaths() []string {
	paths := []string{"sramgen.yaml", ".sramgen.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "sramgen", "config.yaml"))
	}

	return paths
}

// Load reads the configuration at path. With an empty path, the first
// existing file of SearchPaths is read, and the defaults are returned when
// there is none. It also returns the file that was used.
func Load(path string) (Config, string, error) {
	if path != "" {
		c, err := LoadFile(path)
		return c, path, err
	}

	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err != nil {
			continue
		}

		c, err := LoadFile(p)

		return c, p, err
	}

	return DefaultConfig(), "", nil
}

// LoadFile reads one configuration file. Settings absent from the file keep
// their defaults.
func LoadFile(path string) (Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(buf, &c); err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "%s: %v", path, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "in %s", path)
	}

	return c, nil
}

// Validate checks the value ranges of the settings.
func (c Config) Validate() error {
	if c.Fitting.Tolerance < 0 {
		return errors.Wrapf(ErrInvalidConfig,
			"tolerance must not be negative, got %g", c.Fitting.Tolerance)
	}

	if c.Fitting.ExhaustiveLimit < 0 {
		return errors.Wrapf(ErrInvalidConfig,
			"exhaustive limit must not be negative, got %d",
			c.Fitting.ExhaustiveLimit)
	}

	if c.Fitting.MaxTiles < 0 {
		return errors.Wrapf(ErrInvalidConfig,
			"max tiles must not be negative, got %d", c.Fitting.MaxTiles)
	}

	return nil
}

// Vendor returns the vendor of a chip.
func (c Config) Vendor(chip string) string {
	if v, ok := c.Vendors[chip]; ok {
		return v
	}

	return strings.ToLower(chip)
}

// Environment identifies the technology and chip being targeted.
type Environment struct {
	Technology string
	Chip       string
}

// LoadEnv loads the given dotenv files, or ".env" when none is given, and
// reads the target identifiers. Missing files are ignored. Variables that
// are already set are not overridden.
func LoadEnv(files ...string) (Environment, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return Environment{}, errors.Wrapf(err, "loading %s", f)
		}
	}

	return Environment{
		Technology: os.Getenv(EnvTechnology),
		Chip:       os.Getenv(EnvChip),
	}, nil
}

// Validate checks that both identifiers are known.
func (e Environment) Validate() error {
	if e.Technology == "" {
		return errors.Errorf("technology is not set, use --tech or %s",
			EnvTechnology)
	}

	if e.Chip == "" {
		return errors.Errorf("chip is not set, use --chip or %s", EnvChip)
	}

	return nil
}
