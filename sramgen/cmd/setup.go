package cmd

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/sramgen/catalog"
	"github.com/sarchlab/sramgen/config"
	"github.com/sarchlab/sramgen/ram"
)

// A session holds what every command resolves before doing its work.
type session struct {
	cfg     config.Config
	env     config.Environment
	vendor  string
	catalog *catalog.Catalog
}

// failed logs a fatal condition and returns the error for the command to
// report.
func failed(fields log.Fields, err error, msg string) error {
	log.WithFields(fields).WithError(err).Error(msg)
	return err
}

func loadConfig() (config.Config, error) {
	cfg, used, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, failed(nil, err, "cannot load configuration")
	}

	if used != "" {
		log.WithField("path", used).Debug("configuration loaded")
	}

	if catalogRoot != "" {
		cfg.CatalogRoot = catalogRoot
	}

	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	return cfg, nil
}

// openSession loads the configuration and the vendor catalog. A missing
// catalog leaves the session without one unless required is set.
func openSession(required bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, failed(nil, err, "cannot load environment")
	}

	if technology != "" {
		env.Technology = technology
	}

	if chip != "" {
		env.Chip = chip
	}

	if err := env.Validate(); err != nil {
		return nil, failed(nil, err, "target is unknown")
	}

	s.env = env
	s.vendor = s.cfg.Vendor(env.Chip)

	fields := log.Fields{
		"technology": env.Technology,
		"vendor":     s.vendor,
	}

	s.catalog, err = catalog.Load(s.cfg.CatalogRoot, env.Technology, s.vendor)

	switch {
	case err == nil:
		log.WithFields(fields).
			WithField("dir", s.catalog.Dir()).
			WithField("macros", s.catalog.NumMacros()).
			Debug("catalog loaded")
	case errors.Is(err, catalog.ErrNotFound) && !required:
		log.WithFields(fields).WithError(err).
			Warn("no vendor catalog, memories use the behavioral model")
	default:
		return nil, failed(fields, err, "cannot load catalog")
	}

	return s, nil
}

// requestFields identifies a request and the vendor in diagnostics.
func (s *session) requestFields(r ram.Request) log.Fields {
	fields := r.Fields()
	fields["vendor"] = s.vendor

	return fields
}

// parseRequest builds a request from the command arguments. A single
// argument is split on the commas that are not inside a loop list.
func parseRequest(args []string) (ram.Request, error) {
	tokens := args
	if len(args) == 1 {
		tokens = splitTokens(args[0])
	}

	r, err := ram.ParseArgs(tokens)
	if err != nil {
		return ram.Request{}, failed(
			log.Fields{"args": strings.Join(args, " ")}, err,
			"invalid memory request")
	}

	if len(macros) > 0 {
		r.Macros = macros
	}

	return r, nil
}

func splitTokens(line string) []string {
	var (
		tokens []string
		depth  int
		quoted bool
		start  int
	)

	for i, ch := range line {
		switch ch {
		case '"':
			quoted = !quoted
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case ',':
			if depth == 0 && !quoted {
				tokens = append(tokens, strings.TrimSpace(line[start:i]))
				start = i + 1
			}
		}
	}

	return append(tokens, strings.TrimSpace(line[start:]))
}
