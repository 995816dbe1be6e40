package portfolio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/etnz/portfolio-analytics/curve"
	"gopkg.in/yaml.v3"
)

// Config describes a portfolio and where its inputs are.
//
// Relative file paths are resolved from the directory of the configuration file.
type Config struct {
	Name     string            `yaml:"name"`
	Base     string            `yaml:"base"`
	Accounts []string          `yaml:"accounts,omitempty"` // keep only these accounts, all when empty
	Files    FilesConfig       `yaml:"files"`
	FX       map[string]string `yaml:"fx,omitempty"` // currency -> price series id
	Curve    CurveConfig       `yaml:"curve,omitempty"`
	Options  OptionSettings    `yaml:"options,omitempty"`

	dir string
}

// FilesConfig lists the JSONL inputs.
type FilesConfig struct {
	Securities string `yaml:"securities"`
	Prices     string `yaml:"prices,omitempty"`
	Trades     string `yaml:"trades,omitempty"`
	Cash       string `yaml:"cash,omitempty"`
}

// CurveConfig locates the curve quotes in a JSON file.
type CurveConfig struct {
	Path   string `yaml:"path"`
	Select string `yaml:"select,omitempty"` // JSONPath of the quote table, "$" by default
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// ParseConfig decodes and validates a YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration and sets defaults.
func (c *Config) Validate() error {
	if c.Base == "" {
		return errors.New("base is required")
	}
	if c.Files.Securities == "" {
		return errors.New("files.securities is required")
	}
	if c.Name == "" {
		c.Name = "portfolio"
	}
	if c.Curve.Select == "" {
		c.Curve.Select = "$"
	}
	if c.Options.Vol == 0 {
		c.Options.Vol = 0.2
	}
	if c.Options.Vol < 0 {
		return fmt.Errorf("options.vol must be positive, got %v", c.Options.Vol)
	}
	return nil
}

// path resolves a file of the configuration.
func (c *Config) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.dir, name)
}

// withFile opens an optional input, an empty name is skipped.
func (c *Config) withFile(name string, read func(r io.Reader) error) error {
	if name == "" {
		return nil
	}
	f, err := os.Open(c.path(name))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// keep reports whether records of an account belong to the portfolio.
func (c *Config) keep(account string) bool {
	return len(c.Accounts) == 0 || slices.Contains(c.Accounts, account)
}

// Load reads every input of the configuration into a new portfolio. The
// portfolio is not priced yet.
func (c *Config) Load(reports ReportGenerator) (*Portfolio, error) {
	ref := NewReferenceData(c.Base)
	for cur, id := range c.FX {
		ref.SetFX(cur, id)
	}
	ref.SetOptionSettings(c.Options)

	if err := c.withFile(c.Files.Securities, func(r io.Reader) error { return DecodeSecurities(r, ref) }); err != nil {
		return nil, err
	}
	if err := c.withFile(c.Files.Prices, func(r io.Reader) error { return DecodePrices(r, ref) }); err != nil {
		return nil, err
	}
	err := c.withFile(c.Curve.Path, func(r io.Reader) error {
		q, err := curve.DecodeQuotes(r, c.Curve.Select)
		if err != nil {
			return err
		}
		ref.SetQuotes(q)
		return nil
	})
	if err != nil {
		return nil, err
	}

	p := New(c.Name, ref, reports)
	err = c.withFile(c.Files.Trades, func(r io.Reader) error {
		trades, err := DecodeTrades(r)
		if err != nil {
			return err
		}
		var errs []error
		for _, t := range trades {
			if !c.keep(t.Account) {
				continue
			}
			errs = append(errs, p.Ledger.AddTrade(t))
		}
		return errors.Join(errs...)
	})
	if err != nil {
		return nil, err
	}
	err = c.withFile(c.Files.Cash, func(r io.Reader) error {
		cash, err := DecodeCash(r)
		if err != nil {
			return err
		}
		var errs []error
		for _, m := range cash {
			if !c.keep(m.Account) {
				continue
			}
			errs = append(errs, p.Ledger.AddCash(m))
		}
		return errors.Join(errs...)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
