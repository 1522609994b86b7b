package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/conduit-lang/bibkit/internal/format"
	"github.com/conduit-lang/bibkit/internal/model"
)

// Config represents the bibkit configuration
type Config struct {
	Save    SaveConfig    `mapstructure:"save"`
	Journal JournalConfig `mapstructure:"journal"`
	Verbose bool          `mapstructure:"verbose"`
}

// SaveConfig controls how libraries are written
type SaveConfig struct {
	// Type is "metadata" or "plain".
	Type string `mapstructure:"type"`
	// Order is "original" or "specified"; Sort lists "field" or
	// "field:desc" criteria for the specified order.
	Order        string   `mapstructure:"order"`
	Sort         []string `mapstructure:"sort"`
	Newline      string   `mapstructure:"newline"`
	Reformat     bool     `mapstructure:"reformat"`
	GenerateKeys bool     `mapstructure:"generate_keys"`
	Charset      string   `mapstructure:"charset"`

	ResolveOnlySelected bool     `mapstructure:"resolve_only_selected"`
	ResolvableFields    []string `mapstructure:"resolvable_fields"`
}

// JournalConfig represents the change journal database
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
}

var newlines = map[string]string{
	"lf":   "\n",
	"crlf": "\r\n",
	"cr":   "\r",
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("save.type", "metadata")
	v.SetDefault("save.order", string(model.OrderOriginal))
	v.SetDefault("save.sort", []string{})
	v.SetDefault("save.newline", "lf")
	v.SetDefault("save.reformat", false)
	v.SetDefault("save.generate_keys", false)
	v.SetDefault("save.charset", "")
	v.SetDefault("save.resolve_only_selected", true)
	v.SetDefault("save.resolvable_fields", []string{})
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.driver", "")
	v.SetDefault("journal.dsn", "bibkit-journal.db")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("BIBKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load loads the configuration from the nearest bibkit.yml or bibkit.yaml,
// searching from the current directory upwards. Defaults apply when there
// is none.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("bibkit")
	v.SetConfigType("yaml")
	if root, err := ProjectRoot(); err == nil {
		v.AddConfigPath(root)
	} else {
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFile loads the configuration from an explicit path
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

// ProjectRoot finds the closest directory holding a bibkit config file
func ProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		for _, name := range []string{"bibkit.yml", "bibkit.yaml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no bibkit.yml found")
		}
		dir = parent
	}
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// FormatConfig converts the save section into rendering options
func (s SaveConfig) FormatConfig() (*format.Config, error) {
	cfg := format.DefaultConfig()
	cfg.WithMetadata = strings.ToLower(s.Type) != "plain"
	cfg.Reformat = s.Reformat
	cfg.GenerateKeys = s.GenerateKeys
	cfg.Charset = s.Charset
	cfg.ResolveOnlySelected = s.ResolveOnlySelected
	cfg.ResolvableFields = s.ResolvableFields
	if nl, ok := newlines[strings.ToLower(s.Newline)]; ok {
		cfg.Newline = nl
	}

	orderType, err := model.ParseOrderType(s.Order)
	if err != nil {
		return nil, fmt.Errorf("save.order: %w", err)
	}
	if orderType == model.OrderTable {
		return nil, fmt.Errorf("save.order: %s order cannot be used for saving", orderType)
	}
	criteria, err := parseSort(s.Sort)
	if err != nil {
		return nil, err
	}
	cfg.Order = model.SaveOrder{Type: orderType, Criteria: criteria}
	return cfg, nil
}

func parseSort(specs []string) ([]model.SortCriterion, error) {
	var criteria []model.SortCriterion
	for _, spec := range specs {
		field, dir, _ := strings.Cut(strings.TrimSpace(spec), ":")
		if field == "" {
			return nil, fmt.Errorf("save.sort: empty field in %q", spec)
		}
		c := model.SortCriterion{Field: strings.ToLower(field)}
		switch strings.ToLower(dir) {
		case "", "asc":
		case "desc":
			c.Descending = true
		default:
			return nil, fmt.Errorf("save.sort: unknown direction %q in %q", dir, spec)
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	switch strings.ToLower(cfg.Save.Type) {
	case "metadata", "plain":
	default:
		return fmt.Errorf("save.type must be 'metadata' or 'plain', got: %s", cfg.Save.Type)
	}
	if _, ok := newlines[strings.ToLower(cfg.Save.Newline)]; !ok {
		return fmt.Errorf("save.newline must be one of lf, crlf, cr, got: %s", cfg.Save.Newline)
	}
	if _, err := cfg.Save.FormatConfig(); err != nil {
		return err
	}
	switch cfg.Journal.Driver {
	case "", "sqlite3", "pgx", "postgres":
	default:
		return fmt.Errorf("journal.driver must be sqlite3, pgx or postgres, got: %s", cfg.Journal.Driver)
	}
	return nil
}
