// Package config loads the tabular CLI configuration from flags, an
// optional YAML file, TABULAR_* environment variables and a .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/lublak/tabular"
	"github.com/lublak/tabular/internal/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "TABULAR"

// Config is the resolved CLI configuration.
type Config struct {
	Input  string         `mapstructure:"input"`
	Output string         `mapstructure:"output"`
	Steps  string         `mapstructure:"steps" validate:"required"`
	Format string         `mapstructure:"format" validate:"required,format"`
	Items  bool           `mapstructure:"items"`
	Border string         `mapstructure:"border" validate:"border"`
	Title  string         `mapstructure:"title"`
	Indent string         `mapstructure:"indent"`
	Log    logging.Config `mapstructure:"log"`
}

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
		_ = validate.RegisterValidation("format", func(fl validator.FieldLevel) bool {
			_, err := tabular.ParseFormat(fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("border", func(fl validator.FieldLevel) bool {
			_, err := tabular.ParseBorderStyle(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks cfg and reports every invalid field in one error.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, fieldPath(e)+": "+formatValidationError(e))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

// fieldPath drops the root struct name from the namespace, e.g. "log.level".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of [" + e.Param() + "]"
	case "format":
		return fmt.Sprintf("unsupported format %q, valid options are: %s", e.Value(), formatNames())
	case "border":
		return fmt.Sprintf("unsupported border %q, valid options are: rounded, none, ascii, heavy, double", e.Value())
	default:
		return "failed " + e.Tag() + " validation"
	}
}

func formatNames() string {
	all := tabular.Formats()
	names := make([]string, len(all))
	for i, f := range all {
		names[i] = f.String()
	}
	return strings.Join(names, ", ") + ", go-template=<tmpl>"
}

// Load parses args and resolves the configuration. Precedence, highest
// first: flags, environment, config file, defaults.
func Load(args []string, stderr io.Writer) (*Config, error) {
	fset := pflag.NewFlagSet("tabular", pflag.ContinueOnError)
	fset.SetOutput(stderr)
	configFile := fset.StringP("config", "c", "", "YAML config file")
	envFile := fset.String("env-file", ".env", "dotenv file loaded before reading the environment")
	fset.StringP("input", "i", "", "input JSON file (default stdin)")
	fset.StringP("output", "o", "", "output file (default stdout)")
	fset.StringP("steps", "s", "", "YAML file listing the transformation steps")
	fset.StringP("format", "f", string(tabular.FormatJSON), "output format")
	fset.Bool("items", false, "read and write {json, binary} items instead of bare records")
	fset.String("border", "rounded", "table border style")
	fset.String("title", "", "table title")
	fset.String("indent", "", "JSON/YAML indentation")
	fset.String("log-level", "info", "log level")
	fset.String("log-format", logging.FormatConsole, "log format (console or json)")
	fset.Bool("log-no-color", false, "disable colored console logs")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if err := loadEnvFile(*envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", *configFile, err)
		}
	}

	bindings := map[string]string{
		"input":        "input",
		"output":       "output",
		"steps":        "steps",
		"format":       "format",
		"items":        "items",
		"border":       "border",
		"title":        "title",
		"indent":       "indent",
		"log.level":    "log-level",
		"log.format":   "log-format",
		"log.no_color": "log-no-color",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fset.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads path into the process environment. A missing file is
// not an error; existing variables are not overridden.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
