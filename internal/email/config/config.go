package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/haukened/rr-email/internal/email/domain"
)

// envPrefix is stripped from every environment key before mapping.
const envPrefix = "EMAIL_"

// AppConfig is the complete runtime configuration.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	Log      LoggingConfig  `koanf:"log" validate:"required"`
	Sanitize SanitizeConfig `koanf:"sanitize"`
	Local    LocalConfig    `koanf:"local"`
	Domain   DomainConfig   `koanf:"domain"`
	TLD      TLDConfig      `koanf:"tld" validate:"required"`
}

// LoggingConfig controls log verbosity: "debug", "info", "warn", or "error".
type LoggingConfig struct {
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
}

// SanitizeConfig controls how raw input is prepared before validation.
type SanitizeConfig struct {
	Lowercase bool `koanf:"lowercase"`
}

// LocalConfig mirrors domain.LocalRules.
type LocalConfig struct {
	AlphaUpper bool `koanf:"alpha_upper"`
	AlphaLower bool `koanf:"alpha_lower"`
	Numeric    bool `koanf:"numeric"`
	Period     bool `koanf:"period"`
	Printable  bool `koanf:"printable"`
	Quote      bool `koanf:"quote"`
	Hyphen     bool `koanf:"hyphen"`
	Spaces     bool `koanf:"spaces"`
}

// DomainConfig mirrors domain.DomainRules. Thresholds accept -1 to disable.
type DomainConfig struct {
	AlphaUpper     bool `koanf:"alpha_upper"`
	AlphaLower     bool `koanf:"alpha_lower"`
	Numeric        bool `koanf:"numeric"`
	Period         bool `koanf:"period"`
	Hyphen         bool `koanf:"hyphen"`
	TLD            bool `koanf:"tld"`
	Localhost      bool `koanf:"localhost"`
	CharsBeforeDot int  `koanf:"chars_before_dot" validate:"gte=-1"`
	CharsAfterDot  int  `koanf:"chars_after_dot" validate:"gte=-1"`
}

// TLDConfig selects and tunes the known-TLD table.
//
// Source "publicsuffix" uses the compiled-in Public Suffix List, "file" uses
// the bbolt database at DB (importing File into it first when set), and
// "none" accepts any final label.
type TLDConfig struct {
	Source    string   `koanf:"source" validate:"required,oneof=publicsuffix file none"`
	File      string   `koanf:"file"`
	Format    string   `koanf:"format" validate:"required,oneof=iana psl"`
	DB        string   `koanf:"db" validate:"required_if=Source file"`
	CacheSize int      `koanf:"cache_size" validate:"gte=0"`
	FPRate    float64  `koanf:"fp_rate" validate:"gt=0,lt=1"`
	Extra     []string `koanf:"extra" validate:"dive,tld_label"`
}

// DEFAULT_APP_CONFIG matches the validator's built-in rule defaults.
var DEFAULT_APP_CONFIG = AppConfig{
	Env: "prod",
	Log: LoggingConfig{
		Level: "info",
	},
	Sanitize: SanitizeConfig{
		Lowercase: false,
	},
	Local: LocalConfig{
		AlphaUpper: true,
		AlphaLower: true,
		Numeric:    true,
		Period:     true,
		Printable:  true,
		Quote:      true,
		Hyphen:     true,
		Spaces:     true,
	},
	Domain: DomainConfig{
		AlphaUpper:     true,
		AlphaLower:     true,
		Numeric:        true,
		Period:         true,
		Hyphen:         true,
		TLD:            true,
		Localhost:      false,
		CharsBeforeDot: 1,
		CharsAfterDot:  2,
	},
	TLD: TLDConfig{
		Source:    "publicsuffix",
		Format:    "iana",
		DB:        "/var/lib/rr-email/tlds.db",
		CacheSize: 1024,
		FPRate:    0.01,
	},
}

// RuleOptions converts the rule sections into validator options. Every
// field is set explicitly so configuration fully determines the rules.
func (c *AppConfig) RuleOptions() domain.Options {
	return domain.Options{
		Local: domain.LocalOptions{
			AlphaUpper: domain.Bool(c.Local.AlphaUpper),
			AlphaLower: domain.Bool(c.Local.AlphaLower),
			Numeric:    domain.Bool(c.Local.Numeric),
			Period:     domain.Bool(c.Local.Period),
			Printable:  domain.Bool(c.Local.Printable),
			Quote:      domain.Bool(c.Local.Quote),
			Hyphen:     domain.Bool(c.Local.Hyphen),
			Spaces:     domain.Bool(c.Local.Spaces),
		},
		Domain: domain.DomainOptions{
			AlphaUpper:     domain.Bool(c.Domain.AlphaUpper),
			AlphaLower:     domain.Bool(c.Domain.AlphaLower),
			Numeric:        domain.Bool(c.Domain.Numeric),
			Period:         domain.Bool(c.Domain.Period),
			Hyphen:         domain.Bool(c.Domain.Hyphen),
			TLD:            domain.Bool(c.Domain.TLD),
			Localhost:      domain.Bool(c.Domain.Localhost),
			CharsBeforeDot: domain.Int(c.Domain.CharsBeforeDot),
			CharsAfterDot:  domain.Int(c.Domain.CharsAfterDot),
		},
	}
}

// sections are the top-level keys that own nested fields. The first
// underscore after a section name becomes the koanf delimiter.
var sections = []string{"log", "sanitize", "local", "domain", "tld"}

// listKeys are split on spaces and commas.
var listKeys = map[string]bool{"tld.extra": true}

// envKey maps EMAIL_DOMAIN_CHARS_AFTER_DOT to domain.chars_after_dot.
func envKey(raw string) string {
	key := strings.ToLower(strings.TrimPrefix(raw, envPrefix))
	for _, s := range sections {
		if strings.HasPrefix(key, s+"_") {
			return s + "." + strings.TrimPrefix(key, s+"_")
		}
	}
	return key
}

// validTLDLabel accepts a single LDH label such as "corp" or "xn--p1ai".
func validTLDLabel(fl validator.FieldLevel) bool {
	label := fl.Field().String()
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// envLoader loads environment variables with the prefix "EMAIL_" and can be
// mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = envKey(key)
			value = strings.TrimSpace(value)

			if value != "" && listKeys[key] {
				return key, strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
			}
			return key, value
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the "tld_label" tag.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("tld_label", validTLDLabel)
}

// Load layers defaults and environment, then unmarshals and validates.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
