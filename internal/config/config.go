// Package config loads server configuration from a YAML file, an optional
// .env file and ARSENAL_* environment variables, in increasing precedence.
package config

import (
	stderrors "errors"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "ARSENAL_"

// Config holds everything the server needs at boot
type Config struct {
	GRPC         GRPCConfig         `yaml:"grpc"`
	HTTP         HTTPConfig         `yaml:"http"`
	Redis        RedisConfig        `yaml:"redis"`
	Packs        []string           `yaml:"packs" validate:"dive,required"`
	PreviewCache PreviewCacheConfig `yaml:"preview_cache"`
	Log          LogConfig          `yaml:"log"`
}

// GRPCConfig configures the public listener
type GRPCConfig struct {
	Port int `yaml:"port" validate:"min=1,max=65535"`
}

// HTTPConfig configures the admin listener. Port 0 disables it.
type HTTPConfig struct {
	Port int `yaml:"port" validate:"min=0,max=65535"`
}

// RedisConfig configures inventory storage
type RedisConfig struct {
	Endpoint string `yaml:"endpoint" validate:"required,hostname_port"`
	PoolSize int    `yaml:"pool_size" validate:"min=0"`
}

// PreviewCacheConfig sizes the stat preview cache
type PreviewCacheConfig struct {
	Size int           `yaml:"size" validate:"min=1"`
	TTL  time.Duration `yaml:"ttl" validate:"min=0"`
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns a config suitable for local development
func Default() *Config {
	return &Config{
		GRPC:  GRPCConfig{Port: 50051},
		HTTP:  HTTPConfig{Port: 8080},
		Redis: RedisConfig{Endpoint: "localhost:6379", PoolSize: 10},
		PreviewCache: PreviewCacheConfig{
			Size: 1024,
			TTL:  10 * time.Minute,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds a config from defaults, the YAML file at path (skipped when
// path is empty or missing), the given env files (".env" when none are
// named, and only if present) and the process environment.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse config "+path)
			}
		}
	}

	fileEnv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return map[string]string{}, nil
		}
		files = []string{".env"}
	}
	env, err := godotenv.Read(files...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read env files %v", files)
	}
	return env, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	vb := errors.NewValidationBuilder()

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				vb.Fieldf(EnvPrefix+name, "invalid integer %q", v)
				return
			}
			*dst = n
		}
	}

	integer("GRPC_PORT", &c.GRPC.Port)
	integer("HTTP_PORT", &c.HTTP.Port)
	str("REDIS_ENDPOINT", &c.Redis.Endpoint)
	integer("REDIS_POOL_SIZE", &c.Redis.PoolSize)
	integer("PREVIEW_CACHE_SIZE", &c.PreviewCache.Size)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup(EnvPrefix + "PREVIEW_CACHE_TTL"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			vb.Fieldf(EnvPrefix+"PREVIEW_CACHE_TTL", "invalid duration %q", v)
		} else {
			c.PreviewCache.TTL = d
		}
	}

	if v, ok := lookup(EnvPrefix + "PACKS"); ok {
		c.Packs = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Packs = append(c.Packs, p)
			}
		}
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)

	return vb.Build()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the struct tags and reports each failing field by its
// dotted YAML path.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(err, "failed to validate config")
	}

	vb := errors.NewValidationBuilder()
	for _, fe := range verrs {
		vb.Field(fieldPath(fe.Namespace()), describe(fe))
	}
	return vb.Build()
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "hostname_port":
		return "must be host:port"
	default:
		return "failed " + fe.Tag()
	}
}
