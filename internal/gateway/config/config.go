package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends for the lexicon.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

type Config struct {
	Port     string         `yaml:"port"`
	Env      string         `yaml:"env"`
	LogLevel string         `yaml:"log_level"`
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Snapshot SnapshotConfig `yaml:"snapshot"`

	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LexiconConfig struct {
	Backend           string `yaml:"backend"`
	RootsPath         string `yaml:"roots_path"`
	SchemesPath       string `yaml:"schemes_path"`
	DatabaseURL       string `yaml:"database_url"`
	AutoSave          bool   `yaml:"autosave"`
	IdentifyCacheSize int    `yaml:"identify_cache_size"`
}

// SnapshotConfig points at the S3-compatible bucket used by the s3 backend.
type SnapshotConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// CanUseS3 reports whether enough is configured to build a client.
func (c SnapshotConfig) CanUseS3() bool {
	return strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.AccessKey) != "" &&
		strings.TrimSpace(c.SecretKey) != "" &&
		strings.TrimSpace(c.Bucket) != ""
}

func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs resolves the configuration from .env, flags, an optional YAML
// file and the environment, in that order of increasing precedence.
func LoadArgs(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	port := fs.String("port", ":8081", "server port")
	file := fs.String("config", "", "optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	cfg := defaults(env)
	cfg.Port = *port

	path := firstNonEmpty(strings.TrimSpace(*file), strings.TrimSpace(os.Getenv("SARF_CONFIG")))
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(&cfg)
	cfg.Port = normalizePort(cfg.Port)

	switch cfg.Lexicon.Backend {
	case BackendFile, BackendPostgres, BackendS3, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown lexicon backend %q", cfg.Lexicon.Backend)
	}
	if cfg.Lexicon.Backend == BackendPostgres && strings.TrimSpace(cfg.Lexicon.DatabaseURL) == "" {
		return nil, fmt.Errorf("lexicon backend postgres requires DATABASE_URL")
	}
	if cfg.Lexicon.Backend == BackendS3 && !cfg.Snapshot.CanUseS3() {
		return nil, fmt.Errorf("lexicon backend s3 requires endpoint, keys and bucket")
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Port = v
	}
	cfg.LogLevel = firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_LEVEL")), cfg.LogLevel)
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	lx := &cfg.Lexicon
	lx.Backend = strings.ToLower(firstNonEmpty(strings.TrimSpace(os.Getenv("LEXICON_BACKEND")), lx.Backend))
	lx.RootsPath = firstNonEmpty(strings.TrimSpace(os.Getenv("LEXICON_ROOTS_PATH")), lx.RootsPath)
	lx.SchemesPath = firstNonEmpty(strings.TrimSpace(os.Getenv("LEXICON_SCHEMES_PATH")), lx.SchemesPath)
	lx.DatabaseURL = firstNonEmpty(strings.TrimSpace(os.Getenv("DATABASE_URL")), lx.DatabaseURL)
	lx.AutoSave = envBool("LEXICON_AUTOSAVE", lx.AutoSave)
	lx.IdentifyCacheSize = envInt("IDENTIFY_CACHE_SIZE", lx.IdentifyCacheSize)

	sn := &cfg.Snapshot
	sn.Endpoint = firstNonEmpty(strings.TrimSpace(os.Getenv("LEXICON_S3_ENDPOINT")), sn.Endpoint)
	sn.Region = firstNonEmpty(strings.TrimSpace(os.Getenv("LEXICON_S3_REGION")), sn.Region)
	sn.AccessKey = firstNonEmpty(strings.TrimSpace(os.Getenv("LEXICON_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER")), sn.AccessKey)
	sn.SecretKey = firstNonEmpty(strings.TrimSpace(os.Getenv("LEXICON_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD")), sn.SecretKey)
	sn.Bucket = firstNonEmpty(strings.TrimSpace(os.Getenv("LEXICON_S3_BUCKET")), sn.Bucket)
	sn.Prefix = firstNonEmpty(strings.TrimSpace(os.Getenv("LEXICON_S3_PREFIX")), sn.Prefix)
	sn.UseSSL = envBool("LEXICON_S3_USE_SSL", sn.UseSSL)
}

func normalizePort(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ":8081"
	}
	if strings.HasPrefix(p, ":") || strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
