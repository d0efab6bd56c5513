package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	JwtTTL time.Duration `yaml:"jwt_ttl"` // hours

	// Quota policy
	MembershipCap int    `yaml:"membership_cap"` // max distinct pods a participant may be active in
	QuotaTimezone string `yaml:"quota_timezone"` // IANA name; "today" for daily caps is computed here

	// Matching engine tunables. Raw cosine similarity c maps onto the
	// user-facing relevance scale as clamp(round(offset + scale*(c+1)), 0, 100).
	RelevanceOffset float64 `yaml:"relevance_offset"`
	RelevanceScale  float64 `yaml:"relevance_scale"`
	DefaultTopN     int     `yaml:"default_top_n"`

	// Embedding service
	EmbeddingBaseURL string        `yaml:"embedding_base_url"`
	EmbeddingModel   string        `yaml:"embedding_model"`
	EmbeddingTimeout time.Duration `yaml:"embedding_timeout"` // seconds

	StateRefreshInterval time.Duration `yaml:"state_refresh_interval"` // seconds
	MessagesPageLimit    int           `yaml:"messages_page_limit"`

	LogLevel      string `yaml:"log_level"`
	LogJSON       bool   `yaml:"log_json"`
	SecureCookies bool   `yaml:"secure_cookies"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	Pg              Pg     `yaml:"pg"`
	JwtKey          string `yaml:"jwt_key"`
	EmbeddingAPIKey string `yaml:"embedding_api_key"`
}

// implementing service config interfaces

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

// applyEnvOverrides lets secrets come from the environment (or a .env file)
// instead of private.yaml, so the yaml can be committed without credentials.
func applyEnvOverrides(private *Private) {
	_ = godotenv.Load() // missing .env is fine

	if v := os.Getenv("PG_PASSWORD"); v != "" {
		private.Pg.Password = v
	}
	if v := os.Getenv("JWT_KEY"); v != "" {
		private.JwtKey = v
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		private.EmbeddingAPIKey = v
	}
}

func validate(cfg *Config) {
	if cfg.Public.MembershipCap < 1 {
		panic("config: membership_cap must be >= 1")
	}
	if cfg.Public.RelevanceScale == 0 {
		panic("config: relevance_scale must be set")
	}
	if cfg.Public.DefaultTopN < 1 {
		panic("config: default_top_n must be >= 1")
	}
	if cfg.Public.StateRefreshInterval < 1 {
		panic("config: state_refresh_interval must be >= 1")
	}
	if cfg.Public.EmbeddingTimeout < 1 {
		panic("config: embedding_timeout must be >= 1")
	}
	if cfg.Public.QuotaTimezone != "" {
		if _, err := time.LoadLocation(cfg.Public.QuotaTimezone); err != nil {
			panic(fmt.Sprintf("config: bad quota_timezone %q: %v", cfg.Public.QuotaTimezone, err))
		}
	}
	if cfg.Private.JwtKey == "" {
		panic("config: jwt_key must be set")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	applyEnvOverrides(&private)

	cfg := &Config{public, private}
	validate(cfg)
	return cfg
}

// QuotaLocation resolves the configured timezone, defaulting to UTC.
func (s *Config) QuotaLocation() *time.Location {
	if s.Public.QuotaTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Public.QuotaTimezone)
	if err != nil {
		return time.UTC // validated at load, unreachable in practice
	}
	return loc
}
