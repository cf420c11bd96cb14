package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// UpstreamConfig points the gateway at the core API. BaseURL can be swapped
// per environment (BERSEKOLAH_UPSTREAM_BASEURL).
type UpstreamConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

type SecurityConfig struct {
	CookieSecret string
	CookieName   string
	CookieSecure bool
}

type SocialConfig struct {
	CacheTTL        time.Duration
	RefreshSchedule string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Redis            RedisConfig
	Upstream         UpstreamConfig
	Security         SecurityConfig
	Social           SocialConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("BERSEKOLAH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Security.CookieSecret == "" {
		return nil, fmt.Errorf("security.cookiesecret is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "30s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("upstream.baseurl", "https://api.bersekolah.com/api")
	v.SetDefault("upstream.requesttimeout", "15s")
	v.SetDefault("upstream.retryattempts", 3)
	v.SetDefault("upstream.retrydelay", "500ms")

	v.SetDefault("security.cookiename", "bersekolah_session")
	v.SetDefault("security.cookiesecure", true)

	v.SetDefault("social.cachettl", "30m")
	v.SetDefault("social.refreshschedule", "0 */15 * * * *") // quarter hourly
}
