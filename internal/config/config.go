package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	Migrate      bool
}

type Config struct {
	AppAddr     string
	GinMode     string
	LogLevel    string
	LogPretty   bool
	DB          DBConfig
	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
	MaxPageSize int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("gin_mode", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "logistics")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.migrate", true)
	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	})
	v.SetDefault("ratelimit.rps", 20)
	v.SetDefault("ratelimit.burst", 40)
	v.SetDefault("paging.max_page_size", 200)
}

// Load reads config.yaml from configPath when present, then applies APP_*
// environment overrides (APP_DB_HOST for db.host and so on).
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) Config {
	var origins []string
	if raw, ok := v.Get("cors.allowed_origins").(string); ok {
		origins = splitList(raw)
	} else {
		origins = v.GetStringSlice("cors.allowed_origins")
	}

	ttl := v.GetDuration("jwt.ttl")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return Config{
		AppAddr:   strings.TrimSpace(v.GetString("addr")),
		GinMode:   strings.TrimSpace(v.GetString("gin_mode")),
		LogLevel:  v.GetString("log_level"),
		LogPretty: v.GetBool("log_pretty"),
		DB: DBConfig{
			Host:         v.GetString("db.host"),
			Port:         v.GetInt("db.port"),
			User:         v.GetString("db.user"),
			Password:     v.GetString("db.password"),
			Name:         v.GetString("db.name"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
			Migrate:      v.GetBool("db.migrate"),
		},
		JWTSecret:   v.GetString("jwt.secret"),
		JWTTTL:      ttl,
		CORSOrigins: origins,
		RateRPS:     v.GetFloat64("ratelimit.rps"),
		RateBurst:   v.GetInt("ratelimit.burst"),
		MaxPageSize: v.GetInt("paging.max_page_size"),
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
