package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and handed to each component that
// needs it. Environment variables override config.yaml values.
type Config struct {
	ListenAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisURL string

	JWTSecret                string
	JWTAlg                   string
	AccessTokenExpireMinutes int

	CORSAllowOrigins string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.listen_addr", ":8080")
	viper.SetDefault("jwt.alg", "HS256")
	viper.SetDefault("jwt.access_token_expire_minutes", 120)
	viper.SetDefault("cors.allow_origins", "https://anket.olcme.tr")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Could not find config.yaml, using environment variables only.")
	}

	cfg := &Config{
		ListenAddr:               viper.GetString("server.listen_addr"),
		DBHost:                   getWithFallback("DB_HOST", "database.host"),
		DBPort:                   getWithFallback("DB_PORT", "database.port"),
		DBUser:                   getWithFallback("DB_USER", "database.user"),
		DBPassword:               getWithFallback("DB_PASSWORD", "database.password"),
		DBName:                   getWithFallback("DB_NAME", "database.dbname"),
		RedisURL:                 getWithFallback("REDIS_URL", "redis.url"),
		JWTSecret:                getWithFallback("JWT_SECRET", "jwt.secret_key"),
		JWTAlg:                   viper.GetString("jwt.alg"),
		AccessTokenExpireMinutes: viper.GetInt("jwt.access_token_expire_minutes"),
		CORSAllowOrigins:         viper.GetString("cors.allow_origins"),
	}
	return cfg, nil
}

// getWithFallback prefers the environment variable form and falls back
// to the config.yaml key for local development.
func getWithFallback(envKey, fileKey string) string {
	if v := viper.GetString(envKey); v != "" {
		return v
	}
	return viper.GetString(fileKey)
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// AllowedOrigins splits the comma-separated CORS origin list.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
