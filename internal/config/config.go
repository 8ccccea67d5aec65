package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	ListenAddr  string
	LogLevel    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	ProfilePath string
}

// Load loads configuration from environment variables, an optional .env file,
// and an optional billfold.yml next to the binary. Environment wins.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("billfold")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/billfold")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_service", "billfold")
	v.SetDefault("app_version", "0.1.0")
	v.SetDefault("environment", "development")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")

	// The desktop build runs against a local sqlite file; server deployments
	// point DATABASE_TYPE at postgres or mysql.
	v.SetDefault("database_type", "sqlite")
	v.SetDefault("database_host", "localhost")
	v.SetDefault("database_port", "5432")
	v.SetDefault("database_name", "billfold.db")
	v.SetDefault("database_user", "billfold")
	v.SetDefault("database_password", "")
	v.SetDefault("database_sslmode", "disable")
	v.SetDefault("database_max_idle_conn", 2)
	v.SetDefault("database_max_open_conn", 10)
	v.SetDefault("database_conn_max_lifetime", 3600)
	v.SetDefault("database_conn_max_idle_time", 600)

	v.SetDefault("profile_path", ".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A malformed config file should not take the app down; env and
			// defaults still apply.
			_ = err
		}
	}

	return Config{
		AppName:     v.GetString("app_service"),
		AppVersion:  v.GetString("app_version"),
		Environment: v.GetString("environment"),
		ListenAddr:  v.GetString("listen_addr"),
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),

		DBType:            strings.ToLower(strings.TrimSpace(v.GetString("database_type"))),
		DBHost:            v.GetString("database_host"),
		DBPort:            v.GetString("database_port"),
		DBName:            v.GetString("database_name"),
		DBUser:            v.GetString("database_user"),
		DBPassword:        v.GetString("database_password"),
		DBSSLMode:         v.GetString("database_sslmode"),
		DBMaxIdleConn:     v.GetInt("database_max_idle_conn"),
		DBMaxOpenConn:     v.GetInt("database_max_open_conn"),
		DBConnMaxLifetime: v.GetInt("database_conn_max_lifetime"),
		DBConnMaxIdleTime: v.GetInt("database_conn_max_idle_time"),

		ProfilePath: v.GetString("profile_path"),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
