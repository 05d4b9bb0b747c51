package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Time     TimeConfig
	Uploads  UploadsConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name string
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig: DSN vacío => repositorio en memoria.
type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

type LogConfig struct {
	Level  string
	Format string
}

// TimeConfig define la zona usada para fechas sin offset y timestamps Unix.
type TimeConfig struct {
	LocationName string
	Location     *time.Location
}

type UploadsConfig struct {
	Dir         string
	URLPrefix   string
	MaxBytes    int64
	UniqueNames bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// InitConfig prepara viper: defaults, archivo opcional y variables de entorno.
// DINING_SERVER_PORT pisa server.port, etc. PORT y DB_DSN se aceptan tal cual.
func InitConfig(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("DINING")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.BindEnv("server.port", "DINING_SERVER_PORT", "PORT")
	_ = viper.BindEnv("database.dsn", "DINING_DATABASE_DSN", "DB_DSN")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("app.name", "dining-calendar")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "5s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.shutdown_timeout", "15s")

	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("database.max_idle_conns", 5)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("time.location", "Local")

	viper.SetDefault("uploads.dir", "uploads")
	viper.SetDefault("uploads.url_prefix", "/uploads")
	viper.SetDefault("uploads.max_bytes", 10<<20)
	viper.SetDefault("uploads.unique_names", false)

	viper.SetDefault("cors.allowed_origins", []string{"*"})
}

func Load() (*Config, error) {
	locName := strings.TrimSpace(viper.GetString("time.location"))
	if locName == "" {
		locName = "Local"
	}
	loc, err := time.LoadLocation(locName)
	if err != nil {
		return nil, fmt.Errorf("invalid time.location %q: %w", locName, err)
	}

	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid server.port %d", port)
	}

	cfg := &Config{
		App: AppConfig{
			Name: viper.GetString("app.name"),
		},
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     viper.GetDuration("server.read_timeout"),
			WriteTimeout:    viper.GetDuration("server.write_timeout"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			DSN:          strings.TrimSpace(viper.GetString("database.dsn")),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
		},
		Log: LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		Time: TimeConfig{
			LocationName: locName,
			Location:     loc,
		},
		Uploads: UploadsConfig{
			Dir:         viper.GetString("uploads.dir"),
			URLPrefix:   viper.GetString("uploads.url_prefix"),
			MaxBytes:    viper.GetInt64("uploads.max_bytes"),
			UniqueNames: viper.GetBool("uploads.unique_names"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("cors.allowed_origins"),
		},
	}

	return cfg, nil
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
