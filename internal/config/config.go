package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

type Config struct {
	Primary Primary       `koanf:"primary"`
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Storage StorageConfig `koanf:"storage" validate:"required"`
}

type Primary struct {
	Env string `koanf:"env"`
}

type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout"`
	WriteTimeout       int      `koanf:"write_timeout"`
	IdleTimeout        int      `koanf:"idle_timeout"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
	StaticDir          string   `koanf:"static_dir"`
}

// StorageConfig selects the blob backend and names the two blobs the
// service uses. Backend is "file" or "s3".
type StorageConfig struct {
	Backend     string `koanf:"backend" validate:"required,oneof=file s3"`
	DataDir     string `koanf:"data_dir"`
	RequestsKey string `koanf:"requests_key" validate:"required"`
	CatalogKey  string `koanf:"catalog_key" validate:"required"`

	S3Endpoint  string `koanf:"s3_endpoint"`
	S3Region    string `koanf:"s3_region"`
	S3Bucket    string `koanf:"s3_bucket"`
	S3AccessKey string `koanf:"s3_access_key"`
	S3SecretKey string `koanf:"s3_secret_key"`
}

// Default returns the configuration used when no environment is set: file
// backend under ./data, front-end under ./public, port 8080.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        10,
			WriteTimeout:       10,
			IdleTimeout:        120,
			CORSAllowedOrigins: []string{"*"},
			StaticDir:          "public",
		},
		Storage: StorageConfig{
			Backend:     "file",
			DataDir:     "data",
			RequestsKey: "requests.json",
			CatalogKey:  "lifesavers.json",
		},
	}
}

// LoadConfig loads the configuration from LIFESAVERMAP_-prefixed environment
// variables over the defaults, using koanf.
func LoadConfig() (mainConfig *Config, err error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")
	err = k.Load(env.Provider("LIFESAVERMAP_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "LIFESAVERMAP_")), "__", ".")
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load env variables")
	}

	mainConfig = Default()
	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal config")
	}

	validate := validator.New()
	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not validate config")
	}

	if mainConfig.Storage.Backend == "s3" && mainConfig.Storage.S3Bucket == "" {
		logger.Fatal().Msg("storage backend s3 requires LIFESAVERMAP_STORAGE__S3_BUCKET")
	}

	return mainConfig, nil
}
