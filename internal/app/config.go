package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tiingo-bronze/internal/bronze"
	"tiingo-bronze/internal/objstore"
	"tiingo-bronze/internal/provider/tiingo"
	"tiingo-bronze/internal/saver"
)

// Config holds application configuration from env
type Config struct {
	TiingoAPIKey  string
	TiingoBaseURL string
	DataRoot      string
	DataProtocol  string // local | s3
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3EndpointURL string
	S3Region      string
	SaveFormat    string // parquet | csv | json
	LogLevel      string // debug | info | warn | error
}

// envBindings maps config keys to the environment variables that feed them, in precedence order.
var envBindings = map[string][]string{
	"tiingo_api_key":  {"TIINGO_API_KEY"},
	"tiingo_base_url": {"TIINGO_BASE_URL"},
	"data_root":       {"DATA_ROOT"},
	"data_protocol":   {"DATA_PROTOCOL"},
	"s3_bucket":       {"S3_BUCKET"},
	"s3_access_key":   {"S3_ACCESS_KEY"},
	"s3_secret_key":   {"S3_SECRET_KEY"},
	"s3_endpoint_url": {"S3_ENDPOINT_URL"},
	"s3_region":       {"AWS_REGION", "S3_REGION"},
	"save_format":     {"SAVE_FORMAT"},
	"log_level":       {"LOG_LEVEL"},
}

// LoadConfig reads config from environment. Empty variables count as unset.
func LoadConfig() *Config {
	v := viper.New()
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	v.SetDefault("tiingo_base_url", tiingo.DefaultBaseURL)
	v.SetDefault("data_root", ".")
	v.SetDefault("data_protocol", string(bronze.ProtocolLocal))
	v.SetDefault("save_format", "parquet")
	v.SetDefault("log_level", "info")

	return &Config{
		TiingoAPIKey:  strings.TrimSpace(v.GetString("tiingo_api_key")),
		TiingoBaseURL: v.GetString("tiingo_base_url"),
		DataRoot:      v.GetString("data_root"),
		DataProtocol:  strings.ToLower(strings.TrimSpace(v.GetString("data_protocol"))),
		S3Bucket:      strings.TrimRight(v.GetString("s3_bucket"), "/"),
		S3AccessKey:   v.GetString("s3_access_key"),
		S3SecretKey:   v.GetString("s3_secret_key"),
		S3EndpointURL: v.GetString("s3_endpoint_url"),
		S3Region:      v.GetString("s3_region"),
		SaveFormat:    strings.ToLower(strings.TrimSpace(v.GetString("save_format"))),
		LogLevel:      v.GetString("log_level"),
	}
}

// Validate checks everything that must hold before any network or disk I/O.
func (c *Config) Validate() error {
	if c.TiingoAPIKey == "" {
		return &bronze.ConfigError{Key: "TIINGO_API_KEY", Reason: "not set"}
	}
	p, err := bronze.ParseProtocol(c.DataProtocol)
	if err != nil {
		return err
	}
	if p == bronze.ProtocolS3 && c.S3Bucket == "" {
		return &bronze.ConfigError{Key: "S3_BUCKET", Reason: "required when DATA_PROTOCOL=s3"}
	}
	if saver.NewEncoder(c.SaveFormat) == nil {
		return &bronze.ConfigError{Key: "SAVE_FORMAT", Reason: fmt.Sprintf("unsupported format %q (use: parquet, csv, json)", c.SaveFormat)}
	}
	return nil
}

// Storage projects the config onto the path resolver settings.
func (c *Config) Storage() bronze.StorageConfig {
	return bronze.StorageConfig{Protocol: c.DataProtocol, Root: c.DataRoot, Bucket: c.S3Bucket}
}

// ObjStore projects the config onto the object store settings.
func (c *Config) ObjStore() objstore.Config {
	return objstore.Config{
		Protocol: c.DataProtocol,
		Root:     c.DataRoot,
		S3: objstore.S3Config{
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3EndpointURL,
			Region:    c.S3Region,
		},
	}
}

// LoadDotEnv loads the nearest .env file, searching from the working directory upwards.
// Variables already present in the environment win. It returns the file used, or "" if none.
func LoadDotEnv() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return loadDotEnvFrom(dir)
}

func loadDotEnvFrom(dir string) (string, error) {
	for {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return path, fmt.Errorf("load %s: %w", path, err)
			}
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
