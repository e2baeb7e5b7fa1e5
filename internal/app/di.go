package app

import (
	"context"
	"fmt"
	"log/slog"

	"tiingo-bronze/internal/bronze"
	"tiingo-bronze/internal/provider/tiingo"
	"tiingo-bronze/internal/saver"
	"tiingo-bronze/internal/slogx"
)

// ProvideConfig loads and validates config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	cfg := LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProvideLogger creates the process logger at the configured level (for Wire).
func ProvideLogger(cfg *Config) *slog.Logger {
	return slogx.NewDefault(cfg.LogLevel)
}

// ProvideEncoder creates the partition encoder from SAVE_FORMAT (for Wire).
func ProvideEncoder(cfg *Config) (saver.Encoder, error) {
	enc := saver.NewEncoder(cfg.SaveFormat)
	if enc == nil {
		return nil, &bronze.ConfigError{Key: "SAVE_FORMAT", Reason: fmt.Sprintf("unsupported format %q (use: parquet, csv, json)", cfg.SaveFormat)}
	}
	return enc, nil
}

// ProvideTiingoProvider creates the Tiingo client (for Wire).
// Caller must call Close() when shutting down.
func ProvideTiingoProvider(cfg *Config, logger *slog.Logger) (*tiingo.Client, error) {
	return CreateProvider(cfg, logger)
}

// ProvideResolver creates the storage path resolver; the file extension follows the encoder (for Wire).
func ProvideResolver(cfg *Config, enc saver.Encoder) *bronze.Resolver {
	return bronze.NewResolver(cfg.Storage(), enc.Extension())
}

// ProvideWriter creates the partition writer with the store(s) for the configured protocol (for Wire).
func ProvideWriter(ctx context.Context, cfg *Config, enc saver.Encoder) (*bronze.Writer, error) {
	local, remote, err := CreateStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return bronze.NewWriter(enc, local, remote), nil
}
