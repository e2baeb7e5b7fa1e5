package app

import (
	"context"
	"fmt"
	"log/slog"

	"tiingo-bronze/internal/bronze"
	"tiingo-bronze/internal/objstore"
	"tiingo-bronze/internal/provider/tiingo"
)

// CreateProvider creates the Tiingo client from config.
func CreateProvider(cfg *Config, logger *slog.Logger) (*tiingo.Client, error) {
	if cfg.TiingoAPIKey == "" {
		return nil, &bronze.ConfigError{Key: "TIINGO_API_KEY", Reason: "not set"}
	}
	c, err := tiingo.NewClient(cfg.TiingoAPIKey,
		tiingo.WithBaseURL(cfg.TiingoBaseURL),
		tiingo.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("wire", "provider", c.GetName(), "base_url", cfg.TiingoBaseURL)
	return c, nil
}

// CreateStores creates the local file store and, for DATA_PROTOCOL=s3, the S3 store.
// The S3 client is only built when it will be used so local runs never touch AWS config.
func CreateStores(ctx context.Context, cfg *Config) (local, remote objstore.Client, err error) {
	p, err := bronze.ParseProtocol(cfg.DataProtocol)
	if err != nil {
		return nil, nil, err
	}
	local = objstore.NewFileClient(cfg.DataRoot)
	if p != bronze.ProtocolS3 {
		return local, nil, nil
	}
	oc := cfg.ObjStore()
	oc.Protocol = string(p)
	remote, err = objstore.NewClient(ctx, oc)
	if err != nil {
		return nil, nil, fmt.Errorf("create s3 client: %w", err)
	}
	return local, remote, nil
}
