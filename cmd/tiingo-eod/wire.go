//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"tiingo-bronze/internal/app"
	"tiingo-bronze/internal/provider"
	"tiingo-bronze/internal/provider/tiingo"

	"github.com/google/wire"
)

// InitializeApp builds App (Config + DataProvider + storage) via Wire.
// Caller must call a.DP.Close() when done.
func InitializeApp(ctx context.Context) (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideLogger,
		app.ProvideEncoder,
		app.ProvideTiingoProvider,
		app.ProvideResolver,
		app.ProvideWriter,
		wire.Bind(new(provider.DataProvider), new(*tiingo.Client)),
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
