package main

import (
	"log/slog"

	"tiingo-bronze/internal/app"
	"tiingo-bronze/internal/bronze"
	"tiingo-bronze/internal/provider"
)

// App holds application dependencies built by Wire.
type App struct {
	Config   *app.Config
	Logger   *slog.Logger
	DP       provider.DataProvider
	Resolver *bronze.Resolver
	Writer   *bronze.Writer
}
