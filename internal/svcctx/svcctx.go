// Package svcctx provides service context for dependency injection via context.
// This package is separate from pipeline to avoid import cycles.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/stratadocs/strata/internal/classify"
	"github.com/stratadocs/strata/internal/config"
	"github.com/stratadocs/strata/internal/home"
	"github.com/stratadocs/strata/internal/providers"
	"github.com/stratadocs/strata/internal/store"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Config     *config.Manager
	Registry   *providers.Registry
	Store      *store.Store
	Classifier *classify.Classifier
	Logger     *slog.Logger
	Home       *home.Dir
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ConfigFrom extracts the config manager from context.
func ConfigFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// RegistryFrom extracts the provider registry from context.
func RegistryFrom(ctx context.Context) *providers.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Registry
	}
	return nil
}

// StoreFrom extracts the structure store from context.
func StoreFrom(ctx context.Context) *store.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Store
	}
	return nil
}

// ClassifierFrom extracts the section classifier from context.
func ClassifierFrom(ctx context.Context) *classify.Classifier {
	if s := ServicesFrom(ctx); s != nil {
		return s.Classifier
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}
