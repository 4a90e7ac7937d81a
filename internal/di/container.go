// Package di provides dependency injection configuration for the catalog.
package di

import (
	"github.com/samber/do/v2"

	"github.com/mediastash/mediastash-server/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Catalog services
	do.Provide(injector, providers.ProvideBasePathService)
	do.Provide(injector, providers.ProvideCategoryService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideMediaService)

	return injector
}
