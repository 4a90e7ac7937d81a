package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/mediastash/mediastash-server/internal/service"
	"github.com/mediastash/mediastash-server/internal/validation"
)

// ProvideBasePathService creates the base path registry.
func ProvideBasePathService(i do.Injector) (*service.BasePathService, error) {
	return service.NewBasePathService(
		do.MustInvoke[*StoreHandle](i),
		do.MustInvoke[*validation.Validator](i),
		do.MustInvoke[*slog.Logger](i),
	), nil
}

// ProvideCategoryService creates the tag category registry.
func ProvideCategoryService(i do.Injector) (*service.CategoryService, error) {
	return service.NewCategoryService(
		do.MustInvoke[*StoreHandle](i),
		do.MustInvoke[*validation.Validator](i),
		do.MustInvoke[*slog.Logger](i),
	), nil
}

// ProvideTagService creates the tag registry, resolving categories through
// the category service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	return service.NewTagService(
		do.MustInvoke[*StoreHandle](i),
		do.MustInvoke[*service.CategoryService](i),
		do.MustInvoke[*validation.Validator](i),
		do.MustInvoke[*slog.Logger](i),
	), nil
}

// ProvideMediaService creates the media catalog, resolving base paths and
// tags through their services.
func ProvideMediaService(i do.Injector) (*service.MediaService, error) {
	return service.NewMediaService(
		do.MustInvoke[*StoreHandle](i),
		do.MustInvoke[*service.BasePathService](i),
		do.MustInvoke[*service.TagService](i),
		do.MustInvoke[*validation.Validator](i),
		do.MustInvoke[*slog.Logger](i),
	), nil
}
