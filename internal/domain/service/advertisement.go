package service

import (
	"context"
	"log/slog"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/domain/usecase"
	"github.com/The-Gleb/advertisement_form/internal/errors"
)

// PageSize is the number of advertisements on one listing page.
const PageSize = 6

var _ usecase.AdvertisementService = new(advertisementService)

type AdvertisementLister interface {
	ListAdvertisements(ctx context.Context, organizationID string, first int, after *string) (entity.AdvertisementPage, error)
}

type AdvertisementCache interface {
	Get(ctx context.Context, organizationID string) (entity.AdvertisementPage, error)
	Set(ctx context.Context, organizationID string, page entity.AdvertisementPage) error
	Invalidate(ctx context.Context, organizationID string) error
}

type advertisementService struct {
	lister AdvertisementLister
	cache  AdvertisementCache
}

func NewAdvertisementService(lister AdvertisementLister, cache AdvertisementCache) *advertisementService {
	return &advertisementService{
		lister: lister,
		cache:  cache,
	}
}

// GetAdvertisements serves the first page from cache and every other page from the API.
func (service *advertisementService) GetAdvertisements(ctx context.Context, dto entity.GetAdvertisementsDTO) (entity.AdvertisementPage, error) {
	if dto.After != nil {
		return service.lister.ListAdvertisements(ctx, dto.OrganizationID, PageSize, dto.After)
	}

	page, err := service.cache.Get(ctx, dto.OrganizationID)
	if err == nil {
		slog.Debug("advertisements found in cache", "organization_id", dto.OrganizationID)
		return page, nil
	}
	if errors.Code(err) != errors.ErrNoDataFound {
		slog.Warn("advertisement cache unavailable", "error", err)
	}

	page, err = service.lister.ListAdvertisements(ctx, dto.OrganizationID, PageSize, nil)
	if err != nil {
		return entity.AdvertisementPage{}, err
	}

	if err := service.cache.Set(ctx, dto.OrganizationID, page); err != nil {
		slog.Warn("error caching advertisements", "error", err)
	}

	return page, nil
}

// Refresh drops the cached first page and loads it again. Only a nil cursor
// touches the cache; other cursors are never cached.
func (service *advertisementService) Refresh(ctx context.Context, organizationID string, after *string) error {
	if after != nil {
		return nil
	}

	// Set below overwrites the page even when invalidation fails
	if err := service.cache.Invalidate(ctx, organizationID); err != nil {
		slog.Warn("error invalidating advertisements", "organization_id", organizationID, "error", err)
	}

	page, err := service.lister.ListAdvertisements(ctx, organizationID, PageSize, nil)
	if err != nil {
		return err
	}

	return service.cache.Set(ctx, organizationID, page)
}
