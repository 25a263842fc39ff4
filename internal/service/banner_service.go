package service

import (
	"context"
	"time"

	"inza-store/internal/domain"
	"inza-store/internal/repository"

	"github.com/google/uuid"
)

// BannerService manages promotional banners: public active listing and the
// administrator's CRUD plus carousel reordering.
type BannerService interface {
	ListActive(ctx context.Context) ([]*domain.Banner, error)
	ListAll(ctx context.Context) ([]*domain.Banner, error)
	Create(ctx context.Context, banner *domain.Banner) (*domain.Banner, error)
	Update(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
}

type bannerService struct {
	bannerRepo repository.BannerRepository
}

// NewBannerService creates a new instance of BannerService
func NewBannerService(bannerRepo repository.BannerRepository) BannerService {
	return &bannerService{bannerRepo: bannerRepo}
}

func (s *bannerService) ListActive(ctx context.Context) ([]*domain.Banner, error) {
	return s.bannerRepo.List(ctx, true)
}

func (s *bannerService) ListAll(ctx context.Context) ([]*domain.Banner, error) {
	return s.bannerRepo.List(ctx, false)
}

func (s *bannerService) Create(ctx context.Context, banner *domain.Banner) (*domain.Banner, error) {
	banner.ID = uuid.New()
	now := time.Now()
	banner.CreatedAt = now
	banner.UpdatedAt = now

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *bannerService) Update(ctx context.Context, banner *domain.Banner) error {
	banner.UpdatedAt = time.Now()
	return s.bannerRepo.Update(ctx, banner)
}

func (s *bannerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bannerRepo.Delete(ctx, id)
}

func (s *bannerService) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return s.bannerRepo.Reorder(ctx, ids)
}
