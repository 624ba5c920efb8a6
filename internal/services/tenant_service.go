package services

import (
	"context"
	"time"

	"vertifarm/internal/caching"
	"vertifarm/internal/models"
	"vertifarm/internal/repositories"

	"go.uber.org/zap"
)

const tenantCacheTTL = time.Minute

type TenantService interface {
	List(ctx context.Context) ([]*models.TenantResponse, error)
}

type tenantService struct {
	tenantRepo   repositories.TenantRepository
	cacheService caching.CacheService
	logger       *zap.Logger
}

func NewTenantService(tenantRepo repositories.TenantRepository, cacheService caching.CacheService, logger *zap.Logger) TenantService {
	return &tenantService{
		tenantRepo:   tenantRepo,
		cacheService: cacheService,
		logger:       logger,
	}
}

func (s *tenantService) List(ctx context.Context) ([]*models.TenantResponse, error) {
	names, err := s.cacheService.GetTenants(ctx)
	if err != nil {
		s.logger.Warn("tenant cache read failed", zap.Error(err))
		names = nil
	}

	if names == nil {
		names, err = s.tenantRepo.ListNames(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cacheService.SetTenants(ctx, names, tenantCacheTTL); err != nil {
			s.logger.Warn("tenant cache write failed", zap.Error(err))
		}
	}

	tenants := make([]*models.TenantResponse, 0, len(names))
	for _, name := range names {
		tenants = append(tenants, &models.TenantResponse{ID: name, Name: name})
	}
	return tenants, nil
}
