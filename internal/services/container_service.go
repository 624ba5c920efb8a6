package services

import (
	"context"
	"time"

	"vertifarm/internal/caching"
	"vertifarm/internal/common"
	"vertifarm/internal/models"
	"vertifarm/internal/repositories"

	"go.uber.org/zap"
)

const containerCacheTTL = 5 * time.Minute

type ContainerService interface {
	List(ctx context.Context, filter *models.ContainerFilter) (*models.ContainerListResponse, error)
	GetByID(ctx context.Context, id string) (*models.ContainerResponse, error)
	Create(ctx context.Context, req *models.ContainerCreate) (*models.ContainerResponse, error)
	Update(ctx context.Context, id string, patch *models.ContainerUpdate) (*models.ContainerResponse, error)
	Delete(ctx context.Context, id string) error
	Performance(ctx context.Context, typeFilter string) (*models.PerformanceResponse, error)
	Export(ctx context.Context, filter *models.ContainerFilter) ([]byte, error)
}

type containerService struct {
	containerRepo repositories.ContainerRepository
	cacheService  caching.CacheService
	logger        *zap.Logger
}

func NewContainerService(containerRepo repositories.ContainerRepository, cacheService caching.CacheService, logger *zap.Logger) ContainerService {
	return &containerService{
		containerRepo: containerRepo,
		cacheService:  cacheService,
		logger:        logger,
	}
}

func (s *containerService) List(ctx context.Context, filter *models.ContainerFilter) (*models.ContainerListResponse, error) {
	containers, total, err := s.containerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ContainerResponse, 0, len(containers))
	for _, c := range containers {
		responses = append(responses, assembleContainer(c))
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	page := filter.Skip/filter.Limit + 1

	return &models.ContainerListResponse{
		Containers: responses,
		Total:      total,
		Page:       page,
		Size:       filter.Limit,
		Pages:      pages,
	}, nil
}

func (s *containerService) GetByID(ctx context.Context, id string) (*models.ContainerResponse, error) {
	if cached, err := s.cacheService.GetContainer(ctx, id); err != nil {
		s.logger.Warn("container cache read failed", zap.String("id", id), zap.Error(err))
	} else if cached != nil {
		return assembleContainer(cached), nil
	}

	container, err := s.containerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetContainer(ctx, container, containerCacheTTL); err != nil {
		s.logger.Warn("container cache write failed", zap.String("id", id), zap.Error(err))
	}
	return assembleContainer(container), nil
}

func (s *containerService) Create(ctx context.Context, req *models.ContainerCreate) (*models.ContainerResponse, error) {
	// Pre-check for a friendly error; the unique constraint still backstops
	// concurrent creators.
	existing, err := s.containerRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrDuplicateName
	}

	container, err := s.containerRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, container.ID)
	return assembleContainer(container), nil
}

func (s *containerService) Update(ctx context.Context, id string, patch *models.ContainerUpdate) (*models.ContainerResponse, error) {
	container, err := s.containerRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, id)
	return assembleContainer(container), nil
}

func (s *containerService) Delete(ctx context.Context, id string) error {
	deleted, err := s.containerRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrContainerNotFound
	}

	s.invalidateCaches(ctx, id)
	return nil
}

// Performance returns live counts per container type combined with the fixed
// sample series the dashboard charts. Real aggregation over harvest data is a
// separate feature; the series stay explicit literals until it lands.
func (s *containerService) Performance(ctx context.Context, typeFilter string) (*models.PerformanceResponse, error) {
	counts, err := s.containerRepo.CountByType(ctx, typeFilter)
	if err != nil {
		return nil, err
	}

	return &models.PerformanceResponse{
		Physical: models.PerformanceGroup{
			Count:           counts[models.ContainerTypePhysical],
			AvgYield:        63.0,
			TotalYield:      81.0,
			AvgUtilization:  80.0,
			YieldData:       []int{45, 52, 63, 58, 71, 69, 75},
			UtilizationData: []int{75, 82, 80, 85, 78, 83, 80},
		},
		Virtual: models.PerformanceGroup{
			Count:           counts[models.ContainerTypeVirtual],
			AvgYield:        45.0,
			TotalYield:      67.0,
			AvgUtilization:  65.0,
			YieldData:       []int{32, 38, 45, 41, 52, 48, 55},
			UtilizationData: []int{60, 68, 65, 70, 62, 67, 65},
		},
	}, nil
}

func (s *containerService) invalidateCaches(ctx context.Context, id string) {
	if err := s.cacheService.DeleteContainer(ctx, id); err != nil {
		s.logger.Warn("container cache invalidation failed", zap.String("id", id), zap.Error(err))
	}
	if err := s.cacheService.InvalidateTenants(ctx); err != nil {
		s.logger.Warn("tenant cache invalidation failed", zap.Error(err))
	}
}

// assembleContainer maps a persisted container (plus its joined location)
// into the external representation. Environment, inventory and metrics are
// placeholder structures; nothing populates them from stored data yet.
func assembleContainer(c *models.Container) *models.ContainerResponse {
	var location *models.LocationPayload
	if c.Location != nil {
		location = &models.LocationPayload{
			City:    c.Location.City,
			Country: c.Location.Country,
			Address: c.Location.Address,
		}
	}

	seedTypes := c.SeedTypes
	if seedTypes == nil {
		seedTypes = []models.SeedType{}
	}

	return &models.ContainerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		Tenant:    c.Tenant,
		Purpose:   c.Purpose,
		SeedTypes: seedTypes,
		Location:  location,
		Notes:     c.Notes,
		Settings: models.SettingsResponse{
			ShadowServiceEnabled: c.ShadowServiceEnabled,
			// Ecosystem is write-only; only its presence survives, as
			// ecosystem_connected.
		},
		Environment: models.ContainerEnvironment{},
		Inventory: models.ContainerInventory{
			TrayIDs:  []string{},
			PanelIDs: []string{},
		},
		Metrics:            models.ContainerMetrics{},
		Status:             c.Status,
		Created:            c.Created,
		Modified:           c.Modified,
		HasAlert:           c.HasAlert,
		EcosystemConnected: c.EcosystemConnected,
	}
}
