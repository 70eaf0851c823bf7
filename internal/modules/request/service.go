package request

import (
	"context"
	"errors"

	"boatwork/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	requests RequestRepository
}

func NewService(requests RequestRepository) *Service {
	return &Service{requests: requests}
}

// Create posts a new service request. It starts open with no provider of
// record; lifecycle fields stay zero until a bid is accepted.
func (s *Service) Create(ctx context.Context, ownerID int64, dto CreateRequestDTO) (*domain.ServiceRequest, error) {
	if ownerID <= 0 || dto.BoatID <= 0 || dto.ServiceType == "" || dto.Budget <= 0 {
		return nil, ErrInvalidInput
	}

	qualifier := domain.DeadlineQualifier(dto.DeadlineQualifier)
	if !dto.DeadlineFlexible {
		if dto.DeadlineDate == nil {
			return nil, ErrInvalidInput
		}
		if qualifier != domain.DeadlineOn && qualifier != domain.DeadlineBefore {
			return nil, ErrInvalidInput
		}
	}

	req := &domain.ServiceRequest{
		OwnerID:           ownerID,
		BoatID:            dto.BoatID,
		ServiceType:       dto.ServiceType,
		Description:       dto.Description,
		Budget:            dto.Budget,
		DeadlineFlexible:  dto.DeadlineFlexible,
		DeadlineDate:      dto.DeadlineDate,
		DeadlineQualifier: qualifier,
		TimeOfDay:         domain.TimeOfDay(dto.TimeOfDay),
		ImageURL:          dto.ImageURL,
		Lat:               dto.Lat,
		Lng:               dto.Lng,
		Geohash:           dto.Geohash,
		LocationLabel:     dto.LocationLabel,
		Status:            domain.JobOpen,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// List returns requests, defaulting to the open board. A raw status filter
// goes through the synonym table, so legacy spellings ("accepted", "done")
// still select the right canonical status; an unmappable value is rejected.
func (s *Service) List(ctx context.Context, rawStatus string, limit, offset int) ([]domain.ServiceRequest, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if rawStatus == "" {
		return s.requests.ListOpen(ctx, limit, offset)
	}

	status, ok := domain.ParseJobStatus(rawStatus)
	if !ok {
		return nil, ErrInvalidInput
	}
	return s.requests.ListByStatus(ctx, status, limit, offset)
}

func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]domain.ServiceRequest, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.requests.ListByOwner(ctx, ownerID)
}
