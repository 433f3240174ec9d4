package service

import (
	"context"
	"errors"

	"ai-coaching-be/internal/dto"
	"ai-coaching-be/internal/repository/specification"
	"ai-coaching-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IWantService is a read surface. Wants are mutated by the coach agent
// through dispatched events, never directly over REST.
type IWantService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.WantSummaryResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.WantDetailResponse, error)
	GetRejectedShoulds(ctx context.Context, userId uuid.UUID) ([]*dto.RejectedShouldResponse, error)
}

type wantService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewWantService(uowFactory unitofwork.RepositoryFactory) IWantService {
	return &wantService{uowFactory: uowFactory}
}

func (s *wantService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.WantSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	wants, err := uow.WantRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.WantSummaryResponse, 0, len(wants))
	for _, want := range wants {
		res = append(res, &dto.WantSummaryResponse{
			Id:        want.Id,
			Title:     want.Title,
			Status:    string(want.Status),
			CreatedAt: want.CreatedAt,
		})
	}
	return res, nil
}

func (s *wantService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.WantDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	want, err := uow.WantRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if want == nil {
		return nil, errors.New("want not found")
	}

	steps, err := uow.WantRepository().FindSteps(ctx, specification.ByWantID{WantID: want.Id})
	if err != nil {
		return nil, err
	}
	metricTypes, err := uow.WantRepository().FindMetricTypes(ctx, specification.ByWantID{WantID: want.Id})
	if err != nil {
		return nil, err
	}

	res := &dto.WantDetailResponse{
		Id:               want.Id,
		Title:            want.Title,
		Description:      want.Description,
		Status:           string(want.Status),
		PrimaryContactId: want.PrimaryContactId,
		ContactBearing:   want.ContactBearing,
		Steps:            make([]dto.WantStepDTO, 0, len(steps)),
		MetricTypes:      make([]dto.WantMetricTypeDTO, 0, len(metricTypes)),
		CreatedAt:        want.CreatedAt,
		UpdatedAt:        want.UpdatedAt,
	}
	for _, step := range steps {
		res.Steps = append(res.Steps, dto.WantStepDTO{
			Id:          step.Id,
			Description: step.Description,
			Position:    step.Position,
			Done:        step.Done,
		})
	}
	for _, mt := range metricTypes {
		res.MetricTypes = append(res.MetricTypes, dto.WantMetricTypeDTO{
			Id:   mt.Id,
			Name: mt.Name,
			Unit: mt.Unit,
		})
	}
	return res, nil
}

func (s *wantService) GetRejectedShoulds(ctx context.Context, userId uuid.UUID) ([]*dto.RejectedShouldResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rejected, err := uow.WantRepository().FindRejectedShoulds(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.RejectedShouldResponse, 0, len(rejected))
	for _, r := range rejected {
		res = append(res, &dto.RejectedShouldResponse{
			Id:        r.Id,
			Title:     r.Title,
			Reason:    r.Reason,
			CreatedAt: r.CreatedAt,
		})
	}
	return res, nil
}
