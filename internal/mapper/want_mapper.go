package mapper

import (
	"time"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/model"
)

type WantMapper struct{}

func NewWantMapper() *WantMapper {
	return &WantMapper{}
}

func (m *WantMapper) ToEntity(w *model.Want) *entity.Want {
	if w == nil {
		return nil
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.Want{
		Id:               w.Id,
		UserId:           w.UserId,
		Title:            w.Title,
		Description:      w.Description,
		Status:           entity.WantStatus(w.Status),
		PrimaryContactId: w.PrimaryContactId,
		ContactBearing:   w.ContactBearing,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *WantMapper) ToModel(w *entity.Want) *model.Want {
	if w == nil {
		return nil
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.Want{
		Id:               w.Id,
		UserId:           w.UserId,
		Title:            w.Title,
		Description:      w.Description,
		Status:           string(w.Status),
		PrimaryContactId: w.PrimaryContactId,
		ContactBearing:   w.ContactBearing,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *WantMapper) ToEntities(wants []*model.Want) []*entity.Want {
	entities := make([]*entity.Want, len(wants))
	for i, w := range wants {
		entities[i] = m.ToEntity(w)
	}
	return entities
}

func (m *WantMapper) StepToEntity(s *model.WantStep) *entity.WantStep {
	if s == nil {
		return nil
	}
	return &entity.WantStep{
		Id:          s.Id,
		WantId:      s.WantId,
		Description: s.Description,
		Position:    s.Position,
		Done:        s.Done,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *WantMapper) StepToModel(s *entity.WantStep) *model.WantStep {
	if s == nil {
		return nil
	}
	return &model.WantStep{
		Id:          s.Id,
		WantId:      s.WantId,
		Description: s.Description,
		Position:    s.Position,
		Done:        s.Done,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *WantMapper) StepsToEntities(steps []*model.WantStep) []*entity.WantStep {
	entities := make([]*entity.WantStep, len(steps))
	for i, s := range steps {
		entities[i] = m.StepToEntity(s)
	}
	return entities
}

func (m *WantMapper) MetricTypeToEntity(t *model.WantMetricType) *entity.WantMetricType {
	if t == nil {
		return nil
	}
	return &entity.WantMetricType{
		Id:        t.Id,
		WantId:    t.WantId,
		Name:      t.Name,
		Unit:      t.Unit,
		CreatedAt: t.CreatedAt,
	}
}

func (m *WantMapper) MetricTypeToModel(t *entity.WantMetricType) *model.WantMetricType {
	if t == nil {
		return nil
	}
	return &model.WantMetricType{
		Id:        t.Id,
		WantId:    t.WantId,
		Name:      t.Name,
		Unit:      t.Unit,
		CreatedAt: t.CreatedAt,
	}
}

func (m *WantMapper) MetricTypesToEntities(types []*model.WantMetricType) []*entity.WantMetricType {
	entities := make([]*entity.WantMetricType, len(types))
	for i, t := range types {
		entities[i] = m.MetricTypeToEntity(t)
	}
	return entities
}

func (m *WantMapper) MetricValueToEntity(v *model.WantMetricValue) *entity.WantMetricValue {
	if v == nil {
		return nil
	}
	return &entity.WantMetricValue{
		Id:           v.Id,
		MetricTypeId: v.MetricTypeId,
		Value:        v.Value,
		RecordedAt:   v.RecordedAt,
	}
}

func (m *WantMapper) MetricValueToModel(v *entity.WantMetricValue) *model.WantMetricValue {
	if v == nil {
		return nil
	}
	return &model.WantMetricValue{
		Id:           v.Id,
		MetricTypeId: v.MetricTypeId,
		Value:        v.Value,
		RecordedAt:   v.RecordedAt,
	}
}

func (m *WantMapper) IterationToEntity(it *model.WantIteration) *entity.WantIteration {
	if it == nil {
		return nil
	}
	return &entity.WantIteration{
		Id:        it.Id,
		WantId:    it.WantId,
		Summary:   it.Summary,
		CreatedAt: it.CreatedAt,
	}
}

func (m *WantMapper) IterationToModel(it *entity.WantIteration) *model.WantIteration {
	if it == nil {
		return nil
	}
	return &model.WantIteration{
		Id:        it.Id,
		WantId:    it.WantId,
		Summary:   it.Summary,
		CreatedAt: it.CreatedAt,
	}
}

func (m *WantMapper) RejectedShouldToEntity(r *model.RejectedShould) *entity.RejectedShould {
	if r == nil {
		return nil
	}
	return &entity.RejectedShould{
		Id:        r.Id,
		UserId:    r.UserId,
		WantId:    r.WantId,
		Title:     r.Title,
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
	}
}

func (m *WantMapper) RejectedShouldToModel(r *entity.RejectedShould) *model.RejectedShould {
	if r == nil {
		return nil
	}
	return &model.RejectedShould{
		Id:        r.Id,
		UserId:    r.UserId,
		WantId:    r.WantId,
		Title:     r.Title,
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
	}
}

func (m *WantMapper) RejectedShouldsToEntities(rs []*model.RejectedShould) []*entity.RejectedShould {
	entities := make([]*entity.RejectedShould, len(rs))
	for i, r := range rs {
		entities[i] = m.RejectedShouldToEntity(r)
	}
	return entities
}
