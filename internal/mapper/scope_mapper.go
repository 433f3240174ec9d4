package mapper

import (
	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/model"
)

type ScopeMapper struct{}

func NewScopeMapper() *ScopeMapper {
	return &ScopeMapper{}
}

func (m *ScopeMapper) ToEntity(s *model.ScopeEntry) *entity.ScopeEntry {
	if s == nil {
		return nil
	}
	return &entity.ScopeEntry{
		Id:        s.Id,
		UserId:    s.UserId,
		Kind:      entity.ScopeEntryKind(s.Kind),
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ScopeMapper) ToModel(s *entity.ScopeEntry) *model.ScopeEntry {
	if s == nil {
		return nil
	}
	return &model.ScopeEntry{
		Id:        s.Id,
		UserId:    s.UserId,
		Kind:      string(s.Kind),
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ScopeMapper) ToEntities(entries []*model.ScopeEntry) []*entity.ScopeEntry {
	entities := make([]*entity.ScopeEntry, len(entries))
	for i, s := range entries {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
