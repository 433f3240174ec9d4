package mapper

import (
	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/model"
)

type InteractionMapper struct{}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{}
}

func (m *InteractionMapper) ToEntity(i *model.Interaction) *entity.Interaction {
	if i == nil {
		return nil
	}
	return &entity.Interaction{
		Id:         i.Id,
		UserId:     i.UserId,
		ContactId:  i.ContactId,
		Kind:       i.Kind,
		Summary:    i.Summary,
		OccurredAt: i.OccurredAt,
		CreatedAt:  i.CreatedAt,
	}
}

func (m *InteractionMapper) ToModel(i *entity.Interaction) *model.Interaction {
	if i == nil {
		return nil
	}
	return &model.Interaction{
		Id:         i.Id,
		UserId:     i.UserId,
		ContactId:  i.ContactId,
		Kind:       i.Kind,
		Summary:    i.Summary,
		OccurredAt: i.OccurredAt,
		CreatedAt:  i.CreatedAt,
	}
}

func (m *InteractionMapper) ToEntities(interactions []*model.Interaction) []*entity.Interaction {
	entities := make([]*entity.Interaction, len(interactions))
	for i, it := range interactions {
		entities[i] = m.ToEntity(it)
	}
	return entities
}
