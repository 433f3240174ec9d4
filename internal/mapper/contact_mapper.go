package mapper

import (
	"time"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/model"
)

type ContactMapper struct{}

func NewContactMapper() *ContactMapper {
	return &ContactMapper{}
}

func (m *ContactMapper) ToEntity(c *model.Contact) *entity.Contact {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Contact{
		Id:           c.Id,
		UserId:       c.UserId,
		Name:         c.Name,
		Relationship: c.Relationship,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ContactMapper) ToModel(c *entity.Contact) *model.Contact {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Contact{
		Id:           c.Id,
		UserId:       c.UserId,
		Name:         c.Name,
		Relationship: c.Relationship,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ContactMapper) ToEntities(contacts []*model.Contact) []*entity.Contact {
	entities := make([]*entity.Contact, len(contacts))
	for i, c := range contacts {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
