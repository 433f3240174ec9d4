package mapper

import (
	"encoding/json"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/model"

	"gorm.io/datatypes"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) ToEntity(a *model.AuditEntry) *entity.AuditEntry {
	if a == nil {
		return nil
	}

	var payload map[string]interface{}
	if len(a.Payload) > 0 {
		// A row with unreadable payload still surfaces; the payload is
		// advisory, the event type and aggregate are the record.
		_ = json.Unmarshal(a.Payload, &payload)
	}

	return &entity.AuditEntry{
		Id:        a.Id,
		UserId:    a.UserId,
		SessionId: a.SessionId,
		EventType: a.EventType,
		Aggregate: a.Aggregate,
		Payload:   payload,
		CreatedAt: a.CreatedAt,
	}
}

func (m *AuditMapper) ToModel(a *entity.AuditEntry) *model.AuditEntry {
	if a == nil {
		return nil
	}

	var payload datatypes.JSON
	if a.Payload != nil {
		if raw, err := json.Marshal(a.Payload); err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	return &model.AuditEntry{
		Id:        a.Id,
		UserId:    a.UserId,
		SessionId: a.SessionId,
		EventType: a.EventType,
		Aggregate: a.Aggregate,
		Payload:   payload,
		CreatedAt: a.CreatedAt,
	}
}

func (m *AuditMapper) ToEntities(entries []*model.AuditEntry) []*entity.AuditEntry {
	entities := make([]*entity.AuditEntry, len(entries))
	for i, a := range entries {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
