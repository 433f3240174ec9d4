package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-coaching-be/internal/dto"
	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/repository/specification"
	"ai-coaching-be/internal/repository/unitofwork"
	"ai-coaching-be/pkg/embedding"
	"ai-coaching-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService regenerates note embeddings off the request path. Notes
// created by the coach agent and notes created over the REST surface both
// land here through the same topic.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedNoteMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // malformed payloads must not retry forever
		return
	}

	log.Printf("[INFO] Processing embeddings for note %s", payload.NoteId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: payload.NoteId})
	if err != nil {
		log.Printf("[ERROR] Failed to load note %s: %v", payload.NoteId, err)
		msg.Nack()
		return
	}
	if note == nil {
		// Note deleted between publish and consume.
		log.Printf("[WARN] Note not found: %s", payload.NoteId)
		msg.Ack()
		return
	}

	content := note.Title + "\n\n" + note.Content

	// 1500 chars with 200 overlap stays well under embedding context limits.
	chunks := utils.SplitText(content, 1500, 200)
	log.Printf("[INFO] Note %s split into %d chunks", payload.NoteId, len(chunks))

	var newEmbeddings []*entity.NoteEmbedding
	for i, chunk := range chunks {
		vec, err := cs.embeddingProvider.Embed(ctx, chunk)
		if err != nil {
			log.Printf("[ERROR] Embedding chunk %d of note %s failed: %v", i, payload.NoteId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.NoteEmbedding{
			Id:             uuid.New(),
			NoteId:         note.Id,
			Document:       chunk,
			EmbeddingValue: vec,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.NoteEmbeddingRepository().DeleteByNoteId(ctx, note.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings for note %s: %v", payload.NoteId, err)
		msg.Nack()
		return
	}

	if len(newEmbeddings) > 0 {
		if err := uow.NoteEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to store embeddings for note %s: %v", payload.NoteId, err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit embeddings for note %s: %v", payload.NoteId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Stored %d embedding chunks for note %s", len(newEmbeddings), payload.NoteId)
	msg.Ack()
}
