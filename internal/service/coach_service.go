package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-coaching-be/internal/agentstore"
	"ai-coaching-be/internal/dto"
	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/pkg/turnlock"
	"ai-coaching-be/internal/repository/memory"
	"ai-coaching-be/internal/repository/specification"
	"ai-coaching-be/internal/repository/unitofwork"
	"ai-coaching-be/pkg/agent"
	"ai-coaching-be/pkg/agent/dispatch"
	"ai-coaching-be/pkg/agent/gate"
	"ai-coaching-be/pkg/agent/prompt"
	"ai-coaching-be/pkg/doctrine"
	"ai-coaching-be/pkg/events"
	"ai-coaching-be/pkg/llm"
	pktNats "ai-coaching-be/pkg/nats"

	"github.com/google/uuid"
)

type ICoachService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	SendTurn(ctx context.Context, userId uuid.UUID, req *dto.SendTurnRequest) (*dto.SendTurnResponse, error)
}

// coachService runs the conversational coaching loop. The per-turn agent
// pipeline is rebuilt for every call with stores bound to the calling user,
// so no turn can touch another user's aggregates.
type coachService struct {
	uowFactory     unitofwork.RepositoryFactory
	spec           *doctrine.Spec
	provider       llm.LLMProvider
	turnLock       *turnlock.TurnLock
	gateStates     *memory.GateStateRepository
	eventPublisher *pktNats.Publisher
	agentLogger    *log.Logger
	maxChunks      int
}

func NewCoachService(
	uowFactory unitofwork.RepositoryFactory,
	spec *doctrine.Spec,
	provider llm.LLMProvider,
	turnLock *turnlock.TurnLock,
	gateStates *memory.GateStateRepository,
	eventPublisher *pktNats.Publisher,
	agentLogger *log.Logger,
	maxChunks int,
) ICoachService {
	return &coachService{
		uowFactory:     uowFactory,
		spec:           spec,
		provider:       provider,
		turnLock:       turnLock,
		gateStates:     gateStates,
		eventPublisher: eventPublisher,
		agentLogger:    agentLogger,
		maxChunks:      maxChunks,
	}
}

func (s *coachService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "New Session",
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *coachService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, &dto.GetAllSessionsResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		})
	}
	return res, nil
}

func (s *coachService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (s *coachService) GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		res = append(res, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return res, nil
}

func (s *coachService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}

	s.gateStates.Delete(session.Id.String())
	return uow.ChatSessionRepository().Delete(ctx, session.Id)
}

func (s *coachService) SendTurn(ctx context.Context, userId uuid.UUID, req *dto.SendTurnRequest) (*dto.SendTurnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	// One turn in flight per session. A second message while the model is
	// thinking is rejected, not queued.
	if err := s.turnLock.Acquire(ctx, session.Id.String()); err != nil {
		return nil, err
	}
	defer s.turnLock.Release(context.WithoutCancel(ctx), session.Id.String())

	stored, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]agent.Message, 0, len(stored))
	for _, msg := range stored {
		history = append(history, agent.Message{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.CreatedAt,
		})
	}

	turnReq := &agent.TurnRequest{
		Message: req.Message,
		History: history,
	}
	if len(history) == 0 {
		situation, err := s.buildSituation(ctx, uow, userId)
		if err != nil {
			return nil, err
		}
		turnReq.Context = situation
	}

	// Per-turn pipeline bound to this user and session.
	stores := agentstore.New(s.uowFactory, userId)
	auditLog := agentstore.NewAuditLog(s.uowFactory, userId, session.Id)
	dispatcher := dispatch.NewDispatcher(
		s.spec,
		stores.Tasks,
		stores.Notes,
		stores.Interactions,
		stores.Wants,
		stores.Scope,
		auditLog,
		s.agentLogger,
	)
	orchestrator := agent.NewOrchestrator(s.spec, s.provider, dispatcher, s.agentLogger)
	orchestrator.SetMaxChunks(s.maxChunks)

	result := orchestrator.RunTurn(ctx, turnReq)

	s.recordGateState(session.Id.String(), result)

	// The exchange is stored even when the model failed; the fallback reply
	// is part of the visible conversation.
	if err := s.persistExchange(ctx, session, req.Message, result.Reply, len(history) == 0); err != nil {
		return nil, err
	}

	if result.Dispatched && s.eventPublisher != nil {
		evt := events.NewAgentEvent(result.DispatchedType, session.Id.String(), map[string]interface{}{
			"user_id": userId.String(),
			"outcome": string(result.Outcome),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.agentLogger.Printf("[TURN] Event publish failed for %s: %v", result.DispatchedType, err)
		}
	}

	res := &dto.SendTurnResponse{
		Reply:          result.Reply,
		Outcome:        string(result.Outcome),
		DispatchedType: result.DispatchedType,
		ModelFailed:    result.ModelFailed,
	}
	if result.Guardrail != nil {
		res.GuardrailKind = result.Guardrail.Kind
	}
	return res, nil
}

// buildSituation assembles the first-turn context: active wants as the scope
// summary plus the most recent scope journal entries.
func (s *coachService) buildSituation(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*prompt.SituationContext, error) {
	wants, err := uow.WantRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByWantStatus{Status: string(entity.WantStatusActive)},
	)
	if err != nil {
		return nil, err
	}

	entries, err := uow.ScopeRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 5},
	)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if len(wants) > 0 {
		b.WriteString("Active wants:\n")
		for _, want := range wants {
			fmt.Fprintf(&b, "- %s (%s)\n", want.Title, want.Id)
		}
	}
	if len(entries) > 0 {
		b.WriteString("Recent scope entries:\n")
		for _, entry := range entries {
			fmt.Fprintf(&b, "- [%s] %s\n", entry.Kind, entry.Content)
		}
	}

	if b.Len() == 0 {
		return nil, nil
	}
	return &prompt.SituationContext{ScopeSummary: b.String()}, nil
}

// recordGateState tracks guardrail friction per session. A passing turn
// after a guardrail stop counts as acknowledgment of that guardrail kind.
func (s *coachService) recordGateState(sessionId string, result *agent.TurnResult) {
	state := s.gateStates.GetOrCreate(sessionId)

	switch result.Outcome {
	case gate.OutcomeGuardrailBlocked:
		if result.Guardrail != nil {
			state.LastGuardrailKind = result.Guardrail.Kind
			state.LastGuardrailAt = time.Now()
		}
	case gate.OutcomeWantRejected:
		state.ConsecutiveRejects++
	default:
		if state.LastGuardrailKind != "" {
			state.AcknowledgedKinds[state.LastGuardrailKind] = true
			state.LastGuardrailKind = ""
		}
		state.ConsecutiveRejects = 0
	}

	s.gateStates.Save(state)
}

func (s *coachService) persistExchange(ctx context.Context, session *entity.ChatSession, userMsg, reply string, firstTurn bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := time.Now()
	if err := uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          "user",
		Content:       userMsg,
		CreatedAt:     now,
	}); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          "assistant",
		Content:       reply,
		CreatedAt:     now.Add(time.Millisecond),
	}); err != nil {
		return err
	}

	// First exchange names the session after the opening message.
	if firstTurn {
		session.Title = truncateTitle(userMsg, 60)
		session.UpdatedAt = &now
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return err
		}
	}

	return uow.Commit()
}

// truncateTitle cuts on a rune boundary so a multi-byte character is never
// split into invalid UTF-8.
func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
