package service

import (
	"context"
	"fmt"
	"time"

	"bazaarchat-be/internal/constant"
	"bazaarchat-be/internal/dto"
	"bazaarchat-be/internal/pkg/logger"
	"bazaarchat-be/internal/pkg/serverutils"
	"bazaarchat-be/internal/repository/memory"
	"bazaarchat-be/pkg/assistant"
	"bazaarchat-be/pkg/store"
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, sessionId string) (*dto.SessionHistoryResponse, error)
}

type chatService struct {
	sessions     *memory.SessionRepository
	orchestrator *assistant.Orchestrator
	catalog      ICatalogService
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewChatService(
	sessions *memory.SessionRepository,
	orchestrator *assistant.Orchestrator,
	catalog ICatalogService,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:     sessions,
		orchestrator: orchestrator,
		catalog:      catalog,
		publisher:    publisher,
		logger:       log,
	}
}

// Chat runs one user message through the assistant pipeline and
// records both sides of the exchange in the session transcript.
func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if err := store.ValidateSessionID(req.SessionId); err != nil {
		return nil, fmt.Errorf("%w: %s", serverutils.ErrInvalidSession, req.SessionId)
	}

	sess, found := s.sessions.Get(req.SessionId)
	if !found {
		sess = s.sessions.GetOrCreate(req.SessionId)
		// First contact: the welcome turn opens the transcript.
		s.recordTurn(ctx, req.SessionId, store.RoleAssistant, constant.WelcomeMessage, "")
	}

	s.recordTurn(ctx, req.SessionId, store.RoleUser, req.Message, "")

	snap := s.catalog.Snapshot()
	resp := s.orchestrator.Handle(ctx, sess, req.Message, snap)

	s.sessions.SetIntent(req.SessionId, resp.Intent)
	s.recordTurn(ctx, req.SessionId, store.RoleAssistant, resp.Summary, resp.Intent)

	return s.toChatResponse(req.SessionId, resp), nil
}

func (s *chatService) History(ctx context.Context, sessionId string) (*dto.SessionHistoryResponse, error) {
	if err := store.ValidateSessionID(sessionId); err != nil {
		return nil, fmt.Errorf("%w: %s", serverutils.ErrInvalidSession, sessionId)
	}

	sess, found := s.sessions.Get(sessionId)
	if !found {
		return nil, serverutils.ErrNotFound
	}

	turns := make([]dto.ChatTurnDTO, 0, len(sess.History))
	for _, t := range sess.History {
		turns = append(turns, dto.ChatTurnDTO{
			Role:      t.Role,
			Content:   t.Content,
			Timestamp: t.Timestamp.Format(time.RFC3339),
		})
	}
	return &dto.SessionHistoryResponse{SessionId: sessionId, Turns: turns}, nil
}

func (s *chatService) recordTurn(ctx context.Context, sessionId, role, content, intent string) {
	s.sessions.AppendTurn(sessionId, role, content)
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTurn(ctx, sessionId, role, content, intent); err != nil {
		s.logger.Warn("chat", "failed to publish transcript turn", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *chatService) toChatResponse(sessionId string, resp *assistant.Response) *dto.ChatResponse {
	out := &dto.ChatResponse{
		SessionId:         sessionId,
		Intent:            resp.Intent,
		Reply:             resp.Summary,
		NeedsVerification: resp.NeedsVerification,
		Gender:            resp.Gender,
	}
	if resp.HomeDecor != nil {
		out.HomeDecor = resp.HomeDecor.IsHome
	}
	for _, p := range resp.Products {
		out.Products = append(out.Products, dto.ProductDTO{
			Id:    p.Id,
			Name:  p.Name,
			Price: p.Price,
			Image: p.Image,
		})
	}
	for _, g := range resp.Galleries {
		out.Galleries = append(out.Galleries, dto.GalleryDTO{
			Id:    g.Id,
			Name:  g.Name,
			Image: g.Image,
		})
	}
	for _, sl := range resp.Sellers {
		out.Sellers = append(out.Sellers, dto.SellerDTO{
			Id:        sl.Id,
			StoreName: sl.Name,
			Image:     sl.Image,
			Strategy:  sl.Strategy,
		})
	}
	return out
}
