package service

import (
	"context"
	"fmt"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/events"
	"github.com/chandrabharti/restaurant-api/internal/logger"
	"github.com/chandrabharti/restaurant-api/internal/repository"
)

type ContactService interface {
	Create(ctx context.Context, req *domain.CreateMessageRequest) (*domain.Message, error)
	List(ctx context.Context, limit, offset int) ([]domain.Message, error)
	Reply(ctx context.Context, id int64, req *domain.ReplyMessageRequest) (*domain.Message, error)
	Delete(ctx context.Context, id int64) error
}

type contactService struct {
	messageRepo repository.MessageRepository
	eventBus    events.Publisher
}

func NewContactService(messageRepo repository.MessageRepository, eventBus events.Publisher) ContactService {
	return &contactService{messageRepo: messageRepo, eventBus: eventBus}
}

func (s *contactService) Create(ctx context.Context, req *domain.CreateMessageRequest) (*domain.Message, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	message, err := s.messageRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.ContactMessageCreated, events.ContactMessageCreatedEvent{
		MessageID: message.ID,
		Email:     message.Email,
		Name:      message.Name,
		Subject:   message.Subject,
		CreatedAt: message.CreatedAt,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", events.ContactMessageCreated, "error", err)
	}

	return message, nil
}

func (s *contactService) List(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	messages, err := s.messageRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (s *contactService) Reply(ctx context.Context, id int64, req *domain.ReplyMessageRequest) (*domain.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	message, err := s.messageRepo.Reply(ctx, id, req.ReplyMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to reply to message: %w", err)
	}
	if message == nil {
		return nil, domain.ErrNotFound
	}
	return message, nil
}

func (s *contactService) Delete(ctx context.Context, id int64) error {
	if err := s.messageRepo.Delete(ctx, id); err != nil {
		return mapNoRows(err)
	}
	return nil
}
