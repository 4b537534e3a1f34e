package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/data/repos/collection"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

const (
	maxMessageLength = 5000
	maxSubjectLength = 200
)

// ContactForm is what visitors submit from the Contact block.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type MessageService interface {
	// Submit stores a public contact form submission as unread.
	Submit(ctx context.Context, form ContactForm) (*types.Message, error)
	List(ctx context.Context) ([]types.Message, error)
	CountUnread(ctx context.Context) (int64, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Message, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) (*types.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type messageService struct {
	log      *logger.Logger
	repo     repos.MessageRepo
	notifier ContactNotifier
}

// NewMessageService builds the inbox service. notifier may be nil.
func NewMessageService(log *logger.Logger, repo repos.MessageRepo, notifier ContactNotifier) MessageService {
	return &messageService{
		log:      log.With("service", "MessageService"),
		repo:     repo,
		notifier: notifier,
	}
}

func (s *messageService) Submit(ctx context.Context, form ContactForm) (*types.Message, error) {
	rec := types.Message{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.ToLower(strings.TrimSpace(form.Email)),
		Subject: strings.TrimSpace(form.Subject),
		Message: strings.TrimSpace(form.Message),
		Status:  types.MessageStatusUnread,
	}
	if err := errs.Required("name", rec.Name, "email", rec.Email, "message", rec.Message); err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(rec.Email); err != nil {
		return nil, errs.Invalid("email", "is not a valid address")
	}
	if len(rec.Subject) > maxSubjectLength {
		return nil, errs.Invalid("subject", "must be at most %d characters", maxSubjectLength)
	}
	if len(rec.Message) > maxMessageLength {
		return nil, errs.Invalid("message", "must be at most %d characters", maxMessageLength)
	}
	out, err := s.repo.Insert(dbc(ctx), &rec)
	if err != nil {
		return nil, err
	}
	s.log.Info("Contact message received", "message_id", out.ID.String(), "email", out.Email)
	if s.notifier != nil {
		s.notifier.MessageReceived(ctx, out)
	}
	return out, nil
}

func (s *messageService) List(ctx context.Context) ([]types.Message, error) {
	return s.repo.Select(dbc(ctx), collection.Query{OrderBy: []collection.Order{collection.Desc("created_at")}})
}

func (s *messageService) CountUnread(ctx context.Context) (int64, error) {
	return s.repo.Count(dbc(ctx), collection.Eq("status", types.MessageStatusUnread))
}

func (s *messageService) Get(ctx context.Context, id uuid.UUID) (*types.Message, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(dbc(ctx), id)
}

func (s *messageService) MarkAsRead(ctx context.Context, id uuid.UUID) (*types.Message, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.Update(dbc(ctx), id, map[string]any{"status": types.MessageStatusRead})
}

func (s *messageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.repo.Delete(dbc(ctx), id)
}
