package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/data/repos/collection"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/domain/content"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type CertificateService interface {
	List(ctx context.Context) ([]types.Certificate, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Certificate, error)
	Create(ctx context.Context, in *types.Certificate) (*types.Certificate, error)
	Update(ctx context.Context, id uuid.UUID, in *types.Certificate) (*types.Certificate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var certificateColumns = []string{"title", "issuer", "issue_date", "credential_url", "image_url", "updated_at"}

type certificateService struct {
	log      *logger.Logger
	repo     repos.CertificateRepo
	notifier SiteNotifier
	today    func() content.Date
}

func NewCertificateService(log *logger.Logger, repo repos.CertificateRepo, notifier SiteNotifier) CertificateService {
	return &certificateService{
		log:      log.With("service", "CertificateService"),
		repo:     repo,
		notifier: siteNotifierOrNop(notifier),
		today:    content.Today,
	}
}

func (s *certificateService) List(ctx context.Context) ([]types.Certificate, error) {
	return s.repo.Select(dbc(ctx), collection.Query{OrderBy: []collection.Order{
		collection.Desc("issue_date"),
		collection.Desc("created_at"),
	}})
}

func (s *certificateService) Get(ctx context.Context, id uuid.UUID) (*types.Certificate, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(dbc(ctx), id)
}

func (s *certificateService) Create(ctx context.Context, in *types.Certificate) (*types.Certificate, error) {
	if in == nil {
		return nil, errs.Invalid("certificate", "is required")
	}
	rec := *in
	rec.ID = uuid.Nil
	if err := s.validate(&rec); err != nil {
		return nil, err
	}
	out, err := s.repo.Insert(dbc(ctx), &rec)
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "certificate_created")
	return out, nil
}

func (s *certificateService) Update(ctx context.Context, id uuid.UUID, in *types.Certificate) (*types.Certificate, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, errs.Invalid("certificate", "is required")
	}
	rec := *in
	rec.ID = id
	if err := s.validate(&rec); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(dbc(ctx), id, &rec, certificateColumns...)
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "certificate_updated")
	return out, nil
}

func (s *certificateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(dbc(ctx), id); err != nil {
		return err
	}
	s.notifier.SiteChanged(ctx, "certificate_deleted")
	return nil
}

// validate defaults issue_date to today and stores blank URLs as NULL.
func (s *certificateService) validate(c *types.Certificate) error {
	c.Title = strings.TrimSpace(c.Title)
	c.Issuer = strings.TrimSpace(c.Issuer)
	if err := errs.Required("title", c.Title, "issuer", c.Issuer); err != nil {
		return err
	}
	if c.IssueDate.IsZero() {
		c.IssueDate = s.today()
	}
	c.CredentialURL = content.NullIfBlank(c.CredentialURL)
	c.ImageURL = content.NullIfBlank(c.ImageURL)
	return nil
}
