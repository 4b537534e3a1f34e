package services

import (
	"context"
	"fmt"
	"strings"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/platform/sendgrid"
)

// SiteNotifier is told when content rendered on the public page changed.
type SiteNotifier interface {
	SiteChanged(ctx context.Context, reason string)
}

type nopSiteNotifier struct{}

func (nopSiteNotifier) SiteChanged(context.Context, string) {}

func siteNotifierOrNop(n SiteNotifier) SiteNotifier {
	if n == nil {
		return nopSiteNotifier{}
	}
	return n
}

// ContactNotifier is told about new contact form submissions.
type ContactNotifier interface {
	MessageReceived(ctx context.Context, msg *types.Message)
}

type emailContactNotifier struct {
	log    *logger.Logger
	client sendgrid.Client
	to     string
	from   sendgrid.EmailAddress
	site   string
}

// NewEmailContactNotifier mails every submission to the site owner. It returns
// nil when the client or recipient is missing.
func NewEmailContactNotifier(log *logger.Logger, client sendgrid.Client, to string, from sendgrid.EmailAddress, siteTitle string) ContactNotifier {
	to = strings.TrimSpace(to)
	if client == nil || to == "" {
		return nil
	}
	return &emailContactNotifier{
		log:    log.With("service", "ContactNotifier"),
		client: client,
		to:     to,
		from:   from,
		site:   siteTitle,
	}
}

func (n *emailContactNotifier) MessageReceived(ctx context.Context, msg *types.Message) {
	if n == nil || msg == nil {
		return
	}
	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = "New message"
	}
	if n.site != "" {
		subject = fmt.Sprintf("[%s] %s", n.site, subject)
	}
	req := sendgrid.SendEmailRequest{
		From:       n.from,
		ReplyTo:    &sendgrid.EmailAddress{Email: msg.Email, Name: msg.Name},
		To:         []sendgrid.EmailAddress{{Email: n.to}},
		Subject:    subject,
		Text:       fmt.Sprintf("From: %s <%s>\n\n%s\n", msg.Name, msg.Email, msg.Message),
		Categories: []string{"contact"},
	}
	if _, err := n.client.Send(ctx, req); err != nil {
		n.log.Warn("Contact notification failed", "message_id", msg.ID.String(), "error", err)
	}
}
