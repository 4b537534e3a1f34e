package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/yungbote/portfolio-backend/internal/data/repos/collection"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
)

// Raw HTML inside markdown is escaped.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
)

func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	return strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

const wordsPerMinute = 200

// EstimateReadTime renders "N min read" for markdown content.
func EstimateReadTime(content string) string {
	words := len(strings.Fields(content))
	mins := (words + wordsPerMinute - 1) / wordsPerMinute
	if mins < 1 {
		mins = 1
	}
	return fmt.Sprintf("%d min read", mins)
}

func dbc(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }

func requireID(id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.Invalid("id", "is required")
	}
	return nil
}

// normalizeChoice trims v, applies def when blank and checks it against allowed.
func normalizeChoice(field, v, def string, allowed ...string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		v = def
	}
	if err := errs.OneOf(field, v, allowed...); err != nil {
		return "", err
	}
	return v, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func notID(id uuid.UUID) collection.Filter {
	return collection.Filter{Column: "id", Op: collection.OpNotEq, Value: id}
}
