package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

// UploadSlot names what an uploaded file is for.
type UploadSlot string

const (
	SlotLogo             UploadSlot = "logo"
	SlotHeroImage        UploadSlot = "hero_image"
	SlotResume           UploadSlot = "resume"
	SlotProjectImage     UploadSlot = "project_image"
	SlotCertificateImage UploadSlot = "certificate_image"
)

const (
	MaxImageBytes  int64 = 10 << 20
	MaxResumeBytes int64 = 5 << 20
)

type fileKind int

const (
	kindImage fileKind = iota
	kindPDF
)

type slotSpec struct {
	bucket   gcp.BucketCategory
	prefix   string
	kind     fileKind
	maxBytes int64
	// field is set for slots persisted straight into site_settings.
	field types.SettingsField
}

var slotSpecs = map[UploadSlot]slotSpec{
	SlotLogo:             {bucket: gcp.BucketCategoryAssets, prefix: "logo", kind: kindImage, maxBytes: MaxImageBytes, field: types.SettingsFieldLogo},
	SlotHeroImage:        {bucket: gcp.BucketCategoryAssets, prefix: "hero", kind: kindImage, maxBytes: MaxImageBytes, field: types.SettingsFieldHeroImage},
	SlotResume:           {bucket: gcp.BucketCategoryResumes, prefix: "resume", kind: kindPDF, maxBytes: MaxResumeBytes, field: types.SettingsFieldResume},
	SlotProjectImage:     {bucket: gcp.BucketCategoryProjects, prefix: "project", kind: kindImage, maxBytes: MaxImageBytes},
	SlotCertificateImage: {bucket: gcp.BucketCategoryCertificates, prefix: "cert", kind: kindImage, maxBytes: MaxImageBytes},
}

func ParseUploadSlot(s string) (UploadSlot, error) {
	slot := UploadSlot(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := slotSpecs[slot]; !ok {
		return "", errs.OneOf("slot", s,
			string(SlotLogo), string(SlotHeroImage), string(SlotResume),
			string(SlotProjectImage), string(SlotCertificateImage))
	}
	return slot, nil
}

// IsSettingsSlot reports whether slot is stored on the site settings row.
func IsSettingsSlot(slot UploadSlot) bool {
	return slotSpecs[slot].field != ""
}

type UploadResult struct {
	Slot   UploadSlot `json:"slot"`
	Bucket string     `json:"bucket"`
	Key    string     `json:"key"`
	URL    string     `json:"url"`
	// Settings is the stored settings row for settings slots.
	Settings *types.SiteSettings `json:"settings,omitempty"`
}

type UploadService interface {
	// Upload validates file, stores it under a fresh key and returns its
	// public URL. Settings slots are saved to site_settings right away.
	Upload(ctx context.Context, slot UploadSlot, filename string, file io.Reader) (*UploadResult, error)
}

type uploadService struct {
	log      *logger.Logger
	bucket   gcp.BucketService
	settings repos.SettingsRepo
	notifier SiteNotifier
	now      func() time.Time
}

func NewUploadService(log *logger.Logger, bucket gcp.BucketService, settings repos.SettingsRepo, notifier SiteNotifier) UploadService {
	return &uploadService{
		log:      log.With("service", "UploadService"),
		bucket:   bucket,
		settings: settings,
		notifier: siteNotifierOrNop(notifier),
		now:      time.Now,
	}
}

func (s *uploadService) Upload(ctx context.Context, slot UploadSlot, filename string, file io.Reader) (*UploadResult, error) {
	spec, ok := slotSpecs[slot]
	if !ok {
		return nil, errs.Invalid("slot", "unknown upload slot %q", slot)
	}
	if file == nil {
		return nil, errs.Invalid("file", "is required")
	}
	data, err := io.ReadAll(io.LimitReader(file, spec.maxBytes+1))
	if err != nil {
		return nil, errs.Invalid("file", "could not be read: %v", err)
	}
	ext, err := detectExtension(spec.kind, filename, data, spec.maxBytes)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s-%d.%s", spec.prefix, s.now().UnixMilli(), ext)
	if err := s.bucket.UploadFile(dbc(ctx), spec.bucket, key, bytes.NewReader(data)); err != nil {
		s.log.Error("Upload failed", "slot", string(slot), "bucket", string(spec.bucket), "key", key, "error", err)
		return nil, &errs.UploadError{Bucket: string(spec.bucket), Path: key, Err: err}
	}
	res := &UploadResult{
		Slot:   slot,
		Bucket: string(spec.bucket),
		Key:    key,
		URL:    s.bucket.GetPublicURL(spec.bucket, key),
	}
	s.log.Info("File uploaded", "slot", string(slot), "key", key, "bytes", len(data))

	if spec.field == "" {
		return res, nil
	}
	url := res.URL
	row, err := s.settings.SetField(dbc(ctx), spec.field, &url)
	if err != nil {
		return nil, err
	}
	res.Settings = row
	s.notifier.SiteChanged(ctx, "settings_"+string(spec.field))
	return res, nil
}

// detectExtension sniffs data and returns the extension the key is stored under.
func detectExtension(kind fileKind, filename string, data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", errs.Invalid("file", "is empty")
	}
	if int64(len(data)) > maxBytes {
		return "", errs.Invalid("file", "must be at most %d MB", maxBytes>>20)
	}
	sniffed := http.DetectContentType(data)
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}

	switch kind {
	case kindPDF:
		if sniffed != "application/pdf" {
			return "", errs.Invalid("file", "must be a PDF")
		}
		return "pdf", nil
	default:
		switch sniffed {
		case "image/png":
			return "png", nil
		case "image/jpeg":
			return "jpg", nil
		case "image/webp":
			return "webp", nil
		case "image/gif":
			return "gif", nil
		case "text/xml", "text/plain", "image/svg+xml":
			if strings.EqualFold(filepath.Ext(filename), ".svg") && bytes.Contains(bytes.ToLower(data), []byte("<svg")) {
				return "svg", nil
			}
		}
		return "", errs.Invalid("file", "must be a png, jpeg, webp, gif or svg image")
	}
}
