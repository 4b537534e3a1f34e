package services

import (
	"context"

	"github.com/yungbote/portfolio-backend/internal/services/sections"
)

const blogBlockLimit = 3

// HeroData is what the Hero block renders besides static copy.
type HeroData struct {
	ResumeURL    *string `json:"resume_url"`
	HeroImageURL *string `json:"hero_image_url"`
}

// BlockSources are the services page blocks read from.
type BlockSources struct {
	Settings     SettingsService
	Skills       SkillService
	Projects     ProjectService
	Experiments  ExperimentService
	Blogs        BlogService
	Certificates CertificateService
}

// BlockLoaders maps block keys to the reads that hydrate them. About and
// Contact are static and have no loader.
func BlockLoaders(src BlockSources) map[string]sections.BlockLoader {
	return map[string]sections.BlockLoader{
		"hero": func(ctx context.Context) (any, error) {
			st, err := src.Settings.Get(ctx)
			if err != nil {
				return nil, err
			}
			return HeroData{ResumeURL: st.ResumeURL, HeroImageURL: st.HeroImageURL}, nil
		},
		"skills": func(ctx context.Context) (any, error) {
			return src.Skills.ListCategories(ctx)
		},
		"projects": func(ctx context.Context) (any, error) {
			return src.Projects.ListActive(ctx)
		},
		"data_science_lab": func(ctx context.Context) (any, error) {
			return src.Experiments.List(ctx)
		},
		"blog": func(ctx context.Context) (any, error) {
			return src.Blogs.ListPublished(ctx, blogBlockLimit)
		},
		"certificates": func(ctx context.Context) (any, error) {
			return src.Certificates.List(ctx)
		},
	}
}

// LogoLoader resolves the navbar logo from site settings.
func LogoLoader(settings SettingsService) func(ctx context.Context) (*string, error) {
	return func(ctx context.Context) (*string, error) {
		st, err := settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		return st.LogoURL, nil
	}
}
