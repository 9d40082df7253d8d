package service

import (
	"context"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
)

// homeSections is the home page layout, top to bottom
var homeSections = []dto.PageSection{
	{ID: "hero", Component: "HeroSection"},
	{ID: "products", Component: "FeaturedProducts", Muted: true},
	{ID: "features", Component: "Features"},
	{ID: "testimonials", Component: "Testimonials", Muted: true},
	{ID: "newsletter", Component: "Newsletter"},
}

// PageService serves page metadata
type PageService struct {
	site   config.SiteConfig
	toast  config.ToastConfig
	tracer trace.Tracer
}

// NewPageService creates a new page service
func NewPageService(site config.SiteConfig, toast config.ToastConfig, tracer trace.Tracer) *PageService {
	return &PageService{site: site, toast: toast, tracer: tracer}
}

// Home returns the home page head and layout
func (s *PageService) Home(ctx context.Context) *dto.PageResponse {
	_, span := s.tracer.Start(ctx, "PageService.Home")
	defer span.End()

	title := s.site.Name + " - Premium Digital Products & Templates"
	sections := make([]dto.PageSection, len(homeSections))
	copy(sections, homeSections)

	return &dto.PageResponse{
		Title: title,
		Description: "Discover premium digital products, templates, and components created by " +
			s.site.Name + ". High-quality designs for modern web development.",
		Keywords:  []string{"digital products", "templates", "components", "web development", "react", "nextjs", "tailwind"},
		Canonical: s.site.URL,
		OpenGraph: dto.OpenGraph{
			Title:       s.site.Name + " - Premium Digital Products",
			Description: "Premium digital products and templates for modern web development",
			Image:       s.site.URL + "/images/og-image.jpg",
			URL:         s.site.URL,
		},
		Twitter:  dto.TwitterCard{Card: "summary_large_image"},
		Sections: sections,
		Toaster: dto.ToasterOptions{
			Position:          "top-right",
			DurationMS:        s.toast.DefaultDuration.Milliseconds(),
			SuccessDurationMS: s.toast.SuccessDuration.Milliseconds(),
		},
	}
}
