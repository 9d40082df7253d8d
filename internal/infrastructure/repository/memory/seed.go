package memory

import (
	"context"
	"fmt"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name, description, category, image, price string
	featured                                  bool
}

var catalog = []seedProduct{
	{"Next.js SaaS Starter", "Production-ready SaaS boilerplate with auth, billing and dashboards.", "templates", "/images/products/saas-starter.jpg", "79.00", true},
	{"Tailwind UI Kit", "Over 200 responsive components built with Tailwind CSS.", "components", "/images/products/tailwind-kit.jpg", "49.00", true},
	{"Developer Portfolio", "Animated portfolio template with blog and project showcase.", "templates", "/images/products/portfolio.jpg", "29.00", true},
	{"React Admin Dashboard", "Admin dashboard with charts, tables and dark mode.", "templates", "/images/products/admin-dashboard.jpg", "59.00", true},
	{"E-commerce Storefront", "Headless storefront template with cart and checkout flows.", "templates", "/images/products/storefront.jpg", "89.00", false},
	{"Landing Page Pack", "Twelve high-converting landing pages for product launches.", "templates", "/images/products/landing-pack.jpg", "39.00", false},
	{"Icon Set Pro", "1,200 pixel-perfect SVG icons in three styles.", "assets", "/images/products/icons.jpg", "19.00", false},
}

// SeedProducts fills repo with the storefront catalog
func SeedProducts(ctx context.Context, repo domain.ProductRepository) error {
	for _, p := range catalog {
		product, err := domain.NewProduct(p.name, p.description, p.category, p.image, decimal.RequireFromString(p.price), p.featured)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
		if err := repo.Create(ctx, product); err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
	}
	return nil
}
