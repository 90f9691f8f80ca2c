package handler

//go:generate mockery

import (
	"context"

	"github.com/Sibiraj15/url-shortener/internal/domain"
)

type LinkService interface {
	CreateLink(ctx context.Context, targetURL, customCode string) (*domain.CreateLinkResponse, error)
	GetLink(ctx context.Context, code string) (*domain.Link, error)
	ListLinks(ctx context.Context) ([]domain.Link, error)
	DeleteLink(ctx context.Context, code string) error
	Resolve(ctx context.Context, code string) (string, error)
}

type LinkValidator interface {
	ValidateURL(url string) error
	ValidateCode(code string) error
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}
