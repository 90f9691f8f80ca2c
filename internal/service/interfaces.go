package service

//go:generate mockery

import (
	"context"

	"github.com/Sibiraj15/url-shortener/internal/domain"
)

type LinkStore interface {
	FindByCode(ctx context.Context, code string) (*domain.Link, error)
	Insert(ctx context.Context, link *domain.Link) error
	DeleteByCode(ctx context.Context, code string) (*domain.Link, error)
	ListAll(ctx context.Context) ([]domain.Link, error)
	IncrementClicks(ctx context.Context, code string) (*domain.Link, error)
}

type CodeGenerator interface {
	Generate() string
}
