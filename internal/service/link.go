package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sibiraj15/url-shortener/internal/domain"
	"github.com/Sibiraj15/url-shortener/internal/repository"
)

var (
	ErrLinkNotFound  = errors.New("link not found")
	ErrCodeTaken     = errors.New("code already exists")
	ErrCodeExhausted = errors.New("failed to generate unique code")
)

// maxCodeAttempts bounds the generate-and-check loop. A duplicate-key
// rejection on insert counts against the same budget: losing the race to a
// concurrent allocator is just another taken code.
const maxCodeAttempts = 10

type LinkService struct {
	store     LinkStore
	generator CodeGenerator
	baseURL   string
}

func NewLinkService(store LinkStore, generator CodeGenerator, baseURL string) *LinkService {
	return &LinkService{
		store:     store,
		generator: generator,
		baseURL:   baseURL,
	}
}

// CreateLink allocates a code (validating the custom one, or generating a
// fresh one under the retry budget) and persists the new Link. The store's
// unique key on code is the final arbiter between concurrent allocations.
func (s *LinkService) CreateLink(ctx context.Context, targetURL, customCode string) (*domain.CreateLinkResponse, error) {
	var (
		link *domain.Link
		err  error
	)
	if customCode != "" {
		link, err = s.createWithCustomCode(ctx, targetURL, customCode)
	} else {
		link, err = s.createWithGeneratedCode(ctx, targetURL)
	}
	if err != nil {
		return nil, err
	}

	return &domain.CreateLinkResponse{
		Code:      link.Code,
		TargetURL: link.TargetURL,
		ShortURL:  fmt.Sprintf("%s/%s", s.baseURL, link.Code),
	}, nil
}

func (s *LinkService) createWithCustomCode(ctx context.Context, targetURL, code string) (*domain.Link, error) {
	// Pre-check gives a fast, specific conflict answer; the insert below
	// still guards against a race between check and write.
	_, err := s.store.FindByCode(ctx, code)
	if err == nil {
		return nil, ErrCodeTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check code: %w", err)
	}

	link := newLink(code, targetURL)
	if err := s.store.Insert(ctx, link); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, ErrCodeTaken
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return link, nil
}

func (s *LinkService) createWithGeneratedCode(ctx context.Context, targetURL string) (*domain.Link, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := s.generator.Generate()

		_, err := s.store.FindByCode(ctx, code)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check code: %w", err)
		}

		link := newLink(code, targetURL)
		if err := s.store.Insert(ctx, link); err != nil {
			if errors.Is(err, repository.ErrDuplicateCode) {
				continue
			}
			return nil, fmt.Errorf("failed to create link: %w", err)
		}
		return link, nil
	}
	return nil, ErrCodeExhausted
}

func newLink(code, targetURL string) *domain.Link {
	now := time.Now().UTC()
	return &domain.Link{
		Code:      code,
		TargetURL: targetURL,
		Clicks:    0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *LinkService) GetLink(ctx context.Context, code string) (*domain.Link, error) {
	link, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to find link: %w", err)
	}
	return link, nil
}

func (s *LinkService) ListLinks(ctx context.Context) ([]domain.Link, error) {
	links, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

func (s *LinkService) DeleteLink(ctx context.Context, code string) error {
	_, err := s.store.DeleteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

// Resolve looks up a code for redirecting and records the click. The store
// applies the increment atomically, so the read never observes a counter it
// could overwrite.
func (s *LinkService) Resolve(ctx context.Context, code string) (string, error) {
	link, err := s.store.IncrementClicks(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrLinkNotFound
		}
		return "", fmt.Errorf("failed to resolve link: %w", err)
	}
	return link.TargetURL, nil
}
