package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Deepak-Mahanta/Votify/internal/cache"
	"github.com/Deepak-Mahanta/Votify/internal/errors"
	"github.com/Deepak-Mahanta/Votify/internal/model"
	"github.com/Deepak-Mahanta/Votify/internal/repository"
)

const (
	candidateListCacheKey = "candidates:list"
	candidateListCacheTTL = 30 * time.Second
)

// CandidateParams carries the admin-editable candidate fields. Vote count
// and ballots are ledger-owned and deliberately absent: there is no way to
// set them through the registry.
type CandidateParams struct {
	Name  string
	Party string
	Age   int
}

// CandidateView is the public candidate listing entry.
type CandidateView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Party     string    `json:"party"`
	Age       int       `json:"age"`
	VoteCount uint64    `json:"voteCount"`
}

// CandidateService handles admin-gated candidate roster management and the
// public listing.
type CandidateService interface {
	Create(ctx context.Context, params CandidateParams) (*model.Candidate, error)
	Update(ctx context.Context, id uuid.UUID, params CandidateParams) (*model.Candidate, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]CandidateView, error)
}

type candidateService struct {
	candidateRepo repository.CandidateRepository
	cache         *cache.Client
}

// NewCandidateService creates a new candidate service.
func NewCandidateService(candidateRepo repository.CandidateRepository, cache *cache.Client) CandidateService {
	return &candidateService{
		candidateRepo: candidateRepo,
		cache:         cache,
	}
}

// Create adds a candidate with a zero vote count.
func (s *candidateService) Create(ctx context.Context, params CandidateParams) (*model.Candidate, error) {
	candidate := &model.Candidate{
		Name:  params.Name,
		Party: params.Party,
		Age:   params.Age,
	}
	if err := s.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, errors.WrapStorage(fmt.Errorf("create candidate: %w", err))
	}
	s.invalidate(ctx)
	return candidate, nil
}

// Update changes name, party, and age only.
func (s *candidateService) Update(ctx context.Context, id uuid.UUID, params CandidateParams) (*model.Candidate, error) {
	candidate, err := s.candidateRepo.UpdateProfile(ctx, id, params.Name, params.Party, params.Age)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCandidateNotFound
		}
		return nil, errors.WrapStorage(fmt.Errorf("update candidate: %w", err))
	}
	s.invalidate(ctx)
	return candidate, nil
}

// Delete removes a candidate from the roster. Candidates with recorded
// votes are deletable: the ballots stay behind as audit history and the
// voters stay marked as having voted.
func (s *candidateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.candidateRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrCandidateNotFound
		}
		return errors.WrapStorage(fmt.Errorf("delete candidate: %w", err))
	}
	s.invalidate(ctx)
	return nil
}

// List returns the public candidate roster, briefly cached.
func (s *candidateService) List(ctx context.Context) ([]CandidateView, error) {
	var cached []CandidateView
	if s.cache.GetJSON(ctx, candidateListCacheKey, &cached) {
		return cached, nil
	}

	candidates, err := s.candidateRepo.List(ctx)
	if err != nil {
		return nil, errors.WrapStorage(fmt.Errorf("list candidates: %w", err))
	}

	views := make([]CandidateView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, CandidateView{
			ID:        c.ID,
			Name:      c.Name,
			Party:     c.Party,
			Age:       c.Age,
			VoteCount: c.VoteCount,
		})
	}

	s.cache.SetJSON(ctx, candidateListCacheKey, views, candidateListCacheTTL)
	return views, nil
}

func (s *candidateService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, candidateListCacheKey)
	_ = s.cache.Delete(ctx, tallyCacheKey)
}
