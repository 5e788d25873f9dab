package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Deepak-Mahanta/Votify/internal/auth"
	"github.com/Deepak-Mahanta/Votify/internal/cache"
	"github.com/Deepak-Mahanta/Votify/internal/errors"
	"github.com/Deepak-Mahanta/Votify/internal/model"
	"github.com/Deepak-Mahanta/Votify/internal/repository"
)

const (
	tallyCacheKey = "candidates:tally"
	tallyCacheTTL = 5 * time.Second
)

// TallyEntry is one row of the public tally.
type TallyEntry struct {
	Party string `json:"party"`
	Count uint64 `json:"count"`
}

// VoteService is the vote ledger: it validates eligibility and performs the
// guarded false-to-true transition on the voter together with the candidate
// counter increment and ballot append, all in one storage transaction.
type VoteService interface {
	CastVote(ctx context.Context, identity auth.Identity, candidateID uuid.UUID) error
	Tally(ctx context.Context) ([]TallyEntry, error)
}

type voteService struct {
	voteRepo       repository.VoteRepository
	candidateRepo  repository.CandidateRepository
	cache          *cache.Client
	storageTimeout time.Duration
}

// NewVoteService creates a new vote service.
func NewVoteService(
	voteRepo repository.VoteRepository,
	candidateRepo repository.CandidateRepository,
	cache *cache.Client,
	storageTimeout time.Duration,
) VoteService {
	return &voteService{
		voteRepo:       voteRepo,
		candidateRepo:  candidateRepo,
		cache:          cache,
		storageTimeout: storageTimeout,
	}
}

// CastVote records exactly one vote for the identified user.
//
// Precondition order, first failure wins: candidate must exist, the caller
// must hold the voter role (admins cannot vote), and the caller must not
// have voted. The candidate row lock, the conditional voted-flag update,
// the ballot insert, and the counter increment all commit or roll back as
// one unit: a voter racing itself gets exactly one success, concurrent
// votes for one candidate never lose an increment, and a cancelled request
// either committed fully or left no trace.
func (s *voteService) CastVote(ctx context.Context, identity auth.Identity, candidateID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	err := s.voteRepo.WithTransaction(ctx, func(ctx context.Context, tx repository.VoteRepository) error {
		candidate, err := tx.FindCandidateForUpdate(ctx, candidateID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrCandidateNotFound
			}
			return errors.WrapStorage(fmt.Errorf("find candidate: %w", err))
		}

		// Eligibility is part of the ledger, not the route layer: an admin
		// token reaches this point and is rejected here.
		if identity.Role != model.RoleVoter {
			return errors.ErrForbidden
		}

		applied, err := tx.MarkUserVoted(ctx, identity.UserID)
		if err != nil {
			return errors.WrapStorage(fmt.Errorf("mark user voted: %w", err))
		}
		if !applied {
			// Flag was already set, or the user row is gone. Distinguish the
			// two rather than guessing.
			if _, err := tx.FindUserForUpdate(ctx, identity.UserID); err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.ErrUserNotFound
				}
				return errors.WrapStorage(fmt.Errorf("find user: %w", err))
			}
			return errors.ErrAlreadyVoted
		}

		ballot := &model.Ballot{
			CandidateID: candidate.ID,
			UserID:      identity.UserID,
		}
		if err := tx.CreateBallot(ctx, ballot); err != nil {
			return errors.WrapStorage(fmt.Errorf("create ballot: %w", err))
		}

		if err := tx.IncrementVoteCount(ctx, candidate.ID); err != nil {
			return errors.WrapStorage(fmt.Errorf("increment vote count: %w", err))
		}

		return nil
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.WrapStorage(err)
		}
		return err
	}

	_ = s.cache.Delete(ctx, tallyCacheKey)
	_ = s.cache.Delete(ctx, candidateListCacheKey)
	return nil
}

// Tally returns the per-candidate vote counts ordered by count descending,
// ties broken by candidate insertion order. It is a read-only snapshot.
func (s *voteService) Tally(ctx context.Context) ([]TallyEntry, error) {
	var cached []TallyEntry
	if s.cache.GetJSON(ctx, tallyCacheKey, &cached) {
		return cached, nil
	}

	candidates, err := s.candidateRepo.ListByVoteCount(ctx)
	if err != nil {
		return nil, errors.WrapStorage(fmt.Errorf("list candidates: %w", err))
	}

	entries := make([]TallyEntry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, TallyEntry{
			Party: c.Party,
			Count: c.VoteCount,
		})
	}

	s.cache.SetJSON(ctx, tallyCacheKey, entries, tallyCacheTTL)
	return entries, nil
}
