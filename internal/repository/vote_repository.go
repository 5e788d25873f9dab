package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Deepak-Mahanta/Votify/internal/model"
)

// VoteRepository groups the storage operations that must commit together
// when a vote is cast: the conditional voted-flag set on the user, the
// ballot insert, and the candidate counter increment. All mutating methods
// are meant to run inside WithTransaction; the row locks taken there
// serialize a voter racing itself and concurrent votes for one candidate.
type VoteRepository interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo VoteRepository) error) error
	FindCandidateForUpdate(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	FindUserForUpdate(ctx context.Context, id uint) (*model.User, error)
	// MarkUserVoted flips the voted flag only if it is currently false and
	// reports whether the update applied.
	MarkUserVoted(ctx context.Context, userID uint) (bool, error)
	CreateBallot(ctx context.Context, ballot *model.Ballot) error
	IncrementVoteCount(ctx context.Context, candidateID uuid.UUID) error
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// WithTransaction executes a function within a database transaction.
func (r *voteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo VoteRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &voteRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

// FindCandidateForUpdate finds a candidate by ID with a row-level lock.
func (r *voteRepository) FindCandidateForUpdate(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&candidate).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

// FindUserForUpdate finds a user by ID with a row-level lock.
func (r *voteRepository) FindUserForUpdate(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkUserVoted performs the atomic check-and-set on the voted flag. The
// WHERE clause carries the precondition so a stale in-memory flag can never
// cause a double vote.
func (r *voteRepository) MarkUserVoted(ctx context.Context, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND is_voted = ?", userID, false).
		Update("is_voted", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CreateBallot appends the voter reference for a cast vote.
func (r *voteRepository) CreateBallot(ctx context.Context, ballot *model.Ballot) error {
	return r.db.WithContext(ctx).Create(ballot).Error
}

// IncrementVoteCount bumps the candidate counter in place so concurrent
// votes for the same candidate never lose an update.
func (r *voteRepository) IncrementVoteCount(ctx context.Context, candidateID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Candidate{}).
		Where("id = ?", candidateID).
		Update("vote_count", gorm.Expr("vote_count + ?", 1)).Error
}
