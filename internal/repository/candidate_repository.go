package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Deepak-Mahanta/Votify/internal/model"
)

// CandidateRepository defines candidate persistence operations. Vote counts
// and ballots are written only through VoteRepository.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *model.Candidate) error
	UpdateProfile(ctx context.Context, id uuid.UUID, name, party string, age int) (*model.Candidate, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	List(ctx context.Context) ([]model.Candidate, error)
	ListByVoteCount(ctx context.Context) ([]model.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new candidate repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create creates a new candidate.
func (r *candidateRepository) Create(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

// UpdateProfile updates only the admin-editable fields of a candidate and
// returns the updated record. VoteCount and ballots are never touched here.
func (r *candidateRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, party string, age int) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&candidate).Error; err != nil {
			return err
		}
		candidate.Name = name
		candidate.Party = party
		candidate.Age = age
		return tx.Model(&candidate).Select("name", "party", "age").Updates(&candidate).Error
	})
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

// Delete soft-deletes a candidate. Its ballot rows are kept as audit
// history; the tally simply stops including the candidate.
func (r *candidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Candidate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a candidate by ID.
func (r *candidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

// List lists all candidates in insertion order.
func (r *candidateRepository) List(ctx context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

// ListByVoteCount lists candidates by vote count descending, ties broken by
// insertion order.
func (r *candidateRepository) ListByVoteCount(ctx context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if err := r.db.WithContext(ctx).
		Order("vote_count DESC").Order("created_at ASC").
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}
