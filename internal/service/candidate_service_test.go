package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/Deepak-Mahanta/Votify/internal/errors"
	"github.com/Deepak-Mahanta/Votify/internal/model"
)

// MockCandidateRepository is a mock implementation of CandidateRepository.
type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Create(ctx context.Context, candidate *model.Candidate) error {
	args := m.Called(ctx, candidate)
	return args.Error(0)
}

func (m *MockCandidateRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, party string, age int) (*model.Candidate, error) {
	args := m.Called(ctx, id, name, party, age)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) List(ctx context.Context) ([]model.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) ListByVoteCount(ctx context.Context) ([]model.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Candidate), args.Error(1)
}

func TestCandidateService_Create(t *testing.T) {
	mockRepo := new(MockCandidateRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Candidate) bool {
		// A freshly registered candidate starts with no votes, whatever the
		// request claimed.
		return c.Name == "Asha Verma" && c.VoteCount == 0 && len(c.Ballots) == 0
	})).Return(nil)

	svc := NewCandidateService(mockRepo, nil)

	candidate, err := svc.Create(context.Background(), CandidateParams{
		Name:  "Asha Verma",
		Party: "Progressive Alliance",
		Age:   52,
	})
	assert.NoError(t, err)
	assert.NotNil(t, candidate)
	mockRepo.AssertExpectations(t)
}

func TestCandidateService_Update(t *testing.T) {
	candidateID := uuid.New()

	t.Run("passes only profile fields through", func(t *testing.T) {
		mockRepo := new(MockCandidateRepository)
		mockRepo.On("UpdateProfile", mock.Anything, candidateID, "Ravi Kumar", "National Unity Party", 48).
			Return(&model.Candidate{ID: candidateID, Name: "Ravi Kumar", VoteCount: 17}, nil)

		svc := NewCandidateService(mockRepo, nil)

		candidate, err := svc.Update(context.Background(), candidateID, CandidateParams{
			Name:  "Ravi Kumar",
			Party: "National Unity Party",
			Age:   48,
		})
		assert.NoError(t, err)
		// Ledger-owned count survives the admin write untouched.
		assert.Equal(t, uint64(17), candidate.VoteCount)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing candidate", func(t *testing.T) {
		mockRepo := new(MockCandidateRepository)
		mockRepo.On("UpdateProfile", mock.Anything, candidateID, "X", "Y", 30).
			Return(nil, gorm.ErrRecordNotFound)

		svc := NewCandidateService(mockRepo, nil)

		_, err := svc.Update(context.Background(), candidateID, CandidateParams{Name: "X", Party: "Y", Age: 30})
		assert.ErrorIs(t, err, errors.ErrCandidateNotFound)
	})
}

func TestCandidateService_Delete(t *testing.T) {
	candidateID := uuid.New()

	t.Run("deletes existing candidate", func(t *testing.T) {
		mockRepo := new(MockCandidateRepository)
		mockRepo.On("Delete", mock.Anything, candidateID).Return(nil)

		svc := NewCandidateService(mockRepo, nil)
		assert.NoError(t, svc.Delete(context.Background(), candidateID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing candidate", func(t *testing.T) {
		mockRepo := new(MockCandidateRepository)
		mockRepo.On("Delete", mock.Anything, candidateID).Return(gorm.ErrRecordNotFound)

		svc := NewCandidateService(mockRepo, nil)
		assert.ErrorIs(t, svc.Delete(context.Background(), candidateID), errors.ErrCandidateNotFound)
	})
}

func TestCandidateService_List(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockCandidateRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Candidate{
		{ID: id, Name: "Asha Verma", Party: "Progressive Alliance", Age: 52, VoteCount: 3},
	}, nil)

	svc := NewCandidateService(mockRepo, nil)

	views, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []CandidateView{
		{ID: id, Name: "Asha Verma", Party: "Progressive Alliance", Age: 52, VoteCount: 3},
	}, views)
}
