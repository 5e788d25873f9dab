package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/Deepak-Mahanta/Votify/internal/auth"
	"github.com/Deepak-Mahanta/Votify/internal/errors"
	"github.com/Deepak-Mahanta/Votify/internal/model"
	"github.com/Deepak-Mahanta/Votify/internal/repository"
)

// MockVoteRepository is a mock implementation of VoteRepository. Its
// WithTransaction runs the closure against the mock itself.
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.VoteRepository) error) error {
	return fn(ctx, m)
}

func (m *MockVoteRepository) FindCandidateForUpdate(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockVoteRepository) FindUserForUpdate(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockVoteRepository) MarkUserVoted(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoteRepository) CreateBallot(ctx context.Context, ballot *model.Ballot) error {
	args := m.Called(ctx, ballot)
	return args.Error(0)
}

func (m *MockVoteRepository) IncrementVoteCount(ctx context.Context, candidateID uuid.UUID) error {
	args := m.Called(ctx, candidateID)
	return args.Error(0)
}

func voterIdentity(userID uint) auth.Identity {
	return auth.Identity{UserID: userID, AadharNumber: "123456789012", Role: model.RoleVoter}
}

func TestVoteService_CastVote(t *testing.T) {
	candidateID := uuid.New()
	candidate := &model.Candidate{ID: candidateID, Name: "Asha Verma", Party: "Progressive Alliance"}

	tests := []struct {
		name          string
		identity      auth.Identity
		setupMock     func(*MockVoteRepository)
		expectedError error
	}{
		{
			name:     "successful vote",
			identity: voterIdentity(7),
			setupMock: func(m *MockVoteRepository) {
				m.On("FindCandidateForUpdate", mock.Anything, candidateID).Return(candidate, nil)
				m.On("MarkUserVoted", mock.Anything, uint(7)).Return(true, nil)
				m.On("CreateBallot", mock.Anything, mock.MatchedBy(func(b *model.Ballot) bool {
					return b.CandidateID == candidateID && b.UserID == 7
				})).Return(nil)
				m.On("IncrementVoteCount", mock.Anything, candidateID).Return(nil)
			},
		},
		{
			name:     "unknown candidate wins over everything",
			identity: auth.Identity{UserID: 2, Role: model.RoleAdmin},
			setupMock: func(m *MockVoteRepository) {
				m.On("FindCandidateForUpdate", mock.Anything, candidateID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrCandidateNotFound,
		},
		{
			name:     "admin cannot vote even before their flag is read",
			identity: auth.Identity{UserID: 2, Role: model.RoleAdmin},
			setupMock: func(m *MockVoteRepository) {
				m.On("FindCandidateForUpdate", mock.Anything, candidateID).Return(candidate, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "second vote by the same user",
			identity: voterIdentity(7),
			setupMock: func(m *MockVoteRepository) {
				m.On("FindCandidateForUpdate", mock.Anything, candidateID).Return(candidate, nil)
				m.On("MarkUserVoted", mock.Anything, uint(7)).Return(false, nil)
				m.On("FindUserForUpdate", mock.Anything, uint(7)).Return(&model.User{ID: 7, IsVoted: true}, nil)
			},
			expectedError: errors.ErrAlreadyVoted,
		},
		{
			name:     "missing user is not reported as already voted",
			identity: voterIdentity(404),
			setupMock: func(m *MockVoteRepository) {
				m.On("FindCandidateForUpdate", mock.Anything, candidateID).Return(candidate, nil)
				m.On("MarkUserVoted", mock.Anything, uint(404)).Return(false, nil)
				m.On("FindUserForUpdate", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
		{
			name:     "unconfirmed ballot write fails the call",
			identity: voterIdentity(7),
			setupMock: func(m *MockVoteRepository) {
				m.On("FindCandidateForUpdate", mock.Anything, candidateID).Return(candidate, nil)
				m.On("MarkUserVoted", mock.Anything, uint(7)).Return(true, nil)
				m.On("CreateBallot", mock.Anything, mock.Anything).Return(gorm.ErrInvalidDB)
			},
			expectedError: errors.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockVoteRepository)
			tt.setupMock(mockRepo)

			svc := NewVoteService(mockRepo, nil, nil, 5*time.Second)
			err := svc.CastVote(context.Background(), tt.identity, candidateID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// fakeVoteStore is an in-memory VoteRepository whose transactions run
// serialized under one mutex, mirroring how row locks serialize conflicting
// database transactions.
type fakeVoteStore struct {
	mu         sync.Mutex
	users      map[uint]*model.User
	candidates map[uuid.UUID]*model.Candidate
	ballots    []model.Ballot
}

func newFakeVoteStore() *fakeVoteStore {
	return &fakeVoteStore{
		users:      make(map[uint]*model.User),
		candidates: make(map[uuid.UUID]*model.Candidate),
	}
}

func (f *fakeVoteStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.VoteRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx, f)
}

func (f *fakeVoteStore) FindCandidateForUpdate(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeVoteStore) FindUserForUpdate(ctx context.Context, id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeVoteStore) MarkUserVoted(ctx context.Context, userID uint) (bool, error) {
	u, ok := f.users[userID]
	if !ok || u.IsVoted {
		return false, nil
	}
	u.IsVoted = true
	return true, nil
}

func (f *fakeVoteStore) CreateBallot(ctx context.Context, ballot *model.Ballot) error {
	f.ballots = append(f.ballots, *ballot)
	return nil
}

func (f *fakeVoteStore) IncrementVoteCount(ctx context.Context, candidateID uuid.UUID) error {
	f.candidates[candidateID].VoteCount++
	return nil
}

func TestVoteService_SameUserConcurrentVotes(t *testing.T) {
	store := newFakeVoteStore()
	candidateID := uuid.New()
	store.candidates[candidateID] = &model.Candidate{ID: candidateID, Party: "Progressive Alliance"}
	store.users[1] = &model.User{ID: 1, Role: model.RoleVoter}

	svc := NewVoteService(store, nil, nil, 5*time.Second)

	const attempts = 10
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.CastVote(context.Background(), voterIdentity(1), candidateID)
		}()
	}
	wg.Wait()
	close(results)

	var successes, alreadyVoted int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, errors.ErrAlreadyVoted):
			alreadyVoted++
		}
	}

	assert.Equal(t, 1, successes, "a voter racing itself must win exactly once")
	assert.Equal(t, attempts-1, alreadyVoted)
	assert.Equal(t, uint64(1), store.candidates[candidateID].VoteCount)
	assert.Len(t, store.ballots, 1)
}

func TestVoteService_ConcurrentDistinctVoters(t *testing.T) {
	store := newFakeVoteStore()
	candidateID := uuid.New()
	store.candidates[candidateID] = &model.Candidate{ID: candidateID, Party: "Progressive Alliance"}

	const voters = 100
	for i := 1; i <= voters; i++ {
		store.users[uint(i)] = &model.User{ID: uint(i), Role: model.RoleVoter}
	}

	svc := NewVoteService(store, nil, nil, 5*time.Second)

	var wg sync.WaitGroup
	for i := 1; i <= voters; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			assert.NoError(t, svc.CastVote(context.Background(), voterIdentity(userID), candidateID))
		}(uint(i))
	}
	wg.Wait()

	// No lost updates, and the counter matches the ballot audit trail.
	assert.Equal(t, uint64(voters), store.candidates[candidateID].VoteCount)
	assert.Len(t, store.ballots, voters)

	seen := make(map[uint]bool)
	for _, b := range store.ballots {
		assert.False(t, seen[b.UserID], "duplicate ballot for user %d", b.UserID)
		seen[b.UserID] = true
	}
}

func TestVoteService_Tally(t *testing.T) {
	mockCandidates := new(MockCandidateRepository)
	mockCandidates.On("ListByVoteCount", mock.Anything).Return([]model.Candidate{
		{Party: "National Unity Party", VoteCount: 9},
		{Party: "Progressive Alliance", VoteCount: 4},
		{Party: "People's Front", VoteCount: 4},
		{Party: "Independent", VoteCount: 0},
	}, nil)

	svc := NewVoteService(new(MockVoteRepository), mockCandidates, nil, 5*time.Second)

	tally, err := svc.Tally(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []TallyEntry{
		{Party: "National Unity Party", Count: 9},
		{Party: "Progressive Alliance", Count: 4},
		{Party: "People's Front", Count: 4},
		{Party: "Independent", Count: 0},
	}, tally)
}
