package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/JackBruzan/espn-scrape-sub004/internal/domain/player"
	"github.com/JackBruzan/espn-scrape-sub004/internal/platform/logging"
)

type playerRepositoryMock struct {
	mock.Mock
}

func (m *playerRepositoryMock) ListCandidates(ctx context.Context, filter player.CandidateFilter) ([]player.Player, error) {
	args := m.Called(ctx, filter)
	candidates, _ := args.Get(0).([]player.Player)
	return candidates, args.Error(1)
}

func (m *playerRepositoryMock) GetByExternalID(ctx context.Context, espnID string) (player.Player, bool, error) {
	args := m.Called(ctx, espnID)
	item, _ := args.Get(0).(player.Player)
	return item, args.Bool(1), args.Error(2)
}

func (m *playerRepositoryMock) Upsert(ctx context.Context, item player.Player) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *playerRepositoryMock) WriteLink(ctx context.Context, internalID int64, espnID string) error {
	args := m.Called(ctx, internalID, espnID)
	return args.Error(0)
}

func TestMatchingService_FindMatchingPlayer_LoadsCandidatesOnce(t *testing.T) {
	t.Parallel()

	repo := &playerRepositoryMock{}
	repo.
		On("ListCandidates", mock.Anything, player.CandidateFilter{}).
		Return([]player.Player{
			{ID: 7, Name: "Justin Jefferson", Team: "MIN", Position: "WR", Active: true},
		}, nil).
		Once()

	service := NewMatchingService(repo, MatchingConfig{}, logging.NewNop())
	result, err := service.FindMatchingPlayer(context.Background(), ExternalPlayer{
		ID:       "esp-7",
		Name:     "Justin Jefferson",
		Team:     "MIN",
		Position: "WR",
	})
	if err != nil {
		t.Fatalf("FindMatchingPlayer: %v", err)
	}
	if result.InternalID == nil || *result.InternalID != 7 {
		t.Fatalf("expected auto link to player 7, got %+v", result)
	}

	repo.AssertExpectations(t)
}

func TestMatchingService_FindMatchingPlayer_RepositoryFailure(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("connection reset")
	repo := &playerRepositoryMock{}
	repo.
		On("ListCandidates", mock.Anything, player.CandidateFilter{}).
		Return(nil, repoErr).
		Once()

	service := NewMatchingService(repo, MatchingConfig{}, logging.NewNop())
	_, err := service.FindMatchingPlayer(context.Background(), ExternalPlayer{ID: "esp-7", Name: "Justin Jefferson"})
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}

	repo.AssertExpectations(t)
}

func TestMatchingService_LinkPlayer_WriteFailureClassification(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("unique constraint violated")
	repo := &playerRepositoryMock{}
	repo.
		On("WriteLink", mock.Anything, int64(3), "esp-3").
		Return(repoErr).
		Once()

	service := NewMatchingService(repo, MatchingConfig{}, logging.NewNop())
	err := service.LinkPlayer(context.Background(), 3, "esp-3")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
	if !IsMatchingError(err) {
		t.Fatalf("link write failure must be classified as matching failure: %v", err)
	}

	repo.AssertExpectations(t)
}

func TestMatchingService_LinkPlayer_WritesThroughRepository(t *testing.T) {
	t.Parallel()

	repo := &playerRepositoryMock{}
	repo.
		On("WriteLink", mock.Anything, int64(11), "esp-11").
		Return(nil).
		Once()

	service := NewMatchingService(repo, MatchingConfig{}, logging.NewNop())
	if err := service.LinkPlayer(context.Background(), 11, " esp-11 "); err != nil {
		t.Fatalf("LinkPlayer: %v", err)
	}

	repo.AssertExpectations(t)
}
