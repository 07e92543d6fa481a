package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/betfaro/engine/internal/domain/team"
	"github.com/betfaro/engine/internal/platform/logging"
)

type mockTeamRepository struct {
	mock.Mock
}

func (m *mockTeamRepository) Load(ctx context.Context) (team.Tables, error) {
	args := m.Called(ctx)
	return args.Get(0).(team.Tables), args.Error(1)
}

func TestTeamResolverService_Resolve_LoadsTablesOnceUsingMock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &mockTeamRepository{}
	repo.
		On("Load", mock.Anything).
		Return(resolverTestTables(), nil).
		Once()

	service := NewTeamResolverService(repo, &stubDirectory{}, time.Hour, time.Minute, logging.NewNop())

	for i := 0; i < 3; i++ {
		resolution, err := service.Resolve(ctx, "Flamengo", "")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if resolution.Team.ID != 127 {
			t.Fatalf("team id = %d, want 127", resolution.Team.ID)
		}
	}

	repo.AssertExpectations(t)
}

func TestTeamResolverService_Resolve_FirstLoadFailureUsingMock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &mockTeamRepository{}
	repo.
		On("Load", mock.Anything).
		Return(team.Tables{}, errors.New("connection refused")).
		Once()

	service := NewTeamResolverService(repo, &stubDirectory{}, time.Hour, time.Minute, logging.NewNop())

	if _, err := service.Resolve(ctx, "Flamengo", ""); err == nil {
		t.Fatal("expected resolve to fail when tables never loaded")
	}

	repo.AssertExpectations(t)
}
