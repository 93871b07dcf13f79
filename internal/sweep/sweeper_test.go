package sweep_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weeklisthq/weeklist-api/internal/service"
	"github.com/weeklisthq/weeklist-api/internal/sweep"
)

// sweepOnlyService records SweepExpired calls; the sweeper touches nothing
// else on the interface.
type sweepOnlyService struct {
	service.WeeklistService
	calls atomic.Int64
}

func (s *sweepOnlyService) SweepExpired(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	return 0, nil
}

func TestNewSweeperRejectsBadSpec(t *testing.T) {
	t.Parallel()

	_, err := sweep.NewSweeper(&sweepOnlyService{}, "not a cron spec", nil)
	assert.Error(t, err)
}

func TestSweeperRunsOnStart(t *testing.T) {
	t.Parallel()

	svc := &sweepOnlyService{}
	sweeper, err := sweep.NewSweeper(svc, "0 0 * * *", nil)
	require.NoError(t, err)

	sweeper.Start()
	defer sweeper.Stop()

	assert.Equal(t, int64(1), svc.calls.Load(), "one catch-up sweep runs immediately on start")
}
