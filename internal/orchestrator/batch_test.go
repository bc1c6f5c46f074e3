package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs-faculty/timetable-csp/internal/domain"
	"github.com/cs-faculty/timetable-csp/pkg/config"
)

func TestRunBatchSolvesEachInputIndependently(t *testing.T) {
	o := New(config.SolverConfig{PreferForwardCh: true}, nil, nil, nil)
	inputs := []domain.ScheduleInput{smallInput(), domain.ScheduleInput{}}

	results := o.RunBatch(context.Background(), inputs, 2)

	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.True(t, results[0].Result.Output.Success)
	require.Error(t, results[1].Err)
}

func TestRunBatchEmptyInputReturnsNil(t *testing.T) {
	o := New(config.SolverConfig{}, nil, nil, nil)
	require.Nil(t, o.RunBatch(context.Background(), nil, 2))
}
