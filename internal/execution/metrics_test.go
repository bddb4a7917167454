package execution

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountRuns(t *testing.T) {
	fail := false
	sim := New(WithStep(func(time.Duration) error {
		if fail {
			return errors.New("boom")
		}
		return nil
	}))

	sim.SetBuffer("a")
	sim.SetBuffer("b")
	sim.ResetBuffer()

	_, err := sim.Run()
	require.NoError(t, err)

	e, err := sim.Begin()
	require.NoError(t, err)
	_, err = sim.Begin()
	assert.ErrorIs(t, err, ErrRunInProgress)
	fail = true
	e.Wait()

	m := sim.Metrics()
	assert.Equal(t, int64(2), m.RunsStarted)
	assert.Equal(t, int64(1), m.RunsSucceeded)
	assert.Equal(t, int64(1), m.RunsFailed)
	assert.Equal(t, int64(1), m.RunsRejected)
	assert.Equal(t, int64(2), m.CodeChanges, "reset is not a code change")
	assert.GreaterOrEqual(t, m.Uptime, int64(0))
}
