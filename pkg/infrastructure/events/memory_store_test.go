package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	require.NoError(t, store.AppendEvent("run-1", NewEvent(AnalysisStartedEvent, "", AnalysisStarted{Rows: 150})))
	require.NoError(t, store.AppendEvent("run-1", NewEvent(AnalysisCompletedEvent, "", AnalysisCompleted{Recommendations: 3})))
	require.NoError(t, store.AppendEvent("run-2", NewEvent(AnalysisRejectedEvent, "", AnalysisRejected{Code: "too_few_rows"})))

	run1, err := store.ReadEvents("run-1", 0)
	require.NoError(t, err)
	require.Len(t, run1, 2)
	assert.Equal(t, 1, run1[0].Version())
	assert.Equal(t, 2, run1[1].Version())
	assert.Equal(t, "run-1", run1[1].StreamID())
	assert.Equal(t, AnalysisStarted{Rows: 150}, run1[0].Data())

	tail, err := store.ReadEvents("run-1", 2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, AnalysisCompletedEvent, tail[0].Type())

	none, err := store.ReadEvents("missing", 1)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := store.ReadAllEvents(1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "run-2", all[1].StreamID())
}

func TestInMemoryEventStore_Subscribers(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	var seen []string
	handler := &HandlerFunc{
		Types: []string{AdvisoryFellBackEvent},
		Fn: func(e Event) error {
			seen = append(seen, e.Data().(AdvisoryFellBack).Reason)
			return errors.New("handler errors are logged, not returned")
		},
	}
	require.NoError(t, store.Subscribe([]string{AdvisoryFellBackEvent}, handler))

	require.NoError(t, store.AppendEvent("run", NewEvent(AdvisoryFellBackEvent, "run", AdvisoryFellBack{Reason: "timeout"})))
	require.NoError(t, store.AppendEvent("run", NewEvent(AnalysisCompletedEvent, "run", AnalysisCompleted{})))
	assert.Equal(t, []string{"timeout"}, seen)

	require.NoError(t, store.Unsubscribe(handler))
	require.NoError(t, store.AppendEvent("run", NewEvent(AdvisoryFellBackEvent, "run", AdvisoryFellBack{Reason: "rate limited"})))
	assert.Equal(t, []string{"timeout"}, seen)
}

func TestInMemoryEventStore_Retention(t *testing.T) {
	store := NewInMemoryEventStore(nil, WithMaxRuns(2))

	for _, run := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, store.AppendEvent(run, NewEvent(AnalysisStartedEvent, run, AnalysisStarted{})))
		require.NoError(t, store.AppendEvent(run, NewEvent(AnalysisCompletedEvent, run, AnalysisCompleted{})))
	}

	assert.Equal(t, []string{"run-2", "run-3"}, store.Runs())

	evicted, err := store.ReadEvents("run-1", 1)
	require.NoError(t, err)
	assert.Empty(t, evicted)

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "run-2", all[0].StreamID())

	assert.ErrorIs(t, store.AppendEvent("", NewEvent(AnalysisStartedEvent, "", AnalysisStarted{})), ErrEmptyStream)
}
