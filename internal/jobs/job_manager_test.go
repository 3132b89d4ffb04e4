package jobs_test

import (
	"errors"
	"testing"

	"preclear/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j *fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j *fakeJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager_StartAllAndStopAll(t *testing.T) {
	var events []string
	jm := jobs.NewJobManager(jobs.NewBrokerAssignmentJob(new(MockBrokerAssigner), "0 0 0 1 1 *", nil, discard))
	jm.Register("first", &fakeJob{name: "first", events: &events})
	jm.Register("second", &fakeJob{name: "second", events: &events})

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Equal(t, []string{"start first", "start second", "stop second", "stop first"}, events)
}

func TestJobManager_StartAll_StopsStartedJobsOnFailure(t *testing.T) {
	var events []string
	jm := jobs.NewJobManager(jobs.NewBrokerAssignmentJob(new(MockBrokerAssigner), "0 0 0 1 1 *", nil, discard))
	jm.Register("first", &fakeJob{name: "first", events: &events})
	jm.Register("broken", &fakeJob{name: "broken", startErr: errors.New("boom"), events: &events})
	jm.Register("never", &fakeJob{name: "never", events: &events})

	err := jm.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, []string{"start first", "stop first"}, events)
}

func TestJobManager_StartAll_RejectsInvalidSchedule(t *testing.T) {
	var events []string
	jm := jobs.NewJobManager(jobs.NewBrokerAssignmentJob(new(MockBrokerAssigner), "not a schedule", nil, discard))
	jm.Register("after", &fakeJob{name: "after", events: &events})

	err := jm.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker assignment")
	assert.Empty(t, events)
}
