package jobs

import "fmt"

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops every scheduled job as one unit.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  Job
}

func NewJobManager(brokerAssignment *BrokerAssignmentJob) *JobManager {
	jm := &JobManager{}
	jm.Register("broker assignment", brokerAssignment)
	return jm
}

func (jm *JobManager) Register(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts jobs in registration order. If one fails the jobs already
// started are stopped.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
