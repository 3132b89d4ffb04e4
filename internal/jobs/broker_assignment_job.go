package jobs

import (
	"context"
	"errors"
	"log/slog"

	"preclear/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultBrokerAssignmentSchedule runs the job every 30 seconds.
const DefaultBrokerAssignmentSchedule = "*/30 * * * * *"

const maxAssignmentsPerRun = 50

// BrokerAssigner dispatches the oldest shipment waiting for a broker.
type BrokerAssigner interface {
	AutoAssignBroker(ctx context.Context) (commands.AutoAssignBrokerResult, error)
}

// AssignmentRecorder observes job runs. Outcomes are assigned, idle and error.
type AssignmentRecorder interface {
	AssignmentRun(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) AssignmentRun(string) {}

// BrokerAssignmentJob assigns brokers to shipments that entered review
// without one.
type BrokerAssignmentJob struct {
	assigner BrokerAssigner
	schedule string
	recorder AssignmentRecorder
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewBrokerAssignmentJob creates the job. schedule is a six-field cron
// expression; empty means DefaultBrokerAssignmentSchedule. recorder may be nil.
func NewBrokerAssignmentJob(
	assigner BrokerAssigner,
	schedule string,
	recorder AssignmentRecorder,
	logger *slog.Logger,
) *BrokerAssignmentJob {
	if schedule == "" {
		schedule = DefaultBrokerAssignmentSchedule
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &BrokerAssignmentJob{
		assigner: assigner,
		schedule: schedule,
		recorder: recorder,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "broker_assignment_job"),
	}
}

func (j *BrokerAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Broker assignment job started", "schedule", j.schedule)
	return nil
}

// RunOnce assigns waiting shipments until none is left, the directory is
// empty or a failure occurs. It returns the number of assignments made.
func (j *BrokerAssignmentJob) RunOnce(ctx context.Context) int {
	assigned := 0
	for assigned < maxAssignmentsPerRun {
		result, err := j.assigner.AutoAssignBroker(ctx)
		switch {
		case errors.Is(err, commands.ErrNoShipmentAwaitingBroker):
			j.finish(assigned, "idle")
			return assigned
		case errors.Is(err, commands.ErrNoBrokersAvailable):
			j.logger.WarnContext(ctx, "No brokers configured, shipments stay unassigned")
			j.finish(assigned, "idle")
			return assigned
		case err != nil:
			j.logger.ErrorContext(ctx, "Broker assignment job failed", "error", err)
			j.recorder.AssignmentRun("error")
			return assigned
		}

		assigned++
		j.logger.InfoContext(ctx, "Broker assigned",
			"shipment_id", result.ShipmentID.Int64(),
			"broker_id", result.BrokerID.Int64(),
		)
	}
	j.finish(assigned, "idle")
	return assigned
}

func (j *BrokerAssignmentJob) finish(assigned int, idle string) {
	if assigned > 0 {
		j.recorder.AssignmentRun("assigned")
		return
	}
	j.recorder.AssignmentRun(idle)
}

// Stop waits for a running assignment to finish.
func (j *BrokerAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Broker assignment job stopped")
}
