package cmd

import (
	"fmt"
	"log/slog"

	"preclear/internal/adapters/in/http"
	"preclear/internal/adapters/out/brokers"
	"preclear/internal/adapters/out/kafka"
	"preclear/internal/adapters/out/metrics"
	"preclear/internal/adapters/out/notify"
	"preclear/internal/adapters/out/postgres"
	"preclear/internal/core/application/usecases/commands"
	"preclear/internal/core/application/usecases/queries"
	"preclear/internal/core/application/workflow"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/core/domain/services"
	"preclear/internal/core/ports"
	"preclear/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	references *shipment.ReferenceGenerator
	brokers    *brokers.StaticDirectory
	metrics    *metrics.Metrics
	publisher  *kafka.NotificationPublisher
	notifier   *notify.AsyncNotifier
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	directory, err := brokers.ParseStaticDirectory(configs.BrokerIDs)
	if err != nil {
		return nil, fmt.Errorf("BROKER_IDS: %w", err)
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, postgres.WithLockTimeout(configs.DBLockTimeout)),
		references: shipment.NewReferenceGenerator(),
		brokers:    directory,
		metrics:    metrics.New(),
	}

	var delegate ports.Notifier = notify.NewLogNotifier(logger)
	if configs.KafkaHost != "" {
		publisher, err := kafka.NewNotificationPublisher(configs.KafkaHost, configs.KafkaNotificationsTopic)
		if err != nil {
			return nil, err
		}
		c.publisher = publisher
		delegate = publisher
	}
	c.notifier = notify.NewAsyncNotifier(
		delegate,
		configs.NotificationQueueSize,
		logger,
		notify.WithQueueMetrics(c.metrics.QueueMetrics()),
	)

	return c, nil
}

// Notifier is the queue the orchestrator publishes to. Its Run loop must be
// started by the caller.
func (c *CompositionRoot) Notifier() *notify.AsyncNotifier {
	return c.notifier
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

// Close releases the Kafka client, if any. Call it after the notifier has drained.
func (c *CompositionRoot) Close() {
	if c.publisher != nil {
		c.publisher.Close()
	}
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory(), c.references)
}

func (c *CompositionRoot) CreateChangeShipmentStatusCommandHandler() commands.ChangeShipmentStatusCommandHandler {
	return commands.NewChangeShipmentStatusCommandHandler(c.fullUoWFactory(), nil)
}

func (c *CompositionRoot) CreateRaiseExceptionCommandHandler() commands.RaiseExceptionCommandHandler {
	return commands.NewRaiseExceptionCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateResolveExceptionCommandHandler() commands.ResolveExceptionCommandHandler {
	return commands.NewResolveExceptionCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateAssignBrokerCommandHandler() commands.AssignBrokerCommandHandler {
	return commands.NewAssignBrokerCommandHandler(c.shipmentUoWFactory(), c.brokers)
}

func (c *CompositionRoot) CreateAutoAssignBrokerCommandHandler() commands.AutoAssignBrokerCommandHandler {
	return commands.NewAutoAssignBrokerCommandHandler(c.shipmentUoWFactory(), c.brokers, services.NewBrokerDispatcher())
}

func (c *CompositionRoot) CreateOrchestrator() *workflow.Orchestrator {
	return workflow.NewOrchestrator(
		workflow.Handlers{
			CreateShipment:   c.CreateCreateShipmentCommandHandler(),
			ChangeStatus:     c.CreateChangeShipmentStatusCommandHandler(),
			RaiseException:   c.CreateRaiseExceptionCommandHandler(),
			ResolveException: c.CreateResolveExceptionCommandHandler(),
			AssignBroker:     c.CreateAssignBrokerCommandHandler(),
			AutoAssignBroker: c.CreateAutoAssignBrokerCommandHandler(),
		},
		c.notifier,
		c.logger,
		workflow.WithMetrics(c.metrics),
	)
}

func (c *CompositionRoot) CreateQueries() http.Queries {
	return http.Queries{
		GetShipment:      queries.NewGetShipmentQueryHandler(c.gormDB),
		ListShipments:    queries.NewListShipmentsQueryHandler(c.gormDB),
		ListExceptions:   queries.NewListExceptionsQueryHandler(c.gormDB),
		ListAuditEntries: queries.NewListAuditEntriesQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateJobManager(orchestrator *workflow.Orchestrator) *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewBrokerAssignmentJob(orchestrator, c.configs.BrokerAssignmentSchedule, c.metrics, c.logger),
	)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.CreateGorm()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
