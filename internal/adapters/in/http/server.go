// Package http is the inbound REST adapter. It implements
// servers.ServerInterface on top of the workflow orchestrator and the query
// handlers and translates workflow errors into HTTP responses.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"preclear/internal/core/application/usecases/commands"
	"preclear/internal/core/application/usecases/queries"
	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Workflow is the write side the server drives.
type Workflow interface {
	CreateShipment(ctx context.Context, actor *kernel.ID, ownerID kernel.ID, name string, details commands.ShipmentDetailsInput) (*shipment.Shipment, error)
	ChangeStatus(ctx context.Context, id kernel.ID, target string, actor *kernel.ID, notes string) (commands.ChangeShipmentStatusResult, error)
	AssignBroker(ctx context.Context, shipmentID, brokerID kernel.ID, actor *kernel.ID) (*shipment.Shipment, error)
	RaiseException(ctx context.Context, shipmentID kernel.ID, code, message, severity string, actor *kernel.ID) (*exception.Exception, error)
	ResolveException(ctx context.Context, exceptionID kernel.ID, actor *kernel.ID) (*exception.Exception, error)
}

type (
	ShipmentGetter interface {
		Handle(ctx context.Context, query queries.GetShipmentQuery) (queries.ShipmentView, error)
	}
	ShipmentLister interface {
		Handle(ctx context.Context, query queries.ListShipmentsQuery) ([]queries.ShipmentView, error)
	}
	ExceptionLister interface {
		Handle(ctx context.Context, query queries.ListExceptionsQuery) ([]queries.ExceptionView, error)
	}
	AuditLister interface {
		Handle(ctx context.Context, query queries.ListAuditEntriesQuery) ([]queries.AuditEntryView, error)
	}
)

// Queries groups the read handlers.
type Queries struct {
	GetShipment      ShipmentGetter
	ListShipments    ShipmentLister
	ListExceptions   ExceptionLister
	ListAuditEntries AuditLister
}

// Server implements servers.ServerInterface.
type Server struct {
	workflow Workflow
	queries  Queries
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(workflow Workflow, queries Queries, logger *slog.Logger) *Server {
	return &Server{workflow: workflow, queries: queries, logger: logger.With("component", "http")}
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context, params servers.ActorParams) error {
	var body servers.NewShipment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	created, err := s.workflow.CreateShipment(
		ctx.Request().Context(),
		actorID(params),
		kernel.ID(body.OwnerId),
		body.Name,
		commands.ShipmentDetailsInput{
			Mode:        deref(body.Mode),
			Type:        deref(body.Type),
			Carrier:     deref(body.Carrier),
			TotalValue:  body.TotalValue,
			TotalWeight: body.TotalWeight,
			Currency:    deref(body.Currency),
		},
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, shipmentFromDomain(created))
}

// GetShipment handles GET /api/v1/shipments/{id}.
func (s *Server) GetShipment(ctx echo.Context, id int64) error {
	query, err := queries.NewGetShipmentQuery(kernel.ID(id))
	if err != nil {
		return s.respondError(ctx, err)
	}

	view, err := s.queries.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentFromView(view))
}

// ChangeShipmentStatus handles PUT /api/v1/shipments/{id}/status.
func (s *Server) ChangeShipmentStatus(ctx echo.Context, id int64, params servers.ActorParams) error {
	var body servers.StatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	result, err := s.workflow.ChangeStatus(
		ctx.Request().Context(),
		kernel.ID(id),
		body.Status,
		actorID(params),
		deref(body.Notes),
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.StatusChangeResult{
		Changed:  result.Changed(),
		Shipment: shipmentFromDomain(result.Shipment),
	})
}

// AssignBroker handles POST /api/v1/shipments/{id}/broker.
func (s *Server) AssignBroker(ctx echo.Context, id int64, params servers.ActorParams) error {
	var body servers.BrokerAssignment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	assigned, err := s.workflow.AssignBroker(ctx.Request().Context(), kernel.ID(id), kernel.ID(body.BrokerId), actorID(params))
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentFromDomain(assigned))
}

// ListShipmentExceptions handles GET /api/v1/shipments/{id}/exceptions.
func (s *Server) ListShipmentExceptions(ctx echo.Context, id int64, params servers.ListShipmentExceptionsParams) error {
	openOnly := params.Open != nil && *params.Open

	query, err := queries.NewListExceptionsQuery(kernel.ID(id), openOnly)
	if err != nil {
		return s.respondError(ctx, err)
	}

	views, err := s.queries.ListExceptions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]servers.Exception, len(views))
	for i, v := range views {
		response[i] = exceptionFromView(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListShipmentAudit handles GET /api/v1/shipments/{id}/audit.
func (s *Server) ListShipmentAudit(ctx echo.Context, id int64) error {
	query, err := queries.NewListAuditEntriesByShipmentQuery(kernel.ID(id))
	if err != nil {
		return s.respondError(ctx, err)
	}
	return s.listAudit(ctx, query)
}

// ListUserAudit handles GET /api/v1/users/{userId}/audit.
func (s *Server) ListUserAudit(ctx echo.Context, userId int64) error {
	query, err := queries.NewListAuditEntriesByUserQuery(kernel.ID(userId))
	if err != nil {
		return s.respondError(ctx, err)
	}
	return s.listAudit(ctx, query)
}

func (s *Server) listAudit(ctx echo.Context, query queries.ListAuditEntriesQuery) error {
	views, err := s.queries.ListAuditEntries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]servers.AuditEntry, len(views))
	for i, v := range views {
		response[i] = auditEntryFromView(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListOwnerShipments handles GET /api/v1/owners/{ownerId}/shipments.
func (s *Server) ListOwnerShipments(ctx echo.Context, ownerId int64) error {
	query, err := queries.NewListShipmentsByOwnerQuery(kernel.ID(ownerId))
	if err != nil {
		return s.respondError(ctx, err)
	}
	return s.listShipments(ctx, query)
}

// ListBrokerShipments handles GET /api/v1/brokers/{brokerId}/shipments.
func (s *Server) ListBrokerShipments(ctx echo.Context, brokerId int64) error {
	query, err := queries.NewListShipmentsByBrokerQuery(kernel.ID(brokerId))
	if err != nil {
		return s.respondError(ctx, err)
	}
	return s.listShipments(ctx, query)
}

func (s *Server) listShipments(ctx echo.Context, query queries.ListShipmentsQuery) error {
	views, err := s.queries.ListShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]servers.Shipment, len(views))
	for i, v := range views {
		response[i] = shipmentFromView(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateException handles POST /api/v1/exceptions.
func (s *Server) CreateException(ctx echo.Context, params servers.ActorParams) error {
	var body servers.NewException
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	created, err := s.workflow.RaiseException(
		ctx.Request().Context(),
		kernel.ID(body.ShipmentId),
		body.Code,
		body.Message,
		strings.TrimSpace(deref(body.Severity)),
		actorID(params),
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, exceptionFromDomain(created))
}

// ResolveException handles PUT /api/v1/exceptions/{id}/resolve.
func (s *Server) ResolveException(ctx echo.Context, id int64, params servers.ActorParams) error {
	resolved, err := s.workflow.ResolveException(ctx.Request().Context(), kernel.ID(id), actorID(params))
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, exceptionFromDomain(resolved))
}

func actorID(params servers.ActorParams) *kernel.ID {
	return kernel.OptionalID(params.XUserID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
