package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/shipments)
	CreateShipment(ctx echo.Context, params ActorParams) error
	// (GET /api/v1/shipments/{id})
	GetShipment(ctx echo.Context, id int64) error
	// (PUT /api/v1/shipments/{id}/status)
	ChangeShipmentStatus(ctx echo.Context, id int64, params ActorParams) error
	// (POST /api/v1/shipments/{id}/broker)
	AssignBroker(ctx echo.Context, id int64, params ActorParams) error
	// (GET /api/v1/shipments/{id}/exceptions)
	ListShipmentExceptions(ctx echo.Context, id int64, params ListShipmentExceptionsParams) error
	// (GET /api/v1/shipments/{id}/audit)
	ListShipmentAudit(ctx echo.Context, id int64) error
	// (GET /api/v1/owners/{ownerId}/shipments)
	ListOwnerShipments(ctx echo.Context, ownerId int64) error
	// (GET /api/v1/brokers/{brokerId}/shipments)
	ListBrokerShipments(ctx echo.Context, brokerId int64) error
	// (POST /api/v1/exceptions)
	CreateException(ctx echo.Context, params ActorParams) error
	// (PUT /api/v1/exceptions/{id}/resolve)
	ResolveException(ctx echo.Context, id int64, params ActorParams) error
	// (GET /api/v1/users/{userId}/audit)
	ListUserAudit(ctx echo.Context, userId int64) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathID(ctx echo.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindActor(ctx echo.Context) (ActorParams, error) {
	var params ActorParams
	headers := ctx.Request().Header
	valueList, found := headers[http.CanonicalHeaderKey("X-User-ID")]
	if !found {
		return params, nil
	}
	if n := len(valueList); n != 1 {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-User-ID, got %d", n))
	}

	var xUserID int64
	err := runtime.BindStyledParameterWithOptions("simple", "X-User-ID", valueList[0], &xUserID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-User-ID: %s", err))
	}
	params.XUserID = &xUserID
	return params, nil
}

// CreateShipment converts echo context to params.
func (w *ServerInterfaceWrapper) CreateShipment(ctx echo.Context) error {
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateShipment(ctx, params)
}

// GetShipment converts echo context to params.
func (w *ServerInterfaceWrapper) GetShipment(ctx echo.Context) error {
	id, err := bindPathID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetShipment(ctx, id)
}

// ChangeShipmentStatus converts echo context to params.
func (w *ServerInterfaceWrapper) ChangeShipmentStatus(ctx echo.Context) error {
	id, err := bindPathID(ctx, "id")
	if err != nil {
		return err
	}
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ChangeShipmentStatus(ctx, id, params)
}

// AssignBroker converts echo context to params.
func (w *ServerInterfaceWrapper) AssignBroker(ctx echo.Context) error {
	id, err := bindPathID(ctx, "id")
	if err != nil {
		return err
	}
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AssignBroker(ctx, id, params)
}

// ListShipmentExceptions converts echo context to params.
func (w *ServerInterfaceWrapper) ListShipmentExceptions(ctx echo.Context) error {
	id, err := bindPathID(ctx, "id")
	if err != nil {
		return err
	}

	var params ListShipmentExceptionsParams
	err = runtime.BindQueryParameter("form", true, false, "open", ctx.QueryParams(), &params.Open)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter open: %s", err))
	}
	return w.Handler.ListShipmentExceptions(ctx, id, params)
}

// ListShipmentAudit converts echo context to params.
func (w *ServerInterfaceWrapper) ListShipmentAudit(ctx echo.Context) error {
	id, err := bindPathID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.ListShipmentAudit(ctx, id)
}

// ListOwnerShipments converts echo context to params.
func (w *ServerInterfaceWrapper) ListOwnerShipments(ctx echo.Context) error {
	ownerID, err := bindPathID(ctx, "ownerId")
	if err != nil {
		return err
	}
	return w.Handler.ListOwnerShipments(ctx, ownerID)
}

// ListBrokerShipments converts echo context to params.
func (w *ServerInterfaceWrapper) ListBrokerShipments(ctx echo.Context) error {
	brokerID, err := bindPathID(ctx, "brokerId")
	if err != nil {
		return err
	}
	return w.Handler.ListBrokerShipments(ctx, brokerID)
}

// CreateException converts echo context to params.
func (w *ServerInterfaceWrapper) CreateException(ctx echo.Context) error {
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateException(ctx, params)
}

// ResolveException converts echo context to params.
func (w *ServerInterfaceWrapper) ResolveException(ctx echo.Context) error {
	id, err := bindPathID(ctx, "id")
	if err != nil {
		return err
	}
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ResolveException(ctx, id, params)
}

// ListUserAudit converts echo context to params.
func (w *ServerInterfaceWrapper) ListUserAudit(ctx echo.Context) error {
	userID, err := bindPathID(ctx, "userId")
	if err != nil {
		return err
	}
	return w.Handler.ListUserAudit(ctx, userID)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for routing.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL. The
// document paths already carry /api/v1, so baseURL is normally empty.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/shipments", wrapper.CreateShipment)
	router.GET(baseURL+"/api/v1/shipments/:id", wrapper.GetShipment)
	router.PUT(baseURL+"/api/v1/shipments/:id/status", wrapper.ChangeShipmentStatus)
	router.POST(baseURL+"/api/v1/shipments/:id/broker", wrapper.AssignBroker)
	router.GET(baseURL+"/api/v1/shipments/:id/exceptions", wrapper.ListShipmentExceptions)
	router.GET(baseURL+"/api/v1/shipments/:id/audit", wrapper.ListShipmentAudit)
	router.GET(baseURL+"/api/v1/owners/:ownerId/shipments", wrapper.ListOwnerShipments)
	router.GET(baseURL+"/api/v1/brokers/:brokerId/shipments", wrapper.ListBrokerShipments)
	router.POST(baseURL+"/api/v1/exceptions", wrapper.CreateException)
	router.PUT(baseURL+"/api/v1/exceptions/:id/resolve", wrapper.ResolveException)
	router.GET(baseURL+"/api/v1/users/:userId/audit", wrapper.ListUserAudit)
}
