// Package servers holds the OpenAPI contract of the HTTP API: the
// embedded document, the wire types it describes, and the echo glue that
// binds path, query and header parameters before calling a ServerInterface.
package servers

import "time"

// NewShipment defines model for NewShipment.
type NewShipment struct {
	Carrier     *string  `json:"carrier,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Mode        *string  `json:"mode,omitempty"`
	Name        string   `json:"name"`
	OwnerId     int64    `json:"ownerId"`
	TotalValue  *float64 `json:"totalValue,omitempty"`
	TotalWeight *float64 `json:"totalWeight,omitempty"`
	Type        *string  `json:"type,omitempty"`
}

// Shipment defines model for Shipment.
type Shipment struct {
	AssignedBrokerId *int64     `json:"assignedBrokerId,omitempty"`
	Carrier          string     `json:"carrier"`
	ClearanceToken   *string    `json:"clearanceToken,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	Currency         *string    `json:"currency,omitempty"`
	Id               int64      `json:"id"`
	Mode             string     `json:"mode"`
	Name             string     `json:"name"`
	Notes            *string    `json:"notes,omitempty"`
	OwnerId          int64      `json:"ownerId"`
	Reference        string     `json:"reference"`
	Status           string     `json:"status"`
	TokenIssuedAt    *time.Time `json:"tokenIssuedAt,omitempty"`
	TotalValue       *float64   `json:"totalValue,omitempty"`
	TotalWeight      *float64   `json:"totalWeight,omitempty"`
	Type             string     `json:"type"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Notes  *string `json:"notes,omitempty"`
	Status string  `json:"status"`
}

// StatusChangeResult defines model for StatusChangeResult.
type StatusChangeResult struct {
	Changed  bool     `json:"changed"`
	Shipment Shipment `json:"shipment"`
}

// BrokerAssignment defines model for BrokerAssignment.
type BrokerAssignment struct {
	BrokerId int64 `json:"brokerId"`
}

// NewException defines model for NewException.
type NewException struct {
	Code       string  `json:"code"`
	Message    string  `json:"message"`
	Severity   *string `json:"severity,omitempty"`
	ShipmentId int64   `json:"shipmentId"`
}

// Exception defines model for Exception.
type Exception struct {
	Code       string     `json:"code"`
	CreatedAt  time.Time  `json:"createdAt"`
	CreatedBy  *int64     `json:"createdBy,omitempty"`
	Id         int64      `json:"id"`
	Message    string     `json:"message"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy *int64     `json:"resolvedBy,omitempty"`
	Severity   string     `json:"severity"`
	ShipmentId int64      `json:"shipmentId"`
}

// AuditEntry defines model for AuditEntry.
type AuditEntry struct {
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"createdAt"`
	Description *string   `json:"description,omitempty"`
	Id          int64     `json:"id"`
	ShipmentId  *int64    `json:"shipmentId,omitempty"`
	UserId      *int64    `json:"userId,omitempty"`
}

// Error defines model for Error.
type Error struct {
	BlockingCodes *[]string `json:"blockingCodes,omitempty"`
	Code          string    `json:"code"`
	Message       string    `json:"message"`
}

// ActorParams carries the optional X-User-ID header of mutating operations.
type ActorParams struct {
	XUserID *int64 `json:"X-User-ID,omitempty"`
}

// ListShipmentExceptionsParams defines parameters for ListShipmentExceptions.
type ListShipmentExceptionsParams struct {
	Open *bool `form:"open,omitempty" json:"open,omitempty"`
}
