package http

import (
	"preclear/internal/core/application/usecases/queries"
	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/generated/servers"
)

func shipmentFromDomain(s *shipment.Shipment) servers.Shipment {
	details := s.Details()
	out := servers.Shipment{
		Id:               s.ID().Int64(),
		Reference:        s.Reference().String(),
		OwnerId:          s.OwnerID().Int64(),
		Name:             s.Name(),
		Mode:             string(details.Mode),
		Type:             string(details.Type),
		Carrier:          details.Carrier,
		Status:           s.Status().String(),
		AssignedBrokerId: kernel.RawID(s.AssignedBrokerID()),
		TokenIssuedAt:    s.TokenIssuedAt(),
		Notes:            optional(s.Notes()),
		TotalValue:       details.Summary.TotalValue(),
		TotalWeight:      details.Summary.TotalWeight(),
		Currency:         optional(details.Summary.Currency()),
		CreatedAt:        s.CreatedAt(),
		UpdatedAt:        s.UpdatedAt(),
	}
	if token := s.ClearanceToken(); token != nil {
		out.ClearanceToken = optional(token.String())
	}
	return out
}

func shipmentFromView(v queries.ShipmentView) servers.Shipment {
	return servers.Shipment{
		Id:               v.ID.Int64(),
		Reference:        v.Reference,
		OwnerId:          v.OwnerID.Int64(),
		Name:             v.Name,
		Mode:             v.Mode,
		Type:             v.Type,
		Carrier:          v.Carrier,
		Status:           v.Status,
		AssignedBrokerId: kernel.RawID(v.AssignedBrokerID),
		ClearanceToken:   v.ClearanceToken,
		TokenIssuedAt:    v.TokenIssuedAt,
		Notes:            v.Notes,
		TotalValue:       v.TotalValue,
		TotalWeight:      v.TotalWeight,
		Currency:         v.Currency,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func exceptionFromDomain(e *exception.Exception) servers.Exception {
	return servers.Exception{
		Id:         e.ID().Int64(),
		ShipmentId: e.ShipmentID().Int64(),
		Code:       e.Code(),
		Message:    e.Message(),
		Severity:   e.Severity().String(),
		Resolved:   e.Resolved(),
		CreatedBy:  kernel.RawID(e.CreatedBy()),
		ResolvedBy: kernel.RawID(e.ResolvedBy()),
		CreatedAt:  e.CreatedAt(),
		ResolvedAt: e.ResolvedAt(),
	}
}

func exceptionFromView(v queries.ExceptionView) servers.Exception {
	return servers.Exception{
		Id:         v.ID.Int64(),
		ShipmentId: v.ShipmentID.Int64(),
		Code:       v.Code,
		Message:    v.Message,
		Severity:   v.Severity,
		Resolved:   v.Resolved,
		CreatedBy:  kernel.RawID(v.CreatedBy),
		ResolvedBy: kernel.RawID(v.ResolvedBy),
		CreatedAt:  v.CreatedAt,
		ResolvedAt: v.ResolvedAt,
	}
}

func auditEntryFromView(v queries.AuditEntryView) servers.AuditEntry {
	return servers.AuditEntry{
		Id:          v.ID.Int64(),
		UserId:      kernel.RawID(v.UserID),
		ShipmentId:  kernel.RawID(v.ShipmentID),
		Action:      v.Action,
		Description: v.Description,
		CreatedAt:   v.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
