package service

import (
	"context"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/records"
	"leadflow_backend/internal/technical/transport"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/sanitize"

	"github.com/google/uuid"
)

const msgTechDataStatus = "status must be Active, Expired or Servicing"

// CreateTechData records an installed machine.
func (s *Service) CreateTechData(ctx context.Context, req transport.TechDataRequest) (records.TechData, error) {
	warranty, err := optionalDay("warranty", req.Warranty)
	if err != nil {
		return records.TechData{}, err
	}
	due, err := optionalDay("service_due", req.ServiceDue)
	if err != nil {
		return records.TechData{}, err
	}
	company := sanitize.Line(req.Company)
	if company == "" {
		return records.TechData{}, apperr.Validation("company is required")
	}
	status := sanitize.Line(req.Status)
	if status == "" {
		status = records.DefaultTechDataStatus
	}
	if !records.ValidTechDataStatus(status) {
		return records.TechData{}, apperr.Validation(msgTechDataStatus)
	}

	d, err := s.repo.CreateTechData(ctx, records.TechData{
		ID:         uuid.New(),
		Company:    company,
		Machine:    sanitize.Line(req.Machine),
		Serial:     sanitize.Line(req.Serial),
		Warranty:   warranty,
		ServiceDue: due,
		Status:     status,
	})
	if err != nil {
		return records.TechData{}, apperr.AsUpstream("failed to create tech data", err)
	}
	s.changed(ctx, kindTechData, d.ID, events.ActionCreated)
	return d, nil
}

// UpdateTechData merges a partial edit into the stored record.
func (s *Service) UpdateTechData(ctx context.Context, id uuid.UUID, req transport.UpdateTechDataRequest) (records.TechData, error) {
	d, err := s.repo.GetTechData(ctx, id)
	if err != nil {
		return records.TechData{}, apperr.AsUpstream("failed to load tech data", err)
	}

	if req.Company != nil {
		d.Company = sanitize.Line(*req.Company)
		if d.Company == "" {
			return records.TechData{}, apperr.Validation("company is required")
		}
	}
	if req.Machine != nil {
		d.Machine = sanitize.Line(*req.Machine)
	}
	if req.Serial != nil {
		d.Serial = sanitize.Line(*req.Serial)
	}
	if req.Warranty != nil {
		if d.Warranty, err = optionalDay("warranty", *req.Warranty); err != nil {
			return records.TechData{}, err
		}
	}
	if req.ServiceDue != nil {
		if d.ServiceDue, err = optionalDay("service_due", *req.ServiceDue); err != nil {
			return records.TechData{}, err
		}
	}
	if req.Status != nil {
		d.Status = sanitize.Line(*req.Status)
		if !records.ValidTechDataStatus(d.Status) {
			return records.TechData{}, apperr.Validation(msgTechDataStatus)
		}
	}

	updated, err := s.repo.UpdateTechData(ctx, d)
	if err != nil {
		return records.TechData{}, apperr.AsUpstream("failed to update tech data", err)
	}
	s.changed(ctx, kindTechData, id, events.ActionUpdated)
	return updated, nil
}

func (s *Service) ListTechData(ctx context.Context, req transport.ListRequest) (transport.TechDataListResponse, error) {
	page, params := listParams(req)
	items, total, err := s.repo.ListTechData(ctx, params)
	if err != nil {
		return transport.TechDataListResponse{}, apperr.AsUpstream("failed to list tech data", err)
	}
	return transport.TechDataListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func (s *Service) DeleteTechData(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTechData(ctx, id); err != nil {
		return apperr.AsUpstream("failed to delete tech data", err)
	}
	s.changed(ctx, kindTechData, id, events.ActionDeleted)
	return nil
}
