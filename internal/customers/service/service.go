// Package service implements customer records kept outside the lead pipeline.
package service

import (
	"context"
	"strings"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/customers/repository"
	"leadflow_backend/internal/customers/transport"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/phone"
	"leadflow_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	pageSize            = 20
	maskedContactDigits = 5
)

// Service provides business logic for customers.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, req transport.CreateCustomerRequest) (records.Customer, error) {
	company := sanitize.Line(req.Company)
	if company == "" {
		return records.Customer{}, apperr.Validation("company is required")
	}
	contact, err := digits(req.Contact)
	if err != nil {
		return records.Customer{}, err
	}
	status := sanitize.Line(req.Status)
	if status == "" {
		status = records.DefaultCustomerStatus
	}

	c, err := s.repo.Create(ctx, records.Customer{
		ID:      uuid.New(),
		Date:    req.Date,
		Sno:     sanitize.Line(req.Sno),
		Company: company,
		Name:    sanitize.Line(req.Name),
		Contact: contact,
		Email:   strings.TrimSpace(req.Email),
		Purpose: records.CanonicalPurpose(req.Purpose),
		Status:  status,
		Remarks: sanitize.Text(req.Remarks),
	})
	if err != nil {
		return records.Customer{}, apperr.AsUpstream("failed to create customer", err)
	}
	s.log.Info("customer created", "id", c.ID)
	return c, nil
}

// Get returns one customer. The contact is masked below Full.
func (s *Service) Get(ctx context.Context, id uuid.UUID, capability access.Capability) (records.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return records.Customer{}, apperr.AsUpstream("failed to load customer", err)
	}
	return view(c, capability), nil
}

// Update merges a partial edit into the stored customer.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateCustomerRequest) (records.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return records.Customer{}, apperr.AsUpstream("failed to load customer", err)
	}

	if req.Date != nil {
		c.Date = req.Date
	}
	if req.Company != nil {
		if c.Company = sanitize.Line(*req.Company); c.Company == "" {
			return records.Customer{}, apperr.Validation("company must not be empty")
		}
	}
	if req.Contact != nil {
		if c.Contact, err = digits(*req.Contact); err != nil {
			return records.Customer{}, err
		}
	}
	if req.Status != nil {
		if c.Status = sanitize.Line(*req.Status); c.Status == "" {
			return records.Customer{}, apperr.Validation("status must not be empty")
		}
	}
	assign(&c.Sno, req.Sno, sanitize.Line)
	assign(&c.Name, req.Name, sanitize.Line)
	assign(&c.Email, req.Email, strings.TrimSpace)
	assign(&c.Purpose, req.Purpose, records.CanonicalPurpose)
	assign(&c.Remarks, req.Remarks, sanitize.Text)

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return records.Customer{}, apperr.AsUpstream("failed to update customer", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.AsUpstream("failed to delete customer", err)
	}
	s.log.Info("customer deleted", "id", id)
	return nil
}

func (s *Service) List(ctx context.Context, req transport.ListCustomersRequest, capability access.Capability) (transport.CustomerListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	items, total, err := s.repo.List(ctx, repository.ListParams{
		Search: strings.TrimSpace(req.Search),
		Status: strings.TrimSpace(req.Status),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return transport.CustomerListResponse{}, apperr.AsUpstream("failed to list customers", err)
	}
	for i := range items {
		items[i] = view(items[i], capability)
	}
	return transport.CustomerListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func view(c records.Customer, capability access.Capability) records.Customer {
	if capability != access.Full {
		c.Contact = phone.Mask(c.Contact, maskedContactDigits)
	}
	return c
}

func digits(raw string) (string, error) {
	contact := phone.Digits(raw)
	if strings.TrimSpace(raw) != "" && contact == "" {
		return "", apperr.Validation("contact must contain digits")
	}
	return contact, nil
}

func assign(dst *string, src *string, clean func(string) string) {
	if src != nil {
		*dst = clean(*src)
	}
}
