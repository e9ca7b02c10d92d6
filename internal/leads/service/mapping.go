package service

import (
	"leadflow_backend/internal/access"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/phone"
)

// toLeadResponse renders a lead for a caller. Only the Full capability sees
// the complete contact number.
func toLeadResponse(lead records.Lead, c access.Capability) transport.LeadResponse {
	contact := lead.Contact
	if c != access.Full {
		contact = phone.Mask(contact, maskedContactDigits)
	}
	return transport.LeadResponse{
		ID:        lead.ID,
		Date:      lead.Date,
		Sno:       lead.Sno,
		Company:   lead.Company,
		Name:      lead.Name,
		Contact:   contact,
		Email:     lead.Email,
		Address:   lead.Address,
		Note:      lead.Note,
		Purpose:   lead.Purpose,
		Status:    lead.Status,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}

func toLeadListResponse(items []records.Lead, total, page, pageSize int, c access.Capability) transport.LeadListResponse {
	resp := make([]transport.LeadResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toLeadResponse(item, c))
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return transport.LeadListResponse{
		Items:      resp,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
