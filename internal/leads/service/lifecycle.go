package service

import (
	"context"
	"strings"
	"time"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"

	"github.com/google/uuid"
)

// ScheduleFollowUp snapshots the lead into a new follow-up task and moves
// the lead to Interested. Both writes commit together or not at all.
func (s *Service) ScheduleFollowUp(ctx context.Context, id uuid.UUID, req transport.FollowUpRequest) (transport.FollowUpResponse, error) {
	fr := domain.FollowUpRequest{
		Priority: req.Priority,
		Remarks:  req.Remarks,
	}
	if raw := strings.TrimSpace(req.NextFollowUp); raw != "" {
		next, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return transport.FollowUpResponse{}, apperr.Validation("next_follow_up must be YYYY-MM-DD")
		}
		fr.NextFollowUp = next
	}
	if err := fr.Validate(); err != nil {
		return transport.FollowUpResponse{}, err
	}

	var (
		before records.Lead
		lead   records.Lead
		task   records.FollowUpTask
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx LifecycleTx) error {
		current, err := tx.LockLead(ctx, id)
		if err != nil {
			return err
		}
		before = current

		task, err = tx.CreateFollowUpTask(ctx, domain.NewFollowUpTask(current, fr, s.now()))
		if err != nil {
			return err
		}

		lead, err = tx.UpdateLeadStatus(ctx, id, domain.FollowUpTarget(current.Status))
		return err
	})
	if err != nil {
		return transport.FollowUpResponse{}, apperr.AsUpstream("failed to schedule follow-up", err)
	}

	s.bus.Publish(ctx, events.FollowUpScheduled{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       lead.ID,
		TaskID:       task.ID,
		NextFollowUp: task.NextFollowUp,
	})
	s.statusChanged(ctx, lead.ID, before.Status, lead.Status, string(domain.TriggerFollowUp))

	return transport.FollowUpResponse{Lead: toLeadResponse(lead, access.Full), Task: task}, nil
}

// Convert records a payment for the lead and moves it to Converted.
// Converting an already converted lead adds another payment.
func (s *Service) Convert(ctx context.Context, id uuid.UUID, req transport.ConvertRequest) (transport.ConvertResponse, error) {
	cr := domain.ConversionRequest{
		SoNo:    req.SoNo,
		Amount:  req.Amount,
		Advance: req.Advance,
		Invoice: req.Invoice,
		Remark:  req.Remark,
	}
	if err := cr.Validate(); err != nil {
		return transport.ConvertResponse{}, err
	}

	var (
		before  records.Lead
		lead    records.Lead
		payment records.Payment
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx LifecycleTx) error {
		current, err := tx.LockLead(ctx, id)
		if err != nil {
			return err
		}
		before = current

		payment, err = tx.CreatePayment(ctx, domain.NewConversionPayment(current, cr, s.now()))
		if err != nil {
			return err
		}

		lead, err = tx.UpdateLeadStatus(ctx, id, domain.ConvertTarget(current.Status))
		return err
	})
	if err != nil {
		return transport.ConvertResponse{}, apperr.AsUpstream("failed to convert lead", err)
	}

	s.log.Info("lead converted", "id", lead.ID, "paymentId", payment.ID, "remaining", payment.Remaining.String())
	s.bus.Publish(ctx, events.LeadConverted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		PaymentID: payment.ID,
		Company:   payment.Company,
	})
	s.bus.Publish(ctx, events.PaymentChanged{
		BaseEvent: events.NewBaseEvent(),
		PaymentID: payment.ID,
		Action:    events.ActionCreated,
	})
	s.statusChanged(ctx, lead.ID, before.Status, lead.Status, string(domain.TriggerConvert))

	return transport.ConvertResponse{Lead: toLeadResponse(lead, access.Full), Payment: payment}, nil
}

// SetStatus is the administrative override: any known status, from any
// status, with no side effects beyond the write itself.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, req transport.SetStatusRequest) (transport.LeadResponse, error) {
	status, ok := records.ParseLeadStatus(req.Status)
	if !ok {
		status = records.LeadStatus(req.Status)
	}
	if err := domain.ValidateOverride(status); err != nil {
		return transport.LeadResponse{}, err
	}

	var before, lead records.Lead
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx LifecycleTx) error {
		current, err := tx.LockLead(ctx, id)
		if err != nil {
			return err
		}
		before = current
		lead, err = tx.UpdateLeadStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return transport.LeadResponse{}, apperr.AsUpstream("failed to set lead status", err)
	}

	if before.Status != lead.Status {
		s.statusChanged(ctx, lead.ID, before.Status, lead.Status, string(domain.TriggerOverride))
	}
	return toLeadResponse(lead, access.Full), nil
}
