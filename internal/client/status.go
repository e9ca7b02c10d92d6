package client

import (
	"context"
	"fmt"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/internal/records"
)

// Rollback is returned by StatusCommand.Confirm when the server rejected
// the change. Lead carries the status the caller should restore.
type Rollback struct {
	Lead transport.LeadResponse
	Err  error
}

func (r *Rollback) Error() string {
	return fmt.Sprintf("status change rolled back to %s: %v", r.Lead.Status, r.Err)
}

func (r *Rollback) Unwrap() error { return r.Err }

// StatusCommand is an optimistic status override: the predicted lead is
// available at once and the server answer arrives through Confirm.
type StatusCommand struct {
	predicted transport.LeadResponse
	previous  transport.LeadResponse
	done      chan struct{}
	confirmed transport.LeadResponse
	err       error
}

// ChangeStatus starts an override of lead to status. Denied or invalid
// changes fail before any request is sent.
func (c *Client) ChangeStatus(ctx context.Context, lead transport.LeadResponse, status records.LeadStatus) (*StatusCommand, error) {
	if err := c.authorize(leadAction(access.SetStatus)); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown status %q", status), Fields: map[string]string{"status": "leadstatus"}}
	}

	cmd := &StatusCommand{previous: lead, predicted: lead, done: make(chan struct{})}
	cmd.predicted.Status = status

	go func() {
		defer close(cmd.done)
		cmd.confirmed, cmd.err = c.SetStatus(context.WithoutCancel(ctx), lead.ID, status)
	}()
	return cmd, nil
}

// Predicted returns the lead as it will look if the server accepts.
func (s *StatusCommand) Predicted() transport.LeadResponse {
	return s.predicted
}

// Confirm waits for the server. On rejection it returns the previous lead
// and a *Rollback. A canceled ctx stops the wait only; the request runs on.
func (s *StatusCommand) Confirm(ctx context.Context) (transport.LeadResponse, error) {
	select {
	case <-ctx.Done():
		return s.predicted, ctx.Err()
	case <-s.done:
	}
	if s.err != nil {
		return s.previous, &Rollback{Lead: s.previous, Err: s.err}
	}
	return s.confirmed, nil
}
