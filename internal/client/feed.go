package client

import (
	"context"
	"sync"

	"leadflow_backend/internal/leads/transport"
)

// LeadFeed runs list queries and keeps only the answer to the most recently
// issued one. Earlier requests are left to finish; their answers are dropped.
type LeadFeed struct {
	client *Client

	mu      sync.Mutex
	issued  uint64
	current transport.LeadListResponse
	has     bool
}

func NewLeadFeed(c *Client) *LeadFeed {
	return &LeadFeed{client: c}
}

// Fetch lists leads for q. fresh is false when a newer Fetch started before
// this one returned; the result is then stale and was not stored.
func (f *LeadFeed) Fetch(ctx context.Context, q Query) (resp transport.LeadListResponse, fresh bool, err error) {
	f.mu.Lock()
	f.issued++
	seq := f.issued
	f.mu.Unlock()

	resp, err = f.client.ListLeads(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.issued {
		return resp, false, err
	}
	if err != nil {
		return resp, true, err
	}
	f.current = resp
	f.has = true
	return resp, true, nil
}

// Current returns the last fresh page, if any.
func (f *LeadFeed) Current() (transport.LeadListResponse, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, f.has
}
