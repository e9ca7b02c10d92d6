package dashboard

import (
	"context"
	"time"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/phone"

	"golang.org/x/sync/errgroup"
)

const (
	topClientsLimit     = 3
	tenderWindowDays    = 7
	maskedContactDigits = 5
)

// ClientRevenue is the payment total for one company.
type ClientRevenue struct {
	Company string         `json:"company"`
	Revenue records.Amount `json:"revenue"`
}

// Summary is the pipeline overview shown on the dashboard.
type Summary struct {
	TotalLeads       int                        `json:"total_leads"`
	TotalRevenue     records.Amount             `json:"total_revenue"`
	PendingTechTasks int                        `json:"pending_tech_tasks"`
	LeadsByStatus    map[records.LeadStatus]int `json:"leads_by_status"`
	TodayFollowUps   []records.FollowUpTask     `json:"today_follow_ups"`
	EndingTenders    []records.Tender           `json:"ending_tenders"`
	TopClients       []ClientRevenue            `json:"top_clients"`
	GeneratedAt      time.Time                  `json:"generated_at"`
}

// Service assembles the summary, cache first.
type Service struct {
	reader Reader
	cache  *Cache
	log    *logger.Logger
	now    func() time.Time
}

func NewService(reader Reader, cache *Cache, log *logger.Logger) *Service {
	return &Service{reader: reader, cache: cache, log: log, now: time.Now}
}

// Summary returns the overview for a caller. Follow-up contacts are masked
// below the Full capability.
func (s *Service) Summary(ctx context.Context, c access.Capability) (Summary, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	var summary Summary
	loader := func(ctx context.Context) (any, error) {
		return s.load(ctx, today)
	}

	key, err := s.cache.BuildKey(ctx, "dashboard", "summary", today.Format("2006-01-02"))
	if err != nil {
		s.log.Warn("dashboard cache unavailable", "error", err)
		value, loadErr := loader(ctx)
		if loadErr != nil {
			return Summary{}, apperr.AsUpstream("failed to load dashboard", loadErr)
		}
		summary = value.(Summary)
	} else if err := s.cache.FetchJSON(ctx, key, &summary, loader); err != nil {
		return Summary{}, apperr.AsUpstream("failed to load dashboard", err)
	}

	if c != access.Full {
		for i := range summary.TodayFollowUps {
			summary.TodayFollowUps[i].Contact = phone.Mask(summary.TodayFollowUps[i].Contact, maskedContactDigits)
		}
	}
	return summary, nil
}

// Invalidate drops cached summaries after a pipeline change.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) load(ctx context.Context, today time.Time) (Summary, error) {
	out := Summary{GeneratedAt: s.now()}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.reader.TotalLeads(gctx)
		out.TotalLeads = n
		return err
	})
	g.Go(func() error {
		counts, err := s.reader.LeadsByStatus(gctx)
		out.LeadsByStatus = counts
		return err
	})
	g.Go(func() error {
		total, err := s.reader.TotalRevenue(gctx)
		out.TotalRevenue = total
		return err
	})
	g.Go(func() error {
		n, err := s.reader.PendingTechTasks(gctx)
		out.PendingTechTasks = n
		return err
	})
	g.Go(func() error {
		tasks, err := s.reader.FollowUpsOn(gctx, today)
		out.TodayFollowUps = tasks
		return err
	})
	g.Go(func() error {
		tenders, err := s.reader.TendersEndingBetween(gctx, today, today.AddDate(0, 0, tenderWindowDays))
		out.EndingTenders = tenders
		return err
	})
	g.Go(func() error {
		clients, err := s.reader.TopClients(gctx, topClientsLimit)
		out.TopClients = clients
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}
