package dashboard

import (
	"context"
	"fmt"
	"time"

	"leadflow_backend/internal/records"
	"leadflow_backend/platform/db"
)

// Reader runs the aggregate queries behind the summary.
type Reader interface {
	TotalLeads(ctx context.Context) (int, error)
	LeadsByStatus(ctx context.Context) (map[records.LeadStatus]int, error)
	TotalRevenue(ctx context.Context) (records.Amount, error)
	PendingTechTasks(ctx context.Context) (int, error)
	FollowUpsOn(ctx context.Context, day time.Time) ([]records.FollowUpTask, error)
	TendersEndingBetween(ctx context.Context, from, to time.Time) ([]records.Tender, error)
	TopClients(ctx context.Context, limit int) ([]ClientRevenue, error)
}

// Repo is the Postgres implementation.
type Repo struct {
	db db.DBTX
}

func NewRepo(conn db.DBTX) *Repo {
	return &Repo{db: conn}
}

var _ Reader = (*Repo)(nil)

func (r *Repo) TotalLeads(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

func (r *Repo) LeadsByStatus(ctx context.Context) (map[records.LeadStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count leads by status: %w", err)
	}
	defer rows.Close()

	counts := map[records.LeadStatus]int{
		records.LeadNew:        0,
		records.LeadInterested: 0,
		records.LeadConverted:  0,
		records.LeadClosed:     0,
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[records.LeadStatus(status)] = n
	}
	return counts, rows.Err()
}

func (r *Repo) TotalRevenue(ctx context.Context) (records.Amount, error) {
	var total records.Amount
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments`).Scan(&total); err != nil {
		return records.Amount{}, fmt.Errorf("sum revenue: %w", err)
	}
	return total, nil
}

func (r *Repo) PendingTechTasks(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tech_tasks WHERE status = 'Pending'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pending tech tasks: %w", err)
	}
	return n, nil
}

func (r *Repo) FollowUpsOn(ctx context.Context, day time.Time) ([]records.FollowUpTask, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, lead_name, company, contact, next_follow_up, priority, status, follow_up_count
		FROM sales_tasks
		WHERE next_follow_up = $1::date AND status <> 'Done'
		ORDER BY CASE priority WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END, company ASC
	`, day)
	if err != nil {
		return nil, fmt.Errorf("list today's follow-ups: %w", err)
	}
	defer rows.Close()

	tasks := make([]records.FollowUpTask, 0)
	for rows.Next() {
		var t records.FollowUpTask
		var priority, status string
		if err := rows.Scan(&t.ID, &t.LeadName, &t.Company, &t.Contact, &t.NextFollowUp, &priority, &status, &t.FollowUpCount); err != nil {
			return nil, fmt.Errorf("scan follow-up: %w", err)
		}
		t.Priority = records.Priority(priority)
		t.Status = records.TaskStatus(status)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *Repo) TendersEndingBetween(ctx context.Context, from, to time.Time) ([]records.Tender, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, date, company, bid_no, item, start_date, end_date, status, created_at
		FROM tenders
		WHERE end_date BETWEEN $1::date AND $2::date
		ORDER BY end_date ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list ending tenders: %w", err)
	}
	defer rows.Close()

	tenders := make([]records.Tender, 0)
	for rows.Next() {
		var t records.Tender
		if err := rows.Scan(&t.ID, &t.Date, &t.Company, &t.BidNo, &t.Item, &t.StartDate, &t.EndDate, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tender: %w", err)
		}
		tenders = append(tenders, t)
	}
	return tenders, rows.Err()
}

func (r *Repo) TopClients(ctx context.Context, limit int) ([]ClientRevenue, error) {
	rows, err := r.db.Query(ctx, `
		SELECT company, SUM(amount) AS revenue
		FROM payments
		GROUP BY company
		ORDER BY revenue DESC, company ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("rank clients: %w", err)
	}
	defer rows.Close()

	clients := make([]ClientRevenue, 0, limit)
	for rows.Next() {
		var c ClientRevenue
		if err := rows.Scan(&c.Company, &c.Revenue); err != nil {
			return nil, fmt.Errorf("scan client revenue: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
