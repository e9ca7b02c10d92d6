// Package adapters connects modules that must not import each other.
package adapters

import (
	"context"

	leadsrepo "leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/service"
	paymentsrepo "leadflow_backend/internal/payments/repository"
	"leadflow_backend/internal/records"
	salesrepo "leadflow_backend/internal/salestasks/repository"
	"leadflow_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LifecycleTransactor runs lead lifecycle changes in one Postgres
// transaction spanning the leads, sales task and payment tables.
// It implements leads/service.Transactor.
type LifecycleTransactor struct {
	pool *pgxpool.Pool
}

// NewLifecycleTransactor creates a transactor on pool.
func NewLifecycleTransactor(pool *pgxpool.Pool) *LifecycleTransactor {
	return &LifecycleTransactor{pool: pool}
}

// WithTx begins a transaction, hands fn the three repositories bound to it
// and commits only when fn succeeds.
func (t *LifecycleTransactor) WithTx(ctx context.Context, fn func(ctx context.Context, tx service.LifecycleTx) error) error {
	return db.WithTx(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(ctx, lifecycleTx{
			leads:    leadsrepo.New(tx),
			tasks:    salesrepo.New(tx),
			payments: paymentsrepo.New(tx),
		})
	})
}

type lifecycleTx struct {
	leads    *leadsrepo.Repository
	tasks    *salesrepo.Repo
	payments *paymentsrepo.Repo
}

func (tx lifecycleTx) LockLead(ctx context.Context, id uuid.UUID) (records.Lead, error) {
	return tx.leads.LockByID(ctx, id)
}

func (tx lifecycleTx) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status records.LeadStatus) (records.Lead, error) {
	return tx.leads.UpdateStatus(ctx, id, status)
}

func (tx lifecycleTx) CreateFollowUpTask(ctx context.Context, task records.FollowUpTask) (records.FollowUpTask, error) {
	return tx.tasks.Create(ctx, task)
}

func (tx lifecycleTx) CreatePayment(ctx context.Context, p records.Payment) (records.Payment, error) {
	return tx.payments.Create(ctx, p)
}

var _ service.Transactor = (*LifecycleTransactor)(nil)
