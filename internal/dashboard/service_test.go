package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	loads     atomic.Int32
	revenue   records.Amount
	failTotal error
	tenderWin [2]time.Time
}

func (f *fakeReader) TotalLeads(context.Context) (int, error) {
	f.loads.Add(1)
	return 12, f.failTotal
}

func (f *fakeReader) LeadsByStatus(context.Context) (map[records.LeadStatus]int, error) {
	return map[records.LeadStatus]int{records.LeadNew: 7, records.LeadConverted: 5}, nil
}

func (f *fakeReader) TotalRevenue(context.Context) (records.Amount, error) {
	return f.revenue, nil
}

func (f *fakeReader) PendingTechTasks(context.Context) (int, error) {
	return 2, nil
}

func (f *fakeReader) FollowUpsOn(_ context.Context, day time.Time) ([]records.FollowUpTask, error) {
	return []records.FollowUpTask{{ID: uuid.New(), Company: "Acme", Contact: "9876543210", NextFollowUp: day}}, nil
}

func (f *fakeReader) TendersEndingBetween(_ context.Context, from, to time.Time) ([]records.Tender, error) {
	f.tenderWin = [2]time.Time{from, to}
	return []records.Tender{}, nil
}

func (f *fakeReader) TopClients(_ context.Context, limit int) ([]ClientRevenue, error) {
	return []ClientRevenue{{Company: "Acme", Revenue: records.MustAmount("1500")}}[:min(limit, 1)], nil
}

func newTestService(t *testing.T, reader Reader) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewService(reader, NewCache(client, time.Minute, logger.Discard()), logger.Discard())
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestSummaryAggregatesAndCaches(t *testing.T) {
	reader := &fakeReader{revenue: records.MustAmount("1500.50")}
	svc := newTestService(t, reader)

	first, err := svc.Summary(context.Background(), access.Full)
	require.NoError(t, err)
	assert.Equal(t, 12, first.TotalLeads)
	assert.Equal(t, "1500.50", first.TotalRevenue.StringFixed(2))
	assert.Equal(t, 2, first.PendingTechTasks)
	assert.Equal(t, 5, first.LeadsByStatus[records.LeadConverted])
	require.Len(t, first.TodayFollowUps, 1)
	assert.Equal(t, "9876543210", first.TodayFollowUps[0].Contact)
	assert.Len(t, first.TopClients, 1)

	today := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, [2]time.Time{today, today.AddDate(0, 0, 7)}, reader.tenderWin)

	_, err = svc.Summary(context.Background(), access.Full)
	require.NoError(t, err)
	assert.Equal(t, int32(1), reader.loads.Load())

	require.NoError(t, svc.Invalidate(context.Background()))
	_, err = svc.Summary(context.Background(), access.Full)
	require.NoError(t, err)
	assert.Equal(t, int32(2), reader.loads.Load())
}

func TestSummaryMasksForRestricted(t *testing.T) {
	svc := newTestService(t, &fakeReader{})

	_, err := svc.Summary(context.Background(), access.Full)
	require.NoError(t, err)

	masked, err := svc.Summary(context.Background(), access.Restricted)
	require.NoError(t, err)
	assert.Equal(t, "98765*****", masked.TodayFollowUps[0].Contact)

	full, err := svc.Summary(context.Background(), access.Full)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", full.TodayFollowUps[0].Contact)
}

func TestSummaryQueryFailure(t *testing.T) {
	svc := newTestService(t, &fakeReader{failTotal: errors.New("connection reset")})

	_, err := svc.Summary(context.Background(), access.Full)
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
}

func TestSummaryWithoutRedis(t *testing.T) {
	reader := &fakeReader{}
	svc := NewService(reader, NewCache(nil, time.Minute, nil), logger.Discard())

	_, err := svc.Summary(context.Background(), access.Full)
	require.NoError(t, err)
	_, err = svc.Summary(context.Background(), access.Full)
	require.NoError(t, err)
	assert.Equal(t, int32(2), reader.loads.Load())
	assert.NoError(t, svc.Invalidate(context.Background()))
}

type recordingBus struct {
	subscribed []string
}

func (b *recordingBus) Publish(context.Context, events.Event) {}

func (b *recordingBus) PublishSync(context.Context, events.Event) error { return nil }

func (b *recordingBus) Subscribe(name string, _ events.Handler) {
	b.subscribed = append(b.subscribed, name)
}

func TestModuleSubscribesToPipelineEvents(t *testing.T) {
	bus := &recordingBus{}
	NewModule(nil, NewCache(nil, time.Minute, nil), bus, logger.Discard())
	assert.ElementsMatch(t, events.Names, bus.subscribed)
}
