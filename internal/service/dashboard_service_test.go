package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiway/mailplus-crm/internal/domain"
)

// memoryStatsCache is a map-backed StatsCache for tests.
type memoryStatsCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newMemoryStatsCache() *memoryStatsCache {
	return &memoryStatsCache{entries: map[string][]byte{}}
}

func (c *memoryStatsCache) GetBytes(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *memoryStatsCache) SetBytes(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = val
	c.sets++
	return nil
}

func newDashboardFixture(cache StatsCache) (*DashboardService, *fakeContactRepo, *fakeMailItemRepo, *fakeMessageRepo) {
	contacts := newFakeContactRepo()
	mailItems := newFakeMailItemRepo(contacts)
	messages := newFakeMessageRepo(contacts)
	svc := NewDashboardService(DashboardDependencies{
		ContactRepo:  contacts,
		MailItemRepo: mailItems,
		MessageRepo:  messages,
		Cache:        cache,
	})
	return svc, contacts, mailItems, messages
}

func addItemWithStatus(t *testing.T, repo *fakeMailItemRepo, contactID string, status domain.MailItemStatus) {
	t.Helper()
	item := &domain.MailItem{ContactID: contactID, ItemType: "Package", Status: status}
	require.NoError(t, repo.Create(context.Background(), item))
}

func TestComputeStatsCountsActiveAndOverdue(t *testing.T) {
	svc, contacts, mailItems, messages := newDashboardFixture(nil)
	contact := contacts.add("owner-1", nil)
	contacts.add("owner-1", nil)
	contacts.add("other-owner", nil)

	addItemWithStatus(t, mailItems, contact.ID, domain.MailItemStatusReceived)
	addItemWithStatus(t, mailItems, contact.ID, domain.MailItemStatusNotified)
	addItemWithStatus(t, mailItems, contact.ID, domain.MailItemStatusPickedUp)
	addItemWithStatus(t, mailItems, contact.ID, domain.MailItemStatusReturned)

	now := time.Now()
	past := now.Add(-2 * time.Hour)
	future := now.Add(2 * time.Hour)

	overdue := &domain.OutreachMessage{
		ContactID: contact.ID, MessageType: "Initial", Channel: domain.ChannelEmail,
		MessageContent: "x", FollowUpNeeded: true, FollowUpDate: &past,
	}
	notDueYet := &domain.OutreachMessage{
		ContactID: contact.ID, MessageType: "Initial", Channel: domain.ChannelEmail,
		MessageContent: "x", FollowUpNeeded: true, FollowUpDate: &future,
	}
	answered := &domain.OutreachMessage{
		ContactID: contact.ID, MessageType: "Initial", Channel: domain.ChannelEmail,
		MessageContent: "x", FollowUpNeeded: true, FollowUpDate: &past, Responded: true,
	}
	for _, msg := range []*domain.OutreachMessage{overdue, notDueYet, answered} {
		require.NoError(t, messages.Create(context.Background(), msg))
	}

	stats, err := svc.ComputeStats(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalContacts)
	assert.Equal(t, int64(2), stats.ActiveMailItems)
	assert.Equal(t, int64(1), stats.PendingFollowups)
	assert.Len(t, stats.RecentMailItems, 4)
	require.Len(t, stats.OverdueFollowups, 1)
	assert.Equal(t, overdue.ID, stats.OverdueFollowups[0].ID)
}

func TestComputeStatsFailsFastOnSubQueryError(t *testing.T) {
	svc, contacts, _, messages := newDashboardFixture(nil)
	contacts.add("owner-1", nil)
	messages.failWith = errStorageDown

	_, err := svc.ComputeStats(context.Background(), "owner-1")

	require.Error(t, err)
}

func TestComputeStatsServesCachedResult(t *testing.T) {
	cache := newMemoryStatsCache()
	svc, contacts, _, _ := newDashboardFixture(cache)
	contacts.add("owner-1", nil)

	first, err := svc.ComputeStats(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// A new contact is invisible until the cache entry expires.
	contacts.add("owner-1", nil)
	second, err := svc.ComputeStats(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, first.TotalContacts, second.TotalContacts)
	assert.Equal(t, 1, cache.sets)
}

func TestComputeStatsIgnoresCorruptCacheEntry(t *testing.T) {
	cache := newMemoryStatsCache()
	svc, contacts, _, _ := newDashboardFixture(cache)
	contacts.add("owner-1", nil)

	cache.entries["dashboard:stats:owner-1"] = []byte("not json")

	stats, err := svc.ComputeStats(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalContacts)

	var cached DashboardStats
	require.NoError(t, json.Unmarshal(cache.entries["dashboard:stats:owner-1"], &cached))
	assert.Equal(t, int64(1), cached.TotalContacts)
}
