package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/meiway/mailplus-crm/internal/domain"
	"github.com/meiway/mailplus-crm/internal/repository"
)

const (
	recentMailItemLimit  = 10
	overdueFollowupLimit = 5
	statsCacheTTL        = 30 * time.Second
)

// StatsCache is a byte-level cache for computed dashboard stats.
type StatsCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// DashboardStats is the summary view computed per owner.
type DashboardStats struct {
	TotalContacts    int64                        `json:"total_contacts"`
	ActiveMailItems  int64                        `json:"active_mail_items"`
	PendingFollowups int64                        `json:"pending_followups"`
	RecentMailItems  []domain.MailItemWithContact `json:"recent_mail_items"`
	OverdueFollowups []domain.OutreachMessage     `json:"overdue_followups"`
}

// DashboardService computes read-time aggregates. Sub-queries run
// independently; a failure in any one fails the whole call rather than
// returning partial results.
type DashboardService struct {
	contacts  repository.ContactRepository
	mailItems repository.MailItemRepository
	messages  repository.OutreachMessageRepository
	cache     StatsCache
	now       func() time.Time
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	ContactRepo  repository.ContactRepository
	MailItemRepo repository.MailItemRepository
	MessageRepo  repository.OutreachMessageRepository
	Cache        StatsCache
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		contacts:  deps.ContactRepo,
		mailItems: deps.MailItemRepo,
		messages:  deps.MessageRepo,
		cache:     deps.Cache,
		now:       time.Now,
	}
}

// ComputeStats assembles the dashboard summary for the caller. Results are
// cached briefly per owner; staleness within the TTL is acceptable for a
// human-facing summary.
func (s *DashboardService) ComputeStats(ctx context.Context, ownerID string) (*DashboardStats, error) {
	cacheKey := "dashboard:stats:" + ownerID
	if s.cache != nil {
		if raw, err := s.cache.GetBytes(ctx, cacheKey); err == nil && len(raw) > 0 {
			var cached DashboardStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	now := s.now()

	totalContacts, err := s.contacts.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	activeItems, err := s.mailItems.CountByStatuses(ctx, ownerID, []domain.MailItemStatus{
		domain.MailItemStatusReceived,
		domain.MailItemStatusNotified,
	})
	if err != nil {
		return nil, err
	}

	pendingFollowups, err := s.messages.CountOverdue(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}

	recentItems, err := s.mailItems.ListRecentWithContact(ctx, ownerID, recentMailItemLimit)
	if err != nil {
		return nil, err
	}

	overdue, err := s.messages.ListOverdue(ctx, ownerID, now, overdueFollowupLimit)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalContacts:    totalContacts,
		ActiveMailItems:  activeItems,
		PendingFollowups: pendingFollowups,
		RecentMailItems:  recentItems,
		OverdueFollowups: overdue,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			_ = s.cache.SetBytes(ctx, cacheKey, raw, statsCacheTTL)
		}
	}
	return stats, nil
}
