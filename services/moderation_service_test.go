package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cupidwave/models"
	"cupidwave/store"
	"cupidwave/utils"
)

func TestBlock(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("Get", mock.Anything, "b").Return(person("b", 0, 0, ""), nil)
	profiles.On("Get", mock.Anything, "ghost").Return(nil, nil)
	blocks := &mockBlockStore{}
	blocks.On("Put", mock.Anything, &models.Block{BlockerID: "a", BlockedID: "b", CreatedAt: "2026-10-18T10:00:00.000000Z"}).Return(nil)
	svc := &ModerationService{Blocks: blocks, Profiles: profiles, Log: nopLog(), Now: clock}

	_, err := svc.Block(context.Background(), "a", "b")
	require.NoError(t, err)

	_, err = svc.Block(context.Background(), "a", "a")
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
	_, err = svc.Block(context.Background(), "a", "ghost")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
	blocks.AssertNumberOfCalls(t, "Put", 1)
}

func TestReport(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("Get", mock.Anything, "b").Return(person("b", 0, 0, ""), nil)
	reports := &mockReportStore{}
	reports.On("Put", mock.Anything, mock.MatchedBy(func(r *models.Report) bool {
		return r.ReportID != "" && r.Status == models.StatusOpen && r.Details == "asked for money"
	})).Return(nil)
	svc := &ModerationService{Reports: reports, Profiles: profiles, Log: nopLog(), Now: clock}

	r, err := svc.Report(context.Background(), "a", ReportInput{TargetID: "b", Reason: "spam", Details: " asked for money "})
	require.NoError(t, err)
	assert.Equal(t, "a", r.ReporterID)

	_, err = svc.Report(context.Background(), "a", ReportInput{TargetID: "b", Reason: "rude"})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
	_, err = svc.Report(context.Background(), "a", ReportInput{TargetID: "b", Reason: "spam", Details: strings.Repeat("x", 1001)})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
	_, err = svc.Report(context.Background(), "a", ReportInput{TargetID: "a", Reason: "spam"})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func TestResolveReport(t *testing.T) {
	reports := &mockReportStore{}
	reports.On("Resolve", mock.Anything, "r1", models.StatusResolved, "warned", "admin", mock.Anything).
		Return(&models.Report{ReportID: "r1", Status: models.StatusResolved}, nil)
	reports.On("Resolve", mock.Anything, "r2", models.StatusDismissed, "", "admin", mock.Anything).
		Return(nil, store.ErrConditionFailed)
	reports.On("Get", mock.Anything, "r2").Return(&models.Report{ReportID: "r2", Status: models.StatusResolved}, nil)
	reports.On("Resolve", mock.Anything, "r3", models.StatusDismissed, "", "admin", mock.Anything).
		Return(nil, store.ErrConditionFailed)
	reports.On("Get", mock.Anything, "r3").Return(nil, nil)
	svc := &AdminService{Reports: reports, Log: nopLog(), Now: clock}

	r, err := svc.ResolveReport(context.Background(), "admin", "r1", models.StatusResolved, " warned ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, r.Status)

	_, err = svc.ResolveReport(context.Background(), "admin", "r2", models.StatusDismissed, "")
	assert.True(t, utils.IsErrorCode(err, utils.ErrConflict))
	_, err = svc.ResolveReport(context.Background(), "admin", "r3", models.StatusDismissed, "")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
	_, err = svc.ResolveReport(context.Background(), "admin", "r1", models.StatusOpen, "")
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func TestAdminListReportsAndSuspend(t *testing.T) {
	reports := &mockReportStore{}
	reports.On("ListByStatus", mock.Anything, models.StatusOpen).Return([]models.Report{{ReportID: "r1"}}, nil)
	profiles := &mockProfileStore{}
	profiles.On("UpdateFields", mock.Anything, "b", mock.MatchedBy(func(f map[string]interface{}) bool {
		return f["suspended"] == true
	})).Return(&models.Profile{UserID: "b", Suspended: true}, nil)
	stats := &mockStatsStore{}
	stats.On("Counts", mock.Anything).Return(map[string]int64{"profiles": 12}, nil)
	svc := &AdminService{
		Reports:  reports,
		Profiles: newProfileService(profiles, noBlocks(), nil),
		Tables:   stats,
		Log:      nopLog(),
		Now:      clock,
	}

	list, err := svc.ListReports(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = svc.ListReports(context.Background(), "archived")
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))

	p, err := svc.SetSuspended(context.Background(), "admin", "b", true)
	require.NoError(t, err)
	assert.True(t, p.Suspended)

	counts, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), counts["profiles"])
}

func TestNotifications(t *testing.T) {
	notes := &mockNotificationStore{}
	notes.On("List", mock.Anything, "a", 100).Return([]models.Notification{{UserID: "a"}}, nil)
	notes.On("CountUnread", mock.Anything, "a").Return(3, nil)
	notes.On("MarkAllRead", mock.Anything, "a").Return(3, nil)
	svc := &NotificationService{Notifications: notes, Log: nopLog()}

	list, err := svc.List(context.Background(), "a", 500)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	n, err := svc.CountUnread(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = svc.MarkAllRead(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLiveNotifications(t *testing.T) {
	inner := &mockNotificationStore{}
	ok := &models.Notification{UserID: "a", Kind: models.NotificationMatch}
	broken := &models.Notification{UserID: "b", Kind: models.NotificationMatch}
	inner.On("Put", mock.Anything, ok).Return(nil)
	inner.On("Put", mock.Anything, broken).Return(errors.New("throttled"))
	pub := &mockPublisher{}
	pub.On("Publish", "user:a", EventNotification, ok).Return()
	live := &LiveNotifications{
		NotificationStore: inner,
		Publisher:         pub,
		Room:              func(id string) string { return "user:" + id },
	}

	require.NoError(t, live.Put(context.Background(), ok))
	assert.Error(t, live.Put(context.Background(), broken))
	pub.AssertNumberOfCalls(t, "Publish", 1)
}
