// Package notificationtest provides testify mocks of the notification interfaces.
package notificationtest

import (
	"context"
	"estatehub/backend/internal/models"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID, kind string, vars map[string]string, data any) (*models.Notification, error) {
	args := m.Called(ctx, userID, kind, vars, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

// RecordingAlerter keeps every alert text it receives.
type RecordingAlerter struct {
	mu     sync.Mutex
	Alerts []string
}

func (r *RecordingAlerter) AlertModerators(_ context.Context, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Alerts = append(r.Alerts, text)
}

func (r *RecordingAlerter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Alerts)
}
