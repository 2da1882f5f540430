package notifyhub_test

import (
	"context"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notifyhub"
	"estatehub/backend/internal/storage"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) (*notifyhub.Hub, context.CancelFunc) {
	t.Helper()
	hub := notifyhub.NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func receive(t *testing.T, c *MockClient) models.Notification {
	t.Helper()
	select {
	case n := <-c.RecvChannel:
		return n
	case <-time.After(time.Second):
		t.Fatalf("client %s did not receive a notification", c.userID)
		return models.Notification{}
	}
}

func TestHub_RegisterDispatchUnregister(t *testing.T) {
	hub, _ := startHub(t)
	tab1 := newMockClient("user_A", 4)
	tab2 := newMockClient("user_A", 4)
	other := newMockClient("user_B", 4)

	require.True(t, hub.Register(tab1))
	require.True(t, hub.Register(tab2))
	require.True(t, hub.Register(other))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 10*time.Millisecond)

	hub.DispatchCh <- models.Notification{ID: "n-1", UserID: "user_A", Title: "hello"}

	assert.Equal(t, "hello", receive(t, tab1).Title)
	assert.Equal(t, "hello", receive(t, tab2).Title)
	assert.Empty(t, other.RecvChannel)

	hub.Unregister(tab1)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)
	assert.True(t, tab1.IsClosed())

	// A second unregister of the same client is ignored.
	hub.Unregister(tab1)
	hub.DispatchCh <- models.Notification{ID: "n-2", UserID: "user_B"}
	assert.Equal(t, "n-2", receive(t, other).ID)
	assert.Equal(t, 2, hub.ClientCount())
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub, _ := startHub(t)
	slow := newMockClient("user_A", 0)
	require.True(t, hub.Register(slow))

	hub.DispatchCh <- models.Notification{UserID: "user_A"}

	assert.Eventually(t, slow.IsClosed, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesClientsAndUnblocks(t *testing.T) {
	hub, cancel := startHub(t)
	c := newMockClient("user_A", 1)
	require.True(t, hub.Register(c))

	cancel()

	assert.Eventually(t, c.IsClosed, time.Second, 10*time.Millisecond)
	assert.False(t, hub.Register(newMockClient("user_B", 1)))
	hub.Unregister(c)
}

func TestHub_DeliversFromRedisPubSub(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	store := storage.NewStorageService(nil, rdb)

	hub, _ := startHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub.StartPubSubListener(ctx, store)

	client := newMockClient("user_A", 4)
	require.True(t, hub.Register(client))

	// The subscription is established asynchronously; publish until it lands.
	var got models.Notification
	require.Eventually(t, func() bool {
		_ = store.PublishNotification(context.Background(), &models.Notification{ID: "n-1", UserID: "user_A", Title: "via redis"})
		select {
		case got = <-client.RecvChannel:
			return true
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "via redis", got.Title)
}
