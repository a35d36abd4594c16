//go:build integration

package mongo

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const mongoPort = "27017/tcp"

func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("Skipping test: Docker not available")
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{mongoPort},
			WaitingFor:   wait.ForListeningPort(mongoPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, mongoPort)
	require.NoError(t, err)

	client, db, err := Connect(ctx, Config{URI: fmt.Sprintf("mongodb://%s:%s", host, port.Port()), Database: "visitorpass_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return db
}

func TestRepositories(t *testing.T) {
	db := startMongo(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	visitors := NewVisitorRepository(db)
	passes := NewPassRepository(db)
	logs := NewCheckLogRepository(db)
	users := NewUserRepository(db)
	require.NoError(t, EnsureIndexes(ctx, visitors, NewAppointmentRepository(db), passes, logs, users))

	t.Run("visitor search", func(t *testing.T) {
		require.NoError(t, visitors.Create(ctx, &domain.Visitor{ID: "v1", FullName: "Alice Ocean", Status: domain.VisitorApproved, CreatedAt: now}))
		require.NoError(t, visitors.Create(ctx, &domain.Visitor{ID: "v2", FullName: "Bob", Email: "bob@ocean.example", Status: domain.VisitorPending, CreatedAt: now.Add(time.Minute)}))

		items, err := visitors.List(ctx, ports.VisitorFilter{Search: "OCEAN"})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "v2", items[0].ID)

		items, err = visitors.List(ctx, ports.VisitorFilter{Search: "ocean", Status: domain.VisitorApproved})
		require.NoError(t, err)
		require.Len(t, items, 1)

		_, err = visitors.FindByID(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("pass expiry", func(t *testing.T) {
		require.NoError(t, passes.Create(ctx, &domain.Pass{ID: "p-old", VisitorID: "v1", Status: domain.PassIssued, ValidUntil: now.Add(-time.Hour), CreatedAt: now}))
		require.NoError(t, passes.Create(ctx, &domain.Pass{ID: "p-new", VisitorID: "v1", Status: domain.PassIssued, ValidUntil: now.Add(time.Hour), CreatedAt: now}))
		require.NoError(t, passes.Create(ctx, &domain.Pass{ID: "p-rev", VisitorID: "v1", Status: domain.PassRevoked, ValidUntil: now.Add(-time.Hour), CreatedAt: now}))

		n, err := passes.ExpireIssuedBefore(ctx, now)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = passes.MarkExpired(ctx, []string{"p-old", "p-rev"}, now)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)

		rev, err := passes.FindByID(ctx, "p-rev")
		require.NoError(t, err)
		assert.Equal(t, domain.PassRevoked, rev.Status)
	})

	t.Run("check log order", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, logs.Append(ctx, &domain.CheckLog{ID: fmt.Sprintf("l%d", i), VisitorID: "v1", Action: domain.CheckIn, Timestamp: now.Add(time.Duration(i) * time.Minute)}))
		}
		items, err := logs.List(ctx, ports.CheckLogFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "l2", items[0].ID)
	})

	t.Run("unique user email", func(t *testing.T) {
		require.NoError(t, users.Create(ctx, &domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleAdmin, CreatedAt: now}))
		assert.ErrorIs(t, users.Create(ctx, &domain.User{ID: "u2", Email: "a@example.com"}), domain.ErrUserExists)

		u, err := users.FindByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, now, u.CreatedAt)
	})
}
