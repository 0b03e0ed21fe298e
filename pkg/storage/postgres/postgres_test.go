package postgres_test

import (
	"context"
	"database/sql"
	root "forum"
	"forum/pkg/domain"
	"forum/pkg/storage/postgres"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testOptions are the credentials the throwaway container is started with;
// Host and Port are filled in once the container is up.
var testOptions = postgres.Options{ //nolint: gochecknoglobals
	Username:           "forum",
	Password:           "forum",
	Database:           "forum_test",
	SslMode:            "disable",
	ConnMaxLifetime:    time.Minute,
	ConnMaxIdleTime:    time.Minute,
	MaxOpenConnections: 5,
	MaxIdleConnections: 5,
}

// setupTestDB starts postgres:17, applies the embedded migrations and returns
// a connected store. The container is terminated when the test finishes.
func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testOptions.Username,
				"POSTGRES_PASSWORD": testOptions.Password,
				"POSTGRES_DB":       testOptions.Database,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "starting postgres container")
	terminate := func() { _ = container.Terminate(ctx) }

	opts := testOptions
	opts.Host, err = container.Host(ctx)
	if err != nil {
		terminate()
		require.NoError(t, err, "container host")
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		terminate()
		require.NoError(t, err, "container port")
	}
	opts.Port = port.Int()

	pg, err := postgres.New(ctx, opts)
	if err != nil {
		terminate()
		require.NoError(t, err, "connecting")
	}

	goose.SetBaseFS(root.Migrations)
	require.NoError(t, goose.SetDialect("postgres"))
	if err := goose.UpContext(ctx, pg.DB.(*sql.DB), "migrations"); err != nil {
		_ = pg.Close()
		terminate()
		require.NoError(t, err, "migrating")
	}

	return pg, func() {
		_ = pg.Close()
		terminate()
	}
}

// seedUser stores a user with the given username and a derived full name.
func seedUser(t *testing.T, pg *postgres.PgSQL, username string) *domain.User {
	t.Helper()
	user, err := pg.CreateUser(context.Background(), domain.User{
		Username: username,
		FullName: "Full " + username,
	})
	require.NoError(t, err)

	return user
}

func seedCommunity(t *testing.T, pg *postgres.PgSQL, name string, order int) *domain.Community {
	t.Helper()
	created, err := pg.CreateCommunities(context.Background(), domain.Community{Name: name, Order: order})
	require.NoError(t, err)
	require.Len(t, created, 1)

	return &created[0]
}

func seedPost(t *testing.T,
	pg *postgres.PgSQL,
	author domain.UserID,
	community domain.CommunityID,
	title, content string) *domain.Post {
	t.Helper()
	post, err := pg.CreatePost(context.Background(), domain.Post{
		Title:       title,
		Content:     content,
		AuthorID:    author,
		CommunityID: community,
	})
	require.NoError(t, err)

	return post
}

func seedComment(t *testing.T, pg *postgres.PgSQL, post domain.PostID, author domain.UserID, content string) *domain.Comment {
	t.Helper()
	comment, err := pg.CreateComment(context.Background(), domain.Comment{
		Content:  content,
		PostID:   post,
		AuthorID: author,
	})
	require.NoError(t, err)

	return comment
}
