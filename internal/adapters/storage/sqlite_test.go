package storage

import (
	"context"
	"testing"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupInMemoryDB creates a new SQLiteAdapter used for testing
func setupInMemoryDB(t *testing.T) *SQLiteAdapter {
	adapter, err := NewSQLiteAdapter(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func createUser(t *testing.T, repo *UserRepo, username, email string) *domain.User {
	u := domain.NewUser(username, email, "hash", "code-"+username, time.Hour, time.Now())
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Users()
	ctx := context.Background()

	u := createUser(t, repo, "alice_01", "alice@example.com")
	assert.NotZero(t, u.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byName, err := repo.GetByUsername(ctx, "alice_01")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byName.Email)

	byCode, err := repo.GetByConfirmationCode(ctx, "code-alice_01")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byCode.ID)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByConfirmationCode(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Users()

	createUser(t, repo, "alice_01", "alice@example.com")

	dup := domain.NewUser("alice_02", "alice@example.com", "hash", "other", time.Hour, time.Now())
	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrValidation)

	fields, ok := domain.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, domain.FieldErrors{{Field: "email", Message: "email already exists"}}, fields)
}

func TestUserRepo_DuplicateUsernameAndEmail(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Users()

	createUser(t, repo, "alice_01", "alice@example.com")

	err := repo.Create(context.Background(), domain.NewUser("alice_01", "bob@example.com", "hash", "c2", time.Hour, time.Now()))
	fields, ok := domain.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, domain.FieldErrors{{Field: "username", Message: "username already exists"}}, fields)

	createUser(t, repo, "bob_01", "bob@example.com")
	err = repo.Create(context.Background(), domain.NewUser("bob_01", "alice@example.com", "hash", "c3", time.Hour, time.Now()))
	fields, ok = domain.AsFieldErrors(err)
	require.True(t, ok)
	assert.Len(t, fields, 2)
}

func TestUserRepo_UpdateAndRecovery(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Users()
	ctx := context.Background()

	u := createUser(t, repo, "bob_0001", "bob@example.com")
	u.Confirm()
	u.StartRecovery("recover-me", time.Hour, time.Now())
	require.NoError(t, repo.Update(ctx, u))

	stored, err := repo.GetByRecoveryCode(ctx, "recover-me")
	require.NoError(t, err)
	assert.True(t, stored.IsConfirmed)
	assert.Empty(t, stored.ConfirmationCode)
}

func TestUserRepo_DeleteUnconfirmedBefore(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Users()
	ctx := context.Background()

	pending := createUser(t, repo, "pending1", "pending@example.com")
	confirmed := createUser(t, repo, "confirm1", "confirmed@example.com")
	confirmed.Confirm()
	require.NoError(t, repo.Update(ctx, confirmed))

	n, err := repo.DeleteUnconfirmedBefore(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetByID(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByID(ctx, confirmed.ID)
	assert.NoError(t, err)
}

func TestSessionRepo_Lifecycle(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Sessions()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	claims := domain.Claims{UserID: 1, DeviceID: "dev-1", IssuedAt: now, ExpiresAt: now.Add(20 * time.Minute)}

	s1 := domain.NewDeviceSession(1, "dev-1", "10.0.0.1", "curl", claims)
	require.NoError(t, repo.Create(ctx, s1))
	claims.DeviceID = "dev-2"
	require.NoError(t, repo.Create(ctx, domain.NewDeviceSession(1, "dev-2", "10.0.0.2", "firefox", claims)))
	claims.DeviceID = "dev-3"
	require.NoError(t, repo.Create(ctx, domain.NewDeviceSession(2, "dev-3", "10.0.0.3", "chrome", claims)))

	stored, err := repo.GetByDeviceID(ctx, "dev-1")
	require.NoError(t, err)
	assert.True(t, stored.IssuedAt.Equal(now))

	// Rotation keeps the row
	next := domain.Claims{UserID: 1, DeviceID: "dev-1", IssuedAt: now.Add(time.Second), ExpiresAt: now.Add(21 * time.Minute)}
	stored.Rotate("10.0.0.9", next)
	require.NoError(t, repo.Update(ctx, stored))
	stored, err = repo.GetByDeviceID(ctx, "dev-1")
	require.NoError(t, err)
	assert.True(t, stored.Matches(next))
	assert.Equal(t, "10.0.0.9", stored.IP)

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.DeleteAllExcept(ctx, 1, "dev-1"))
	list, _ = repo.ListByUser(ctx, 1)
	require.Len(t, list, 1)
	assert.Equal(t, "dev-1", list[0].DeviceID)

	require.NoError(t, repo.Delete(ctx, 1, "dev-1"))
	_, err = repo.GetByDeviceID(ctx, "dev-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.DeleteAllForUser(ctx, 2))
	list, _ = repo.ListByUser(ctx, 2)
	assert.Empty(t, list)
}

func TestSessionRepo_DeleteExpired(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Sessions()
	ctx := context.Background()

	now := time.Now().UTC()
	expired := domain.Claims{IssuedAt: now.Add(-time.Hour), ExpiresAt: now.Add(-time.Minute)}
	live := domain.Claims{IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, domain.NewDeviceSession(1, "old", "", "", expired)))
	require.NoError(t, repo.Create(ctx, domain.NewDeviceSession(1, "new", "", "", live)))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetByDeviceID(ctx, "new")
	assert.NoError(t, err)
}

func TestProfileRepo_Upsert(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Profiles()
	ctx := context.Background()

	_, err := repo.GetByUserID(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := &domain.Profile{UserID: 7}
	p.Apply(domain.UpdateProfileInput{Name: "Ann", City: "Minsk", Birthday: "1990-05-01"}, nil)
	require.NoError(t, repo.Save(ctx, p))

	link := "/content/user/7/avatar/a.png"
	p.Apply(domain.UpdateProfileInput{Name: "Anna"}, &link)
	require.NoError(t, repo.Save(ctx, p))

	stored, err := repo.GetByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Anna", stored.Name)
	assert.Empty(t, stored.City)
	assert.Nil(t, stored.DateOfBirth)
	assert.Equal(t, link, stored.PhotoLink)

	require.NoError(t, repo.DeleteByUserID(ctx, 7))
	_, err = repo.GetByUserID(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostRepo_CRUD(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Posts()
	ctx := context.Background()

	p := domain.NewPost(3, "first", []string{"/a.png", "/b.png"})
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a.png", "/b.png"}, stored.Photos)

	stored.Description = "edited"
	stored.Photos = []string{"/c.png"}
	require.NoError(t, repo.Update(ctx, stored))

	stored, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Description)
	assert.Equal(t, []string{"/c.png"}, stored.Photos)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostRepo_ListByUser(t *testing.T) {
	adapter := setupInMemoryDB(t)
	repo := adapter.Posts()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		p := domain.NewPost(1, "post", nil)
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, p))
	}
	require.NoError(t, repo.Create(ctx, domain.NewPost(2, "other", nil)))

	posts, total, err := repo.ListByUser(ctx, 1, domain.Paginator{PageNumber: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, posts, 2)
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))

	posts, _, err = repo.ListByUser(ctx, 1, domain.Paginator{PageNumber: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestAuditLogs(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	for _, action := range []domain.AuditAction{domain.ActionLogin, domain.ActionLogout} {
		log, err := domain.NewAuditLog(1, action, "dev", "127.0.0.1")
		require.NoError(t, err)
		require.NoError(t, adapter.SaveAuditLog(ctx, *log))
	}

	logs, err := adapter.ListAuditLogs(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = adapter.ListAuditLogs(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestDeleteAllData(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	createUser(t, adapter.Users(), "carol_01", "carol@example.com")
	require.NoError(t, adapter.Posts().Create(ctx, domain.NewPost(1, "x", []string{"/p.png"})))

	require.NoError(t, adapter.DeleteAllData(ctx))

	_, err := adapter.Users().GetByEmail(ctx, "carol@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, total, err := adapter.Posts().ListByUser(ctx, 1, domain.Paginator{PageNumber: 1, PageSize: 8})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, adapter.Ping(ctx))
}
