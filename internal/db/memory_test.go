package daily

import (
	"context"
	"testing"
	"time"

	models "github.com/glkeru/loyalty/daily/internal/models"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMemoryEnsureUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDB()

	user, err := store.EnsureUser(ctx, 42, "", testNow)
	require.NoError(t, err)
	require.Equal(t, int64(42), user.ID)
	require.Equal(t, models.SourceWebsite, user.CreatedVia)
	require.Equal(t, testNow, user.CreatedAt)

	// имя заполняется, если его не было
	user, err = store.EnsureUser(ctx, 42, "cookie", testNow.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, "cookie", user.DisplayName)
	require.Equal(t, testNow, user.CreatedAt)

	// и не перезаписывается
	user, err = store.EnsureUser(ctx, 42, "other", testNow)
	require.NoError(t, err)
	require.Equal(t, "cookie", user.DisplayName)

	users, err := store.CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), users)
}

func TestMemoryClaimDaily(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDB()
	cooldown := 24 * time.Hour

	_, ok, err := store.ClaimDaily(ctx, 42, 2, testNow, testNow.Add(-cooldown))
	require.NoError(t, err)
	require.False(t, ok, "no account")

	_, err = store.EnsureUser(ctx, 42, "", testNow)
	require.NoError(t, err)

	user, ok, err := store.ClaimDaily(ctx, 42, 2, testNow, testNow.Add(-cooldown))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(2), user.PointBalance)
	require.Equal(t, int64(1), user.TotalClaims)
	require.Equal(t, testNow, *user.LastDailyClaimAt)

	next := testNow.Add(cooldown - time.Millisecond)
	_, ok, err = store.ClaimDaily(ctx, 42, 2, next, next.Add(-cooldown))
	require.NoError(t, err)
	require.False(t, ok)

	next = testNow.Add(cooldown)
	user, ok, err = store.ClaimDaily(ctx, 42, 2, next, next.Add(-cooldown))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(4), user.PointBalance)
	require.Equal(t, int64(4), user.TotalEarned)

	// возвращается копия
	user.LastDailyClaimAt = nil
	stored, err := store.GetUser(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, stored.LastDailyClaimAt)
}

func TestMemoryClaimBlacklisted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDB()
	expired := testNow.Add(-time.Minute)
	store.PutUser(models.UserAccount{ID: 1, IsBlacklisted: true, BlacklistExpiresAt: &expired})

	_, ok, err := store.ClaimDaily(ctx, 1, 2, testNow, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.ClearExpiredBlacklist(ctx, 1, testNow))
	user, err := store.GetUser(ctx, 1)
	require.NoError(t, err)
	require.False(t, user.IsBlacklisted)
	require.Nil(t, user.BlacklistExpiresAt)

	_, ok, err = store.ClaimDaily(ctx, 1, 2, testNow, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryClearActiveBlacklist(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDB()
	expires := testNow.Add(time.Hour)
	store.PutUser(models.UserAccount{ID: 1, IsBlacklisted: true, BlacklistExpiresAt: &expires})
	store.PutUser(models.UserAccount{ID: 2, IsBlacklisted: true})

	require.NoError(t, store.ClearExpiredBlacklist(ctx, 1, testNow))
	require.NoError(t, store.ClearExpiredBlacklist(ctx, 2, testNow))

	for _, id := range []int64{1, 2} {
		user, err := store.GetUser(ctx, id)
		require.NoError(t, err)
		require.True(t, user.IsBlacklisted, "user=%d", id)
	}
}

func TestMemoryGetUserNotFound(t *testing.T) {
	_, err := NewMemoryDB().GetUser(context.Background(), 1)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryTopUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDB()
	store.PutUser(models.UserAccount{ID: 1, DisplayName: "a", PointBalance: 5})
	store.PutUser(models.UserAccount{ID: 2, DisplayName: "b", PointBalance: 50, IsBlacklisted: true})
	store.PutUser(models.UserAccount{ID: 3, DisplayName: "c", PointBalance: 10})
	store.PutUser(models.UserAccount{ID: 4, DisplayName: "d", PointBalance: 5})

	top, err := store.TopUsers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, int64(3), top[0].ID)
	require.Equal(t, int64(1), top[1].ID)

	top, err = store.TopUsers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, int64(4), top[2].ID)
}

func TestMemoryStats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDB()

	_, err := store.GetGlobalStats(ctx)
	require.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, store.IncrementStats(ctx, 2, testNow))
	require.NoError(t, store.IncrementStats(ctx, 3, testNow))
	require.NoError(t, store.SaveStatusCounters(ctx, 7, 4, testNow))

	stats, err := store.GetGlobalStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), stats.TotalPointsDistributed)
	require.Equal(t, int64(2), stats.WebClaimsTotal)
	require.Equal(t, int64(2), stats.AllTimeClaims)
	require.Equal(t, int64(7), stats.TotalUsers)
	require.Equal(t, int64(4), stats.ActiveToday)
}

func TestMemoryCounters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDB()
	dayStart := testNow.Truncate(24 * time.Hour)
	store.PutUser(models.UserAccount{ID: 1, TotalEarned: 10, LastActiveAt: dayStart})
	store.PutUser(models.UserAccount{ID: 2, TotalEarned: 15, LastActiveAt: dayStart.Add(-time.Second)})

	active, err := store.CountActiveSince(ctx, dayStart)
	require.NoError(t, err)
	require.Equal(t, int64(1), active)

	earned, err := store.SumTotalEarned(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(25), earned)

	require.NoError(t, store.InsertTransaction(ctx, models.TransactionRecord{UserID: 1, Type: models.TypeDailyClaim, Amount: 2}))
	require.NoError(t, store.InsertTransaction(ctx, models.TransactionRecord{UserID: 1, Type: "shop_purchase", Amount: -5}))
	claims, err := store.CountClaims(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims)
	require.Len(t, store.Transactions(), 2)
}
