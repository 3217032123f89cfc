package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	models "github.com/glkeru/loyalty/daily/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

const (
	collUsers        = "users"
	collTransactions = "transactions"
	collStatistics   = "statistics"
	collConfig       = "config"
)

// Хранилище пользователей в MongoDB (та же база, что у Discord бота)
type UserDB struct {
	db    *mongo.Database
	users *mongo.Collection
	tnx   *mongo.Collection
	stats *mongo.Collection
	conf  *mongo.Collection
}

func NewUserDB(ctx context.Context, uri string, database string, pool uint64) (*UserDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(pool).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	u := NewUserDBFromDatabase(client.Database(database))
	err = u.EnsureIndexes(ctx)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return u, nil
}

func NewUserDBFromDatabase(db *mongo.Database) *UserDB {
	return &UserDB{
		db:    db,
		users: db.Collection(collUsers),
		tnx:   db.Collection(collTransactions),
		stats: db.Collection(collStatistics),
		conf:  db.Collection(collConfig),
	}
}

// Уникальный user_id: параллельные upsert не создадут два документа
func (u *UserDB) EnsureIndexes(ctx context.Context) error {
	_, err := u.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "points", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", classify(err))
	}
	return nil
}

func (u *UserDB) Close(ctx context.Context) error {
	return u.db.Client().Disconnect(ctx)
}

func (u *UserDB) Ping(ctx context.Context) error {
	return classify(u.db.Client().Ping(ctx, readpref.Primary()))
}

func (u *UserDB) GetBotConfig(ctx context.Context) (cfg models.BotConfig, err error) {
	err = u.conf.FindOne(ctx, bson.M{"_id": models.BotConfigID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return cfg, models.ErrNotFound
	}
	if err != nil {
		return cfg, fmt.Errorf("get bot config: %w", classify(err))
	}
	return cfg, nil
}

// Поиск или создание аккаунта
func (u *UserDB) EnsureUser(ctx context.Context, userID int64, displayName string, now time.Time) (user models.UserAccount, err error) {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"username":          displayName,
			"points":            0,
			"total_earned":      0,
			"total_spent":       0,
			"trust_score":       50,
			"account_created":   now,
			"first_seen":        now,
			"last_active":       now,
			"daily_claimed":     nil,
			"last_claim":        nil,
			"daily_claims":      bson.M{},
			"weekly_claims":     0,
			"total_claims":      0,
			"blacklisted":       false,
			"blacklist_expires": nil,
			"created_via":       models.SourceWebsite,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err = u.users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if mongo.IsDuplicateKeyError(err) {
		// параллельный upsert уже создал документ
		err = u.users.FindOne(ctx, filter).Decode(&user)
	}
	if err != nil {
		return user, fmt.Errorf("ensure user %d: %w", userID, classify(err))
	}

	// имя ставим только если бот его еще не заполнил
	if displayName != "" && user.DisplayName == "" {
		_, err = u.users.UpdateOne(ctx,
			bson.M{"user_id": userID, "username": bson.M{"$in": bson.A{"", nil}}},
			bson.M{"$set": bson.M{"username": displayName}},
		)
		if err != nil {
			return user, fmt.Errorf("set username %d: %w", userID, classify(err))
		}
		user.DisplayName = displayName
	}
	return user, nil
}

func (u *UserDB) GetUser(ctx context.Context, userID int64) (user models.UserAccount, err error) {
	err = u.users.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, models.ErrNotFound
	}
	if err != nil {
		return user, fmt.Errorf("get user %d: %w", userID, classify(err))
	}
	return user, nil
}

// Снятие истекшей блокировки
func (u *UserDB) ClearExpiredBlacklist(ctx context.Context, userID int64, now time.Time) error {
	filter := bson.M{
		"user_id":           userID,
		"blacklisted":       true,
		"blacklist_expires": bson.M{"$ne": nil, "$lte": now},
	}
	update := bson.M{"$set": bson.M{"blacklisted": false, "blacklist_expires": nil}}
	_, err := u.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("clear blacklist %d: %w", userID, classify(err))
	}
	return nil
}

// Атомарное начисление: проверка кулдауна и запись в одном findAndModify
func (u *UserDB) ClaimDaily(ctx context.Context, userID int64, reward int64, now time.Time, cutoff time.Time) (user models.UserAccount, ok bool, err error) {
	filter := bson.M{
		"user_id":     userID,
		"blacklisted": bson.M{"$ne": true},
		"$or": bson.A{
			bson.M{"daily_claimed": nil},
			bson.M{"daily_claimed": bson.M{"$lte": cutoff}},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"daily_claimed": now,
			"last_claim":    now,
			"last_active":   now,
			"daily_claims." + now.UTC().Format("2006-01-02"): now,
		},
		"$inc": bson.M{
			"points":        reward,
			"total_earned":  reward,
			"total_claims":  1,
			"weekly_claims": 1,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = u.users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, false, nil
	}
	if err != nil {
		return user, false, fmt.Errorf("claim daily %d: %w", userID, classify(err))
	}
	return user, true, nil
}

func (u *UserDB) InsertTransaction(ctx context.Context, tnx models.TransactionRecord) error {
	_, err := u.tnx.InsertOne(ctx, tnx)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", classify(err))
	}
	return nil
}

func (u *UserDB) IncrementStats(ctx context.Context, points int64, now time.Time) error {
	update := bson.M{
		"$inc": bson.M{
			"total_points_distributed": points,
			"web_claims_total":         1,
			"all_time_claims":          1,
		},
		"$set": bson.M{"last_updated": now},
	}
	_, err := u.stats.UpdateOne(ctx, bson.M{"_id": models.GlobalStatsID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("increment stats: %w", classify(err))
	}
	return nil
}

func (u *UserDB) CountUsers(ctx context.Context) (int64, error) {
	n, err := u.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", classify(err))
	}
	return n, nil
}

func (u *UserDB) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	n, err := u.users.CountDocuments(ctx, bson.M{"last_active": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("count active: %w", classify(err))
	}
	return n, nil
}

func (u *UserDB) SumTotalEarned(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_earned"}}},
		}}},
	}
	cursor, err := u.users.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum total earned: %w", classify(err))
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total int64 `bson:"total"`
	}
	err = cursor.All(ctx, &result)
	if err != nil {
		return 0, fmt.Errorf("sum total earned: %w", classify(err))
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

func (u *UserDB) CountClaims(ctx context.Context) (int64, error) {
	n, err := u.tnx.CountDocuments(ctx, bson.M{"type": models.TypeDailyClaim})
	if err != nil {
		return 0, fmt.Errorf("count claims: %w", classify(err))
	}
	return n, nil
}

// Лидерборд без заблокированных
func (u *UserDB) TopUsers(ctx context.Context, limit int) ([]models.UserAccount, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"user_id": 1, "username": 1, "points": 1})
	cursor, err := u.users.Find(ctx, bson.M{"blacklisted": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("top users: %w", classify(err))
	}
	defer cursor.Close(ctx)

	users := make([]models.UserAccount, 0, limit)
	for cursor.Next(ctx) {
		var user models.UserAccount
		err := cursor.Decode(&user)
		if err != nil {
			return nil, fmt.Errorf("top users: %w", err)
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("top users: %w", classify(err))
	}
	return users, nil
}

func (u *UserDB) GetGlobalStats(ctx context.Context) (stats models.GlobalStatistics, err error) {
	err = u.stats.FindOne(ctx, bson.M{"_id": models.GlobalStatsID}).Decode(&stats)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return stats, models.ErrNotFound
	}
	if err != nil {
		return stats, fmt.Errorf("get global stats: %w", classify(err))
	}
	return stats, nil
}

func (u *UserDB) SaveStatusCounters(ctx context.Context, users int64, active int64, now time.Time) error {
	update := bson.M{"$set": bson.M{
		"total_users":  users,
		"active_today": active,
		"last_updated": now,
	}}
	_, err := u.stats.UpdateOne(ctx, bson.M{"_id": models.GlobalStatsID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save status counters: %w", classify(err))
	}
	return nil
}

// Недоступность MongoDB помечается models.ErrUnavailable
func classify(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, topology.ErrServerSelectionTimeout) {
		return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	return err
}
