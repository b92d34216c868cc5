package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Layr-Labs/merkle-accumulator-go/pkg/store"
)

// Key prefixes for namespacing in Redis
const (
	keyPrefixCommitment  = "acc:commitment:"
	keySchemaVersion     = "acc:metadata:schema_version"
	currentSchemaVersion = "v1"

	// Key set for listing operations (Redis doesn't support prefix iteration natively)
	keySetCommitments = "acc:commitments:index"
)

// RedisStore is a commitment store backed by Redis, suitable for
// cloud-native deployments where several publishers share one record set.
type RedisStore struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string // Custom prefix for all keys
	mu        sync.RWMutex
	closed    bool
}

var _ store.CommitmentStore = (*RedisStore)(nil)

// RedisConfig holds the configuration for connecting to Redis
type RedisConfig struct {
	// Address is the Redis server address (host:port)
	Address string
	// Password is the optional Redis password
	Password string
	// DB is the Redis database number (0-15)
	DB int
	// KeyPrefix is an optional custom prefix for all keys (for multi-tenant
	// setups). If set, it is prepended to every key, e.g. "myapp:" results in
	// keys like "myapp:acc:commitment:7". If empty, keys use the default
	// "acc:" prefix only.
	KeyPrefix string
}

// NewRedisStore creates a new Redis-backed commitment store.
func NewRedisStore(cfg *RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}

	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	rs := &RedisStore{
		client:    client,
		logger:    logger,
		keyPrefix: cfg.KeyPrefix,
	}

	if err := rs.initSchema(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Sugar().Infow("Redis commitment store initialized", "address", cfg.Address, "db", cfg.DB)

	return rs, nil
}

// prefixKey adds the custom key prefix (if configured) to a key
func (r *RedisStore) prefixKey(key string) string {
	if r.keyPrefix == "" {
		return key
	}
	return r.keyPrefix + key
}

// initSchema initializes or validates the schema version
func (r *RedisStore) initSchema(ctx context.Context) error {
	schemaKey := r.prefixKey(keySchemaVersion)

	existingVersion, err := r.client.Get(ctx, schemaKey).Result()
	if err == redis.Nil {
		return r.client.Set(ctx, schemaKey, currentSchemaVersion, 0).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if existingVersion != currentSchemaVersion {
		return fmt.Errorf("unsupported schema version: %s (expected: %s)", existingVersion, currentSchemaVersion)
	}

	return nil
}

// SaveCommitment persists a commitment record
func (r *RedisStore) SaveCommitment(record *store.Record) error {
	if record == nil {
		return fmt.Errorf("cannot save nil record")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return fmt.Errorf("store is closed")
	}

	ctx := context.Background()

	data, err := store.MarshalRecord(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	// Store record and index entry atomically via a pipeline
	key := r.prefixKey(commitmentKey(record.StorageID))
	indexKey := r.prefixKey(keySetCommitments)
	pipe := r.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, indexKey, record.StorageID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// LoadCommitment retrieves a commitment record by storage id
func (r *RedisStore) LoadCommitment(storageID uint32) (*store.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, fmt.Errorf("store is closed")
	}

	ctx := context.Background()
	key := r.prefixKey(commitmentKey(storageID))

	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	return store.UnmarshalRecord(data)
}

// ListCommitments returns all records sorted by storage id
func (r *RedisStore) ListCommitments() ([]*store.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, fmt.Errorf("store is closed")
	}

	ctx := context.Background()
	indexKey := r.prefixKey(keySetCommitments)

	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read commitment index: %w", err)
	}

	records := make([]*store.Record, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			r.logger.Sugar().Warnw("Invalid commitment index entry, skipping", "entry", idStr)
			continue
		}

		data, err := r.client.Get(ctx, r.prefixKey(commitmentKey(uint32(id)))).Bytes()
		if err == redis.Nil {
			continue // Index entry without record; skip
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load record %d: %w", id, err)
		}

		record, err := store.UnmarshalRecord(data)
		if err != nil {
			r.logger.Sugar().Warnw("Failed to unmarshal record, skipping", "storageId", id, "error", err)
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StorageID < records[j].StorageID
	})

	return records, nil
}

// DeleteCommitment removes a record and its index entry. Idempotent.
func (r *RedisStore) DeleteCommitment(storageID uint32) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return fmt.Errorf("store is closed")
	}

	ctx := context.Background()

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.prefixKey(commitmentKey(storageID)))
	pipe.SRem(ctx, r.prefixKey(keySetCommitments), storageID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return nil
}

// Close shuts down the Redis client. Idempotent.
func (r *RedisStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}

// HealthCheck pings the Redis server
func (r *RedisStore) HealthCheck() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return fmt.Errorf("store is closed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// commitmentKey builds the namespaced storage key for a record
func commitmentKey(storageID uint32) string {
	return fmt.Sprintf("%s%d", keyPrefixCommitment, storageID)
}
