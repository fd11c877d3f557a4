package inventory

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/mech-arsenal/internal/redis"
)

const (
	itemKeyPrefix    = "inventory:item:"
	ownerIndexPrefix = "inventory:owner:"

	// Error messages
	errRecordNil       = "record cannot be nil"
	errInstanceIDEmpty = "instance ID cannot be empty"
	errOwnerIDEmpty    = "owner ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis inventory repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed inventory repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func itemKey(id string) string { return itemKeyPrefix + id }

func ownerKey(owner string) string { return ownerIndexPrefix + owner }

func validateRecord(rec *Record) error {
	if rec == nil {
		return errors.InvalidArgument(errRecordNil)
	}
	vb := errors.NewValidationBuilder()
	if rec.InstanceID == "" {
		vb.RequiredField("instance_id")
	}
	if rec.OwnerID == "" {
		vb.RequiredField("owner_id")
	}
	if rec.PackKey == "" {
		vb.RequiredField("pack_key")
	}
	if rec.ItemID < 1 {
		vb.Field("item_id", "must be positive")
	}
	if !rec.Tier.IsValid() {
		vb.Field("tier", "is invalid")
	}
	if rec.Level < 0 {
		vb.Field("level", "must not be negative")
	}
	if rec.Power < 0 {
		vb.Field("power", "must not be negative")
	}
	return vb.Build()
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	rec := *input.Record
	now := r.clock.Now()
	rec.Version = 1
	rec.CreatedAt = now
	rec.UpdatedAt = now

	data, err := json.Marshal(&rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal inventory record")
	}

	// SETNX guards the id; the index is only touched once the key is ours
	ok, err := r.client.SetNX(ctx, itemKey(rec.InstanceID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create inventory record")
	}
	if !ok {
		return nil, errors.AlreadyExistsf("instance %s already exists", rec.InstanceID)
	}

	if err := r.client.SAdd(ctx, ownerKey(rec.OwnerID), rec.InstanceID).Err(); err != nil {
		r.client.Del(ctx, itemKey(rec.InstanceID))
		return nil, errors.Wrapf(err, "failed to index inventory record")
	}

	return &CreateOutput{Record: &rec}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}

	result, err := r.raw(ctx, input.InstanceID)
	if err != nil {
		return nil, err
	}

	rec, err := decodeRecord(result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal inventory record %s", input.InstanceID)
	}

	return &GetOutput{Record: rec}, nil
}

func (r *redisRepository) raw(ctx context.Context, instanceID string) (string, error) {
	result, err := r.client.Get(ctx, itemKey(instanceID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", errors.NotFoundf("instance %s not found", instanceID)
		}
		return "", errors.Wrapf(err, "failed to get inventory record")
	}
	return result, nil
}

func decodeRecord(raw string) (*Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	key := itemKey(input.Record.InstanceID)
	var rec Record

	// WATCH turns the read-compare-write into a check-and-set across processes
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return errors.NotFoundf("instance %s not found", input.Record.InstanceID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to get inventory record")
		}

		existing, err := decodeRecord(raw)
		if err != nil {
			return errors.Wrapf(err, "failed to unmarshal inventory record %s", input.Record.InstanceID)
		}
		if existing.Version != input.Record.Version {
			return versionConflict(input.Record.InstanceID, existing.Version, input.Record.Version)
		}

		rec = *existing
		rec.Tier = input.Record.Tier
		rec.Level = input.Record.Level
		rec.Power = input.Record.Power
		rec.Paint = input.Record.Paint
		rec.Version = existing.Version + 1
		rec.UpdatedAt = r.clock.Now()

		data, err := json.Marshal(&rec)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal inventory record")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
	if err == redis.TxFailedErr {
		return nil, versionConflict(input.Record.InstanceID, -1, input.Record.Version)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update inventory record")
	}

	return &UpdateOutput{Record: &rec}, nil
}

// versionConflict builds ErrVersionConflict for one record. A negative
// stored version means the record changed between read and write.
func versionConflict(instanceID string, stored, given int64) *errors.Error {
	err := errors.Newf(errors.CodeAborted, "instance %s was updated concurrently (read version %d)", instanceID, given)
	if stored >= 0 {
		err = errors.Newf(errors.CodeAborted, "instance %s is at version %d, update was based on %d", instanceID, stored, given)
	}
	return err.WithReason(ReasonVersionConflict).WithMeta("instance_id", instanceID)
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.InstanceID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}

	result, err := r.raw(ctx, input.InstanceID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, itemKey(input.InstanceID))
	if rec, err := decodeRecord(result); err == nil {
		pipe.SRem(ctx, ownerKey(rec.OwnerID), input.InstanceID)
	} else {
		slog.WarnContext(ctx, "deleting undecodable inventory record", "instance_id", input.InstanceID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete inventory record")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	indexKey := ownerKey(input.OwnerID)
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read inventory index for %s", input.OwnerID)
	}
	if len(ids) == 0 {
		return &ListByOwnerOutput{Records: []*Record{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load inventory for %s", input.OwnerID)
	}

	records := make([]*Record, 0, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			slog.WarnContext(ctx, "inventory record missing, cleaning up index",
				"instance_id", ids[i],
				"owner_id", input.OwnerID)
			r.client.SRem(ctx, indexKey, ids[i])
			continue
		}

		rec, err := decodeRecord(raw)
		if err != nil {
			slog.WarnContext(ctx, "skipping undecodable inventory record",
				"instance_id", ids[i],
				"owner_id", input.OwnerID,
				"error", err)
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].InstanceID < records[j].InstanceID
	})

	slog.DebugContext(ctx, "listed inventory",
		"owner_id", input.OwnerID,
		"count", len(records))

	return &ListByOwnerOutput{Records: records}, nil
}

func (r *redisRepository) Scan(ctx context.Context, input ScanInput) (*ScanOutput, error) {
	keys, cursor, err := r.client.Scan(ctx, input.Cursor, itemKeyPrefix+"*", input.Count).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan inventory")
	}

	out := &ScanOutput{Records: []*Record{}, Cursor: cursor}
	if len(keys) == 0 {
		return out, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load scanned inventory")
	}

	for i, v := range values {
		id := strings.TrimPrefix(keys[i], itemKeyPrefix)
		raw, ok := v.(string)
		if !ok {
			// deleted between SCAN and MGET
			continue
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			out.Corrupt = append(out.Corrupt, id)
			continue
		}
		out.Records = append(out.Records, rec)
	}

	return out, nil
}
