package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/pkg/clock"
	"github.com/KirkDiggler/mech-arsenal/internal/repositories/inventory"
	"github.com/KirkDiggler/mech-arsenal/internal/testutils"
)

const (
	testInstanceID = "inst_1"
	testOwnerID    = "pilot_7"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	clock   *clock.Fixed
	repo    inventory.Repository
	ctx     context.Context
	cleanup func()
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.clock = clock.NewFixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	repo, err := inventory.NewRedis(&inventory.RedisConfig{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func newRecord(id string) *inventory.Record {
	return &inventory.Record{
		InstanceID: id,
		OwnerID:    testOwnerID,
		PackKey:    "@Eneg",
		ItemID:     1,
		Tier:       stats.Legendary,
		Level:      0,
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidation() {
	_, err := inventory.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = inventory.NewRedis(&inventory.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	out, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: newRecord(testInstanceID)})
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), out.Record.CreatedAt)
	s.Equal(s.clock.Now(), out.Record.UpdatedAt)

	s.True(s.mr.Exists("inventory:item:inst_1"))
	members, err := s.mr.Members("inventory:owner:pilot_7")
	s.Require().NoError(err)
	s.Equal([]string{testInstanceID}, members)

	raw, err := s.mr.Get("inventory:item:inst_1")
	s.Require().NoError(err)
	s.Contains(raw, `"tier":"LEGENDARY"`)

	got, err := s.repo.Get(s.ctx, inventory.GetInput{InstanceID: testInstanceID})
	s.Require().NoError(err)
	s.Equal(out.Record.InstanceID, got.Record.InstanceID)
	s.Equal(stats.Legendary, got.Record.Tier)
	s.True(out.Record.CreatedAt.Equal(got.Record.CreatedAt))
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: newRecord(testInstanceID)})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, inventory.CreateInput{Record: newRecord(testInstanceID)})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	testCases := []struct {
		name   string
		record *inventory.Record
		field  string
	}{
		{name: "nil record", record: nil, field: "record"},
		{name: "missing id", record: &inventory.Record{OwnerID: "o", PackKey: "p", ItemID: 1, Tier: stats.Common}, field: "instance_id"},
		{name: "missing owner", record: &inventory.Record{InstanceID: "i", PackKey: "p", ItemID: 1, Tier: stats.Common}, field: "owner_id"},
		{name: "bad item id", record: &inventory.Record{InstanceID: "i", OwnerID: "o", PackKey: "p", Tier: stats.Common}, field: "item_id"},
		{name: "bad tier", record: &inventory.Record{InstanceID: "i", OwnerID: "o", PackKey: "p", ItemID: 1}, field: "tier"},
		{name: "negative level", record: &inventory.Record{InstanceID: "i", OwnerID: "o", PackKey: "p", ItemID: 1, Tier: stats.Common, Level: -1}, field: "level"},
		{name: "negative power", record: &inventory.Record{InstanceID: "i", OwnerID: "o", PackKey: "p", ItemID: 1, Tier: stats.Common, Power: -5}, field: "power"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: tc.record})
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, inventory.GetInput{InstanceID: "nope"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, inventory.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	created, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: newRecord(testInstanceID)})
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)
	change := newRecord(testInstanceID)
	change.Tier = stats.Mythical
	change.Level = 3
	change.Power = 640
	change.Paint = "crimson"
	change.OwnerID = "someone_else"
	change.Version = created.Record.Version

	out, err := s.repo.Update(s.ctx, inventory.UpdateInput{Record: change})
	s.Require().NoError(err)
	s.Equal(int64(1), created.Record.Version)
	s.Equal(int64(2), out.Record.Version)
	s.Equal(stats.Mythical, out.Record.Tier)
	s.Equal(3, out.Record.Level)
	s.Equal("crimson", out.Record.Paint)
	s.Equal(testOwnerID, out.Record.OwnerID, "owner is fixed at creation")
	s.True(created.Record.CreatedAt.Equal(out.Record.CreatedAt))
	s.True(out.Record.UpdatedAt.After(out.Record.CreatedAt))

	got, err := s.repo.Get(s.ctx, inventory.GetInput{InstanceID: testInstanceID})
	s.Require().NoError(err)
	s.Equal(3, got.Record.Level)
	s.Equal(640, got.Record.Power)
}

func (s *RedisRepositoryTestSuite) TestUpdateRejectsStaleVersion() {
	_, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: newRecord(testInstanceID)})
	s.Require().NoError(err)

	// two servers read the same record
	first, err := s.repo.Get(s.ctx, inventory.GetInput{InstanceID: testInstanceID})
	s.Require().NoError(err)
	second, err := s.repo.Get(s.ctx, inventory.GetInput{InstanceID: testInstanceID})
	s.Require().NoError(err)

	first.Record.Level = 5
	_, err = s.repo.Update(s.ctx, inventory.UpdateInput{Record: first.Record})
	s.Require().NoError(err)

	second.Record.Level = 2
	_, err = s.repo.Update(s.ctx, inventory.UpdateInput{Record: second.Record})
	s.Require().Error(err)
	s.True(errors.Is(err, inventory.ErrVersionConflict))
	s.Equal(errors.CodeAborted, errors.GetCode(err))

	got, err := s.repo.Get(s.ctx, inventory.GetInput{InstanceID: testInstanceID})
	s.Require().NoError(err)
	s.Equal(5, got.Record.Level, "the first write survives")
	s.Equal(int64(2), got.Record.Version)
}

func (s *RedisRepositoryTestSuite) TestUpdateNotFound() {
	_, err := s.repo.Update(s.ctx, inventory.UpdateInput{Record: newRecord("ghost")})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: newRecord(testInstanceID)})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, inventory.DeleteInput{InstanceID: testInstanceID})
	s.Require().NoError(err)

	s.False(s.mr.Exists("inventory:item:inst_1"))
	out, err := s.repo.ListByOwner(s.ctx, inventory.ListByOwnerInput{OwnerID: testOwnerID})
	s.Require().NoError(err)
	s.Empty(out.Records)

	_, err = s.repo.Delete(s.ctx, inventory.DeleteInput{InstanceID: testInstanceID})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListByOwner() {
	for _, id := range []string{"inst_b", "inst_a", "inst_c"} {
		_, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: newRecord(id)})
		s.Require().NoError(err)
		s.clock.Advance(time.Second)
	}
	other := newRecord("inst_other")
	other.OwnerID = "pilot_8"
	_, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: other})
	s.Require().NoError(err)

	out, err := s.repo.ListByOwner(s.ctx, inventory.ListByOwnerInput{OwnerID: testOwnerID})
	s.Require().NoError(err)

	var ids []string
	for _, rec := range out.Records {
		ids = append(ids, rec.InstanceID)
	}
	s.Equal([]string{"inst_b", "inst_a", "inst_c"}, ids, "oldest first")
}

func (s *RedisRepositoryTestSuite) TestListByOwnerCleansStaleIndex() {
	_, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: newRecord(testInstanceID)})
	s.Require().NoError(err)
	_, err = s.mr.SAdd("inventory:owner:pilot_7", "inst_gone")
	s.Require().NoError(err)

	out, err := s.repo.ListByOwner(s.ctx, inventory.ListByOwnerInput{OwnerID: testOwnerID})
	s.Require().NoError(err)
	s.Len(out.Records, 1)

	members, err := s.mr.Members("inventory:owner:pilot_7")
	s.Require().NoError(err)
	s.Equal([]string{testInstanceID}, members)
}

func (s *RedisRepositoryTestSuite) TestStorageFailure() {
	s.mr.SetError("server unavailable")
	defer s.mr.SetError("")

	_, err := s.repo.Get(s.ctx, inventory.GetInput{InstanceID: testInstanceID})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *RedisRepositoryTestSuite) TestCorruptRecords() {
	_, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: newRecord(testInstanceID)})
	s.Require().NoError(err)
	s.Require().NoError(s.mr.Set("inventory:item:inst_bad", "{not json"))
	_, err = s.mr.SAdd("inventory:owner:pilot_7", "inst_bad")
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, inventory.GetInput{InstanceID: "inst_bad"})
	s.True(errors.IsInternal(err))

	out, err := s.repo.ListByOwner(s.ctx, inventory.ListByOwnerInput{OwnerID: testOwnerID})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)
	s.Equal(testInstanceID, out.Records[0].InstanceID)

	_, err = s.repo.Delete(s.ctx, inventory.DeleteInput{InstanceID: "inst_bad"})
	s.Require().NoError(err)
	s.False(s.mr.Exists("inventory:item:inst_bad"))

	// the dangling index entry goes on the next listing
	_, err = s.repo.ListByOwner(s.ctx, inventory.ListByOwnerInput{OwnerID: testOwnerID})
	s.Require().NoError(err)
	members, err := s.mr.Members("inventory:owner:pilot_7")
	s.Require().NoError(err)
	s.Equal([]string{testInstanceID}, members)
}

func (s *RedisRepositoryTestSuite) TestScan() {
	want := map[string]bool{}
	for i := 0; i < 25; i++ {
		rec := newRecord(fmt.Sprintf("inst_%02d", i))
		if i%2 == 1 {
			rec.OwnerID = "pilot_8"
		}
		_, err := s.repo.Create(s.ctx, inventory.CreateInput{Record: rec})
		s.Require().NoError(err)
		want[rec.InstanceID] = true
	}
	s.Require().NoError(s.mr.Set("inventory:item:inst_bad", "[]x"))
	s.Require().NoError(s.mr.Set("unrelated:key", "v"))

	got := map[string]bool{}
	var corrupt []string
	var cursor uint64
	for {
		out, err := s.repo.Scan(s.ctx, inventory.ScanInput{Cursor: cursor, Count: 10})
		s.Require().NoError(err)
		for _, rec := range out.Records {
			got[rec.InstanceID] = true
		}
		corrupt = append(corrupt, out.Corrupt...)
		cursor = out.Cursor
		if cursor == 0 {
			break
		}
	}

	s.Equal(want, got)
	s.Equal([]string{"inst_bad"}, corrupt)
}

func (s *RedisRepositoryTestSuite) TestScanEmpty() {
	out, err := s.repo.Scan(s.ctx, inventory.ScanInput{})
	s.Require().NoError(err)
	s.Empty(out.Records)
	s.Empty(out.Corrupt)
	s.Zero(out.Cursor)
}
