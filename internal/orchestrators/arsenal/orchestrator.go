// Package arsenal orchestrates item previews and owned inventory on top of
// the progression engine
package arsenal

//go:generate mockgen -destination=mock/mock_service.go -package=arsenalmock github.com/KirkDiggler/mech-arsenal/internal/orchestrators/arsenal Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/items"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/metrics"
	"github.com/KirkDiggler/mech-arsenal/internal/pack"
	"github.com/KirkDiggler/mech-arsenal/internal/pkg/idgen"
	"github.com/KirkDiggler/mech-arsenal/internal/progression"
	"github.com/KirkDiggler/mech-arsenal/internal/repositories/inventory"
)

// ReasonStaleRecord marks stored state that no longer fits its pack item
const ReasonStaleRecord = "STALE_RECORD"

// Service defines the arsenal operations
type Service interface {
	// Definitions
	GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error)
	PreviewStats(ctx context.Context, input *PreviewStatsInput) (*PreviewStatsOutput, error)

	// Inventory
	AcquireItem(ctx context.Context, input *AcquireItemInput) (*AcquireItemOutput, error)
	GetInstance(ctx context.Context, input *GetInstanceInput) (*GetInstanceOutput, error)
	ListInventory(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error)
	LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)
	AddPower(ctx context.Context, input *AddPowerInput) (*AddPowerOutput, error)
	Transform(ctx context.Context, input *TransformInput) (*TransformOutput, error)
	PaintInstance(ctx context.Context, input *PaintInstanceInput) (*PaintInstanceOutput, error)
	DeleteInstance(ctx context.Context, input *DeleteInstanceInput) (*DeleteInstanceOutput, error)

	// Loadouts
	SummarizeLoadout(ctx context.Context, input *SummarizeLoadoutInput) (*SummarizeLoadoutOutput, error)

	// Maintenance
	AuditInventory(ctx context.Context, input *AuditInventoryInput) (*AuditInventoryOutput, error)
}

// Config holds the dependencies for the arsenal orchestrator
type Config struct {
	Packs         *pack.Registry
	InventoryRepo inventory.Repository
	IDGenerator   idgen.Generator
	EventBus      events.EventBus

	// Optional
	Metrics          *metrics.Metrics
	PreviewCacheSize int
	PreviewCacheTTL  time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Packs == nil {
		vb.RequiredField("Packs")
	}
	if c.InventoryRepo == nil {
		vb.RequiredField("InventoryRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.PreviewCacheSize < 0 {
		vb.Field("PreviewCacheSize", "must not be negative")
	}
	if c.PreviewCacheTTL < 0 {
		vb.Field("PreviewCacheTTL", "must not be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	packs     *pack.Registry
	inventory inventory.Repository
	idGen     idgen.Generator
	eventBus  events.EventBus
	metrics   *metrics.Metrics
	previews  *previewCache
	locks     *instanceLocks
}

// NewOrchestrator creates a new arsenal orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	size := cfg.PreviewCacheSize
	if size == 0 {
		size = DefaultPreviewCacheSize
	}
	ttl := cfg.PreviewCacheTTL
	if ttl == 0 {
		ttl = DefaultPreviewCacheTTL
	}

	return &orchestrator{
		packs:     cfg.Packs,
		inventory: cfg.InventoryRepo,
		idGen:     cfg.IDGenerator,
		eventBus:  cfg.EventBus,
		metrics:   cfg.Metrics,
		previews:  newPreviewCache(size, ttl),
		locks:     newInstanceLocks(),
	}, nil
}

func (o *orchestrator) observe(op string, start time.Time, err *error) {
	o.metrics.ObserveOperation(op, start, *err)
}

func (o *orchestrator) definition(packKey string, itemID int) (*progression.Definition, error) {
	vb := errors.NewValidationBuilder()
	if packKey == "" {
		vb.RequiredField("pack_key")
	}
	if itemID < 1 {
		vb.Field("item_id", "must be positive")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	p, err := o.packs.Get(packKey)
	if err != nil {
		return nil, err
	}
	return p.Get(itemID)
}

func (o *orchestrator) GetItem(ctx context.Context, input *GetItemInput) (out *GetItemOutput, err error) {
	defer o.observe(metrics.OpGetItem, time.Now(), &err)

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	def, err := o.definition(input.PackKey, input.ItemID)
	if err != nil {
		return nil, err
	}

	view, err := itemView(def)
	if err != nil {
		return nil, err
	}
	return &GetItemOutput{Item: view}, nil
}

func (o *orchestrator) PreviewStats(ctx context.Context, input *PreviewStatsInput) (out *PreviewStatsOutput, err error) {
	defer o.observe(metrics.OpPreviewStats, time.Now(), &err)

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	def, err := o.definition(input.PackKey, input.ItemID)
	if err != nil {
		return nil, err
	}

	tier, level := input.Tier, input.Level
	switch {
	case input.Maxed:
		final := def.FinalStage()
		tier, level = final.Tier(), final.MaxLevel()
	case tier == stats.TierUnspecified:
		tier = def.Head().Tier()
	}

	key := previewKey(def.PackKey(), def.ID(), tier, level)
	if cached, ok := o.previews.get(key); ok {
		o.metrics.ObservePreviewCache(true)
		return &PreviewStatsOutput{Tier: tier, Level: level, Stats: cached}, nil
	}
	o.metrics.ObservePreviewCache(false)

	resolved, err := def.StatsAt(tier, level)
	if err != nil {
		return nil, err
	}
	o.previews.add(key, resolved)

	return &PreviewStatsOutput{Tier: tier, Level: level, Stats: resolved}, nil
}

func (o *orchestrator) AcquireItem(ctx context.Context, input *AcquireItemInput) (out *AcquireItemOutput, err error) {
	defer o.observe(metrics.OpAcquireItem, time.Now(), &err)

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner_id is required")
	}

	def, err := o.definition(input.PackKey, input.ItemID)
	if err != nil {
		return nil, err
	}

	inst := progression.NewInstance(def)
	if input.Maxed {
		inst = progression.MaxedFrom(def)
	}
	inst.SetPaint(input.Paint)

	created, err := o.inventory.Create(ctx, inventory.CreateInput{Record: &inventory.Record{
		InstanceID: o.idGen.Generate(),
		OwnerID:    input.OwnerID,
		PackKey:    def.PackKey(),
		ItemID:     def.ID(),
		Tier:       inst.Tier(),
		Level:      inst.Level(),
		Power:      inst.Power(),
		Paint:      inst.Paint(),
	}})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store %s", def.UID())
	}

	slog.Info("item acquired",
		"instance_id", created.Record.InstanceID,
		"owner_id", input.OwnerID,
		"item", def.UID(),
		"tier", inst.Tier().String(),
		"level", inst.Level())

	return &AcquireItemOutput{Instance: instanceView(created.Record, inst)}, nil
}

func (o *orchestrator) GetInstance(ctx context.Context, input *GetInstanceInput) (out *GetInstanceOutput, err error) {
	defer o.observe(metrics.OpGetInstance, time.Now(), &err)

	if input == nil || input.InstanceID == "" {
		return nil, errors.InvalidArgument("instance_id is required")
	}

	rec, inst, err := o.load(ctx, input.InstanceID)
	if err != nil {
		return nil, err
	}
	return &GetInstanceOutput{Instance: instanceView(rec, inst)}, nil
}

func (o *orchestrator) ListInventory(ctx context.Context, input *ListInventoryInput) (out *ListInventoryOutput, err error) {
	defer o.observe(metrics.OpListInventory, time.Now(), &err)

	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner_id is required")
	}

	listed, err := o.inventory.ListByOwner(ctx, inventory.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}

	views := make([]*InstanceView, 0, len(listed.Records))
	for _, rec := range listed.Records {
		inst, err := o.restore(rec)
		if err != nil {
			// One unreadable slot should not hide the rest of the inventory
			slog.WarnContext(ctx, "skipping unreadable inventory record",
				"instance_id", rec.InstanceID,
				"item", rec.PackKey,
				"item_id", rec.ItemID,
				"error", err.Error())
			continue
		}
		views = append(views, instanceView(rec, inst))
	}

	return &ListInventoryOutput{Instances: views}, nil
}

func (o *orchestrator) LevelUp(ctx context.Context, input *LevelUpInput) (out *LevelUpOutput, err error) {
	defer o.observe(metrics.OpLevelUp, time.Now(), &err)

	if input == nil || input.InstanceID == "" {
		return nil, errors.InvalidArgument("instance_id is required")
	}

	unlock := o.locks.lock(input.InstanceID)
	defer unlock()

	rec, inst, err := o.load(ctx, input.InstanceID)
	if err != nil {
		return nil, err
	}

	change := o.changeFrom(rec, inst)
	if err := inst.LevelUp(input.Levels); err != nil {
		return nil, err
	}

	updated, err := o.save(ctx, rec, inst)
	if err != nil {
		return nil, err
	}

	change.ToTier, change.ToLevel = inst.Tier(), inst.Level()
	o.publish(ctx, items.EventTypeLeveled, change)

	slog.Info("item leveled",
		"instance_id", rec.InstanceID,
		"item", change.ItemUID,
		"from_level", change.FromLevel,
		"to_level", change.ToLevel)

	return &LevelUpOutput{
		Instance:      instanceView(updated, inst),
		PreviousLevel: change.FromLevel,
	}, nil
}

// AddPower feeds power into an instance. The leveled event is published
// only when the level moved.
func (o *orchestrator) AddPower(ctx context.Context, input *AddPowerInput) (out *AddPowerOutput, err error) {
	defer o.observe(metrics.OpAddPower, time.Now(), &err)

	if input == nil || input.InstanceID == "" {
		return nil, errors.InvalidArgument("instance_id is required")
	}

	unlock := o.locks.lock(input.InstanceID)
	defer unlock()

	rec, inst, err := o.load(ctx, input.InstanceID)
	if err != nil {
		return nil, err
	}

	change := o.changeFrom(rec, inst)
	overflow, err := inst.AddPower(input.Power)
	if err != nil {
		return nil, err
	}

	updated, err := o.save(ctx, rec, inst)
	if err != nil {
		return nil, err
	}

	change.ToTier, change.ToLevel = inst.Tier(), inst.Level()
	if change.ToLevel != change.FromLevel {
		o.publish(ctx, items.EventTypeLeveled, change)
	}

	slog.Info("item powered",
		"instance_id", rec.InstanceID,
		"item", change.ItemUID,
		"power", inst.Power(),
		"overflow", overflow,
		"from_level", change.FromLevel,
		"to_level", change.ToLevel)

	return &AddPowerOutput{
		Instance:      instanceView(updated, inst),
		PreviousLevel: change.FromLevel,
		Overflow:      overflow,
	}, nil
}

func (o *orchestrator) Transform(ctx context.Context, input *TransformInput) (out *TransformOutput, err error) {
	defer o.observe(metrics.OpTransform, time.Now(), &err)

	if input == nil || input.InstanceID == "" {
		return nil, errors.InvalidArgument("instance_id is required")
	}

	unlock := o.locks.lock(input.InstanceID)
	defer unlock()

	rec, inst, err := o.load(ctx, input.InstanceID)
	if err != nil {
		return nil, err
	}

	change := o.changeFrom(rec, inst)
	if err := inst.Transform(); err != nil {
		return nil, err
	}

	updated, err := o.save(ctx, rec, inst)
	if err != nil {
		return nil, err
	}

	change.ToTier, change.ToLevel = inst.Tier(), inst.Level()
	o.publish(ctx, items.EventTypeTransformed, change)

	slog.Info("item transformed",
		"instance_id", rec.InstanceID,
		"item", change.ItemUID,
		"from_tier", change.FromTier.String(),
		"to_tier", change.ToTier.String())

	return &TransformOutput{
		Instance:     instanceView(updated, inst),
		PreviousTier: change.FromTier,
	}, nil
}

func (o *orchestrator) PaintInstance(ctx context.Context, input *PaintInstanceInput) (out *PaintInstanceOutput, err error) {
	defer o.observe(metrics.OpPaintInstance, time.Now(), &err)

	if input == nil || input.InstanceID == "" {
		return nil, errors.InvalidArgument("instance_id is required")
	}

	unlock := o.locks.lock(input.InstanceID)
	defer unlock()

	rec, inst, err := o.load(ctx, input.InstanceID)
	if err != nil {
		return nil, err
	}

	inst.SetPaint(input.Paint)
	updated, err := o.save(ctx, rec, inst)
	if err != nil {
		return nil, err
	}

	return &PaintInstanceOutput{Instance: instanceView(updated, inst)}, nil
}

func (o *orchestrator) DeleteInstance(ctx context.Context, input *DeleteInstanceInput) (out *DeleteInstanceOutput, err error) {
	defer o.observe(metrics.OpDeleteInstance, time.Now(), &err)

	if input == nil || input.InstanceID == "" {
		return nil, errors.InvalidArgument("instance_id is required")
	}

	unlock := o.locks.lock(input.InstanceID)
	defer unlock()

	if _, err := o.inventory.Delete(ctx, inventory.DeleteInput{InstanceID: input.InstanceID}); err != nil {
		return nil, err
	}

	slog.Info("item deleted", "instance_id", input.InstanceID)
	return &DeleteInstanceOutput{}, nil
}

// load reads a record and rebuilds its engine instance
func (o *orchestrator) load(ctx context.Context, instanceID string) (*inventory.Record, *progression.Instance, error) {
	got, err := o.inventory.Get(ctx, inventory.GetInput{InstanceID: instanceID})
	if err != nil {
		return nil, nil, err
	}

	inst, err := o.restore(got.Record)
	if err != nil {
		return nil, nil, err
	}
	return got.Record, inst, nil
}

func (o *orchestrator) restore(rec *inventory.Record) (*progression.Instance, error) {
	def, err := o.definition(rec.PackKey, rec.ItemID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition,
			"instance "+rec.InstanceID+" refers to an unknown item").
			WithReason(ReasonStaleRecord)
	}

	inst, err := progression.RestoreInstance(def, rec.Tier, rec.Level, rec.Paint)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition,
			"instance "+rec.InstanceID+" does not fit "+def.UID()).
			WithReason(ReasonStaleRecord)
	}
	if err := inst.RestorePower(rec.Power); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition,
			"instance "+rec.InstanceID+" power does not fit "+def.UID()).
			WithReason(ReasonStaleRecord)
	}
	return inst, nil
}

// save persists the instance state; the engine state is discarded on failure
func (o *orchestrator) save(ctx context.Context, rec *inventory.Record, inst *progression.Instance) (*inventory.Record, error) {
	next := *rec
	next.Tier = inst.Tier()
	next.Level = inst.Level()
	next.Power = inst.Power()
	next.Paint = inst.Paint()

	updated, err := o.inventory.Update(ctx, inventory.UpdateInput{Record: &next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save instance %s", rec.InstanceID)
	}
	return updated.Record, nil
}

func (o *orchestrator) changeFrom(rec *inventory.Record, inst *progression.Instance) *items.Change {
	def := inst.Definition()
	return &items.Change{
		InstanceID: rec.InstanceID,
		OwnerID:    rec.OwnerID,
		ItemUID:    def.UID(),
		Name:       def.Name(),
		FromTier:   inst.Tier(),
		FromLevel:  inst.Level(),
	}
}

// publish announces a change. The mutation is already stored, so a failing
// subscriber is logged and not returned.
func (o *orchestrator) publish(ctx context.Context, eventType string, change *items.Change) {
	if err := o.eventBus.Publish(ctx, events.NewGameEvent(eventType, change, nil)); err != nil {
		slog.WarnContext(ctx, "failed to publish item event",
			"type", eventType,
			"instance_id", change.InstanceID,
			"error", err.Error())
	}
}

func itemView(def *progression.Definition) (*ItemView, error) {
	view := &ItemView{
		UID:     def.UID(),
		PackKey: def.PackKey(),
		ID:      def.ID(),
		Name:    def.Name(),
		Type:    def.Type(),
		Element: def.Element(),
		Tags:    def.Tags(),
	}

	for _, stage := range def.Stages() {
		start, err := stage.Resolve(0)
		if err != nil {
			return nil, err
		}
		end, err := stage.Resolve(stage.MaxLevel())
		if err != nil {
			return nil, err
		}
		view.Stages = append(view.Stages, &StageView{
			Tier:           stage.Tier(),
			MaxLevel:       stage.MaxLevel(),
			MaxPower:       stage.MaxPower(),
			Terminal:       stage.IsTerminal(),
			OverrideLevels: stage.OverrideLevels(),
			Start:          start,
			Max:            end,
		})
	}
	return view, nil
}

func instanceView(rec *inventory.Record, inst *progression.Instance) *InstanceView {
	def := inst.Definition()
	return &InstanceView{
		InstanceID:   rec.InstanceID,
		OwnerID:      rec.OwnerID,
		PackKey:      def.PackKey(),
		ItemID:       def.ID(),
		ItemUID:      def.UID(),
		Name:         def.Name(),
		Tier:         inst.Tier(),
		Level:        inst.Level(),
		MaxLevel:     inst.Stage().MaxLevel(),
		Power:        inst.Power(),
		MaxPower:     inst.MaxPower(),
		DisplayLevel: inst.DisplayLevel(),
		Paint:        inst.Paint(),
		IsMaxed:      inst.IsMaxed(),
		CanTransform: inst.CanTransform(),
		Stats:        inst.CurrentStats(),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}
