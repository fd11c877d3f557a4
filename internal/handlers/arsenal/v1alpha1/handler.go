// Package v1alpha1 exposes the arsenal orchestrator over gRPC
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/mech-arsenal/internal/buffs"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/orchestrators/arsenal"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	ArsenalService arsenal.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.ArsenalService == nil {
		return errors.InvalidArgument("arsenal service is required")
	}
	return nil
}

// Handler implements ArsenalServiceServer
type Handler struct {
	arsenalService arsenal.Service
}

var _ ArsenalServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		arsenalService: cfg.ArsenalService,
	}, nil
}

// GetItem returns a definition and its stage chain.
// Request: pack_key, item_id
func (h *Handler) GetItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.GetItemInput{
		PackKey: r.str("pack_key", true),
		ItemID:  r.integer("item_id", true),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.GetItem(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]interface{}{"item": itemDoc(output.Item)})
}

// PreviewStats resolves stats without an instance.
// Request: pack_key, item_id, tier, level, maxed
func (h *Handler) PreviewStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.PreviewStatsInput{
		PackKey: r.str("pack_key", true),
		ItemID:  r.integer("item_id", true),
		Tier:    r.tier("tier"),
		Level:   r.integer("level", false),
		Maxed:   r.boolean("maxed"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.PreviewStats(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]interface{}{
		"tier":  output.Tier.String(),
		"level": output.Level,
		"stats": statsDoc(output.Stats),
	})
}

// AcquireItem adds an item to an owner's inventory.
// Request: owner_id, pack_key, item_id, maxed, paint
func (h *Handler) AcquireItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.AcquireItemInput{
		OwnerID: r.str("owner_id", true),
		PackKey: r.str("pack_key", true),
		ItemID:  r.integer("item_id", true),
		Maxed:   r.boolean("maxed"),
		Paint:   r.str("paint", false),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.AcquireItem(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]interface{}{"instance": instanceDoc(output.Instance)})
}

// GetInstance returns one owned instance.
// Request: instance_id
func (h *Handler) GetInstance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.GetInstanceInput{InstanceID: r.str("instance_id", true)}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.GetInstance(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]interface{}{"instance": instanceDoc(output.Instance)})
}

// ListInventory returns an owner's instances.
// Request: owner_id
func (h *Handler) ListInventory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.ListInventoryInput{OwnerID: r.str("owner_id", true)}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.ListInventory(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	instances := make([]interface{}, 0, len(output.Instances))
	for _, inst := range output.Instances {
		instances = append(instances, instanceDoc(inst))
	}
	return toStruct(map[string]interface{}{"instances": instances})
}

// LevelUp invests levels into an instance.
// Request: instance_id, levels (defaults to 1)
func (h *Handler) LevelUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.LevelUpInput{
		InstanceID: r.str("instance_id", true),
		Levels:     1,
	}
	if _, ok := req.GetFields()["levels"]; ok {
		input.Levels = r.integer("levels", false)
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.LevelUp(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]interface{}{
		"instance":       instanceDoc(output.Instance),
		"previous_level": output.PreviousLevel,
	})
}

// AddPower feeds power into an instance on a stage with a power curve.
// Request: instance_id, power
func (h *Handler) AddPower(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.AddPowerInput{
		InstanceID: r.str("instance_id", true),
		Power:      r.integer("power", true),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.AddPower(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]interface{}{
		"instance":       instanceDoc(output.Instance),
		"previous_level": output.PreviousLevel,
		"overflow":       output.Overflow,
	})
}

// SummarizeLoadout totals the instances mounted on one mech.
// Request: owner_id, instance_ids, buffs (category to level) or max_buffs
func (h *Handler) SummarizeLoadout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.SummarizeLoadoutInput{
		OwnerID:     r.str("owner_id", true),
		InstanceIDs: r.strList("instance_ids", true),
		Buffs:       r.buffLevels("buffs"),
	}
	if r.boolean("max_buffs") {
		input.Buffs = buffs.Max()
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.SummarizeLoadout(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	instances := make([]interface{}, 0, len(output.Instances))
	for _, inst := range output.Instances {
		instances = append(instances, instanceDoc(inst))
	}
	return toStruct(map[string]interface{}{
		"instances":  instances,
		"stats":      statsDoc(output.Stats),
		"weight":     output.Weight,
		"overload":   output.Overload,
		"overweight": output.Overweight,
		"penalties":  statsDoc(output.Penalties),
	})
}

// Transform upgrades a fully leveled instance to its next tier.
// Request: instance_id
func (h *Handler) Transform(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.TransformInput{InstanceID: r.str("instance_id", true)}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.Transform(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]interface{}{
		"instance":      instanceDoc(output.Instance),
		"previous_tier": output.PreviousTier.String(),
	})
}

// PaintInstance sets the paint of an instance.
// Request: instance_id, paint
func (h *Handler) PaintInstance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.PaintInstanceInput{
		InstanceID: r.str("instance_id", true),
		Paint:      r.str("paint", false),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.arsenalService.PaintInstance(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]interface{}{"instance": instanceDoc(output.Instance)})
}

// DeleteInstance removes an instance from its owner's inventory.
// Request: instance_id
func (h *Handler) DeleteInstance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &arsenal.DeleteInstanceInput{InstanceID: r.str("instance_id", true)}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.arsenalService.DeleteInstance(ctx, input); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]interface{}{})
}
