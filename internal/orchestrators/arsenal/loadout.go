package arsenal

import (
	"context"
	"time"

	"github.com/KirkDiggler/mech-arsenal/internal/buffs"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/loadout"
	"github.com/KirkDiggler/mech-arsenal/internal/metrics"
)

// ReasonNotOwner marks an instance that belongs to someone else
const ReasonNotOwner = "NOT_OWNER"

// SummarizeLoadout totals the owned instances mounted on one mech. Item
// stats are buffed first; the total HP buff is added to the mech total.
func (o *orchestrator) SummarizeLoadout(ctx context.Context, input *SummarizeLoadoutInput) (out *SummarizeLoadoutOutput, err error) {
	defer o.observe(metrics.OpSummarizeLoadout, time.Now(), &err)

	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner_id is required")
	}
	if len(input.InstanceIDs) == 0 {
		return nil, errors.InvalidArgument("instance_ids is required")
	}
	if err := input.Buffs.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(input.InstanceIDs))
	views := make([]*InstanceView, 0, len(input.InstanceIDs))
	parts := make([]loadout.Part, 0, len(input.InstanceIDs))
	for _, id := range input.InstanceIDs {
		if seen[id] {
			return nil, errors.InvalidArgumentf("instance %s listed twice", id)
		}
		seen[id] = true

		rec, inst, err := o.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if rec.OwnerID != input.OwnerID {
			return nil, errors.InvalidArgumentf("instance %s is not owned by %s", id, input.OwnerID).
				WithReason(ReasonNotOwner)
		}

		view := instanceView(rec, inst)
		view.Stats, err = buffs.Apply(view.Stats, input.Buffs)
		if err != nil {
			return nil, err
		}
		views = append(views, view)

		def := inst.Definition()
		parts = append(parts, loadout.Part{
			Name:  def.Name(),
			Type:  def.Type(),
			Tags:  def.Tags(),
			Stats: view.Stats,
		})
	}

	sum, err := loadout.Summarize(parts, loadout.DefaultRules())
	if err != nil {
		return nil, err
	}
	if lvl := input.Buffs[buffs.TotalHP]; lvl > 0 {
		hp, _, err := buffs.TotalHP.Modifier(lvl)
		if err != nil {
			return nil, err
		}
		sum.Stats[stats.HitPoints] += hp
	}

	return &SummarizeLoadoutOutput{
		Instances:  views,
		Stats:      sum.Stats,
		Weight:     sum.Weight,
		Overload:   sum.Overload,
		Overweight: sum.Overweight,
		Penalties:  sum.Penalties,
	}, nil
}
