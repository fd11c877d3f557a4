package v1alpha1

import (
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/orchestrators/arsenal"
)

func statsDoc(m stats.Map) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for _, k := range m.Keys() {
		out[k.String()] = m[k]
	}
	return out
}

func itemDoc(item *arsenal.ItemView) map[string]interface{} {
	stages := make([]interface{}, 0, len(item.Stages))
	for _, st := range item.Stages {
		levels := make([]interface{}, 0, len(st.OverrideLevels))
		for _, lvl := range st.OverrideLevels {
			levels = append(levels, lvl)
		}
		stages = append(stages, map[string]interface{}{
			"tier":            st.Tier.String(),
			"max_level":       st.MaxLevel,
			"max_power":       st.MaxPower,
			"terminal":        st.Terminal,
			"override_levels": levels,
			"start":           statsDoc(st.Start),
			"max":             statsDoc(st.Max),
		})
	}

	tags := make([]interface{}, 0)
	for _, kw := range item.Tags.Keywords() {
		tags = append(tags, kw)
	}

	return map[string]interface{}{
		"uid":      item.UID,
		"pack_key": item.PackKey,
		"item_id":  item.ID,
		"name":     item.Name,
		"type":     item.Type.String(),
		"element":  item.Element.String(),
		"tags":     tags,
		"stages":   stages,
	}
}

func instanceDoc(inst *arsenal.InstanceView) map[string]interface{} {
	return map[string]interface{}{
		"instance_id":   inst.InstanceID,
		"owner_id":      inst.OwnerID,
		"pack_key":      inst.PackKey,
		"item_id":       inst.ItemID,
		"uid":           inst.ItemUID,
		"name":          inst.Name,
		"tier":          inst.Tier.String(),
		"level":         inst.Level,
		"max_level":     inst.MaxLevel,
		"power":         inst.Power,
		"max_power":     inst.MaxPower,
		"display_level": inst.DisplayLevel,
		"paint":         inst.Paint,
		"is_maxed":      inst.IsMaxed,
		"can_transform": inst.CanTransform,
		"stats":         statsDoc(inst.Stats),
		"created_at":    formatTime(inst.CreatedAt),
		"updated_at":    formatTime(inst.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toStruct(doc map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(doc)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return out, nil
}
