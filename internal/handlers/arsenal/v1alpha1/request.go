package v1alpha1

import (
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/mech-arsenal/internal/buffs"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// request reads typed fields from a Struct and collects field errors
type request struct {
	fields map[string]*structpb.Value
	vb     *errors.ValidationBuilder
}

func newRequest(in *structpb.Struct) *request {
	return &request{
		fields: in.GetFields(),
		vb:     errors.NewValidationBuilder(),
	}
}

func (r *request) err() error {
	return r.vb.Build()
}

func (r *request) str(key string, required bool) string {
	v, ok := r.fields[key]
	if !ok || isNull(v) {
		if required {
			r.vb.RequiredField(key)
		}
		return ""
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		r.vb.Field(key, "must be a string")
		return ""
	}
	if required && s.StringValue == "" {
		r.vb.RequiredField(key)
	}
	return s.StringValue
}

func (r *request) integer(key string, required bool) int {
	v, ok := r.fields[key]
	if !ok || isNull(v) {
		if required {
			r.vb.RequiredField(key)
		}
		return 0
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		r.vb.Field(key, "must be a number")
		return 0
	}
	f := n.NumberValue
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		r.vb.Field(key, "must be a 32-bit integer")
		return 0
	}
	return int(f)
}

func (r *request) boolean(key string) bool {
	v, ok := r.fields[key]
	if !ok || isNull(v) {
		return false
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		r.vb.Field(key, "must be a boolean")
		return false
	}
	return b.BoolValue
}

// tier accepts a tier name or its initial; absent means unspecified
func (r *request) tier(key string) stats.Tier {
	s := r.str(key, false)
	if s == "" {
		return stats.TierUnspecified
	}
	if t, ok := stats.TierFromString(s); ok {
		return t
	}
	if t, ok := stats.TierFromInitial(s); ok {
		return t
	}
	r.vb.Fieldf(key, "unknown tier %q", s)
	return stats.TierUnspecified
}

func (r *request) strList(key string, required bool) []string {
	v, ok := r.fields[key]
	if !ok || isNull(v) {
		if required {
			r.vb.RequiredField(key)
		}
		return nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		r.vb.Field(key, "must be a list of strings")
		return nil
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, elem := range list.ListValue.GetValues() {
		s, ok := elem.GetKind().(*structpb.Value_StringValue)
		if !ok || s.StringValue == "" {
			r.vb.Field(key, "must be a list of strings")
			return nil
		}
		out = append(out, s.StringValue)
	}
	if required && len(out) == 0 {
		r.vb.RequiredField(key)
	}
	return out
}

// buffLevels reads a category to level object. Range checks are left to
// the orchestrator.
func (r *request) buffLevels(key string) buffs.Levels {
	v, ok := r.fields[key]
	if !ok || isNull(v) {
		return nil
	}
	obj, ok := v.GetKind().(*structpb.Value_StructValue)
	if !ok {
		r.vb.Field(key, "must be an object of buff levels")
		return nil
	}
	out := make(buffs.Levels, len(obj.StructValue.GetFields()))
	for name, lvl := range obj.StructValue.GetFields() {
		n, ok := lvl.GetKind().(*structpb.Value_NumberValue)
		if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
			r.vb.Fieldf(key, "level of %s must be an integer", name)
			continue
		}
		out[buffs.Category(name)] = int(n.NumberValue)
	}
	return out
}

func isNull(v *structpb.Value) bool {
	_, ok := v.GetKind().(*structpb.Value_NullValue)
	return ok
}
