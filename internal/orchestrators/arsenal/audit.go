package arsenal

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/metrics"
	"github.com/KirkDiggler/mech-arsenal/internal/progression"
	"github.com/KirkDiggler/mech-arsenal/internal/repositories/inventory"
)

// ReasonCorrupt marks a stored record that could not be decoded
const ReasonCorrupt = "CORRUPT"

const defaultAuditBatch = 100

func (o *orchestrator) AuditInventory(ctx context.Context, input *AuditInventoryInput) (out *AuditInventoryOutput, err error) {
	defer o.observe(metrics.OpAuditInventory, time.Now(), &err)

	if input == nil {
		input = &AuditInventoryInput{}
	}
	batch := input.BatchSize
	if batch <= 0 {
		batch = defaultAuditBatch
	}

	out = &AuditInventoryOutput{Problems: []*AuditProblem{}}
	var cursor uint64
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "inventory audit interrupted")
		}

		page, err := o.inventory.Scan(ctx, inventory.ScanInput{Cursor: cursor, Count: batch})
		if err != nil {
			return nil, err
		}

		for _, id := range page.Corrupt {
			out.Checked++
			out.Problems = append(out.Problems, &AuditProblem{
				InstanceID: id,
				Reason:     ReasonCorrupt,
				Message:    "stored record could not be decoded",
			})
		}
		for _, rec := range page.Records {
			out.Checked++
			if problem := o.audit(rec); problem != nil {
				out.Problems = append(out.Problems, problem)
			}
		}

		cursor = page.Cursor
		if cursor == 0 {
			break
		}
	}

	if input.Delete {
		for _, p := range out.Problems {
			if o.purge(ctx, p.InstanceID) {
				p.Deleted = true
				out.Deleted++
			}
		}
	}

	slog.Info("inventory audited",
		"checked", out.Checked,
		"problems", len(out.Problems),
		"deleted", out.Deleted)

	return out, nil
}

// audit returns nil when rec restores cleanly
func (o *orchestrator) audit(rec *inventory.Record) *AuditProblem {
	problem := &AuditProblem{
		InstanceID: rec.InstanceID,
		OwnerID:    rec.OwnerID,
		PackKey:    rec.PackKey,
		ItemID:     rec.ItemID,
	}

	def, err := o.definition(rec.PackKey, rec.ItemID)
	if err == nil {
		_, err = progression.RestoreInstance(def, rec.Tier, rec.Level, rec.Paint)
	}
	if err == nil {
		return nil
	}

	problem.Reason = errors.GetReason(err)
	if problem.Reason == "" {
		problem.Reason = errors.GetCode(err).String()
	}
	problem.Message = errors.GetMessage(err)
	return problem
}

func (o *orchestrator) purge(ctx context.Context, instanceID string) bool {
	unlock := o.locks.lock(instanceID)
	defer unlock()

	if _, err := o.inventory.Delete(ctx, inventory.DeleteInput{InstanceID: instanceID}); err != nil {
		if !errors.IsNotFound(err) {
			slog.Warn("failed to delete audited record", "instance_id", instanceID, "error", err)
		}
		return false
	}
	slog.Info("audited record deleted", "instance_id", instanceID)
	return true
}
