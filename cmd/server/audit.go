package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-arsenal/internal/config"
	"github.com/KirkDiggler/mech-arsenal/internal/logger"
	"github.com/KirkDiggler/mech-arsenal/internal/orchestrators/arsenal"
	"github.com/KirkDiggler/mech-arsenal/internal/pkg/idgen"
	"github.com/KirkDiggler/mech-arsenal/internal/redis"
	"github.com/KirkDiggler/mech-arsenal/internal/repositories/inventory"
)

var (
	auditDelete bool
	auditYes    bool
	auditBatch  int64
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Find inventory records that no longer fit the loaded packs",
	Long: `Scan every stored instance and check it against the configured packs.
Undecodable records, unknown packs or items, and tiers or levels outside the
item's chain are reported. With --delete the reported records are removed
after confirmation.`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&configPath, "config", os.Getenv("ARSENAL_CONFIG"), "Path to a YAML config file")
	auditCmd.Flags().BoolVar(&auditDelete, "delete", false, "Delete reported records")
	auditCmd.Flags().BoolVar(&auditYes, "yes", false, "Skip the delete confirmation")
	auditCmd.Flags().Int64Var(&auditBatch, "batch", 100, "Scan batch size")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Service: "arsenal-audit"})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	packs, err := loadPacks(cfg.Packs, nil)
	if err != nil {
		return err
	}

	client, err := redis.NewClient(cfg.Redis.Endpoint, &redis.Options{PoolSize: cfg.Redis.PoolSize})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() { _ = client.Close() }()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = redis.Ping(pingCtx, client)
	cancel()
	if err != nil {
		return fmt.Errorf("redis at %s is not reachable: %w", cfg.Redis.Endpoint, err)
	}

	repo, err := inventory.NewRedis(&inventory.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create inventory repository: %w", err)
	}

	svc, err := arsenal.NewOrchestrator(&arsenal.Config{
		Packs:         packs,
		InventoryRepo: repo,
		IDGenerator:   idgen.NewUUID("inst"),
		EventBus:      events.NewBus(),
	})
	if err != nil {
		return fmt.Errorf("failed to create arsenal orchestrator: %w", err)
	}

	return audit(ctx, svc, cmd.InOrStdin(), cmd.OutOrStdout())
}

func audit(ctx context.Context, svc arsenal.Service, in io.Reader, out io.Writer) error {
	report, err := svc.AuditInventory(ctx, &arsenal.AuditInventoryInput{BatchSize: auditBatch})
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	fmt.Fprintf(out, "Checked %d records, found %d problems\n", report.Checked, len(report.Problems))
	if len(report.Problems) == 0 {
		return nil
	}

	for _, p := range report.Problems {
		if p.Reason == arsenal.ReasonCorrupt {
			fmt.Fprintf(out, "  - %s: %s\n", p.InstanceID, p.Reason)
			continue
		}
		fmt.Fprintf(out, "  - %s (owner %s, %d@%s): %s %s\n",
			p.InstanceID, p.OwnerID, p.ItemID, p.PackKey, p.Reason, p.Message)
	}

	if !auditDelete {
		return nil
	}

	if !auditYes {
		fmt.Fprint(out, "\nDelete these records? (yes/no): ")
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(out, "Aborted - no changes made")
			return nil
		}
	}

	// deletion rescans rather than trusting the report above
	report, err = svc.AuditInventory(ctx, &arsenal.AuditInventoryInput{Delete: true, BatchSize: auditBatch})
	if err != nil {
		return fmt.Errorf("audit delete failed: %w", err)
	}
	fmt.Fprintf(out, "Deleted %d records\n", report.Deleted)
	return nil
}
