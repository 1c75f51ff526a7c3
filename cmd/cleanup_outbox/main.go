package main

import (
	"context"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/cartsync-service/internal/models/m_outbox"
)

var log = logrus.New()

func main() {
	app := &cli.App{
		Name:  "cartsync-cleanup-outbox",
		Usage: "Delete processed outbox events past their retention window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database",
				Usage:    "Spanner database (projects/PROJECT/instances/INSTANCE/databases/DATABASE)",
				EnvVars:  []string{"CARTSYNC_SPANNER_DB"},
				Required: true,
			},
			&cli.IntFlag{
				Name:  "completed-retention",
				Value: 30,
				Usage: "Retention days for completed events",
			},
			&cli.IntFlag{
				Name:  "failed-retention",
				Value: 90,
				Usage: "Retention days for failed events",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report what would be deleted without deleting",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Cleanup failed")
	}
}

func run(c *cli.Context) error {
	ctx := context.Background()

	client, err := spanner.NewClient(ctx, c.String("database"))
	if err != nil {
		return errors.Wrap(err, "failed to create Spanner client")
	}
	defer client.Close()

	now := time.Now().UTC()
	completedCutoff := now.AddDate(0, 0, -c.Int("completed-retention"))
	failedCutoff := now.AddDate(0, 0, -c.Int("failed-retention"))

	log.WithFields(logrus.Fields{
		"completed_cutoff": completedCutoff.Format(time.RFC3339),
		"failed_cutoff":    failedCutoff.Format(time.RFC3339),
		"dry_run":          c.Bool("dry-run"),
	}).Info("Starting outbox cleanup")

	if c.Bool("dry-run") {
		return dryRun(ctx, client, completedCutoff, failedCutoff)
	}
	return cleanup(ctx, client, completedCutoff, failedCutoff)
}

func cutoffParams(completedCutoff, failedCutoff time.Time) map[string]interface{} {
	return map[string]interface{}{
		"completedCutoff": completedCutoff,
		"failedCutoff":    failedCutoff,
		"completed":       m_outbox.StatusCompleted,
		"failed":          m_outbox.StatusFailed,
	}
}

const cutoffCondition = `(status = @completed AND processed_at < @completedCutoff)
		   OR (status = @failed AND processed_at < @failedCutoff)`

func dryRun(ctx context.Context, client *spanner.Client, completedCutoff, failedCutoff time.Time) error {
	stmt := spanner.Statement{
		SQL: `SELECT status, COUNT(*) FROM outbox_events
		WHERE ` + cutoffCondition + `
		GROUP BY status`,
		Params: cutoffParams(completedCutoff, failedCutoff),
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	total := int64(0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to query events")
		}

		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return errors.Wrap(err, "failed to parse row")
		}

		log.WithFields(logrus.Fields{"status": status, "count": count}).Info("Would delete events")
		total += count
	}

	log.WithField("total", total).Info("Dry run complete, nothing deleted")
	return nil
}

func cleanup(ctx context.Context, client *spanner.Client, completedCutoff, failedCutoff time.Time) error {
	stmt := spanner.Statement{
		SQL:    "DELETE FROM outbox_events WHERE " + cutoffCondition,
		Params: cutoffParams(completedCutoff, failedCutoff),
	}

	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		deleted, err := txn.Update(ctx, stmt)
		if err != nil {
			return errors.Wrap(err, "failed to delete events")
		}
		log.WithField("deleted", deleted).Info("Deleted old events")
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "cleanup transaction failed")
	}

	log.Info("Cleanup completed")
	return nil
}
