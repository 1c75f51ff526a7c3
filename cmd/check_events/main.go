// Quick operational check: prints the newest outbox events.
package main

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"google.golang.org/api/iterator"
)

func main() {
	app := &cli.App{
		Name:  "cartsync-check-events",
		Usage: "Print the most recent cart outbox events",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database",
				Usage:    "Spanner database (projects/PROJECT/instances/INSTANCE/databases/DATABASE)",
				EnvVars:  []string{"CARTSYNC_SPANNER_DB"},
				Required: true,
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: 10,
				Usage: "Number of events to print",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("Check failed")
	}
}

func run(c *cli.Context) error {
	ctx := context.Background()

	client, err := spanner.NewClient(ctx, c.String("database"))
	if err != nil {
		return errors.Wrap(err, "failed to create Spanner client")
	}
	defer client.Close()

	stmt := spanner.Statement{
		SQL: "SELECT event_id, event_type, aggregate_id, status, created_at " +
			"FROM outbox_events ORDER BY created_at DESC LIMIT @limit",
		Params: map[string]interface{}{"limit": c.Int64("limit")},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	count := 0
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to iterate events")
		}

		var eventID, eventType, aggregateID, status string
		var createdAt spanner.NullTime
		if err := row.Columns(&eventID, &eventType, &aggregateID, &status, &createdAt); err != nil {
			return errors.Wrap(err, "failed to scan event")
		}

		fmt.Printf("%d. %s - %s (aggregate: %s, status: %s)\n", count+1, eventType, eventID, aggregateID, status)
		count++
	}

	if count == 0 {
		fmt.Println("No events found")
	} else {
		fmt.Printf("\nTotal: %d events\n", count)
	}
	return nil
}
