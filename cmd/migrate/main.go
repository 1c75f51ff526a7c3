package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var log = logrus.New()

func main() {
	app := &cli.App{
		Name:  "cartsync-migrate",
		Usage: "Create the Spanner database and apply DDL migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "project",
				Value:   "test-project",
				Usage:   "GCP project ID",
				EnvVars: []string{"SPANNER_PROJECT_ID"},
			},
			&cli.StringFlag{
				Name:    "instance",
				Value:   "dev-instance",
				Usage:   "Spanner instance ID",
				EnvVars: []string{"SPANNER_INSTANCE_ID"},
			},
			&cli.StringFlag{
				Name:    "database",
				Value:   "cartsync-db",
				Usage:   "Spanner database ID",
				EnvVars: []string{"SPANNER_DATABASE_ID"},
			},
			&cli.StringFlag{
				Name:  "migrations",
				Value: "migrations",
				Usage: "Directory containing migration SQL files",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}
}

func run(c *cli.Context) error {
	ctx := context.Background()
	project := c.String("project")
	instanceID := c.String("instance")
	databaseID := c.String("database")
	migrateDir := c.String("migrations")

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		log.WithField("host", host).Info("Using Spanner emulator")
	}

	if err := ensureInstance(ctx, project, instanceID); err != nil {
		return errors.Wrap(err, "failed to ensure instance")
	}
	if err := ensureDatabase(ctx, project, instanceID, databaseID); err != nil {
		return errors.Wrap(err, "failed to ensure database")
	}
	if err := applyMigrations(ctx, project, instanceID, databaseID, migrateDir); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	log.Info("Migrations completed")
	return nil
}

func ensureInstance(ctx context.Context, project, instanceID string) error {
	log.WithField("instance", instanceID).Info("Ensuring instance exists")

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create instance admin client")
	}
	defer instanceAdmin.Close()

	instanceName := fmt.Sprintf("projects/%s/instances/%s", project, instanceID)
	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instanceName})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		log.WithError(err).Warn("Unexpected error checking instance")
		return nil
	}

	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", project),
		InstanceId: instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", project),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return errors.Wrap(err, "failed to create instance")
	}

	if _, err := op.Wait(ctx); err != nil {
		// The emulator can report completion before the wait resolves.
		if status.Code(err) != codes.AlreadyExists {
			log.WithError(err).Warn("Instance creation wait")
		}
	}
	return nil
}

func ensureDatabase(ctx context.Context, project, instanceID, databaseID string) error {
	log.WithField("database", databaseID).Info("Ensuring database exists")

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create database admin client")
	}
	defer adminClient.Close()

	dbPath := fmt.Sprintf("projects/%s/instances/%s/databases/%s", project, instanceID, databaseID)
	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: dbPath})
	if err == nil {
		return nil
	}

	if status.Code(err) == codes.NotFound {
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          fmt.Sprintf("projects/%s/instances/%s", project, instanceID),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", databaseID),
		})
		if err != nil {
			if status.Code(err) == codes.AlreadyExists {
				return nil
			}
			return errors.Wrap(err, "failed to create database")
		}
		if _, err := op.Wait(ctx); err != nil {
			return errors.Wrap(err, "failed to wait for database creation")
		}
		return nil
	}

	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		log.WithError(err).Info("Proceeding in emulator mode")
		return nil
	}
	return errors.Wrap(err, "failed to check database")
}

func applyMigrations(ctx context.Context, project, instanceID, databaseID, migrateDir string) error {
	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create database admin client")
	}
	defer adminClient.Close()

	files, err := filepath.Glob(filepath.Join(migrateDir, "*.sql"))
	if err != nil {
		return errors.Wrap(err, "failed to list migration files")
	}
	if len(files) == 0 {
		log.Info("No migration files found")
		return nil
	}

	dbPath := fmt.Sprintf("projects/%s/instances/%s/databases/%s", project, instanceID, databaseID)

	for _, file := range files {
		name := filepath.Base(file)
		log.WithField("migration", name).Info("Applying migration")

		content, err := os.ReadFile(file)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", name)
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   dbPath,
			Statements: splitDDLStatements(string(content)),
		})
		if err != nil {
			return errors.Wrapf(err, "failed to start DDL update for %s", name)
		}
		if err := op.Wait(ctx); err != nil {
			return errors.Wrapf(err, "failed to apply DDL for %s", name)
		}
	}

	return nil
}

// splitDDLStatements strips SQL comments and splits the file into individual
// DDL statements. Spanner's admin API takes them one by one.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
