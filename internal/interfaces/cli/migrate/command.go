package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"studia/internal/domain/billing"
	"studia/internal/infrastructure/config"
	"studia/internal/infrastructure/database"
	"studia/internal/infrastructure/migration"
	"studia/internal/infrastructure/repository"
	"studia/internal/shared/biztime"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

var (
	env       string
	name      string
	steps     int
	plansFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newGenerateInitialCommand(),
		newSeedPlansCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create new migration files with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newGenerateInitialCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-initial",
		Short: "Generate the initial schema migration",
		Long:  `Generate the initial marketplace schema migration files.`,
		RunE:  runGenerateInitial,
	}
}

func newSeedPlansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-plans",
		Short: "Seed subscription plans from configuration",
		Long:  `Upsert the subscription plan catalog from a YAML definitions file.`,
		RunE:  runSeedPlans,
	}

	cmd.Flags().StringVar(&plansFile, "file", "./configs/plans.yaml", "Path to the plan definitions file")

	return cmd
}

func initEnv() (string, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return "", nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := biztime.Init(cfg.Timezone.Business); err != nil {
		return "", nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return "", nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get scripts path: %w", err)
	}

	return scriptsPath, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("running up migrations", "environment", env)

	strategy := migration.NewGooseStrategy(scriptsPath)

	if err := strategy.Migrate(database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	strategy := migration.NewGooseStrategy(scriptsPath)

	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		if err := gooseStrategy.MigrateDown(database.Get(), steps); err != nil {
			log.Errorw("down migration failed", "error", err)
			return fmt.Errorf("down migration failed: %w", err)
		}
	} else {
		return fmt.Errorf("down migration is only supported with goose strategy")
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("checking migration status", "environment", env)

	strategy := migration.NewGooseStrategy(scriptsPath)

	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		version, err := gooseStrategy.GetVersion(database.Get())
		if err != nil {
			log.Errorw("failed to get migration version", "error", err)
			return fmt.Errorf("failed to get migration version: %w", err)
		}

		fmt.Printf("\nMigration Status:\n")
		fmt.Printf("  Environment:     %s\n", env)
		fmt.Printf("  Current Version: %d\n", version)

		if err := gooseStrategy.Status(database.Get()); err != nil {
			log.Errorw("failed to get detailed status", "error", err)
			return fmt.Errorf("failed to get detailed status: %w", err)
		}

		return nil
	}

	return fmt.Errorf("status check is only supported with goose strategy")
}

func runCreate(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()

	log.Infow("creating new migration", "name", name)

	strategy := migration.NewGooseStrategy(scriptsPath)
	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		if err := gooseStrategy.Create(name); err != nil {
			log.Errorw("failed to create migration", "error", err)
			return fmt.Errorf("failed to create migration: %w", err)
		}
	} else {
		return fmt.Errorf("create is only supported with goose strategy")
	}

	log.Infow("migration created successfully", "name", name)
	fmt.Printf("Migration '%s' created successfully\n", name)

	return nil
}

func runGenerateInitial(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()

	log.Infow("generating initial schema migration")

	generator := migration.NewGenerator(scriptsPath)
	if err := generator.CreateInitialSchemaMigration(); err != nil {
		log.Errorw("failed to generate initial schema migration", "error", err)
		return fmt.Errorf("failed to generate initial schema migration: %w", err)
	}

	log.Infow("initial schema migration generated successfully")
	fmt.Println("Initial schema migration generated successfully")

	return nil
}

// planDefinition mirrors one entry of the plans.yaml catalog.
type planDefinition struct {
	ID            string `yaml:"id" validate:"required,alphanum"`
	Name          string `yaml:"name" validate:"required"`
	Description   string `yaml:"description"`
	PriceCents    int64  `yaml:"price_cents" validate:"gte=0"`
	Currency      string `yaml:"currency" validate:"required,len=3"`
	StripePriceID string `yaml:"stripe_price_id"`
	MaxCourses    int    `yaml:"max_courses" validate:"gte=0"`
	Active        bool   `yaml:"active"`
}

type planCatalog struct {
	Plans []planDefinition `yaml:"plans"`
}

func runSeedPlans(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("seeding subscription plans", "file", plansFile)

	data, err := os.ReadFile(plansFile)
	if err != nil {
		return fmt.Errorf("failed to read plan definitions: %w", err)
	}

	var catalog planCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("failed to parse plan definitions: %w", err)
	}

	if len(catalog.Plans) == 0 {
		return fmt.Errorf("no plans defined in %s", plansFile)
	}

	planRepo := repository.NewPlanRepository(database.Get(), log)
	ctx := context.Background()

	for _, def := range catalog.Plans {
		if err := utils.ValidateStruct(def); err != nil {
			return fmt.Errorf("invalid plan %q: %w", def.ID, err)
		}

		plan, err := billing.NewPlan(def.ID, def.Name, def.Description,
			def.PriceCents, def.Currency, def.StripePriceID, def.MaxCourses, def.Active)
		if err != nil {
			return fmt.Errorf("invalid plan %q: %w", def.ID, err)
		}

		if err := planRepo.Upsert(ctx, plan); err != nil {
			log.Errorw("failed to upsert plan", "plan_id", def.ID, "error", err)
			return fmt.Errorf("failed to upsert plan %q: %w", def.ID, err)
		}

		log.Infow("plan seeded", "plan_id", def.ID, "name", def.Name)
	}

	fmt.Printf("Seeded %d plans\n", len(catalog.Plans))

	return nil
}
