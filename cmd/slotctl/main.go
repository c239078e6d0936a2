// cmd/slotctl/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/events"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/repository/postgres"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/slotting"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newWarehouseFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "warehouse",
		Usage:    "Warehouse ID to analyze",
		Required: true,
		EnvVars:  []string{"WAREHOUSE_ID"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sqlx.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func contextDB(c *cli.Context) (*sqlx.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sqlx.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func buildAnalyzer(db *sqlx.DB, cfg *config.Config) (*slotting.Analyzer, error) {
	scorer, err := slotting.NewScorer(cfg.Slotting.Weights)
	if err != nil {
		return nil, err
	}
	classifier := slotting.NewClassifier()
	recommender := slotting.NewRecommender(scorer, cfg.Slotting.Costs)

	productRepo := postgres.NewProductRepository(db, classifier)
	locationRepo := postgres.NewLocationRepository(db)

	return slotting.NewAnalyzer(productRepo, locationRepo, recommender, events.NewNoopEmitter(), cfg.Slotting.Workers), nil
}

func runAnalyze(c *cli.Context) error {
	db, err := contextDB(c)
	if err != nil {
		return err
	}

	cfg := config.Load()
	analyzer, err := buildAnalyzer(db, cfg)
	if err != nil {
		return err
	}

	opts := slotting.AnalyzeOptions{
		IncludeDeadStock:     c.Bool("include-dead"),
		MinVelocityThreshold: c.Float64("min-velocity"),
		AnalysisHorizonDays:  c.Int("horizon-days"),
	}

	analysis, err := analyzer.AnalyzeSlotting(c.Context, c.String("tenant"), c.String("warehouse"), opts)
	if err != nil {
		return err
	}

	return writeJSON(c.String("out"), analysis)
}

func runDeepAnalyze(c *cli.Context) error {
	db, err := contextDB(c)
	if err != nil {
		return err
	}

	cfg := config.Load()
	scorer, err := slotting.NewScorer(cfg.Slotting.Weights)
	if err != nil {
		return err
	}
	classifier := slotting.NewClassifier()
	recommender := slotting.NewRecommender(scorer, cfg.Slotting.Costs)
	productRepo := postgres.NewProductRepository(db, classifier)
	locationRepo := postgres.NewLocationRepository(db)

	warehouseID := c.String("warehouse")
	since := time.Now().AddDate(0, 0, -c.Int("horizon-days"))

	products, err := productRepo.FetchProductsWithVelocity(c.Context, c.String("tenant"), warehouseID, since)
	if err != nil {
		return err
	}
	assignments, err := locationRepo.FetchCurrentAssignments(c.Context, warehouseID)
	if err != nil {
		return err
	}
	available, err := locationRepo.FetchAvailableLocations(c.Context, warehouseID)
	if err != nil {
		return err
	}

	switch name := c.String("analyzer"); name {
	case "golden-zone":
		recs := slotting.NewGoldenZoneAnalyzer(recommender).Analyze(products, assignments, available)
		return writeJSON(c.String("out"), recs)
	case "seasonal":
		now := time.Now()
		upcoming := make([]time.Month, 0, 3)
		for i := 0; i < 3; i++ {
			upcoming = append(upcoming, now.AddDate(0, i, 0).Month())
		}
		recs := slotting.NewSeasonalAnalyzer(recommender).Analyze(now, upcoming, products, assignments, available)
		return writeJSON(c.String("out"), recs)
	case "family":
		movements, err := productRepo.FetchMovementHistory(c.Context, warehouseID, since)
		if err != nil {
			return err
		}
		analyzer := slotting.NewFamilyGroupingAnalyzer(recommender, c.Int("min-co-occurrence"))
		recs := analyzer.Analyze(movements, products, assignments, available)
		return writeJSON(c.String("out"), recs)
	case "cube":
		report := slotting.NewCubeUtilizationAnalyzer(recommender).Analyze(products, assignments, available)
		return writeJSON(c.String("out"), report)
	default:
		return fmt.Errorf("unknown analyzer %q (golden-zone, seasonal, family, cube)", name)
	}
}

func runSimulate(c *cli.Context) error {
	cfg := config.Load()
	simulator := slotting.NewSimulator(cfg.Slotting.Costs)

	name := c.String("strategy")
	var strategy *domain.SlottingStrategy
	for _, s := range slotting.BuiltinStrategies() {
		if s.Name == name {
			s := s
			strategy = &s
			break
		}
	}
	if strategy == nil {
		return fmt.Errorf("unknown strategy %q (see `slotctl strategies`)", name)
	}
	strategy.TotalMoves = c.Int("moves")

	result, err := simulator.RunSimulation(c.String("warehouse"), *strategy, nil)
	if err != nil {
		return err
	}

	return writeJSON(c.String("out"), result)
}

func runStrategies(c *cli.Context) error {
	return writeJSON(c.String("out"), slotting.BuiltinStrategies())
}

func writeJSON(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(append(payload, '\n'))
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "slotctl",
		Usage: "Run slotting analyses and simulations from the command line",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Run a slotting analysis for a warehouse",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newWarehouseFlag(),
					&cli.StringFlag{
						Name:    "tenant",
						Usage:   "Tenant ID",
						EnvVars: []string{"TENANT_ID"},
					},
					&cli.BoolFlag{
						Name:  "include-dead",
						Usage: "Include dead stock in the analysis",
					},
					&cli.Float64Flag{
						Name:  "min-velocity",
						Usage: "Skip products below this average daily demand",
					},
					&cli.IntFlag{
						Name:  "horizon-days",
						Usage: "Movement history window in days",
						Value: 90,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file, '-' for stdout",
						Value: "-",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runAnalyze,
			},
			{
				Name:  "deep-analyze",
				Usage: "Run one of the specialized analyzers for a warehouse",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newWarehouseFlag(),
					&cli.StringFlag{
						Name:    "tenant",
						Usage:   "Tenant ID",
						EnvVars: []string{"TENANT_ID"},
					},
					&cli.StringFlag{
						Name:     "analyzer",
						Usage:    "Analyzer to run: golden-zone, seasonal, family or cube",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "horizon-days",
						Usage: "Movement history window in days",
						Value: 90,
					},
					&cli.IntFlag{
						Name:  "min-co-occurrence",
						Usage: "Shared orders before two products count as a family",
						Value: 3,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file, '-' for stdout",
						Value: "-",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runDeepAnalyze,
			},
			{
				Name:  "simulate",
				Usage: "Project KPIs for a built-in strategy",
				Flags: []cli.Flag{
					newWarehouseFlag(),
					&cli.StringFlag{
						Name:     "strategy",
						Usage:    "Strategy name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "moves",
						Usage: "Total moves the rollout plan should cover",
						Value: 100,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file, '-' for stdout",
						Value: "-",
					},
				},
				Action: runSimulate,
			},
			{
				Name:  "strategies",
				Usage: "List built-in strategies",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file, '-' for stdout",
						Value: "-",
					},
				},
				Action: runStrategies,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
