// cmd/planner is the composition root: it wires the concrete CSV
// adapters and the chosen solver behind internal/ports, exactly as the
// teacher's cmd/server/main.go wires SQLite/ORS behind
// ports.PackageRepository/ports.DistanceProvider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"vehicle-transport-planner/internal/adapters/baseline"
	"vehicle-transport-planner/internal/adapters/jsonsink"
	"vehicle-transport-planner/internal/adapters/postgres"
	"vehicle-transport-planner/internal/adapters/report"
	"vehicle-transport-planner/internal/adapters/snapshotcache"
	"vehicle-transport-planner/internal/capacity"
	"vehicle-transport-planner/internal/commodity"
	"vehicle-transport-planner/internal/config"
	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/evaluator"
	"vehicle-transport-planner/internal/graph"
	"vehicle-transport-planner/internal/platform/db"
	"vehicle-transport-planner/internal/ports"
	"vehicle-transport-planner/internal/realtime"
	"vehicle-transport-planner/internal/solver"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	datasetDir := flag.String("dataset", "", "directory containing vehicles.csv, planned_trucks.csv, realised_trucks[_N].csv, capacity_history.csv")
	solverName := flag.String("solvers", "FLOW", "FLOW, GREEDY, CANDIDATE_PATHS, LOWER_BOUND, or MIP")
	deterministic := flag.Bool("deterministic", true, "run a single one-shot plan (true) or the rolling real-time scheduler (false)")
	datasetIndices := flag.String("dataset-indices", "0", "comma-separated realised-truck scenario indices")
	quantile := flag.Float64("quantile", 0, "capacity derating quantile in [0,1]; 0 trusts the planned capacities")
	deratingK := flag.Float64("derating-k", 0, "stddev-subtraction derating multiplier, used when quantile is 0")
	groupOrder := flag.String("group-order", "ASCENDING", "ASCENDING, DESCENDING, or UNSPECIFIED commodity processing order")
	out := flag.String("out", "out", "output directory for the JSON result sink")
	sink := flag.String("sink", "json", "json or postgres")
	databaseURL := flag.String("database-url", "", "postgres connection string, used when -sink=postgres (falls back to $DATABASE_URL)")
	maxConcurrency := flag.Int("max-concurrency", 4, "maximum concurrent realisations in real-time fanout mode")
	trimFront := flag.Int("trim-front", 0, "days trimmed from the start of the horizon before scoring")
	trimBack := flag.Int("trim-back", 0, "days trimmed from the end of the horizon before scoring")
	redisURL := flag.String("redis-url", "", "redis connection string for caching derived capacity statistics (falls back to $REDIS_URL, skipped if unset)")
	flag.Parse()

	if *datasetDir == "" {
		log.Fatal("planner: -dataset is required")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("planner: load config: %v", err)
	}
	if *quantile != 0 {
		cfg.Quantile = *quantile
	}
	order, err := domain.ParseGroupOrder(strings.ToUpper(*groupOrder))
	if err != nil {
		log.Fatalf("planner: %v", err)
	}
	cfg.GroupOrder = order

	indices, err := parseIndices(*datasetIndices)
	if err != nil {
		log.Fatalf("planner: %v", err)
	}

	ds := openDataset(*datasetDir)
	vehicles, err := ds.listVehicles()
	if err != nil {
		log.Fatalf("planner: %v", err)
	}
	plannedTrucks, err := ds.listPlannedTrucks()
	if err != nil {
		log.Fatalf("planner: %v", err)
	}

	if cfg.Quantile > 0 || *deratingK > 0 {
		stats, err := loadBucketStats(ds, *redisURL)
		if err != nil {
			log.Fatalf("planner: %v", err)
		}
		policy := capacity.StddevSubtraction
		if cfg.Quantile > 0 {
			policy = capacity.QuantileReplacement
		}
		derater := capacity.NewDerater(policy, *deratingK, cfg.Quantile, stats)
		plannedTrucks = derater.DerateAll(plannedTrucks)
	}

	locations := deriveLocations(vehicles, plannedTrucks)
	costModel := graph.DelayCostModel(cfg.Cost)

	var resultSink ports.ResultSink
	switch strings.ToLower(*sink) {
	case "json":
		resultSink = jsonsink.NewWriter(*out)
	case "postgres":
		url := *databaseURL
		if url == "" {
			url = os.Getenv("DATABASE_URL")
		}
		if url == "" {
			log.Fatal("planner: -sink=postgres requires -database-url or $DATABASE_URL")
		}
		conn, err := db.Open(url)
		if err != nil {
			log.Fatalf("planner: %v", err)
		}
		defer conn.Close()
		if err := postgres.InitSchema(conn); err != nil {
			log.Fatalf("planner: %v", err)
		}
		resultSink = postgres.NewResultRepo(conn)
	default:
		log.Fatalf("planner: unknown -sink %q", *sink)
	}

	runID := fmt.Sprintf("%s-%s-%d", datasetBase(*datasetDir), strings.ToUpper(*solverName), time.Now().UTC().Unix())

	var results []namedResult
	if *deterministic {
		realisedTrucks, err := ds.realisedTrucks(indices[0])
		if err != nil {
			log.Fatalf("planner: %v", err)
		}
		result, err := planDeterministic(strings.ToUpper(*solverName), locations, vehicles, plannedTrucks, realisedTrucks, order, costModel)
		if err != nil {
			log.Fatalf("planner: %v", err)
		}
		results = []namedResult{{runID: runID, result: result, trucks: realisedTrucks}}
	} else {
		h := graph.ComputeHorizon(vehicles, plannedTrucks)
		base := graph.Build(locations, plannedTrucks, h, h.First, costModel, len(vehicles))

		if len(indices) == 1 {
			realisedTrucks, err := ds.realisedTrucks(indices[0])
			if err != nil {
				log.Fatalf("planner: %v", err)
			}
			result := realtime.Run(base.Clone(), h, locations, vehicles, plannedTrucks, realisedTrucks, order)
			results = []namedResult{{runID: runID, result: result, trucks: realisedTrucks}}
		} else {
			realisations := make([]realtime.Realisation, len(indices))
			for i, idx := range indices {
				realisedTrucks, err := ds.realisedTrucks(idx)
				if err != nil {
					log.Fatalf("planner: %v", err)
				}
				realisations[i] = realtime.Realisation{RealisedTrucks: realisedTrucks}
			}
			fanoutResults := realtime.RunFanout(base, h, locations, vehicles, plannedTrucks, order, realisations, *maxConcurrency)
			for i, r := range fanoutResults {
				results = append(results, namedResult{
					runID:  fmt.Sprintf("%s-%d", runID, indices[i]),
					result: r,
					trucks: realisations[i].RealisedTrucks,
				})
			}
		}
	}

	infeasible := false
	vehicleIdx := vehiclesByID(vehicles)
	for _, nr := range results {
		trucks := mergeTrucks(plannedTrucks, nr.trucks)
		nr.result.TruckAssignments = backfillTruckAssignments(trucks, nr.result.TruckAssignments)
		assignments, truckAssignments := nr.result.VehicleAssignments, nr.result.TruckAssignments
		if *trimFront > 0 || *trimBack > 0 {
			assignments, truckAssignments = evaluator.RemoveHorizon(assignments, vehicles, truckAssignments, trucks, *trimFront, *trimBack)
		}

		verifyReport := evaluator.Verify(assignments, truckAssignments, trucks, vehicleIdx)
		if !verifyReport.OK {
			for _, v := range verifyReport.Violations {
				log.Printf("run_id=%s verify violation: %s", nr.runID, v)
			}
		}
		if verifyReport.NonArrivingCount > 0 && *deterministic {
			log.Printf("run_id=%s: %d vehicles never reach their destination within the horizon", nr.runID, verifyReport.NonArrivingCount)
			infeasible = true
		}

		objectiveCost := evaluator.CostModel{
			FixedPlannedDelayCost:    cfg.Cost.FixedPlannedDelayCost,
			FixedUnplannedDelayCost:  cfg.Cost.FixedUnplannedDelayCost,
			CostPerPlannedDelayDay:   cfg.Cost.CostPerPlannedDelayDay,
			CostPerUnplannedDelayDay: cfg.Cost.CostPerUnplannedDelayDay,
		}
		if err := report.Write(os.Stdout, ports.PlanResult{VehicleAssignments: assignments, TruckAssignments: truckAssignments}, trucks, objectiveCost); err != nil {
			log.Printf("run_id=%s: %v", nr.runID, err)
		}

		if err := resultSink.WriteResult(nr.runID, nr.result); err != nil {
			log.Fatalf("planner: write result %s: %v", nr.runID, err)
		}
	}

	if infeasible {
		os.Exit(1)
	}
}

// loadBucketStats derives the per-bucket capacity statistics used for
// derating, consulting a redis snapshot cache first when redisURL is set so
// repeated runs against the same dataset skip re-scanning capacity_history.csv.
func loadBucketStats(ds dataset, redisURL string) (map[capacity.BucketKey]capacity.Stats, error) {
	if redisURL == "" {
		redisURL = os.Getenv("REDIS_URL")
	}
	if redisURL == "" {
		history, err := ds.listCapacityHistory()
		if err != nil {
			return nil, err
		}
		return capacity.GroupHistory(history), nil
	}

	client, err := db.OpenRedis(redisURL)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	cache := snapshotcache.New(client)

	ctx := context.Background()
	key := "capacity-stats:" + ds.dir
	if stats, found, err := cache.Get(ctx, key); err != nil {
		log.Printf("planner: snapshot cache get %q: %v (falling back to re-derive)", key, err)
	} else if found {
		return stats, nil
	}

	history, err := ds.listCapacityHistory()
	if err != nil {
		return nil, err
	}
	stats := capacity.GroupHistory(history)
	if err := cache.Put(ctx, key, stats, time.Hour); err != nil {
		log.Printf("planner: snapshot cache put %q: %v", key, err)
	}
	return stats, nil
}

type namedResult struct {
	runID  string
	result ports.PlanResult
	trucks []domain.Truck
}

// planDeterministic dispatches a one-shot plan to the chosen solver or
// baseline. FLOW, MIP, and LOWER_BOUND plan directly against the
// realised trucks (deterministic mode has no planned/realised distinction
// at the flow level -- spec §8: "planned in deterministic mode with
// realised capacities fed in"); GREEDY and CANDIDATE_PATHS model the
// booking/realisation split explicitly even for a single run.
func planDeterministic(name string, locations []domain.Location, vehicles []domain.Vehicle, plannedTrucks, realisedTrucks []domain.Truck, order domain.GroupOrder, cost graph.DelayCostModel) (ports.PlanResult, error) {
	switch name {
	case "FLOW":
		h := graph.ComputeHorizon(vehicles, realisedTrucks)
		g := graph.Build(locations, realisedTrucks, h, h.First, cost, len(vehicles))
		commodities := commodity.Group(vehicles, order)
		return solver.SolveSequential(g, commodities, h.First), nil
	case "MIP":
		h := graph.ComputeHorizon(vehicles, realisedTrucks)
		g := graph.Build(locations, realisedTrucks, h, h.First, cost, len(vehicles))
		commodities := commodity.Group(vehicles, order)
		mv := solver.MIPSolver{Graph: g}
		return mv.SolveMIP(commodities, h.First)
	case "LOWER_BOUND":
		h := graph.ComputeHorizon(vehicles, realisedTrucks)
		return baseline.UncapacitatedFlowLowerBound(locations, vehicles, realisedTrucks, order, h.First, cost), nil
	case "GREEDY":
		return baseline.GreedySolve(locations, vehicles, plannedTrucks, realisedTrucks), nil
	case "CANDIDATE_PATHS":
		return baseline.CandidatePathSolve(locations, vehicles, plannedTrucks, realisedTrucks), nil
	default:
		return ports.PlanResult{}, fmt.Errorf("unknown -solvers value %q", name)
	}
}

func datasetBase(dir string) string {
	trimmed := strings.TrimRight(dir, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
