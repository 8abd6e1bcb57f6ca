package main

import (
	"context"
	"database/sql"
	"load-route-service/internal/adapters/broker"
	"load-route-service/internal/adapters/cache"
	"load-route-service/internal/adapters/memory"
	"load-route-service/internal/adapters/repositories"
	"load-route-service/internal/api"
	"load-route-service/internal/config"
	"load-route-service/internal/graph"
	"load-route-service/internal/platform/db"
	"load-route-service/internal/ports"
	"load-route-service/internal/services"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or SQLite or JSON, Redis, RabbitMQ)
// behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	repo, store, closeDB, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeDB()

	g, err := services.LoadGraph(ctx, repo, graph.Options{
		EarthRadiusMeters: cfg.EarthRadiusMeters,
		CoordPrecision:    cfg.CoordPrecision,
	})
	if err != nil {
		log.Fatal(err)
	}

	opts := []services.Option{
		services.WithResultStore(store),
		services.WithWorkers(cfg.PlannerWorkers),
		services.WithSearchTimeout(cfg.SearchTimeout),
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping addr=%s: %v", cfg.RedisAddr, err)
		}
		opts = append(opts, services.WithCache(cache.NewRedisRouteCache(rdb), cfg.RouteCacheTTL))
		log.Printf("route cache enabled addr=%s ttl=%s", cfg.RedisAddr, cfg.RouteCacheTTL)
	}

	if cfg.AMQPURL != "" {
		pub, err := broker.DialRabbitPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal(err)
		}
		defer pub.Close()
		opts = append(opts, services.WithPublisher(pub))
		log.Printf("result publishing enabled exchange=%s", cfg.AMQPExchange)
	}

	planner, err := services.NewRoutePlanner(g, cfg.SearchParams(), opts...)
	if err != nil {
		log.Fatal(err)
	}

	app := api.NewApp(planner)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down gracefully...")
		_ = app.Shutdown()
	}()

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("listen failed: %v", err)
	}
}

// openStorage picks the load source and result store: Postgres when
// DATABASE_URL is set, else SQLite when SQLITE_PATH is set, else the JSON
// dataset with an in-memory result store.
func openStorage(ctx context.Context, cfg config.Config) (ports.LoadRepository, ports.ResultStore, func(), error) {
	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)

	switch {
	case cfg.DatabaseURL != "":
		conn, err = db.Open(cfg.DatabaseURL)
		dialect = repositories.Postgres
	case cfg.SQLitePath != "":
		conn, err = db.OpenSQLite(cfg.SQLitePath)
		dialect = repositories.SQLite
	default:
		log.Printf("using json load dataset path=%s", cfg.LoadsPath)
		return repositories.NewJSONLoadRepository(cfg.LoadsPath), memory.NewResultStore(), func() {}, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}

	// Initialize schema and seed on startup so a fresh database is usable.
	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	if cfg.SeedPath != "" {
		if err := repositories.SeedFromJSON(ctx, conn, dialect, cfg.SeedPath); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
	}

	closeDB := func() { _ = conn.Close() }
	return repositories.NewSQLLoadRepository(conn, dialect), repositories.NewSQLResultStore(conn, dialect), closeDB, nil
}
