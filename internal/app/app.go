package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/andrisetiawan/squadhub/external/recoengine"
	"github.com/andrisetiawan/squadhub/internal/config"
	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/domain/cluster"
	"github.com/andrisetiawan/squadhub/internal/domain/coach"
	"github.com/andrisetiawan/squadhub/internal/domain/joinrequest"
	"github.com/andrisetiawan/squadhub/internal/domain/player"
	"github.com/andrisetiawan/squadhub/internal/domain/progress"
	"github.com/andrisetiawan/squadhub/internal/domain/team"
	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
	"github.com/andrisetiawan/squadhub/internal/infrastructure/account/heimdall"
	cacherepo "github.com/andrisetiawan/squadhub/internal/infrastructure/repository/cache"
	"github.com/andrisetiawan/squadhub/internal/infrastructure/repository/memory"
	"github.com/andrisetiawan/squadhub/internal/infrastructure/repository/postgres"
	"github.com/andrisetiawan/squadhub/internal/interfaces/httpapi"
	basecache "github.com/andrisetiawan/squadhub/internal/platform/cache"
	idgen "github.com/andrisetiawan/squadhub/internal/platform/id"
	"github.com/andrisetiawan/squadhub/internal/platform/resilience"
	"github.com/andrisetiawan/squadhub/internal/usecase"
)

type repositories struct {
	teams        team.Repository
	players      player.Repository
	coaches      coach.Repository
	clusters     cluster.Repository
	joinRequests joinrequest.Repository
	plans        trainingplan.Repository
	assignments  assignment.Repository
	progress     progress.Repository
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.coaches = cacherepo.NewCoachRepository(repos.coaches, store)
		repos.clusters = cacherepo.NewClusterRepository(repos.clusters, store)
	}

	idGen := idgen.NewRandomGenerator()

	teamSvc := usecase.NewTeamService(repos.teams, repos.players, repos.coaches, repos.clusters)
	joinRequestSvc := usecase.NewJoinRequestService(repos.joinRequests, repos.teams, repos.players, idGen)
	planSvc := usecase.NewTrainingPlanService(repos.plans, idGen)
	assignmentSvc := usecase.NewAssignmentService(repos.assignments, repos.plans, repos.teams, repos.players, idGen)
	progressSvc := usecase.NewProgressService(repos.progress, repos.assignments, repos.teams, idGen)
	orchestrator := usecase.NewTrainingOrchestrator(
		buildRecommender(cfg, logger),
		planSvc,
		assignmentSvc,
		teamSvc,
		progressSvc,
		repos.teams,
		cfg.BulkAssignWorkers,
	)

	heimdallClient := heimdall.NewClient(
		&http.Client{Timeout: cfg.HeimdallTimeout},
		cfg.HeimdallBaseURL,
		cfg.HeimdallIntrospectPath,
		cfg.HeimdallAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.HeimdallCircuitEnabled,
			FailureThreshold: cfg.HeimdallCircuitFailureCount,
			OpenTimeout:      cfg.HeimdallCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.HeimdallCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(joinRequestSvc, planSvc, assignmentSvc, progressSvc, teamSvc, orchestrator, logger)
	router := httpapi.NewRouter(handler, heimdallClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Info("using in-memory storage with seed data")
		teamRepo := memory.NewTeamRepository(memory.SeedTeams(), memory.SeedMemberships(), memory.SeedCoachAssignments())
		assignmentRepo := memory.NewAssignmentRepository()
		return repositories{
			teams:        teamRepo,
			players:      memory.NewPlayerRepository(memory.SeedPlayers()),
			coaches:      memory.NewCoachRepository(memory.SeedCoaches()),
			clusters:     memory.NewClusterRepository(memory.SeedClusters()),
			joinRequests: memory.NewJoinRequestRepository(teamRepo),
			plans:        memory.NewTrainingPlanRepository(),
			assignments:  assignmentRepo,
			progress:     memory.NewProgressRepository(assignmentRepo),
		}, nil
	case config.StorageDriverPostgres:
		return buildPostgresRepositories(cfg, logger)
	default:
		return repositories{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func buildPostgresRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return repositories{}, fmt.Errorf("ping database: %w", err)
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSeed()
	if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}
	logger.Info("postgres storage ready", "db", dbNameFromURL(cfg.DBURL))

	return repositories{
		teams:        postgres.NewTeamRepository(db),
		players:      postgres.NewPlayerRepository(db),
		coaches:      postgres.NewCoachRepository(db),
		clusters:     postgres.NewClusterRepository(db),
		joinRequests: postgres.NewJoinRequestRepository(db),
		plans:        postgres.NewTrainingPlanRepository(db),
		assignments:  postgres.NewAssignmentRepository(db),
		progress:     postgres.NewProgressRepository(db),
	}, nil
}

// buildRecommender picks the HTTP client when the engine is configured and
// falls back to the static provider otherwise, so bulk assignment works in
// every environment.
func buildRecommender(cfg config.Config, logger *slog.Logger) usecase.RecommendationProvider {
	if !cfg.RecoEngineEnabled {
		return recoengine.NewStaticProvider()
	}

	return recoengine.NewClient(recoengine.ClientConfig{
		BaseURL:    cfg.RecoEngineBaseURL,
		APIKey:     cfg.RecoEngineAPIKey,
		Timeout:    cfg.RecoEngineTimeout,
		MaxRetries: cfg.RecoEngineMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RecoEngineCircuitEnabled,
			FailureThreshold: cfg.RecoEngineCircuitFailureCount,
			OpenTimeout:      cfg.RecoEngineCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RecoEngineCircuitHalfOpenMaxReq,
		},
	})
}
