package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-vault-cache/internal/config"
	"github.com/MKhiriev/go-vault-cache/internal/crypto"
	"github.com/MKhiriev/go-vault-cache/internal/depgraph"
	"github.com/MKhiriev/go-vault-cache/internal/logger"
	"github.com/MKhiriev/go-vault-cache/internal/service"
	"github.com/MKhiriev/go-vault-cache/internal/store"
	"github.com/MKhiriev/go-vault-cache/internal/validators"
	"github.com/MKhiriev/go-vault-cache/models"
	"github.com/google/uuid"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vault-cache")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Components and their dependencies are declared up front; the graph
	// yields the one deterministic construction order and rejects cycles.
	graph := depgraph.New()
	graph.AddNode("keychain")
	graph.AddNode("cipher")
	graph.AddNode("store")
	graph.AddNode("coordinator")
	graph.AddNode("rebuild-job")
	mustEdge(log, graph, "cipher", "keychain")
	mustEdge(log, graph, "coordinator", "cipher")
	mustEdge(log, graph, "coordinator", "store")
	mustEdge(log, graph, "rebuild-job", "coordinator")

	order, err := graph.TopoOrder()
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving component order")
	}
	log.Debug().Strs("order", order).Msg("resolved component initialization order")

	var (
		keychain    crypto.KeyChainService
		cipher      crypto.Cipher
		db          *store.DB
		coordinator *service.Coordinator[models.Secret]
	)

	for _, component := range order {
		switch component {
		case "keychain":
			keychain = crypto.NewKeyChainService()
		case "cipher":
			salt, saltErr := base64.StdEncoding.DecodeString(cfg.Crypto.Salt)
			if saltErr != nil {
				log.Fatal().Err(saltErr).Msg("error decoding key-derivation salt")
			}
			key := keychain.DeriveKey(cfg.Crypto.Passphrase, salt)
			cipher, err = crypto.NewAESCipher(key)
			if err != nil {
				log.Fatal().Err(err).Msg("error creating cipher")
			}
		case "store":
			db, err = connectDB(ctx, cfg.Storage.DB, log)
			if err != nil {
				log.Fatal().Err(err).Msg("error connecting to durable store")
			}
			if err = db.Migrate(); err != nil {
				log.Fatal().Err(err).Msg("error running migrations")
			}
		case "coordinator":
			coordinator = service.NewCoordinator[models.Secret](
				cfg.Collection.Name,
				store.NewEnvelopeRepository(db, log),
				cipher,
				validators.NewSecretValidator(),
				log,
				cfg.Sync.OpTimeout,
			)
			if err = coordinator.Init(ctx); err != nil {
				log.Fatal().Err(err).Msg("error initializing collection")
			}
		case "rebuild-job":
			if cfg.Sync.RebuildInterval > 0 {
				job := service.NewRebuildJob(coordinator, log)
				job.Start(ctx, cfg.Sync.RebuildInterval)
				defer job.Stop()
			}
		}
	}

	log.Info().
		Str("collection", coordinator.Collection()).
		Int("records", coordinator.Count()).
		Msg("collection ready")

	// Small smoke session against the running engine.
	sample := models.Secret{
		ID:       uuid.New().String(),
		Name:     "example.com",
		Login:    "demo",
		Password: "demo-password",
	}
	if err = coordinator.Add(ctx, sample); err != nil {
		log.Error().Err(err).Msg("error adding sample record")
	}

	for _, secret := range coordinator.GetAll() {
		log.Info().Str("id", secret.ID).Str("name", secret.Name).Msg("record")
	}

	if err = coordinator.Delete(ctx, sample.ID); err != nil {
		log.Error().Err(err).Msg("error deleting sample record")
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")
}

func connectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.DB, error) {
	switch cfg.Driver {
	case store.DriverPostgres:
		return store.NewConnectPostgres(ctx, cfg, log)
	case store.DriverSQLite:
		return store.NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Driver)
	}
}

func mustEdge(log *logger.Logger, graph *depgraph.Graph, node, dependency string) {
	if err := graph.AddEdge(node, dependency); err != nil {
		log.Fatal().Err(err).Msg("error declaring component dependency")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
