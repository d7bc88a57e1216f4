// Command scholar is the RAG Scholar terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ragscholar/scholar-cli/internal/adapters/driven/api"
	"github.com/ragscholar/scholar-cli/internal/adapters/driven/config/file"
	"github.com/ragscholar/scholar-cli/internal/adapters/driven/storage/memory"
	"github.com/ragscholar/scholar-cli/internal/adapters/driven/storage/sqlite"
	"github.com/ragscholar/scholar-cli/internal/adapters/driving/cli"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
	"github.com/ragscholar/scholar-cli/internal/core/services"
	"github.com/ragscholar/scholar-cli/internal/logger"
)

// defaultBackendURL is used when neither the environment nor the
// config file names a backend.
const defaultBackendURL = "http://localhost:8000"

func main() {
	// Load .env if present; environment wins over the config file.
	_ = godotenv.Load()

	cfg := openConfig()

	classStore, cache, kv, closeStores := openStores()
	defer closeStores()

	client := buildClient(cfg)

	chatService := services.NewChatService(client, cache, kv, classStore)
	classService := services.NewClassService(client, classStore, cache, kv)
	classService.SetChatService(chatService)

	documentService := services.NewDocumentService(client, classStore)
	documentService.SetClassService(classService)

	achievementService := services.NewAchievementService(client)
	pollInterval := time.Duration(cfg.GetInt(file.KeyPollInterval)) * time.Second
	poller := services.NewAchievementPoller(achievementService, kv, pollInterval)

	statusService := services.NewStatusService(client, classStore)

	chatService.SetProfileContext(cfg.GetString(file.KeyProfileContext))

	ctx := context.Background()
	cli.SetTimezone(resolveTimezone(ctx, cfg, kv))
	cli.SetDefaultWatchDir(cfg.GetString(file.KeyWatchDir))

	if err := classService.Load(ctx); err != nil {
		logger.Warn("restoring class registry: %v", err)
	}
	if err := chatService.Restore(ctx); err != nil {
		logger.Warn("restoring last session: %v", err)
	}

	cli.SetServices(cli.Services{
		Status:       statusService,
		Class:        classService,
		Document:     documentService,
		Chat:         chatService,
		Achievements: achievementService,
		Poller:       poller,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openConfig opens the TOML config store, falling back to an in-memory
// store when the config directory is unusable.
func openConfig() driven.ConfigStore {
	cfg, err := file.NewConfigStore(os.Getenv("SCHOLAR_CONFIG_DIR"))
	if err != nil {
		logger.Warn("config store unavailable, using defaults: %v", err)
		return memory.NewConfigStore()
	}
	return cfg
}

// openStores opens the SQLite-backed local stores. Caches are
// best-effort, so an unusable data directory degrades to in-memory
// stores rather than aborting.
func openStores() (driven.ClassStore, driven.TranscriptCache, driven.KVStore, func()) {
	store, err := sqlite.NewStore(os.Getenv("SCHOLAR_DATA_DIR"))
	if err != nil {
		logger.Warn("local store unavailable, running without persistence: %v", err)
		return memory.NewClassStore(), memory.NewTranscriptCache(), memory.NewKVStore(), func() {}
	}

	return store.ClassStore(), store.TranscriptCache(), store.KVStore(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing local store: %v", err)
		}
	}
}

// resolveTimezone loads the user's preferred timezone. The config
// entry wins and is mirrored into the KV store, which then serves as
// the fallback when the config entry disappears.
func resolveTimezone(ctx context.Context, cfg driven.ConfigStore, kv driven.KVStore) *time.Location {
	name := cfg.GetString(file.KeyTimezone)
	if name != "" {
		if err := kv.Put(ctx, driven.KeyTimezone, name); err != nil {
			logger.Warn("persisting timezone: %v", err)
		}
	} else {
		name, _ = kv.Get(ctx, driven.KeyTimezone)
	}
	if name == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown timezone %q, using local time", name)
		return time.Local
	}
	return loc
}

// buildClient constructs the backend client from config and
// environment. SCHOLAR_BACKEND_URL and SCHOLAR_API_KEY override the
// config file.
func buildClient(cfg driven.ConfigStore) *api.Client {
	baseURL := os.Getenv("SCHOLAR_BACKEND_URL")
	if baseURL == "" {
		baseURL = cfg.GetString(file.KeyBackendURL)
	}
	if baseURL == "" {
		baseURL = defaultBackendURL
	}

	apiKey := os.Getenv("SCHOLAR_API_KEY")
	if apiKey == "" {
		apiKey = cfg.GetString(file.KeyBackendAPIKey)
	}

	opts := []api.Option{}
	if apiKey != "" {
		opts = append(opts, api.WithAPIKey(apiKey))
	}
	if secs := cfg.GetInt(file.KeyBackendTimeout); secs > 0 {
		opts = append(opts, api.WithTimeout(time.Duration(secs)*time.Second))
	}

	return api.NewClient(baseURL, opts...)
}
