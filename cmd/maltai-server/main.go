// Command maltai-server exposes the assistant over HTTP: /health,
// /transcribe for speech-to-text uploads, and /ws for the
// conversation channel.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/maltai/maltai-go/agent"
	"github.com/maltai/maltai-go/audio"
	"github.com/maltai/maltai-go/memory"
	"github.com/maltai/maltai-go/memory/embedder"
	"github.com/maltai/maltai-go/memory/embedder/mock"
	"github.com/maltai/maltai-go/memory/store/memstore"
	"github.com/maltai/maltai-go/memory/store/sqlite"
	"github.com/maltai/maltai-go/model"
	"github.com/maltai/maltai-go/server"
)

func main() {
	var (
		addr       = flag.String("addr", ":8000", "listen address")
		configPath = flag.String("config", "", "path to YAML configuration file")
		dbPath     = flag.String("db", "maltai.db", "sqlite database path (empty for in-memory store)")
	)
	flag.Parse()

	cfg := agent.NewConfiguration(nil)
	if *configPath != "" {
		loaded, err := agent.LoadConfigurationFile(*configPath)
		if err != nil {
			log.Fatalf("[MAIN] %v", err)
		}
		cfg = loaded
	}

	store, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("[MAIN] %v", err)
	}
	defer store.Close()

	client, err := model.New(cfg.Model, apiKeyFor(cfg.Model))
	if err != nil {
		log.Fatalf("[MAIN] %v", err)
	}
	a := agent.New(store, client, cfg)

	var transcriber audio.Transcriber
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		transcriber = audio.NewOpenAISpeech(key, "")
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(a, transcriber).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("[MAIN] Listening on %s (model %s, user %s)", *addr, cfg.Model, cfg.UserID)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("[MAIN] %v", err)
	}
}

func openStore(dbPath string) (memory.Store, error) {
	cached, err := embedder.NewCached(mock.New(), 0)
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		return memstore.New(cached), nil
	}
	return sqlite.Open(dbPath, cached)
}

func apiKeyFor(modelSpec string) string {
	if strings.HasPrefix(modelSpec, "anthropic/") {
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return os.Getenv("OPENAI_API_KEY")
}
