// Command maltai is an interactive terminal client for the assistant.
// Type a line, get a reply; with -speak the reply is also synthesized
// and played.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/maltai/maltai-go/agent"
	"github.com/maltai/maltai-go/audio"
	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/memory"
	"github.com/maltai/maltai-go/memory/embedder"
	"github.com/maltai/maltai-go/memory/embedder/mock"
	"github.com/maltai/maltai-go/memory/store/memstore"
	"github.com/maltai/maltai-go/memory/store/sqlite"
	"github.com/maltai/maltai-go/model"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML configuration file")
		userID     = flag.String("user", "", "user id for memory namespaces")
		modelSpec  = flag.String("model", "", "model as provider/model-name")
		dbPath     = flag.String("db", "", "sqlite database path (empty for in-memory store)")
		speak      = flag.Bool("speak", false, "speak replies aloud (requires OPENAI_API_KEY)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *userID, *modelSpec)
	if err != nil {
		log.Fatalf("[MAIN] %v", err)
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

	var opts []agent.Option
	if *speak {
		speech := audio.NewOpenAISpeech(os.Getenv("OPENAI_API_KEY"), "")
		opts = append(opts, agent.WithSpeech(speech, localPlayer{}))
	}
	a := agent.New(store, client, cfg, opts...)

	fmt.Printf("MaltAI ready (model %s, user %s). Ctrl-D to exit.\n", cfg.Model, cfg.UserID)
	runREPL(context.Background(), a)
}

func loadConfig(path, userID, modelSpec string) (agent.Configuration, error) {
	overrides := map[string]string{
		"user_id": userID,
		"model":   modelSpec,
	}
	if path == "" {
		return agent.NewConfiguration(overrides), nil
	}
	cfg, err := agent.LoadConfigurationFile(path)
	if err != nil {
		return agent.Configuration{}, err
	}
	if userID != "" {
		cfg.UserID = userID
	}
	if modelSpec != "" {
		cfg.Model = modelSpec
	}
	return cfg, nil
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

// apiKeyFor picks the provider's conventional environment variable.
func apiKeyFor(modelSpec string) string {
	if strings.HasPrefix(modelSpec, "anthropic/") {
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return os.Getenv("OPENAI_API_KEY")
}

func runREPL(ctx context.Context, a *agent.Agent) {
	var history []core.Message
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		reply, turn, err := a.Turn(ctx, history, text)
		if err != nil {
			log.Printf("[MAIN] Turn failed: %v", err)
			continue
		}
		history = append(history, turn...)
		fmt.Printf("MaltAI: %s\n", reply)
	}
}

// localPlayer writes synthesized audio to a temp file and leaves
// playback to the OS; portable audio output needs cgo bindings this
// binary avoids.
type localPlayer struct{}

func (localPlayer) Play(ctx context.Context, speech []byte) error {
	f, err := os.CreateTemp("", "maltai-*.mp3")
	if err != nil {
		return err
	}
	if _, err := f.Write(speech); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[MAIN] Reply audio written to %s", f.Name())
	return nil
}
