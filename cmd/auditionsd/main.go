// Command auditionsd runs the audition evaluation HTTP service.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/connectcc/auditions/infrastructure/httpapi"
	"github.com/connectcc/auditions/infrastructure/llm"
	"github.com/connectcc/auditions/infrastructure/store"
	"github.com/connectcc/auditions/infrastructure/suggest"
	"github.com/connectcc/auditions/internal/application"
	"github.com/connectcc/auditions/internal/ports"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// Missing .env is fine outside local development.
	_ = godotenv.Load()

	cfg, err := application.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	contestants, err := newStore(cfg.Store)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	criteria, questions, err := newSuggesters(cfg.LLM)
	if err != nil {
		log.Fatalf("llm: %v", err)
	}

	access := application.NewAccessService(cfg.Auth)
	eval, err := application.NewEvaluationService(contestants, criteria, questions)
	if err != nil {
		log.Fatalf("evaluation service: %v", err)
	}
	dashboard, err := application.NewDashboardService(contestants)
	if err != nil {
		log.Fatalf("dashboard service: %v", err)
	}

	server, err := httpapi.NewServer(cfg.Server, access, eval, dashboard)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Println("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.Server.Addr)
	if err := server.Listen(cfg.Server.Addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}

func newStore(cfg application.StoreConfig) (ports.ContestantStore, error) {
	if cfg.Driver == "memory" {
		return store.NewMemoryStore(), nil
	}
	return store.NewPostgresStore(cfg.DSN)
}

func newSuggesters(cfg application.LLMConfig) (ports.CriteriaSuggester, ports.QuestionSuggester, error) {
	middleware := []llm.Middleware{
		llm.TracingMiddleware("auditions"),
		llm.MetricsMiddleware(),
		llm.TimeoutMiddleware(cfg.Timeout()),
	}
	if cfg.RequestsPerMinute > 0 {
		middleware = append(middleware, llm.RateLimitMiddleware(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute))
	}

	client, err := llm.NewClient(cfg.Provider, llm.ClientConfig{
		APIKey:     cfg.APIKey,
		Model:      modelFor(cfg),
		Middleware: middleware,
	})
	if err != nil {
		return nil, nil, err
	}

	criteria, err := suggest.NewCriteriaProvider(client, suggest.DefaultCriteriaConfig())
	if err != nil {
		return nil, nil, err
	}
	questions, err := suggest.NewQuestionProvider(client, suggest.DefaultQuestionConfig())
	if err != nil {
		return nil, nil, err
	}
	return criteria, questions, nil
}

func modelFor(cfg application.LLMConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	switch cfg.Provider {
	case "anthropic":
		return llm.AnthropicDefaultModel
	case "google":
		return llm.GoogleDefaultModel
	default:
		return llm.OpenAIDefaultModel
	}
}
