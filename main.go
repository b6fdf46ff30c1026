package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"headline_assistant/config"
	"headline_assistant/generator"
	"headline_assistant/server"
)

var verbose bool

// options carries the command-line flags into run.
type options struct {
	configPath string
	envPath    string
	addr       string
}

// newLLM is swapped in tests.
var newLLM = buildLLM

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config/config.json", "path to config.json")
	flag.StringVar(&opts.envPath, "env", ".env", "path to .env file with the API key")
	flag.StringVar(&opts.addr, "addr", "", "http listen address (overrides config.server_addr)")
	flag.BoolVar(&verbose, "v", false, "enable debug logs")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose || os.Getenv("DEBUG") == "1" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, opts)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run wires the app and serves until ctx is cancelled. Every resource it opens
// is released before it returns.
func run(ctx context.Context, opts options) error {
	if err := godotenv.Load(opts.envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("path", opts.envPath).Msg("could not load .env file")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	llm, err := newLLM(cfg)
	if err != nil {
		return err
	}
	if c, ok := llm.(io.Closer); ok {
		defer c.Close()
	}
	agent, err := generator.NewAgent(llm, cfg.LLM.Models, log.Logger.With().Str("component", "generator").Logger())
	if err != nil {
		return err
	}
	srv, err := server.New(agent, cfg, log.Logger.With().Str("component", "server").Logger())
	if err != nil {
		return err
	}

	listen := cfg.ServerAddr
	if opts.addr != "" {
		listen = opts.addr
	}

	log.Info().
		Str("addr", listen).
		Str("provider", cfg.LLM.Provider).
		Strs("models", cfg.LLM.Models).
		Msg("starting web server")
	if err := srv.Run(ctx, listen); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func buildLLM(cfg config.Config) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	}
	switch cfg.LLM.Provider {
	case config.ProviderMistral, config.ProviderOpenAI:
		// Mistral serves an OpenAI-compatible chat completions API.
		return generator.NewOpenAILLMFromConfig(settings)
	case config.ProviderGemini:
		return generator.NewGeminiLLMFromConfig(context.Background(), settings)
	case config.ProviderMock:
		log.Warn().Msg("using mock llm; titles are canned")
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
