// Command ask records one transaction from the command line:
//
//	ask "I bought snacks for $80"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/pukulo/ledgerchat/internal/config"
	"github.com/pukulo/ledgerchat/internal/ledger"
	"github.com/pukulo/ledgerchat/internal/logger"
	"github.com/pukulo/ledgerchat/internal/model"
	"github.com/pukulo/ledgerchat/internal/pipeline"
	"github.com/pukulo/ledgerchat/internal/store"
)

var (
	okc   = color.New(color.FgGreen).PrintfFunc()
	warnc = color.New(color.FgYellow).PrintfFunc()
	errc  = color.New(color.BgRed, color.FgWhite).PrintfFunc()
)

func main() {
	log := logger.New()

	cfgPath := flag.String("config", config.DefaultPath, "path to the config file")
	flag.Parse()

	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "Usage: ask [-config path] <message>")
		fmt.Fprintln(os.Stderr, "Example: ask \"I bought snacks for $80\"")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	st, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("opening ledger store")
	}
	defer closeStore()

	led, err := ledger.Open(st)
	if err != nil {
		log.Fatal().Err(err).Msg("loading ledger")
	}

	hist, err := store.OpenHistory(cfg.HistoryPath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening chat history")
	}
	defer hist.Close()

	m, err := newModel(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("creating model client")
	}

	orch := pipeline.NewOrchestrator(m, led, hist)
	res := orch.HandleUserMessage(ctx, text)

	switch res.Status {
	case pipeline.StatusRecorded:
		okc("%s\n", res.Reply)
	case pipeline.StatusRejected:
		warnc("%s\n", res.Reply)
		os.Exit(1)
	default:
		errc(" %s ", res.Reply)
		fmt.Println()
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (ledger.Store, func(), error) {
	if cfg.StoreBackend == config.BackendSQLite {
		s, err := store.OpenSQLite(cfg.LedgerPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return store.NewXLSX(cfg.LedgerPath), func() {}, nil
}

func newModel(ctx context.Context, cfg config.Config) (model.Model, error) {
	if cfg.Provider == config.ProviderClaude {
		return model.NewClaude(cfg.ResolveAnthropicKey(), cfg.Model)
	}
	return model.NewGemini(ctx, cfg.Model)
}
