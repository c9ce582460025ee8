// Command chat is the conversational expense tracker: type what you
// bought or earned, the model extracts a transaction, the sidebar keeps
// the running totals.
package main

import (
	"context"
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pukulo/ledgerchat/internal/config"
	"github.com/pukulo/ledgerchat/internal/ledger"
	"github.com/pukulo/ledgerchat/internal/logger"
	"github.com/pukulo/ledgerchat/internal/model"
	"github.com/pukulo/ledgerchat/internal/pipeline"
	"github.com/pukulo/ledgerchat/internal/store"
)

func main() {
	log := logger.New()

	cfgPath := flag.String("config", config.DefaultPath, "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	ctx := logger.WithContext(context.Background(), log)

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

	turns, err := hist.Turns()
	if err != nil {
		log.Warn().Err(err).Msg("could not load prior chat turns")
	}

	m, err := newModel(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("creating model client")
	}

	orch := pipeline.NewOrchestrator(m, led, hist)

	program := tea.NewProgram(newChatModel(ctx, orch, turns), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("chat UI exited with error")
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
