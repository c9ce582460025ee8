// Command export writes the full transaction log as an xlsx report.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/pukulo/ledgerchat/internal/config"
	"github.com/pukulo/ledgerchat/internal/domain"
	"github.com/pukulo/ledgerchat/internal/ledger"
	"github.com/pukulo/ledgerchat/internal/logger"
	"github.com/pukulo/ledgerchat/internal/report"
	"github.com/pukulo/ledgerchat/internal/store"
)

func main() {
	log := logger.New()

	cfgPath := flag.String("config", config.DefaultPath, "path to the config file")
	out := flag.String("out", "report.xlsx", "where to write the report")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	rows, err := loadRows(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading ledger")
	}

	data, err := report.Export(rows)
	if err != nil {
		log.Fatal().Err(err).Msg("building report")
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("writing report")
	}

	balance := decimal.Zero
	if len(rows) > 0 {
		balance = rows[len(rows)-1].BalanceAfter
	}

	fmt.Printf("Wrote %d transactions to %s\n\n", len(rows), *out)
	fmt.Print(report.Summary(balance, ledger.Aggregate(rows)))
}

func loadRows(cfg config.Config) ([]domain.Transaction, error) {
	if cfg.StoreBackend == config.BackendSQLite {
		s, err := store.OpenSQLite(cfg.LedgerPath)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Load()
	}
	return store.NewXLSX(cfg.LedgerPath).Load()
}
