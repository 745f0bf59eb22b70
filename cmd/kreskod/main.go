package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"kresko/config"
	"kresko/core/events"
	"kresko/native/bank"
	"kresko/native/minter"
	"kresko/observability"
	"kresko/observability/logging"
	"kresko/storage"
)

func main() {
	configPath := flag.String("config", "kreskod.toml", "path to the daemon configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kreskod: %v\n", err)
		os.Exit(1)
	}

	service := cfg.Service
	if strings.TrimSpace(service) == "" {
		service = "kreskod"
	}
	logger := logging.Setup(service, cfg.Environment)

	var db storage.Database
	if strings.TrimSpace(cfg.DataDir) != "" {
		db, err = storage.NewLevelDB(cfg.DataDir)
		if err != nil {
			logger.Error("open database", "err", err)
			os.Exit(1)
		}
	} else {
		db = storage.NewMemDB()
	}
	defer db.Close()

	owner := common.HexToAddress(cfg.Owner)
	moduleAddr := common.HexToAddress(cfg.ModuleAddress)

	tokens := bank.NewLedger()
	oracle := minter.NewStaticOracle()
	state := storage.NewMinterState(db)

	engine := minter.NewEngine(moduleAddr, owner)
	engine.SetState(state)
	engine.SetTokenLedger(tokens)
	engine.SetOracle(oracle)
	engine.SetEmitter(&eventRecorder{logger: logger})

	if err := seed(engine, tokens, oracle, owner, moduleAddr, cfg); err != nil {
		logger.Error("seed protocol state", "err", err)
		os.Exit(1)
	}

	srv := &server{engine: engine, state: state, logger: logger}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/v1/params", srv.handleParams)
	router.Get("/v1/assets", srv.handleAssets)
	router.Get("/v1/accounts/{address}", srv.handleAccount)
	router.Handle("/metrics", promhttp.Handler())

	handler := otelhttp.NewHandler(router, service)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", cfg.ListenAddress)
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Error("serve", "err", err)
		os.Exit(1)
	}
}

// seed registers configured assets, installs protocol parameters and primes
// the fixture oracle. Already-initialised state is left untouched so a
// persistent data directory survives restarts.
func seed(engine *minter.Engine, tokens *bank.Ledger, oracle *minter.StaticOracle, owner, moduleAddr common.Address, cfg *config.Config) error {
	for i := range cfg.Assets {
		asset := cfg.Assets[i]
		addr := common.HexToAddress(asset.Address)
		feed := common.HexToAddress(asset.Oracle)
		if asset.PriceUSDWad != nil {
			oracle.SetPrice(feed, asset.PriceUSDWad)
		}
		switch strings.ToLower(strings.TrimSpace(asset.Kind)) {
		case "collateral":
			err := engine.RegisterCollateral(owner, minter.CollateralAsset{
				Address:  addr,
				Factor:   asset.FactorWad,
				Oracle:   feed,
				Decimals: asset.Decimals,
				Rebasing: asset.Rebasing,
			})
			if err != nil && err != minter.ErrAlreadyExists {
				return fmt.Errorf("register collateral %s: %w", asset.Address, err)
			}
		case "synthetic":
			tokens.SetOperator(addr, moduleAddr)
			err := engine.RegisterSynthetic(owner, minter.SyntheticAsset{
				Address:      addr,
				Symbol:       asset.Symbol,
				KFactor:      asset.KFactorWad,
				Oracle:       feed,
				Decimals:     asset.Decimals,
				Mintable:     asset.Mintable,
				MarketCapUSD: asset.MarketCapUSDWad,
			})
			if err != nil && err != minter.ErrAlreadyExists {
				return fmt.Errorf("register synthetic %s: %w", asset.Address, err)
			}
		}
	}

	params, err := cfg.Minter.Params()
	if err != nil {
		return err
	}
	if err := engine.InitParams(owner, params); err != nil && err != minter.ErrAlreadyInitialised {
		return err
	}
	return nil
}

// eventRecorder forwards protocol events to the structured log and keeps the
// liquidation and fee counters current.
type eventRecorder struct {
	logger *slog.Logger
}

func (r *eventRecorder) Emit(evt *events.Event) {
	if evt == nil {
		return
	}
	args := make([]any, 0, 2*len(evt.Attributes))
	for key, value := range evt.Attributes {
		args = append(args, slog.String(key, value))
	}
	r.logger.Info(evt.Type, args...)

	switch evt.Type {
	case minter.EventTypeLiquidation:
		observability.Minter().RecordLiquidation()
	case minter.EventTypeFeePaid:
		observability.Minter().RecordFeePayment()
	}
}

type server struct {
	engine *minter.Engine
	state  *storage.MinterState
	logger interface {
		Warn(msg string, args ...any)
	}
}

type accountResponse struct {
	Address            string `json:"address"`
	CollateralValueUSD string `json:"collateralValueUsd"`
	MinCollateralUSD   string `json:"minCollateralValueUsd"`
	DebtValueUSD       string `json:"debtValueUsd"`
	Liquidatable       bool   `json:"liquidatable"`
	MaxLiquidatableUSD string `json:"maxLiquidatableValueUsd"`
}

func (s *server) handleParams(w http.ResponseWriter, _ *http.Request) {
	params, err := s.state.GetParams()
	if err != nil || params == nil {
		http.Error(w, "parameters not initialised", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{
		"minCollateralRatio":   params.MinCollateralRatio.String(),
		"liquidationIncentive": params.LiquidationIncentive.String(),
		"burnFee":              params.BurnFee.String(),
		"minDebtValue":         params.MinDebtValue.String(),
		"feeRecipient":         params.FeeRecipient.Hex(),
	})
}

func (s *server) handleAssets(w http.ResponseWriter, _ *http.Request) {
	collateral, err := s.state.CollateralAssets()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	synthetic, err := s.state.SyntheticAssets()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := map[string][]string{"collateral": {}, "synthetic": {}}
	for _, addr := range collateral {
		out["collateral"] = append(out["collateral"], addr.Hex())
	}
	for _, addr := range synthetic {
		out["synthetic"] = append(out["synthetic"], addr.Hex())
	}
	writeJSON(w, out)
}

func (s *server) handleAccount(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "address")
	if !common.IsHexAddress(raw) {
		http.Error(w, "invalid address", http.StatusBadRequest)
		return
	}
	account := common.HexToAddress(raw)

	collateralValue, err := s.engine.AccountCollateralValue(account)
	if err != nil {
		s.fail(w, "collateral value", err)
		return
	}
	minValue, err := s.engine.AccountMinCollateralValue(account)
	if err != nil {
		s.fail(w, "min collateral value", err)
		return
	}
	debtValue, err := s.engine.AccountDebtValue(account)
	if err != nil {
		s.fail(w, "debt value", err)
		return
	}
	liquidatable, err := s.engine.IsLiquidatable(account)
	if err != nil {
		s.fail(w, "liquidatable", err)
		return
	}
	maxLiquidatable := big.NewInt(0)
	if liquidatable {
		maxLiquidatable, err = s.engine.MaxLiquidatableValue(account)
		if err != nil {
			s.fail(w, "max liquidatable", err)
			return
		}
	}
	observability.Minter().RecordOperation("query_account", nil)
	writeJSON(w, accountResponse{
		Address:            account.Hex(),
		CollateralValueUSD: collateralValue.String(),
		MinCollateralUSD:   minValue.String(),
		DebtValueUSD:       debtValue.String(),
		Liquidatable:       liquidatable,
		MaxLiquidatableUSD: maxLiquidatable.String(),
	})
}

func (s *server) fail(w http.ResponseWriter, what string, err error) {
	s.logger.Warn("account query failed", "what", what, "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
