// Command crm is the CasaFlow command-line client. It talks to the
// CasaFlow backend API, keeps the agent's session on disk between
// invocations and prints results as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casaflow/crm-cli-go/internal/api"
	"github.com/casaflow/crm-cli-go/internal/config"
	"github.com/casaflow/crm-cli-go/internal/domain"
	"github.com/casaflow/crm-cli-go/internal/infra/cache"
	"github.com/casaflow/crm-cli-go/internal/infra/observability"
	"github.com/casaflow/crm-cli-go/internal/infra/resilience"
	"github.com/casaflow/crm-cli-go/internal/service"
	"github.com/casaflow/crm-cli-go/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds everything a command needs, wired once in the root
// command's PersistentPreRunE.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *observability.Metrics

	session *session.Session
	client  *api.Client

	catalog   *service.Catalog
	presenter *service.Presenter
	account   *service.Account

	subtypeCache *cache.TTLCache[[]domain.PropertySubtype]
	accountCache *cache.TTLCache[any]

	shutdownTracer func(context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	root := newRootCmd(a)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "crm",
		Short:         "CasaFlow real-estate CRM client",
		Long:          "crm manages leads, properties, conversations and presentations against a CasaFlow backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close(cmd.Context())
		},
	}

	root.AddCommand(
		newAuthCmds(a)...,
	)
	root.AddCommand(
		newLeadsCmd(a),
		newPropertiesCmd(a),
		newConversationsCmd(a),
		newPresentationsCmd(a),
		newInvitationsCmd(a),
		newEmailCmd(a),
		newAccountCmd(a),
		newDebugCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger := observability.NewLogger(cfg.LogLevel)
	a.logger = logger

	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "crm-cli")
		if err != nil {
			// Tracing is best effort for a CLI; log and move on.
			logger.Warn("tracer init failed", zap.Error(err))
		} else {
			a.shutdownTracer = shutdown
		}
	}

	a.metrics = observability.NewMetrics()

	store := session.NewFileStore(cfg.SessionFile, logger)
	a.session = session.New(store, logger)

	onUnauthorized := func() {
		fmt.Fprintln(os.Stderr, "Session expired. Run 'crm login' to sign in again.")
	}

	a.client = api.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.APIBaseURL,
		a.session,
		a.session,
		onUnauthorized,
		a.metrics,
		logger,
	)

	a.subtypeCache = cache.New[[]domain.PropertySubtype](cfg.CacheTTL)
	a.accountCache = cache.New[any](cfg.CacheTTL)

	retry := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
	}
	a.catalog = service.NewCatalog(
		a.client,
		a.subtypeCache,
		resilience.NewCircuitBreaker("catalog"),
		retry,
		a.metrics,
		logger,
	)
	a.presenter = service.NewPresenter(a.client, a.client, a.metrics, logger)
	a.account = service.NewAccount(a.client, a.accountCache, a.metrics, logger)

	return nil
}

func (a *app) close(ctx context.Context) {
	if a.subtypeCache != nil {
		a.subtypeCache.Close()
	}
	if a.accountCache != nil {
		a.accountCache.Close()
	}
	if a.shutdownTracer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := a.shutdownTracer(shutdownCtx); err != nil {
			a.logger.Debug("tracer shutdown", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// requireAuth fails fast before making a request that would 401 anyway.
func (a *app) requireAuth() error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not signed in, run 'crm login' first")
	}
	return nil
}

// companyID resolves the company to operate on: the flag wins, the
// signed-in agent's company is the default.
func (a *app) companyID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if agent := a.session.Agent(); agent != nil && agent.CompanyID != "" {
		return agent.CompanyID, nil
	}
	return "", fmt.Errorf("no company: pass --company or sign in")
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
