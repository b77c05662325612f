package api

import (
	"log/slog"

	portfoliohandler "github.com/mvandrade/loanlens/internal/domain/portfolio/handler"
	"github.com/mvandrade/loanlens/internal/domain/portfolio/risk"
	portfolioservice "github.com/mvandrade/loanlens/internal/domain/portfolio/service"
	workflowhandler "github.com/mvandrade/loanlens/internal/domain/workflow/handler"

	"github.com/mvandrade/loanlens/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	// Services
	AnalysisService *portfolioservice.AnalysisService

	// Handlers
	PortfolioHandler *portfoliohandler.PortfolioHandler
	WorkflowHandler  *workflowhandler.WorkflowHandler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() {
	policy := risk.Policy{
		HighOutstanding: d.Config.Analysis.HighRiskOutstanding,
		HighOverdueDays: d.Config.Analysis.HighRiskOverdueDays,
	}

	d.AnalysisService = portfolioservice.NewAnalysisService(policy, d.Config.Analysis.DefaultCurrency, d.Logger)

	d.Logger.Info("services initialized",
		"default_currency", d.Config.Analysis.DefaultCurrency,
		"high_risk_outstanding", policy.HighOutstanding,
		"high_risk_overdue_days", policy.HighOverdueDays,
	)
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() {
	d.PortfolioHandler = portfoliohandler.NewPortfolioHandler(d.AnalysisService, d.Logger)
	d.WorkflowHandler = workflowhandler.NewWorkflowHandler(d.Logger)

	d.Logger.Info("handlers initialized")
}
