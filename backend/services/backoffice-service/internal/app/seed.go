package app

import (
	"context"
	"fmt"
	"time"

	"github.com/insightventures/backoffice/backend/shared/go-seeding"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

// SeedTestData loads the demo portfolio and builds its calendar so a fresh
// environment shows events immediately.
func SeedTestData(ctx context.Context, repos seeding.PortfolioRepos, generator interface {
	GenerateAllCalendarEvents(ctx context.Context) error
}) error {
	if err := seeding.SeedDemoPortfolio(ctx, repos, time.Now()); err != nil {
		return fmt.Errorf("seed demo portfolio: %w", err)
	}
	if err := generator.GenerateAllCalendarEvents(ctx); err != nil {
		return fmt.Errorf("generate calendar for seed data: %w", err)
	}
	utils.Logger.Info("Seeded test data successfully")
	return nil
}
