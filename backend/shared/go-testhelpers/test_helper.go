package testhelpers

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/insightventures/backoffice/backend/shared/go-repositories"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

// TestHelper encapsulates all necessary components for running integration tests against a
// deployed service and its database.
type TestHelper struct {
	T       *testing.T
	Ctx     context.Context
	BaseURL string
	DB      *pgxpool.Pool

	// From ldflags
	AppName         string
	UniqueRunNumber string
	UniqueRunnerID  string

	// Repositories
	PropertyRepo repositories.PropertyRepository
	TenantRepo   repositories.TenantRepository
	LeaseRepo    repositories.LeaseRepository
	ProjectRepo  repositories.ProjectRepository
	ReminderRepo repositories.CustomReminderRepository
	EventRepo    repositories.CalendarEventRepository
	RentRollRepo repositories.RentRollRepository
	InquiryRepo  repositories.InquiryRepository
}

// NewTestHelper loads secrets, connects to the DB with the run's isolated role and initializes
// repositories. It's designed to be called once from a TestMain function.
func NewTestHelper(t *testing.T, appName, uniqueRunID, uniqueRunNum string) *TestHelper {
	// 1. Load environment
	baseURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if baseURL == "" {
		log.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	env := os.Getenv("ENV")
	if env == "" {
		log.Fatal("ENV env var is missing")
	}

	// 2. App secrets (DB_URL)
	client, err := utils.NewBWSSecretsClient()
	require.NoError(t, err, "Failed to init BWSSecretsClient")
	defer client.Close()

	appNameEnv := fmt.Sprintf("%s-%s", appName, env)
	appSecrets, err := client.GetBWSSecrets(appNameEnv)
	require.NoError(t, err)
	dbURL, ok := appSecrets["DB_URL"]
	require.True(t, ok && dbURL != "", "DB_URL not found in appSecrets")

	// 3. Connect to DB with isolated role
	effectiveURL, err := utils.WithIsolatedRole(dbURL, uniqueRunID, uniqueRunNum)
	require.NoError(t, err)

	ctx := context.Background()
	dbPool, err := pgxpool.Connect(ctx, effectiveURL)
	require.NoError(t, err)
	t.Cleanup(func() { dbPool.Close() })

	// 4. Repositories
	return &TestHelper{
		T:               t,
		Ctx:             ctx,
		BaseURL:         baseURL,
		DB:              dbPool,
		AppName:         appName,
		UniqueRunnerID:  uniqueRunID,
		UniqueRunNumber: uniqueRunNum,
		PropertyRepo:    repositories.NewPropertyRepository(dbPool),
		TenantRepo:      repositories.NewTenantRepository(dbPool),
		LeaseRepo:       repositories.NewLeaseRepository(dbPool),
		ProjectRepo:     repositories.NewProjectRepository(dbPool),
		ReminderRepo:    repositories.NewCustomReminderRepository(dbPool),
		EventRepo:       repositories.NewCalendarEventRepository(dbPool),
		RentRollRepo:    repositories.NewRentRollRepository(dbPool),
		InquiryRepo:     repositories.NewInquiryRepository(dbPool),
	}
}
