//go:build (dev_test || staging_test) && integration

package integration

import (
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/config"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/routes"
	"github.com/insightventures/backoffice/backend/shared/go-testhelpers"
)

var h *testhelpers.TestHelper

func TestMain(m *testing.M) {
	for name, v := range map[string]string{
		"AppName":         config.AppName,
		"UniqueRunnerID":  config.UniqueRunnerID,
		"UniqueRunNumber": config.UniqueRunNumber,
	} {
		if v == "" {
			log.Fatalf("config.%s is empty (ldflags missing?)", name)
		}
	}

	h = testhelpers.NewTestHelper(&testing.T{}, config.AppName, config.UniqueRunnerID, config.UniqueRunNumber)

	if err := waitForHealthy(h.BaseURL+routes.Health, 30*time.Second); err != nil {
		log.Fatalf("backoffice-service never became healthy at %s: %v", h.BaseURL, err)
	}
	log.Printf("backoffice-service integration tests: baseURL=%s, env=%s", h.BaseURL, os.Getenv("ENV"))

	os.Exit(m.Run())
}

// waitForHealthy polls the health endpoint until it answers 200 or the
// deadline passes. A freshly deployed service may still be connecting to
// the database.
func waitForHealthy(url string, within time.Duration) error {
	client := &http.Client{Timeout: 5 * time.Second}
	deadline := time.Now().Add(within)
	for {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			if err == nil {
				err = http.ErrHandlerTimeout
			}
			return err
		}
		time.Sleep(time.Second)
	}
}
