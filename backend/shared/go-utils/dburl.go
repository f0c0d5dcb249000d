package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// WithIsolatedRole swaps the user in baseURL for a per-run role named
// "<runnerID>-<runNumber>", keeping the password. CI runs use it to reach a
// schema that only that role can see.
func WithIsolatedRole(baseURL, runnerID, runNumber string) (string, error) {
	if runnerID == "" || runNumber == "" {
		return "", fmt.Errorf("runnerID and runNumber must be non-empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DB URL: %w", err)
	}

	password, _ := u.User.Password()
	u.User = url.UserPassword(strings.ToLower(runnerID+"-"+runNumber), password)
	return u.String(), nil
}
