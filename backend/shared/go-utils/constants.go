package utils

const (
	OrganizationName                      = "Insight Ventures"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// Inquiry notifications go here unless overridden by config.
	TeamInboxEmail  = "team@insightventures.com"
	TestEmailSuffix = "testing@insightventures.com"
)
