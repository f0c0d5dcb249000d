package config

import (
	"fmt"
	"os"
	"time"

	"github.com/insightventures/backoffice/backend/shared/go-utils"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	UniqueRunNumber  string
	UniqueRunnerID   string

	// Database
	DBUrl string

	// SendGrid for inquiry notifications
	SendGridAPIKey     string
	InquiryNotifyEmail string

	// LaunchDarkly flags
	LDFlag_UsingIsolatedSchema      bool
	LDFlag_SeedDbWithTestData       bool
	LDFlag_CORSHighSecurity         bool
	LDFlag_SendgridFromEmail        string
	LDFlag_SendgridSandboxMode      bool
	LDFlag_CalendarRegenerationCron string
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second

	DefaultCalendarRegenerationCron = "5 0 * * *"
)

// build-time overrides
var (
	AppName             string
	UniqueRunNumber     string
	UniqueRunnerID      string
	LDServerContextKey  string
	LDServerContextKind string
)

func LoadConfig() *Config {
	if AppName == "" {
		utils.Logger.Fatal("AppName ldflag missing")
	}
	if UniqueRunNumber == "" {
		utils.Logger.Fatal("UniqueRunNumber ldflag missing")
	}
	if UniqueRunnerID == "" {
		utils.Logger.Fatal("UniqueRunnerID ldflag missing")
	}
	if LDServerContextKey == "" || LDServerContextKind == "" {
		utils.Logger.Fatal("LD context ldflags missing")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	env := requireEnv("ENV")
	appUrl := requireEnv("APP_URL_FROM_ANYWHERE")
	appPort := requireEnv("APP_PORT")

	client, err := utils.NewBWSSecretsClient()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize BWSSecretsClient")
	}
	defer client.Close()

	appSecretsName := fmt.Sprintf("%s-%s", AppName, env)
	appSecrets, err := client.GetBWSSecrets(appSecretsName)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to fetch app secrets from BWS")
	}

	dbURL := requireSecret(appSecrets, "DB_URL", appSecretsName)
	ldSDKKey := requireSecret(appSecrets, "LD_SDK_KEY", appSecretsName)
	sgAPIKey := requireSecret(appSecrets, "SENDGRID_API_KEY", appSecretsName)

	notifyEmail := appSecrets["INQUIRY_NOTIFY_EMAIL"]
	if notifyEmail == "" {
		notifyEmail = utils.TeamInboxEmail
	}

	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	boolFlag := func(key string) bool {
		v, err := ldClient.BoolVariation(key, ctx, false)
		if err != nil {
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", key)
		}
		utils.Logger.Debugf("%s flag: %t", key, v)
		return v
	}
	stringFlag := func(key, fallback string) string {
		v, err := ldClient.StringVariation(key, ctx, "")
		if err != nil {
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", key)
		}
		utils.Logger.Debugf("%s flag: %s", key, v)
		if v == "" {
			utils.Logger.Warnf("%s flag is empty, defaulting to %s", key, fallback)
			v = fallback
		}
		return v
	}

	return &Config{
		OrganizationName:   OrganizationName,
		AppName:            AppName,
		AppPort:            appPort,
		AppUrl:             appUrl,
		UniqueRunNumber:    UniqueRunNumber,
		UniqueRunnerID:     UniqueRunnerID,
		DBUrl:              dbURL,
		SendGridAPIKey:     sgAPIKey,
		InquiryNotifyEmail: notifyEmail,

		LDFlag_UsingIsolatedSchema:      boolFlag("using_isolated_schema"),
		LDFlag_SeedDbWithTestData:       boolFlag("seed_db_with_test_data"),
		LDFlag_CORSHighSecurity:         boolFlag("cors_high_security"),
		LDFlag_SendgridSandboxMode:      boolFlag("sendgrid_sandbox_mode"),
		LDFlag_SendgridFromEmail:        stringFlag("sendgrid_from_email", "no-reply@insightventures.com"),
		LDFlag_CalendarRegenerationCron: stringFlag("calendar_regeneration_cron", DefaultCalendarRegenerationCron),
	}
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func requireSecret(secrets map[string]string, key, project string) string {
	v, ok := secrets[key]
	if !ok || v == "" {
		utils.Logger.Fatalf("%s not found in BWS (%s)", key, project)
	}
	return v
}
