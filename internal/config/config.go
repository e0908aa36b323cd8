package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/brigadly/backend/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	Env              string
	AppPort          string
	AppUrl           string

	// Database
	DBUrl string

	// Twilio / SendGrid for notification dispatch
	TwilioAccountSID string
	TwilioAuthToken  string
	SendGridAPIKey   string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// LaunchDarkly flags
	LDFlag_TwilioFromPhone     string
	LDFlag_SendgridFromEmail   string
	LDFlag_SendgridSandboxMode bool
	LDFlag_SeedDbWithTestData  bool
	LDFlag_CORSHighSecurity    bool
}

const (
	OrganizationName    = "Brigadly"
	LDConnectionTimeout = 5 * time.Second
)

func LoadConfig(appName string) *Config {
	utils.Logger.Info("Loading config for app: ", appName)

	env := mustEnv("ENV")
	appUrl := mustEnv("APP_URL")
	appPort := mustEnv("APP_PORT")
	dbURL := mustEnv("DB_URL")

	pubB64 := mustEnv("RSA_PUBLIC_KEY_BASE64")
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	twilioSID := mustEnv("TWILIO_ACCOUNT_SID")
	twilioToken := mustEnv("TWILIO_AUTH_TOKEN")
	sgAPIKey := mustEnv("SENDGRID_API_KEY")
	ldSDKKey := mustEnv("LD_SDK_KEY")

	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind("service", appName+"-"+env)

	twilioFromFlag, err := ldClient.StringVariation("twilio_from_phone", ctx, "")
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving twilio_from_phone flag")
	}
	if twilioFromFlag == "" {
		utils.Logger.Warn("twilio_from_phone flag is empty, defaulting to +420000000000")
		twilioFromFlag = "+420000000000"
	}

	sgFromFlag, err := ldClient.StringVariation("sendgrid_from_email", ctx, "")
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_from_email flag")
	}
	if sgFromFlag == "" {
		utils.Logger.Warn("sendgrid_from_email flag is empty, defaulting to no-reply@brigadly.cz")
		sgFromFlag = "no-reply@brigadly.cz"
	}

	sgSandboxFlag, err := ldClient.BoolVariation("sendgrid_sandbox_mode", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_sandbox_mode flag")
	}

	seedDbWithTestDataFlag, err := ldClient.BoolVariation("seed_db_with_test_data", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving seed_db_with_test_data flag")
	}

	corsHighSecurityFlag, err := ldClient.BoolVariation("cors_high_security", ctx, true)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving cors_high_security flag")
	}

	return &Config{
		OrganizationName: OrganizationName,
		AppName:          appName,
		Env:              env,
		AppPort:          appPort,
		AppUrl:           appUrl,

		DBUrl: dbURL,

		TwilioAccountSID: twilioSID,
		TwilioAuthToken:  twilioToken,
		SendGridAPIKey:   sgAPIKey,

		RSAPublicKey: pubKey,

		LDFlag_TwilioFromPhone:     twilioFromFlag,
		LDFlag_SendgridFromEmail:   sgFromFlag,
		LDFlag_SendgridSandboxMode: sgSandboxFlag,
		LDFlag_SeedDbWithTestData:  seedDbWithTestDataFlag,
		LDFlag_CORSHighSecurity:    corsHighSecurityFlag,
	}
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}
