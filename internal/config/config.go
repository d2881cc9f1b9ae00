package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTIssuer         string
	JWTAudience       string
	AccessTokenExpiry time.Duration

	// SMSProvider selects the outbound SMS backend: "sns" or "console".
	SMSProvider string
	SNSRegion   string

	SMTPHost    string
	SMTPPort    string
	SMTPFrom    string
	SMTPUser    string
	SMTPPass    string
	OfficeEmail string

	AllowedOrigins []string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users           string
	Jobs            string
	JobApplications string
	Solicitations   string
	Announcements   string
	Policies        string
	Feedback        string
	RiceSchedules   string
	RiceClaims      string
	Accomplishments string
	Files           string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "4000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "ap-southeast-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Users:           getEnv("DYNAMO_TABLE_USERS", "users"),
			Jobs:            getEnv("DYNAMO_TABLE_JOBS", "jobs"),
			JobApplications: getEnv("DYNAMO_TABLE_JOB_APPLICATIONS", "job_applications"),
			Solicitations:   getEnv("DYNAMO_TABLE_SOLICITATIONS", "solicitations"),
			Announcements:   getEnv("DYNAMO_TABLE_ANNOUNCEMENTS", "announcements"),
			Policies:        getEnv("DYNAMO_TABLE_POLICIES", "policies"),
			Feedback:        getEnv("DYNAMO_TABLE_FEEDBACK", "feedback"),
			RiceSchedules:   getEnv("DYNAMO_TABLE_RICE_SCHEDULES", "rice_schedules"),
			RiceClaims:      getEnv("DYNAMO_TABLE_RICE_CLAIMS", "rice_claims"),
			Accomplishments: getEnv("DYNAMO_TABLE_ACCOMPLISHMENTS", "accomplishments"),
			Files:           getEnv("DYNAMO_TABLE_FILES", "files"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "infomatik-files"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTIssuer:         getEnv("JWT_ISSUER", "infomatik-api"),
		JWTAudience:       getEnv("JWT_AUDIENCE", "infomatik-web"),
		// Long-lived by upstream contract; the SPA relies on it.
		AccessTokenExpiry: time.Duration(getEnvInt("JWT_ACCESS_EXPIRY_DAYS", 30)) * 24 * time.Hour,

		SMSProvider: getEnv("SMS_PROVIDER", "sns"),
		SNSRegion:   getEnv("SNS_REGION", "ap-southeast-1"),

		SMTPHost:    getEnv("SMTP_HOST", "localhost"),
		SMTPPort:    getEnv("SMTP_PORT", "1025"),
		SMTPFrom:    getEnv("SMTP_FROM", "noreply@tabaco.gov.ph"),
		SMTPUser:    getEnv("SMTP_USERNAME", ""),
		SMTPPass:    getEnv("SMTP_PASSWORD", ""),
		OfficeEmail: getEnv("OFFICE_EMAIL", "office@tabaco.gov.ph"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
