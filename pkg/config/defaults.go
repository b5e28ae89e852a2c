package config

// Setting names read by the application and its extensions.
const (
	ApplicationTitle          = "APPLICATION_TITLE"
	ApplicationShortTitle     = "APPLICATION_SHORT_TITLE"
	ApplicationAPIEndpoint    = "APPLICATION_API_ENDPOINT"
	ApplicationTermsLine1     = "APPLICATION_TERMS_OS_USE_LINE1"
	ApplicationTermsCopyright = "APPLICATION_TERMS_OS_USE_COPYRIGHT"
	CompanyName               = "COMPANY_NAME"
	Environment               = "ENVIRONMENT"
	InstalledApps             = "INSTALLED_APPS"
	AvatarFileFormats         = "AVATAR_FILE_FORMATS"
	MaxAvatarSizeBytes        = "MAX_AVATAR_SIZE_BYTES"
	HTTPAddress               = "HTTP_ADDRESS"
	HTTPReadTimeout           = "HTTP_READ_TIMEOUT"
	HTTPWriteTimeout          = "HTTP_WRITE_TIMEOUT"
	HTTPIdleTimeout           = "HTTP_IDLE_TIMEOUT"
	ShutdownTimeout           = "SHUTDOWN_TIMEOUT"
	LogLevel                  = "LOG_LEVEL"
	SentryDSN                 = "SENTRY_DSN"
	RedisURL                  = "REDIS_URL"
)

// Defaults returns the compiled-in settings.
func Defaults() map[string]any {
	return map[string]any{
		ApplicationTitle:          "Employee Management Application",
		ApplicationShortTitle:     "EMApp",
		ApplicationAPIEndpoint:    "/api/v1/",
		ApplicationTermsLine1:     "Copyright © ",
		ApplicationTermsCopyright: "All rights reserved.",
		CompanyName:               "EMApp",
		Environment:               "development",
		InstalledApps:             []any{"core", "hrmgmt", "projectmgmt"},
		AvatarFileFormats:         []any{"png", "jpeg", "jpg"},
		MaxAvatarSizeBytes:        2 << 20,
		HTTPAddress:               ":8080",
		HTTPReadTimeout:           "15s",
		HTTPWriteTimeout:          "30s",
		HTTPIdleTimeout:           "2m",
		ShutdownTimeout:           "30s",
		LogLevel:                  "info",
		SentryDSN:                 "",
		RedisURL:                  "",
	}
}
