package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Validate rejects a configuration the process could not run on. It is
// called once at startup, before anything connects anywhere.
func Validate(cfg Config) error {
	if err := validateApp(cfg.App()); err != nil {
		return fmt.Errorf("app config validation failed: %w", err)
	}

	if err := validateServer(cfg.Server()); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateDatabase(cfg.Database()); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	if err := validateRedis(cfg.Redis()); err != nil {
		return fmt.Errorf("redis config validation failed: %w", err)
	}

	if err := validateCache(cfg.Cache()); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if err := validateLogger(cfg.Logger()); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	if err := validateAuth(cfg.Auth()); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}

	if err := validateEmail(cfg.Email()); err != nil {
		return fmt.Errorf("email config validation failed: %w", err)
	}
	return nil
}

func validateApp(cfg AppConfig) error {
	if cfg.Environment() == "" {
		return fmt.Errorf("environment variable is required, please set ENV env variable")
	}

	switch cfg.Environment() {
	case LocalEnv, DevelopmentEnv, ProductionEnv:
	default:
		return fmt.Errorf("ENV=%s is invalid, only accept `%s`, `%s`, `%s`", cfg.Environment(), LocalEnv, DevelopmentEnv, ProductionEnv)
	}

	if cfg.TokenIssuer() == "" {
		return fmt.Errorf("token_issuer is required")
	}

	if cfg.TokenExpiresIn() == "" {
		return fmt.Errorf("token_expires_in is required")
	}

	if cfg.TokenSecret() == "" {
		return fmt.Errorf("token secret is required, please set TOKEN_SECRET env variable")
	}

	if cfg.SystemAdminDefaultEmail() == "" {
		return fmt.Errorf("system admin default email is required, please set SYSTEM_ADMIN_DEFAULT_EMAIL env variable")
	}

	if cfg.SystemAdminDefaultPassword() == "" {
		return fmt.Errorf("system admin default password is required, please set SYSTEM_ADMIN_DEFAULT_PASSWORD env variable")
	}

	return nil
}

func validateServer(cfg ServerConfig) error {
	if cfg.Host() == "" {
		return fmt.Errorf("host is required")
	}

	if cfg.Host() != "0.0.0.0" && cfg.Host() != "localhost" {
		if net.ParseIP(cfg.Host()) == nil {
			return fmt.Errorf("host must be a valid IP address or 'localhost'")
		}
	}

	if cfg.Port() <= 0 || cfg.Port() > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	if cfg.ReadTimeout() <= 0 {
		return fmt.Errorf("read_timeout must be positive")
	}

	if cfg.WriteTimeout() <= 0 {
		return fmt.Errorf("write_timeout must be positive")
	}

	// Domain is what reset links get built from, so it must be a url.
	if cfg.Domain() != "" && !strings.HasPrefix(cfg.Domain(), "http") {
		return fmt.Errorf("domain must start with http:// or https://")
	}

	return nil
}

func validateDatabase(cfg DatabaseConfig) error {
	if cfg.Host() == "" {
		return fmt.Errorf("database host is required")
	}

	if cfg.Port() == "" {
		return fmt.Errorf("database port is required")
	}

	if port, err := strconv.Atoi(cfg.Port()); err != nil {
		return fmt.Errorf("database port must be numeric: %w", err)
	} else if port <= 0 || port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535")
	}

	if cfg.User() == "" {
		return fmt.Errorf("database user is required")
	}

	if cfg.Password() == "" {
		return fmt.Errorf("database password is required")
	}

	if cfg.Name() == "" {
		return fmt.Errorf("database name is required")
	}

	if cfg.MaxOpenConns() <= 0 {
		return fmt.Errorf("max_open_conns must be positive")
	}

	if cfg.MaxIdleConns() <= 0 {
		return fmt.Errorf("max_idle_conns must be positive")
	}

	if cfg.MaxIdleConns() > cfg.MaxOpenConns() {
		return fmt.Errorf("max_idle_conns cannot be greater than max_open_conns")
	}

	if cfg.ConnMaxLifetime() <= 0 {
		return fmt.Errorf("conn_max_lifetime must be positive")
	}

	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	if !lo.Contains(validSSLModes, cfg.SSLMode()) {
		return fmt.Errorf("ssl_mode must be one of: %s", strings.Join(validSSLModes, ", "))
	}

	if cfg.EnableLog() {
		validLogLevels := []string{"silent", "error", "warn", "info"}
		if !lo.Contains(validLogLevels, cfg.LogLevel()) {
			return fmt.Errorf("database log_level must be one of: %s", strings.Join(validLogLevels, ", "))
		}
	}

	return nil
}

func validateRedis(cfg RedisConfig) error {
	if cfg.Host() == "" {
		return fmt.Errorf("redis host is required")
	}

	if cfg.Port() <= 0 || cfg.Port() > 65535 {
		return fmt.Errorf("redis port must be between 1 and 65535")
	}

	if cfg.DB() < 0 || cfg.DB() > 15 {
		return fmt.Errorf("redis db must be between 0 and 15")
	}

	return nil
}

func validateCache(cfg CacheConfig) error {
	validProviders := []string{"redis", "memory"}
	if !lo.Contains(validProviders, cfg.Provider()) {
		return fmt.Errorf("cache provider must be one of: %s", strings.Join(validProviders, ", "))
	}

	if cfg.DefaultTTL() <= 0 {
		return fmt.Errorf("default_ttl must be positive")
	}

	return nil
}

func validateLogger(cfg LoggerConfig) error {
	if cfg.LogFilePath() == "" {
		return fmt.Errorf("log_file_path is required")
	}

	if err := os.MkdirAll(cfg.LogFilePath(), 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	if cfg.LogFileName() == "" {
		return fmt.Errorf("log_file_name is required")
	}

	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	if !lo.Contains(validLevels, cfg.LogLevel()) {
		return fmt.Errorf("log_level must be one of: %s", strings.Join(validLevels, ", "))
	}

	if cfg.MaxFileSizeMB() <= 0 {
		return fmt.Errorf("max_file_size_mb must be positive")
	}

	if cfg.MaxFileAgeDays() <= 0 {
		return fmt.Errorf("max_file_age_days must be positive")
	}

	if cfg.MaxBackupFiles() <= 0 {
		return fmt.Errorf("max_backup_files must be positive")
	}

	// A layout string with no reference-time tokens formats to itself.
	if cfg.TimestampFormat() != "" {
		testTime := time.Now()
		if testTime.Format(cfg.TimestampFormat()) == cfg.TimestampFormat() {
			return fmt.Errorf("invalid timestamp_format: %s", cfg.TimestampFormat())
		}
	}

	return nil
}

func validateAuth(cfg AuthConfig) error {
	if cfg.MaxLoginAttempts() <= 0 {
		return fmt.Errorf("max_login_attempts must be positive")
	}

	if cfg.LoginLockout() <= 0 {
		return fmt.Errorf("login_lockout must be positive")
	}

	if cfg.ResetTokenTTL() <= 0 {
		return fmt.Errorf("reset_token_ttl must be positive")
	}

	if cfg.ResetTokenTTL() > 24*time.Hour {
		return fmt.Errorf("reset_token_ttl must not exceed 24 hours")
	}

	return nil
}

func validateEmail(cfg EmailConfig) error {
	provider := cfg.Provider()
	validProviders := []string{"sendgrid", "ses", "mock"}
	if !lo.Contains(validProviders, provider) {
		return fmt.Errorf("email provider must be one of: %s", strings.Join(validProviders, ", "))
	}

	if provider != "mock" && cfg.DefaultFrom() == "" {
		return fmt.Errorf("default_from is required when provider is '%s'", provider)
	}

	if provider == "sendgrid" && cfg.SendGridAPIKey() == "" {
		return fmt.Errorf("sendgrid api key is required, please set SENDGRID_API_KEY env variable")
	}

	if provider == "ses" {
		if cfg.SESRegion() == "" {
			return fmt.Errorf("ses_region is required when provider is 'ses'")
		}
		if cfg.SESAccessKey() == "" {
			return fmt.Errorf("ses access key is required, please set SES_ACCESS_KEY env variable")
		}
		if cfg.SESSecretKey() == "" {
			return fmt.Errorf("ses secret key is required, please set SES_SECRET_KEY env variable")
		}
	}

	return nil
}
