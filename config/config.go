package config

import (
	"fmt"
	"time"
)

const (
	LocalEnv       = "local"
	DevelopmentEnv = "dev"
	ProductionEnv  = "prod"
)

type Config interface {
	App() AppConfig
	Server() ServerConfig
	Database() DatabaseConfig
	Redis() RedisConfig
	Cache() CacheConfig
	Logger() LoggerConfig
	Auth() AuthConfig
	Email() EmailConfig
}

type AppConfig interface {
	Name() string
	Version() string
	Environment() string
	IsProduction() bool
	TokenExpiresIn() string
	TokenSecret() string
	TokenIssuer() string
	SystemAdminDefaultName() string
	SystemAdminDefaultEmail() string
	SystemAdminDefaultPassword() string
}

type ServerConfig interface {
	Host() string
	Domain() string
	Port() int
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
	IdleTimeout() time.Duration
	MaxHeaderBytes() int
	AllowedOrigins() []string
}

type DatabaseConfig interface {
	Host() string
	Port() string
	User() string
	Password() string
	Name() string
	SSLMode() string
	MaxOpenConns() int
	MaxIdleConns() int
	ConnMaxLifetime() time.Duration
	LogLevel() string
	EnableLog() bool
}

type RedisConfig interface {
	Host() string
	Port() int
	Address() string
	Password() string
	DB() int
	Prefix() string
}

type CacheConfig interface {
	Provider() string
	DefaultTTL() time.Duration
}

type LoggerConfig interface {
	LogFilePath() string
	LogFileName() string
	TimestampFormat() string
	LogLevel() string
	FileExtension() string
	MaxFileSizeMB() int
	MaxFileAgeDays() int
	MaxBackupFiles() int
	IsCompressEnabled() bool
}

type AuthConfig interface {
	MaxLoginAttempts() int
	LoginLockout() time.Duration
	ResetTokenTTL() time.Duration
	ResetPasswordURL() string
}

type EmailConfig interface {
	Provider() string
	DefaultFrom() string
	FromName() string
	SendGridAPIKey() string
	SESRegion() string
	SESAccessKey() string
	SESSecretKey() string
}

// config holds the actual configuration implementation
type config struct {
	AppCfg      appConfig      `yaml:"app"`
	ServerCfg   serverConfig   `yaml:"server"`
	DatabaseCfg databaseConfig `yaml:"database"`
	RedisCfg    redisConfig    `yaml:"redis"`
	CacheCfg    cacheConfig    `yaml:"cache"`
	LoggerCfg   loggerConfig   `yaml:"logger"`
	AuthCfg     authConfig     `yaml:"auth"`
	EmailCfg    emailConfig    `yaml:"email"`
}

func (c *config) App() AppConfig {
	return &c.AppCfg
}

func (c *config) Server() ServerConfig {
	return &c.ServerCfg
}

func (c *config) Database() DatabaseConfig {
	return &c.DatabaseCfg
}

func (c *config) Redis() RedisConfig {
	return &c.RedisCfg
}

func (c *config) Cache() CacheConfig {
	return &c.CacheCfg
}

func (c *config) Logger() LoggerConfig {
	return &c.LoggerCfg
}

func (c *config) Auth() AuthConfig {
	return &c.AuthCfg
}

func (c *config) Email() EmailConfig {
	return &c.EmailCfg
}

type appConfig struct {
	NameStr        string `yaml:"name"`
	VersionStr     string `yaml:"version"`
	EnvironmentStr string `env:"ENV" env-default:"local"`

	TokenIssuerStr string `yaml:"token_issuer"`

	// TokenExpiresInStr is matched against an allow-list at token issue time,
	// so it stays a string here instead of a parsed duration.
	TokenExpiresInStr string `yaml:"token_expires_in" env-default:"24h"`
	TokenSecretStr    string `env:"TOKEN_SECRET"`

	SysAdminDefaultNameStr     string `env:"SYSTEM_ADMIN_DEFAULT_NAME" env-default:"System Admin"`
	SysAdminDefaultEmailStr    string `env:"SYSTEM_ADMIN_DEFAULT_EMAIL" env-default:""`
	SysAdminDefaultPasswordStr string `env:"SYSTEM_ADMIN_DEFAULT_PASSWORD" env-default:""`
}

func (c *appConfig) Name() string {
	return c.NameStr
}

func (c *appConfig) Version() string {
	return c.VersionStr
}

func (c *appConfig) Environment() string {
	return c.EnvironmentStr
}

func (c *appConfig) IsProduction() bool {
	return c.EnvironmentStr == ProductionEnv
}

func (c *appConfig) TokenExpiresIn() string {
	return c.TokenExpiresInStr
}

func (c *appConfig) TokenSecret() string {
	return c.TokenSecretStr
}

func (c *appConfig) TokenIssuer() string {
	return c.TokenIssuerStr
}

func (c *appConfig) SystemAdminDefaultName() string {
	return c.SysAdminDefaultNameStr
}

func (c *appConfig) SystemAdminDefaultEmail() string {
	return c.SysAdminDefaultEmailStr
}

func (c *appConfig) SystemAdminDefaultPassword() string {
	return c.SysAdminDefaultPasswordStr
}

type serverConfig struct {
	HostStr           string   `yaml:"host"`
	DomainStr         string   `yaml:"domain"`
	PortInt           int      `yaml:"port"`
	ReadTimeoutStr    string   `yaml:"read_timeout"`
	WriteTimeoutStr   string   `yaml:"write_timeout"`
	IdleTimeoutStr    string   `yaml:"idle_timeout" env-default:"120s"`
	MaxHeaderBytesInt int      `yaml:"max_header_bytes" env-default:"1048576"` // 1MB
	AllowedOriginsArr []string `yaml:"allowed_origins"`
}

func (s *serverConfig) Host() string {
	return s.HostStr
}

func (s *serverConfig) Domain() string {
	return s.DomainStr
}

func (s *serverConfig) Port() int {
	return s.PortInt
}

func (s *serverConfig) ReadTimeout() time.Duration {
	duration, _ := time.ParseDuration(s.ReadTimeoutStr)
	return duration
}

func (s *serverConfig) WriteTimeout() time.Duration {
	duration, _ := time.ParseDuration(s.WriteTimeoutStr)
	return duration
}

func (s *serverConfig) IdleTimeout() time.Duration {
	duration, _ := time.ParseDuration(s.IdleTimeoutStr)
	return duration
}

func (s *serverConfig) AllowedOrigins() []string {
	return s.AllowedOriginsArr
}

func (s *serverConfig) MaxHeaderBytes() int {
	return s.MaxHeaderBytesInt
}

type databaseConfig struct {
	HostStr            string `env:"POSTGRES_HOST" env-default:"localhost"`
	PortStr            string `env:"POSTGRES_PORT" env-default:"5432"`
	UserStr            string `env:"POSTGRES_USER" env-default:"postgres"`
	PasswordStr        string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	NameStr            string `env:"POSTGRES_DBNAME" env-default:"postgres"`
	SSLModeStr         string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	MaxOpenConnsInt    int    `yaml:"max_open_conns" env-default:"25"`
	MaxIdleConnsInt    int    `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetimeStr string `yaml:"conn_max_lifetime" env-default:"5m"`
	EnableLoggingBool  bool   `yaml:"enable_logging" env-default:"false"`
	LogLevelStr        string `yaml:"log_level" env-default:"warn"`
}

func (d *databaseConfig) Host() string {
	return d.HostStr
}

func (d *databaseConfig) Port() string {
	return d.PortStr
}

func (d *databaseConfig) User() string {
	return d.UserStr
}

func (d *databaseConfig) Password() string {
	return d.PasswordStr
}

func (d *databaseConfig) Name() string {
	return d.NameStr
}

func (d *databaseConfig) SSLMode() string {
	return d.SSLModeStr
}

func (d *databaseConfig) MaxOpenConns() int {
	return d.MaxOpenConnsInt
}

func (d *databaseConfig) MaxIdleConns() int {
	return d.MaxIdleConnsInt
}

func (d *databaseConfig) ConnMaxLifetime() time.Duration {
	duration, _ := time.ParseDuration(d.ConnMaxLifetimeStr)
	return duration
}

func (d *databaseConfig) EnableLog() bool {
	return d.EnableLoggingBool
}

func (d *databaseConfig) LogLevel() string {
	return d.LogLevelStr
}

type cacheConfig struct {
	ProviderStr   string `yaml:"provider"`
	DefaultTTLStr string `yaml:"default_ttl"`
}

func (c *cacheConfig) Provider() string {
	return c.ProviderStr
}

func (c *cacheConfig) DefaultTTL() time.Duration {
	duration, _ := time.ParseDuration(c.DefaultTTLStr)
	return duration
}

type loggerConfig struct {
	LogFilePathStr     string `yaml:"log_file_path"`
	LogFileNameStr     string `yaml:"log_file_name"`
	TimestampFormatStr string `yaml:"timestamp_format"`
	LogLevelStr        string `yaml:"log_level"`
	FileExtensionStr   string `yaml:"file_extension"`
	MaxFileSizeMBInt   int    `yaml:"max_file_size_mb"`
	MaxFileAgeDaysInt  int    `yaml:"max_file_age_days"`
	MaxBackupFilesInt  int    `yaml:"max_backup_files"`
	EnableCompressed   bool   `yaml:"enable_compressed"`
}

func (l *loggerConfig) LogFilePath() string {
	return l.LogFilePathStr
}

func (l *loggerConfig) LogFileName() string {
	return l.LogFileNameStr
}

func (l *loggerConfig) TimestampFormat() string {
	return l.TimestampFormatStr
}

func (l *loggerConfig) LogLevel() string {
	return l.LogLevelStr
}

func (l *loggerConfig) FileExtension() string {
	return l.FileExtensionStr
}

func (l *loggerConfig) MaxFileSizeMB() int {
	return l.MaxFileSizeMBInt
}

func (l *loggerConfig) MaxFileAgeDays() int {
	return l.MaxFileAgeDaysInt
}

func (l *loggerConfig) MaxBackupFiles() int {
	return l.MaxBackupFilesInt
}

func (l *loggerConfig) IsCompressEnabled() bool {
	return l.EnableCompressed
}

type authConfig struct {
	MaxLoginAttemptsInt int    `yaml:"max_login_attempts" env-default:"5"`
	LoginLockoutStr     string `yaml:"login_lockout" env-default:"15m"`
	ResetTokenTTLStr    string `yaml:"reset_token_ttl" env-default:"1h"`
	ResetPasswordURLStr string `yaml:"reset_password_url"`
}

func (a *authConfig) MaxLoginAttempts() int {
	return a.MaxLoginAttemptsInt
}

func (a *authConfig) LoginLockout() time.Duration {
	duration, _ := time.ParseDuration(a.LoginLockoutStr)
	return duration
}

func (a *authConfig) ResetTokenTTL() time.Duration {
	duration, _ := time.ParseDuration(a.ResetTokenTTLStr)
	return duration
}

func (a *authConfig) ResetPasswordURL() string {
	return a.ResetPasswordURLStr
}

type emailConfig struct {
	ProviderStr       string `yaml:"provider" env-default:"mock"`
	DefaultFromStr    string `yaml:"default_from"`
	FromNameStr       string `yaml:"from_name"`
	SendGridAPIKeyStr string `env:"SENDGRID_API_KEY" env-default:""`
	SESRegionStr      string `yaml:"ses_region"`
	SESAccessKeyStr   string `env:"SES_ACCESS_KEY" env-default:""`
	SESSecretKeyStr   string `env:"SES_SECRET_KEY" env-default:""`
}

func (e *emailConfig) Provider() string {
	return e.ProviderStr
}

func (e *emailConfig) DefaultFrom() string {
	return e.DefaultFromStr
}

func (e *emailConfig) FromName() string {
	return e.FromNameStr
}

func (e *emailConfig) SendGridAPIKey() string {
	return e.SendGridAPIKeyStr
}

func (e *emailConfig) SESRegion() string {
	return e.SESRegionStr
}

func (e *emailConfig) SESAccessKey() string {
	return e.SESAccessKeyStr
}

func (e *emailConfig) SESSecretKey() string {
	return e.SESSecretKeyStr
}

type redisConfig struct {
	HostStr     string `env:"REDIS_HOST" env-default:"localhost"`
	PortInt     int    `env:"REDIS_PORT" env-default:"6379"`
	PasswordStr string `env:"REDIS_PASSWORD"`
	DBInt       int    `env:"REDIS_DB" env-default:"0"`
	PrefixStr   string `yaml:"prefix"`
}

func (r *redisConfig) Host() string {
	return r.HostStr
}

func (r *redisConfig) Port() int {
	return r.PortInt
}

func (r *redisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host(), r.Port())
}

func (r *redisConfig) Password() string {
	return r.PasswordStr
}

func (r *redisConfig) DB() int {
	return r.DBInt
}

func (r *redisConfig) Prefix() string {
	return r.PrefixStr
}
