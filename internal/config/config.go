package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/CourseCert/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	FrontURL    string
	SecretKey   string
	DB          DatabaseConfig
	RateLimiter RateLimiterConfig
	Mail        MailConfig
	Auth        AuthConfig
	Minio       MinioConfig
	RabbitMQ    RabbitMQConfig
	Certificate CertificateConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type AuthConfig struct {
	JWT_SECRET string
}

type DatabaseConfig struct {
	// postgres or sqlite
	DRIVER       string
	DB_HOST      string
	DB_PORT      string
	DB_DATABASE  string
	DB_USERNAME  string
	DB_PASSWORD  string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

type MailConfig struct {
	// sendgrid or gmail
	PROVIDER           string
	SEND_GRID          SendGridConfig
	FROM_EMAIL         string
	GMAIL_USERNAME     string
	GMAIL_APP_PASSWORD string
}

type SendGridConfig struct {
	API_KEY string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
}

type RabbitMQConfig struct {
	HOST     string
	PORT     string
	USERNAME string
	PASSWORD string
	VHOST    string
}

func (r RabbitMQConfig) GetConnectionString() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/%s", r.USERNAME, r.PASSWORD, r.HOST, r.PORT, strings.TrimPrefix(r.VHOST, "/"))
}

type CertificateConfig struct {
	// Mirrors the ENABLE_V2_CERT_DISPLAY_SETTINGS feature.
	EnableV2DisplaySettings bool
	// When true the honor track stops being eligible for a certificate.
	DisableHonorCertificates bool
	// Cron spec of the stale generation reaper.
	ReaperSchedule string
	// Certificates stuck in generating for longer than this are marked as error.
	GeneratingTimeout time.Duration
	// QR code size in pixels for the certificate verification artifact.
	QRCodeSize int
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

// CertificateVerifyURL is the public url encoded into a certificate's QR artifact.
func (c Config) CertificateVerifyURL(verifyUUID string) string {
	return strings.TrimRight(c.FrontURL, "/") + "/certificates/" + verifyUUID
}

func GetConfig() Config {
	return Config{
		Port:      env.GetString("PORT", "8080"),
		ENV:       env.GetString("ENV", "development"),
		FrontURL:  env.GetString("FRONT_URL", "http://localhost:3000"),
		SecretKey: env.GetString("SECRET_KEY", ""),
		DB: DatabaseConfig{
			DRIVER:       env.GetString("DB_DRIVER", "postgres"),
			DB_HOST:      env.GetString("DB_HOST", "127.0.0.1"),
			DB_PORT:      env.GetString("DB_PORT", "5432"),
			DB_USERNAME:  env.GetString("DB_USERNAME", "root"),
			DB_PASSWORD:  env.GetString("DB_PASSWORD", ""),
			DB_DATABASE:  env.GetString("DB_DATABASE", "coursecert"),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            env.GetDuration("RATE_LIMIT_TIME_FRAME", time.Minute),
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Mail: MailConfig{
			PROVIDER:           env.GetString("MAIL_PROVIDER", "sendgrid"),
			FROM_EMAIL:         env.GetString("MAIL_FROM_MAIL", ""),
			GMAIL_USERNAME:     env.GetString("MAIL_GMAIL_USERNAME", ""),
			GMAIL_APP_PASSWORD: env.GetString("MAIL_GMAIL_APP_PASSWORD", ""),
			SEND_GRID: SendGridConfig{
				API_KEY: env.GetString("MAIL_SEND_GRID_API_KEY", ""),
			},
		},
		Auth: AuthConfig{
			JWT_SECRET: env.GetString("AUTH_JWT_SECRET", ""),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "coursecert"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
		RabbitMQ: RabbitMQConfig{
			HOST:     env.GetString("RABBITMQ_HOST", "127.0.0.1"),
			PORT:     env.GetString("RABBITMQ_PORT", "5672"),
			USERNAME: env.GetString("RABBITMQ_USERNAME", "guest"),
			PASSWORD: env.GetString("RABBITMQ_PASSWORD", "guest"),
			VHOST:    env.GetString("RABBITMQ_VHOST", ""),
		},
		Certificate: CertificateConfig{
			EnableV2DisplaySettings:  env.GetBool("ENABLE_V2_CERT_DISPLAY_SETTINGS", false),
			DisableHonorCertificates: env.GetBool("DISABLE_HONOR_CERTIFICATES", false),
			ReaperSchedule:           env.GetString("CERT_REAPER_SCHEDULE", "@every 10m"),
			GeneratingTimeout:        env.GetDuration("CERT_GENERATING_TIMEOUT", 30*time.Minute),
			QRCodeSize:               env.GetInt("CERT_QR_CODE_SIZE", 256),
		},
	}
}
