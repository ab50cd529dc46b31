package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Port              string   `mapstructure:"PORT"`
	AppEnv            string   `mapstructure:"APP_ENV"`
	DBDriver          string   `mapstructure:"DB_DRIVER"`
	SQLitePath        string   `mapstructure:"SQLITE_PATH"`
	PostgresUsername  string   `mapstructure:"POSTGRES_USERNAME"`
	PostgresPassword  string   `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDatabase  string   `mapstructure:"POSTGRES_DATABASE"`
	PostgresSSLMode   string   `mapstructure:"POSTGRES_SSLMODE"`
	PostgresHost      string   `mapstructure:"POSTGRES_HOST"`
	PostgresPort      string   `mapstructure:"POSTGRES_PORT"`
	AuthAllowedEmails []string `mapstructure:"AUTH_ALLOWED_EMAILS"`
	AuthPasswordHash  string   `mapstructure:"AUTH_PASSWORD_HASH"`
	AuthRequired      bool     `mapstructure:"AUTH_REQUIRED"`
	RabbitMQURL       string   `mapstructure:"RABBITMQ_URL"`
	ServiceName       string   `mapstructure:"SERVICE_NAME"`
	AWSEndpoint       string   `mapstructure:"AWS_ENDPOINT"`
	AWSBucket         string   `mapstructure:"AWS_BUCKET"`
	AWSDefaultRegion  string   `mapstructure:"AWS_DEFAULT_REGION"`
	AWSAccessKey      string   `mapstructure:"AWS_ACCESS_KEY"`
	AWSSecretKey      string   `mapstructure:"AWS_SECRET_KEY"`
	ExportArchive     bool     `mapstructure:"EXPORT_ARCHIVE"`
	GRPCPort          string   `mapstructure:"GRPC_PORT"`
}

// DefaultPasswordHash is the werkzeug pbkdf2 hash of "inventory-demo".
const DefaultPasswordHash = "pbkdf2:sha256:150000$Xq7mK2pLr9TfWb3n$bde62d95e60270fb9bb64fe16f659b49ff5731c56496c11d399b1e7e76dba304"

var defaultAllowedEmails = []string{
	"user1@example.com", "user2@example.com", "user3@example.com",
	"user4@example.com", "user5@example.com", "user6@example.com",
	"user7@example.com", "user8@example.com", "user9@example.com",
	"user10@example.com",
}

func Read() *AppConfig {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var appConfig AppConfig
	err := viper.Unmarshal(&appConfig)
	if err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	return &appConfig
}

// PostgresDSN builds a lib/pq connection string.
func (c *AppConfig) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUsername,
		c.PostgresPassword, c.PostgresDatabase, c.PostgresSSLMode,
	)
}

// S3Enabled reports whether enough AWS settings are present to talk to a bucket.
func (c *AppConfig) S3Enabled() bool {
	return c.AWSBucket != "" && (c.AWSEndpoint != "" || c.AWSDefaultRegion != "")
}

func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

func bindEnvVariables() {
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("APP_ENV")
	_ = viper.BindEnv("DB_DRIVER")
	_ = viper.BindEnv("SQLITE_PATH")
	_ = viper.BindEnv("POSTGRES_USERNAME")
	_ = viper.BindEnv("POSTGRES_PASSWORD")
	_ = viper.BindEnv("POSTGRES_DATABASE")
	_ = viper.BindEnv("POSTGRES_SSLMODE")
	_ = viper.BindEnv("POSTGRES_HOST")
	_ = viper.BindEnv("POSTGRES_PORT")
	_ = viper.BindEnv("AUTH_ALLOWED_EMAILS")
	_ = viper.BindEnv("AUTH_PASSWORD_HASH")
	_ = viper.BindEnv("AUTH_REQUIRED")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("SERVICE_NAME")
	_ = viper.BindEnv("AWS_ENDPOINT")
	_ = viper.BindEnv("AWS_BUCKET")
	_ = viper.BindEnv("AWS_DEFAULT_REGION")
	_ = viper.BindEnv("AWS_ACCESS_KEY")
	_ = viper.BindEnv("AWS_SECRET_KEY")
	_ = viper.BindEnv("EXPORT_ARCHIVE")
	_ = viper.BindEnv("GRPC_PORT")
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("SQLITE_PATH", "inventory.db")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("AUTH_ALLOWED_EMAILS", defaultAllowedEmails)
	viper.SetDefault("AUTH_PASSWORD_HASH", DefaultPasswordHash)
	viper.SetDefault("AUTH_REQUIRED", false)
	viper.SetDefault("SERVICE_NAME", "inventory")
	viper.SetDefault("EXPORT_ARCHIVE", false)
	viper.SetDefault("GRPC_PORT", "9090")
}
