// Package config описывает настройки API и загружает их из YAML-файла
// (CONFIG_PATH) с переопределением через переменные окружения.
//
// Секреты (JWT_SECRET, CSRF_SECRET, строка подключения к БД, секрет
// вебхука оплаты) обязательны: без них запуск прерывается.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string          `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string          `yaml:"storage_connection_string" env:"STORAGE_DSN" env-required:"true"`
	HTTPServer              HTTPServer      `yaml:"http_server"`
	RedisConnection         RedisConnection `yaml:"redis_connection"`
	Security                Security        `yaml:"security"`
	RabbitMQ                RabbitMQ        `yaml:"rabbitmq"`
	SMTP                    SMTP            `yaml:"smtp"`
	Payment                 Payment         `yaml:"payment"`
}

// HTTPServer настройки HTTP-сервера.
type HTTPServer struct {
	AddressHTTP    string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP    time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	CORSOrigins    []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:3000"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps" env-default:"50"`
	RateLimitBurst int           `yaml:"rate_limit_burst" env-default:"100"`
	AuthPerMinute  int           `yaml:"auth_per_minute" env-default:"10"`
}

// RedisConnection настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	CourseTTL    time.Duration `yaml:"course_ttl" env-default:"10m"`
}

// Security секреты и сроки жизни токенов.
type Security struct {
	JWTSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL      time.Duration `yaml:"token_ttl" env-default:"168h"`
	CSRFSecret    string        `yaml:"csrf_secret" env:"CSRF_SECRET" env-required:"true"`
	CSRFTokenTTL  time.Duration `yaml:"csrf_token_ttl" env-default:"2h"`
	SecureCookies bool          `yaml:"secure_cookies" env:"SECURE_COOKIES"`
	ResetTokenTTL time.Duration `yaml:"reset_token_ttl" env-default:"1h"`
}

// RabbitMQ настройки брокера. Пустой URL отключает публикацию событий.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTP настройки отправки писем.
type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST" env-required:"true"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	User     string `yaml:"user" env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM" env-required:"true"`
	FromName string `yaml:"from_name" env-default:"Insensitivo Makeup"`
	BaseURL  string `yaml:"base_url" env:"PUBLIC_BASE_URL" env-default:"http://localhost:3000"`
}

// Payment настройки платёжного провайдера.
type Payment struct {
	APIURL        string        `yaml:"api_url" env:"PAYMENT_API_URL" env-default:"https://api.stripe.com"`
	APIKey        string        `yaml:"api_key" env:"PAYMENT_API_KEY" env-required:"true"`
	WebhookSecret string        `yaml:"webhook_secret" env:"PAYMENT_WEBHOOK_SECRET" env-required:"true"`
	Currency      string        `yaml:"currency" env-default:"eur"`
	SuccessURL    string        `yaml:"success_url" env-default:"http://localhost:3000/uspesno"`
	CancelURL     string        `yaml:"cancel_url" env-default:"http://localhost:3000/korpa"`
	Timeout       time.Duration `yaml:"timeout" env-default:"10s"`
}

// Load читает конфиг из файла path и переменных окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if path == "" {
		return nil, fmt.Errorf("%s: config path is empty", op)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func mask(s string) string {
	if s == "" {
		return "<empty>"
	}
	return "***"
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  Password: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Security:\n"+
			"  JWTSecret: %s\n"+
			"  TokenTTL: %s\n"+
			"  CSRFSecret: %s\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"SMTP:\n"+
			"  Host: %s:%d\n"+
			"  Password: %s\n"+
			"Payment:\n"+
			"  APIURL: %s\n"+
			"  APIKey: %s\n"+
			"  WebhookSecret: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.RedisConnection.AddressRedis,
		mask(c.RedisConnection.Password),
		c.RedisConnection.DB,
		c.HTTPServer.AddressHTTP,
		c.HTTPServer.TimeoutHTTP,
		c.HTTPServer.IdleTimeout,
		mask(c.Security.JWTSecret),
		c.Security.TokenTTL,
		mask(c.Security.CSRFSecret),
		mask(c.RabbitMQ.URL),
		c.SMTP.Host, c.SMTP.Port,
		mask(c.SMTP.Password),
		c.Payment.APIURL,
		mask(c.Payment.APIKey),
		mask(c.Payment.WebhookSecret),
	)
}
