package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// App holds the environment shared by every service. Each service reads only
// the fields it needs.
type App struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"lunchvote"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`

	KafkaBroker string `envconfig:"KAFKA_BROKER" default:"localhost:9092"`
	VotesTopic  string `envconfig:"VOTES_TOPIC" default:"votes"`

	TimeZone string `envconfig:"APP_TIMEZONE" default:"UTC"`
	BaseURL  string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	RestaurantAddr string `envconfig:"RESTAURANT_SVC_ADDR" default:":8081"`
	VoteAddr       string `envconfig:"VOTE_SVC_ADDR" default:":8082"`
	GatewayAddr    string `envconfig:"GATEWAY_ADDR" default:":8080"`

	RestaurantSvcURL string `envconfig:"RESTAURANT_SVC_URL" default:"http://localhost:8081"`
	VoteSvcURL       string `envconfig:"VOTE_SVC_URL" default:"http://localhost:8082"`
}

// Load reads an optional .env file and then the process environment.
func Load() (App, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, fmt.Errorf("process env: %w", err)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return App{}, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return c, nil
}

// MustLoad is Load for main packages.
func MustLoad() App {
	c, err := Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	return c
}

// Location returns the time zone calendar days are computed in.
func (c App) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PostgresURL is the URL form of the connection settings, used by migrations.
func (c App) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func (c App) postgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

func (c App) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func MustInitPostgres(c App) *sql.DB {
	db, err := sql.Open("postgres", c.postgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(c App) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: c.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(c App, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{c.KafkaBroker},
		Topic:   c.VotesTopic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(c App) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(c.KafkaBroker),
		Topic:    c.VotesTopic,
		Balancer: &kafka.LeastBytes{},
	}
}
