package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/playervote/internal/adapters/notifier/logsink"
	"github.com/vncsmyrnk/playervote/internal/adapters/notifier/rabbitmq"
	"github.com/vncsmyrnk/playervote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/playervote/internal/config"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
	"github.com/vncsmyrnk/playervote/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName, amqpURL, queue string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.StringVar(&amqpURL, "rabbitmq-url", os.Getenv("RABBITMQ_URL"), "RabbitMQ URL, logs the summary when empty")
	flag.StringVar(&queue, "queue", os.Getenv("NOTIFY_QUEUE"), "Notification queue")
	flag.Parse()

	if dbPort == "" {
		dbPort = "5432"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dbHost != "" {
		dsn = config.PostgresConfig{Host: dbHost, Port: dbPort, User: dbUser, Password: dbPass, DB: dbName}.DSN()
	}
	if dsn == "" {
		log.Fatal(config.ErrMissingDatabase)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	var notifier ports.Notifier = logsink.New(nil)
	if amqpURL != "" {
		notifier = rabbitmq.NewPublisher(amqpURL, queue)
	}

	resultsSvc := services.NewResultsService(postgres.NewResultsRepository(db), postgres.NewVoteRepository(db))
	summarySvc := services.NewSummaryService(resultsSvc, notifier)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Sending results summary...")

	n, err := summarySvc.SendResultsSummary(ctx)
	if err != nil {
		log.Fatalf("Error sending results summary: %v", err)
	}

	log.Printf("Results summary sent: %s", n.Content)
}
