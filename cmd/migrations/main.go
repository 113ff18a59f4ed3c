package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/playervote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/playervote/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dsn string
	flag.StringVar(&dsn, "dsn", "", "Database URL, defaults to DATABASE_URL or the POSTGRES_* settings")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("a migration name is required, e.g. init_schema.up")
	}
	migrationName := flag.Arg(0)

	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		dsn = config.PostgresConfig{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     envOr("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DB:       os.Getenv("POSTGRES_DB"),
		}.DSN()
	}
	if dsn == "" {
		log.Fatal(config.ErrMissingDatabase)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	fileName, fileContent, err := postgres.Migration(migrationName)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.Exec(string(fileContent)); err != nil {
		log.Fatalf("Failed to execute SQL file: %v", err)
	}

	fmt.Printf("Migration file %s executed successfully.\n", fileName)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
