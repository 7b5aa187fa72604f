package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"cadastro/internal/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: .env não encontrado. Usando apenas o ambiente do sistema: %v", err)
	}

	var dbPath string
	flag.StringVar(&dbPath, "db", envOr("DATABASE_PATH", "/tmp/h2db.db"), "arquivo SQLite")
	flag.Parse()

	db, err := database.NewSQLiteDB(dbPath)
	if err != nil {
		log.Fatalf("goose: falha ao abrir o banco: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: falha ao fechar o banco: %v\n", err)
		}
	}()

	// Scripts embutidos no binário, dialeto sqlite3
	if err := database.Prepare(); err != nil {
		log.Fatalf("goose: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	args := arguments[1:]

	if err := goose.RunContext(context.Background(), command, db, database.MigrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success\n", command)
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
