package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/lively-votes/api/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		logrus.Fatal("a migration name is required")
	}
	migrationName := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DB.ConnString())
	if err != nil {
		logrus.Fatal(err)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	content, err := migrationFileContent(basePath, migrationName)
	if err != nil {
		logrus.Fatal(err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		logrus.Fatalf("failed to execute SQL file: %v", err)
	}

	logrus.Info("migration file executed successfully")
}

func migrationFileContent(basePath, migrationName string) ([]byte, error) {
	fileName, err := migrationFileName(basePath, migrationName)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(basePath, fileName))
}

func migrationFileName(basePath, migrationName string) (string, error) {
	pattern, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}

	files, err := os.ReadDir(basePath)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if pattern.MatchString(f.Name()) {
			return f.Name(), nil
		}
	}
	return "", fmt.Errorf("migration file not found")
}
