//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/csg33k/employee-registry/internal/adapters/sqlite"
)

// Dbup applies the embedded migrations.
func Dbup() error {
	fmt.Println(">> migrate up")
	return sqlite.RunMigrations(databaseURL(), "up")
}

// Dbdown rolls back the most recent migration.
func Dbdown() error {
	fmt.Println(">> migrate down")
	return sqlite.RunMigrations(databaseURL(), "down")
}

// databaseURL prefers DATABASE_URL and falls back to DB_PATH.
func databaseURL() string {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u
	}
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "employees.db"
	}
	return "sqlite3://" + path
}

// Build tidies deps, then compiles the server and the CLI into ./bin.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building server binary...")
	if err := sh.Run("go", "build", "-o", "bin/employee-server", "./cmd/server"); err != nil {
		return err
	}
	fmt.Println(">> Building employeectl...")
	return sh.Run("go", "build", "-o", "bin/employeectl", "./cmd/employeectl")
}

// Run builds then executes the server binary.
func Run() error {
	mg.Deps(Build)
	fmt.Println(">> Starting server...")
	return sh.Run("./bin/employee-server")
}

// Dev starts the server via go run with migrations applied at startup.
func Dev() error {
	fmt.Println(">> Dev mode: go run ./cmd/server ...")
	cmd := exec.Command("go", "run", "./cmd/server")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "DB_AUTO_MIGRATE=true", "LOG_LEVEL=debug")

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	// Wait for Ctrl-C then cleanly stop the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-quit:
		fmt.Println("\n>> Shutting down...")
		_ = cmd.Process.Signal(syscall.SIGTERM)
		return <-done
	}
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests. go-sqlite3 needs cgo.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunWith(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and the local SQLite DB.
func Clean() error {
	fmt.Println(">> Cleaning...")
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	return sh.Rm("employees.db")
}

// Install builds and installs both binaries to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.Run("go", "install", "./cmd/server", "./cmd/employeectl")
}

func init() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
