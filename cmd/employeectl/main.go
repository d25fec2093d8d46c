// Command employeectl manages employee records through the employees API.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal for the CLI.
	_ = godotenv.Load()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	os.Exit(execute(a, os.Args[1:]))
}
