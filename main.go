package main

import (
	"os"

	"github.com/joho/godotenv"

	"opti2025/src/cli"
)

func main() {
	// Optional .env in the working directory for OPTI_* overrides.
	_ = godotenv.Load()
	os.Exit(cli.Execute())
}
