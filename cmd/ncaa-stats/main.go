package main

import (
	"github.com/joho/godotenv"

	"github.com/pfrederiksen/ncaa-stats/internal/cli"
)

func main() {
	// Optional .env for NCAA_BASE_URL and friends; missing file is fine
	_ = godotenv.Load()

	cli.Execute()
}
