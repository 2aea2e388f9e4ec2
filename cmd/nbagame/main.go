package main

import (
	"github.com/joho/godotenv"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/cli"
)

func main() {
	// A missing .env is fine; the CLI falls back to config and flags.
	_ = godotenv.Load()
	cli.Execute()
}
