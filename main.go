package main

import (
	"log/slog"
	"os"

	"github.com/gaurav-prasanna/catalogpipe/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs; the environment wins otherwise.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cmd.Execute()
}
