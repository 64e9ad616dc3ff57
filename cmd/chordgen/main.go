package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

// Build flags
var version = ""
var commit = ""
var date = ""

func main() {
	// CHORDGEN_* defaults may come from a .env file
	_ = godotenv.Load()

	// Create signal based context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Launch command
	cmd := newCommand(os.Stdout)
	if err := cmd.ParseAndRun(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
