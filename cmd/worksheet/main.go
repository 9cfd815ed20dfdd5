package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/landed/cmd/worksheet/internal/cli"
	"github.com/MrJamesThe3rd/landed/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := cli.NewRootCmd(cfg).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
