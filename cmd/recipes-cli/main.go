package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"recipebook/internal/client"
	"recipebook/internal/menu"
)

func main() {
	cmd := &cli.Command{
		Name:  "recipes-cli",
		Usage: "Interactive terminal client for the recipe service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Value:   "http://127.0.0.1:8080",
				Usage:   "Base URL of the recipe service",
				Sources: cli.EnvVars("RECIPES_BASE_URL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			api := client.New(cmd.String("base-url"))
			return menu.New(api, os.Stdin, os.Stdout).Run(ctx)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
