// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

// Command cinectl inspects and maintains a CineArchive catalogue.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anshulrawat2507/CineArchive/internal/cli"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
)

func main() {
	// Commands print their own results; keep library logs out of the way.
	logging.Init(logging.Config{Level: "warn", Format: "console"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.OpenDuckDB)
	root.SetOut(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
