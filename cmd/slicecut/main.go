// slicecut: pizza grid slicer with report and knife toolpath export.
//
// Cuts a grid of mushroom and tomato cells into rectangular slices that
// hold a minimum of each ingredient and stay under a maximum size.
//
// Build:
//   go build -o slicecut ./cmd/slicecut
//
// Usage:
//   slicecut solve example.in --out example.out --pdf example.pdf
//   slicecut score example.in example.out

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/slicecut/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
