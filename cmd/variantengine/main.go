// variantengine is a minimax engine for two 6x6 chess variants: Three-Checks
// and King's-Cross. It reads commands from stdin over the console protocol
// and writes rendered output to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/seekerror/logw"

	"github.com/tinyboard/variantengine/pkg/driver"
	"github.com/tinyboard/variantengine/pkg/engine"
	"github.com/tinyboard/variantengine/pkg/engine/console"
	"github.com/tinyboard/variantengine/pkg/variant"
)

var (
	hashSize = flag.Int("h", 99991, "Hash table size, 1..1000000 (rounded down to a prime)")
	threads  = flag.Int("t", 8, "Number of root search workers, 1..64")
	depth    = flag.Int("d", 9, "Start search depth, 1..12")
	kings    = flag.Bool("m", false, "Select King's-Cross mode (default Three-Checks)")
	verbose  = flag.Bool("v", false, "Verbose rendering of positions and per-root evaluations")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: variantengine [options]

variantengine is a minimax engine for small-board chess variants.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logw.Infof(ctx, "Interrupted: releasing semaphore and tables")
		cancel()
	}()

	opts := clampedOptions()
	e := engine.New(ctx, opts)

	in := engine.ReadStdinLines(ctx)
	d, out := console.NewDriver(ctx, e, in)
	go engine.WriteStdoutLines(ctx, out)

	select {
	case <-d.Closed():
	case <-ctx.Done():
	}
}

// clampedOptions parses the CLI flags into driver.Options, clamping each
// out-of-range value into its valid band rather than rejecting it outright.
func clampedOptions() driver.Options {
	opts := driver.DefaultOptions()
	opts.HashSize = clamp(*hashSize, 1, 1000000)
	opts.Threads = clamp(*threads, 1, 64)
	opts.Depth = clamp(*depth, 1, 12)
	opts.Verbose = *verbose
	if *kings {
		opts.Mode = variant.KingsCross
	}
	return opts
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
