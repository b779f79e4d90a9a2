// Package console implements a line-oriented text driver over the engine:
// commands in, rendered board and evaluations out.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/tinyboard/variantengine/pkg/engine"
	"github.com/tinyboard/variantengine/pkg/render"
	"github.com/tinyboard/variantengine/pkg/variant"
)

const ProtocolName = "console"

// Driver reads commands from in and writes rendered output to the returned
// channel, until in closes or Close is called.
type Driver struct {
	iox.AsyncCloser

	e   *engine.Engine
	out chan<- string
}

// NewDriver starts processing in asynchronously against e.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v", d.e.Name())
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			if !d.dispatch(ctx, line) {
				return
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// dispatch handles one command line; it returns false to stop the driver.
func (d *Driver) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "reset", "r":
		var mode lang.Optional[variant.Mode]
		if len(args) > 0 {
			if m, ok := variant.ParseMode(args[0]); ok {
				mode = lang.Some(m)
			}
		}
		d.e.Reset(ctx, mode)
		d.printBoard()

	case "print", "p":
		d.printBoard()

	case "go", "g":
		d.think(ctx)

	case "depth", "d":
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				d.e.SetDepth(n)
			}
		}

	case "hash":
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				d.e.SetHashSize(n)
			}
		}

	case "threads", "t":
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				d.e.SetThreads(n)
			}
		}

	case "quit", "exit", "q":
		return false

	default:
		if err := d.e.Move(ctx, parts[0]); err != nil {
			d.out <- fmt.Sprintf("invalid move: %v", err)
		} else {
			d.printBoard()
		}
	}
	return true
}

func (d *Driver) think(ctx context.Context) {
	if score, over := d.e.Terminal(); over {
		d.out <- fmt.Sprintf("game over: %v", render.Evaluation(score))
		return
	}

	best, all, err := d.e.FindBestMove(ctx)
	if err != nil {
		d.out <- fmt.Sprintf("search failed: %v", err)
		return
	}

	d.out <- render.RootEvaluation(best.Move, best.Score, true)
	if d.e.Options().Verbose {
		for _, r := range all {
			d.out <- "  " + render.RootEvaluation(r.Move, r.Score, true)
		}
		hit, check, nodes, sc, sr := d.e.Stats()
		d.out <- fmt.Sprintf("hash: %v/%v hits, nodes: %v, shallow: %v/%v rejected", hit, check, nodes, sr, sc)
	}
	d.printBoard()
}

func (d *Driver) printBoard() {
	p := d.e.Position()
	d.out <- ""
	d.out <- render.Board(&p)
	d.out <- ""
}
