// Command bptree loads key/value pairs into an in-memory B+ tree and prints
// its shape, or runs a randomized workload against it.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/kerns-huang/bptree"
	"github.com/kerns-huang/bptree/logger"
)

type cli struct {
	Order   int  `help:"Maximum number of children per branch" default:"32"`
	Verbose bool `help:"Log root splits and collapses" short:"v"`

	Load  loadCmd  `cmd:"" help:"Insert 'key value' lines and print the resulting tree"`
	Bench benchCmd `cmd:"" help:"Run a randomized insert/get/delete workload"`
}

// options turns the global flags into tree options
func (c *cli) options(name string) ([]bptree.Option, func(), error) {
	opts := []bptree.Option{bptree.WithName(name)}
	if !c.Verbose {
		return opts, func() {}, nil
	}

	zl, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, bptree.WithLogger(logger.NewZap(zl)))
	return opts, func() { _ = zl.Sync() }, nil
}

func main() {
	var params cli
	ctx := kong.Parse(&params,
		kong.Name("bptree"),
		kong.Description("In-memory B+ tree playground"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&params); err != nil {
		fmt.Fprintln(os.Stderr, "bptree:", err)
		os.Exit(1)
	}
}
