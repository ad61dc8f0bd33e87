package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kerns-huang/bptree"
)

type loadCmd struct {
	Input  string   `arg:"" optional:"" type:"existingfile" help:"File of 'key value' lines, stdin if omitted"`
	Delete []string `help:"Keys to delete after loading" sep:","`
	NoDump bool     `help:"Skip printing the tree"`
}

func (c *loadCmd) Run(g *cli) error {
	opts, flush, err := g.options("load")
	if err != nil {
		return err
	}
	defer flush()

	tree, err := bptree.NewOrdered[string, string](g.Order, opts...)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if c.Input != "" {
		f, err := os.Open(c.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	if err := load(tree, in); err != nil {
		return err
	}
	for _, k := range c.Delete {
		tree.Delete(k)
	}

	if err := tree.Verify(); err != nil {
		return err
	}

	if !c.NoDump {
		if err := tree.Dump(os.Stdout); err != nil {
			return err
		}
	}
	fmt.Printf("keys=%d height=%d stats=%+v\n", tree.Size(), tree.Height(), tree.Stats())
	return nil
}

// load inserts every non-empty line of r. The key is the first field, the
// value is the rest of the line.
func load(tree *bptree.Tree[string, string], r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		tree.Insert(key, strings.TrimSpace(value))
	}
	return sc.Err()
}
