package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kerns-huang/bptree"
)

type benchCmd struct {
	Count int    `help:"Number of distinct keys" default:"100000"`
	Seed  int64  `help:"Random seed" default:"1"`
	Cache uint32 `help:"Lookup cache capacity, 0 disables it" default:"0"`
}

func (c *benchCmd) Run(g *cli) error {
	opts, flush, err := g.options("bench")
	if err != nil {
		return err
	}
	defer flush()

	tree, err := bptree.NewOrdered[int, int](g.Order, opts...)
	if err != nil {
		return err
	}

	get := tree.Get
	insert := tree.Insert
	del := tree.Delete
	var cached *bptree.Cached[int, int]
	if c.Cache > 0 {
		cached, err = bptree.NewCached(tree, c.Cache, bptree.HashInt)
		if err != nil {
			return err
		}
		get, insert, del = cached.Get, cached.Insert, cached.Delete
	}

	rng := rand.New(rand.NewSource(c.Seed))
	keys := rng.Perm(c.Count)

	t0 := time.Now()
	for _, k := range keys {
		insert(k, k)
	}
	report("insert", c.Count, time.Since(t0))

	t0 = time.Now()
	for _, k := range keys {
		if v, ok := get(k); !ok || v != k {
			return fmt.Errorf("lookup of %d returned %d, %v", k, v, ok)
		}
	}
	report("get", c.Count, time.Since(t0))

	t0 = time.Now()
	half := keys[:len(keys)/2]
	for _, k := range half {
		del(k)
	}
	report("delete", len(half), time.Since(t0))

	if err := tree.Verify(); err != nil {
		return err
	}

	fmt.Printf("keys=%d height=%d stats=%+v\n", tree.Size(), tree.Height(), tree.Stats())
	if cached != nil {
		fmt.Printf("cache=%+v\n", cached.CacheStats())
	}
	return nil
}

func report(op string, n int, d time.Duration) {
	if n == 0 {
		n = 1
	}
	fmt.Printf("%-7s %8d ops %12s %8.0f ns/op\n", op, n, d.Round(time.Microsecond), float64(d.Nanoseconds())/float64(n))
}
