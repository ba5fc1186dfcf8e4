package main

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/bindparty/binding"
	"github.com/delaneyj/bindparty/collection"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "profile"
)

var (
	ww = []int{1, 10, 100}
	hh = []int{1, 10, 100}
	nn = []int{10, 1_000, 100_000}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure cascade propagation and list mutation",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Samples per benchmark",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func benchmark(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Uint(itersKey))
	log.Printf("benchmarking with %d samples", iters)

	if err := benchmarkCascade(iters); err != nil {
		return err
	}
	return benchmarkList(iters)
}

// chainType declares a source property and w chains of h computed
// properties hanging off it, with a command at the end of every chain.
func chainType(w, h int) (*binding.Type, *binding.Property[int], error) {
	b := binding.NewTypeBuilder(fmt.Sprintf("chain_%dx%d", w, h))
	src := binding.DefineProperty[int](b, "src")
	for i := 0; i < w; i++ {
		prev := "src"
		for j := 0; j < h; j++ {
			name := fmt.Sprintf("c%d_%d", i, j)
			binding.DefineComputed(b, name, func(m *binding.Model) int {
				return src.Get(m) + j
			}, prev)
			prev = name
		}
		binding.DefineCommand(b, fmt.Sprintf("cmd%d", i), func(*binding.Model) error {
			return nil
		}, binding.DependsOn(prev))
	}
	t, err := b.Build()
	return t, src, err
}

func benchmarkCascade(iters int) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Cascade")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "build", "notifications", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			start := time.Now()
			typ, src, err := chainType(w, h)
			if err != nil {
				return err
			}
			buildTime := time.Since(start)

			m := typ.New(nil)
			var notifications int64
			if _, err := m.PropertyChanged().SubscribeFunc(func(binding.PropertyChange) {
				notifications++
			}); err != nil {
				return err
			}
			for _, name := range typ.Graph().Commands() {
				c, err := m.Command(name)
				if err != nil {
					return err
				}
				if _, err := c.CanExecuteChanged().SubscribeFunc(func(struct{}) {
					notifications++
				}); err != nil {
					return err
				}
			}

			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := src.Set(m, src.Get(m)+1); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("propagate: %d * %d", w, h),
				buildTime,
				humanize.Comma(notifications),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			})
		}
	}

	tbl.Render()
	return nil
}

func benchmarkList(iters int) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Observable list")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "events", "avg", "min", "p75", "p99", "max"})

	ops := []struct {
		name string
		fn   func(l *collection.List[int]) error
	}{
		{"append", func(l *collection.List[int]) error { return l.Append(rand.Int()) }},
		{"insert front", func(l *collection.List[int]) error { return l.Insert(0, rand.Int()) }},
		{"set", func(l *collection.List[int]) error { return l.Set(rand.IntN(l.Len()), rand.Int()) }},
		{"remove last", func(l *collection.List[int]) error {
			if l.Len() == 0 {
				return l.Append(rand.Int())
			}
			v, err := l.At(l.Len() - 1)
			if err != nil {
				return err
			}
			return l.Remove(v)
		}},
		{"sort", func(l *collection.List[int]) error { return l.Sort(cmp.Compare[int]) }},
	}

	for _, n := range nn {
		for _, op := range ops {
			items := make([]int, n)
			for i := range items {
				items[i] = rand.Int()
			}
			l := collection.NewList(items...)
			var events int64
			if _, err := l.Changed().SubscribeFunc(func(collection.ChangeEvent[int]) {
				events++
			}); err != nil {
				return err
			}

			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := op.fn(l); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("%s: %s items", op.name, humanize.Comma(int64(n))),
				humanize.Comma(events),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			})
		}
	}

	tbl.Render()
	return nil
}
