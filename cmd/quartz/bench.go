package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/quartzui/quartz/pkg/dom"
	"github.com/quartzui/quartz/pkg/reactive"
	"github.com/quartzui/quartz/pkg/renderer"
	"github.com/quartzui/quartz/pkg/scheduler"
	"github.com/quartzui/quartz/pkg/vdom"
)

func benchCmd() *cobra.Command {
	var iters int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark reactivity propagation and list reconciliation",
		Run: func(cmd *cobra.Command, args []string) {
			benchPropagate(iters)
			benchKeyedList(iters)
		},
	}

	cmd.Flags().IntVar(&iters, "iters", 100, "iterations per case")
	return cmd
}

// benchPropagate writes a source ref feeding w chains of h computeds each,
// with an effect at the end of every chain, and times one write.
func benchPropagate(iters int) {
	widths := []int{1, 10, 100}
	heights := []int{1, 10, 100}

	tbl := table.NewWriter()
	tbl.SetTitle("Reactive propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "nodes", "avg", "min", "p75", "p99", "max"})

	for _, w := range widths {
		for _, h := range heights {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			src := reactive.NewRef(1)
			stops := make([]func(), 0, w*(h+1))
			for i := 0; i < w; i++ {
				last := func() int { return src.Get() }
				for j := 0; j < h; j++ {
					prev := last
					c := reactive.NewComputed(func() int { return prev() + 1 })
					last = c.Get
					stops = append(stops, c.Stop)
				}
				sink := last
				e := reactive.Effect(func() { _ = sink() })
				stops = append(stops, e.Stop)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}

			for _, stop := range stops {
				stop()
			}

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("propagate: %d * %d", w, h),
				humanize.Comma(int64(w * h)),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			})
		}
	}

	tbl.Render()
}

// benchKeyedList mounts a keyed list and times one reversal patch.
func benchKeyedList(iters int) {
	sizes := []int{10, 100, 1_000}

	tbl := table.NewWriter()
	tbl.SetTitle("Keyed list reconciliation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "items", "avg", "min", "p75", "p99", "max"})

	for _, size := range sizes {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		doc := dom.NewDocument()
		queue := scheduler.NewQueue()
		rend := renderer.New(doc, renderer.WithQueue(queue))

		forward := keyedList(size, false)
		backward := keyedList(size, true)
		rend.Render(forward, doc.Body)
		queue.Flush()

		prev, next := forward, backward
		for i := 0; i < iters; i++ {
			// Rebuild so node state from the previous pass never leaks in.
			next = keyedList(size, i%2 == 0)

			start := time.Now()
			rend.Patch(prev, next, doc.Body)
			tach.AddTime(time.Since(start))
			prev = next
		}

		calc := tach.Calc()
		tbl.AppendRow(table.Row{
			fmt.Sprintf("reverse: %s items", humanize.Comma(int64(size))),
			humanize.Comma(int64(size)),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		})
	}

	tbl.Render()
}

func keyedList(n int, reversed bool) *vdom.VNode {
	items := make([]*vdom.VNode, n)
	for i := 0; i < n; i++ {
		k := i
		if reversed {
			k = n - 1 - i
		}
		items[i] = vdom.H("li", vdom.Props{"key": k}, fmt.Sprintf("item %d", k))
	}
	return vdom.H("ul", nil, items)
}
