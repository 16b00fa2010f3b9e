package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quartzui/quartz/el"
	"github.com/quartzui/quartz/pkg/reactive"
	"github.com/quartzui/quartz/pkg/server"
	"github.com/quartzui/quartz/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo application server",
		Long: `Serve runs a small counter application over HTTP and WebSocket.

It exists to smoke-test a Quartz install end to end: initial HTML render,
live session handshake, event dispatch and op streaming.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := server.DefaultConfig()
			cfg.Address = addr

			srv := server.New(newCounter, server.WithConfig(cfg))
			fmt.Printf("Serving demo app on %s\n", addr)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// counter is the demo component: a label and two buttons mutating a ref.
type counter struct {
	count *reactive.Ref[int]
}

func newCounter() vdom.Component {
	return &counter{count: reactive.NewRef(0)}
}

func (c *counter) Render() *vdom.VNode {
	return el.Div(el.Class("counter"), []*vdom.VNode{
		el.P(el.Textf("Count: %d", c.count.Get())),
		el.Button(el.OnClick(func() { c.count.Update(func(n int) int { return n + 1 }) }), "+"),
		el.Button(el.OnClick(func() { c.count.Update(func(n int) int { return n - 1 }) }), "-"),
	})
}
