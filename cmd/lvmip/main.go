// Command lvmip solves linear and 0/1 mixed-integer models stored as YAML.
//
//	lvmip solve model.yaml [more.yaml ...] [--method auto|simplex|primal|dual|bnb]
//
// Results are printed as YAML documents, one per model, in argument order.
// Every flag can also be set in the --config file or through an LVMIP_*
// environment variable (LVMIP_MAX_ITERATIONS=5).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
