// feedbackctl renders the feedback analysis dashboard in a terminal.
//
// Usage:
//
//	feedbackctl show
//	feedbackctl show --from-xlsx feedback_analysis.xlsx
//	feedbackctl watch --interval 1m
//	feedbackctl export csv --out feedback.csv
//	feedbackctl export xlsx
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"feedback-insights-go/cmd/feedbackctl/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
