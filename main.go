package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rent591-crawler/apperr"
	"rent591-crawler/utils"
)

func main() {
	logger := utils.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(logger, os.Stdout).ExecuteContext(ctx)
	stop()

	if err != nil {
		logger.Error("%v", err)
		os.Exit(apperr.ExitCode(err))
	}
}
