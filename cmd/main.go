package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"dominicbreuker/gostream/cmd/connect"
	"dominicbreuker/gostream/cmd/shared"
	"dominicbreuker/gostream/cmd/version"
	"dominicbreuker/gostream/pkg/log"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := shared.SetupSignalHandling(cancel)
	defer stop()

	cmd := &cli.Command{
		Name:  "gostream",
		Usage: "netcat-like client for tcp, udp and unix sockets",
		Commands: []*cli.Command{
			connect.GetCommand(),
			version.GetCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.ErrorMsg("%s\n", err)
		os.Exit(1)
	}
}
