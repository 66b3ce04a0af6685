// Package connect implements the connect command, which opens a stream to a
// target and exchanges lines between stdin/stdout and the socket.
package connect

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"dominicbreuker/gostream/cmd/shared"
	"dominicbreuker/gostream/pkg/config"
	"dominicbreuker/gostream/pkg/entrypoint"
	"dominicbreuker/gostream/pkg/log"
)

// GetCommand returns the CLI command for connect mode.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "connect",
		Usage:       "Connect to a tcp, udp or unix socket",
		Description: shared.GetBaseDescription(),
		ArgsUsage:   shared.GetArgsUsage(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := parse(cmd)
			if err != nil {
				return err
			}

			return entrypoint.Connect(ctx, cfg, nil)
		},
		Flags: getFlags(),
	}
}

// parse builds and validates the connect configuration from the command line.
func parse(cmd *cli.Command) (*config.Shared, error) {
	args := cmd.Args()
	if args.Len() != 1 {
		return nil, fmt.Errorf("must provide exactly one argument, got %d (%s)", args.Len(), strings.Join(args.Slice(), ", "))
	}

	target, err := shared.ParseTarget(args.Get(0))
	if err != nil {
		return nil, fmt.Errorf("parsing target: %w", err)
	}

	delimiter, err := shared.ParseDelimiter(cmd.String(shared.DelimiterFlag))
	if err != nil {
		return nil, err
	}

	cfg := &config.Shared{
		Target:      target,
		Strategy:    cmd.String(shared.StrategyFlag),
		Length:      int(cmd.Int(shared.LengthFlag)),
		Delimiter:   delimiter,
		Codec:       cmd.String(shared.CodecFlag),
		Timeout:     cmd.Duration(shared.TimeoutFlag),
		ReadTimeout: cmd.Duration(shared.ReadTimeoutFlag),
		NonBlocking: cmd.Bool(shared.NonBlockingFlag),
		LogFile:     cmd.String(shared.LogFileFlag),
		Verbose:     cmd.Bool(shared.VerboseFlag),
	}

	if errors := config.Validate(cfg); len(errors) > 0 {
		log.ErrorMsg("Argument validation errors:\n")
		for _, err := range errors {
			log.ErrorMsg(" - %s\n", err)
		}
		return nil, fmt.Errorf("exiting")
	}

	return cfg, nil
}

func getFlags() []cli.Flag {
	flags := []cli.Flag{}

	flags = append(flags, shared.GetCommonFlags()...)
	flags = append(flags, shared.GetStreamFlags()...)

	return flags
}
