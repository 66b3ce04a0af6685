// Package shared provides common CLI flag definitions and utility functions
// used across gostream's command-line interface.
package shared

import (
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

const categoryCommon = "common"

// VerboseFlag is the name of the flag to enable verbose logging.
const VerboseFlag = "verbose"

// LogFileFlag is the name of the flag to specify a traffic log file.
const LogFileFlag = "log"

// GetBaseDescription returns the base description text for target
// specifications used in CLI commands.
func GetBaseDescription() string {
	return strings.Join([]string{
		"Specify the target like this: tcp://127.0.0.1:80 (supports tcp|udp|unix)",
		"Unix sockets take a path and no port: unix:///run/app.sock",
		"IPv6 hosts go in brackets: tcp://[::1]:80",
	}, "\n")
}

// GetArgsUsage returns the arguments usage string for CLI commands.
func GetArgsUsage() string {
	return strings.Join([]string{
		"target",
	}, " ")
}

// GetCommonFlags returns the flags every command that talks to a socket
// accepts.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose logging",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
		&cli.StringFlag{
			Name:     LogFileFlag,
			Aliases:  []string{"l"},
			Usage:    "Append all traffic to this file",
			Category: categoryCommon,
			Value:    "",
			Required: false,
		},
	}
}

const categoryStream = "stream"

// StrategyFlag is the name of the flag selecting the read strategy.
const StrategyFlag = "strategy"

// LengthFlag is the name of the flag for the read strategy's length limit.
const LengthFlag = "length"

// DelimiterFlag is the name of the flag for the delimited strategy's delimiter.
const DelimiterFlag = "delimiter"

// CodecFlag is the name of the flag selecting the payload codec.
const CodecFlag = "codec"

// TimeoutFlag is the name of the flag for the blocking I/O timeout.
const TimeoutFlag = "timeout"

// ReadTimeoutFlag is the name of the flag for the readiness poll timeout.
const ReadTimeoutFlag = "read-timeout"

// NonBlockingFlag is the name of the flag to switch the socket to non-blocking mode.
const NonBlockingFlag = "nonblocking"

// GetStreamFlags returns the flags that configure how a stream reads,
// writes and waits.
func GetStreamFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     StrategyFlag,
			Aliases:  []string{"s"},
			Usage:    "Read strategy: char|line|buffer|drain|delimited",
			Category: categoryStream,
			Value:    "line",
			Required: false,
		},
		&cli.IntFlag{
			Name:     LengthFlag,
			Aliases:  []string{"n"},
			Usage:    "Length limit of the read strategy, 0 for its default",
			Category: categoryStream,
			Value:    0,
			Required: false,
		},
		&cli.StringFlag{
			Name:     DelimiterFlag,
			Aliases:  []string{"d"},
			Usage:    "Record delimiter for '--strategy delimited', escapes like \\r\\n are expanded",
			Category: categoryStream,
			Value:    "",
			Required: false,
		},
		&cli.StringFlag{
			Name:     CodecFlag,
			Aliases:  []string{"c"},
			Usage:    "Payload codec: raw|json",
			Category: categoryStream,
			Value:    "raw",
			Required: false,
		},
		&cli.DurationFlag{
			Name:     TimeoutFlag,
			Aliases:  []string{"t"},
			Usage:    "Timeout for blocking reads and writes, rounded up to whole seconds, 0 to wait forever",
			Category: categoryStream,
			Value:    0,
			Required: false,
		},
		&cli.DurationFlag{
			Name:     ReadTimeoutFlag,
			Aliases:  []string{"r"},
			Usage:    "How long to wait for the peer to answer before reading stdin again",
			Category: categoryStream,
			Value:    200 * time.Millisecond,
			Required: false,
		},
		&cli.BoolFlag{
			Name:     NonBlockingFlag,
			Usage:    "Put the socket in non-blocking mode",
			Category: categoryStream,
			Value:    false,
			Required: false,
		},
	}
}
