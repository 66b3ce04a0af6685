package shared

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"dominicbreuker/gostream/pkg/log"
)

// gracePeriod is how long the session may take to close its socket after
// the first signal before the process exits anyway.
const gracePeriod = 3 * time.Second

// SetupSignalHandling cancels the session on the first interrupt, which makes
// it close its connection and return. A second signal, or a session still
// running after the grace period, ends the process. stop releases the
// handlers.
func SetupSignalHandling(cancel context.CancelFunc) (stop func()) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, shutdownSignals()...)
	if runtime.GOOS != "windows" {
		// a peer resetting the socket must surface as a write error
		signal.Ignore(syscall.SIGPIPE)
	}

	done := make(chan struct{})
	go watchSignals(sigCh, done, cancel, os.Exit, gracePeriod)

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}

func shutdownSignals() []os.Signal {
	if runtime.GOOS == "windows" {
		return []os.Signal{os.Interrupt}
	}
	return []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}
}

func watchSignals(sigCh <-chan os.Signal, done <-chan struct{}, cancel context.CancelFunc, exit func(int), grace time.Duration) {
	var first os.Signal
	select {
	case first = <-sigCh:
	case <-done:
		return
	}

	log.InfoMsg("Received %s, closing connection\n", first)
	cancel()

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-sigCh:
		exit(exitCode(first))
	case <-timer.C:
		log.ErrorMsg("connection still open after %s, exiting\n", grace)
		exit(exitCode(first))
	case <-done:
	}
}

// exitCode follows the shell convention of 128 + signal number.
func exitCode(s os.Signal) int {
	if ss, ok := s.(syscall.Signal); ok {
		return 128 + int(ss)
	}
	return 1
}
