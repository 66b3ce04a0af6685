package shared

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"
)

type signalRun struct {
	sigCh     chan os.Signal
	done      chan struct{}
	cancelled chan struct{}
	exited    chan int
	returned  chan struct{}
}

func startWatch(grace time.Duration) *signalRun {
	r := &signalRun{
		sigCh:     make(chan os.Signal, 2),
		done:      make(chan struct{}),
		cancelled: make(chan struct{}),
		exited:    make(chan int, 1),
		returned:  make(chan struct{}),
	}

	cancel := context.CancelFunc(func() { close(r.cancelled) })
	exit := func(code int) { r.exited <- code }

	go func() {
		defer close(r.returned)
		watchSignals(r.sigCh, r.done, cancel, exit, grace)
	}()
	return r
}

func TestWatchSignals_SecondSignalExits(t *testing.T) {
	t.Parallel()

	r := startWatch(time.Minute)
	r.sigCh <- syscall.SIGTERM

	select {
	case <-r.cancelled:
	case <-time.After(time.Second):
		t.Fatal("first signal did not cancel the session")
	}

	r.sigCh <- syscall.SIGTERM
	select {
	case code := <-r.exited:
		if code != 128+int(syscall.SIGTERM) {
			t.Errorf("exit code = %d, want %d", code, 128+int(syscall.SIGTERM))
		}
	case <-time.After(time.Second):
		t.Fatal("second signal did not exit")
	}
}

func TestWatchSignals_GracePeriod(t *testing.T) {
	t.Parallel()

	r := startWatch(20 * time.Millisecond)
	r.sigCh <- os.Interrupt

	select {
	case <-r.exited:
	case <-time.After(time.Second):
		t.Fatal("did not exit after the grace period")
	}
}

func TestWatchSignals_SessionEndsInTime(t *testing.T) {
	t.Parallel()

	r := startWatch(time.Minute)
	r.sigCh <- os.Interrupt
	<-r.cancelled
	close(r.done)

	select {
	case <-r.returned:
	case <-time.After(time.Second):
		t.Fatal("watcher did not return after the session ended")
	}
	select {
	case code := <-r.exited:
		t.Errorf("exited with %d although the session ended", code)
	default:
	}
}

func TestWatchSignals_StopWithoutSignal(t *testing.T) {
	t.Parallel()

	r := startWatch(time.Minute)
	close(r.done)

	select {
	case <-r.returned:
	case <-time.After(time.Second):
		t.Fatal("watcher did not return after stop")
	}
	select {
	case <-r.cancelled:
		t.Error("session cancelled without a signal")
	default:
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if got := exitCode(syscall.SIGINT); got != 130 {
		t.Errorf("exitCode(SIGINT) = %d, want 130", got)
	}
}
