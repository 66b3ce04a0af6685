//go:build unix

package stream

import (
	"net"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// pollConn polls the descriptor behind conn for readability. Hang-ups and
// socket errors count as readable; the next read reports them.
func pollConn(conn net.Conn, timeout time.Duration) (bool, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return false, errNoDescriptor
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return false, errNoDescriptor
	}

	ms := int(timeout / time.Millisecond)
	if ms == 0 && timeout > 0 {
		ms = 1
	}

	var (
		n     int
		perr  error
		fds   = []unix.PollFd{{Events: unix.POLLIN}}
		start = time.Now()
	)
	cerr := raw.Control(func(fd uintptr) {
		fds[0].Fd = int32(fd)
		for {
			n, perr = unix.Poll(fds, ms)
			if perr != unix.EINTR {
				return
			}
			if ms > 0 {
				left := timeout - time.Since(start)
				if left <= 0 {
					n, perr = 0, nil
					return
				}
				ms = int(left / time.Millisecond)
				if ms == 0 {
					ms = 1
				}
			}
		}
	})
	if cerr != nil {
		return false, cerr
	}
	if perr != nil {
		return false, os.NewSyscallError("poll", perr)
	}

	return n > 0, nil
}
