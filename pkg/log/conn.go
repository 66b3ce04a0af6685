package log

import (
	"fmt"
	"net"
	"os"
	"syscall"
	"sync"
	"time"
)

// loggedConn wraps a net.Conn and appends all traffic to a file. Sent bytes
// are recorded under a "> " header line, received bytes under "< ".
type loggedConn struct {
	conn    net.Conn
	logFile *os.File

	mu      sync.Mutex
	lastDir byte
}

func (lc *loggedConn) record(dir byte, b []byte) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if lc.lastDir != dir {
		if _, err := fmt.Fprintf(lc.logFile, "\n%c %s\n", dir, time.Now().Format(time.RFC3339Nano)); err != nil {
			return err
		}
		lc.lastDir = dir
	}

	_, err := lc.logFile.Write(b)
	return err
}

func (lc *loggedConn) Read(b []byte) (int, error) {
	n, err := lc.conn.Read(b)
	if n > 0 {
		if lerr := lc.record('<', b[:n]); lerr != nil {
			return n, fmt.Errorf("logging read: %s", lerr)
		}
	}
	return n, err
}

func (lc *loggedConn) Write(b []byte) (int, error) {
	n, err := lc.conn.Write(b)
	if n > 0 {
		if lerr := lc.record('>', b[:n]); lerr != nil {
			return n, fmt.Errorf("logging write: %s", lerr)
		}
	}
	return n, err
}

// Close closes the connection and the log file. The connection error wins.
func (lc *loggedConn) Close() error {
	err := lc.conn.Close()
	if ferr := lc.logFile.Close(); err == nil && ferr != nil {
		err = fmt.Errorf("closing log file: %s", ferr)
	}
	return err
}

// SyscallConn exposes the descriptor of the wrapped connection so readiness
// polling keeps working through the wrapper.
func (lc *loggedConn) SyscallConn() (syscall.RawConn, error) {
	sc, ok := lc.conn.(syscall.Conn)
	if !ok {
		return nil, fmt.Errorf("%T has no file descriptor", lc.conn)
	}
	return sc.SyscallConn()
}

func (lc *loggedConn) LocalAddr() net.Addr {
	return lc.conn.LocalAddr()
}

func (lc *loggedConn) RemoteAddr() net.Addr {
	return lc.conn.RemoteAddr()
}

func (lc *loggedConn) SetDeadline(t time.Time) error {
	return lc.conn.SetDeadline(t)
}

func (lc *loggedConn) SetReadDeadline(t time.Time) error {
	return lc.conn.SetReadDeadline(t)
}

func (lc *loggedConn) SetWriteDeadline(t time.Time) error {
	return lc.conn.SetWriteDeadline(t)
}

// NewLoggedConn wraps a network connection to log all data read from and written to it.
// The log file is created or appended to at the specified path.
func NewLoggedConn(conn net.Conn, logFilePath string) (net.Conn, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &loggedConn{conn: conn, logFile: logFile}, nil
}
