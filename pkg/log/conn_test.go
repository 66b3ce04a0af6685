package log

import (
	"bytes"
	"io"
	"net"
	"os"
	"syscall"
	"testing"
	"time"
)

// mockConn implements net.Conn for testing
type mockConn struct {
	readBuf  *bytes.Buffer
	writeBuf *bytes.Buffer
}

func newMockConn() *mockConn {
	return &mockConn{
		readBuf:  new(bytes.Buffer),
		writeBuf: new(bytes.Buffer),
	}
}

func (m *mockConn) Read(b []byte) (int, error) {
	return m.readBuf.Read(b)
}

func (m *mockConn) Write(b []byte) (int, error) {
	return m.writeBuf.Write(b)
}

func (m *mockConn) Close() error {
	return nil
}

func (m *mockConn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8080}
}

func (m *mockConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9090}
}

func (m *mockConn) SetDeadline(t time.Time) error {
	return nil
}

func (m *mockConn) SetReadDeadline(t time.Time) error {
	return nil
}

func (m *mockConn) SetWriteDeadline(t time.Time) error {
	return nil
}

func TestNewLoggedConn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/test.log"
	conn := newMockConn()

	loggedConn, err := NewLoggedConn(conn, tmpFile)
	if err != nil {
		t.Fatalf("NewLoggedConn() error = %v", err)
	}
	if loggedConn == nil {
		t.Fatal("NewLoggedConn() returned nil")
	}

	// Verify log file was created
	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		t.Error("NewLoggedConn() did not create log file")
	}
}

func TestLoggedConn_Write(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/test.log"
	conn := newMockConn()

	loggedConn, err := NewLoggedConn(conn, tmpFile)
	if err != nil {
		t.Fatalf("NewLoggedConn() error = %v", err)
	}

	testData := []byte("test data")
	n, err := loggedConn.Write(testData)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != len(testData) {
		t.Errorf("Write() wrote %d bytes, want %d", n, len(testData))
	}

	// Verify data was written to log file
	logData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.HasPrefix(logData, []byte("\n> ")) {
		t.Errorf("Log file %q does not start with a send header", logData)
	}
	if !bytes.HasSuffix(logData, testData) {
		t.Errorf("Log file contains %q, want suffix %q", logData, testData)
	}
}

func TestLoggedConn_Read(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/test.log"
	conn := newMockConn()
	testData := []byte("read test data")
	conn.readBuf.Write(testData)

	loggedConn, err := NewLoggedConn(conn, tmpFile)
	if err != nil {
		t.Fatalf("NewLoggedConn() error = %v", err)
	}

	buf := make([]byte, len(testData))
	n, err := loggedConn.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != len(testData) {
		t.Errorf("Read() read %d bytes, want %d", n, len(testData))
	}

	// Verify data was logged
	logData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.HasPrefix(logData, []byte("\n< ")) {
		t.Errorf("Log file %q does not start with a receive header", logData)
	}
	if !bytes.HasSuffix(logData, testData) {
		t.Errorf("Log file contains %q, want suffix %q", logData, testData)
	}
}

func TestLoggedConn_DirectionHeaders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/test.log"
	conn := newMockConn()
	conn.readBuf.WriteString("pong")

	loggedConn, err := NewLoggedConn(conn, tmpFile)
	if err != nil {
		t.Fatalf("NewLoggedConn() error = %v", err)
	}

	loggedConn.Write([]byte("pi"))
	loggedConn.Write([]byte("ng"))
	buf := make([]byte, 4)
	loggedConn.Read(buf)

	logData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := bytes.Count(logData, []byte("\n> ")); got != 1 {
		t.Errorf("found %d send headers, want 1 (consecutive writes share one)", got)
	}
	if got := bytes.Count(logData, []byte("\n< ")); got != 1 {
		t.Errorf("found %d receive headers, want 1", got)
	}
	if !bytes.Contains(logData, []byte("ping")) || !bytes.HasSuffix(logData, []byte("pong")) {
		t.Errorf("Log file %q misses traffic", logData)
	}
}

func TestLoggedConn_Close(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/test.log"
	loggedConn, err := NewLoggedConn(newMockConn(), tmpFile)
	if err != nil {
		t.Fatalf("NewLoggedConn() error = %v", err)
	}

	if err := loggedConn.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestLoggedConn_SyscallConn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/test.log"
	loggedConn, err := NewLoggedConn(newMockConn(), tmpFile)
	if err != nil {
		t.Fatalf("NewLoggedConn() error = %v", err)
	}

	sc, ok := loggedConn.(syscall.Conn)
	if !ok {
		t.Fatal("logged conn does not implement syscall.Conn")
	}
	if _, err := sc.SyscallConn(); err == nil {
		t.Error("SyscallConn() on a conn without descriptor should fail")
	}
}

func TestLoggedConn_Addresses(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/test.log"
	conn := newMockConn()

	loggedConn, err := NewLoggedConn(conn, tmpFile)
	if err != nil {
		t.Fatalf("NewLoggedConn() error = %v", err)
	}

	if loggedConn.LocalAddr() == nil {
		t.Error("LocalAddr() returned nil")
	}
	if loggedConn.RemoteAddr() == nil {
		t.Error("RemoteAddr() returned nil")
	}
}

func TestLoggedConn_Deadlines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/test.log"
	conn := newMockConn()

	loggedConn, err := NewLoggedConn(conn, tmpFile)
	if err != nil {
		t.Fatalf("NewLoggedConn() error = %v", err)
	}

	deadline := time.Now().Add(time.Second)

	if err := loggedConn.SetDeadline(deadline); err != nil {
		t.Errorf("SetDeadline() error = %v", err)
	}
	if err := loggedConn.SetReadDeadline(deadline); err != nil {
		t.Errorf("SetReadDeadline() error = %v", err)
	}
	if err := loggedConn.SetWriteDeadline(deadline); err != nil {
		t.Errorf("SetWriteDeadline() error = %v", err)
	}
}

func TestLoggedConn_Read_EOF(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}

	tmpFile := t.TempDir() + "/test.log"
	conn := newMockConn()
	// Empty buffer will return EOF

	loggedConn, err := NewLoggedConn(conn, tmpFile)
	if err != nil {
		t.Fatalf("NewLoggedConn() error = %v", err)
	}

	buf := make([]byte, 10)
	_, err = loggedConn.Read(buf)
	if err != io.EOF {
		t.Errorf("Read() error = %v, want EOF", err)
	}
}
