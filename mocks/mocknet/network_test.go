package mocknet

import (
	"bufio"
	"context"
	"net"
	"testing"
)

func TestMockNetworkEcho(t *testing.T) {
	mockNet := NewMockNetwork()

	ln, err := mockNet.ListenString("tcp", "127.0.0.1:9001")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	srv, err := NewServer(ln, "ECHO: ")
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	defer srv.Close()

	var l *MockListener
	if l, err = mockNet.WaitForListener("tcp", "127.0.0.1:9001", 500); err != nil {
		t.Fatalf("Server failed to start listening: %v", err)
	}

	raddr, _ := net.ResolveTCPAddr("tcp", "127.0.0.1:9001")
	conn, err := mockNet.DialTCPContext(context.Background(), "tcp", nil, raddr)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	if _, err := l.WaitForNewConnection(500); err != nil {
		t.Fatalf("Client failed to connect: %v", err)
	}

	r := bufio.NewReader(conn)
	msgs := []string{"hello", "world", "third"}
	for _, m := range msgs {
		if _, err := conn.Write([]byte(m + "\n")); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		got, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("ReadString failed: %v", err)
		}
		want := "ECHO: " + m + "\n"
		if got != want {
			t.Fatalf("unexpected response: got=%q want=%q", got, want)
		}
	}
}

func TestMockNetwork_NetworksAreSeparate(t *testing.T) {
	t.Parallel()

	mockNet := NewMockNetwork()
	if _, err := mockNet.ListenString("unix", "/tmp/mock.sock"); err != nil {
		t.Fatalf("ListenString(unix) error = %v", err)
	}

	raddr, _ := net.ResolveUDPAddr("udp", "127.0.0.1:53")
	if _, err := mockNet.DialUDPContext(context.Background(), "udp", nil, raddr); err == nil {
		t.Error("DialUDPContext() reached a listener of another network")
	}

	uaddr, _ := net.ResolveUnixAddr("unix", "/tmp/mock.sock")
	l, _ := mockNet.WaitForListener("unix", "/tmp/mock.sock", 100)
	go func() {
		c, err := l.Accept()
		if err == nil {
			c.Close()
		}
	}()
	conn, err := mockNet.DialUnixContext(context.Background(), "unix", nil, uaddr)
	if err != nil {
		t.Fatalf("DialUnixContext() error = %v", err)
	}
	conn.Close()

	if got := mockNet.Dials(); got != 2 {
		t.Errorf("Dials() = %d, want 2", got)
	}
}

func TestMockNetwork_AddressInUse(t *testing.T) {
	t.Parallel()

	mockNet := NewMockNetwork()
	if _, err := mockNet.ListenString("tcp", "127.0.0.1:9002"); err != nil {
		t.Fatalf("first listen failed: %v", err)
	}
	if _, err := mockNet.ListenString("tcp", "127.0.0.1:9002"); err == nil {
		t.Error("second listen on the same address succeeded")
	}
}

func TestMockNetwork_DialAfterClose(t *testing.T) {
	t.Parallel()

	mockNet := NewMockNetwork()
	l, err := mockNet.ListenString("tcp", "127.0.0.1:9003")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	l.Close()

	raddr, _ := net.ResolveTCPAddr("tcp", "127.0.0.1:9003")
	if _, err := mockNet.DialTCPContext(context.Background(), "tcp", nil, raddr); err == nil {
		t.Error("dial after listener close succeeded")
	}
}
