package transport

import (
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

func pipeConn(t *testing.T, maxLine int) (*Conn, net.Conn) {
	t.Helper()
	local, remote := net.Pipe()
	c := NewConn(local, maxLine)
	t.Cleanup(func() {
		c.Close()
		remote.Close()
	})
	return c, remote
}

func TestReadLineAcrossPartialWrites(t *testing.T) {
	c, remote := pipeConn(t, 0)

	go func() {
		remote.Write([]byte("WELCOME to "))
		remote.Write([]byte("Envy v1.0\r\nOK\r"))
		remote.Write([]byte("\n"))
	}()

	line, err := c.ReadLine(time.Second)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "WELCOME to Envy v1.0" {
		t.Errorf("line = %q", line)
	}

	line, err = c.ReadLine(time.Second)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "OK" {
		t.Errorf("line = %q", line)
	}
}

func TestReadLineBareNewline(t *testing.T) {
	c, remote := pipeConn(t, 0)

	go remote.Write([]byte("OK\nHeartbeat\n"))

	for _, want := range []string{"OK", "Heartbeat"} {
		line, err := c.ReadLine(time.Second)
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if line != want {
			t.Errorf("line = %q, want %q", line, want)
		}
	}
}

func TestReadLineTimeout(t *testing.T) {
	c, _ := pipeConn(t, 0)

	_, err := c.ReadLine(20 * time.Millisecond)
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestReadLineResumesAfterTimeout(t *testing.T) {
	c, remote := pipeConn(t, 0)

	go remote.Write([]byte("IncomingSignalInfo 3840x2160 "))

	_, err := c.ReadLine(50 * time.Millisecond)
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("expected timeout error, got %v", err)
	}

	// The prefix consumed before the deadline must survive; the next
	// call returns the whole line once the rest arrives.
	go remote.Write([]byte("23.976p 2D RGB 12bit HDR10 2020 TV 16:9\r\nOK\r\n"))

	line, err := c.ReadLine(time.Second)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if want := "IncomingSignalInfo 3840x2160 23.976p 2D RGB 12bit HDR10 2020 TV 16:9"; line != want {
		t.Errorf("line = %q, want %q", line, want)
	}

	line, err = c.ReadLine(time.Second)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "OK" {
		t.Errorf("line = %q", line)
	}
}

func TestReadLineMaxLength(t *testing.T) {
	c, remote := pipeConn(t, 64)

	go remote.Write([]byte(strings.Repeat("x", 128) + "\r\n"))

	_, err := c.ReadLine(time.Second)
	var framing *FramingError
	if !errors.As(err, &framing) {
		t.Fatalf("expected FramingError, got %v", err)
	}
	if framing.Limit != 64 {
		t.Errorf("limit = %d, want 64", framing.Limit)
	}
}

func TestReadLineMaxLengthAcrossTimeouts(t *testing.T) {
	c, remote := pipeConn(t, 64)

	// Two 40-byte fragments with no terminator: neither fills the
	// reader buffer on its own, but together they exceed the limit.
	go remote.Write([]byte(strings.Repeat("x", 40)))
	if _, err := c.ReadLine(50 * time.Millisecond); err == nil {
		t.Fatal("expected timeout error")
	}

	go remote.Write([]byte(strings.Repeat("x", 40)))
	_, err := c.ReadLine(50 * time.Millisecond)
	var framing *FramingError
	if !errors.As(err, &framing) {
		t.Fatalf("expected FramingError, got %v", err)
	}
}

func TestWriteLineClearsStaleDeadline(t *testing.T) {
	c, remote := pipeConn(t, 0)

	// No reader on the far side, so this write times out and leaves
	// an expired deadline on the socket.
	if err := c.WriteLine("PowerOff", 10*time.Millisecond); err == nil {
		t.Fatal("expected write timeout")
	}

	go io.Copy(io.Discard, remote)
	if err := c.WriteLine("OK", 0); err != nil {
		t.Fatalf("WriteLine after stale deadline: %v", err)
	}
}

func TestWriteLineAppendsTerminator(t *testing.T) {
	c, remote := pipeConn(t, 0)

	done := make(chan string, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := remote.Read(buf)
		done <- string(buf[:n])
	}()

	if err := c.WriteLine("Heartbeat", time.Second); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if got := <-done; got != "Heartbeat\r\n" {
		t.Errorf("wrote %q", got)
	}
}

func TestCloseIdempotentAndFailsIO(t *testing.T) {
	c, _ := pipeConn(t, 0)

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, err := c.ReadLine(time.Second); !errors.Is(err, ErrNotConnected) {
		t.Errorf("ReadLine after close = %v, want ErrNotConnected", err)
	}
	if err := c.WriteLine("OK", time.Second); !errors.Is(err, ErrNotConnected) {
		t.Errorf("WriteLine after close = %v, want ErrNotConnected", err)
	}
}

func TestReadLinePeerClose(t *testing.T) {
	c, remote := pipeConn(t, 0)

	remote.Close()
	_, err := c.ReadLine(time.Second)
	if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected EOF-ish error, got %v", err)
	}
}

func TestDialOverLoopback(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		conn.Write([]byte("WELCOME to Envy v1.0\r\n"))
		conn.Close()
	}()

	addr := listener.Addr().(*net.TCPAddr)
	c, err := Dial(t.Context(), "127.0.0.1", addr.Port, 0)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	line, err := c.ReadLine(time.Second)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "WELCOME to Envy v1.0" {
		t.Errorf("line = %q", line)
	}
}
