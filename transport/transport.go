// Package transport implements the raw line transport for the Envy
// IP-control connection.
//
// It owns one TCP socket, frames inbound bytes into newline-terminated
// text lines (buffering partial reads until a terminator is seen), and
// writes outbound lines under an exclusive-write mutex so concurrent
// writers never interleave. It has no protocol knowledge.
//
// A maximum line length defends against a misbehaving peer: once the
// buffer fills without a terminator, reads fail with *FramingError and
// the connection should be reset.
package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultPort is the Envy IP-control listen port.
	DefaultPort = 44077

	// DefaultMaxLineLength bounds one protocol line. Real device lines
	// are well under 1 KiB; anything larger is a framing failure.
	DefaultMaxLineLength = 8192
)

// ErrNotConnected is returned by reads and writes after Close.
var ErrNotConnected = errors.New("transport: not connected")

// FramingError reports an inbound line that exceeded the maximum
// length without a terminator.
type FramingError struct {
	Limit int
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("transport: line exceeds %d bytes without terminator", e.Limit)
}

// Conn is one established line-oriented connection. Reads expect a
// single consumer; writes may be concurrent.
type Conn struct {
	conn    net.Conn
	reader  *bufio.Reader
	maxLine int

	// partial holds line bytes consumed from the reader before a
	// terminator was seen. A read deadline can expire mid-line;
	// keeping what was already consumed lets the next ReadLine call
	// resume the same line instead of dropping its prefix.
	partial []byte

	writeMu sync.Mutex

	mu     sync.Mutex
	closed bool
}

// Dial opens a TCP connection to the device and wraps it in a Conn.
// maxLine <= 0 selects DefaultMaxLineLength. Socket and DNS failures
// are returned wrapped; the context bounds the connection attempt.
func Dial(ctx context.Context, host string, port, maxLine int) (*Conn, error) {
	if port <= 0 {
		port = DefaultPort
	}
	var dialer net.Dialer
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: connect %s: %w", addr, err)
	}
	return NewConn(conn, maxLine), nil
}

// NewConn wraps an established net.Conn. Useful for tests that connect
// the transport to an in-process pipe or listener.
func NewConn(conn net.Conn, maxLine int) *Conn {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLength
	}
	return &Conn{
		conn: conn,
		// The reader buffer doubles as the line-length limit: a line
		// that fills it without a terminator is a framing failure.
		reader:  bufio.NewReaderSize(conn, maxLine),
		maxLine: maxLine,
	}
}

// ReadLine returns the next decoded text line without its terminator.
// It blocks up to timeout (zero means no deadline); on deadline expiry
// any partially read line is retained and the next call resumes it. A
// clean peer close surfaces as io.EOF; abrupt loss as the underlying
// error; an overlong line as *FramingError.
func (c *Conn) ReadLine(timeout time.Duration) (string, error) {
	if c.isClosed() {
		return "", ErrNotConnected
	}

	if timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return "", fmt.Errorf("transport: set read deadline: %w", err)
		}
	} else if err := c.conn.SetReadDeadline(time.Time{}); err != nil {
		return "", fmt.Errorf("transport: clear read deadline: %w", err)
	}

	// ReadSlice (not ReadString) so a line that fills the buffer
	// without a terminator surfaces as ErrBufferFull instead of
	// growing without bound. ReadSlice consumes the bytes it returns
	// even on error, so they are accumulated into partial either way.
	line, err := c.reader.ReadSlice('\n')
	if len(line) > 0 {
		c.partial = append(c.partial, line...)
	}
	if err != nil {
		if errors.Is(err, bufio.ErrBufferFull) || len(c.partial) >= c.maxLine {
			c.partial = nil
			return "", &FramingError{Limit: c.maxLine}
		}
		return "", err
	}
	out := strings.TrimRight(string(c.partial), "\r\n")
	c.partial = c.partial[:0]
	return out, nil
}

// WriteLine sends one line, appending the protocol terminator. Writers
// are serialized; concurrent calls never interleave bytes.
func (c *Conn) WriteLine(line string, timeout time.Duration) error {
	if c.isClosed() {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if timeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return fmt.Errorf("transport: set write deadline: %w", err)
		}
	} else if err := c.conn.SetWriteDeadline(time.Time{}); err != nil {
		return fmt.Errorf("transport: clear write deadline: %w", err)
	}
	if _, err := c.conn.Write([]byte(line + "\r\n")); err != nil {
		return fmt.Errorf("transport: write: %w", err)
	}
	return nil
}

// Close releases the socket. It is idempotent; reads and writes after
// Close fail with ErrNotConnected.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.conn.Close()
}

func (c *Conn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
