package deeplink

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	socketName  = "understandly-lockdown.sock"
	dialTimeout = 2 * time.Second

	// queueSize bounds pending deliveries; a flood of deep links beyond
	// this is dropped rather than blocking the accept loop.
	queueSize = 8
)

// SocketPath returns the per-user rendezvous socket for runtime deep-link
// delivery between process instances.
func SocketPath() string {
	return filepath.Join(os.TempDir(), socketName)
}

// Listener owns the rendezvous socket of the first instance and streams
// URIs handed off by later invocations.
type Listener struct {
	ln     net.Listener
	uris   chan string
	logger *zap.Logger
}

// NewListener starts listening on the default rendezvous socket.
func NewListener(logger *zap.Logger) (*Listener, error) {
	return NewListenerAt(SocketPath(), logger)
}

// NewListenerAt starts listening on an explicit socket path.
func NewListenerAt(path string, logger *zap.Logger) (*Listener, error) {
	// A crashed instance can leave the socket file behind; if nothing
	// answers it, reclaim the path.
	if _, err := os.Stat(path); err == nil && !instanceRunningAt(path) {
		_ = os.Remove(path)
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen deep-link socket: %w", err)
	}

	l := &Listener{
		ln:     ln,
		uris:   make(chan string, queueSize),
		logger: logger,
	}
	go l.accept()
	return l, nil
}

// URIs returns the stream of deep links delivered at runtime.
func (l *Listener) URIs() <-chan string {
	return l.uris
}

// Close stops accepting deliveries and releases the socket.
func (l *Listener) Close() error {
	return l.ln.Close()
}

func (l *Listener) accept() {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			return // listener closed
		}
		go l.read(conn)
	}
}

func (l *Listener) read(conn net.Conn) {
	defer conn.Close()

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		uri := strings.TrimSpace(sc.Text())
		if uri == "" {
			continue
		}
		select {
		case l.uris <- uri:
		default:
			l.logger.Warn("deep link dropped, delivery queue full",
				zap.String("uri", uri))
		}
	}
}

// InstanceRunning reports whether another instance already owns the
// default rendezvous socket.
func InstanceRunning() bool {
	return instanceRunningAt(SocketPath())
}

func instanceRunningAt(path string) bool {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Forward hands a URI to the running instance via the default socket.
func Forward(uri string) error {
	return ForwardTo(SocketPath(), uri)
}

// ForwardTo hands a URI to the instance listening at path.
func ForwardTo(path, uri string) error {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return fmt.Errorf("dial running instance: %w", err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintln(conn, uri); err != nil {
		return fmt.Errorf("forward deep link: %w", err)
	}
	return nil
}
