package sshmirror

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/gliderlabs/ssh"

	"github.com/valerio/go-tiler/tiler/backend"
	"github.com/valerio/go-tiler/tiler/video"
)

// Options configures the ssh listener.
type Options struct {
	Addr        string // listen address, e.g. ":2222"; ":0" picks a free port
	HostKeyFile string // PEM host key; a key is generated when empty
}

// Mirror wraps another backend and streams every shown frame to connected
// ssh clients as ANSI half-blocks. Frames are encoded once per Show and
// handed to each session through a one-slot queue; a slow client only
// ever sees the newest frame.
type Mirror struct {
	inner   backend.Backend
	options Options

	server   *ssh.Server
	listener net.Listener

	mu       sync.Mutex
	sessions map[int]chan string
	nextID   int
}

// New mirrors inner. The mirror owns inner's lifecycle: Init and Cleanup
// are forwarded.
func New(inner backend.Backend, options Options) *Mirror {
	return &Mirror{
		inner:    inner,
		options:  options,
		sessions: make(map[int]chan string),
	}
}

// Init initializes the wrapped backend and starts accepting ssh sessions.
// If the listener cannot be set up, the wrapped backend is cleaned up again.
func (m *Mirror) Init(config backend.BackendConfig) error {
	if err := m.inner.Init(config); err != nil {
		return err
	}

	m.server = &ssh.Server{
		Handler: m.handleSession,
	}
	if m.options.HostKeyFile != "" {
		if err := m.server.SetOption(ssh.HostKeyFile(m.options.HostKeyFile)); err != nil {
			return errors.Join(fmt.Errorf("set host key: %w", err), m.inner.Cleanup())
		}
	}

	ln, err := net.Listen("tcp", m.options.Addr)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to listen on %s: %w", m.options.Addr, err), m.inner.Cleanup())
	}
	m.listener = ln

	go func() {
		if err := m.server.Serve(ln); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			slog.Error("SSH mirror stopped", "error", err)
		}
	}()

	slog.Info("SSH mirror listening", "addr", ln.Addr().String())
	return nil
}

// Addr is the address the mirror is listening on.
func (m *Mirror) Addr() net.Addr {
	if m.listener == nil {
		return nil
	}
	return m.listener.Addr()
}

func (m *Mirror) Buffer() *video.FrameBuffer {
	return m.inner.Buffer()
}

func (m *Mirror) Format() video.PixelFormat {
	return m.inner.Format()
}

// Show presents the frame on the wrapped backend, then queues it for
// every connected session.
func (m *Mirror) Show() error {
	if err := m.inner.Show(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) == 0 {
		return nil
	}

	frame := moveTo(1, 1) + EncodeHalfBlocks(m.inner.Buffer())
	for _, ch := range m.sessions {
		offer(ch, frame)
	}
	return nil
}

// Sessions returns the number of connected clients.
func (m *Mirror) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Mirror) Cleanup() error {
	var errs []error
	if m.server != nil {
		errs = append(errs, m.server.Close())
	}
	errs = append(errs, m.inner.Cleanup())
	return errors.Join(errs...)
}

// offer replaces whatever frame is still queued with frame.
func offer(ch chan string, frame string) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- frame:
	default:
	}
}

func (m *Mirror) register() (int, chan string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan string, 1)
	m.sessions[id] = ch
	return id, ch
}

func (m *Mirror) unregister(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Mirror) handleSession(sess ssh.Session) {
	user := sess.User()
	if user == "" {
		user = "anonymous"
	}

	id, frames := m.register()
	slog.Info("Mirror client connected", "user", user, "remote", sess.RemoteAddr().String())
	defer func() {
		m.unregister(id)
		slog.Info("Mirror client disconnected", "user", user)
	}()

	io.WriteString(sess, enableAltScreen()+hideCursor()+clearScreen())
	defer io.WriteString(sess, reset+showCursor()+disableAltScreen())

	quit := make(chan struct{})
	go func() {
		defer close(quit)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, b := range buf[:n] {
				// q or Ctrl-C
				if b == 'q' || b == 0x03 {
					return
				}
			}
		}
	}()

	for {
		select {
		case <-quit:
			return
		case <-sess.Context().Done():
			return
		case frame := <-frames:
			if _, err := io.WriteString(sess, frame); err != nil {
				return
			}
		}
	}
}
