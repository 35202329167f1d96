package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/ThomScottW/particlesim/internal/config"
	"github.com/ThomScottW/particlesim/internal/loop"
	"github.com/ThomScottW/particlesim/internal/physics"
	"github.com/ThomScottW/particlesim/internal/scene"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scenePath := config.GetEnv("SCENE_FILE", "")
	seed := config.GetEnvInt64("SIM_SEED", 0)
	log.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "scene", scenePath)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			simMiddleware(scenePath, seed),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for cursor input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "err", err)
	}
}

// simMiddleware runs a simulation session per SSH connection. Every session
// gets its own world, so clients never contend over simulation state.
func simMiddleware(scenePath string, seed int64) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			log.Info("new session",
				"user", sess.User(), "terminal", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Track terminal size from SSH window change events
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			world, title, err := buildSessionWorld(scenePath, seed)
			if err != nil {
				log.Error("failed to build scene", "err", err)
				fmt.Fprintln(sess, "Error: failed to build simulation scene.")
				return
			}

			reader := bufio.NewReader(sess)
			runOpts := loop.Options{
				TermSizeFunc: sizeTracker.getSize,
				Title:        title,
			}
			if err := loop.Run(reader, sess, world, runOpts); err != nil {
				log.Error("session error", "user", sess.User(), "err", err)
			}

			log.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// buildSessionWorld constructs a fresh world for one session, from the
// configured scene file or the default random scene.
func buildSessionWorld(scenePath string, seed int64) (world *physics.World, title string, err error) {
	sc := scene.Default()
	if scenePath != "" {
		sc, err = scene.Load(scenePath)
		if err != nil {
			return nil, "", err
		}
	}
	if seed != 0 && sc.Random != nil {
		sc.Random.Seed = seed
	}
	w, err := sc.Build()
	if err != nil {
		return nil, "", err
	}
	return w, sc.Name, nil
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}
