package libvirt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/digitalocean/go-libvirt"
	"github.com/digitalocean/go-libvirt/socket/dialers"
)

const (
	// DefaultSocket is the system libvirt daemon socket (qemu:///system).
	DefaultSocket = "/var/run/libvirt/libvirt-sock"

	defaultDialTimeout = 5 * time.Second
)

var errNotConnected = errors.New("libvirt client not connected")

// Client is a read-only session with the local libvirt daemon, used to see
// which domains reference a replicated device.
type Client struct {
	libvirt *libvirt.Libvirt
	socket  string
}

// Connect dials the daemon's unix socket. An empty socketPath means
// DefaultSocket and a zero timeout means five seconds. If ctx ends before the
// handshake completes, the late connection is closed and ctx's error returned.
func Connect(ctx context.Context, socketPath string, timeout time.Duration) (*Client, error) {
	if socketPath == "" {
		socketPath = DefaultSocket
	}
	if timeout == 0 {
		timeout = defaultDialTimeout
	}

	done := make(chan error, 1)
	l := libvirt.NewWithDialer(dialers.NewLocal(
		dialers.WithSocket(socketPath),
		dialers.WithLocalTimeout(timeout),
	))
	go func() { done <- l.Connect() }()

	select {
	case <-ctx.Done():
		go func() {
			if <-done == nil {
				_ = l.Disconnect()
			}
		}()
		return nil, fmt.Errorf("connecting to libvirt at %s: %w", socketPath, ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("failed to connect to libvirt at %s: %w", socketPath, err)
		}
	}

	return &Client{libvirt: l, socket: socketPath}, nil
}

// Close ends the session. Closing a client that never connected is a no-op.
func (c *Client) Close() error {
	if c.libvirt == nil {
		return nil
	}
	if err := c.libvirt.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect from libvirt at %s: %w", c.socket, err)
	}
	return nil
}

// Libvirt exposes the go-libvirt session for consumers that declare their
// own narrow interfaces over it.
func (c *Client) Libvirt() *libvirt.Libvirt {
	return c.libvirt
}

// Ping checks that the daemon still answers.
func (c *Client) Ping() error {
	if _, err := c.Version(); err != nil {
		return fmt.Errorf("libvirt connection is dead: %w", err)
	}
	return nil
}

// Version returns the daemon's libvirt version as major.minor.release.
func (c *Client) Version() (string, error) {
	if c.libvirt == nil {
		return "", errNotConnected
	}

	v, err := c.libvirt.ConnectGetLibVersion()
	if err != nil {
		return "", fmt.Errorf("failed to get libvirt version: %w", err)
	}
	return fmt.Sprintf("%d.%d.%d", v/1000000, (v/1000)%1000, v%1000), nil
}

// Hostname returns the hypervisor's host name.
func (c *Client) Hostname() (string, error) {
	if c.libvirt == nil {
		return "", errNotConnected
	}

	name, err := c.libvirt.ConnectGetHostname()
	if err != nil {
		return "", fmt.Errorf("failed to get hostname: %w", err)
	}
	return name, nil
}
