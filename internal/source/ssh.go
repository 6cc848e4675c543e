package source

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path"
	"strconv"
	"time"

	"al.essio.dev/pkg/shellescape"
	"golang.org/x/crypto/ssh"
)

// SSHConfig holds connection details for reading resources over SSH.
type SSHConfig struct {
	Host               string `toml:"-"`
	Dir                string `toml:"-"`
	Port               int    `toml:"port"`
	Username           string `toml:"username"`
	PrivateKeyPath     string `toml:"private_key_path"`
	HostKeyFingerprint string `toml:"host_key_fingerprint"`

	// PrivateKey overrides PrivateKeyPath when set.
	PrivateKey []byte `toml:"-"`
}

// SSH reads resources by running cat on a remote host.
type SSH struct {
	cfg    SSHConfig
	signer ssh.Signer
}

// NewSSH validates cfg and parses the private key. No connection is made
// until Fetch.
func NewSSH(cfg SSHConfig) (*SSH, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("ssh host required")
	}
	if cfg.HostKeyFingerprint == "" {
		return nil, fmt.Errorf("host_key_fingerprint is required for ssh sources")
	}
	if cfg.Port == 0 {
		cfg.Port = 22
	}

	key := cfg.PrivateKey
	if key == nil {
		if cfg.PrivateKeyPath == "" {
			return nil, fmt.Errorf("private_key_path is required for ssh sources")
		}
		b, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading ssh private key %s: %w", cfg.PrivateKeyPath, err)
		}
		key = b
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("parsing ssh private key: %w", err)
	}
	return &SSH{cfg: cfg, signer: signer}, nil
}

// Addr returns the host:port the source dials.
func (s *SSH) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

func (s *SSH) clientConfig() *ssh.ClientConfig {
	want := s.cfg.HostKeyFingerprint
	return &ssh.ClientConfig{
		User: s.cfg.Username,
		Auth: []ssh.AuthMethod{ssh.PublicKeys(s.signer)},
		HostKeyCallback: func(_ string, _ net.Addr, key ssh.PublicKey) error {
			if got := ssh.FingerprintSHA256(key); got != want {
				return fmt.Errorf("host key mismatch: got %s, want %s", got, want)
			}
			return nil
		},
		Timeout: 10 * time.Second,
	}
}

// Fetch dials the host, reads dir/name and closes the connection.
func (s *SSH) Fetch(ctx context.Context, name string) ([]byte, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.Addr())
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", s.Addr(), err)
	}
	defer conn.Close()

	// Unblock the handshake or session if ctx is cancelled.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, s.Addr(), s.clientConfig())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("ssh handshake with %s: %w", s.Addr(), err)
	}
	client := ssh.NewClient(sshConn, chans, reqs)
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("opening ssh session: %w", err)
	}
	defer session.Close()

	var stderr bytes.Buffer
	session.Stderr = &stderr
	out, err := session.Output(s.Command(name))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("reading %s on %s: %w: %s", name, s.cfg.Host, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, nil
}

// Command returns the remote command used to read name.
func (s *SSH) Command(name string) string {
	return "cat -- " + shellescape.Quote(path.Join(s.cfg.Dir, name))
}

func (s *SSH) String() string {
	return "ssh://" + s.Addr() + s.cfg.Dir
}
