package source

/**
 * ssh.go - remote ifconfig over ssh
 */

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/logging"
	"github.com/yyyar/trafficplot/utils"
)

const (
	sshDefaultPort        = "22"
	sshDefaultDialTimeout = 10 * time.Second

	// printed by remote loop after every ifconfig run
	blockMarker = "--trafficplot-end-of-block--"
)

/**
 * Runs ifconfig loop on the remote host in one session.
 * Remote loop gets a pty so it dies with the session.
 */
type SshSource struct {
	cfg config.SourceConfig

	mu        sync.Mutex
	agentConn net.Conn
	client    *ssh.Client
	session   *ssh.Session
	stream    *StreamSource
	closed    bool
}

/**
 * Create new ssh Source, connection is made on first Next
 */
func NewSshSource(cfg config.SourceConfig) (Source, error) {
	if cfg.Remote == "" {
		return nil, errors.New("ssh source: no remote target")
	}
	return &SshSource{cfg: cfg}, nil
}

/**
 * Remote shell loop command
 */
func RemoteCommand(cfg config.SourceConfig) string {
	command := cfg.Command
	if len(command) == 0 {
		command = []string{"ifconfig"}
	}
	return fmt.Sprintf("while true; do %s %s; echo %s; sleep %d; done",
		strings.Join(command, " "), cfg.Iface, blockMarker, cfg.Interval)
}

/**
 * Split "user@host[:port]" target, user defaults to current user
 */
func ParseTarget(target string) (userName string, addr string, err error) {

	host := target
	if i := strings.LastIndex(target, "@"); i >= 0 {
		userName, host = target[:i], target[i+1:]
	}

	if host == "" {
		return "", "", fmt.Errorf("bad remote target %q", target)
	}

	if userName == "" {
		if u, err := user.Current(); err == nil {
			userName = u.Username
		}
	}

	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(strings.Trim(host, "[]"), sshDefaultPort)
	}

	return userName, host, nil
}

func (this *SshSource) connect(ctx context.Context) (err error) {

	log := logging.For("source/ssh")

	userName, addr, err := ParseTarget(this.cfg.Remote)
	if err != nil {
		return err
	}

	auth, agentConn, err := authMethods(this.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && agentConn != nil {
			agentConn.Close()
		}
	}()

	hostKeyCallback, err := hostKeyCallback(this.cfg)
	if err != nil {
		return err
	}

	clientCfg := &ssh.ClientConfig{
		User:            userName,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         utils.ParseDurationOrDefault(this.cfg.SshDialTimeout, sshDefaultDialTimeout),
	}

	log.Info("Connecting to ", userName, "@", addr)

	dialer := net.Dialer{Timeout: clientCfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("ssh: dial %s: %w", addr, err)
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		conn.Close()
		return fmt.Errorf("ssh: handshake %s: %w", addr, err)
	}
	client := ssh.NewClient(c, chans, reqs)

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return fmt.Errorf("ssh: new session: %w", err)
	}

	if err := session.RequestPty("dumb", 0, 0, ssh.TerminalModes{ssh.ECHO: 0}); err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("ssh: request pty: %w", err)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("ssh: stdout: %w", err)
	}

	command := RemoteCommand(this.cfg)
	if err := session.Start(command); err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("ssh: start %q: %w", command, err)
	}

	log.Debug("Started remote ", command)

	this.agentConn = agentConn
	this.client = client
	this.session = session
	this.stream = NewStreamSource(stdout, blockMarker, closerFunc(this.release))

	return nil
}

/**
 * Next connects if needed and returns next remote block
 */
func (this *SshSource) Next(ctx context.Context) (Block, error) {

	this.mu.Lock()
	if this.closed {
		this.mu.Unlock()
		return nil, errors.New("ssh source closed")
	}
	if this.stream == nil {
		if err := this.connect(ctx); err != nil {
			this.mu.Unlock()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", ErrConnect, err)
		}
	}
	stream := this.stream
	this.mu.Unlock()

	return stream.Next(ctx)
}

/**
 * Close terminates remote loop and connection
 */
func (this *SshSource) Close() error {
	this.mu.Lock()
	this.closed = true
	stream := this.stream
	this.mu.Unlock()

	if stream == nil {
		return nil
	}
	return stream.Close()
}

func (this *SshSource) release() error {
	if this.session != nil {
		this.session.Signal(ssh.SIGTERM)
		this.session.Close()
	}
	if this.agentConn != nil {
		this.agentConn.Close()
	}
	if this.client != nil {
		return this.client.Close()
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

/**
 * Auth with explicit key, default keys and ssh-agent.
 * Returned agent connection, if any, is owned by the caller.
 */
func authMethods(cfg config.SourceConfig) ([]ssh.AuthMethod, net.Conn, error) {

	var methods []ssh.AuthMethod

	var keys []string
	if cfg.SshKey != "" {
		keys = []string{cfg.SshKey}
	} else if home, err := os.UserHomeDir(); err == nil {
		for _, name := range []string{"id_ed25519", "id_ecdsa", "id_rsa"} {
			keys = append(keys, filepath.Join(home, ".ssh", name))
		}
	}

	var signers []ssh.Signer
	for _, path := range keys {
		data, err := os.ReadFile(path)
		if err != nil {
			if cfg.SshKey != "" {
				return nil, nil, fmt.Errorf("ssh: read key: %w", err)
			}
			continue
		}
		signer, err := ssh.ParsePrivateKey(data)
		if err != nil {
			if cfg.SshKey != "" {
				return nil, nil, fmt.Errorf("ssh: parse key %s: %w", path, err)
			}
			logging.For("source/ssh").Debug("Skipping key ", path, ": ", err)
			continue
		}
		signers = append(signers, signer)
	}
	if len(signers) > 0 {
		methods = append(methods, ssh.PublicKeys(signers...))
	}

	var agentConn net.Conn
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			agentConn = conn
			methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}

	if len(methods) == 0 {
		return nil, nil, errors.New("ssh: no usable keys and no ssh-agent")
	}

	return methods, agentConn, nil
}

func hostKeyCallback(cfg config.SourceConfig) (ssh.HostKeyCallback, error) {

	if cfg.SshInsecure {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	path := cfg.SshKnownHosts
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: known_hosts: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("ssh: known_hosts: %w", err)
	}

	return cb, nil
}
