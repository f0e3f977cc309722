package ssh

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/ssh"

	"daosweep/shell"
)

// Config represents SSH connection configuration for a remote simulator host
type Config struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	User           string        `yaml:"user"`
	KeyPath        string        `yaml:"key_path"`
	Password       string        `yaml:"password,omitempty"`
	WorkDir        string        `yaml:"work_dir,omitempty"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// Client runs simulator commands on a remote host. It satisfies shell.Runner
// so the executor does not care whether the simulator is local or remote.
type Client struct {
	config *Config
	client *ssh.Client
}

// NewClient creates a new SSH client
func NewClient(config *Config) *Client {
	if config.Port == 0 {
		config.Port = 22
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 30 * time.Second
	}

	return &Client{
		config: config,
	}
}

// Connect establishes an SSH connection
func (c *Client) Connect(ctx context.Context) error {
	if c.client != nil {
		return nil // Already connected
	}

	var authMethods []ssh.AuthMethod

	if c.config.KeyPath != "" {
		key, err := c.loadPrivateKey(c.config.KeyPath)
		if err != nil {
			return fmt.Errorf("failed to load private key: %w", err)
		}
		authMethods = append(authMethods, ssh.PublicKeys(key))
	}

	if c.config.Password != "" {
		authMethods = append(authMethods, ssh.Password(c.config.Password))
	}

	if len(authMethods) == 0 {
		return fmt.Errorf("no authentication method provided")
	}

	sshConfig := &ssh.ClientConfig{
		User:            c.config.User,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // In production, implement proper host key verification
		Timeout:         c.config.ConnectTimeout,
	}

	address := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)

	conn, err := c.dialWithContext(ctx, "tcp", address, sshConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	c.client = conn
	return nil
}

// ExecuteCommand runs a command on the remote host, from the configured
// working directory when one is set. Non-zero exits are reported through
// the result, matching the local runner's contract.
func (c *Client) ExecuteCommand(ctx context.Context, command string) (*shell.Result, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	session, err := c.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	if c.config.WorkDir != "" {
		command = fmt.Sprintf("cd %s && %s", c.config.WorkDir, command)
	}

	result := &shell.Result{}
	done := make(chan error, 1)

	go func() {
		output, err := session.CombinedOutput(command)
		result.Output = string(output)

		if err != nil {
			result.Error = err.Error()
			if exitErr, ok := err.(*ssh.ExitError); ok {
				result.ExitCode = exitErr.ExitStatus()
			}
		}

		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			if _, ok := err.(*ssh.ExitError); ok {
				// The command ran and exited non-zero; the caller decides
				// what to do with the exit code.
				return result, nil
			}
			return nil, fmt.Errorf("remote execution failed: %w", err)
		}
		return result, nil
	case <-ctx.Done():
		// Close the session to terminate the remote command
		session.Close()
		return nil, fmt.Errorf("command interrupted: %w", ctx.Err())
	}
}

// Close closes the SSH connection
func (c *Client) Close() error {
	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

// loadPrivateKey loads a private key from file
func (c *Client) loadPrivateKey(keyPath string) (ssh.Signer, error) {
	// Expand home directory
	if keyPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		keyPath = filepath.Join(home, keyPath[1:])
	}

	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}

	key, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, err
	}

	return key, nil
}

// dialWithContext provides context-aware dialing
func (c *Client) dialWithContext(ctx context.Context, network, address string, config *ssh.ClientConfig) (*ssh.Client, error) {
	dialer := &net.Dialer{
		Timeout: config.Timeout,
	}

	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return ssh.NewClient(sshConn, chans, reqs), nil
}
