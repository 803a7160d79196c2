package unibox

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// KeyTestMode suppresses physical printing on the Unibox server. Sent by
// the TCP client when test mode is configured, never set by callers.
const (
	KeyTestMode   = "T090"
	testModeValue = "NOPRINT"
)

// TCPAPIClient is the production implementation of APIClient. The Unibox
// server accepts one framed record per connection and answers with one
// framed record.
type TCPAPIClient struct {
	addr    string
	test    bool
	timeout time.Duration
	dialer  *net.Dialer
}

// TCPAPIClientConfig holds configuration for the TCP client.
type TCPAPIClientConfig struct {
	Server  string
	Port    int
	Test    bool
	Timeout time.Duration
}

// NewTCPAPIClient creates a new TCP-based API client for production use.
func NewTCPAPIClient(cfg TCPAPIClientConfig) *TCPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &TCPAPIClient{
		addr:    net.JoinHostPort(cfg.Server, strconv.Itoa(cfg.Port)),
		test:    cfg.Test,
		timeout: timeout,
		dialer:  &net.Dialer{Timeout: timeout},
	}
}

// CreateLabel submits the request and returns the raw response record.
// Connectivity and framing failures surface as transport errors; the caller
// owns any retry policy.
func (c *TCPAPIClient) CreateLabel(ctx context.Context, req *LabelRequest) ([]byte, error) {
	fields := req.Fields()
	if c.test {
		fields = append([]Field{{KeyTestMode, testModeValue}}, fields...)
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("unibox dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("unibox deadline: %w", err)
	}

	if _, err := conn.Write(encodeFields(fields)); err != nil {
		return nil, fmt.Errorf("unibox write: %w", err)
	}

	raw, err := bufio.NewReader(conn).ReadBytes(etx)
	if err != nil {
		return nil, fmt.Errorf("unibox read: %w", err)
	}
	return raw, nil
}

var _ APIClient = (*TCPAPIClient)(nil)
