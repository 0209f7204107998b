package scanning

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Prober performs one bounded-time connection attempt against a single
// address and port and classifies the outcome. Implementations must
// never return an error: every possible failure is encoded in the
// observation's status.
type Prober interface {
	Probe(ctx context.Context, address string, port int) PortObservation
}

// ConnectProber is the production Prober. It completes a full TCP
// handshake (no raw sockets, no special privileges) and makes a
// best-effort banner read on open ports.
type ConnectProber struct {
	// Timeout bounds the dial and, separately, the banner exchange.
	Timeout time.Duration
	// BannerBytes is the banner read budget. Zero disables capture.
	BannerBytes int
}

// Probe dials address:port and classifies the result. The connection is
// closed on every exit path, and elapsed time is recorded regardless of
// outcome.
func (p *ConnectProber) Probe(ctx context.Context, address string, port int) PortObservation {
	start := time.Now()
	obs := PortObservation{Port: port}

	dialer := net.Dialer{Timeout: p.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
	if err != nil {
		obs.Status = classifyDialError(err)
		obs.ResponseTimeMs = msSince(start)
		return obs
	}
	defer func() { _ = conn.Close() }()

	obs.Status = StatusOpen
	if p.BannerBytes > 0 {
		obs.Banner = grabBanner(conn, p.Timeout, p.BannerBytes)
	}
	obs.ResponseTimeMs = msSince(start)
	return obs
}

// classifyDialError maps a dial failure onto the port-state taxonomy.
// Timeouts are filtered, active refusals are closed, and everything
// else (host unreachable, network down, protocol errors) is error so it
// is never mistaken for genuine port-state information.
func classifyDialError(err error) PortStatus {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusFiltered
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusFiltered
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return StatusClosed
	}
	return StatusError
}

// grabBanner sends a single newline probe and reads at most limit bytes
// of whatever the service answers, under the same timeout used for the
// dial. Any failure here, including an empty or unreadable response,
// yields nil; a banner read can never downgrade an open port.
func grabBanner(conn net.Conn, timeout time.Duration, limit int) *string {
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil
	}
	if _, err := conn.Write([]byte("\r\n")); err != nil {
		return nil
	}

	buf := make([]byte, limit)
	n, _ := conn.Read(buf)
	if n <= 0 {
		return nil
	}

	// Invalid byte sequences are dropped rather than failing the read.
	banner := strings.TrimSpace(strings.ToValidUTF8(string(buf[:n]), ""))
	if banner == "" {
		return nil
	}
	return &banner
}
