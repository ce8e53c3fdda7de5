package guard

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgconn"
)

// connectivity fragments cover drivers that wrap transport errors in
// plain strings (pgconn dial failures, redis pool timeouts).
var connectivityFragments = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"connection pool timeout",
	"failed to connect",
	"dial tcp",
}

// isConnectivity classifies an error as connectivity-related (backend
// unreachable) as opposed to a logic failure (backend reachable, request
// structurally bad). Timeouts count as connectivity.
func isConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	// A well-formed server-side error means we reached the backend.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, frag := range connectivityFragments {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}
