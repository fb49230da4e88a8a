package whois_tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/KincaidYang/whoisparser/logger"
)

// maxResponseSize bounds how much of a WHOIS answer is read.
const maxResponseSize = 1 << 20

var (
	// ErrNoWhoisServer is returned when no server template is known.
	ErrNoWhoisServer = errors.New("no whois server known")
	// ErrEmptyResponse is returned when the server closed without data.
	ErrEmptyResponse = errors.New("empty whois response")
)

// Query sends domain to a WHOIS server and returns the raw answer. server
// may carry a port; port 43 is used otherwise.
func Query(ctx context.Context, server, domain string, timeout time.Duration) (string, error) {
	addr := server
	if _, _, err := net.SplitHostPort(server); err != nil {
		addr = net.JoinHostPort(server, "43")
	}

	logger.Module("whois").Debugw("querying whois", "domain", domain, "server", addr)

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return "", err
	}

	if _, err := conn.Write([]byte(domain + "\r\n")); err != nil {
		return "", fmt.Errorf("write %s: %w", addr, err)
	}

	body, err := io.ReadAll(io.LimitReader(conn, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", addr, err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", ErrEmptyResponse
	}
	return string(body), nil
}

// LookupResult is the outcome of Lookup.
type LookupResult struct {
	Raw string
	// Server is the server whose answer is in Raw.
	Server string
}

// Lookup queries the first server template for domain and follows one
// "Whois Server:" referral when the registry points at another server.
// A failing referral keeps the registry answer.
func Lookup(ctx context.Context, domain string, templates []string, timeout time.Duration) (LookupResult, error) {
	var server string
	for _, tpl := range templates {
		if tpl = strings.TrimSpace(tpl); tpl != "" {
			server = strings.ReplaceAll(tpl, DomainPlaceholder, domain)
			break
		}
	}
	if server == "" {
		return LookupResult{}, ErrNoWhoisServer
	}

	raw, err := Query(ctx, server, domain, timeout)
	if err != nil {
		return LookupResult{}, err
	}
	result := LookupResult{Raw: raw, Server: server}

	referral, ok := ExtractWhoisServerHost(raw)
	if !ok || strings.EqualFold(referral, server) || strings.ContainsAny(referral, " /") {
		return result, nil
	}

	referred, err := Query(ctx, referral, domain, timeout)
	if err != nil {
		logger.Module("whois").Warnw("whois referral failed", "domain", domain, "server", referral, "error", err)
		return result, nil
	}
	return LookupResult{Raw: referred, Server: referral}, nil
}
