package whois_tools

import (
	"bufio"
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

// Mock server for testing. Every request line received is sent on the
// returned channel.
func startMockWhoisServer(t *testing.T, response string) (string, <-chan string) {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	requests := make(chan string, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		line, err := bufio.NewReader(conn).ReadString('\n')
		if err != nil {
			return
		}
		requests <- line
		conn.Write([]byte(response))
	}()

	return listener.Addr().String(), requests
}

func TestQuery(t *testing.T) {
	mockResponse := "Mock WHOIS response for example.com"
	addr, requests := startMockWhoisServer(t, mockResponse)

	result, err := Query(context.Background(), addr, "example.com", 2*time.Second)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result != mockResponse {
		t.Errorf("Expected response %q, got %q", mockResponse, result)
	}
	if req := <-requests; req != "example.com\r\n" {
		t.Errorf("Expected request %q, got %q", "example.com\r\n", req)
	}
}

func TestQueryEmptyResponse(t *testing.T) {
	addr, _ := startMockWhoisServer(t, "")

	_, err := Query(context.Background(), addr, "example.com", 2*time.Second)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestQueryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Query(ctx, "127.0.0.1:1", "example.com", time.Second); err == nil {
		t.Errorf("Expected an error for a canceled context, got none")
	}
}

func TestLookupNoServer(t *testing.T) {
	_, err := Lookup(context.Background(), "example.xyz", []string{" "}, time.Second)
	if !errors.Is(err, ErrNoWhoisServer) {
		t.Errorf("Expected ErrNoWhoisServer, got %v", err)
	}
}

func TestLookupFollowsReferral(t *testing.T) {
	registrarResponse := "Domain Name: EXAMPLE.COM\nRegistrar: Example Registrar\n"
	registrarAddr, _ := startMockWhoisServer(t, registrarResponse)
	registryAddr, _ := startMockWhoisServer(t, "Domain Name: EXAMPLE.COM\nRegistrar WHOIS Server: "+registrarAddr+"\n")

	result, err := Lookup(context.Background(), "example.com", []string{registryAddr}, 2*time.Second)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Raw != registrarResponse || result.Server != registrarAddr {
		t.Errorf("Lookup = %+v; want the answer of %s", result, registrarAddr)
	}
}

func TestLookupKeepsRegistryAnswerOnFailedReferral(t *testing.T) {
	// Nothing listens on the referred address once its listener is closed.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	deadAddr := listener.Addr().String()
	listener.Close()

	registryResponse := "Domain Name: EXAMPLE.COM\nWhois Server: " + deadAddr + "\n"
	registryAddr, _ := startMockWhoisServer(t, registryResponse)

	result, err := Lookup(context.Background(), "example.com", []string{registryAddr}, time.Second)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Raw != registryResponse || result.Server != registryAddr {
		t.Errorf("Lookup = %+v; want the registry answer", result)
	}
}
