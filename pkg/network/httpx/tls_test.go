package httpx

import (
	"strings"
	"testing"

	"golang.org/x/crypto/acme/autocert"
)

func TestTLSCertCacheDir(t *testing.T) {
	tls := NewTLSConfig("example.com", "/var/lib/certs")
	if dir, ok := tls.CertManager.Cache.(autocert.DirCache); !ok || string(dir) != "/var/lib/certs" {
		t.Errorf("cache = %v, want the configured directory", tls.CertManager.Cache)
	}

	tls = NewTLSConfig("", "")
	dir, ok := tls.CertManager.Cache.(autocert.DirCache)
	if !ok || dir == "" {
		t.Fatal("empty config must fall back to a default cache directory")
	}
	if !strings.Contains(string(dir), "gifcast") {
		t.Errorf("default cache dir %q is not service-scoped", dir)
	}
}
