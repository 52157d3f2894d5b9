package httpx

import (
	"os"
	"path/filepath"

	"golang.org/x/crypto/acme/autocert"
)

type TLS struct {
	CertManager *autocert.Manager
}

// NewTLSConfig manages certificates for the host, caching them in dir.
// An empty dir falls back to a service directory under the user cache.
func NewTLSConfig(host, dir string) *TLS {
	if dir == "" {
		dir = defaultCertCacheDir()
	}
	tls := TLS{
		CertManager: &autocert.Manager{
			Prompt: autocert.AcceptTOS,
			Cache:  autocert.DirCache(dir),
		},
	}
	if host != "" {
		tls.CertManager.HostPolicy = autocert.HostWhitelist(host)
	}
	return &tls
}

func defaultCertCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "gifcast", "autocert")
}
