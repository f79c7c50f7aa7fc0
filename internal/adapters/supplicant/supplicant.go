// Package supplicant is an in-memory stand-in for the 802.1X handshake
// engine. It holds at most one installed credential and resolves
// enterprise certificate references through the certificate store at
// install time, the way the real engine would at handshake time.
package supplicant

import (
	"fmt"
	"io"
	"sync"

	"github.com/lcalzada-xor/wland/internal/core/domain"
	"github.com/lcalzada-xor/wland/internal/core/ports"
)

// Supplicant implements ports.Supplicant.
type Supplicant struct {
	mu    sync.Mutex
	certs ports.CertStore
	kind  domain.CredentialKind
	held  bool
}

var _ ports.Supplicant = (*Supplicant)(nil)

// New creates a supplicant. certs may be nil when enterprise credentials
// are never used.
func New(certs ports.CertStore) *Supplicant {
	return &Supplicant{certs: certs}
}

// InstallCredential accepts the session credential. Enterprise cert and
// key references must resolve through the store; the material itself is
// not retained here.
func (s *Supplicant) InstallCredential(cred domain.Credential) error {
	if ent, ok := cred.(*domain.EnterpriseCredential); ok {
		if s.certs == nil {
			return fmt.Errorf("no certificate store configured")
		}
		for _, ref := range []domain.CertRef{ent.ClientCertificate, ent.ClientPrivateKey} {
			if ref == "" {
				continue
			}
			rc, err := s.certs.Open(ref)
			if err != nil {
				return fmt.Errorf("resolving certificate reference %q: %w", ref, err)
			}
			// Drain to verify the stream is readable end to end.
			if _, err := io.Copy(io.Discard, rc); err != nil {
				rc.Close()
				return fmt.Errorf("reading certificate reference %q: %w", ref, err)
			}
			rc.Close()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = cred.Kind()
	s.held = true
	return nil
}

// ClearCredential forgets the installed credential.
func (s *Supplicant) ClearCredential() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = ""
	s.held = false
}

// Holding reports whether a credential is installed, and its kind.
func (s *Supplicant) Holding() (domain.CredentialKind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind, s.held
}
