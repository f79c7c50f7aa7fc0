// Package credential normalizes user-supplied connect parameters into the
// internal credential variants and derives WPA pre-shared keys.
package credential

import (
	"crypto/sha1"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

// WPA2 passphrase-to-PSK derivation parameters (IEEE 802.11i Annex H).
const pskIterations = 4096

// PSKFromPassphrase derives the 32-byte WPA pre-shared key from an ASCII
// passphrase and the SSID acting as salt. Deterministic; identical inputs
// always yield identical keys.
func PSKFromPassphrase(passphrase string, ssid domain.SSID) ([domain.PSKLength]byte, error) {
	var psk [domain.PSKLength]byte
	if err := ssid.Validate(); err != nil {
		return psk, err
	}
	if len(passphrase) < domain.MinPassphraseLength {
		return psk, fmt.Errorf("%w: passphrase shorter than %d bytes", domain.ErrInvalidParam, domain.MinPassphraseLength)
	}
	if len(passphrase) > domain.MaxPassphraseLength {
		return psk, fmt.Errorf("%w: passphrase longer than %d bytes", domain.ErrInvalidParam, domain.MaxPassphraseLength)
	}
	key := pbkdf2.Key([]byte(passphrase), []byte(ssid), pskIterations, domain.PSKLength, sha1.New)
	copy(psk[:], key)
	return psk, nil
}

// NoCredential returns the credential used for unencrypted networks.
func NoCredential() domain.Credential {
	return domain.NoCredential{}
}

// WEP validates the WEP parameters and builds the credential. Keys must be
// 5 bytes (WEP64) or 13 bytes (WEP128); empty slots are allowed, but the
// active transmission slot must be populated.
func WEP(params domain.WEPConnectParameters) (domain.Credential, error) {
	if params.TxKey > 3 {
		return nil, fmt.Errorf("%w: wep tx key index %d out of range [0,3]", domain.ErrInvalidParam, params.TxKey)
	}
	cred := &domain.WEPCredential{TxKey: params.TxKey}
	for i, key := range params.Keys {
		switch len(key) {
		case 0:
			continue
		case 5, 13:
			cred.Keys[i] = append(domain.WEPKey(nil), key...)
		default:
			return nil, fmt.Errorf("%w: wep key %d has length %d, want 5 or 13", domain.ErrInvalidParam, i, len(key))
		}
	}
	if len(cred.Keys[params.TxKey]) == 0 {
		return nil, fmt.Errorf("%w: wep tx key slot %d is empty", domain.ErrInvalidParam, params.TxKey)
	}
	return cred, nil
}

// WPAPSK builds the pre-shared-key credential from an already derived key.
func WPAPSK(params domain.WPAPSKConnectParameters) (domain.Credential, error) {
	if params.PSK == ([domain.PSKLength]byte{}) {
		return nil, fmt.Errorf("%w: all-zero psk", domain.ErrInvalidParam)
	}
	return &domain.PSKCredential{PSK: params.PSK}, nil
}

// Enterprise validates the 802.1X parameters and builds the credential.
// Certificate and private-key references are retained opaquely; resolving
// them is the certificate store's job.
func Enterprise(params domain.EnterpriseConnectParameters) (domain.Credential, error) {
	if params.Username == "" {
		return nil, fmt.Errorf("%w: empty username", domain.ErrInvalidParam)
	}
	if len(params.Username) > domain.MaxUsernameLength {
		return nil, fmt.Errorf("%w: username longer than %d bytes", domain.ErrInvalidParam, domain.MaxUsernameLength)
	}
	if len(params.Passphrase) > domain.MaxPassphraseLength {
		return nil, fmt.Errorf("%w: passphrase longer than %d bytes", domain.ErrInvalidParam, domain.MaxPassphraseLength)
	}
	if len(params.Domain) > domain.MaxDomainLength {
		return nil, fmt.Errorf("%w: domain longer than %d bytes", domain.ErrInvalidParam, domain.MaxDomainLength)
	}
	if params.AuthMode == domain.EnterpriseEAPTLS && (params.ClientCertificate == "" || params.ClientPrivateKey == "") {
		return nil, fmt.Errorf("%w: eap-tls requires certificate and private key references", domain.ErrInvalidParam)
	}
	return &domain.EnterpriseCredential{
		AuthMode:          params.AuthMode,
		Username:          params.Username,
		Passphrase:        params.Passphrase,
		Domain:            params.Domain,
		ClientCertificate: params.ClientCertificate,
		ClientPrivateKey:  params.ClientPrivateKey,
	}, nil
}

// APWPAPSK validates the WPA access-point parameters and builds the
// credential plus cipher configuration.
func APWPAPSK(params domain.WPAPSKAPParameters) (domain.Credential, error) {
	if params.PSK == ([domain.PSKLength]byte{}) {
		return nil, fmt.Errorf("%w: all-zero psk", domain.ErrInvalidParam)
	}
	if params.RSNCiphers == domain.CipherNone && params.WPACiphers == domain.CipherNone {
		return nil, fmt.Errorf("%w: wpa ap needs at least one cipher suite", domain.ErrInvalidParam)
	}
	return &domain.PSKCredential{PSK: params.PSK}, nil
}
