package domain

// Credential is the normalized, immutable result of a connect call. It is
// replaced wholesale on every new connect; there is no partial update.
// The concrete type always matches the session's security mode.
type Credential interface {
	// Kind names the variant for logging and consistency checks.
	Kind() CredentialKind
	// Wipe zeroes any key material held by the variant. Called on
	// disconnect and on subsystem stop.
	Wipe()
}

// CredentialKind tags a credential variant.
type CredentialKind string

const (
	CredentialNone       CredentialKind = "none"
	CredentialWEP        CredentialKind = "wep"
	CredentialPSK        CredentialKind = "psk"
	CredentialEnterprise CredentialKind = "enterprise"
)

// NoCredential is the open-network variant.
type NoCredential struct{}

func (NoCredential) Kind() CredentialKind { return CredentialNone }
func (NoCredential) Wipe()                {}

// WEPCredential holds the four key slots and the active transmission key
// index.
type WEPCredential struct {
	Keys  [4]WEPKey
	TxKey uint32
}

func (*WEPCredential) Kind() CredentialKind { return CredentialWEP }

func (c *WEPCredential) Wipe() {
	for i := range c.Keys {
		for j := range c.Keys[i] {
			c.Keys[i][j] = 0
		}
		c.Keys[i] = nil
	}
}

// PSKCredential holds a derived or supplied 32-byte pre-shared key.
type PSKCredential struct {
	PSK [PSKLength]byte
}

func (*PSKCredential) Kind() CredentialKind { return CredentialPSK }

func (c *PSKCredential) Wipe() {
	c.PSK = [PSKLength]byte{}
}

// EnterpriseCredential holds 802.1X identity material. Certificate and
// private key remain opaque store references; the supplicant resolves them
// at handshake time.
type EnterpriseCredential struct {
	AuthMode          EnterpriseMode
	Username          string
	Passphrase        string
	Domain            string
	ClientCertificate CertRef
	ClientPrivateKey  CertRef
}

func (*EnterpriseCredential) Kind() CredentialKind { return CredentialEnterprise }

func (c *EnterpriseCredential) Wipe() {
	c.Passphrase = ""
}
