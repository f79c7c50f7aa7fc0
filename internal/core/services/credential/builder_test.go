package credential

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

// Known answer vectors from IEEE Std 802.11i, Annex H.4.
func TestPSKFromPassphrase_KnownAnswers(t *testing.T) {
	tests := []struct {
		passphrase string
		ssid       domain.SSID
		want       string
	}{
		{
			passphrase: "password",
			ssid:       "IEEE",
			want:       "f42c6fc52df0ebef9ebb4b90b38a5f902e83fe1b135a70e23aed762e9710a12e",
		},
		{
			passphrase: "ThisIsAPassword",
			ssid:       "ThisIsASSID",
			want:       "0dc0d6eb90555ed6419756b9a15ec3e3209b63df707dd508d14581f8982721af",
		},
	}

	for _, tt := range tests {
		psk, err := PSKFromPassphrase(tt.passphrase, tt.ssid)
		require.NoError(t, err)
		assert.Equal(t, tt.want, hex.EncodeToString(psk[:]))
	}
}

func TestPSKFromPassphrase_Deterministic(t *testing.T) {
	a, err := PSKFromPassphrase("ExamplePassphrase", "TestSSID")
	require.NoError(t, err)
	b, err := PSKFromPassphrase("ExamplePassphrase", "TestSSID")
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical inputs must yield byte-identical keys")

	c, err := PSKFromPassphrase("ExamplePassphrase", "OtherSSID")
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "the SSID acts as salt")
}

func TestPSKFromPassphrase_Validation(t *testing.T) {
	_, err := PSKFromPassphrase("short", "TestSSID")
	assert.ErrorIs(t, err, domain.ErrInvalidParam)

	_, err = PSKFromPassphrase("ExamplePassphrase", "")
	assert.ErrorIs(t, err, domain.ErrInvalidParam)

	long := make([]byte, domain.MaxPassphraseLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = PSKFromPassphrase(string(long), "TestSSID")
	assert.ErrorIs(t, err, domain.ErrInvalidParam)
}

func TestWEP_Validation(t *testing.T) {
	valid := domain.WEPConnectParameters{TxKey: 1}
	valid.Keys[1] = []byte("abcde") // WEP64

	cred, err := WEP(valid)
	require.NoError(t, err)
	assert.Equal(t, domain.CredentialWEP, cred.Kind())

	// Index out of range.
	bad := valid
	bad.TxKey = 4
	_, err = WEP(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)

	// Active slot empty.
	empty := domain.WEPConnectParameters{TxKey: 0}
	empty.Keys[2] = []byte("abcde")
	_, err = WEP(empty)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)

	// Wrong key length.
	odd := domain.WEPConnectParameters{TxKey: 0}
	odd.Keys[0] = []byte("abc")
	_, err = WEP(odd)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)
}

func TestWEP_WipeClearsKeys(t *testing.T) {
	params := domain.WEPConnectParameters{TxKey: 0}
	params.Keys[0] = []byte("abcdefghijklm") // WEP128

	cred, err := WEP(params)
	require.NoError(t, err)

	wep := cred.(*domain.WEPCredential)
	cred.Wipe()
	for i := range wep.Keys {
		assert.Nil(t, wep.Keys[i])
	}
}

func TestWPAPSK_RejectsZeroKey(t *testing.T) {
	_, err := WPAPSK(domain.WPAPSKConnectParameters{})
	assert.ErrorIs(t, err, domain.ErrInvalidParam)
}

func TestEnterprise_Validation(t *testing.T) {
	base := domain.EnterpriseConnectParameters{
		AuthMode:   domain.EnterprisePEAP,
		Username:   "user@example.org",
		Passphrase: "hunter22",
		Domain:     "example.org",
	}

	cred, err := Enterprise(base)
	require.NoError(t, err)
	assert.Equal(t, domain.CredentialEnterprise, cred.Kind())

	long := string(make([]byte, domain.MaxUsernameLength+1))

	bad := base
	bad.Username = long
	_, err = Enterprise(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)

	bad = base
	bad.Username = ""
	_, err = Enterprise(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)

	bad = base
	bad.Domain = long
	_, err = Enterprise(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)

	// EAP-TLS needs both references.
	tls := base
	tls.AuthMode = domain.EnterpriseEAPTLS
	_, err = Enterprise(tls)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)

	tls.ClientCertificate = "client.pem"
	tls.ClientPrivateKey = "client.key"
	cred, err = Enterprise(tls)
	require.NoError(t, err)

	ent := cred.(*domain.EnterpriseCredential)
	cred.Wipe()
	assert.Empty(t, ent.Passphrase, "wipe must clear the passphrase")
	assert.Equal(t, domain.CertRef("client.pem"), ent.ClientCertificate, "references are not secrets")
}

func TestAPWPAPSK_Validation(t *testing.T) {
	var psk [domain.PSKLength]byte
	psk[0] = 1

	_, err := APWPAPSK(domain.WPAPSKAPParameters{PSK: psk})
	assert.ErrorIs(t, err, domain.ErrInvalidParam, "at least one cipher suite required")

	cred, err := APWPAPSK(domain.WPAPSKAPParameters{
		PSK:        psk,
		RSNCiphers: domain.CipherAESCCMP,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CredentialPSK, cred.Kind())
}
