package validation

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/pitchside-io/teamauction/auctionapi"
	"github.com/pitchside-io/teamauction/receipt"
)

func signedSale(t *testing.T) (*receipt.KeyManager, auctionapi.ReceiptCOSEBase64) {
	t.Helper()
	km, err := receipt.NewKeyManager()
	assert.Nil(t, err)

	signed, err := km.SignSale(receipt.Sale{
		TournamentID: "tour-1",
		PlayerID:     "player-1",
		TeamID:       "team-1",
		Price:        100,
	})
	assert.Nil(t, err)
	return km, signed
}

func TestVerifySaleReceipt_RoundTrip(t *testing.T) {
	km, signed := signedSale(t)

	pemKey, err := km.PublicKeyPEM()
	assert.Nil(t, err)

	claims, err := VerifySaleReceiptPEM(signed, pemKey)
	assert.Nil(t, err)

	check.Equal(t, "tour-1", claims.TournamentID)
	check.Equal(t, "player-1", claims.PlayerID)
	check.Equal(t, "team-1", claims.TeamID)
	check.Equal(t, int64(100), claims.Price)
	check.NotEqual(t, "", claims.Nonce)
	check.NotEqual(t, "", claims.SaleHash)
	check.False(t, claims.Timestamp.IsZero())
}

func TestVerifySaleReceipt_WrongKeyRejected(t *testing.T) {
	_, signed := signedSale(t)

	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	assert.Nil(t, err)

	_, err = VerifySaleReceipt(signed, &otherKey.PublicKey)
	check.Error(t, err)
}

func TestVerifySaleReceipt_GarbageRejected(t *testing.T) {
	km, _ := signedSale(t)

	_, err := VerifySaleReceipt(auctionapi.EncodeReceipt([]byte("not cose")), km.PublicKey)
	check.Error(t, err)

	_, err = VerifySaleReceipt(auctionapi.ReceiptCOSEBase64("!!! not base64 !!!"), km.PublicKey)
	check.Error(t, err)
}

func TestParsePublicKeyPEM_Invalid(t *testing.T) {
	_, err := ParsePublicKeyPEM("not a pem block")
	check.Error(t, err)
}
