package core

import (
	"crypto/rand"
	"fmt"
)

// codeCharset is the fixed alphabet for access codes: uppercase letters
// and digits with 0/1/I/O removed to keep codes unambiguous when read
// aloud at a live auction.
const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// AccessCodeLength is the length of controller passwords and viewer codes.
const AccessCodeLength = 6

// NewAccessCode returns a random code of AccessCodeLength characters
// drawn from codeCharset using crypto/rand. It is a pure function of
// the entropy source: no state is kept between calls.
func NewAccessCode() (string, error) {
	return randomCode(AccessCodeLength)
}

// NewControllerID returns a controller identifier in the CTRL-XXXXXX
// format the controller portal expects.
func NewControllerID() (string, error) {
	code, err := randomCode(AccessCodeLength)
	if err != nil {
		return "", err
	}
	return "CTRL-" + code, nil
}

func randomCode(length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("entropy generation failed: %w", err)
	}

	// len(codeCharset) is 32, so masking the low 5 bits gives an
	// unbiased index into the charset.
	out := make([]byte, length)
	for i, b := range raw {
		out[i] = codeCharset[b&31]
	}
	return string(out), nil
}
