// Package artifact builds signed build manifests asserting that a given
// action table was produced by a trusted build, so a runtime process can
// refuse to load a table blob it cannot verify the provenance of. Grounded
// on the teacher's server/tunas/auth.go JWT issuance (golang-jwt/jwt/v5),
// repurposed from user-session auth to build provenance: the "subject"
// being asserted is a grammar content hash and state count rather than a
// user id.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tablewright/tablewright/lrtable"
)

// DefaultSigningKey is used when no key file is configured, matching the
// teacher's Config.FillDefaults dev-default token secret - clearly
// marked as unsuitable for production use.
var DefaultSigningKey = []byte("DEFAULT_TABLEWRIGHT_SIGNING_KEY-DO_NOT_USE_IN_PROD!")

// Claims is the JWT payload asserting a build's provenance.
type Claims struct {
	jwt.RegisteredClaims

	GrammarHash string `json:"grammar_hash"`
	StateCount  int    `json:"state_count"`
}

// HashGrammarSource returns the content hash used to key a build - the hex
// SHA-256 digest of the grammar definition's source bytes (e.g. the
// serialized rule list, or the raw grammar file if one is on disk).
func HashGrammarSource(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Sign produces a JWT asserting that table was built from the grammar
// identified by grammarHash, at builtAt, using key.
func Sign(key []byte, grammarHash string, table *lrtable.Table, builtAt time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(builtAt),
			NotBefore: jwt.NewNumericDate(builtAt),
			Issuer:    "tablewright",
			Subject:   grammarHash,
		},
		GrammarHash: grammarHash,
		StateCount:  table.NumStates(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("artifact: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates tokenString against key, returning the
// asserted claims. It returns an error if the signature is invalid or the
// token is malformed or expired.
func Verify(key []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Method.Alg())
		}
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("artifact: verify: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("artifact: token is not valid")
	}
	return claims, nil
}

// VerifyAgainstTable reports whether tokenString asserts provenance
// consistent with table: the claimed state count must match table's actual
// state count, a cheap structural check that the caller has the table the
// artifact was actually signed for.
func VerifyAgainstTable(key []byte, tokenString string, table *lrtable.Table) (*Claims, error) {
	claims, err := Verify(key, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.StateCount != table.NumStates() {
		return nil, fmt.Errorf("artifact: state count mismatch: artifact asserts %d, table has %d", claims.StateCount, table.NumStates())
	}
	return claims, nil
}
