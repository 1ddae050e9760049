package authenticator

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// tokenIssuer is stamped on every token and required back on verification.
const tokenIssuer = "yatube"

var errWrongIssuer = errors.New("token was not issued by this server")

type claims struct {
	jwt.RegisteredClaims
	Payload json.RawMessage `json:"payload,omitempty"`
}

type jwtTokenEngine struct {
	key    []byte
	parser *jwt.Parser
}

// NewTokenEngine returns an engine signing HS256 tokens with secret. The
// payload of a token is the json encoding of the object passed to Generate.
func NewTokenEngine(secret string) TokenEngine {
	return &jwtTokenEngine{
		key:    []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (e *jwtTokenEngine) Generate(expiration time.Duration, obj any) (string, error) {
	payload, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
		Payload: payload,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(e.key)
}

func (e *jwtTokenEngine) Verify(token string, obj any) error {
	var c claims
	if _, err := e.parser.ParseWithClaims(token, &c, e.keyFunc); err != nil {
		return err
	}

	if !c.VerifyIssuer(tokenIssuer, true) {
		return errWrongIssuer
	}

	return json.Unmarshal(c.Payload, obj)
}

func (e *jwtTokenEngine) keyFunc(*jwt.Token) (any, error) {
	return e.key, nil
}
