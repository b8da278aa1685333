package utils

import (
	"os"
	"time"

	"github.com/kataras/iris/v12/middleware/jwt"
)

// TokenTTL is the fixed validity window. Tokens are stateless: there is no
// session store and no refresh rotation.
const TokenTTL = 30 * 24 * time.Hour

// AccessToken carries only the user id; the auth middleware loads the
// current user row on every request.
type AccessToken struct {
	ID uint `json:"id"`
}

func CreateToken(id uint) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), TokenTTL)

	token, err := signer.Sign(AccessToken{ID: id})
	if err != nil {
		return "", err
	}

	return string(token), nil
}
