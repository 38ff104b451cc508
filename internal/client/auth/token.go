package auth

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/watchb/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDFromToken extracts the user_id claim from an access token without
// verifying the signature. The client never validates tokens (that is the
// server's job); it only needs to know which user to fetch.
func UserIDFromToken(tokenString string) (int64, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: user_id claim %q", common.ErrInvalidToken, v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: missing user_id claim", common.ErrInvalidToken)
	}
}
