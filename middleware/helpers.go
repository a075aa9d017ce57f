package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/golf-admin/session"
)

const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
	jwtClaimEmail  = "email"
)

func sessionFromClaims(claims jwt.MapClaims, raw string) (*session.Session, error) {
	userID, err := userIDFromClaims(claims)
	if err != nil {
		return nil, err
	}
	role, err := roleFromClaims(claims)
	if err != nil {
		return nil, err
	}
	email, _ := claims[jwtClaimEmail].(string)
	return &session.Session{UserID: userID, Email: email, Role: role, Token: raw}, nil
}

func userIDFromClaims(claims jwt.MapClaims) (int, error) {
	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", errMissingClaim, jwtClaimUserID)
	}

	var userID int
	switch v := userIDClaim.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("'%s' claim is not an integer: %f", jwtClaimUserID, v)
		}
		userID = int(v)
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid '%s' claim %q", jwtClaimUserID, v)
		}
		userID = id
	default:
		return 0, fmt.Errorf("invalid type for '%s' claim: expected number or string, got %T", jwtClaimUserID, userIDClaim)
	}

	if userID <= 0 {
		return 0, fmt.Errorf("invalid user ID value in '%s' claim: %d", jwtClaimUserID, userID)
	}
	return userID, nil
}

func roleFromClaims(claims jwt.MapClaims) (session.Role, error) {
	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", errMissingClaim, jwtClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, roleClaim)
	}

	switch role := session.Role(roleStr); role {
	case session.RoleAdmin, session.RoleStaff:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}

func errorJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
