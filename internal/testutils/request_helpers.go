// Package testutils holds helpers shared by handler tests.
package testutils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/ltsmerch/storefront/internal/api/middleware"
	"github.com/ltsmerch/storefront/internal/models"
)

// AuthenticatedRequest builds a test request whose context carries the given
// claims, as the auth middleware would have left it.
func AuthenticatedRequest(method, target string, body io.Reader, claims *models.Claims) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

	return req.WithContext(ctx)
}

// UserClaims returns claims for a regular signed-in user.
func UserClaims(userID int64) *models.Claims {
	return &models.Claims{UserID: userID, Email: "fan@example.com"}
}

// AdminClaims returns claims with the admin flag set.
func AdminClaims(userID int64) *models.Claims {
	return &models.Claims{UserID: userID, Email: "staff@example.com", IsAdmin: true}
}
