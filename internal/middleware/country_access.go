package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"nations-server/internal/shared/database"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

// CountryAccessMiddleware restricts country-scoped routes to the player
// governing that country. Admins pass through.
type CountryAccessMiddleware struct {
	db *database.DB
}

func NewCountryAccessMiddleware(db *database.DB) *CountryAccessMiddleware {
	return &CountryAccessMiddleware{db: db}
}

func (m *CountryAccessMiddleware) Require(next http.Handler) http.Handler {
	return JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "country_access",
			"method", r.Method,
			"path", r.URL.Path,
		)

		claims := GetUserFromContext(r)
		if claims == nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		if claims.Role == "admin" {
			next.ServeHTTP(w, r)
			return
		}

		countryIDStr := r.PathValue("id")
		if countryIDStr == "" {
			response.Error(w, r, logger, errors.Validation("country ID is required"))
			return
		}

		countryID, err := strconv.Atoi(countryIDStr)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid country ID format", err))
			return
		}

		// The claim can go stale when an admin reassigns nations, so
		// ownership is checked against the database, not the token.
		var ownerID *int
		err = m.db.QueryRowContext(r.Context(),
			`SELECT player_id FROM countries WHERE id = $1`, countryID,
		).Scan(&ownerID)
		if err != nil {
			response.Error(w, r, logger, errors.NotFoundf("country not found with id: %d", countryID))
			return
		}

		if ownerID == nil || *ownerID != claims.PlayerID {
			logger.Warn("Player attempted to access a country they do not govern",
				"player_id", claims.PlayerID,
				"country_id", countryID)
			response.Error(w, r, logger, errors.Forbidden("country access required"))
			return
		}

		next.ServeHTTP(w, r)
	}))
}
