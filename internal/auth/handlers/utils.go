package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"nations-server/internal/shared/config"
)

// resolveRedirectURI accepts a client-supplied redirect only when it
// points at the configured frontend, otherwise the frontend root.
func resolveRedirectURI(requested string) string {
	frontend := config.GlobalConfig.Frontend.URL
	if requested == "" || !strings.HasPrefix(requested, frontend) {
		return frontend
	}
	return requested
}

// redirectWithError sends the browser back to the frontend error page.
func redirectWithError(w http.ResponseWriter, r *http.Request, redirectURI, errorType string) {
	if redirectURI == "" {
		redirectURI = config.GlobalConfig.Frontend.URL
	}
	errorURL := fmt.Sprintf("%s/auth/error?error=%s", redirectURI, errorType)

	http.Redirect(w, r, errorURL, http.StatusTemporaryRedirect)
}
