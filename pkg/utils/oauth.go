package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/seat-arranger/internal/config"
)

const (
	AuthPort     = 3000
	authTimeout  = 5 * time.Minute
	callbackPath = "/oauth/callback"
	tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
)

// ScopeSheets grants read and write access to spreadsheets, used to pull rosters and publish
// arrangements
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

var (
	tokenCache   *oauth2.Token
	tokenCacheMu sync.Mutex
)

// requiredScopes returns all scopes required by the application
func requiredScopes() []string {
	return []string{ScopeSheets}
}

// GetOAuthConfig creates an OAuth2 config from the OAuth client configuration, redirecting to
// the local callback server
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, requiredScopes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)
	return googleConfig, nil
}

// GetTokenWithFlow returns a token for the environment, trying in order the in-memory cache,
// the token file (refreshing it when expired) and finally the browser authorization flow.
// Only one flow runs at a time.
func GetTokenWithFlow(ctx context.Context, oauthConfig *oauth2.Config, env string) (*oauth2.Token, error) {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()

	if tokenCache != nil && tokenCache.Valid() {
		return tokenCache, nil
	}

	if token := reuseStoredToken(ctx, oauthConfig, env); token != nil {
		tokenCache = token
		return token, nil
	}

	fmt.Println("No valid token found - starting OAuth flow")
	authURL := oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("\nVisit this URL to authorize the application:\n%s\n\n", authURL)

	code, err := listenForAuthCallback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := validateTokenScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if err := SaveTokenToFile(env, token); err != nil {
		// The token still works for this process
		fmt.Printf("Warning: failed to save token to file: %v\n", err)
	}

	tokenCache = token
	return token, nil
}

// reuseStoredToken returns the stored token if it is valid, or can be refreshed, and carries
// every required scope. A token missing scopes is deleted so the next flow replaces it.
func reuseStoredToken(ctx context.Context, oauthConfig *oauth2.Config, env string) *oauth2.Token {
	stored, err := LoadTokenFromFile(env)
	if err != nil {
		fmt.Printf("Warning: failed to load token from file: %v\n", err)
		return nil
	}
	if stored == nil {
		return nil
	}

	token := stored
	refreshed := false
	if !stored.Valid() {
		if stored.RefreshToken == "" {
			return nil
		}
		token, err = oauthConfig.TokenSource(ctx, stored).Token()
		if err != nil || token.AccessToken == stored.AccessToken {
			return nil
		}
		refreshed = true
	}

	if err := validateTokenScopes(ctx, token); err != nil {
		fmt.Printf("Stored token is missing required scopes: %v\n", err)
		fmt.Println("Deleting invalid token and starting new OAuth flow...")
		_ = DeleteTokenFile(env)
		return nil
	}

	if refreshed {
		fmt.Println("Token refreshed successfully")
		if err := SaveTokenToFile(env, token); err != nil {
			fmt.Printf("Warning: failed to save refreshed token: %v\n", err)
		}
	}
	return token
}

// validateTokenScopes asks Google's tokeninfo endpoint which scopes the token carries and
// returns an error listing any that are missing
func validateTokenScopes(ctx context.Context, token *oauth2.Token) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tokeninfo request failed with status %d", resp.StatusCode)
	}

	var tokenInfo struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if missing := missingScopes(tokenInfo.Scope); len(missing) > 0 {
		return fmt.Errorf("token is missing required scopes: %v", missing)
	}
	return nil
}

// missingScopes returns the required scopes absent from a space-separated scope list
func missingScopes(granted string) []string {
	grantedScopes := strings.Fields(granted)
	var missing []string
	for _, required := range requiredScopes() {
		if !slices.Contains(grantedScopes, required) {
			missing = append(missing, required)
		}
	}
	return missing
}

// listenForAuthCallback serves the OAuth redirect on a local port until a code arrives, the
// request fails or authTimeout passes
func listenForAuthCallback(ctx context.Context) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Authorization Successful</title></head>
<body><h1>Authorization successful!</h1><p>You can close this window and return to the seat arranger.</p></body></html>`)
		codeChan <- code
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", AuthPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error
	select {
	case code = <-codeChan:
	case authErr = <-errChan:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)

	if authErr != nil {
		return "", authErr
	}
	return code, nil
}

// ClearToken clears the token from memory cache
func ClearToken() {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()
	tokenCache = nil
}
