package auth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"github.com/3mfound/admin-gateway/src/config"
)

// NewOAuthConfig builds the Microsoft identity platform client used to
// construct authorize URLs. Token exchange does not go through this config;
// the platform backend performs it on our behalf (see Handler.Callback).
func NewOAuthConfig(cfg *config.OAuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURL,
		Scopes:      cfg.Scopes,
		Endpoint:    microsoft.AzureADEndpoint(cfg.TenantID),
	}
}
