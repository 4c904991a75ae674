package controllers

import (
	"net/http"

	"github.com/bautizosmaitte/storefront-api/api/responses"
	"github.com/bautizosmaitte/storefront-api/pkg/config"
)

// SiteConfig exposes the public values the browser needs at boot: captcha
// site key, contact form endpoint, and the CMS base URL for media assets.
// Secrets never leave the server.
func SiteConfig(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"recaptchaSiteKey":  cfg.Site.RecaptchaSiteKey,
			"formspreeEndpoint": cfg.Site.FormspreeEndpoint,
			"cmsBaseUrl":        cfg.CMS.BaseURL,
			"publicBaseUrl":     cfg.Site.PublicBaseURL,
		})
	}
}
