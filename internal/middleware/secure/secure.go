package secure

import (
	"net/http"

	"github.com/unrolled/secure"
)

// Headers sets the security headers served with every response. In
// production plain HTTP requests are redirected to HTTPS.
func Headers(production bool) func(http.Handler) http.Handler {
	mw := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !production,
	})
	return mw.Handler
}
