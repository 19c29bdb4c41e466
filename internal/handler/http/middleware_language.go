package http

import (
	"net/http"

	"github.com/MKhiriev/amour-lingua/internal/localization"
)

// withLanguage stores the languages requested through the "lang" query
// parameter and the Accept-Language header in the request context.
func withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := localization.ToContext(r.Context(), localization.LanguagesFromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
