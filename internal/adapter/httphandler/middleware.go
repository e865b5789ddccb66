package httphandler

import (
	"mime"
	"net/http"
)

// AllowContent admits JSON bodies and the multipart/urlencoded forms
// used by the upload endpoints.
func AllowContent(next http.Handler) http.Handler {
	allowed := map[string]bool{
		"application/json":                  true,
		"multipart/form-data":               true,
		"application/x-www-form-urlencoded": true,
	}

	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || !allowed[mediaType] {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
