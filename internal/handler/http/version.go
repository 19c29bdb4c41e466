package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/amour-lingua/internal/utils"
)

// getServerVersion writes the plain version string, or the full build info
// as JSON when the client asks for application/json.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		utils.WriteJSON(w, h.services.AppInfoService.GetBuildInfo(r.Context()), http.StatusOK)
		return
	}

	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}
