package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/paratodos/storefront/internal/core/port"
)

type UploadsHandler struct {
	files port.FileStore
}

func RegisterUploads(mux *http.ServeMux, files port.FileStore) {
	h := UploadsHandler{files}
	mux.HandleFunc("GET /uploads/{slug}/{filename}", h.GetFile)
}

func (h UploadsHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	const op = "UploadsHandler.GetFile"
	log := slog.With("op", op)

	path, err := h.files.FilePath(r.PathValue("slug"), r.PathValue("filename"))
	if err != nil {
		http.NotFound(w, r)
		log.Warn("failed to resolve upload", "err", err)
		return
	}

	http.ServeFile(w, r, path)
}
