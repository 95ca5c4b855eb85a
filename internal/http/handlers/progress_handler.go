package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"seo_checker/internal/domain/models"
	"seo_checker/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

// ProgressFunc returns a snapshot of the running crawl.
type ProgressFunc func() models.CrawlProgress

type ProgressHandler struct {
	progress ProgressFunc
	log      *log.Logger
}

func NewProgressHandler(progress ProgressFunc, log *log.Logger) *ProgressHandler {
	return &ProgressHandler{
		progress: progress,
		log:      log,
	}
}

func (h *ProgressHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.Debug(`progress handler called`)

	if h.progress == nil {
		sendError(w, h.log, `no crawl is running`, errors.New(`progress source not set`), http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(h.progress()); err != nil {
		sendError(w, h.log, `failed to encode progress`, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set(`Content-Type`, `application/json`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
