package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/orgball2608/insta-archiver/internal/archiver"
	"github.com/orgball2608/insta-archiver/internal/remote"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/orgball2608/insta-archiver/pkg/errors"
	"github.com/orgball2608/insta-archiver/pkg/logger"
)

// NewServer returns the health and status server of schedule mode.
func NewServer(cfg *config.Config, log logger.Logger, arch archiver.Client, src remote.Source) *http.Server {
	log = log.WithComponent("Server")

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	}).Methods(http.MethodGet)
	r.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		statusHandler(w, r, log, arch)
	}).Methods(http.MethodGet)
	r.HandleFunc("/remote", func(w http.ResponseWriter, r *http.Request) {
		remoteHandler(w, log, src)
	}).Methods(http.MethodGet)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, log logger.Logger) {
	log.Debug("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		log.Error("Failed to write response", "Error", err)
	}
}

func statusHandler(w http.ResponseWriter, r *http.Request, log logger.Logger, arch archiver.Client) {
	summary, err := arch.LastRun(r.Context())
	switch {
	case errors.IsNotFound(err):
		http.Error(w, "no archive run recorded yet", http.StatusNotFound)
		return
	case err != nil:
		log.Error("Failed to load last run", "Error", err)
		http.Error(w, "failed to load last run", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		log.Error("Failed to write response", "Error", err)
	}
}

// remotePost is the /remote view of a post from the last remote listing.
type remotePost struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	MediaCount int       `json:"media_count"`
}

// remoteHandler reports the last remote listing without fetching.
func remoteHandler(w http.ResponseWriter, log logger.Logger, src remote.Source) {
	posts, ok := src.CachedRemotePosts()
	if !ok {
		http.Error(w, "no remote listing yet", http.StatusNotFound)
		return
	}

	out := make([]remotePost, 0, len(posts))
	for _, p := range posts {
		out = append(out, remotePost{
			ID:         p.ID,
			Code:       p.Code,
			Title:      p.Title,
			Date:       p.Date,
			MediaCount: len(p.Media),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Error("Failed to write response", "Error", err)
	}
}
