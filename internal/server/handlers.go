package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/render"

	flickd "github.com/nayakiniki/Flickd"
	"github.com/nayakiniki/Flickd/internal/utils"
	"github.com/nayakiniki/Flickd/pkg/types"
)

// multipartOverhead covers boundaries and part headers on top of the file itself
const multipartOverhead = 4 << 10

// advertisedFormats is the capability list reported by /api/stats
var advertisedFormats = []string{"JPEG", "PNG", "GIF", "BMP", "TIFF"}

const fallbackPage = `<html>
    <head><title>Flickd Smart Tagging Engine</title></head>
    <body>
        <h1>Flickd Smart Tagging Engine</h1>
        <p>Web interface not found. Please ensure static/index.html exists.</p>
        <p>API status is available at <a href="/api/stats">/api/stats</a></p>
    </body>
</html>
`

// handleAnalyze accepts a multipart upload in the "file" field and returns its tags.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.logger.Warn("rejected upload", "error", err)
		if isTooLarge(err) {
			s.renderError(w, r, ErrTooLarge(err))
			return
		}
		s.errorResponse(w, r, types.ErrNoFile)
		return
	}
	defer file.Close()

	s.logger.Info("received image upload", "filename", header.Filename, "size", header.Size)

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		s.errorResponse(w, r, types.ErrNotAnImage)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("error reading upload", "filename", header.Filename, "error", err)
		s.errorResponse(w, r, types.Processing(err))
		return
	}

	result, err := s.engine.Analyze(r.Context(), data)
	if err != nil {
		s.logger.Error("error processing upload", "filename", header.Filename, "error", err)
		s.errorResponse(w, r, err)
		return
	}

	s.logger.Info("successfully analyzed image", "filename", header.Filename, "tags", len(result.Tags))

	render.JSON(w, r, types.AnalysisResponse{
		AnalysisResult: *result,
		Filename:       header.Filename,
		Timestamp:      s.timestamp(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, types.HealthResponse{
		Status:    "healthy",
		Timestamp: s.timestamp(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	status := "not_loaded"
	if s.engine.ModelLoaded() {
		status = "loaded"
	}

	render.JSON(w, r, types.StatsResponse{
		ModelStatus:      status,
		SupportedFormats: advertisedFormats,
		MaxFileSize:      utils.FormatFileSize(s.cfg.Server.MaxUploadBytes),
		Version:          flickd.Version,
	})
}

// handleIndex serves static/index.html, or a minimal page when it is missing.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(s.cfg.Server.StaticDir, "index.html")
	if utils.FileExists(index) {
		http.ServeFile(w, r, index)
		return
	}
	render.HTML(w, r, fallbackPage)
}

func (s *Server) timestamp() string {
	return s.now().Format(time.RFC3339Nano)
}
