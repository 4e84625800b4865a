package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/samber/do"

	"github.com/captionbot/captionbot/internal/caption"
	"github.com/captionbot/captionbot/internal/imaging"
	"github.com/captionbot/captionbot/internal/log"
	"github.com/captionbot/captionbot/internal/parse"
	"github.com/captionbot/captionbot/internal/prompt"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	generator caption.Generator
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		generator: do.MustInvoke[caption.Generator](i),
	}, nil
}

func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate-caption", h.GenerateCaption)
	mux.HandleFunc("/healthz", h.Healthz)
	return mux
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GenerateCaption accepts a multipart image upload with optional free-text
// guidance, asks the model for a caption and hashtags, and returns the
// normalized result. POST /generate-caption.
func (h *Handler) GenerateCaption(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContextOrDiscard(ctx).WithGroup("GenerateCaption")

	w := &trackingWriter{ResponseWriter: rw}
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("panic while processing request", "panic", rec, "stack", string(debug.Stack()))
			if !w.wrote {
				respondError(w, http.StatusInternalServerError, fmt.Sprintf("%v", rec))
			}
		}
	}()

	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No image provided")
		return
	}
	defer file.Close()

	guidance := strings.TrimSpace(r.FormValue("prompt"))

	imageB64, err := imaging.ToBase64PNG(file)
	if err != nil {
		logger.Warn("rejecting undecodable image", "error", err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A client hanging up mid-download must not cut the upstream call short.
	raw, err := h.generator.Generate(context.WithoutCancel(ctx), caption.Params{
		ImageB64: imageB64,
		MimeType: imaging.MimeType,
		Prompt:   prompt.Build(guidance),
	})
	if err != nil {
		logger.Error("model call failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Debug("raw model response", "text", raw)

	result, cleaned, err := parse.Reply(raw)
	switch {
	case errors.Is(err, parse.ErrShape):
		logger.Error("model response has invalid shape", "text", cleaned)
		respondError(w, http.StatusInternalServerError, parse.ErrShape.Error())
	case err != nil:
		logger.Error("model response is not JSON", "error", err, "text", cleaned)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":        err.Error(),
			"raw_response": cleaned,
		})
	default:
		respondJSON(w, http.StatusOK, result)
	}
}

// trackingWriter remembers whether a response has started, so the panic
// safety net does not write a second status line onto a sent response.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(status int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *trackingWriter) Write(p []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(p)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
