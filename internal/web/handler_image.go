package web

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/google/uuid"

	"github.com/vbonduro/truckfest/internal/service"
)

const maxImageSize = 10 * 1024 * 1024 // 10 MB

// allowedImageTypes is the set of MIME types accepted for truck images and
// event posters. net/http.DetectContentType handles JPEG, PNG, and GIF via
// magic-byte sniffing. WebP is detected separately because the WHATWG sniff
// algorithm (and therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	detected := http.DetectContentType(data)
	if allowedImageTypes[detected] {
		return detected, true
	}
	return "", false
}

var errImageTooLarge = errors.New("image too large")

// readImage takes the image from a multipart "image" field, or from the raw
// request body for any other content type.
func readImage(w http.ResponseWriter, r *http.Request, logger *slog.Logger) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1024*1024)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			return nil, err
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			return nil, err
		}
		defer closeWithLog(file, "upload file", logger)
		if header.Size > maxImageSize {
			return nil, errImageTooLarge
		}
		return io.ReadAll(file)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageSize {
		return nil, errImageTooLarge
	}
	return data, nil
}

func handleSetImage(s *Server, set func(uuid.UUID, []byte) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid id")
			return
		}

		data, err := readImage(w, r, s.logger)
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.Is(err, errImageTooLarge) || errors.As(err, &tooBig) {
				s.writeError(w, http.StatusRequestEntityTooLarge, "image too large")
				return
			}
			s.writeError(w, http.StatusBadRequest, "image required")
			return
		}

		if _, ok := allowedImageMIME(data); !ok {
			s.writeError(w, http.StatusUnsupportedMediaType, "unsupported image format")
			return
		}

		if err := set(id, data); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleClearImage(s *Server, set func(uuid.UUID, []byte) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := set(id, nil); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleGetTruckImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	truck, err := s.planner.Truck(id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeImage(w, r, truck.TruckImage)
}

func (s *Server) handleGetEventPoster(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	event, err := s.planner.Event(id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeImage(w, r, event.PosterImage)
}

func (s *Server) writeImage(w http.ResponseWriter, r *http.Request, data []byte) {
	if data == nil {
		s.writeServiceError(w, r, service.ErrNotFound)
		return
	}
	mimeType, ok := allowedImageMIME(data)
	if !ok {
		mimeType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mimeType)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write image failed", "path", r.URL.Path, "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
