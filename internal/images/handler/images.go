package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/julienschmidt/httprouter"

	"dopo/pkg/logger"
	"dopo/pkg/sanitizer"
)

const MountPath = "/images"

var (
	errRootMissing = errors.New("static root is not accessible")
	errOutsideRoot = errors.New("asset path escapes static root")
)

// ImageHandler serves files below root. Anything that is not a regular file
// inside root is handed to the router's NotFound handler.
type ImageHandler struct {
	root   string
	router *httprouter.Router
	log    *logger.Logger

	rootMissingOnce sync.Once
}

func NewImageHandler(root string, log *logger.Logger) *ImageHandler {
	return &ImageHandler{
		root: root,
		log:  log,
	}
}

func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rel := sanitizer.SanitizeAssetPath(ps.ByName("filepath"))
	if rel == "" {
		h.fallThrough(w, r)
		return
	}

	path, err := h.resolve(rel)
	switch {
	case errors.Is(err, errRootMissing):
		h.rootMissingOnce.Do(func() {
			h.log.Warn("Static root is missing; every image request will 404",
				"root", h.root,
				"error", err,
			)
		})
		h.fallThrough(w, r)
		return
	case err != nil:
		h.log.Warn("Rejected asset path outside static root",
			"path", r.URL.Path,
			"root", h.root,
		)
		h.fallThrough(w, r)
		return
	}

	file, err := os.Open(path)
	if err != nil {
		h.fallThrough(w, r)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || !info.Mode().IsRegular() {
		h.fallThrough(w, r)
		return
	}

	contentType, err := detectContentType(path, file)
	if err != nil {
		h.log.Error("failed to detect content type", "handler", "Serve", "path", path, "error", err)
		h.fallThrough(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)

	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}

// resolve joins rel onto the root and checks that the real path, after
// following symlinks, still lies inside the real root.
func (h *ImageHandler) resolve(rel string) (string, error) {
	root, err := filepath.EvalSymlinks(h.root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errRootMissing, err)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errRootMissing, err)
	}

	candidate := filepath.Join(root, filepath.FromSlash(rel))
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		// missing files are not a containment problem
		resolved = candidate
	}

	if !withinRoot(root, resolved) {
		return "", errOutsideRoot
	}
	return resolved, nil
}

func withinRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func detectContentType(path string, file io.ReadSeeker) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct, nil
	}

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mt.String(), nil
}

func (h *ImageHandler) fallThrough(w http.ResponseWriter, r *http.Request) {
	if h.router != nil && h.router.NotFound != nil {
		h.router.NotFound.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

func (h *ImageHandler) RegisterRoutes(router *httprouter.Router) {
	h.router = router
	router.GET(MountPath+"/*filepath", h.Serve)
	router.HEAD(MountPath+"/*filepath", h.Serve)
}
