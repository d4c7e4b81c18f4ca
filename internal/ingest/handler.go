package ingest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler exposes the ingest sidecar's HTTP surface.
type Handler struct {
	drive   *DriveService
	service *Service
}

func NewHandler(drive *DriveService, service *Service) *Handler {
	return &Handler{drive: drive, service: service}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/ingest/files", h.ListFiles).Methods("GET")
	router.HandleFunc("/api/ingest/run", h.Run).Methods("POST")
	router.HandleFunc("/api/ingest/upload", h.Upload).Methods("POST")
}

// ListFiles lists the Drive files available for ingest. Either a folderId
// or a human path like Kitchen/Exports selects the folder.
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	folderID := query.Get("folderId")
	folderPath := query.Get("path")

	var err error
	if folderPath != "" {
		folderID, err = h.drive.FindFolderByPath(folderPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}

	files, err := h.drive.ListFiles(folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

// Run ingests one file by fileId, or a whole folder by folderId.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fileID := query.Get("fileId")
	folderID := query.Get("folderId")

	var (
		count int
		err   error
	)
	switch {
	case fileID != "":
		count, err = h.service.IngestFile(r.Context(), fileID)
	case folderID != "":
		count, err = h.service.IngestFolder(r.Context(), folderID)
	default:
		http.Error(w, "fileId or folderId parameter is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "success",
		"message": "File ingested successfully",
		"events":  count,
	})
}

// Upload ingests a CSV posted directly in the request body.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	count, err := h.service.IngestReader(r.Context(), r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "success",
		"message": "Upload ingested successfully",
		"events":  count,
	})
}
