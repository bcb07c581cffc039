package main

import (
	"net/http"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/handler"
)

// newRouter builds the route table (Go 1.22+ enhanced patterns). Kept out of
// main so tests register it too: ServeMux panics on conflicting patterns, and
// that must surface in CI, not at boot.
func newRouter(files *handler.FileHandler, folders *handler.FolderHandler, organize *handler.OrganizeHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", files.HealthCheck)

	// File routes. Downloads live under /api/downloads: a literal segment
	// after {id} (GET /api/files/{id}/download) is ambiguous with
	// GET /api/files/folder/{folderID} for paths like /api/files/folder/download.
	mux.HandleFunc("GET /api/files", files.ListFiles)
	mux.HandleFunc("GET /api/files/folder", files.ListFilesInFolder) // Unfoldered
	mux.HandleFunc("GET /api/files/folder/{folderID}", files.ListFilesInFolder)
	mux.HandleFunc("POST /api/files/upload", files.Upload)
	mux.HandleFunc("POST /api/files/upload-multiple", files.UploadMultiple)
	mux.HandleFunc("GET /api/files/{id}", files.GetFile)
	mux.HandleFunc("PATCH /api/files/{id}", files.UpdateFile)
	mux.HandleFunc("GET /api/downloads/{id}", files.Download)
	mux.HandleFunc("PATCH /api/files/{id}/tags", files.UpdateTags)
	mux.HandleFunc("POST /api/files/{id}/reprocess", files.Reprocess)
	mux.HandleFunc("POST /api/files/{id}/apply-to-similar", files.ApplyToSimilar)
	mux.HandleFunc("DELETE /api/files/{id}", files.DeleteFile)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folders.ListFolders)
	mux.HandleFunc("POST /api/folders", folders.CreateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folders.DeleteFolder)

	// Search and usage
	mux.HandleFunc("GET /api/search", files.Search)
	mux.HandleFunc("GET /api/storage-usage", files.StorageUsage)

	// Auto-organize
	mux.HandleFunc("POST /api/organize-files", organize.OrganizeFiles)

	return mux
}
