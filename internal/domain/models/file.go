package models

import (
	"strings"
	"time"
)

type File struct {
	ID          string                 `json:"id" db:"id"`
	UserID      string                 `json:"user_id" db:"user_id"`
	FolderID    *string                `json:"folder_id" db:"folder_id"` // NULL = unfoldered
	Name        string                 `json:"name" db:"name"`           // Original upload name, immutable
	DisplayName string                 `json:"display_name" db:"display_name"`
	MimeType    string                 `json:"mime_type" db:"mime_type"`
	Size        int64                  `json:"size" db:"size"`
	ObjectKey   string                 `json:"object_key" db:"object_key"` // Location in object storage
	Tags        []string               `json:"tags" db:"tags"`
	AIGenerated bool                   `json:"ai_generated" db:"ai_generated"`
	Metadata    map[string]interface{} `json:"metadata" db:"metadata"`
	UploadedAt  time.Time              `json:"uploaded_at" db:"uploaded_at"`
	UpdatedAt   time.Time              `json:"updated_at" db:"updated_at"`
}

// Extension returns the lowercased file-name extension without the dot,
// or "" when the name has none.
func (f *File) Extension() string {
	return FileExtension(f.Name)
}

// FileExtension extracts the lowercased extension (after the last dot) from
// a file name. Names without a dot, or ending in one, yield "".
func FileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

type UpdateTagsRequest struct {
	Tags []string `json:"tags"`
}

type UpdateFileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	FolderID    *string `json:"folder_id,omitempty"`
}

type FileListResponse struct {
	Files []File `json:"files"`
	Total int    `json:"total"`
}

// ApplyToSimilarResponse reports a tag propagation run. Count is the number
// of files successfully updated; SimilarFilesFound is how many matched. The
// two differ when individual updates fail.
type ApplyToSimilarResponse struct {
	SourceFile        *File  `json:"sourceFile"`
	UpdatedFiles      []File `json:"updatedFiles"`
	Count             int    `json:"count"`
	SimilarFilesFound int    `json:"similarFilesFound"`
}

// OrganizeReport reports an auto-organize run. FoldersCreated counts new
// folders only; a reused folder still moves files.
type OrganizeReport struct {
	FoldersCreated int `json:"foldersCreated"`
	FilesMoved     int `json:"filesMoved"`
}

type StorageUsage struct {
	UsedBytes  int64   `json:"used_bytes"`
	QuotaBytes int64   `json:"quota_bytes"`
	Used       string  `json:"used"`
	Quota      string  `json:"quota"`
	UsedPct    float64 `json:"used_pct"`
	FileCount  int     `json:"file_count"`
}
