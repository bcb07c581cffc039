package config

const (
	// MaxUploadSize is the per-file upload limit in bytes (50 MiB).
	// Enforced before any storage or tagging work happens so oversized
	// requests fail fast.
	MaxUploadSize = 50 << 20

	// MaxFilesPerUpload caps the multi-upload endpoint. Uploads are
	// processed sequentially, so this also bounds per-request latency.
	MaxFilesPerUpload = 10

	// StorageQuota is the fixed per-user storage allowance (1 GiB).
	StorageQuota = 1 << 30

	// MaxFileNameLength is the maximum length for file and display names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxFileNameLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same as file names for consistency.
	MaxFolderNameLength = 255

	// MaxTagsPerFile bounds a file's tag set. The tagger never produces
	// more than a handful; this guards the manual PATCH path.
	MaxTagsPerFile = 20

	// MaxTagLength is the maximum length of a single tag.
	MaxTagLength = 64
)
