package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/repositories"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const fileColumns = `id, user_id, folder_id, name, display_name, mime_type, size, object_key, tags, ai_generated, metadata, uploaded_at, updated_at`

func scanFile(row interface{ Scan(...any) error }, f *models.File) error {
	return row.Scan(
		&f.ID,
		&f.UserID,
		&f.FolderID,
		&f.Name,
		&f.DisplayName,
		&f.MimeType,
		&f.Size,
		&f.ObjectKey,
		&f.Tags,
		&f.AIGenerated,
		&f.Metadata,
		&f.UploadedAt,
		&f.UpdatedAt,
	)
}

// Create inserts a new file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, folder_id, name, display_name, mime_type, size, object_key, tags, ai_generated, metadata, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, uploaded_at, updated_at
	`, r.tables.Files)

	err := r.pool.QueryRow(ctx, query,
		file.UserID,
		file.FolderID,
		file.Name,
		file.DisplayName,
		file.MimeType,
		file.Size,
		file.ObjectKey,
		file.Tags,
		file.AIGenerated,
		file.Metadata,
		file.UploadedAt,
		file.UpdatedAt,
	).Scan(&file.ID, &file.UploadedAt, &file.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder reference: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID, scoped by owner
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, userID string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, fileColumns, r.tables.Files)

	var file models.File
	err := scanFile(r.pool.QueryRow(ctx, query, id, userID), &file)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// ListByUser lists all files owned by the user in upload order
func (r *PostgresFileRepository) ListByUser(ctx context.Context, userID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY uploaded_at ASC
	`, fileColumns, r.tables.Files)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		var file models.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// ListByFolder lists files in a folder; nil folderID means unfoldered
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.File, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND folder_id IS NULL
			ORDER BY uploaded_at ASC
		`, fileColumns, r.tables.Files)
		args = append(args, userID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND folder_id = $2
			ORDER BY uploaded_at ASC
		`, fileColumns, r.tables.Files)
		args = append(args, userID, *folderID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files in folder: %w", err)
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		var file models.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// Update overwrites all mutable fields of the record
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, display_name = $2, tags = $3, ai_generated = $4, metadata = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7
	`, r.tables.Files)

	result, err := r.pool.Exec(ctx, query,
		file.FolderID,
		file.DisplayName,
		file.Tags,
		file.AIGenerated,
		file.Metadata,
		file.ID,
		file.UserID,
	)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder reference: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdateTags fully replaces the tag set of a file
func (r *PostgresFileRepository) UpdateTags(ctx context.Context, id, userID string, tags []string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET tags = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
	`, r.tables.Files)

	result, err := r.pool.Exec(ctx, query, tags, id, userID)
	if err != nil {
		return fmt.Errorf("update tags: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the file record
func (r *PostgresFileRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Files)

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Search lists files matching the filter. Query matches name, display name,
// or any tag as a case-insensitive substring; Tag is an exact
// case-insensitive tag match; Type is a substring match on the MIME type.
func (r *PostgresFileRepository) Search(ctx context.Context, userID string, filter *repositories.SearchFilter) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		  AND ($2 = '' OR name ILIKE '%%' || $2 || '%%'
		       OR display_name ILIKE '%%' || $2 || '%%'
		       OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE t ILIKE '%%' || $2 || '%%'))
		  AND ($3 = '' OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE lower(t) = lower($3)))
		  AND ($4 = '' OR mime_type ILIKE '%%' || $4 || '%%')
		ORDER BY uploaded_at ASC
	`, fileColumns, r.tables.Files)

	rows, err := r.pool.Query(ctx, query, userID, filter.Query, filter.Tag, filter.Type)
	if err != nil {
		return nil, fmt.Errorf("search files: %w", err)
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		var file models.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// Usage returns the total stored bytes and file count for the user
func (r *PostgresFileRepository) Usage(ctx context.Context, userID string) (int64, int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(size), 0), COUNT(*)
		FROM %s
		WHERE user_id = $1
	`, r.tables.Files)

	var total int64
	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&total, &count); err != nil {
		return 0, 0, fmt.Errorf("storage usage: %w", err)
	}

	return total, count, nil
}
