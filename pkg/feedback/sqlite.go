package feedback

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gomcpgo/cloud_ai/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder stores feedback records in a local SQLite database
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the database at path
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS feedback (
			user_id TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			image_bytes BLOB NOT NULL,
			prompt_type TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			initial_description TEXT NOT NULL,
			user_feedback TEXT NOT NULL,
			final_description TEXT NOT NULL,
			status TEXT NOT NULL,
			PRIMARY KEY (user_id, timestamp)
		);`,
	}

	for _, q := range queries {
		if _, err := r.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// PutFeedback inserts the record; a duplicate key is an error
func (r *SQLiteRecorder) PutFeedback(ctx context.Context, record types.FeedbackRecord) error {
	query := `INSERT INTO feedback (user_id, timestamp, image_bytes, prompt_type, title,
		initial_description, user_feedback, final_description, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	imageBytes := record.ImageBytes
	if imageBytes == nil {
		imageBytes = []byte{}
	}

	_, err := r.db.ExecContext(ctx, query,
		record.UserID, record.Timestamp, imageBytes, record.PromptType, record.Title,
		record.InitialDescription, record.UserFeedback, record.FinalDescription, record.Status)
	if err != nil {
		return fmt.Errorf("failed to insert feedback record: %w", err)
	}
	return nil
}

// ListByUser returns a user's records oldest first
func (r *SQLiteRecorder) ListByUser(ctx context.Context, userID string) ([]types.FeedbackRecord, error) {
	query := `SELECT user_id, timestamp, image_bytes, prompt_type, title,
		initial_description, user_feedback, final_description, status
		FROM feedback WHERE user_id = ? ORDER BY timestamp ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var records []types.FeedbackRecord
	for rows.Next() {
		var rec types.FeedbackRecord
		if err := rows.Scan(&rec.UserID, &rec.Timestamp, &rec.ImageBytes, &rec.PromptType, &rec.Title,
			&rec.InitialDescription, &rec.UserFeedback, &rec.FinalDescription, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
