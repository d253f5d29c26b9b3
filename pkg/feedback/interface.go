// Package feedback persists the record written for every image description.
package feedback

import (
	"context"

	"github.com/gomcpgo/cloud_ai/pkg/types"
)

// Recorder stores feedback records. Records are written once and never updated.
type Recorder interface {
	PutFeedback(ctx context.Context, record types.FeedbackRecord) error
}

var (
	_ Recorder = (*DynamoRecorder)(nil)
	_ Recorder = (*SQLiteRecorder)(nil)
)
