package entity

import (
	"time"

	"github.com/formlo/formlo/constants"
)

// Job represents one tracked attempt to convert an uploaded document into a
// published form. It is owned by the pipeline processor for its lifetime;
// readers only ever observe the persisted snapshots.
type Job struct {
	ID              string              `bson:"_id" json:"id"`
	OwnerID         string              `bson:"owner_id" json:"owner_id"`
	SourceFilename  string              `bson:"source_filename" json:"source_filename"`
	Status          constants.JobStatus `bson:"status" json:"status"`
	Progress        int                 `bson:"progress" json:"progress"`
	ErrorMessage    *string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	PublishedFormID *string             `bson:"published_form_id,omitempty" json:"published_form_id,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
}
