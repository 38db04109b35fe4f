package entity

import "time"

// PublishedForm is the durable record of a successful conversion. It is
// created exactly once, when the provider publish succeeds, and never
// mutated afterwards (deletion excepted).
type PublishedForm struct {
	ID              string    `bson:"_id" json:"id"`
	OwnerID         string    `bson:"owner_id" json:"owner_id"`
	SourceFilename  string    `bson:"source_filename" json:"source_filename"`
	PublishedFormID string    `bson:"published_form_id" json:"published_form_id"`
	Title           string    `bson:"title" json:"title"`
	URL             string    `bson:"url" json:"url"`
	QuestionCount   int       `bson:"question_count" json:"question_count"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
