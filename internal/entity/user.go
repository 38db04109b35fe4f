package entity

import "time"

// User is the identity collaborator's record. The pipeline only ever treats
// its ID as an opaque scoping key.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Picture   *string   `bson:"picture,omitempty" json:"picture,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
