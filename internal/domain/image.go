package domain

import "time"

// Image is a library entry pointing at an externally hosted asset.
// The binary itself lives behind the URL; only metadata is kept here.
type Image struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	URL        string    `bson:"url" json:"url"`
	Filename   string    `bson:"filename" json:"filename"`
	Size       int64     `bson:"size" json:"size"`
	UploadedBy string    `bson:"uploaded_by" json:"uploadedBy"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
