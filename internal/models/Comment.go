package models

import "time"

// Comment is a post on a hobby board.
type Comment struct {
	ID     int64     `json:"id"`
	Author string    `json:"author"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

// GalleryComment is a comment on a gallery image. Older stored records
// carry no id and decode with ID 0.
type GalleryComment struct {
	ID     int64     `json:"id,omitempty"`
	Author string    `json:"author"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

// CommentInput is the user-submitted part of a comment, validated before
// anything is written.
type CommentInput struct {
	Author string `json:"author" validate:"required|maxLen:50"`
	Text   string `json:"text" validate:"required|maxLen:2000"`
}
