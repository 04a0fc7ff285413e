package models

type GalleryImage struct {
	ID           string           `json:"id"`
	Likes        int              `json:"likes"`
	Liked        bool             `json:"liked"`
	CommentCount int              `json:"comment_count"`
	Comments     []GalleryComment `json:"comments,omitempty"`
}

// LikeState is the outcome of a like toggle.
type LikeState struct {
	Image string `json:"image"`
	Liked bool   `json:"liked"`
	Likes int    `json:"likes"`
}
