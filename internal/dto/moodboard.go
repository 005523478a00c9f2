package dto

import "time"

// CreateMoodBoardRequest is the JSON body for POST /moodboards.
// Field names match the original client (imageUrl, not image_url).
type CreateMoodBoardRequest struct {
	Emojis   []string `json:"emojis" binding:"required,min=1,dive,required"`
	ImageURL string   `json:"imageUrl" binding:"required"`
	Color    string   `json:"color" binding:"required"`
	Note     string   `json:"note" binding:"omitempty,max=200"`
}

// MoodBoardResponse is a single board as returned by the API.
// Day is the calendar day in the server's reference zone, YYYY-MM-DD.
type MoodBoardResponse struct {
	ID        int64     `json:"id"`
	Day       string    `json:"day"`
	Emojis    []string  `json:"emojis"`
	ImageURL  string    `json:"imageUrl"`
	Color     string    `json:"color"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListMoodBoardsResponse wraps the timeline, newest day first.
type ListMoodBoardsResponse struct {
	Items []MoodBoardResponse `json:"items"`
}
