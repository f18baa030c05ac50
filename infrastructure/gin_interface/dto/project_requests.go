package dto

import "story-production-api/domain"

type SaveProjectRequest struct {
	ID      string           `json:"id"`
	Title   string           `json:"title" binding:"required"`
	Content domain.StoryData `json:"content" binding:"required"`
}

type ProjectResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   domain.StoryData `json:"content"`
	UpdatedAt string           `json:"updatedAt"`
}

type ProjectSummaryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updatedAt"`
}

type PublishProjectResponse struct {
	URL string `json:"url"`
}
