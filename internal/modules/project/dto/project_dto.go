package dto

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=10000"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=10000"`
}

type CreateProgressUpdateRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required,max=10000"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type RequiredSkillInput struct {
	Skill    string `json:"skill" binding:"required,max=50"`
	Priority int    `json:"priority" binding:"omitempty,min=1,max=5"`
}

type UpsertRequiredSkillsRequest struct {
	Skills []RequiredSkillInput `json:"skills" binding:"required,min=1,dive"`
}
