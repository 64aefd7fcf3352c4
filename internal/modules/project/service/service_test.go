package project

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	projectDto "github.com/visionmates/api/internal/modules/project/dto"
	projectRepo "github.com/visionmates/api/internal/modules/project/repository"
	"github.com/visionmates/api/pkg/apperror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (ProjectService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{}, &entity.Project{}, &entity.ProjectRequiredSkill{},
		&entity.ProgressUpdate{}, &entity.Comment{}, &entity.Participation{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewProjectService(projectRepo.NewProjectRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	user := entity.User{Email: name + "@test.dev", PasswordHash: "x", FirstName: name}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user.ID
}

func TestCreateSanitizesDescription(t *testing.T) {
	svc, db := setupService(t)
	creator := seedUser(t, db, "creator")

	project, err := svc.Create(context.Background(), creator, projectDto.CreateProjectRequest{
		Title:       "  My project  ",
		Description: "hello <script>alert(1)</script>world",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Title != "My project" {
		t.Fatalf("title not trimmed: %q", project.Title)
	}
	if project.Description != "hello world" {
		t.Fatalf("description not sanitized: %q", project.Description)
	}
	if !project.IsActive {
		t.Fatalf("new project must be active")
	}
}

func TestUpdateIsCreatorOnlyAndKeepsCreator(t *testing.T) {
	svc, db := setupService(t)
	creator := seedUser(t, db, "creator")
	stranger := seedUser(t, db, "stranger")
	ctx := context.Background()

	project, err := svc.Create(ctx, creator, projectDto.CreateProjectRequest{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, stranger, project.ID, projectDto.UpdateProjectRequest{
		Title: "hijacked", Description: "d",
	}); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden for non-creator, got %v", err)
	}

	updated, err := svc.Update(ctx, creator, project.ID, projectDto.UpdateProjectRequest{
		Title: "renamed", Description: "new",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CreatorID != creator {
		t.Fatalf("creator changed on update")
	}
	if updated.Title != "renamed" {
		t.Fatalf("title not updated")
	}
}

func TestDeactivateIsSoftDelete(t *testing.T) {
	svc, db := setupService(t)
	creator := seedUser(t, db, "creator")
	ctx := context.Background()

	project, err := svc.Create(ctx, creator, projectDto.CreateProjectRequest{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Deactivate(ctx, creator, project.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	var row entity.Project
	if err := db.First(&row, "id = ?", project.ID).Error; err != nil {
		t.Fatalf("row must survive deactivation: %v", err)
	}
	if row.IsActive {
		t.Fatalf("expected is_active false")
	}

	// Still readable after deactivation.
	got, err := svc.Get(ctx, project.ID)
	if err != nil {
		t.Fatalf("get after deactivate: %v", err)
	}
	if got.IsActive {
		t.Fatalf("expected inactive project from Get")
	}
}

func TestProgressUpdatesCreatorOnlyCommentsOpen(t *testing.T) {
	svc, db := setupService(t)
	creator := seedUser(t, db, "creator")
	visitor := seedUser(t, db, "visitor")
	ctx := context.Background()

	project, err := svc.Create(ctx, creator, projectDto.CreateProjectRequest{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.CreateProgressUpdate(ctx, visitor, project.ID, projectDto.CreateProgressUpdateRequest{
		Title: "week 1", Content: "done stuff",
	}); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden progress update, got %v", err)
	}

	if _, err := svc.CreateProgressUpdate(ctx, creator, project.ID, projectDto.CreateProgressUpdateRequest{
		Title: "week 1", Content: "done stuff",
	}); err != nil {
		t.Fatalf("creator progress update: %v", err)
	}

	if _, err := svc.CreateComment(ctx, visitor, project.ID, projectDto.CreateCommentRequest{
		Content: "looks great",
	}); err != nil {
		t.Fatalf("visitor comment: %v", err)
	}

	comments, err := svc.ListComments(ctx, project.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 || comments[0].UserID != visitor {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}

func TestUpsertRequiredSkillsUpdatesPriority(t *testing.T) {
	svc, db := setupService(t)
	creator := seedUser(t, db, "creator")
	ctx := context.Background()

	project, err := svc.Create(ctx, creator, projectDto.CreateProjectRequest{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpsertRequiredSkills(ctx, creator, project.ID, projectDto.UpsertRequiredSkillsRequest{
		Skills: []projectDto.RequiredSkillInput{{Skill: "go", Priority: 1}},
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := svc.UpsertRequiredSkills(ctx, creator, project.ID, projectDto.UpsertRequiredSkillsRequest{
		Skills: []projectDto.RequiredSkillInput{{Skill: "go", Priority: 5}},
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var rows []entity.ProjectRequiredSkill
	db.Where("project_id = ?", project.ID).Find(&rows)
	if len(rows) != 1 {
		t.Fatalf("expected one row per skill, got %d", len(rows))
	}
	if rows[0].Priority != 5 {
		t.Fatalf("expected priority updated to 5, got %d", rows[0].Priority)
	}
}
