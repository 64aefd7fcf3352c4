package like

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	likeDto "github.com/visionmates/api/internal/modules/like/dto"
	likeRepo "github.com/visionmates/api/internal/modules/like/repository"
	projectRepo "github.com/visionmates/api/internal/modules/project/repository"
	"github.com/visionmates/api/pkg/apperror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (LikeService, *gorm.DB, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Project{}, &entity.ProjectLike{}, &entity.ProjectHide{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	user := entity.User{Email: "liker@test.dev", PasswordHash: "x", FirstName: "Liker"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := NewLikeService(
		likeRepo.NewLikeRepository(db),
		projectRepo.NewProjectRepository(db),
	)
	return svc, db, user.ID
}

func seedProject(t *testing.T, db *gorm.DB, creatorID uuid.UUID) uuid.UUID {
	t.Helper()
	p := entity.Project{CreatorID: creatorID, Title: "p", Description: "d", IsActive: true}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p.ID
}

func TestToggleLikeFlipsMembership(t *testing.T) {
	svc, db, userID := setupService(t)
	projectID := seedProject(t, db, userID)
	ctx := context.Background()

	res, err := svc.ToggleLike(ctx, userID, projectID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if res.Action != "added" {
		t.Fatalf("expected added, got %s", res.Action)
	}

	res, err = svc.ToggleLike(ctx, userID, projectID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if res.Action != "removed" {
		t.Fatalf("expected removed, got %s", res.Action)
	}

	var count int64
	db.Model(&entity.ProjectLike{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no likes, got %d", count)
	}
}

func TestHideAndLikeAreIndependent(t *testing.T) {
	svc, db, userID := setupService(t)
	projectID := seedProject(t, db, userID)
	ctx := context.Background()

	if _, err := svc.ToggleLike(ctx, userID, projectID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := svc.ToggleHide(ctx, userID, projectID); err != nil {
		t.Fatalf("hide: %v", err)
	}

	var likes, hides int64
	db.Model(&entity.ProjectLike{}).Count(&likes)
	db.Model(&entity.ProjectHide{}).Count(&hides)
	if likes != 1 || hides != 1 {
		t.Fatalf("expected both rows to coexist, likes=%d hides=%d", likes, hides)
	}
}

func TestToggleUnknownProject(t *testing.T) {
	svc, _, userID := setupService(t)

	_, err := svc.ToggleLike(context.Background(), userID, uuid.New())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListLikedPagination(t *testing.T) {
	svc, db, userID := setupService(t)
	ctx := context.Background()

	projectIDs := make([]uuid.UUID, 0, 5)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		projectID := seedProject(t, db, userID)
		if _, err := svc.ToggleLike(ctx, userID, projectID); err != nil {
			t.Fatalf("like %d: %v", i, err)
		}
		// Spread like times so the cursor has distinct positions.
		if err := db.Model(&entity.ProjectLike{}).
			Where("project_id = ?", projectID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error; err != nil {
			t.Fatalf("set like time: %v", err)
		}
		projectIDs = append(projectIDs, projectID)
	}

	first, err := svc.ListLiked(ctx, userID, likeDto.LikedQuery{Limit: 3})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Projects) != 3 || !first.HasMore || first.NextCursor == nil {
		t.Fatalf("unexpected first page: %+v", first)
	}
	// Most recent like first.
	if first.Projects[0].ID != projectIDs[4] {
		t.Fatalf("expected newest like first")
	}

	second, err := svc.ListLiked(ctx, userID, likeDto.LikedQuery{
		Limit:         3,
		LastCreatedAt: first.NextCursor.Format(time.RFC3339Nano),
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Projects) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(second.Projects))
	}
	for _, p := range second.Projects {
		for _, fp := range first.Projects {
			if p.ID == fp.ID {
				t.Fatalf("project %s repeated across pages", p.ID)
			}
		}
	}
}

func TestListLikedMalformedCursor(t *testing.T) {
	svc, _, userID := setupService(t)

	_, err := svc.ListLiked(context.Background(), userID, likeDto.LikedQuery{
		Limit:         3,
		LastCreatedAt: "not-a-time",
	})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
