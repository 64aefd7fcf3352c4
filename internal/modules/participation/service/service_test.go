package participation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	participationRepo "github.com/visionmates/api/internal/modules/participation/repository"
	projectRepo "github.com/visionmates/api/internal/modules/project/repository"
	"github.com/visionmates/api/pkg/apperror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (ParticipationService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Project{}, &entity.Participation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc := NewParticipationService(
		participationRepo.NewParticipationRepository(db),
		projectRepo.NewProjectRepository(db),
	)
	return svc, db
}

func seedProject(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()
	user := entity.User{Email: uuid.New().String() + "@test.dev", PasswordHash: "x", FirstName: "Test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	project := entity.Project{CreatorID: user.ID, Title: "p", Description: "d", IsActive: true}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project.ID, user.ID
}

func TestSetReplacesExistingType(t *testing.T) {
	svc, db := setupService(t)
	projectID, userID := seedProject(t, db)
	ctx := context.Background()

	if _, err := svc.Set(ctx, userID, projectID, entity.ParticipationWatch); err != nil {
		t.Fatalf("set watch: %v", err)
	}
	if _, err := svc.Set(ctx, userID, projectID, entity.ParticipationCommit); err != nil {
		t.Fatalf("set commit: %v", err)
	}

	var rows []entity.Participation
	if err := db.Where("project_id = ? AND user_id = ?", projectID, userID).Find(&rows).Error; err != nil {
		t.Fatalf("query rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one participation, got %d", len(rows))
	}
	if rows[0].Type != entity.ParticipationCommit {
		t.Fatalf("expected commit, got %s", rows[0].Type)
	}
}

func TestSetInvalidTypeRejected(t *testing.T) {
	svc, db := setupService(t)
	projectID, userID := seedProject(t, db)

	_, err := svc.Set(context.Background(), userID, projectID, "spectate")
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSetUnknownProject(t *testing.T) {
	svc, db := setupService(t)
	_, userID := seedProject(t, db)

	_, err := svc.Set(context.Background(), userID, uuid.New(), entity.ParticipationWatch)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc, db := setupService(t)
	projectID, userID := seedProject(t, db)
	ctx := context.Background()

	if _, err := svc.Set(ctx, userID, projectID, entity.ParticipationWatch); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.Remove(ctx, userID, projectID, entity.ParticipationWatch); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	// Second removal of the same triple is still success.
	if err := svc.Remove(ctx, userID, projectID, entity.ParticipationWatch); err != nil {
		t.Fatalf("second remove: %v", err)
	}

	var count int64
	db.Model(&entity.Participation{}).Where("project_id = ?", projectID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows, got %d", count)
	}
}

func TestRemoveLeavesOtherTypesAlone(t *testing.T) {
	svc, db := setupService(t)
	projectID, userID := seedProject(t, db)
	ctx := context.Background()

	if _, err := svc.AddStrict(ctx, userID, projectID, entity.ParticipationWatch); err != nil {
		t.Fatalf("add watch: %v", err)
	}
	if _, err := svc.AddStrict(ctx, userID, projectID, entity.ParticipationCommit); err != nil {
		t.Fatalf("add commit: %v", err)
	}
	if err := svc.Remove(ctx, userID, projectID, entity.ParticipationWatch); err != nil {
		t.Fatalf("remove watch: %v", err)
	}

	var rows []entity.Participation
	db.Where("project_id = ? AND user_id = ?", projectID, userID).Find(&rows)
	if len(rows) != 1 || rows[0].Type != entity.ParticipationCommit {
		t.Fatalf("expected commit to survive, got %+v", rows)
	}
}

func TestAddStrictConflict(t *testing.T) {
	svc, db := setupService(t)
	projectID, userID := seedProject(t, db)
	ctx := context.Background()

	if _, err := svc.AddStrict(ctx, userID, projectID, entity.ParticipationRaiseHand); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.AddStrict(ctx, userID, projectID, entity.ParticipationRaiseHand)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSummaryCountsAndUserType(t *testing.T) {
	svc, db := setupService(t)
	projectID, userID := seedProject(t, db)
	ctx := context.Background()

	other := entity.User{Email: "other@test.dev", PasswordHash: "x", FirstName: "Other"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed other: %v", err)
	}

	if _, err := svc.Set(ctx, userID, projectID, entity.ParticipationCommit); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := svc.Set(ctx, other.ID, projectID, entity.ParticipationWatch); err != nil {
		t.Fatalf("set other: %v", err)
	}

	summary, err := svc.Summary(ctx, &userID, projectID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.Counts[entity.ParticipationWatch] != 1 {
		t.Fatalf("expected 1 watch, got %d", summary.Counts[entity.ParticipationWatch])
	}
	if summary.Counts[entity.ParticipationCommit] != 1 {
		t.Fatalf("expected 1 commit, got %d", summary.Counts[entity.ParticipationCommit])
	}
	if summary.Counts[entity.ParticipationRaiseHand] != 0 {
		t.Fatalf("expected raise_hand key to be present and zero")
	}
	if summary.UserType == nil || *summary.UserType != entity.ParticipationCommit {
		t.Fatalf("expected user type commit, got %v", summary.UserType)
	}

	anon, err := svc.Summary(ctx, nil, projectID)
	if err != nil {
		t.Fatalf("anonymous summary: %v", err)
	}
	if anon.UserType != nil {
		t.Fatalf("expected nil user type for anonymous caller")
	}
}

// racingParticipationRepo lets a rival row for the same triple land between
// the service's delete and its insert, the way two Set calls race.
type racingParticipationRepo struct {
	participationRepo.ParticipationRepository
	db    *gorm.DB
	rival *entity.Participation
}

func (r *racingParticipationRepo) Insert(ctx context.Context, p *entity.Participation) (bool, error) {
	if r.rival == nil {
		r.rival = &entity.Participation{ProjectID: p.ProjectID, UserID: p.UserID, Type: p.Type}
		if err := r.db.Create(r.rival).Error; err != nil {
			return false, err
		}
	}
	return r.ParticipationRepository.Insert(ctx, p)
}

func TestSetConflictReturnsWinningRow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Project{}, &entity.Participation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := &racingParticipationRepo{
		ParticipationRepository: participationRepo.NewParticipationRepository(db),
		db:                      db,
	}
	svc := NewParticipationService(repo, projectRepo.NewProjectRepository(db))
	projectID, userID := seedProject(t, db)

	p, err := svc.Set(context.Background(), userID, projectID, entity.ParticipationWatch)
	if err != nil {
		t.Fatalf("set under conflict: %v", err)
	}
	if repo.rival == nil {
		t.Fatalf("rival insert never ran")
	}
	if p == nil || p.ID != repo.rival.ID {
		t.Fatalf("expected the row that won the insert, got %+v want %s", p, repo.rival.ID)
	}

	var count int64
	db.Model(&entity.Participation{}).Where("project_id = ? AND user_id = ?", projectID, userID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 participation row after conflict, got %d", count)
	}
}
