package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	discoveryDto "github.com/visionmates/api/internal/modules/discovery/dto"
	discoveryRepo "github.com/visionmates/api/internal/modules/discovery/repository"
	"github.com/visionmates/api/pkg/apperror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (DiscoveryService, *gorm.DB, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Project{}, &entity.Participation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	creator := entity.User{Email: "creator@test.dev", PasswordHash: "x", FirstName: "Creator"}
	if err := db.Create(&creator).Error; err != nil {
		t.Fatalf("seed creator: %v", err)
	}
	return NewDiscoveryService(discoveryRepo.NewDiscoveryRepository(db)), db, creator.ID
}

func seedProjects(t *testing.T, db *gorm.DB, creatorID uuid.UUID, n int, active bool) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		p := entity.Project{CreatorID: creatorID, Title: "p", Description: "d", IsActive: active}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed project: %v", err)
		}
		// Spread creation times so ordering is deterministic.
		createdAt := base.Add(time.Duration(i) * time.Minute)
		if err := db.Model(&entity.Project{}).Where("id = ?", p.ID).
			Updates(map[string]interface{}{"created_at": createdAt, "is_active": active}).Error; err != nil {
			t.Fatalf("set created_at: %v", err)
		}
		ids = append(ids, p.ID)
	}
	return ids
}

func cursorQuery(limit int, resp *discoveryDto.DiscoverResponse) discoveryDto.DiscoverQuery {
	return discoveryDto.DiscoverQuery{
		Limit:         limit,
		LastCreatedAt: resp.NextCursor.LastCreatedAt.Format(time.RFC3339Nano),
		LastID:        resp.NextCursor.LastID.String(),
	}
}

func TestPaginationCoversAllActiveProjectsOnce(t *testing.T) {
	svc, db, creatorID := setupService(t)
	active := seedProjects(t, db, creatorID, 30, true)
	seedProjects(t, db, creatorID, 5, false)
	ctx := context.Background()

	seen := map[uuid.UUID]bool{}
	query := discoveryDto.DiscoverQuery{Limit: 12}
	for {
		page, err := svc.GetPage(ctx, query)
		if err != nil {
			t.Fatalf("get page: %v", err)
		}
		for _, card := range page.Projects {
			if seen[card.ID] {
				t.Fatalf("project %s returned twice", card.ID)
			}
			seen[card.ID] = true
		}
		if len(page.Projects) == 0 {
			break
		}
		query = cursorQuery(12, page)
	}

	if len(seen) != len(active) {
		t.Fatalf("expected %d projects across pages, got %d", len(active), len(seen))
	}
	for _, id := range active {
		if !seen[id] {
			t.Fatalf("active project %s missing from feed", id)
		}
	}
}

func TestPagesAreNewestFirst(t *testing.T) {
	svc, db, creatorID := setupService(t)
	seedProjects(t, db, creatorID, 10, true)

	page, err := svc.GetPage(context.Background(), discoveryDto.DiscoverQuery{Limit: 10})
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	for i := 1; i < len(page.Projects); i++ {
		if page.Projects[i].CreatedAt.After(page.Projects[i-1].CreatedAt) {
			t.Fatalf("page not ordered newest first at index %d", i)
		}
	}
}

func TestCursorStableUnderInsert(t *testing.T) {
	svc, db, creatorID := setupService(t)
	seedProjects(t, db, creatorID, 20, true)
	ctx := context.Background()

	first, err := svc.GetPage(ctx, discoveryDto.DiscoverQuery{Limit: 8})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if !first.HasMore {
		t.Fatalf("expected more pages")
	}

	// A project created between page fetches must not shift what the
	// cursor already points past.
	newcomer := entity.Project{CreatorID: creatorID, Title: "new", Description: "d", IsActive: true}
	if err := db.Create(&newcomer).Error; err != nil {
		t.Fatalf("insert newcomer: %v", err)
	}

	second, err := svc.GetPage(ctx, cursorQuery(8, first))
	if err != nil {
		t.Fatalf("second page: %v", err)
	}

	firstIDs := map[uuid.UUID]bool{}
	for _, card := range first.Projects {
		firstIDs[card.ID] = true
	}
	for _, card := range second.Projects {
		if firstIDs[card.ID] {
			t.Fatalf("project %s repeated on second page", card.ID)
		}
		if card.ID == newcomer.ID {
			t.Fatalf("newcomer leaked into a page behind the cursor")
		}
	}
	if len(second.Projects) != 8 {
		t.Fatalf("expected full second page, got %d", len(second.Projects))
	}
}

func TestEqualTimestampsBreakTiesByID(t *testing.T) {
	svc, db, creatorID := setupService(t)
	ids := seedProjects(t, db, creatorID, 6, true)

	// Collapse everything onto one timestamp; only the id order is left.
	ts := time.Now().Truncate(time.Second)
	if err := db.Model(&entity.Project{}).Where("1 = 1").
		Update("created_at", ts).Error; err != nil {
		t.Fatalf("collapse timestamps: %v", err)
	}

	ctx := context.Background()
	first, err := svc.GetPage(ctx, discoveryDto.DiscoverQuery{Limit: 3})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	second, err := svc.GetPage(ctx, cursorQuery(3, first))
	if err != nil {
		t.Fatalf("second page: %v", err)
	}

	seen := map[uuid.UUID]bool{}
	for _, card := range append(first.Projects, second.Projects...) {
		if seen[card.ID] {
			t.Fatalf("duplicate %s across tie-broken pages", card.ID)
		}
		seen[card.ID] = true
	}
	if len(seen) != len(ids) {
		t.Fatalf("expected %d unique projects, got %d", len(ids), len(seen))
	}
}

func TestMalformedCursorRejected(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.GetPage(context.Background(), discoveryDto.DiscoverQuery{
		Limit:         5,
		LastCreatedAt: "yesterday",
		LastID:        uuid.New().String(),
	})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
