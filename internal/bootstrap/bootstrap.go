package bootstrap

import (
	"log"

	"github.com/visionmates/api/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.UserSkill{},
		&entity.Project{},
		&entity.ProjectRequiredSkill{},
		&entity.ProgressUpdate{},
		&entity.Comment{},
		&entity.Participation{},
		&entity.Reaction{},
		&entity.Conversation{},
		&entity.Message{},
		&entity.ProjectLike{},
		&entity.ProjectHide{},
	)
}

// SeedDemoUser creates a login for local development.
func SeedDemoUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "demo@visionmates.dev").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Demo user already exists, skipping seed")
		return nil
	}

	password := "demo1234"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demoUser := entity.User{
		Email:        "demo@visionmates.dev",
		PasswordHash: string(hashedPasswordBytes),
		FirstName:    "Demo",
		LastName:     "User",
	}

	if err := db.Create(&demoUser).Error; err != nil {
		return err
	}

	demoProject := entity.Project{
		CreatorID:   demoUser.ID,
		Title:       "VisionMates Starter",
		Description: "A sample project to explore the discovery feed.",
		IsActive:    true,
	}

	if err := db.Create(&demoProject).Error; err != nil {
		return err
	}

	log.Println("Demo user seeded successfully")
	log.Println("   Email: demo@visionmates.dev")
	log.Println("   Password: demo1234")

	return nil
}
