package database

import (
	"fmt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"walk2gether-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Walk{},
		&models.Participant{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.ChatMessage{},
		&models.Round{},
		&models.Notification{},
		&models.UserLocation{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Walk feed queries: upcoming walks by date
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_walks_date ON walks(date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for walks date: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_walks_type_date ON walks(type, date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for walks type: %v\n", err)
	}

	// Participant lookups by user for joined-walks lists
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_participants_user ON participants(user_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for participants user: %v\n", err)
	}

	// Chat history per walk
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_walk_created ON chat_messages(walk_id, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for chat_messages: %v\n", err)
	}

	// Notification feed per user
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_target_created ON notifications(target_user_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for notifications: %v\n", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Prevent duplicate friendships
	if err := db.Exec("ALTER TABLE friendships ADD CONSTRAINT uk_friendships_users UNIQUE (user1_id, user2_id)").Error; err != nil {
		// Ignore error if constraint already exists
		fmt.Printf("Warning: Could not add unique constraint for friendships: %v\n", err)
	}

	// Prevent self-friendship
	if err := db.Exec("ALTER TABLE friendships ADD CONSTRAINT ck_friendships_no_self CHECK (user1_id != user2_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add check constraint for friendships: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	// Check if we already have users
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testUsers := []models.User{
		{
			ID:            "user-1",
			Name:          "John Doe",
			Handle:        "john_doe",
			Email:         "john@example.com",
			Password:      "$2a$10$dummy", // This should be properly hashed in real scenarios
			EmailVerified: true,
		},
		{
			ID:            "user-2",
			Name:          "Jane Smith",
			Handle:        "jane_smith",
			Email:         "jane@example.com",
			Password:      "$2a$10$dummy",
			EmailVerified: true,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Handle, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
