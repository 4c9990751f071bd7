package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mimiru/mimiru/internal/auth"
	"github.com/mimiru/mimiru/internal/config"
	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/entities"
)

// SeedCommand populates a fresh database with demo catalog data and an
// administrator account, for local development and demos.
type SeedCommand struct {
	DatabasePath  string
	AdminEmail    string
	AdminPassword string
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.AdminEmail, "admin-email", "admin@example.com", "Email for the seeded administrator account")
	fs.StringVar(&cmd.AdminPassword, "admin-password", "", "Password for the seeded administrator account (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Seed the database with demo titles, chapters and an administrator account.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -admin-password changeme\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -db ./demo.db -admin-email me@example.com -admin-password changeme\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.AdminPassword == "" {
		fs.Usage()
		return fmt.Errorf("admin password is required")
	}
	if len(cmd.AdminPassword) < auth.MinPasswordLength {
		return fmt.Errorf("admin password must be at least %d characters", auth.MinPasswordLength)
	}

	return nil
}

func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	adminID, err := cmd.seedAdmin(db)
	if err != nil {
		return err
	}

	if err := cmd.seedCatalog(db, adminID); err != nil {
		return err
	}

	fmt.Printf("Seeded database at %s (admin: %s)\n", cmd.DatabasePath, cmd.AdminEmail)
	return nil
}

func (cmd *SeedCommand) seedAdmin(db *database.Database) (string, error) {
	var existing entities.Account
	err := db.DB.Where("email = ?", cmd.AdminEmail).First(&existing).Error
	if err == nil {
		fmt.Printf("Admin account %s already exists, skipping\n", cmd.AdminEmail)
		return existing.ID, nil
	}

	hash, err := auth.HashPassword(cmd.AdminPassword, 12)
	if err != nil {
		return "", fmt.Errorf("failed to hash admin password: %w", err)
	}

	account := entities.Account{
		ID:           uuid.NewString(),
		Email:        cmd.AdminEmail,
		PasswordHash: hash,
	}
	if err := db.DB.Create(&account).Error; err != nil {
		return "", fmt.Errorf("failed to create admin account: %w", err)
	}

	profile := entities.UserProfile{
		ID:          account.ID,
		Username:    "admin",
		DisplayName: "Administrator",
		Role:        entities.UserRoleAdmin,
		IsActive:    true,
		JoinedAt:    time.Now(),
	}
	if err := db.DB.Create(&profile).Error; err != nil {
		return "", fmt.Errorf("failed to create admin profile: %w", err)
	}

	return account.ID, nil
}

func (cmd *SeedCommand) seedCatalog(db *database.Database, adminID string) error {
	var count int64
	if err := db.DB.Model(&entities.Title{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count titles: %w", err)
	}
	if count > 0 {
		fmt.Println("Titles already present, skipping catalog seed")
		return nil
	}

	var action, fantasy entities.Genre
	if err := db.DB.Where("name = ?", "Action").First(&action).Error; err != nil {
		return fmt.Errorf("failed to load seed genre: %w", err)
	}
	if err := db.DB.Where("name = ?", "Fantasy").First(&fantasy).Error; err != nil {
		return fmt.Errorf("failed to load seed genre: %w", err)
	}

	demoTitles := []entities.Title{
		{
			Title:            "Blade of the Hollow Moon",
			Description:      "A wandering swordsman hunts the spirits that stole his name.",
			Status:           entities.TitleStatusOngoing,
			OriginalLanguage: "ja",
			CreatedBy:        adminID,
			Genres:           []entities.Genre{action, fantasy},
			Versions: []entities.TitleVersion{
				{
					Language:    "en",
					VersionName: "Official English",
					Chapters: []entities.Chapter{
						{ChapterNumber: 1, Title: "The Nameless Road"},
						{ChapterNumber: 2, Title: "Ash and Lanterns"},
						{ChapterNumber: 2.5, Title: "Extra: The Innkeeper"},
						{ChapterNumber: 3, Title: "Hollow Moon Rising"},
					},
				},
			},
		},
		{
			Title:            "Garden of Falling Stars",
			Description:      "Completed romance about an astronomer and a ghost.",
			Status:           entities.TitleStatusCompleted,
			OriginalLanguage: "ko",
			CreatedBy:        adminID,
			Genres:           []entities.Genre{fantasy},
			Versions: []entities.TitleVersion{
				{
					Language: "en",
					Chapters: []entities.Chapter{
						{ChapterNumber: 1, Title: "First Light"},
						{ChapterNumber: 2, Title: "Perihelion"},
					},
				},
			},
		},
	}

	for i := range demoTitles {
		if err := db.DB.Create(&demoTitles[i]).Error; err != nil {
			return fmt.Errorf("failed to seed title %q: %w", demoTitles[i].Title, err)
		}
		fmt.Printf("Seeded title: %s\n", demoTitles[i].Title)
	}

	return nil
}
