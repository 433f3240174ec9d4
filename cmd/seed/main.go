package main

import (
	"log"
	"os"

	"ai-coaching-be/internal/model"
	"ai-coaching-be/pkg/database"
	"ai-coaching-be/pkg/doctrine"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo user with contacts and a want so the coach has something
// to talk about on a fresh database. Safe to run twice: the demo user is
// looked up by email first.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Doctrine sanity check before touching the database.
	spec := doctrine.Default()
	color.Cyan("Doctrine version %s: %d events, %d guardrails", spec.Version, len(spec.Events), len(spec.Guardrails))

	var existing model.User
	if err := db.Where("email = ?", "demo@example.com").First(&existing).Error; err == nil {
		color.Yellow("Demo user already exists (%s), nothing to do", existing.Id)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error: Failed to hash password: %v", err)
		os.Exit(1)
	}
	hashStr := string(hash)

	user := model.User{
		Id:           uuid.New(),
		Email:        "demo@example.com",
		PasswordHash: &hashStr,
		FullName:     "Demo User",
	}
	if err := db.Create(&user).Error; err != nil {
		color.Red("Error: Failed to create demo user: %v", err)
		os.Exit(1)
	}
	color.Green("Created demo user %s", user.Id)

	contacts := []model.Contact{
		{Id: uuid.New(), UserId: user.Id, Name: "Alex Rivera", Relationship: "manager"},
		{Id: uuid.New(), UserId: user.Id, Name: "Sam Chen", Relationship: "friend"},
	}
	for _, contact := range contacts {
		if err := db.Create(&contact).Error; err != nil {
			color.Red("Error: Failed to create contact %s: %v", contact.Name, err)
			os.Exit(1)
		}
		color.Green("Created contact %s (%s)", contact.Name, contact.Relationship)
	}

	want := model.Want{
		Id:          uuid.New(),
		UserId:      user.Id,
		Title:       "Run a half marathon",
		Description: "Finish a half marathon before the end of the year",
		Status:      "active",
	}
	if err := db.Create(&want).Error; err != nil {
		color.Red("Error: Failed to create want: %v", err)
		os.Exit(1)
	}

	steps := []model.WantStep{
		{Id: uuid.New(), WantId: want.Id, Description: "Run 5k three times a week", Position: 0},
		{Id: uuid.New(), WantId: want.Id, Description: "Complete a 10k race", Position: 1},
	}
	for _, step := range steps {
		if err := db.Create(&step).Error; err != nil {
			color.Red("Error: Failed to create want step: %v", err)
			os.Exit(1)
		}
	}

	metricType := model.WantMetricType{
		Id:     uuid.New(),
		WantId: want.Id,
		Name:   "weekly distance",
		Unit:   "km",
	}
	if err := db.Create(&metricType).Error; err != nil {
		color.Red("Error: Failed to create metric type: %v", err)
		os.Exit(1)
	}

	color.Green("Created want %q with %d steps and 1 metric type", want.Title, len(steps))
	color.Cyan("Seed complete. Login with demo@example.com / demo-password")
}
