package seeders

import (
	"coachpoint_go/database"
	"coachpoint_go/models"
	"coachpoint_go/utils"
	"log"
	"time"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedLocations()
	SeedSports()
	SeedUsers()
	SeedBatches()
	SeedEnrollments()

	log.Println("Database seeding completed successfully!")
}

// SeedLocations seeds the locations table
func SeedLocations() {
	var count int64
	database.DB.Model(&models.Location{}).Count(&count)
	if count > 0 {
		log.Println("Locations already seeded, skipping...")
		return
	}

	locations := []models.Location{
		{
			BaseModel: models.BaseModel{ID: 1},
			Name:      "Riverside Sports Complex",
			Code:      "RIVERSIDE",
			Address:   "42 Riverside Road",
			City:      "Pune",
			Phone:     "020-2612345",
			Active:    true,
		},
		{
			BaseModel: models.BaseModel{ID: 2},
			Name:      "Northside Academy Grounds",
			Code:      "NORTH",
			Address:   "15 Hill View Lane",
			City:      "Pune",
			Phone:     "020-2612346",
			Active:    true,
		},
	}

	for _, location := range locations {
		if err := database.DB.Create(&location).Error; err != nil {
			log.Printf("Error seeding location %s: %v", location.Code, err)
		}
	}

	log.Println("Locations seeded successfully")
}

// SeedSports seeds the sports table
func SeedSports() {
	var count int64
	database.DB.Model(&models.Sport{}).Count(&count)
	if count > 0 {
		log.Println("Sports already seeded, skipping...")
		return
	}

	sports := []models.Sport{
		{BaseModel: models.BaseModel{ID: 1}, Name: "Cricket", Code: "CRICKET", Description: "Cricket coaching for all age groups", Active: true},
		{BaseModel: models.BaseModel{ID: 2}, Name: "Football", Code: "FOOTBALL", Description: "Football training and league preparation", Active: true},
		{BaseModel: models.BaseModel{ID: 3}, Name: "Badminton", Code: "BADMINTON", Description: "Badminton coaching, beginner to competitive", Active: true},
		{BaseModel: models.BaseModel{ID: 4}, Name: "Swimming", Code: "SWIM", Description: "Swimming lessons and stroke correction", Active: true},
	}

	for _, sport := range sports {
		if err := database.DB.Create(&sport).Error; err != nil {
			log.Printf("Error seeding sport %s: %v", sport.Code, err)
		}
	}

	log.Println("Sports seeded successfully")
}

// SeedUsers seeds the users table with an admin, coaches and students
func SeedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return
	}

	hashedPassword, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			BaseModel: models.BaseModel{ID: 1},
			Username:  "admin",
			Password:  hashedPassword,
			Email:     "admin@coachpoint.in",
			Phone:     "9810000001",
			FullName:  "Academy Admin",
			Role:      "admin",
			Status:    "active",
		},
		{
			BaseModel: models.BaseModel{ID: 2},
			Username:  "coach_rahul",
			Password:  hashedPassword,
			Email:     "rahul@coachpoint.in",
			Phone:     "9810000002",
			FullName:  "Rahul Deshmukh",
			Role:      "coach",
			Status:    "active",
		},
		{
			BaseModel: models.BaseModel{ID: 3},
			Username:  "coach_meera",
			Password:  hashedPassword,
			Email:     "meera@coachpoint.in",
			Phone:     "9810000003",
			FullName:  "Meera Kulkarni",
			Role:      "coach",
			Status:    "active",
		},
		{
			BaseModel: models.BaseModel{ID: 4},
			Username:  "arjun_s",
			Password:  hashedPassword,
			Email:     "arjun@gmail.com",
			Phone:     "9820000001",
			FullName:  "Arjun Shinde",
			Role:      "student",
			Status:    "active",
		},
		{
			BaseModel: models.BaseModel{ID: 5},
			Username:  "priya_j",
			Password:  hashedPassword,
			Email:     "priya@gmail.com",
			Phone:     "9820000002",
			FullName:  "Priya Joshi",
			Role:      "student",
			Status:    "active",
		},
		{
			BaseModel: models.BaseModel{ID: 6},
			Username:  "kabir_m",
			Password:  hashedPassword,
			Email:     "kabir@gmail.com",
			Phone:     "9820000003",
			FullName:  "Kabir Mehta",
			Role:      "student",
			Status:    "active",
		},
		{
			BaseModel: models.BaseModel{ID: 7},
			Username:  "sana_k",
			Password:  hashedPassword,
			Email:     "sana@gmail.com",
			Phone:     "9820000004",
			FullName:  "Sana Khan",
			Role:      "student",
			Status:    "active",
		},
	}

	for _, user := range users {
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Error seeding user %s: %v", user.Username, err)
		}
	}

	coaches := []models.Coach{
		{UserID: 2, FirstName: "Rahul", LastName: "Deshmukh", Specializations: "Cricket, Fitness", Certifications: "BCCI Level 2", HourlyRate: 800, Active: true},
		{UserID: 3, FirstName: "Meera", LastName: "Kulkarni", Specializations: "Badminton", Certifications: "BWF Level 1", HourlyRate: 700, Active: true},
	}
	for _, coach := range coaches {
		if err := database.DB.Create(&coach).Error; err != nil {
			log.Printf("Error seeding coach profile for user %d: %v", coach.UserID, err)
		}
	}

	dob := func(year, month, day int) *time.Time {
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &t
	}
	students := []models.Student{
		{UserID: 4, FirstName: "Arjun", LastName: "Shinde", DateOfBirth: dob(2011, 4, 12), Gender: "male", GuardianName: "Vikram Shinde", GuardianPhone: "9830000001"},
		{UserID: 5, FirstName: "Priya", LastName: "Joshi", DateOfBirth: dob(2010, 9, 3), Gender: "female", GuardianName: "Anita Joshi", GuardianPhone: "9830000002"},
		{UserID: 6, FirstName: "Kabir", LastName: "Mehta", DateOfBirth: dob(2012, 1, 25), Gender: "male", GuardianName: "Rohit Mehta", GuardianPhone: "9830000003"},
		{UserID: 7, FirstName: "Sana", LastName: "Khan", DateOfBirth: dob(2011, 7, 18), Gender: "female", GuardianName: "Farah Khan", GuardianPhone: "9830000004"},
	}
	for _, student := range students {
		if err := database.DB.Create(&student).Error; err != nil {
			log.Printf("Error seeding student profile for user %d: %v", student.UserID, err)
		}
	}

	log.Println("Users seeded successfully")
}

// SeedBatches seeds the batches table
func SeedBatches() {
	var count int64
	database.DB.Model(&models.Batch{}).Count(&count)
	if count > 0 {
		log.Println("Batches already seeded, skipping...")
		return
	}

	batches := []models.Batch{
		{
			BaseModel:   models.BaseModel{ID: 1},
			SportID:     1,
			LocationID:  1,
			Name:        "Cricket U-14 Evening",
			Description: "Under-14 cricket batch, batting and bowling fundamentals",
			Schedule:    models.JSON(`[{"day":"monday","start_time":"17:00"},{"day":"wednesday","start_time":"17:00"},{"day":"friday","start_time":"17:00"}]`),
			AgeGroup:    "U-14",
			MaxStudents: 20,
			Status:      "active",
		},
		{
			BaseModel:   models.BaseModel{ID: 2},
			SportID:     3,
			LocationID:  2,
			Name:        "Badminton Beginners Morning",
			Description: "Beginner badminton, footwork and basic strokes",
			Schedule:    models.JSON(`[{"day":"tuesday","start_time":"07:00"},{"day":"thursday","start_time":"07:00"}]`),
			AgeGroup:    "Open",
			MaxStudents: 12,
			Status:      "active",
		},
		{
			BaseModel:   models.BaseModel{ID: 3},
			SportID:     2,
			LocationID:  1,
			Name:        "Football Weekend Squad",
			Description: "Weekend football training with match practice",
			Schedule:    models.JSON(`[{"day":"saturday","start_time":"08:00"},{"day":"sunday","start_time":"08:00"}]`),
			AgeGroup:    "U-16",
			MaxStudents: 24,
			Status:      "active",
		},
	}

	for _, batch := range batches {
		if err := database.DB.Create(&batch).Error; err != nil {
			log.Printf("Error seeding batch %s: %v", batch.Name, err)
		}
	}

	log.Println("Batches seeded successfully")
}

// SeedEnrollments seeds the enrollments table
func SeedEnrollments() {
	var count int64
	database.DB.Model(&models.Enrollment{}).Count(&count)
	if count > 0 {
		log.Println("Enrollments already seeded, skipping...")
		return
	}

	enrollments := []models.Enrollment{
		{UserID: 4, BatchID: 1, EnrollmentStatus: "active", SessionsTotal: 24},
		{UserID: 5, BatchID: 1, EnrollmentStatus: "active", SessionsTotal: 24},
		{UserID: 6, BatchID: 2, EnrollmentStatus: "active", SessionsTotal: 16},
		{UserID: 7, BatchID: 3, EnrollmentStatus: "active", SessionsTotal: 20},
	}

	for _, enrollment := range enrollments {
		if err := database.DB.Create(&enrollment).Error; err != nil {
			log.Printf("Error seeding enrollment for user %d: %v", enrollment.UserID, err)
		}
	}

	log.Println("Enrollments seeded successfully")
}
