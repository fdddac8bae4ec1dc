package main

import (
	"fmt"
	"log"

	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/theatres"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting CineBook Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"seats",
		"showtimes",
		"theatres",
		"movies",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	movieIDs, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	theatreIDs, err := s.SeedTheatres()
	if err != nil {
		return fmt.Errorf("failed to seed theatres: %w", err)
	}

	if err := s.SeedShowtimes(movieIDs, theatreIDs); err != nil {
		return fmt.Errorf("failed to seed showtimes: %w", err)
	}

	return nil
}

// SeedUsers creates an admin and a demo customer
func (s *Seeder) SeedUsers() error {
	fmt.Println("  Seeding users...")

	seedUsers := []struct {
		name     string
		email    string
		password string
		role     users.Role
		phone    string
	}{
		{"Admin", "admin@cinebook.com", "admin123", users.RoleAdmin, "9800000001"},
		{"Demo User", "demo@cinebook.com", "demo1234", users.RoleUser, "9800000002"},
	}

	for _, u := range seedUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.email, err)
		}

		user := users.User{
			Name:     u.name,
			Email:    u.email,
			Password: string(hashed),
			Role:     u.role,
			Phone:    u.phone,
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.email, err)
		}
		fmt.Printf("    Created %s user: %s\n", u.role, u.email)
	}

	return nil
}

// SeedMovies loads the bundled catalog into primary storage
func (s *Seeder) SeedMovies() (map[string]uuid.UUID, error) {
	fmt.Println("  Seeding movies...")

	movieIDs := make(map[string]uuid.UUID)
	for _, record := range movies.SeedRecords() {
		movie := record.ToMovie()
		if err := s.db.PostgreSQL.Create(&movie).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", movie.Title, err)
		}
		movieIDs[movie.Title] = movie.ID
		fmt.Printf("    Created movie: %s\n", movie.Title)
	}

	return movieIDs, nil
}

// SeedTheatres creates the three venues with their price multipliers
func (s *Seeder) SeedTheatres() (map[string]uuid.UUID, error) {
	fmt.Println("  Seeding theatres...")

	seedTheatres := []theatres.Theatre{
		{Name: "Grand Cinema", Location: "Downtown", PriceMultiplier: 1.0},
		{Name: "City Plex", Location: "Mall Road", PriceMultiplier: 1.2},
		{Name: "IMAX Arena", Location: "Tech Park", PriceMultiplier: 1.5},
	}

	theatreIDs := make(map[string]uuid.UUID)
	for i := range seedTheatres {
		if err := s.db.PostgreSQL.Create(&seedTheatres[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create theatre %s: %w", seedTheatres[i].Name, err)
		}
		theatreIDs[seedTheatres[i].Name] = seedTheatres[i].ID
		fmt.Printf("    Created theatre: %s (x%.1f)\n", seedTheatres[i].Name, seedTheatres[i].PriceMultiplier)
	}

	return theatreIDs, nil
}

// SeedShowtimes creates the recurring daily slots. Dates are not stored;
// the API projects slots onto the rolling booking window.
func (s *Seeder) SeedShowtimes(movieIDs, theatreIDs map[string]uuid.UUID) error {
	fmt.Println("  Seeding showtimes...")

	slots := []struct {
		movie   string
		theatre string
		times   []string
	}{
		{"Inception", "Grand Cinema", []string{"10:30", "18:45"}},
		{"Inception", "IMAX Arena", []string{"21:00"}},
		{"The Dark Knight", "City Plex", []string{"20:30"}},
		{"The Dark Knight", "Grand Cinema", []string{"16:30"}},
		{"Interstellar", "IMAX Arena", []string{"14:00", "20:45"}},
		{"Avengers: Endgame", "City Plex", []string{"19:15"}},
		{"Parasite", "Grand Cinema", []string{"22:00"}},
		{"Joker", "City Plex", []string{"17:00"}},
		{"Dune", "IMAX Arena", []string{"18:45"}},
		{"The Matrix", "Grand Cinema", []string{"20:30"}},
		{"Titanic", "City Plex", []string{"14:00"}},
		{"Oppenheimer", "IMAX Arena", []string{"19:15"}},
	}

	count := 0
	for _, slot := range slots {
		movieID, ok := movieIDs[slot.movie]
		if !ok {
			return fmt.Errorf("unknown movie in slot table: %s", slot.movie)
		}
		theatreID, ok := theatreIDs[slot.theatre]
		if !ok {
			return fmt.Errorf("unknown theatre in slot table: %s", slot.theatre)
		}

		for _, t := range slot.times {
			showtime := showtimes.Showtime{
				MovieID:   movieID,
				TheatreID: theatreID,
				Time:      t,
			}
			if err := s.db.PostgreSQL.Create(&showtime).Error; err != nil {
				return fmt.Errorf("failed to create showtime %s/%s %s: %w", slot.movie, slot.theatre, t, err)
			}
			count++
		}
	}

	fmt.Printf("    Created %d showtimes\n", count)
	return nil
}
