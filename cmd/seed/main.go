package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"seatly/internal/layouts"
	"seatly/internal/reservations"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/internal/waitlist"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
}

func main() {
	fmt.Println("🌱 Starting Seatly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, cfg: cfg}

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

	seeder.PrintStaffKeyHash()

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"seat_allocations",
		"waitlist_entries",
		"reservations",
		"seats",
		"sections",
		"layouts",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll creates a demo floor plan, activates it and fills the books
// with a few reservations and a short waitlist.
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	layoutService := layouts.NewService(layouts.NewRepository(s.db.GetPostgreSQL()))

	layout, err := layoutService.CreateLayout(ctx, layouts.CreateLayoutRequest{
		Name: "Main Dining Room",
		Sections: []layouts.SectionDraft{
			{Name: "T1", Kind: layouts.KindTable, Floor: 1, OffsetX: 140, OffsetY: 160, SeatCount: 4},
			{Name: "T2", Kind: layouts.KindTable, Floor: 1, OffsetX: 360, OffsetY: 160, SeatCount: 2},
			{Name: "T3", Kind: layouts.KindTable, Floor: 1, OffsetX: 250, OffsetY: 340, SeatCount: 6},
			{Name: "C1", Kind: layouts.KindCounter, Orientation: layouts.OrientationHorizontal, Floor: 1, OffsetX: 80, OffsetY: 60, SeatCount: 6},
			{Name: "T4", Kind: layouts.KindTable, Floor: 2, OffsetX: 180, OffsetY: 180, SeatCount: 8},
			{Name: "C2", Kind: layouts.KindCounter, Orientation: layouts.OrientationVertical, Floor: 2, OffsetX: 420, OffsetY: 100, SeatCount: 4},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create demo layout: %w", err)
	}

	if err := layoutService.ActivateLayout(ctx, layout.ID.String()); err != nil {
		return fmt.Errorf("failed to activate demo layout: %w", err)
	}
	fmt.Printf("   📐 Layout %q created and activated (%d sections)\n", layout.Name, len(layout.Sections))

	if err := s.seedReservations(ctx); err != nil {
		return err
	}
	return s.seedWaitlist(ctx)
}

// seedReservations inserts directly; the availability subsystem is not
// part of a local seed.
func (s *Seeder) seedReservations(ctx context.Context) error {
	loc := s.cfg.Location()
	tonight := time.Now().In(loc).Truncate(24 * time.Hour).Add(time.Duration(s.cfg.Seating.DefaultStartHour) * time.Hour)

	repo := reservations.NewRepository(s.db.GetPostgreSQL())
	demo := []reservations.Reservation{
		{
			ID:              uuid.New(),
			GuestName:       "Sato Yuki",
			Phone:           "+81-90-1111-2222",
			PartySize:       2,
			Status:          reservations.StatusBooked,
			StartTime:       tonight,
			DurationMinutes: 60,
			SeatPreferences: reservations.SeatPreferences{{"T1-A", "T1-B"}, {"T2-A", "T2-B"}},
		},
		{
			ID:              uuid.New(),
			GuestName:       "Tanaka Hiroshi",
			Phone:           "+81-90-3333-4444",
			PartySize:       4,
			Status:          reservations.StatusBooked,
			StartTime:       tonight.Add(30 * time.Minute),
			DurationMinutes: 90,
			SeatPreferences: reservations.SeatPreferences{{"T3-A", "T3-B", "T3-C", "T3-D"}},
		},
		{
			ID:              uuid.New(),
			GuestName:       "Yamamoto Aiko",
			PartySize:       1,
			Status:          reservations.StatusBooked,
			StartTime:       tonight.Add(time.Hour),
			DurationMinutes: 60,
		},
	}

	for i := range demo {
		if err := repo.Create(ctx, &demo[i]); err != nil {
			return fmt.Errorf("failed to seed reservation %s: %w", demo[i].GuestName, err)
		}
	}
	fmt.Printf("   📅 %d reservations seeded\n", len(demo))
	return nil
}

func (s *Seeder) seedWaitlist(ctx context.Context) error {
	repo := waitlist.NewRepository(s.db.GetPostgreSQL())
	now := time.Now()
	demo := []waitlist.WaitlistEntry{
		{ID: uuid.New(), GuestName: "Suzuki Ren", PartySize: 3, Status: waitlist.StatusWaiting, CheckInTime: now.Add(-25 * time.Minute)},
		{ID: uuid.New(), GuestName: "Kobayashi Mei", PartySize: 2, Status: waitlist.StatusWaiting, CheckInTime: now.Add(-10 * time.Minute)},
	}

	for i := range demo {
		if err := repo.Create(ctx, &demo[i]); err != nil {
			return fmt.Errorf("failed to seed waitlist entry %s: %w", demo[i].GuestName, err)
		}
	}
	fmt.Printf("   ⏳ %d waitlist entries seeded\n", len(demo))
	return nil
}

// PrintStaffKeyHash prints a bcrypt hash for the demo staff key so it
// can be dropped into STAFF_KEY_HASH for local testing.
func (s *Seeder) PrintStaffKeyHash() {
	hash, err := bcrypt.GenerateFromPassword([]byte("staff-key-dev"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to generate staff key hash: %v", err)
		return
	}
	fmt.Printf("\n🔑 Demo staff key: staff-key-dev\n   STAFF_KEY_HASH=%s\n", string(hash))
}
