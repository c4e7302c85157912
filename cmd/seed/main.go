// seed populates the database with a demo user and synthetic leads for local
// development.
//
// Usage: go run ./cmd/seed [-email demo@example.com] [-password demo1234] [-leads 100]
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/leads-api/internal/application/auth"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/infrastructure/postgres"
	"github.com/jhoicas/leads-api/pkg/config"
)

var firstNames = []string{"Ana", "Carlos", "Diana", "Esteban", "Fernanda", "Gabriel", "Helena", "Ivan", "Julia", "Kevin"}
var lastNames = []string{"Garcia", "Lopez", "Martinez", "Rodriguez", "Hernandez", "Perez", "Sanchez", "Ramirez", "Torres", "Castro"}
var companies = []string{"Acme Corp", "Globex", "Initech", "Umbrella", "Stark Industries", "Wayne Enterprises", "Hooli", "Vandelay", "Dunder Mifflin", "Soylent"}
var cities = []struct{ city, state string }{
	{"Bogota", "Cundinamarca"},
	{"Medellin", "Antioquia"},
	{"Cali", "Valle del Cauca"},
	{"Barranquilla", "Atlantico"},
	{"Cartagena", "Bolivar"},
	{"Bucaramanga", "Santander"},
}

func main() {
	email := flag.String("email", "demo@example.com", "demo user email")
	password := flag.String("password", "demo1234", "demo user password")
	count := flag.Int("leads", 100, "number of leads to insert")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "PostgreSQL connection: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)

	user, err := userRepo.FindByEmail(ctx, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "find demo user: %v\n", err)
		os.Exit(1)
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), auth.BcryptCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
			os.Exit(1)
		}
		user = &entity.User{
			ID:           uuid.New().String(),
			Email:        *email,
			PasswordHash: string(hash),
			Name:         "Demo User",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			fmt.Fprintf(os.Stderr, "create demo user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created user %s\n", user.Email)
	} else {
		fmt.Printf("Reusing existing user %s\n", user.Email)
	}

	sources := entity.Sources()
	statuses := entity.Statuses()
	inserted := 0
	for i := 0; i < *count; i++ {
		fn := firstNames[rand.Intn(len(firstNames))]
		ln := lastNames[rand.Intn(len(lastNames))]
		loc := cities[rand.Intn(len(cities))]
		status := statuses[i%len(statuses)]
		now := time.Now()

		var lastActivity *time.Time
		if rand.Intn(4) > 0 {
			t := now.Add(-time.Duration(rand.Intn(90*24)) * time.Hour)
			lastActivity = &t
		}

		lead := &entity.Lead{
			ID:             uuid.New().String(),
			UserID:         user.ID,
			FirstName:      fn,
			LastName:       ln,
			Email:          fmt.Sprintf("%s.%s.%d@example.com", fn, ln, i),
			Phone:          fmt.Sprintf("+57 30%d %07d", rand.Intn(10), rand.Intn(10000000)),
			Company:        companies[rand.Intn(len(companies))],
			City:           loc.city,
			State:          loc.state,
			Source:         sources[i%len(sources)],
			Status:         status,
			Score:          rand.Intn(101),
			LeadValue:      decimal.NewFromInt(int64(1000 + rand.Intn(100001))),
			LastActivityAt: lastActivity,
			IsQualified:    status == entity.StatusQualified || status == entity.StatusWon,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := leadRepo.Create(ctx, lead); err != nil {
			fmt.Fprintf(os.Stderr, "insert lead %d: %v\n", i, err)
			os.Exit(1)
		}
		inserted++
	}

	fmt.Printf("Inserted %d leads for %s\n", inserted, user.Email)
}
