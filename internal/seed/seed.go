// Package seed generates the demo dataset loaded by crm-server --seed.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/vinayk98/mini-crm/internal/model"
)

// DefaultLeadCount is the number of leads generated by Run.
const DefaultLeadCount = 1000

// maxAgeDays bounds how far back a generated lead's creation date goes.
const maxAgeDays = 180

var (
	statuses = []string{"new", "contacted", "qualified", "lost"}
	sources  = []string{"website", "referral", "cold call", "social media"}

	companies = []string{
		"TechNova Pvt Ltd",
		"Skyline Solutions",
		"NextGen Technologies",
		"BrightPath Consulting",
		"BlueWave Systems",
		"Vertex Enterprises",
		"Zenith Corp",
		"PrimeEdge Solutions",
		"CodeCraft Labs",
		"InfiniSoft Pvt Ltd",
	}

	firstNames = []string{
		"Rahul", "Priya", "Amit", "Neha", "Vikas", "Anjali", "Rohit",
		"Sneha", "Karan", "Pooja", "Manish", "Divya", "Sandeep", "Ritika",
		"Harsh", "Meera", "Arjun", "Tanvi", "Aditya",
	}

	lastNames = []string{
		"Sharma", "Verma", "Singh", "Kapoor", "Mehta",
		"Gupta", "Kumar", "Reddy", "Malhotra", "Nair",
	}
)

// Account is a demo user together with its plaintext password.
type Account struct {
	User     model.User
	Password string
}

// Accounts are the demo logins created alongside the leads.
var Accounts = []Account{
	{User: model.User{ID: 1, Email: "admin@gmail.com", Role: model.RoleAdmin}, Password: "Admin@123"},
	{User: model.User{ID: 2, Email: "sales@gmail.com", Role: model.RoleSales}, Password: "Sales@123"},
	{User: model.User{ID: 3, Email: "manager@gmail.com", Role: model.RoleManager}, Password: "Manager@123"},
}

// Leads generates n synthetic leads created within the 180 days before
// now. IDs are "1".."n".
func Leads(n int, now time.Time, r *rand.Rand) []model.Lead {
	leads := make([]model.Lead, 0, n)
	for i := 1; i <= n; i++ {
		first := firstNames[r.IntN(len(firstNames))]
		last := lastNames[r.IntN(len(lastNames))]

		status, _ := model.ParseLeadStatus(statuses[r.IntN(len(statuses))])
		source, _ := model.ParseLeadSource(sources[r.IntN(len(sources))])

		assignee := 3
		if r.Float64() > 0.5 {
			assignee = 2
		}

		leads = append(leads, model.Lead{
			ID:         fmt.Sprintf("%d", i),
			Name:       first + " " + last,
			Email:      fmt.Sprintf("lead%d@gmail.com", i),
			Phone:      fmt.Sprintf("9%d", 100000000+r.IntN(900000000)),
			Status:     status,
			Source:     source,
			Company:    companies[r.IntN(len(companies))],
			AssignedTo: assignee,
			CreatedAt:  now.AddDate(0, 0, -r.IntN(maxAgeDays)).UTC(),
		})
	}
	return leads
}

// Target is the subset of the store the seeder writes to.
type Target interface {
	CountLeads(ctx context.Context) (int, error)
	InsertLeads(ctx context.Context, leads []model.Lead) error
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, u model.User, password string) (*model.User, error)
}

// Run loads the demo users and leads into an empty store. Collections that
// already hold data are left untouched.
func Run(ctx context.Context, t Target, n int, logger *slog.Logger) error {
	users, err := t.CountUsers(ctx)
	if err != nil {
		return err
	}
	if users == 0 {
		for _, a := range Accounts {
			if _, err := t.CreateUser(ctx, a.User, a.Password); err != nil {
				return fmt.Errorf("seeding user %s: %w", a.User.Email, err)
			}
		}
		logger.InfoContext(ctx, "seeded users", "count", len(Accounts))
	} else {
		logger.InfoContext(ctx, "users already present, skipping", "count", users)
	}

	leads, err := t.CountLeads(ctx)
	if err != nil {
		return err
	}
	if leads > 0 {
		logger.InfoContext(ctx, "leads already present, skipping", "count", leads)
		return nil
	}

	now := time.Now()
	r := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
	if err := t.InsertLeads(ctx, Leads(n, now, r)); err != nil {
		return fmt.Errorf("seeding leads: %w", err)
	}
	logger.InfoContext(ctx, "seeded leads", "count", n)
	return nil
}
