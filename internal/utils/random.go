package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var firstNames = []string{
	"Alice", "Bob", "Carol", "David", "Emma", "Frank", "Grace", "Henry",
	"Iris", "Jack", "Karen", "Liam", "Mia", "Noah", "Olivia", "Peter",
}
var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Martinez", "Wilson", "Anderson", "Taylor", "Thomas", "Moore",
}

func GenerateRandomUser(password string) (*domain.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	first := firstNames[rand.Intn(len(firstNames))]
	last := lastNames[rand.Intn(len(lastNames))]

	return &domain.User{
		Name:         first + " " + last,
		Email:        fmt.Sprintf("%s.%s%d@example.com", first, last, rand.Intn(1000)),
		PasswordHash: string(passwordHash),
		Role:         domain.RoleUser,
	}, nil
}

var complaintTemplates = []struct {
	Title       string
	Description string
	Category    domain.Category
}{
	{"Defective unit received", "The unit arrived with a cracked casing and does not power on.", domain.CategoryProduct},
	{"Missing parts in package", "The package was missing the mounting brackets listed on the box.", domain.CategoryProduct},
	{"Product stopped working after a week", "The device worked fine for a few days and then stopped charging.", domain.CategoryProduct},
	{"Late delivery", "The order was delivered five days after the promised date.", domain.CategoryService},
	{"Rude support call", "The agent on the phone was dismissive and hung up before resolving my issue.", domain.CategoryService},
	{"Billing error on invoice", "I was charged twice for the same order this month.", domain.CategoryService},
	{"Cannot reset my password", "The reset email never arrives even after several attempts.", domain.CategorySupport},
	{"No response to my ticket", "I opened a support ticket two weeks ago and have heard nothing since.", domain.CategorySupport},
	{"Website checkout keeps failing", "The payment page shows an error at the final step every time.", domain.CategorySupport},
}

var priorities = []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}
var statuses = []domain.Status{domain.StatusPending, domain.StatusInProgress, domain.StatusResolved}

// GenerateRandomComplaint produces a plausible complaint submitted some time
// in the last 90 days. Resolved complaints get a resolution date after the
// submission date.
func GenerateRandomComplaint() *domain.Complaint {
	t := complaintTemplates[rand.Intn(len(complaintTemplates))]

	c := &domain.Complaint{
		Title:         t.Title,
		Description:   t.Description,
		Category:      t.Category,
		Priority:      priorities[rand.Intn(len(priorities))],
		Status:        statuses[rand.Intn(len(statuses))],
		DateSubmitted: time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
	}

	if rand.Intn(2) == 0 {
		c.UserEmail = fmt.Sprintf("customer%d@example.com", rand.Intn(10000))
	}
	if c.Status != domain.StatusPending && rand.Intn(2) == 0 {
		c.AdminNotes = "Followed up with the customer by email."
	}
	if c.Status == domain.StatusResolved {
		resolved := c.DateSubmitted.Add(time.Duration(rand.Intn(72)+1) * time.Hour)
		c.ResolvedDate = &resolved
	}

	return c
}
