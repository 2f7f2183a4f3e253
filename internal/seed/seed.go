package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
	"github.com/fieldshift-dev/workforce-manager/backend/internal/repository"
	"github.com/fieldshift-dev/workforce-manager/backend/internal/utils"
)

func SeedRandomUsers(r *repository.Repository, n int, password string, emailDomain string) {
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("unable to generate user", "error", err)
			continue
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("unable to insert user", "error", err)
			continue
		}
	}

	slog.Info("users seeded", "count", n)
}

var demoJobs = []domain.Job{
	{
		Title:       "Downtown Warehouse",
		Description: "Receiving and order picking",
		Phone:       "555-0134",
		Email:       "warehouse@fieldshift.example",
		Location: domain.JobLocation{
			Lat:     40.712776,
			Lon:     -74.005974,
			Radius:  150,
			Address: "23 Water St, New York, NY",
		},
		ColorCode: "#1e88e5",
		Code:      "WH-01",
	},
	{
		Title:       "Riverside Care Home",
		Description: "Care assistance, day and night shifts",
		Phone:       "555-0178",
		Email:       "care@fieldshift.example",
		Location: domain.JobLocation{
			Lat:    40.729030,
			Lon:    -73.996712,
			Radius: 80,
		},
		ColorCode: "#43a047",
		Code:      "CH-02",
	},
	{
		Title: "Airport Catering",
		Phone: "555-0110",
		Location: domain.JobLocation{
			Lat: 40.641311,
			Lon: -73.778139,
			// no radius: the default applies
		},
		Code: "AC-03",
	},
}

func SeedDemoJobs(r *repository.Repository) {
	for i := range demoJobs {
		job := demoJobs[i]
		if err := r.CreateJob(&job); err != nil {
			slog.Error("unable to insert job", "error", err)
			continue
		}
	}

	slog.Info("jobs seeded", "count", len(demoJobs))
}

var shiftTypes = []string{"morning", "afternoon", "night"}

func SeedRandomShifts(r *repository.Repository, n int) {
	jobs, err := r.GetAllJobs()
	if err != nil {
		slog.Error("unable to list jobs", "error", err)
		return
	}
	if len(jobs) == 0 {
		slog.Error("no jobs available, seed jobs first")
		return
	}

	for i := 0; i < n; i++ {
		job := jobs[rand.Intn(len(jobs))]
		day := time.Now().AddDate(0, 0, rand.Intn(14)+1)
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
		start := date.Add(time.Duration(6+rand.Intn(12)) * time.Hour)
		end := start.Add(time.Duration(4+rand.Intn(6)) * time.Hour)

		shift := &domain.Shift{
			Title:           job.Title + " shift",
			Type:            shiftTypes[rand.Intn(len(shiftTypes))],
			Date:            date,
			StartDate:       date,
			EndDate:         date,
			StartTime:       start,
			EndTime:         end,
			JobID:           job.ID,
			RequiredSkills:  "general",
			MaxEmployees:    int32(1 + rand.Intn(5)),
			BreakDuration:   int32(rand.Intn(4) * 15),
			Status:          domain.ShiftStatusOpen,
			AssignedUserIDs: make([]int64, 0),
			ClockRecords:    make([]domain.ClockRecord, 0),
			ChangeRequests:  make([]domain.ClockInChangeRequest, 0),
		}

		if err := r.CreateShift(shift); err != nil {
			slog.Error("unable to insert shift", "error", err)
			continue
		}
	}

	slog.Info("shifts seeded", "count", n)
}
