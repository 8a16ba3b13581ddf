// Command mockapi serves the in-memory CMS on a local port so the client
// can be tried without the real backend. Every account uses the password
// in fakeapi.SeedPassword.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/thenoetrevino/agency/internal/fakeapi"
	"github.com/thenoetrevino/agency/internal/models"
)

func main() {
	addr := pflag.String("addr", "127.0.0.1:8000", "listen address")
	demo := pflag.Bool("demo", true, "seed demo tasks, announcements and holidays")
	pflag.Parse()

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	fake := fakeapi.New()
	if *demo {
		seed(fake)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           fake,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("mock CMS starting", "addr", *addr, "api", "http://"+*addr+"/api/v1", "pid", os.Getpid())
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}

	slog.Info("mock CMS shutting down gracefully")
}

func seed(fake *fakeapi.Server) {
	employee := fakeapi.EmployeeID
	manager := fakeapi.ManagerID
	now := time.Now()
	due := models.NewTimestamp(now.AddDate(0, 0, 3))
	late := models.NewTimestamp(now.AddDate(0, 0, -1))

	tasks := []models.Task{
		{Title: "Storyboard launch video", Priority: models.PriorityHigh, AssignedToID: &employee, DueDate: &due},
		{Title: "Shoot B-roll", Priority: models.PriorityMedium, AssignedToID: &employee, Status: models.StatusInProgress, Progress: 40},
		{Title: "Color grade teaser", Priority: models.PriorityUrgent, AssignedToID: &employee, Status: models.StatusReview, Progress: 90, DueDate: &late},
		{Title: "Client kickoff notes", Priority: models.PriorityLow, AssignedToID: &manager, Status: models.StatusCompleted, Progress: 100},
	}
	for _, t := range tasks {
		t.CreatedByID = manager
		fake.SeedTask(t)
	}

	fake.SeedAnnouncement(models.Announcement{
		Title:    "Studio move",
		Content:  "We move to the **new studio** on Monday.\n\n- Pack your desk by Friday\n- Badges are at reception",
		IsActive: true,
	})

	venture := fakeapi.SeedVentureID
	fake.SeedLeave(models.Leave{
		UserID:    employee,
		LeaveType: models.LeaveCasual,
		StartDate: models.NewTimestamp(now.AddDate(0, 0, 14)),
		EndDate:   models.NewTimestamp(now.AddDate(0, 0, 15)),
		Reason:    "Family visit",
		AppliedAt: models.NewTimestamp(now),
	})
	fake.SeedHoliday(models.Holiday{Name: "Founders Day", Date: models.NewTimestamp(now.AddDate(0, 0, 10)), VentureID: &venture})
}
