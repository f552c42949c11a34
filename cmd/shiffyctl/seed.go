package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"shiffy/config"
	"shiffy/database"
	preferenceRepo "shiffy/database/repository/preference"
	scheduleRepo "shiffy/database/repository/schedule"
	"shiffy/models"
	"shiffy/services/schedule"
	"shiffy/services/weekwindow"
	"shiffy/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mockNames = []string{
	"Ana", "Ben", "Chloe", "Dario", "Emma", "Femi", "Greta", "Hiro",
	"Ines", "Jonas", "Kemi", "Lena", "Marco", "Nadia", "Omar", "Paula",
}

type preferenceSubmitter interface {
	SubmitPreferences(ctx context.Context, shopID, employeeID string, req models.SubmitPreferencesRequest) ([]models.ShiftPreference, error)
}

type seedOptions struct {
	shopID    string
	employees int
	week      string
	seed      int64
}

func newSeedCmd() *cobra.Command {
	opts := &seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write mock shift preferences for a shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.LoadConfig()
			logger := utils.GetLogger()
			window, err := config.AppConfig.WindowConfig()
			if err != nil {
				return err
			}

			database.InitDB()
			defer database.Disconnect(context.Background())

			svc := &schedule.DefaultScheduleService{
				Schedules:   scheduleRepo.NewMongoScheduleRepo(),
				Preferences: preferenceRepo.NewMongoPreferenceRepo(),
				StartsOn:    window.WeekStartsOn,
				Logger:      logger,
			}

			n, err := opts.run(cmd.Context(), svc, window.WeekStartsOn, time.Now().In(config.AppConfig.Location()))
			if err != nil {
				return err
			}
			logger.Info("Seeded preferences", zap.String("shopId", opts.shopID), zap.Int("employees", n))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d employees for shop %s\n", n, opts.shopID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.shopID, "shop", "", "shop ID to seed")
	cmd.Flags().IntVar(&opts.employees, "employees", 6, "number of mock employees")
	cmd.Flags().StringVar(&opts.week, "week", "", "week start (YYYY-MM-DD), defaults to next week")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "random seed")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func (o *seedOptions) run(ctx context.Context, svc preferenceSubmitter, startsOn weekwindow.WeekStartsOn, now time.Time) (int, error) {
	if o.employees <= 0 || o.employees > len(mockNames) {
		return 0, fmt.Errorf("--employees must be between 1 and %d", len(mockNames))
	}
	weekStart := weekwindow.WeekStart(now, startsOn).AddDate(0, 0, 7)
	if o.week != "" {
		var err error
		if weekStart, err = weekwindow.NormalizeWeekStart(o.week, startsOn); err != nil {
			return 0, err
		}
	}

	rng := rand.New(rand.NewSource(o.seed))
	for i, req := range MockPreferences(o.employees, weekStart, rng) {
		employeeID := fmt.Sprintf("emp-%02d", i+1)
		if _, err := svc.SubmitPreferences(ctx, o.shopID, employeeID, req); err != nil {
			return i, fmt.Errorf("seed %s: %w", employeeID, err)
		}
	}
	return o.employees, nil
}

// MockPreferences builds one submission per employee covering every shift of
// the week. Roughly half the slots are available, a quarter preferred.
func MockPreferences(employees int, weekStart time.Time, rng *rand.Rand) []models.SubmitPreferencesRequest {
	days := weekwindow.WeekDates(weekStart)
	week := weekwindow.FormatISO(weekStart)

	out := make([]models.SubmitPreferencesRequest, 0, employees)
	for i := 0; i < employees; i++ {
		req := models.SubmitPreferencesRequest{
			WeekStart:    week,
			EmployeeName: mockNames[i%len(mockNames)],
		}
		for _, day := range days {
			for _, shift := range models.Shifts {
				availability := models.AvailabilityAvailable
				switch rng.Intn(4) {
				case 0:
					availability = models.AvailabilityPreferred
				case 1:
					availability = models.AvailabilityUnavailable
				}
				req.Entries = append(req.Entries, models.PreferenceEntry{
					Date:         day,
					Shift:        shift,
					Availability: availability,
				})
			}
		}
		out = append(out, req)
	}
	return out
}
