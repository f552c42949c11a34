package main

import (
	"fmt"
	"time"

	"shiffy/services/weekwindow"

	"github.com/spf13/cobra"
)

type weeksOptions struct {
	date     string
	back     int
	forward  int
	startsOn string
}

func newWeeksCmd() *cobra.Command {
	opts := &weeksOptions{}
	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Print the week starts a client loads around a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			weeks, err := opts.window(time.Now())
			if err != nil {
				return err
			}
			for _, w := range weeks {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "reference date (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&opts.back, "back", 4, "weeks before the reference week")
	cmd.Flags().IntVar(&opts.forward, "forward", 3, "weeks after the reference week")
	cmd.Flags().StringVar(&opts.startsOn, "starts-on", "monday", "first day of the week (monday or sunday)")
	return cmd
}

func (o *weeksOptions) window(now time.Time) ([]string, error) {
	ref := weekwindow.CalendarDate(now)
	if o.date != "" {
		var err error
		if ref, err = weekwindow.ParseISO(o.date); err != nil {
			return nil, err
		}
	}
	startsOn, err := weekwindow.ParseWeekStartsOn(o.startsOn)
	if err != nil {
		return nil, err
	}
	return weekwindow.WeeksToLoad(ref, weekwindow.Config{
		WeeksBack:    o.back,
		WeeksForward: o.forward,
		WeekStartsOn: startsOn,
	})
}
