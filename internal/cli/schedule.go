package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/example/microfarm/internal/core/validate"
	"github.com/example/microfarm/internal/ports/primary"
	"github.com/example/microfarm/internal/wire"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show delivery, production and transfer schedules",
}

// scheduleWindow resolves the report window flags. Without flags the week
// containing today is shown.
func scheduleWindow(cmd *cobra.Command) (primary.Window, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	week, _ := cmd.Flags().GetString("week")

	if week != "" {
		day, err := validate.Date(week)
		if err != nil {
			return primary.Window{}, err
		}
		return primary.WeekOf(day), nil
	}
	if from == "" && to == "" {
		return primary.WeekOf(time.Now()), nil
	}

	win := primary.WeekOf(time.Now())
	if from != "" {
		d, err := validate.Date(from)
		if err != nil {
			return primary.Window{}, err
		}
		win.Start = d
	}
	if to != "" {
		d, err := validate.Date(to)
		if err != nil {
			return primary.Window{}, err
		}
		win.End = d
	}
	return win, nil
}

var scheduleDeliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "What to deliver to whom",
	RunE: func(cmd *cobra.Command, args []string) error {
		win, err := scheduleWindow(cmd)
		if err != nil {
			return err
		}
		return wire.ScheduleAdapter().Deliveries(cmd.Context(), win)
	},
}

var scheduleProductionCmd = &cobra.Command{
	Use:   "production",
	Short: "What to sow per day, summed across customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		win, err := scheduleWindow(cmd)
		if err != nil {
			return err
		}
		return wire.ScheduleAdapter().Production(cmd.Context(), win)
	},
}

var scheduleTransfersCmd = &cobra.Command{
	Use:   "transfers",
	Short: "What to move onto growth substrate per day",
	RunE: func(cmd *cobra.Command, args []string) error {
		win, err := scheduleWindow(cmd)
		if err != nil {
			return err
		}
		return wire.ScheduleAdapter().Transfers(cmd.Context(), win)
	},
}

func registerWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Window start (dd.mm.yyyy), defaults to Monday of this week")
	cmd.Flags().String("to", "", "Window end (dd.mm.yyyy), defaults to Sunday of this week")
	cmd.Flags().String("week", "", "Show the week containing this date")
}

func init() {
	registerWindowFlags(scheduleDeliveriesCmd)
	registerWindowFlags(scheduleProductionCmd)
	registerWindowFlags(scheduleTransfersCmd)

	scheduleCmd.AddCommand(scheduleDeliveriesCmd)
	scheduleCmd.AddCommand(scheduleProductionCmd)
	scheduleCmd.AddCommand(scheduleTransfersCmd)
}

// ScheduleCmd returns the schedule command
func ScheduleCmd() *cobra.Command {
	return scheduleCmd
}
