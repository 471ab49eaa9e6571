package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"roseboard/backend/internal/affirmation"
	"roseboard/backend/internal/client"
)

func newMessageCmd(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "message",
		Short: "Print today's end-of-day message",
		Long: `Print today's end-of-day message. The message is fetched from the
backend once per day and cached locally.

With --date the message for that day is generated locally, e.g.
  roseboard message --date "Thu Jan 02 2025"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				if _, err := time.Parse(affirmation.DateKeyLayout, date); err != nil {
					return fmt.Errorf("invalid --date %q, expected a day like %q", date, affirmation.DateKeyLayout)
				}
				fmt.Fprintln(cmd.OutOrStdout(), affirmation.Generate(date))
				return nil
			}

			today := affirmation.DateKey(time.Now())
			message := client.DailyMessage(cmd.Context(), a.store, a.api, today, a.logger)
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", `Generate the message for a specific day ("Mon Jan 02 2006")`)
	return cmd
}
