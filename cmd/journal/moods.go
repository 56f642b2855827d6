package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/justestif/wellness-journal/internal/client"
	"github.com/justestif/wellness-journal/internal/journal"
)

func moodCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mood",
		Aliases: []string{"moods"},
		Short:   "Track a daily mood",
	}

	cmd.AddCommand(
		moodSetCmd(g),
		moodShowCmd(g),
		moodListCmd(g),
		moodDeleteCmd(g),
		moodCalendarCmd(g),
	)
	return cmd
}

func moodSetCmd(g *globals) *cobra.Command {
	var date, preset, emoji, color string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Record the mood for a day (today by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset != "" {
				p, ok := client.PresetByName(preset)
				if !ok {
					return fmt.Errorf("unknown preset %q (choose from %s)", preset, presetNames())
				}
				emoji, color = p.Emoji, p.Color
			}
			if emoji == "" || color == "" {
				return fmt.Errorf("set --preset, or both --emoji and --color")
			}

			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			mood, err := client.NewMoodTracker(c).Select(cmd.Context(), date, emoji, color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mood.Date, mood.MoodEmoji)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&date, "date", "d", client.LocalDate(time.Now()), "Day as YYYY-MM-DD")
	f.StringVarP(&preset, "preset", "p", "", "Preset mood ("+presetNames()+")")
	f.StringVar(&emoji, "emoji", "", "Custom emoji")
	f.StringVar(&color, "color", "", "Custom color")

	return cmd
}

func moodShowCmd(g *globals) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the mood for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			mood, err := c.GetMood(cmd.Context(), date)
			if err != nil {
				return err
			}
			return client.RenderMoods(cmd.OutOrStdout(), []journal.Mood{*mood})
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", client.LocalDate(time.Now()), "Day as YYYY-MM-DD")
	return cmd
}

func moodListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every recorded mood, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			tracker := client.NewMoodTracker(c)
			if err := tracker.Load(cmd.Context()); err != nil {
				return err
			}
			return client.RenderMoods(cmd.OutOrStdout(), tracker.Moods())
		},
	}
}

func moodDeleteCmd(g *globals) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the mood for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			tracker := client.NewMoodTracker(c)
			if err := tracker.Load(cmd.Context()); err != nil {
				return err
			}
			if err := tracker.Delete(cmd.Context(), date); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Mood deleted.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day as YYYY-MM-DD")
	cmd.MarkFlagRequired("date")
	return cmd
}

func moodCalendarCmd(g *globals) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month of moods",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := time.Parse("2006-01", month)
			if err != nil {
				return fmt.Errorf("invalid month %q, want YYYY-MM", month)
			}

			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			tracker := client.NewMoodTracker(c)
			if err := tracker.Load(cmd.Context()); err != nil {
				return err
			}
			return client.RenderCalendar(cmd.OutOrStdout(), at.Year(), at.Month(), tracker.Moods())
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", time.Now().Format("2006-01"), "Month as YYYY-MM")
	return cmd
}

func presetNames() string {
	names := make([]string, len(client.Presets))
	for i, p := range client.Presets {
		names[i] = strings.ToLower(p.Name)
	}
	return strings.Join(names, ", ")
}
