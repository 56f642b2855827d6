package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/justestif/wellness-journal/internal/client"
	"github.com/justestif/wellness-journal/internal/journal"
)

func notesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "Manage notes",
	}

	cmd.AddCommand(
		notesListCmd(g),
		notesShowCmd(g),
		notesCreateCmd(g),
		notesEditCmd(g),
		notesDeleteCmd(g),
		notesCategoriesCmd(g),
	)
	return cmd
}

func notesListCmd(g *globals) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			notes, err := c.ListNotes(cmd.Context(), category)
			if err != nil {
				return err
			}
			return client.RenderNotes(cmd.OutOrStdout(), notes)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only notes in this category")
	return cmd
}

func notesShowCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			note, err := c.GetNote(cmd.Context(), id)
			if err != nil {
				return err
			}
			return client.RenderNote(cmd.OutOrStdout(), note)
		},
	}
}

func notesCreateCmd(g *globals) *cobra.Command {
	var in journal.NoteInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			note, err := c.CreateNote(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created note %s.\n", note.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in.Title, "title", "t", "", "Title")
	f.StringVarP(&in.Content, "content", "m", "", "Content")
	f.StringVar(&in.Category, "category", "", "Category (default \""+journal.DefaultCategory+"\")")
	f.StringVar(&in.Emoji, "emoji", "", "Emoji")
	f.StringVar(&in.BackgroundColor, "bg", "", "Background color")
	f.StringVar(&in.TextColor, "fg", "", "Text color")
	f.StringSliceVar(&in.Stickers, "sticker", nil, "Sticker (repeatable)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("content")

	return cmd
}

func notesEditCmd(g *globals) *cobra.Command {
	var (
		title, content, category, emoji, bg, fg string
		stickers                                []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}

			// Only flags given on the command line go into the patch.
			var patch journal.NotePatch
			f := cmd.Flags()
			for name, dst := range map[string]**string{
				"title": &patch.Title, "content": &patch.Content, "category": &patch.Category,
				"emoji": &patch.Emoji, "bg": &patch.BackgroundColor, "fg": &patch.TextColor,
			} {
				if f.Changed(name) {
					v, _ := f.GetString(name)
					*dst = &v
				}
			}
			if f.Changed("sticker") {
				patch.Stickers = &stickers
			}

			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			note, err := c.UpdateNote(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			return client.RenderNote(cmd.OutOrStdout(), note)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&title, "title", "t", "", "Title")
	f.StringVarP(&content, "content", "m", "", "Content")
	f.StringVar(&category, "category", "", "Category")
	f.StringVar(&emoji, "emoji", "", "Emoji")
	f.StringVar(&bg, "bg", "", "Background color")
	f.StringVar(&fg, "fg", "", "Text color")
	f.StringSliceVar(&stickers, "sticker", nil, "Sticker (repeatable, replaces the set)")

	return cmd
}

func notesDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			if err := c.DeleteNote(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Note deleted.")
			return nil
		},
	}
}

func notesCategoriesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with note counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := requireSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			notes, err := c.ListNotes(cmd.Context(), "")
			if err != nil {
				return err
			}
			return client.RenderCategories(cmd.OutOrStdout(), notes)
		},
	}
}

func parseNoteID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}
