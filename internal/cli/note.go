package cli

import (
	"fmt"

	"github.com/averyquinn/daybook/internal/models"
)

type NoteCmd struct {
	Add    NoteAddCmd    `cmd:"" help:"Add a new note."`
	List   NoteListCmd   `cmd:"" help:"List notes."`
	Show   NoteShowCmd   `cmd:"" help:"Print a note's body."`
	Update NoteUpdateCmd `cmd:"" help:"Update a note."`
	Delete NoteDeleteCmd `cmd:"" help:"Delete a note permanently."`
}

type NoteAddCmd struct {
	Title   string `arg:"" help:"Note title."`
	Body    string `help:"Note body."`
	Project string `help:"Project ID to attach the note to."`
}

func (c *NoteAddCmd) Run(ctx *Context) error {
	if c.Project != "" {
		if _, err := ctx.Store.GetProject(c.Project); err != nil {
			return fmt.Errorf("unknown project %s: %w", c.Project, err)
		}
	}

	note, err := ctx.Store.AddNote(models.Note{
		Title:     c.Title,
		Body:      c.Body,
		ProjectID: c.Project,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added note: %s (%s)\n", note.Title, note.ID)
	return nil
}

type NoteListCmd struct {
	Project string `help:"Only notes for this project ID."`
}

func (c *NoteListCmd) Run(ctx *Context) error {
	notes := ctx.Store.GetNotes(c.Project)
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return nil
	}
	for _, note := range notes {
		fmt.Printf("%s  (%s)\n", note.Title, note.ID)
	}
	return nil
}

type NoteShowCmd struct {
	ID string `arg:"" help:"Note ID."`
}

func (c *NoteShowCmd) Run(ctx *Context) error {
	note, err := ctx.Store.GetNote(c.ID)
	if err != nil {
		return err
	}
	fmt.Println(note.Title)
	if note.Body != "" {
		fmt.Println()
		fmt.Println(note.Body)
	}
	return nil
}

type NoteUpdateCmd struct {
	ID    string  `arg:"" help:"Note ID."`
	Title *string `help:"New title."`
	Body  *string `help:"New body."`
}

func (c *NoteUpdateCmd) Run(ctx *Context) error {
	note, err := ctx.Store.GetNote(c.ID)
	if err != nil {
		return err
	}

	if c.Title != nil {
		note.Title = *c.Title
	}
	if c.Body != nil {
		note.Body = *c.Body
	}

	updated, err := ctx.Store.UpdateNote(note)
	if err != nil {
		return err
	}
	fmt.Printf("Updated note: %s\n", updated.Title)
	return nil
}

type NoteDeleteCmd struct {
	ID string `arg:"" help:"Note ID."`
}

func (c *NoteDeleteCmd) Run(ctx *Context) error {
	note, err := ctx.Store.GetNote(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteNote(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted note: %s\n", note.Title)
	return nil
}
