package cli

import (
	"fmt"

	"github.com/averyquinn/daybook/internal/models"
)

type ProjectCmd struct {
	Add    ProjectAddCmd    `cmd:"" help:"Add a new project."`
	List   ProjectListCmd   `cmd:"" help:"List projects."`
	Update ProjectUpdateCmd `cmd:"" help:"Rename a project."`
	Delete ProjectDeleteCmd `cmd:"" help:"Delete a project permanently."`
}

type ProjectAddCmd struct {
	Name string `arg:"" help:"Project name."`
	Icon string `help:"Display icon."`
}

func (c *ProjectAddCmd) Run(ctx *Context) error {
	project, err := ctx.Store.AddProject(models.Project{Name: c.Name, Icon: c.Icon})
	if err != nil {
		return err
	}
	fmt.Printf("Added project: %s (%s)\n", project.Name, project.ID)
	return nil
}

type ProjectListCmd struct {
	Tasks bool `help:"Show each project's tasks."`
}

func (c *ProjectListCmd) Run(ctx *Context) error {
	projects := ctx.Store.GetProjects()
	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	for _, project := range projects {
		icon := project.Icon
		if icon == "" {
			icon = "•"
		}
		fmt.Printf("%s %s  (%s)\n", icon, project.Name, project.ID)
		if c.Tasks {
			for _, task := range ctx.Store.GetTasksByProject(project.ID) {
				printTask(task)
			}
		}
	}
	return nil
}

type ProjectUpdateCmd struct {
	ID   string  `arg:"" help:"Project ID."`
	Name *string `help:"New name."`
	Icon *string `help:"New icon."`
}

func (c *ProjectUpdateCmd) Run(ctx *Context) error {
	project, err := ctx.Store.GetProject(c.ID)
	if err != nil {
		return err
	}

	if c.Name != nil {
		project.Name = *c.Name
	}
	if c.Icon != nil {
		project.Icon = *c.Icon
	}

	updated, err := ctx.Store.UpdateProject(project)
	if err != nil {
		return err
	}
	fmt.Printf("Updated project: %s\n", updated.Name)
	return nil
}

type ProjectDeleteCmd struct {
	ID string `arg:"" help:"Project ID."`
}

func (c *ProjectDeleteCmd) Run(ctx *Context) error {
	project, err := ctx.Store.GetProject(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteProject(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted project: %s\n", project.Name)
	return nil
}
