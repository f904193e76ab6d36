package cli

import (
	"fmt"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/utils"
)

type TaskCmd struct {
	Add      TaskAddCmd      `cmd:"" help:"Add a new task."`
	List     TaskListCmd     `cmd:"" help:"List tasks."`
	Day      TaskDayCmd      `cmd:"" help:"Show tasks scheduled for a day."`
	Complete TaskCompleteCmd `cmd:"" help:"Mark a task completed."`
	Update   TaskUpdateCmd   `cmd:"" help:"Update a task's fields."`
	Delete   TaskDeleteCmd   `cmd:"" help:"Delete a task (kept as a tombstone for sync)."`
	Restore  TaskRestoreCmd  `cmd:"" help:"Restore a deleted task."`
}

type TaskAddCmd struct {
	Title     string `arg:"" help:"Task title."`
	Project   string `help:"Project ID to attach the task to."`
	Scheduled string `help:"Scheduled date (YYYY-MM-DD)."`
	Deadline  string `help:"Deadline (YYYY-MM-DD)."`
	Priority  int    `help:"Priority score (0-10)."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if c.Project != "" {
		if _, err := ctx.Store.GetProject(c.Project); err != nil {
			return fmt.Errorf("unknown project %s: %w", c.Project, err)
		}
	}

	task, err := ctx.Store.AddTask(models.Task{
		Title:         c.Title,
		ProjectID:     c.Project,
		ScheduledDate: c.Scheduled,
		Deadline:      c.Deadline,
		PriorityScore: c.Priority,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added task: %s (%s)\n", task.Title, task.ID)
	return nil
}

type TaskListCmd struct {
	Deleted bool   `help:"Include deleted tasks."`
	Project string `help:"Only tasks for this project ID."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	var tasks []models.Task
	if c.Project != "" {
		tasks = ctx.Store.GetTasksByProject(c.Project)
	} else {
		tasks = ctx.Store.GetTasks(c.Deleted)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	for _, task := range tasks {
		printTask(task)
	}
	return nil
}

type TaskDayCmd struct {
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, defaults to today)."`
}

func (c *TaskDayCmd) Run(ctx *Context) error {
	day := c.Date
	if day == "" {
		day = utils.DayString(utils.Today())
	}
	if _, err := utils.ParseDay(day); err != nil {
		return fmt.Errorf("invalid date %q: %w", day, err)
	}

	tasks := ctx.Store.GetTasksForDay(day)
	if len(tasks) == 0 {
		fmt.Printf("Nothing scheduled for %s.\n", day)
		return nil
	}

	fmt.Printf("Tasks for %s:\n", day)
	for _, task := range tasks {
		printTask(task)
	}
	return nil
}

type TaskCompleteCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskCompleteCmd) Run(ctx *Context) error {
	task, err := ctx.Store.CompleteTask(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Completed task: %s\n", task.Title)
	return nil
}

type TaskUpdateCmd struct {
	ID        string  `arg:"" help:"Task ID."`
	Title     *string `help:"New title."`
	Scheduled *string `help:"New scheduled date (YYYY-MM-DD, empty clears)."`
	Deadline  *string `help:"New deadline (YYYY-MM-DD, empty clears)."`
	Priority  *int    `help:"New priority score (0-10)."`
	Status    *string `help:"New status: pending or completed."`
}

func (c *TaskUpdateCmd) Run(ctx *Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return err
	}

	if c.Title != nil {
		task.Title = *c.Title
	}
	if c.Scheduled != nil {
		task.ScheduledDate = *c.Scheduled
	}
	if c.Deadline != nil {
		task.Deadline = *c.Deadline
	}
	if c.Priority != nil {
		task.PriorityScore = *c.Priority
	}
	if c.Status != nil {
		task.Status = models.TaskStatus(*c.Status)
	}

	updated, err := ctx.Store.UpdateTask(task)
	if err != nil {
		return err
	}
	fmt.Printf("Updated task: %s\n", updated.Title)
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task: %s\n", c.ID)
	return nil
}

type TaskRestoreCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskRestoreCmd) Run(ctx *Context) error {
	task, err := ctx.Store.RestoreTask(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Restored task: %s\n", task.Title)
	return nil
}

func printTask(t models.Task) {
	mark := " "
	if t.Status == models.TaskCompleted {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %s", mark, t.Title)
	if t.ScheduledDate != "" {
		line += " @" + t.ScheduledDate
	}
	if t.Deadline != "" {
		line += " due:" + t.Deadline
	}
	if t.PriorityScore > 0 {
		line += fmt.Sprintf(" p%d", t.PriorityScore)
	}
	if t.Deleted() {
		line += " [DELETED]"
	}
	fmt.Printf("%s  (%s)\n", line, t.ID)
}
