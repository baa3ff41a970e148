package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/exchangekit/go-ews/internal/extract"
	"github.com/exchangekit/go-ews/internal/soap"
)

var taskFieldSpecs = map[string]extract.FieldSpec{
	"subject":          {Path: "./t:Task/t:Subject"},
	"text_body":        {Path: "./t:Task/t:Body[@BodyType='Text']"},
	"owner":            {Path: "./t:Task/t:Owner"},
	"status":           {Path: "./t:Task/t:Status"},
	"importance":       {Path: "./t:Task/t:Importance"},
	"start_date":       {Path: "./t:Task/t:StartDate", Cast: extract.CastDateTime},
	"due_date":         {Path: "./t:Task/t:DueDate", Cast: extract.CastDateTime},
	"complete_date":    {Path: "./t:Task/t:CompleteDate", Cast: extract.CastDateTime},
	"percent_complete": {Path: "./t:Task/t:PercentComplete", Cast: extract.CastInt},
	"is_complete":      {Path: "./t:Task/t:IsComplete", Cast: extract.CastBool},
}

// Task is a read-only view of a task item. Tasks are not writable through
// this client, so the fields are plain values without change tracking.
type Task struct {
	ID        string
	ChangeKey string

	Subject    string
	TextBody   string
	Owner      string
	Status     string
	Importance string

	StartDate    time.Time
	DueDate      time.Time
	CompleteDate time.Time

	PercentComplete int
	IsComplete      bool
}

func parseTask(root *etree.Element) (*Task, error) {
	values, err := extract.Properties(root, taskFieldSpecs)
	if err != nil {
		return nil, fmt.Errorf("parse task: %w", err)
	}

	ident := parseIDAttrs(root.FindElement("./t:Task/t:ItemId"))
	return &Task{
		ID:              ident.id,
		ChangeKey:       ident.changeKey,
		Subject:         values.String("subject"),
		TextBody:        values.String("text_body"),
		Owner:           values.String("owner"),
		Status:          values.String("status"),
		Importance:      values.String("importance"),
		StartDate:       values.Time("start_date"),
		DueDate:         values.Time("due_date"),
		CompleteDate:    values.Time("complete_date"),
		PercentComplete: values.Int("percent_complete"),
		IsComplete:      values.Bool("is_complete"),
	}, nil
}

// TaskService exposes task lookups for one tasks folder. Obtain one via
// Service.Tasks.
type TaskService struct {
	svc      *Service
	folderID string
}

// GetTask fetches a single task with all properties.
func (t *TaskService) GetTask(ctx context.Context, id string) (*Task, error) {
	response, err := t.svc.transport.Send(ctx, soap.GetItem([]string{id}, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	items := response.FindElement("//m:Items")
	if items == nil || items.FindElement("./t:Task") == nil {
		return nil, fmt.Errorf("get task: %w", ErrIncompleteResponse)
	}

	task, err := parseTask(items)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// GetAllTasks lists the whole folder.
func (t *TaskService) GetAllTasks(ctx context.Context) (*TaskList, error) {
	response, err := t.svc.transport.Send(ctx, soap.FindItems(t.folderID, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("get all tasks: %w", err)
	}
	return taskList(response)
}

func taskList(response *etree.Document) (*TaskList, error) {
	list := &TaskList{}
	for _, item := range response.FindElements("//m:RootFolder/t:Items/t:Task") {
		task, err := parseTask(wrapFragment(item))
		if err != nil {
			return nil, err
		}
		if task.ID != "" {
			list.Tasks = append(list.Tasks, task)
		}
	}
	return list, nil
}

// TaskList is the result of a task query.
type TaskList struct {
	Tasks []*Task
}

// Count returns the number of tasks found.
func (l *TaskList) Count() int { return len(l.Tasks) }
