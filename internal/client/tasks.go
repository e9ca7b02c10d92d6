package client

import (
	"context"
	"net/http"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/dashboard"
	"leadflow_backend/internal/records"
	salestransport "leadflow_backend/internal/salestasks/transport"
	techtransport "leadflow_backend/internal/technical/transport"

	"github.com/google/uuid"
)

func salesTaskPath(id uuid.UUID) string {
	return "/sales-tasks/" + id.String()
}

// ListSalesTasks lists follow-ups; dueToday limits to tasks due by today.
func (c *Client) ListSalesTasks(ctx context.Context, page int, search string, dueToday bool) (salestransport.TaskListResponse, error) {
	var out salestransport.TaskListResponse
	params := pageParams(page, search)
	if dueToday {
		params.Set("due", "today")
	}
	err := c.doJSON(ctx, http.MethodGet, "/sales-tasks", params, nil, &out)
	return out, err
}

func (c *Client) GetSalesTask(ctx context.Context, id uuid.UUID) (records.FollowUpTask, error) {
	var out records.FollowUpTask
	err := c.doJSON(ctx, http.MethodGet, salesTaskPath(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateSalesTask(ctx context.Context, in salestransport.CreateTaskRequest) (records.FollowUpTask, error) {
	var out records.FollowUpTask
	if err := c.authorize(access.Action{Resource: access.SalesTasks, Verb: access.Create}); err != nil {
		return out, err
	}
	if err := requireText("company", in.Company); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/sales-tasks", nil, in, &out)
	return out, err
}

// RecordFollowUp logs one follow-up round; the server adds one to the count.
func (c *Client) RecordFollowUp(ctx context.Context, id uuid.UUID, in salestransport.FollowUpUpdateRequest) (records.FollowUpTask, error) {
	var out records.FollowUpTask
	if err := c.authorize(access.Action{Resource: access.SalesTasks, Verb: access.Update}); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	in.FollowUpCount = nil
	err := c.doJSON(ctx, http.MethodPatch, salesTaskPath(id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteSalesTask(ctx context.Context, id uuid.UUID) error {
	if err := c.authorize(access.Action{Resource: access.SalesTasks, Verb: access.Delete}); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, salesTaskPath(id), nil, nil, nil)
}

func (c *Client) ListTechTasks(ctx context.Context, page int, search string) (techtransport.TechTaskListResponse, error) {
	var out techtransport.TechTaskListResponse
	err := c.doJSON(ctx, http.MethodGet, "/tasks", pageParams(page, search), nil, &out)
	return out, err
}

func (c *Client) CreateTechTask(ctx context.Context, in techtransport.CreateTechTaskRequest) (records.TechTask, error) {
	var out records.TechTask
	if err := c.authorize(access.Action{Resource: access.TechTasks, Verb: access.Create}); err != nil {
		return out, err
	}
	if err := requireText("company_name", in.CompanyName); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/tasks", nil, in, &out)
	return out, err
}

// SetTechTaskStatus moves a technical task to Pending, In Progress or Done.
func (c *Client) SetTechTaskStatus(ctx context.Context, id uuid.UUID, status string) (records.TechTask, error) {
	var out records.TechTask
	if err := c.authorize(access.Action{Resource: access.TechTasks, Verb: access.Update}); err != nil {
		return out, err
	}
	if !records.ValidTechTaskStatus(status) {
		return out, &ValidationError{Message: "status must be Pending, In Progress or Done", Fields: map[string]string{"status": "oneof"}}
	}
	err := c.doJSON(ctx, http.MethodPatch, "/tasks/"+id.String(), nil, techtransport.TaskStatusRequest{Status: status}, &out)
	return out, err
}

func (c *Client) DeleteTechTask(ctx context.Context, id uuid.UUID) error {
	if err := c.authorize(access.Action{Resource: access.TechTasks, Verb: access.Delete}); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/tasks/"+id.String(), nil, nil, nil)
}

func (c *Client) ListTenders(ctx context.Context, page int, search string) (techtransport.TenderListResponse, error) {
	var out techtransport.TenderListResponse
	err := c.doJSON(ctx, http.MethodGet, "/tenders", pageParams(page, search), nil, &out)
	return out, err
}

func (c *Client) CreateTender(ctx context.Context, in techtransport.CreateTenderRequest) (records.Tender, error) {
	var out records.Tender
	if err := c.authorize(access.Action{Resource: access.Tenders, Verb: access.Create}); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/tenders", nil, in, &out)
	return out, err
}

func (c *Client) DeleteTender(ctx context.Context, id uuid.UUID) error {
	if err := c.authorize(access.Action{Resource: access.Tenders, Verb: access.Delete}); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/tenders/"+id.String(), nil, nil, nil)
}

func (c *Client) ListTechData(ctx context.Context, page int, search string) (techtransport.TechDataListResponse, error) {
	var out techtransport.TechDataListResponse
	err := c.doJSON(ctx, http.MethodGet, "/tech-data", pageParams(page, search), nil, &out)
	return out, err
}

func (c *Client) CreateTechData(ctx context.Context, in techtransport.TechDataRequest) (records.TechData, error) {
	var out records.TechData
	if err := c.authorize(access.Action{Resource: access.TechData, Verb: access.Create}); err != nil {
		return out, err
	}
	if err := requireText("company", in.Company); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/tech-data", nil, in, &out)
	return out, err
}

func (c *Client) UpdateTechData(ctx context.Context, id uuid.UUID, in techtransport.UpdateTechDataRequest) (records.TechData, error) {
	var out records.TechData
	if err := c.authorize(access.Action{Resource: access.TechData, Verb: access.Update}); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPatch, "/tech-data/"+id.String(), nil, in, &out)
	return out, err
}

func (c *Client) DeleteTechData(ctx context.Context, id uuid.UUID) error {
	if err := c.authorize(access.Action{Resource: access.TechData, Verb: access.Delete}); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/tech-data/"+id.String(), nil, nil, nil)
}

func (c *Client) DashboardSummary(ctx context.Context) (dashboard.Summary, error) {
	var out dashboard.Summary
	err := c.doJSON(ctx, http.MethodGet, "/dashboard/summary", nil, nil, &out)
	return out, err
}
