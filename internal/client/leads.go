package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/leads/importer"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/internal/records"

	"github.com/google/uuid"
)

func leadAction(v access.Verb) access.Action {
	return access.Action{Resource: access.Leads, Verb: v}
}

func leadPath(id uuid.UUID, suffix string) string {
	return "/leads/" + id.String() + suffix
}

func (c *Client) ListLeads(ctx context.Context, q Query) (transport.LeadListResponse, error) {
	var out transport.LeadListResponse
	err := c.doJSON(ctx, http.MethodGet, "/leads", q.Params(time.Now()), nil, &out)
	return out, err
}

func (c *Client) GetLead(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	var out transport.LeadResponse
	err := c.doJSON(ctx, http.MethodGet, leadPath(id, ""), nil, nil, &out)
	return out, err
}

func (c *Client) CreateLead(ctx context.Context, in records.LeadInput) (transport.LeadResponse, error) {
	var out transport.LeadResponse
	if err := c.authorize(leadAction(access.Create)); err != nil {
		return out, err
	}
	if err := requireText("company", in.Company); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/leads", nil, in, &out)
	return out, err
}

func (c *Client) UpdateLead(ctx context.Context, id uuid.UUID, in transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	var out transport.LeadResponse
	if err := c.authorize(leadAction(access.Update)); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPatch, leadPath(id, ""), nil, in, &out)
	return out, err
}

func (c *Client) DeleteLead(ctx context.Context, id uuid.UUID) error {
	if err := c.authorize(leadAction(access.Delete)); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, leadPath(id, ""), nil, nil, nil)
}

func (c *Client) BulkDeleteLeads(ctx context.Context, ids []uuid.UUID) (transport.BulkDeleteResponse, error) {
	var out transport.BulkDeleteResponse
	if err := c.authorize(leadAction(access.BulkDelete)); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/leads/bulk-delete", nil, transport.BulkDeleteRequest{IDs: ids}, &out)
	return out, err
}

// BulkImport submits already normalized rows in one call.
func (c *Client) BulkImport(ctx context.Context, rows []records.LeadInput) (transport.BulkImportResponse, error) {
	var out transport.BulkImportResponse
	if err := c.authorize(leadAction(access.Import)); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/leads/bulk-import", nil, rows, &out)
	return out, err
}

// ImportResult is the outcome of a client-side normalized import. Row
// error indices refer to the input rows. List is the lead page re-read
// after the import.
type ImportResult struct {
	transport.BulkImportResponse
	Skipped int
	Mapping importer.Mapping
	List    transport.LeadListResponse
}

// ImportRows normalizes spreadsheet rows locally, submits the survivors as
// one bulk import and then re-reads the list for q, whatever the outcome.
// Nothing is submitted when every row was skipped.
func (c *Client) ImportRows(ctx context.Context, rows []importer.Row, intent importer.Intent, q Query) (ImportResult, error) {
	if err := c.authorize(leadAction(access.Import)); err != nil {
		return ImportResult{}, err
	}

	normalized := importer.New().Normalize(rows, intent)
	result := ImportResult{
		BulkImportResponse: transport.BulkImportResponse{PerRowErrors: []transport.RowError{}},
		Skipped:            normalized.Skipped,
		Mapping:            normalized.Mapping,
	}

	var importErr error
	if len(normalized.Leads) > 0 {
		resp, err := c.BulkImport(ctx, normalized.Leads)
		importErr = err
		result.CreatedCount = resp.CreatedCount
		for _, rowErr := range resp.PerRowErrors {
			if rowErr.Index >= 0 && rowErr.Index < len(normalized.SourceRows) {
				rowErr.Index = normalized.SourceRows[rowErr.Index]
			}
			result.PerRowErrors = append(result.PerRowErrors, rowErr)
		}
	}

	list, listErr := c.ListLeads(ctx, q)
	result.List = list
	if importErr != nil {
		return result, importErr
	}
	return result, listErr
}

// FileImportResult is the server answer to a file upload plus the lead page
// re-read after it.
type FileImportResult struct {
	transport.ImportFileResponse
	List transport.LeadListResponse
}

// ImportFile uploads a CSV or .xlsx file for server-side normalization and
// then re-reads the list for q, whatever the outcome. An empty intent lets
// the server infer it from filename.
func (c *Client) ImportFile(ctx context.Context, filename string, file io.Reader, intent string, q Query) (FileImportResult, error) {
	var out FileImportResult
	if err := c.authorize(leadAction(access.Import)); err != nil {
		return out, err
	}

	body, contentType, err := multipartBody(filename, file, map[string]string{"intent": intent})
	if err != nil {
		return out, err
	}
	importErr := c.do(ctx, http.MethodPost, "/leads/import", nil, body, contentType, &out.ImportFileResponse)

	list, listErr := c.ListLeads(ctx, q)
	out.List = list
	if importErr != nil {
		return out, importErr
	}
	return out, listErr
}

func (c *Client) ScheduleFollowUp(ctx context.Context, id uuid.UUID, in transport.FollowUpRequest) (transport.FollowUpResponse, error) {
	var out transport.FollowUpResponse
	if err := c.authorize(leadAction(access.FollowUp)); err != nil {
		return out, err
	}
	if in.NextFollowUp == "" {
		return out, &ValidationError{Message: "next_follow_up is required", Fields: map[string]string{"next_follow_up": "required"}}
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, leadPath(id, "/to-sales-task"), nil, in, &out)
	return out, err
}

func (c *Client) Convert(ctx context.Context, id uuid.UUID, in transport.ConvertRequest) (transport.ConvertResponse, error) {
	var out transport.ConvertResponse
	if err := c.authorize(leadAction(access.Convert)); err != nil {
		return out, err
	}
	if !in.Amount.IsPositive() {
		return out, &ValidationError{Message: "amount must be greater than 0", Fields: map[string]string{"amount": "gt"}}
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, leadPath(id, "/convert"), nil, in, &out)
	return out, err
}

func (c *Client) SetStatus(ctx context.Context, id uuid.UUID, status records.LeadStatus) (transport.LeadResponse, error) {
	var out transport.LeadResponse
	if err := c.authorize(leadAction(access.SetStatus)); err != nil {
		return out, err
	}
	if !status.Valid() {
		return out, &ValidationError{Message: fmt.Sprintf("unknown status %q", status), Fields: map[string]string{"status": "leadstatus"}}
	}
	err := c.doJSON(ctx, http.MethodPatch, leadPath(id, "/status"), nil, transport.SetStatusRequest{Status: string(status)}, &out)
	return out, err
}

func multipartBody(filename string, file io.Reader, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
