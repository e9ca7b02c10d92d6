package client

import (
	"context"
	"net/http"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/customers/transport"
	"leadflow_backend/internal/records"

	"github.com/google/uuid"
)

func customerPath(id uuid.UUID) string {
	return "/customers/" + id.String()
}

func customerAction(v access.Verb) access.Action {
	return access.Action{Resource: access.Customers, Verb: v}
}

func (c *Client) ListCustomers(ctx context.Context, page int, search string) (transport.CustomerListResponse, error) {
	var out transport.CustomerListResponse
	err := c.doJSON(ctx, http.MethodGet, "/customers", pageParams(page, search), nil, &out)
	return out, err
}

func (c *Client) GetCustomer(ctx context.Context, id uuid.UUID) (records.Customer, error) {
	var out records.Customer
	err := c.doJSON(ctx, http.MethodGet, customerPath(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, in transport.CreateCustomerRequest) (records.Customer, error) {
	var out records.Customer
	if err := c.authorize(customerAction(access.Create)); err != nil {
		return out, err
	}
	if err := requireText("company", in.Company); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, "/customers", nil, in, &out)
	return out, err
}

func (c *Client) UpdateCustomer(ctx context.Context, id uuid.UUID, in transport.UpdateCustomerRequest) (records.Customer, error) {
	var out records.Customer
	if err := c.authorize(customerAction(access.Update)); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPatch, customerPath(id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := c.authorize(customerAction(access.Delete)); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, customerPath(id), nil, nil, nil)
}
