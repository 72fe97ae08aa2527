package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/alexanderramin/timesheet/internal/domain"
)

const appPrefix = "/services/app"

// Authenticate exchanges credentials for an access token. It is the only
// endpoint callable without a token.
func (c *Client) Authenticate(ctx context.Context, in AuthRequest) (*AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, call{method: http.MethodPost, path: "/TokenAuth/Authenticate", body: in}, &out)
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &Error{Kind: KindDecode, Method: http.MethodPost, Path: "/TokenAuth/Authenticate", Err: fmt.Errorf("no access token in result")}
	}
	return &out, nil
}

// ListProjects returns projects matching f in API order.
func (c *Client) ListProjects(ctx context.Context, f ProjectFilter) ([]domain.Project, error) {
	query := map[string]string{"search": f.Search}
	if f.Status != nil {
		query["status"] = strconv.Itoa(int(*f.Status))
	}
	var out []domain.Project
	err := c.do(ctx, call{method: http.MethodGet, path: appPrefix + "/Project/getAll", query: query, protected: true}, &out)
	return out, err
}

// ProjectQuantities returns the per-status project counts.
func (c *Client) ProjectQuantities(ctx context.Context) ([]domain.ProjectQuantity, error) {
	var out []domain.ProjectQuantity
	err := c.do(ctx, call{method: http.MethodGet, path: appPrefix + "/Project/GetQuantityProject", protected: true}, &out)
	return out, err
}

// SaveProject creates a project.
func (c *Client) SaveProject(ctx context.Context, in SaveProjectRequest) (*SaveProjectResult, error) {
	var out SaveProjectResult
	if err := c.do(ctx, call{method: http.MethodPost, path: appPrefix + "/Project/Save", body: in, protected: true}, &out); err != nil {
		return nil, err
	}
	out.Name = domain.CoalesceStr(out.Name, in.Name)
	out.Code = domain.CoalesceStr(out.Code, in.Code)
	return &out, nil
}

// ListCustomers returns every customer.
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	err := c.do(ctx, call{method: http.MethodGet, path: appPrefix + "/Customer/GetAll", protected: true}, &out)
	return out, err
}

// SaveCustomer creates a customer and returns it with the server id. When
// the server does not echo an id, the customer list is re-read and the new
// customer is found by code.
func (c *Client) SaveCustomer(ctx context.Context, in SaveCustomerRequest) (domain.Customer, error) {
	var out struct {
		ID *int64 `json:"id"`
	}
	if err := c.do(ctx, call{method: http.MethodPost, path: appPrefix + "/Customer/Save", body: in, protected: true}, &out); err != nil {
		return domain.Customer{}, err
	}
	created := domain.Customer{
		ID:      domain.Int64FromPtrWithDefault(0, out.ID),
		Name:    in.Name,
		Code:    in.Code,
		Address: in.Address,
	}
	if created.ID != 0 {
		return created, nil
	}

	all, err := c.ListCustomers(ctx)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("resolving created customer: %w", err)
	}
	found, ok := lo.Find(all, func(cu domain.Customer) bool {
		return strings.EqualFold(cu.Code, in.Code)
	})
	if !ok {
		return domain.Customer{}, &Error{Kind: KindDecode, Method: http.MethodPost, Path: appPrefix + "/Customer/Save", Err: fmt.Errorf("created customer %q not found", in.Code)}
	}
	return found, nil
}

// ListUsers returns every user, unpaginated.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, call{method: http.MethodGet, path: appPrefix + "/User/GetUserNotPagging", protected: true}, &out)
	return out, err
}

// ListTasks returns every task.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var out []domain.Task
	err := c.do(ctx, call{method: http.MethodGet, path: appPrefix + "/Task/GetAll", protected: true}, &out)
	return out, err
}

// ListBranches returns every branch, including the "all" pseudo-branch when
// the server provides one.
func (c *Client) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	var out []domain.Branch
	err := c.do(ctx, call{method: http.MethodGet, path: appPrefix + "/Branch/GetAllBranchFilter", query: map[string]string{"isAll": "true"}, protected: true}, &out)
	return out, err
}
