package catalogapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// UserQuery filters GET /admin/users.
type UserQuery struct {
	Status  string
	Role    string
	Search  string
	Page    int
	PerPage int
}

// ActivityQuery filters GET /admin/activity.
type ActivityQuery struct {
	ActorID     string
	SubjectType string
	SubjectID   string
	Action      string
	Page        int
	PerPage     int
}

func (c *Client) ListUsers(ctx context.Context, q UserQuery) (*UserPage, error) {
	v := url.Values{}
	for k, s := range map[string]string{"status": q.Status, "role": q.Role, "search": q.Search} {
		if s != "" {
			v.Set(k, s)
		}
	}
	setPage(v, q.Page, q.PerPage)

	var out UserPage
	if err := c.call(ctx, http.MethodGet, withQuery("/admin/users", v), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var out User
	if err := c.call(ctx, http.MethodGet, "/admin/users/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*CreatedUserResponse, error) {
	var out CreatedUserResponse
	if err := c.call(ctx, http.MethodPost, "/admin/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetUserStatus approves, rejects or resets a user to pending.
func (c *Client) SetUserStatus(ctx context.Context, id, status string) (*UserResponse, error) {
	var out UserResponse
	path := "/admin/users/" + url.PathEscape(id) + "/approve"
	if err := c.call(ctx, http.MethodPost, path, UserStatusRequest{Status: status}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetUserRole(ctx context.Context, id, role string) (*UserResponse, error) {
	var out UserResponse
	path := "/admin/users/" + url.PathEscape(id) + "/role"
	if err := c.call(ctx, http.MethodPut, path, UserRoleRequest{Role: role}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportUsers returns the raw CSV export, BOM included.
func (c *Client) ExportUsers(ctx context.Context) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/admin/users/export", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, body)
	}
	return body, nil
}

func (c *Client) Activity(ctx context.Context, q ActivityQuery) (*ActivityPage, error) {
	v := url.Values{}
	for k, s := range map[string]string{
		"actor_id":     q.ActorID,
		"subject_type": q.SubjectType,
		"subject_id":   q.SubjectID,
		"action":       q.Action,
	} {
		if s != "" {
			v.Set(k, s)
		}
	}
	setPage(v, q.Page, q.PerPage)

	var out ActivityPage
	if err := c.call(ctx, http.MethodGet, withQuery("/admin/activity", v), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.call(ctx, http.MethodGet, "/admin/stats", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
