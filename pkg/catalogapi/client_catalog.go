package catalogapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out CategoryList
	if err := c.call(ctx, http.MethodGet, "/categories", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	var out Category
	if err := c.call(ctx, http.MethodPost, "/categories", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*Category, error) {
	var out Category
	if err := c.call(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (q ToolQuery) values() url.Values {
	v := url.Values{}
	if q.CategoryID != "" {
		v.Set("category_id", q.CategoryID)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Featured != nil {
		v.Set("featured", strconv.FormatBool(*q.Featured))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	setPage(v, q.Page, q.PerPage)
	return v
}

func setPage(v url.Values, page, perPage int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		v.Set("per_page", strconv.Itoa(perPage))
	}
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

func (c *Client) Tools(ctx context.Context, q ToolQuery) (*ToolPage, error) {
	var out ToolPage
	if err := c.call(ctx, http.MethodGet, withQuery("/tools", q.values()), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Tool(ctx context.Context, id string) (*Tool, error) {
	var out Tool
	if err := c.call(ctx, http.MethodGet, "/tools/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTool(ctx context.Context, req ToolRequest) (*Tool, error) {
	var out Tool
	if err := c.call(ctx, http.MethodPost, "/tools", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTool(ctx context.Context, id string, req ToolRequest) (*Tool, error) {
	var out Tool
	if err := c.call(ctx, http.MethodPut, "/tools/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTool(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/tools/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) ModerateTool(ctx context.Context, id string, req ModerationRequest) (*Tool, error) {
	var out Tool
	if err := c.call(ctx, http.MethodPut, "/admin/tools/"+url.PathEscape(id)+"/moderation", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Reviews(ctx context.Context, toolID string, page, perPage int) (*ReviewPage, error) {
	v := url.Values{}
	setPage(v, page, perPage)

	var out ReviewPage
	path := withQuery("/tools/"+url.PathEscape(toolID)+"/reviews", v)
	if err := c.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReview(ctx context.Context, toolID string, req ReviewRequest) (*Review, error) {
	var out Review
	if err := c.call(ctx, http.MethodPost, "/tools/"+url.PathEscape(toolID)+"/reviews", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReview(ctx context.Context, id string, req ReviewRequest) (*Review, error) {
	var out Review
	if err := c.call(ctx, http.MethodPut, "/reviews/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) Like(ctx context.Context, toolID string) (*LikeResponse, error) {
	var out LikeResponse
	if err := c.call(ctx, http.MethodPost, "/tools/"+url.PathEscape(toolID)+"/like", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Unlike(ctx context.Context, toolID string) (*LikeResponse, error) {
	var out LikeResponse
	if err := c.call(ctx, http.MethodDelete, "/tools/"+url.PathEscape(toolID)+"/like", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
