package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/macormexico/sistema-pnc/internal/apps/dae"
	"github.com/macormexico/sistema-pnc/internal/apps/pnc"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/metrics"
	"github.com/macormexico/sistema-pnc/internal/models"
)

// Login signs in and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/dae/login", dto.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Logout ends the server session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/dae/logout", nil, nil)
	c.token = ""
	return err
}

func (c *Client) Me(ctx context.Context) (*dto.SessionUser, error) {
	var resp struct {
		User dto.SessionUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/dae/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) ListReports(ctx context.Context) ([]pnc.Report, error) {
	var resp pnc.ListResponse
	if err := c.do(ctx, http.MethodGet, "/pnc", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}

func (c *Client) GetReport(ctx context.Context, id string) (*pnc.Report, error) {
	var resp pnc.ReportResponse
	if err := c.do(ctx, http.MethodGet, "/pnc/"+escape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Report, nil
}

func (c *Client) CreateReport(ctx context.Context, fields pnc.ReportFields) (*pnc.Report, error) {
	var resp pnc.ReportResponse
	if err := c.do(ctx, http.MethodPost, "/pnc", fields, &resp); err != nil {
		return nil, err
	}
	return resp.Report, nil
}

// UpdateReport replaces every editable field of a report.
func (c *Client) UpdateReport(ctx context.Context, id string, fields pnc.ReportFields) (*pnc.Report, error) {
	var resp pnc.ReportResponse
	if err := c.do(ctx, http.MethodPut, "/pnc/"+escape(id), fields, &resp); err != nil {
		return nil, err
	}
	return resp.Report, nil
}

func (c *Client) DeleteReport(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/pnc/"+escape(id), nil, nil)
}

// ListCatalogs returns the items of one category, or all when categoria is empty.
func (c *Client) ListCatalogs(ctx context.Context, categoria string) ([]dae.CatalogItem, error) {
	path := "/dae/catalogs"
	if categoria != "" {
		path += "?categoria=" + url.QueryEscape(categoria)
	}
	var resp dae.CatalogListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Catalogs, nil
}

func (c *Client) CreateCatalogItem(ctx context.Context, categoria, valor string) (*dae.CatalogItem, error) {
	var resp dae.CatalogResponse
	if err := c.do(ctx, http.MethodPost, "/dae/catalogs", dae.CatalogRequest{Categoria: categoria, Valor: valor}, &resp); err != nil {
		return nil, err
	}
	return resp.Catalog, nil
}

func (c *Client) DeleteCatalogItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/dae/catalogs/"+escape(id), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var resp dae.UserListResponse
	if err := c.do(ctx, http.MethodGet, "/dae/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	var resp dae.UserResponse
	if err := c.do(ctx, http.MethodPost, "/dae/users", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.User, error) {
	var resp dae.UserResponse
	if err := c.do(ctx, http.MethodPut, "/dae/users/"+escape(id), req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/dae/users/"+escape(id), nil, nil)
}

func (c *Client) Metrics(ctx context.Context, period metrics.Period) (*metrics.Summary, error) {
	var resp pnc.MetricsResponse
	path := "/pnc/metrics?period=" + url.QueryEscape(string(period))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Metrics, nil
}

func (c *Client) Summary(ctx context.Context) (*pnc.Summary, error) {
	var resp pnc.SummaryResponse
	if err := c.do(ctx, http.MethodGet, "/pnc/summary", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Summary, nil
}

// DownloadReportPDF fetches the printable form of one report.
func (c *Client) DownloadReportPDF(ctx context.Context, id string) (*Download, error) {
	return c.download(ctx, http.MethodGet, "/pnc/"+escape(id)+"/pdf", nil, fmt.Sprintf("PNC_%s.pdf", id))
}

// DownloadBundlePDF fetches several forms merged into one document.
func (c *Client) DownloadBundlePDF(ctx context.Context, ids []string) (*Download, error) {
	return c.download(ctx, http.MethodPost, "/pnc/export/pdf", pnc.BundleRequest{IDs: ids}, "PNC_lote.pdf")
}

func (c *Client) DownloadXLSX(ctx context.Context, period metrics.Period) (*Download, error) {
	path := "/pnc/export/xlsx?period=" + url.QueryEscape(string(period))
	return c.download(ctx, http.MethodGet, path, nil, fmt.Sprintf("PNC_%s.xlsx", period))
}
