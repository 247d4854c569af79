package toast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/ovenlight/toastctl/internal/models"
)

const (
	menusPath         = "/menus/v2/menus"
	diningOptionsPath = "/config/v2/diningOptions"
	employeesPath     = "/labor/v1/employees"
	timeEntriesPath   = "/labor/v1/timeEntries"
	ordersBulkPath    = "/orders/v2/ordersBulk"

	// ordersPageSize is fixed; the API signals the last page by returning
	// fewer items than this (there is no total count or next-page token).
	ordersPageSize = 100

	// timeEntryStampLayout is the exact timestamp format the labor API
	// expects: yyyy-MM-dd'T'HH:mm:ss.SSS-0000.
	timeEntryStampLayout = "2006-01-02T15:04:05.000-0000"

	// pstOffset shifts a local business day into the UTC window the labor
	// API filters on. Business days are anchored to Pacific time.
	pstOffset = 8 * time.Hour
)

// Client wraps authenticated calls to the Toast API. All calls are blocking
// and sequential; the context is the only cancellation mechanism.
type Client struct {
	cfg   *models.Config
	http  *http.Client
	auth  *Authenticator
	log   *zap.SugaredLogger
	debug bool

	// runID tags debug dumps from a single invocation.
	runID string
}

func NewClient(cfg *models.Config, httpClient *http.Client, auth *Authenticator, log *zap.SugaredLogger, debug bool) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.APITimeout}
	}
	return &Client{
		cfg:   cfg,
		http:  httpClient,
		auth:  auth,
		log:   log,
		debug: debug,
		runID: cuid.Slug(),
	}
}

// get performs an authenticated GET and decodes the JSON response into out.
// The bearer token is resolved per request, so a token expiring mid-run is
// refreshed transparently on the next call.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	token, err := c.auth.ValidToken(ctx)
	if err != nil {
		return err
	}

	u := c.cfg.BaseURL() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &APIError{URL: u, Err: err}
	}
	for k, v := range c.cfg.AuthHeaders(token) {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{URL: u, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{URL: u, Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{URL: u, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Menus fetches the full menu payload.
func (c *Client) Menus(ctx context.Context) (*models.MenuData, error) {
	c.log.Debug("fetching menu data")
	var data models.MenuData
	if err := c.get(ctx, menusPath, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DiningOptions fetches the GUID→name mapping for dining options. The
// mapping is display-only; callers may proceed with an empty map on failure.
func (c *Client) DiningOptions(ctx context.Context) (models.DiningOptionMap, error) {
	c.log.Debug("fetching dining options")
	var options []models.DiningOption
	if err := c.get(ctx, diningOptionsPath, nil, &options); err != nil {
		return nil, err
	}

	m := make(models.DiningOptionMap, len(options))
	for _, opt := range options {
		if opt.GUID != "" {
			m[opt.GUID] = opt.Name
		}
	}
	return m, nil
}

// Employees fetches all employees for the restaurant.
func (c *Client) Employees(ctx context.Context) ([]*models.Employee, error) {
	c.log.Debug("fetching employees")
	var employees []*models.Employee
	if err := c.get(ctx, employeesPath, nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// TimeEntries fetches clock entries whose business day falls between start
// and end inclusive (dates in local business time).
func (c *Client) TimeEntries(ctx context.Context, start, end time.Time) ([]*models.TimeEntry, error) {
	// Widen the window into UTC so Pacific business days are covered. The
	// end bound sits on the last millisecond of the day.
	startUTC := start.Add(pstOffset)
	endUTC := end.Add(pstOffset + 23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)

	query := url.Values{}
	query.Set("startDate", startUTC.Format(timeEntryStampLayout))
	query.Set("endDate", endUTC.Format(timeEntryStampLayout))

	c.log.Debugw("fetching time entries", "start", query.Get("startDate"), "end", query.Get("endDate"))

	var entries []*models.TimeEntry
	if err := c.get(ctx, timeEntriesPath, query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// BusinessDate renders a calendar date in the API's compact YYYYMMDD format.
func BusinessDate(date time.Time) string {
	return date.Format("20060102")
}

// OrdersForBusinessDate retrieves every order for one business date,
// paginating until a short page. Any page failure aborts the whole date
// rather than returning partial data.
func (c *Client) OrdersForBusinessDate(ctx context.Context, date time.Time) ([]*models.Order, error) {
	businessDate := BusinessDate(date)

	var all []*models.Order
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("businessDate", businessDate)
		query.Set("pageSize", strconv.Itoa(ordersPageSize))
		if page > 1 {
			query.Set("page", strconv.Itoa(page))
		}

		c.log.Debugw("fetching orders page", "businessDate", businessDate, "page", page, "total", len(all))

		var orders []*models.Order
		if err := c.get(ctx, ordersBulkPath, query, &orders); err != nil {
			return nil, err
		}
		all = append(all, orders...)

		if c.debug {
			c.dumpPage(businessDate, page, orders)
		}

		if len(orders) < ordersPageSize {
			break
		}
	}

	c.log.Debugw("retrieved orders", "businessDate", businessDate, "count", len(all))
	return all, nil
}

// OrdersForDateRange retrieves orders for every calendar day from start to
// end inclusive. A failing day is skipped with a warning; the caller gets
// diminished results rather than nothing. This is deliberately looser than
// the all-or-nothing single-date fetch.
func (c *Client) OrdersForDateRange(ctx context.Context, start, end time.Time) ([]*models.Order, error) {
	days := int(end.Sub(start).Hours()/24) + 1

	var bar *progressbar.ProgressBar
	if days > 1 && !c.debug {
		bar = progressbar.Default(int64(days), "fetching orders")
	}

	var all []*models.Order
	fetched := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		orders, err := c.OrdersForBusinessDate(ctx, day)
		if err != nil {
			c.log.Warnw("skipping business date", "date", day.Format("2006-01-02"), "err", err)
		} else {
			all = append(all, orders...)
			fetched++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if fetched < days {
		c.log.Warnf("fetched %d of %d days; results are incomplete", fetched, days)
	}
	c.log.Debugw("retrieved orders for range", "count", len(all), "days", days)
	return all, nil
}

// dumpPage writes a raw page payload next to the working directory for
// offline inspection. Dump failures never interrupt retrieval.
func (c *Client) dumpPage(businessDate string, page int, orders []*models.Order) {
	name := fmt.Sprintf("debug_orders_%s_%s_page_%d.json", c.runID, businessDate, page)
	payload := map[string]any{
		"run_id":        c.runID,
		"business_date": businessDate,
		"page":          page,
		"orders_count":  len(orders),
		"orders":        orders,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err == nil {
		err = os.WriteFile(name, data, 0o644)
	}
	if err != nil {
		c.log.Warnw("could not save debug dump", "file", name, "err", err)
		return
	}
	c.log.Infow("saved raw page", "file", name)
}
