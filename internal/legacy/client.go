// Package legacy provides read-only connectivity to the MS SQL Server
// database of the previous workshop software. It only serves the
// staff-triggered customer import; the service runs fully without it.
package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // MS SQL Server driver
	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/config"
)

const (
	// Retry configuration for connection attempts
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0

	defaultHealthCheckTimeout = 5 * time.Second
)

// Customer is one customer row of the old system.
type Customer struct {
	FirstName string
	LastName  string
	Street    string
	ZipCode   string
	City      string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
}

// Client provides read-only access to the legacy database. It manages
// connection pooling and typed queries against the old schema.
type Client struct {
	db           *sql.DB
	config       *config.LegacyConfig
	logger       *zap.Logger
	queryTimeout time.Duration
}

// HealthStatus represents the health check result for the legacy connection
type HealthStatus struct {
	Status  string        `json:"status"`
	Latency time.Duration `json:"latency_ms"`
	Error   string        `json:"error,omitempty"`
	MaxOpen int           `json:"max_open_connections"`
	Open    int           `json:"open_connections"`
	InUse   int           `json:"in_use"`
	Idle    int           `json:"idle"`
}

// NewClient creates a new legacy client. Returns nil when the legacy
// connection is not enabled or not configured; callers treat a nil client
// as "import unavailable", not as an error.
func NewClient(cfg *config.LegacyConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Legacy system connection disabled")
		return nil, nil
	}

	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("Legacy system enabled but missing credentials, skipping connection",
			zap.Bool("url_present", cfg.URL != ""),
			zap.Bool("user_present", cfg.User != ""),
			zap.Bool("password_present", cfg.Password != ""),
		)
		return nil, nil
	}

	connStr, err := buildConnectionString(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	var db *sql.DB
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		logger.Info("Attempting legacy system connection",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxRetries),
		)

		db, err = sql.Open("sqlserver", connStr)
		if err == nil {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
			db.SetMaxIdleConns(cfg.MaxIdleConns)
			db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

			ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
			err = db.PingContext(ctx)
			cancel()
			if err == nil {
				logger.Info("Legacy system connection established",
					zap.Int("attempts_taken", attempt))
				return &Client{
					db:           db,
					config:       cfg,
					logger:       logger,
					queryTimeout: cfg.QueryTimeoutDuration(),
				}, nil
			}
			_ = db.Close()
		}

		logger.Warn("Legacy system connection attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt))
		if attempt < defaultMaxRetries {
			time.Sleep(backoff)
			backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
		}
	}

	return nil, fmt.Errorf("failed to connect to legacy system after %d attempts: %w", defaultMaxRetries, err)
}

// buildConnectionString constructs a SQL Server connection string.
// URL format expected: host:port/database or host:port
func buildConnectionString(cfg *config.LegacyConfig) (string, error) {
	urlParts := strings.SplitN(cfg.URL, "/", 2)
	hostPort := urlParts[0]
	database := ""
	if len(urlParts) > 1 {
		database = urlParts[1]
	}

	hostParts := strings.SplitN(hostPort, ":", 2)
	host := hostParts[0]
	port := "1433" // Default SQL Server port
	if len(hostParts) > 1 {
		port = hostParts[1]
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}

	return u.String(), nil
}

// Close gracefully closes the legacy connection.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	c.logger.Info("Closing legacy system connection")
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close legacy connection: %w", err)
	}
	return nil
}

// IsEnabled returns true if the client is initialized and ready for queries.
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}

// HealthCheck pings the legacy database and reports pool statistics.
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if c == nil || c.db == nil {
		return &HealthStatus{Status: "disabled"}
	}

	start := time.Now()
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	err := c.db.PingContext(ctx)
	latency := time.Since(start)

	stats := c.db.Stats()
	status := &HealthStatus{
		Latency: latency,
		MaxOpen: stats.MaxOpenConnections,
		Open:    stats.OpenConnections,
		InUse:   stats.InUse,
		Idle:    stats.Idle,
	}
	if err != nil {
		c.logger.Warn("Legacy system health check failed",
			zap.Error(err),
			zap.Duration("latency", latency))
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}
	return status
}

// FetchCustomers reads customers created after the cutoff from the old
// schema. The old software kept contacts in a single flat Kunden table.
func (c *Client) FetchCustomers(ctx context.Context, since time.Time) ([]Customer, error) {
	if c == nil || c.db == nil {
		return nil, fmt.Errorf("legacy client not initialized")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	const query = `
		SELECT Vorname, Nachname, Strasse, PLZ, Ort, Email, Telefon, Bemerkung, Angelegt
		FROM dbo.Kunden
		WHERE Angelegt > @p1
		ORDER BY Angelegt ASC`

	start := time.Now()
	rows, err := c.db.QueryContext(ctx, query, since)
	if err != nil {
		c.logger.Error("Legacy customer query failed", zap.Error(err))
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var cust Customer
		var street, zip, city, email, phone, notes sql.NullString
		if err := rows.Scan(&cust.FirstName, &cust.LastName, &street, &zip, &city, &email, &phone, &notes, &cust.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		cust.Street = street.String
		cust.ZipCode = zip.String
		cust.City = city.String
		cust.Email = email.String
		cust.Phone = phone.String
		cust.Notes = notes.String
		customers = append(customers, cust)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	c.logger.Debug("Legacy customers fetched",
		zap.Int("rows", len(customers)),
		zap.Duration("duration", time.Since(start)))

	return customers, nil
}
