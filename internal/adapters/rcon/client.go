package rcon

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
	"github.com/SscSPs/location_approval_bot/internal/metrics"
	"github.com/SscSPs/location_approval_bot/internal/middleware"
	gorcon "github.com/gorcon/rcon"
)

// Console is one authenticated console connection.
type Console interface {
	Execute(command string) (string, error)
	Close() error
}

// DialFunc opens and authenticates a console connection.
type DialFunc func(address, password string, timeout time.Duration) (Console, error)

// DialRCON dials a Source RCON server.
func DialRCON(address, password string, timeout time.Duration) (Console, error) {
	conn, err := gorcon.Dial(address, password, gorcon.SetDialTimeout(timeout), gorcon.SetDeadline(timeout))
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Config holds the console connection and marker settings.
type Config struct {
	Host     string
	Port     int
	Password string
	World    string
	Icon     string
	MarkerY  int
	Timeout  time.Duration
}

// Client is the marker sync client. It never reuses connections.
type Client struct {
	cfg     Config
	dial    DialFunc
	metrics *metrics.Metrics
}

// NewClient creates a Client. A nil dial uses DialRCON.
func NewClient(cfg Config, dial DialFunc, m *metrics.Metrics) *Client {
	if dial == nil {
		dial = DialRCON
	}
	return &Client{cfg: cfg, dial: dial, metrics: m}
}

var _ portssvc.MarkerSyncSvc = (*Client)(nil)

func (c *Client) address() string {
	return net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
}

// timeout shortens the configured timeout to the context deadline.
func (c *Client) timeout(ctx context.Context) time.Duration {
	t := c.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < t || t <= 0 {
			t = until
		}
	}
	return t
}

// execute opens a connection, sends one command, reads one response and closes.
func (c *Client) execute(ctx context.Context, kind, command string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("console_command", kind))
	start := time.Now()

	if err := ctx.Err(); err != nil {
		c.metrics.ObserveConsole(kind, "error", start)
		return "", apperrors.NewRemoteSyncError(kind, err)
	}

	conn, err := c.dial(c.address(), c.cfg.Password, c.timeout(ctx))
	if err != nil {
		c.metrics.ObserveConsole(kind, "error", start)
		logger.Error("Failed to connect to console", slog.String("address", c.address()), slog.String("error", err.Error()))
		return "", apperrors.NewRemoteSyncError("connect", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			logger.Warn("Failed to close console connection", slog.String("error", cerr.Error()))
		}
	}()

	logger.Debug("Sending console command", slog.String("command", command))
	response, err := conn.Execute(command)
	if err != nil {
		c.metrics.ObserveConsole(kind, "error", start)
		logger.Error("Console command failed", slog.String("error", err.Error()))
		return "", apperrors.NewRemoteSyncError(kind, err)
	}

	c.metrics.ObserveConsole(kind, "ok", start)
	logger.Info("Console response", slog.String("response", response))
	return response, nil
}

// AddMarker creates a marker for an approved location and returns its id.
func (c *Client) AddMarker(ctx context.Context, loc domain.Location) (string, error) {
	command := AddMarkerCommand(MarkerSpec{
		Label: loc.LocationName,
		X:     loc.XCoord,
		Y:     c.cfg.MarkerY,
		Z:     loc.ZCoord,
		Icon:  c.cfg.Icon,
		World: c.cfg.World,
	})

	response, err := c.execute(ctx, "add", command)
	if err != nil {
		return "", err
	}

	result := ParseMarkerID(response)
	if !result.Matched {
		return "", &apperrors.MarkerParseError{Response: result.Raw}
	}
	return result.ID, nil
}

// RemoveMarker deletes a marker by id. The response is not inspected.
func (c *Client) RemoveMarker(ctx context.Context, markerID string) error {
	if !IsValidMarkerID(markerID) {
		return apperrors.NewValidationFailedError(fmt.Sprintf("marker id %q is not valid", markerID))
	}
	_, err := c.execute(ctx, "delete", DeleteMarkerCommand(markerID))
	return err
}

// Ping sends the list command and returns the raw response.
func (c *Client) Ping(ctx context.Context) (string, error) {
	return c.execute(ctx, "list", ListCommand)
}
