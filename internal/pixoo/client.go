package pixoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jwulff/basil-go/internal/domain"
)

// DefaultPort is the default Pixoo HTTP API port.
const DefaultPort = 80

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 5 * time.Second

// The device stops accepting frames once its animation id grows too large,
// so the counter is reset every picIDLimit frames.
const picIDLimit = 32

// Client presents frames on one device. It is safe for concurrent use;
// frames are sent one at a time.
type Client struct {
	endpoint string
	http     *http.Client

	mu    sync.Mutex
	picID int // last id sent, 0 when the device counter needs a reset
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithEndpoint sets the full request URL, overriding the device address.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// NewClient returns a client for the device at addr, a host with an
// optional port.
func NewClient(addr string, opts ...Option) *Client {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, strconv.Itoa(DefaultPort))
	}
	c := &Client{
		endpoint: "http://" + addr + "/post",
		http:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the API URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// DeviceError is a request the device answered with a non-zero error_code.
type DeviceError struct {
	Command string
	Code    int
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("pixoo: %s returned error_code %d", e.Command, e.Code)
}

type status struct {
	ErrorCode int `json:"error_code"`
}

// post sends cmd and decodes the reply into out when out is non-nil.
func (c *Client) post(ctx context.Context, name string, cmd, out any) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status code %d: %s", name, resp.StatusCode, body)
	}

	var st status
	if err := json.Unmarshal(body, &st); err != nil {
		return fmt.Errorf("%s: malformed response: %w", name, err)
	}
	if st.ErrorCode != 0 {
		return &DeviceError{Command: name, Code: st.ErrorCode}
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

// Present shows a bitmap on the device. The bitmap must pass CheckSize.
func (c *Client) Present(ctx context.Context, b *domain.Bitmap) error {
	if err := CheckSize(b); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.picID == 0 || c.picID >= picIDLimit {
		if err := c.resetGifID(ctx); err != nil {
			return err
		}
	}
	c.picID++

	domain.Logger().Debug("presenting frame", "endpoint", c.endpoint, "size", b.Width(), "pic_id", c.picID)
	if err := c.post(ctx, cmdSendGif, NewFrameCommand(b, c.picID, DefaultSpeed), nil); err != nil {
		c.picID = 0
		return err
	}
	return nil
}

// ResetGifID resets the device's animation counter.
func (c *Client) ResetGifID(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetGifID(ctx)
}

func (c *Client) resetGifID(ctx context.Context) error {
	if err := c.post(ctx, cmdResetGifID, command{Command: cmdResetGifID}, nil); err != nil {
		return err
	}
	c.picID = 0
	return nil
}

// DeviceTime is the clock reported by the device.
type DeviceTime struct {
	UTC   time.Time
	Local string
}

// DeviceTime queries the device clock.
func (c *Client) DeviceTime(ctx context.Context) (DeviceTime, error) {
	var r struct {
		UTCTime   int64  `json:"UTCTime"`
		LocalTime string `json:"LocalTime"`
	}
	if err := c.post(ctx, cmdDeviceTime, command{Command: cmdDeviceTime}, &r); err != nil {
		return DeviceTime{}, err
	}
	return DeviceTime{UTC: time.Unix(r.UTCTime, 0).UTC(), Local: r.LocalTime}, nil
}

// SetBrightness sets the display brightness, clamped to 0-100.
func (c *Client) SetBrightness(ctx context.Context, percent int) error {
	return c.post(ctx, cmdBrightness, newBrightnessCommand(percent), nil)
}

// Ping checks that the device answers requests.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.DeviceTime(ctx)
	return err
}
