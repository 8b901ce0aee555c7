package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultTimeout bounds how long a command waits for its reply.
	DefaultTimeout = 2 * time.Second

	// EventPropertyChange is sent by mpv for observed properties.
	EventPropertyChange = "property-change"
	// EventDisconnected is delivered locally when the socket closes.
	EventDisconnected = "disconnected"
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket file doesn't exist.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
	// ErrTimeout is returned when mpv does not answer in time.
	ErrTimeout = errors.New("mpv: request timed out")
	// requestID is a global counter for generating unique request IDs.
	requestID uint64
)

// ipcRequest represents a JSON IPC request to mpv.
type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID uint64        `json:"request_id"`
}

// ipcMessage is anything mpv writes to the socket: a reply carries a
// request_id, an event carries an event name.
type ipcMessage struct {
	Data      interface{} `json:"data"`
	RequestID uint64      `json:"request_id"`
	Error     string      `json:"error"`
	Event     string      `json:"event"`
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
}

// Event is an asynchronous message from mpv.
type Event struct {
	Name string
	// ID and Property identify the observer of a property-change event.
	ID       uint64
	Property string
	Data     interface{}
}

// Client is an mpv IPC client that communicates via Unix socket. A reader
// goroutine matches replies to requests by request_id and hands events to
// the handler set with OnEvent.
type Client struct {
	socketPath string
	timeout    time.Duration

	mu      sync.Mutex
	conn    net.Conn
	pending map[uint64]chan ipcMessage
	handler func(Event)

	writeMu sync.Mutex
}

// NewClient creates a new mpv IPC client for socketPath.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    DefaultTimeout,
		pending:    make(map[uint64]chan ipcMessage),
	}
}

// SetTimeout changes how long commands wait for a reply.
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
}

// OnEvent sets the event handler. It runs on the reader goroutine, so it
// must not block or issue commands on this client synchronously.
func (c *Client) OnEvent(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = fn
}

// Connect establishes a connection to the mpv IPC socket.
// Returns an error if the socket doesn't exist or connection fails.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSocketNotFound, err)
	}

	c.conn = conn
	go c.readLoop(conn)
	return nil
}

// Close closes the connection to mpv.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

// IsConnected returns true if the client is connected to mpv.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SocketPath returns the socket path this client is configured to use.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// Command sends a raw command and returns its data.
func (c *Client) Command(args ...interface{}) (interface{}, error) {
	if len(args) == 0 {
		return nil, errors.New("mpv: empty command")
	}
	return c.sendCommand(args)
}

// GetProperty retrieves the value of an mpv property.
func (c *Client) GetProperty(name string) (interface{}, error) {
	return c.Command("get_property", name)
}

// SetProperty sets the value of an mpv property.
func (c *Client) SetProperty(name string, value interface{}) error {
	_, err := c.Command("set_property", name, value)
	return err
}

// ObserveProperty asks mpv to send property-change events for name,
// tagged with id.
func (c *Client) ObserveProperty(id uint64, name string) error {
	_, err := c.Command("observe_property", id, name)
	return err
}

// Seek jumps to an absolute position in seconds.
func (c *Client) Seek(seconds float64) error {
	_, err := c.Command("seek", seconds, "absolute")
	return err
}

// GetTimePos returns the current playback position in seconds.
func (c *Client) GetTimePos() (float64, error) {
	result, err := c.GetProperty("time-pos")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetDuration returns the total duration of the video in seconds.
func (c *Client) GetDuration() (float64, error) {
	result, err := c.GetProperty("duration")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetPaused returns true if playback is paused.
func (c *Client) GetPaused() (bool, error) {
	result, err := c.GetProperty("pause")
	if err != nil {
		return false, err
	}
	paused, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: unexpected pause value type: %T", result)
	}
	return paused, nil
}

// toFloat64 converts an interface{} to float64.
// JSON numbers from mpv are typically decoded as float64.
func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

// sendCommand writes {"command": [...], "request_id": <id>} and waits for
// the reply with the same id.
func (c *Client) sendCommand(cmdArray []interface{}) (interface{}, error) {
	reqID := atomic.AddUint64(&requestID, 1)
	data, err := json.Marshal(ipcRequest{Command: cmdArray, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}
	data = append(data, '\n')

	c.mu.Lock()
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	reply := make(chan ipcMessage, 1)
	c.pending[reqID] = reply
	timeout := c.timeout
	c.mu.Unlock()

	c.writeMu.Lock()
	_, err = conn.Write(data)
	c.writeMu.Unlock()
	if err != nil {
		c.forget(reqID)
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case msg, ok := <-reply:
		if !ok {
			return nil, ErrNotConnected
		}
		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("mpv: %v: %s", cmdArray[0], msg.Error)
		}
		return msg.Data, nil
	case <-timer.C:
		c.forget(reqID)
		return nil, fmt.Errorf("%w: %v", ErrTimeout, cmdArray[0])
	}
}

func (c *Client) forget(reqID uint64) {
	c.mu.Lock()
	delete(c.pending, reqID)
	c.mu.Unlock()
}

func (c *Client) readLoop(conn net.Conn) {
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			c.disconnected(conn)
			return
		}

		var msg ipcMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}

		if msg.Event != "" {
			c.dispatch(Event{Name: msg.Event, ID: msg.ID, Property: msg.Name, Data: msg.Data})
			continue
		}

		c.mu.Lock()
		reply, ok := c.pending[msg.RequestID]
		delete(c.pending, msg.RequestID)
		c.mu.Unlock()
		if ok {
			reply <- msg
		}
	}
}

func (c *Client) dispatch(ev Event) {
	c.mu.Lock()
	fn := c.handler
	c.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

// disconnected fails every waiting request and reports the loss once.
func (c *Client) disconnected(conn net.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	for id, reply := range c.pending {
		close(reply)
		delete(c.pending, id)
	}
	c.mu.Unlock()

	conn.Close()
	c.dispatch(Event{Name: EventDisconnected})
}
