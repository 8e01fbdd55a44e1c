package game

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	neturl "net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Net wraps one websocket connection to a match room. A reader goroutine
// feeds raw frames into Inbound(); the channel is closed when the socket
// dies, which is how the game loop learns about disconnects.
type Net struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	inCh   chan []byte
	closed bool
}

func Dial(wsURL string) (*Net, error) {
	log.Printf("WS dial: %s", wsURL)

	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
		Proxy: func(*http.Request) (*neturl.URL, error) {
			return nil, nil // disable proxies
		},
	}

	c, resp, err := dialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			log.Printf("WS dial failed: %s\n%s", resp.Status, string(body))
		} else {
			log.Printf("WS dial failed: %v", err)
		}
		return nil, err
	}

	n := &Net{conn: c, inCh: make(chan []byte, 128)}
	go n.reader()
	return n, nil
}

func (n *Net) reader() {
	c := n.conn
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			n.mu.Lock()
			n.closed = true
			n.conn = nil
			n.mu.Unlock()
			close(n.inCh)
			return
		}
		n.inCh <- data
	}
}

// Inbound yields raw frames in arrival order. Closed on socket teardown.
func (n *Net) Inbound() <-chan []byte { return n.inCh }

func (n *Net) Send(v any) error {
	n.mu.Lock()
	if n.closed || n.conn == nil {
		n.mu.Unlock()
		return errors.New("net: write on closed")
	}
	c := n.conn
	n.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Println("write:", err)
		n.mu.Lock()
		n.closed = true
		n.conn = nil
		n.mu.Unlock()
		return err
	}
	return nil
}

// IsClosed reports whether Close() was called or the connection was torn down.
func (n *Net) IsClosed() bool {
	if n == nil {
		return true
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

// Close closes the websocket and marks the Net as closed.
func (n *Net) Close() error {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	c := n.conn
	n.conn = nil
	n.mu.Unlock()

	var err error
	if c != nil {
		err = c.Close()
	}
	return err
}
