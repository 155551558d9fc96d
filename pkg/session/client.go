package session

import (
	"fmt"

	"deluxeblackjack-server/pkg/account"
	"deluxeblackjack-server/pkg/playable"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a player's device connected via websockets. One player can
// watch their table from several clients at once.
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	session *Session

	user *account.User
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, user *account.User) *Client {
	return &Client{
		send:  make(chan interface{}, 256),
		Close: make(chan string),
		Conn:  conn,
		user:  user,
	}
}

// User returns the authenticated user behind the connection
func (c *Client) User() *account.User {
	return c.user
}

// Send sends a message to the web client, dropping it if the client's
// buffer is full
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%s:%d", c.user.Email, c.user.ID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.session == nil {
		logrus.WithField("msg", msg).Warn("received message, but session not found")
		return
	}

	c.session.ReceivedMessage(c, msg)
}
