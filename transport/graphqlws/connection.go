// Package graphqlws implements the (deprecated but still widely deployed)
// graphql-ws subprotocol as an optional host integration on top of the
// gqlengine façade. It is never imported by ast/schema/validator/executor;
// the engine stays transport-free.
package graphqlws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/brinkql/brink/gqlengine"
)

// WebSocketSubprotocol is the value clients negotiate via the
// Sec-WebSocket-Protocol header to select this subprotocol.
const WebSocketSubprotocol = "graphql-ws"

// Connection represents a server-side graphql-ws connection.
type Connection struct {
	Handler ConnectionHandler

	conn              *websocket.Conn
	readLoopDone      chan struct{}
	writeLoopDone     chan struct{}
	outgoing          chan *websocket.PreparedMessage
	close             chan struct{}
	closeReceived     chan struct{}
	closeMessage      chan []byte
	beginClosingOnce  sync.Once
	finishClosingOnce sync.Once
	didInit           bool
}

// ConnectionHandler methods are invoked on the connection's own goroutines.
// HandleInit, HandleStart and HandleStop are called one at a time from the
// read goroutine; LogError is also called from the write goroutine, and
// Cancel from whichever goroutine begins closing (including a caller of
// Close), so those two may run concurrently with the other methods.
type ConnectionHandler interface {
	// HandleInit is called when the server receives the init message. If
	// an error is returned, it's sent to the client and the connection is
	// closed.
	HandleInit(parameters json.RawMessage) error

	// HandleStart is called when the client wants to start an operation.
	// For a query or mutation, the handler should call SendData followed
	// by SendComplete. For a subscription, SendData should be called once
	// per event, with SendComplete called if/when the stream ends.
	HandleStart(id string, query string, variables map[string]interface{}, operationName string)

	// HandleStop is called when the client wants to stop an operation.
	HandleStop(id string)

	// LogError is called when an unexpected error occurs. The connection
	// performs the appropriate protocol response regardless.
	LogError(err error)

	// Cancel is called when the connection begins closing; all in-flight
	// operations should be canceled.
	Cancel()

	// HandleClose is called once the connection is fully closed.
	HandleClose()
}

const connectionSendBufferSize = 100

// Serve takes ownership of conn and begins reading and writing to it.
func (c *Connection) Serve(conn *websocket.Conn) {
	c.conn = conn
	c.readLoopDone = make(chan struct{})
	c.writeLoopDone = make(chan struct{})
	c.outgoing = make(chan *websocket.PreparedMessage, connectionSendBufferSize)
	c.close = make(chan struct{})
	c.closeReceived = make(chan struct{})
	c.closeMessage = make(chan []byte, 1)
	conn.SetCloseHandler(func(code int, text string) error {
		select {
		case <-c.closeReceived:
		default:
			close(c.closeReceived)
		}
		return nil
	})
	go c.readLoop()
	go c.writeLoop()
}

// SendData sends a GraphQL execution result to the client.
func (c *Connection) SendData(ctx context.Context, id string, result *gqlengine.Result) error {
	buf, err := jsoniter.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "unable to marshal graphql result")
	}
	return c.sendMessage(ctx, &Message{
		Id:      id,
		Type:    MessageTypeData,
		Payload: json.RawMessage(buf),
	})
}

// SendComplete sends the "complete" message to the client, after an
// operation has finished executing or a subscription has been stopped.
func (c *Connection) SendComplete(ctx context.Context, id string) error {
	return c.sendMessage(ctx, &Message{
		Id:   id,
		Type: MessageTypeComplete,
	})
}

// Close closes the connection. This must not be called from handler
// functions.
func (c *Connection) Close() error {
	c.beginClosing(websocket.CloseNormalClosure, "close requested by application")
	c.finishClosing()
	return nil
}

func (c *Connection) sendMessage(ctx context.Context, msg *Message) error {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "error marshaling message")
	}
	prepared, err := websocket.NewPreparedMessage(websocket.TextMessage, data)
	if err != nil {
		return errors.Wrap(err, "error preparing message")
	}
	select {
	case c.outgoing <- prepared:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (c *Connection) readLoop() {
	defer close(c.readLoopDone)
	defer c.beginClosing(websocket.CloseInternalServerErr, "read error")

	for {
		_, p, err := c.conn.ReadMessage()
		if err != nil {
			if _, ok := err.(*websocket.CloseError); !ok {
				select {
				case <-c.close:
				default:
					c.Handler.LogError(errors.Wrap(err, "websocket read error"))
				}
			}
			return
		}
		c.handleMessage(context.Background(), p)
	}
}

func (c *Connection) handleMessage(ctx context.Context, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	switch msg.Type {
	case MessageTypeConnectionInit:
		if err := c.Handler.HandleInit(msg.Payload); err != nil {
			payload := struct {
				Message string `json:"message"`
			}{Message: err.Error()}
			if buf, err := jsoniter.Marshal(payload); err != nil {
				c.Handler.LogError(errors.Wrap(err, "unable to marshal connection error payload"))
			} else if err := c.sendMessage(ctx, &Message{
				Id:      msg.Id,
				Type:    MessageTypeConnectionError,
				Payload: buf,
			}); err != nil {
				c.Handler.LogError(errors.Wrap(err, "unable to send connection error"))
			}
			c.beginClosing(websocket.CloseInternalServerErr, "connection init error")
			return
		}

		c.didInit = true
		if err := c.sendMessage(ctx, &Message{Id: msg.Id, Type: MessageTypeConnectionAck}); err != nil {
			c.Handler.LogError(errors.Wrap(err, "unable to send connection ack"))
			c.beginClosing(websocket.CloseInternalServerErr, "ack send error")
		} else if err := c.sendMessage(ctx, &Message{Type: MessageTypeConnectionKeepAlive}); err != nil {
			c.Handler.LogError(errors.Wrap(err, "unable to send initial keep-alive"))
			c.beginClosing(websocket.CloseInternalServerErr, "keep-alive send error")
		}
	case MessageTypeStart:
		if !c.didInit {
			return
		}
		var payload StartPayload
		if err := jsoniter.Unmarshal(msg.Payload, &payload); err != nil {
			return
		}
		c.Handler.HandleStart(msg.Id, payload.Query, payload.Variables, payload.OperationName)
	case MessageTypeStop:
		if !c.didInit {
			return
		}
		c.Handler.HandleStop(msg.Id)
		if err := c.sendMessage(context.Background(), &Message{Id: msg.Id, Type: MessageTypeComplete}); err != nil {
			c.Handler.LogError(errors.Wrap(err, "unable to send stop response"))
		}
	case MessageTypeConnectionTerminate:
		c.beginClosing(websocket.CloseNormalClosure, "terminate requested by client")
	default:
		// unknown message types are ignored per protocol
	}
}

var keepAlivePreparedMessage *websocket.PreparedMessage

func init() {
	data, err := jsoniter.Marshal(&Message{Type: MessageTypeConnectionKeepAlive})
	if err != nil {
		panic(errors.Wrap(err, "error marshaling message"))
	}
	prepared, err := websocket.NewPreparedMessage(websocket.TextMessage, data)
	if err != nil {
		panic(errors.Wrap(err, "error preparing message"))
	}
	keepAlivePreparedMessage = prepared
}

func (c *Connection) writeLoop() {
	defer c.finishClosing()
	defer close(c.writeLoopDone)
	defer c.conn.Close()

	keepAliveTicker := time.NewTicker(15 * time.Second)
	defer keepAliveTicker.Stop()

	for {
		var msg *websocket.PreparedMessage
		select {
		case outgoing := <-c.outgoing:
			msg = outgoing
		case <-keepAliveTicker.C:
			msg = keepAlivePreparedMessage
		case closeMsg := <-c.closeMessage:
			for done := false; !done; {
				select {
				case pending := <-c.outgoing:
					c.conn.SetWriteDeadline(time.Now().Add(time.Second))
					if err := c.conn.WritePreparedMessage(pending); err != nil {
						if !websocket.IsCloseError(err, websocket.CloseAbnormalClosure, websocket.CloseGoingAway) && err != websocket.ErrCloseSent {
							c.Handler.LogError(errors.Wrap(err, "websocket write error"))
						}
						done = true
					}
				default:
					done = true
				}
			}
			if err := c.conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
				c.Handler.LogError(errors.Wrap(err, "websocket control write error"))
			}
			select {
			case <-c.closeReceived:
			case <-c.readLoopDone:
			case <-time.After(time.Second):
			}
			return
		case <-c.closeReceived:
			if err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "close requested by client")); err != nil {
				c.Handler.LogError(errors.Wrap(err, "websocket control write error"))
			}
			return
		}

		c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.conn.WritePreparedMessage(msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseAbnormalClosure, websocket.CloseGoingAway) && err != websocket.ErrCloseSent {
				c.Handler.LogError(errors.Wrap(err, "websocket write error"))
			}
			return
		}
	}
}

func (c *Connection) beginClosing(code int, text string) {
	c.beginClosingOnce.Do(func() {
		c.closeMessage <- websocket.FormatCloseMessage(code, text)
		close(c.close)
		c.Handler.Cancel()
	})
}

func (c *Connection) finishClosing() {
	<-c.readLoopDone
	<-c.writeLoopDone
	invokeHandler := false
	c.finishClosingOnce.Do(func() {
		invokeHandler = true
	})
	if invokeHandler {
		c.Handler.HandleClose()
	}
}
