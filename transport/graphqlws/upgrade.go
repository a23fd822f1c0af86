package graphqlws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/brinkql/brink/internal/applog"
	"github.com/brinkql/brink/schema"
)

// Upgrade upgrades r to a graphql-ws WebSocket connection and begins
// serving it, executing operations against s with rootValue as the root
// value for top-level resolvers. originCheck may be nil to use the
// gorilla/websocket default, which rejects a request whose Origin header
// names a host other than the request's Host.
//
// Each connection is assigned a UUID, attached to its logger as the
// "connection_id" field, so its lifecycle can be traced through logs. This
// method hijacks the HTTP connection; the caller's handler should return
// immediately afterward.
func Upgrade(w http.ResponseWriter, r *http.Request, s *schema.Schema, rootValue interface{}, originCheck func(*http.Request) bool) (*Connection, error) {
	upgrader := websocket.Upgrader{
		CheckOrigin:       originCheck,
		EnableCompression: true,
		Subprotocols:      []string{WebSocketSubprotocol},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	handler := NewHandler(r.Context(), s, rootValue)
	handler.Logger = applog.WithLogger(nil).WithField("connection_id", uuid.New().String())

	connection := &Connection{Handler: handler}
	handler.Connection = connection

	connection.Serve(conn)
	return connection, nil
}
