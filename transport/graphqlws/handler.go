package graphqlws

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/executor"
	"github.com/brinkql/brink/gqlengine"
	"github.com/brinkql/brink/internal/applog"
	"github.com/brinkql/brink/parser"
	"github.com/brinkql/brink/schema"
	"github.com/brinkql/brink/validator"
)

// EventSource is the shape a subscription root field's resolver should
// return for its result to be driven as a stream of events by this
// transport. The engine itself only resolves the root field; this package
// is the host integration that turns the result into a stream, by
// re-invoking the executor once per event with the event as RootValue.
type EventSource interface {
	// Run blocks, invoking onEvent once per event, until ctx is canceled
	// or the stream ends on its own.
	Run(ctx context.Context, onEvent func(event interface{})) error

	// Stop ends the stream, causing a pending Run to return.
	Stop()
}

// Handler implements ConnectionHandler on top of a fixed schema, driving
// queries, mutations, and subscriptions through gqlengine/executor.
type Handler struct {
	Schema        *schema.Schema
	RootValue     interface{}
	FieldResolver executor.FieldResolver
	Logger        logrus.FieldLogger

	// HandleConnectionInit, if given, is invoked with the client's init
	// payload. Returning an error rejects the connection; the returned
	// context is used for every subsequent operation on the connection.
	// This is the usual authentication hook.
	HandleConnectionInit func(ctx context.Context, parameters json.RawMessage) (context.Context, error)

	// Connection is set by Upgrade (or by callers wiring a Handler/
	// Connection pair up manually) before Serve is invoked.
	Connection *Connection

	ctx        context.Context
	cancel     context.CancelFunc
	sources    map[string]EventSource
	cancelFunc map[string]context.CancelFunc
}

// NewHandler constructs a Handler bound to parentCtx, whose cancellation
// (e.g. because the owning HTTP request ended) tears down every
// in-flight operation.
func NewHandler(parentCtx context.Context, s *schema.Schema, rootValue interface{}) *Handler {
	ctx, cancel := context.WithCancel(parentCtx)
	return &Handler{
		Schema:     s,
		RootValue:  rootValue,
		ctx:        ctx,
		cancel:     cancel,
		sources:    map[string]EventSource{},
		cancelFunc: map[string]context.CancelFunc{},
	}
}

func (h *Handler) logger() logrus.FieldLogger {
	return applog.WithLogger(h.Logger)
}

func (h *Handler) HandleInit(parameters json.RawMessage) error {
	if h.HandleConnectionInit != nil {
		ctx, err := h.HandleConnectionInit(h.ctx, parameters)
		if err != nil {
			return err
		}
		h.ctx = ctx
	}
	return nil
}

func (h *Handler) HandleStart(id, query string, variables map[string]interface{}, operationName string) {
	doc, perrs := parser.ParseDocument([]byte(query))
	if len(perrs) > 0 {
		h.sendErrors(id, perrs)
		return
	}
	if vErrs := validator.ValidateDocument(doc, h.Schema, nil); len(vErrs) > 0 {
		h.sendValidationErrors(id, vErrs)
		return
	}

	if executor.IsSubscription(doc, operationName) {
		h.startSubscription(id, doc, operationName, variables)
		return
	}

	result := gqlengine.Execute(&gqlengine.Request{
		Schema:         h.Schema,
		Source:         doc,
		RootValue:      h.RootValue,
		Context:        h.ctx,
		VariableValues: variables,
		OperationName:  operationName,
		FieldResolver:  h.FieldResolver,
	})
	h.sendResult(id, result)
	h.sendComplete(id)
}

func (h *Handler) startSubscription(id string, doc *ast.Document, operationName string, variables map[string]interface{}) {
	value, err := executor.Subscribe(h.ctx, &executor.Request{
		Schema:         h.Schema,
		Document:       doc,
		OperationName:  operationName,
		VariableValues: variables,
		RootValue:      h.RootValue,
		FieldResolver:  h.FieldResolver,
	})
	if err != nil {
		h.sendResult(id, &gqlengine.Result{})
		h.logger().Warn(errors.Wrap(err, "error starting subscription"))
		h.sendComplete(id)
		return
	}

	source, ok := value.(EventSource)
	if !ok {
		h.logger().Warn("subscription root field did not resolve to an EventSource")
		h.sendComplete(id)
		return
	}

	ctx, cancel := context.WithCancel(h.ctx)
	h.sources[id] = source
	h.cancelFunc[id] = cancel

	go func() {
		runErr := source.Run(ctx, func(event interface{}) {
			result := gqlengine.Execute(&gqlengine.Request{
				Schema:         h.Schema,
				Source:         doc,
				RootValue:      event,
				Context:        ctx,
				VariableValues: variables,
				OperationName:  operationName,
				FieldResolver:  h.FieldResolver,
			})
			h.sendResult(id, result)
		})
		if runErr != nil && runErr != context.Canceled {
			h.logger().Warn(errors.Wrap(runErr, "error running subscription event source"))
		}
		h.sendComplete(id)
	}()
}

func (h *Handler) HandleStop(id string) {
	if source, ok := h.sources[id]; ok {
		source.Stop()
	}
	if cancel, ok := h.cancelFunc[id]; ok {
		cancel()
	}
	delete(h.sources, id)
	delete(h.cancelFunc, id)
}

func (h *Handler) LogError(err error) {
	h.logger().Error(err)
}

func (h *Handler) Cancel() {
	h.cancel()
}

func (h *Handler) HandleClose() {
	for id, source := range h.sources {
		source.Stop()
		delete(h.sources, id)
	}
}

func (h *Handler) sendResult(id string, result *gqlengine.Result) {
	if err := h.Connection.SendData(h.ctx, id, result); err != nil {
		h.logger().Warn(errors.Wrap(err, "error sending graphql-ws data"))
	}
}

func (h *Handler) sendComplete(id string) {
	if err := h.Connection.SendComplete(h.ctx, id); err != nil {
		h.logger().Warn(errors.Wrap(err, "error sending graphql-ws complete"))
	}
}

func (h *Handler) sendErrors(id string, perrs []*parser.Error) {
	errs := make([]gqlengine.ErrorJSON, len(perrs))
	for i, err := range perrs {
		pos := err.Position()
		errs[i] = gqlengine.ErrorJSON{
			Message:   err.Error(),
			Locations: []gqlengine.LocationJSON{{Line: pos.Line, Column: pos.Column}},
		}
	}
	h.sendResult(id, &gqlengine.Result{Errors: errs})
	h.sendComplete(id)
}

func (h *Handler) sendValidationErrors(id string, verrs []*validator.Error) {
	errs := make([]gqlengine.ErrorJSON, len(verrs))
	for i, err := range verrs {
		locs := make([]gqlengine.LocationJSON, len(err.Locations))
		for j, loc := range err.Locations {
			locs[j] = gqlengine.LocationJSON{Line: loc.Line, Column: loc.Column}
		}
		errs[i] = gqlengine.ErrorJSON{Message: err.Message, Locations: locs}
	}
	h.sendResult(id, &gqlengine.Result{Errors: errs})
	h.sendComplete(id)
}
