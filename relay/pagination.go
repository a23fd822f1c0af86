package relay

import (
	"context"
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/brinkql/brink/deferred"
	"github.com/brinkql/brink/schema"
)

// ConnectionConfig defines the configuration for a connection that adheres
// to the GraphQL Cursor Connections Specification.
type ConnectionConfig struct {
	// NamePrefix names the connection and edge types. "Example" produces
	// "ExampleConnection" and "ExampleEdge".
	NamePrefix string

	Description string

	// Arguments are additional arguments merged into the standard
	// first/last/before/after set.
	Arguments map[string]*schema.InputValueDefinition

	// ResolveAllEdges is used when fetching every edge up front is cheap.
	// It returns a slice value, one item per edge, and a function that
	// orders the cursors produced by EdgeCursor.
	ResolveAllEdges func(ctx schema.FieldContext) (edgeSlice interface{}, cursorLess func(a, b interface{}) bool, err error)

	// ResolveEdges is used instead of ResolveAllEdges when fetching every
	// edge is too expensive. It's only required to return edges within
	// the (after, before) range and up to limit edges (the last edges in
	// the range, if limit is negative). Returning extra or out-of-order
	// edges is fine; they're sorted and filtered automatically, but
	// duplicates are not removed.
	ResolveEdges func(ctx schema.FieldContext, after, before interface{}, limit int) (edgeSlice interface{}, cursorLess func(a, b interface{}) bool, err error)

	// ResolveTotalCount adds a totalCount field. Required for
	// ResolveEdges; ResolveAllEdges doesn't need it.
	ResolveTotalCount func(ctx schema.FieldContext) (interface{}, error)

	// CursorType allows the connection to deserialize cursors.
	CursorType reflect.Type

	// EdgeCursor returns a value (of CursorType) usable to determine an
	// edge's relative ordering. It must msgpack-marshal and -unmarshal
	// cleanly.
	EdgeCursor func(edge interface{}) interface{}

	// EdgeFields provides field definitions for each node. A "cursor"
	// field is added automatically.
	EdgeFields map[string]*schema.FieldDefinition

	ImplementedInterfaces []*schema.InterfaceType
}

func serializeCursor(cursor interface{}) (string, error) {
	b, err := msgpack.Marshal(cursor)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func deserializeCursor(t reflect.Type, s string) interface{} {
	ret := reflect.New(t)
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		if err := msgpack.Unmarshal(b, ret.Interface()); err == nil {
			return ret.Elem().Interface()
		}
	}
	return nil
}

func (cfg *ConnectionConfig) applyCursorsToEdges(allEdges []interface{}, before, after interface{}, cursorLess func(a, b interface{}) bool) (edges []edge, hasPreviousPage, hasNextPage bool) {
	edges = []edge{}

	for _, e := range allEdges {
		cursor := cfg.EdgeCursor(e)
		if after != nil && !cursorLess(after, cursor) {
			hasPreviousPage = true
			continue
		}
		if before != nil && !cursorLess(cursor, before) {
			hasNextPage = true
			continue
		}
		edges = append(edges, edge{Value: e, Cursor: cursor})
	}

	sort.Slice(edges, func(i, j int) bool {
		return cursorLess(edges[i].Cursor, edges[j].Cursor)
	})

	return
}

// PageInfo is the page info of a GraphQL Cursor Connection.
type PageInfo struct {
	HasPreviousPage bool
	HasNextPage     bool
	StartCursor     string
	EndCursor       string
}

// PageInfoType is the GraphQL type backing PageInfo.
var PageInfoType = &schema.ObjectType{
	Name: "PageInfo",
	Fields: map[string]*schema.FieldDefinition{
		"hasPreviousPage": boolField("HasPreviousPage"),
		"hasNextPage":     boolField("HasNextPage"),
		"startCursor":     stringField("StartCursor"),
		"endCursor":       stringField("EndCursor"),
	},
}

func boolField(name string) *schema.FieldDefinition {
	return &schema.FieldDefinition{
		Type: schema.NewNonNullType(schema.BooleanType),
		Cost: schema.FieldResolverCost(0),
		Resolve: func(ctx schema.FieldContext) (interface{}, error) {
			return fieldValue(ctx.Object, name), nil
		},
	}
}

func stringField(name string) *schema.FieldDefinition {
	return &schema.FieldDefinition{
		Type: schema.NewNonNullType(schema.StringType),
		Cost: schema.FieldResolverCost(0),
		Resolve: func(ctx schema.FieldContext) (interface{}, error) {
			return fieldValue(ctx.Object, name), nil
		},
	}
}

func fieldValue(object interface{}, name string) interface{} {
	v := reflect.ValueOf(object)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v.FieldByName(name).Interface()
}

type edge struct {
	Value  interface{}
	Cursor interface{}
}

type connection struct {
	ResolveTotalCount func() (interface{}, error)
	Edges             []edge
	ResolvePageInfo   func() (interface{}, error)
}

type maxEdgeCountContextKeyType int

var maxEdgeCountContextKey maxEdgeCountContextKeyType

// Connection builds a field definition for a connection adhering to the
// GraphQL Cursor Connections Specification.
func Connection(config *ConnectionConfig) *schema.FieldDefinition {
	edgeFields := map[string]*schema.FieldDefinition{
		"cursor": {
			Type: schema.NewNonNullType(schema.StringType),
			Cost: schema.FieldResolverCost(0),
			Resolve: func(ctx schema.FieldContext) (interface{}, error) {
				s, err := serializeCursor(ctx.Object.(edge).Cursor)
				if err != nil {
					return nil, errors.Wrap(err, "error serializing cursor")
				}
				return s, nil
			},
		},
	}
	for k, v := range config.EdgeFields {
		def := *v
		resolve := def.Resolve
		def.Resolve = func(ctx schema.FieldContext) (interface{}, error) {
			ctx.Object = ctx.Object.(edge).Value
			return resolve(ctx)
		}
		edgeFields[k] = &def
	}

	edgeType := &schema.ObjectType{
		Name:   config.NamePrefix + "Edge",
		Fields: edgeFields,
	}
	for _, iface := range config.ImplementedInterfaces {
		if ifaceEdge, ok := iface.Fields["edges"]; ok {
			if edgeInterface, ok := schema.UnwrappedType(ifaceEdge.Type).(*schema.InterfaceType); ok {
				edgeType.ImplementedInterfaces = append(edgeType.ImplementedInterfaces, edgeInterface)
			}
		}
	}

	connectionType := &schema.ObjectType{
		Name:        config.NamePrefix + "Connection",
		Description: config.Description,
		Fields: map[string]*schema.FieldDefinition{
			"edges": {
				Type: schema.NewNonNullType(schema.NewListType(schema.NewNonNullType(edgeType))),
				Cost: func(ctx schema.FieldCostContext) schema.FieldCost {
					maxCount, _ := ctx.Context.Value(maxEdgeCountContextKey).(int)
					return schema.FieldCost{Resolver: 0, Multiplier: maxCount}
				},
				Resolve: func(ctx schema.FieldContext) (interface{}, error) {
					return ctx.Object.(*connection).Edges, nil
				},
			},
			"pageInfo": {
				Type: schema.NewNonNullType(PageInfoType),
				// The cost is already accounted for by the connection
				// itself, via edges' multiplier.
				Cost: schema.FieldResolverCost(0),
				Resolve: func(ctx schema.FieldContext) (interface{}, error) {
					return ctx.Object.(*connection).ResolvePageInfo()
				},
			},
		},
		ImplementedInterfaces: config.ImplementedInterfaces,
	}

	if config.ResolveAllEdges != nil || config.ResolveTotalCount != nil {
		connectionType.Fields["totalCount"] = &schema.FieldDefinition{
			Type: schema.NewNonNullType(schema.IntType),
			Resolve: func(ctx schema.FieldContext) (interface{}, error) {
				return ctx.Object.(*connection).ResolveTotalCount()
			},
		}
	}

	ret := &schema.FieldDefinition{
		Type: connectionType,
		Arguments: map[string]*schema.InputValueDefinition{
			"first":  {Type: schema.IntType},
			"last":   {Type: schema.IntType},
			"before": {Type: schema.StringType},
			"after":  {Type: schema.StringType},
		},
		Cost: func(ctx schema.FieldCostContext) schema.FieldCost {
			maxCount, _ := ctx.Arguments["first"].(int)
			if last, ok := ctx.Arguments["last"].(int); ok {
				maxCount = last
			}
			return schema.FieldCost{
				Context:  context.WithValue(ctx.Context, maxEdgeCountContextKey, maxCount),
				Resolver: 1,
			}
		},
		Description: config.Description,
		Resolve: func(ctx schema.FieldContext) (interface{}, error) {
			if first, ok := ctx.Arguments["first"].(int); ok {
				if first < 0 {
					return nil, fmt.Errorf("the `first` argument cannot be negative")
				} else if _, ok := ctx.Arguments["last"].(int); ok {
					return nil, fmt.Errorf("you cannot provide both `first` and `last` arguments")
				}
			} else if last, ok := ctx.Arguments["last"].(int); ok {
				if last < 0 {
					return nil, fmt.Errorf("the `last` argument cannot be negative")
				}
			} else {
				return nil, fmt.Errorf("you must provide either the `first` or `last` argument")
			}

			var afterCursor interface{}
			if after, _ := ctx.Arguments["after"].(string); after != "" {
				if afterCursor = deserializeCursor(config.CursorType, after); afterCursor == nil {
					return nil, fmt.Errorf("invalid after cursor")
				}
			}

			var beforeCursor interface{}
			if before, _ := ctx.Arguments["before"].(string); before != "" {
				if beforeCursor = deserializeCursor(config.CursorType, before); beforeCursor == nil {
					return nil, fmt.Errorf("invalid before cursor")
				}
			}

			var limit int
			if first, ok := ctx.Arguments["first"].(int); ok {
				limit = first + 1
			} else {
				limit = -(ctx.Arguments["last"].(int) + 1)
			}

			resolve := func() (interface{}, func(a, b interface{}) bool, error) {
				return config.ResolveAllEdges(ctx)
			}
			if config.ResolveAllEdges == nil {
				resolve = func() (interface{}, func(a, b interface{}) bool, error) {
					return config.ResolveEdges(ctx, afterCursor, beforeCursor, limit)
				}
			}

			if (limit == 1 || limit == -1) && (config.ResolveTotalCount != nil || config.ResolveAllEdges == nil) {
				// No edges requested. Defer all work until pageInfo is
				// actually resolved. A totalCount taken from
				// ResolveAllEdges' result goes through the full path below.
				return &connection{
					ResolveTotalCount: func() (interface{}, error) {
						return config.ResolveTotalCount(ctx)
					},
					Edges: []edge{},
					ResolvePageInfo: func() (interface{}, error) {
						edgeSlice, cursorLess, err := resolve()
						if err != nil {
							return nil, err
						}
						conn, err := completeConnection(config, ctx, beforeCursor, afterCursor, cursorLess, edgeSlice)
						if err != nil {
							return nil, err
						}
						if d, ok := conn.(*deferred.Deferred); ok {
							return d.Then(func(v interface{}) (interface{}, error) {
								return v.(*connection).ResolvePageInfo()
							}, nil), nil
						}
						return conn.(*connection).ResolvePageInfo()
					},
				}, nil
			}

			edgeSlice, cursorLess, err := resolve()
			if err != nil {
				return nil, err
			}
			return completeConnection(config, ctx, beforeCursor, afterCursor, cursorLess, edgeSlice)
		},
	}

	for name, def := range config.Arguments {
		ret.Arguments[name] = def
	}

	return ret
}

func completeConnection(config *ConnectionConfig, ctx schema.FieldContext, beforeCursor, afterCursor interface{}, cursorLess func(a, b interface{}) bool, edgeSlice interface{}) (interface{}, error) {
	if d, ok := edgeSlice.(*deferred.Deferred); ok {
		return d.Then(func(edgeSlice interface{}) (interface{}, error) {
			return completeConnection(config, ctx, beforeCursor, afterCursor, cursorLess, edgeSlice)
		}, nil), nil
	}

	edgeSliceValue := reflect.ValueOf(edgeSlice)
	if edgeSliceValue.Kind() != reflect.Slice {
		return nil, fmt.Errorf("unexpected non-slice type %T for edges", edgeSlice)
	}

	resolveTotalCount := func() (interface{}, error) {
		return edgeSliceValue.Len(), nil
	}
	if config.ResolveTotalCount != nil {
		resolveTotalCount = func() (interface{}, error) {
			return config.ResolveTotalCount(ctx)
		}
	}

	ifaces := make([]interface{}, edgeSliceValue.Len())
	for i := range ifaces {
		ifaces[i] = edgeSliceValue.Index(i).Interface()
	}

	edges, hasPreviousPage, hasNextPage := config.applyCursorsToEdges(ifaces, beforeCursor, afterCursor, cursorLess)

	if first, ok := ctx.Arguments["first"].(int); ok {
		if len(edges) > first {
			edges = edges[:first]
			hasNextPage = true
		} else {
			hasNextPage = false
		}
	}

	if last, ok := ctx.Arguments["last"].(int); ok {
		if len(edges) > last {
			edges = edges[len(edges)-last:]
			hasPreviousPage = true
		} else {
			hasPreviousPage = false
		}
	}

	pageInfo := &PageInfo{
		HasPreviousPage: hasPreviousPage,
		HasNextPage:     hasNextPage,
	}
	if len(edges) > 0 {
		var err error
		pageInfo.StartCursor, err = serializeCursor(edges[0].Cursor)
		if err != nil {
			return nil, errors.Wrap(err, "error serializing start cursor")
		}
		pageInfo.EndCursor, err = serializeCursor(edges[len(edges)-1].Cursor)
		if err != nil {
			return nil, errors.Wrap(err, "error serializing end cursor")
		}
	}
	return &connection{
		ResolveTotalCount: resolveTotalCount,
		Edges:             edges,
		ResolvePageInfo: func() (interface{}, error) {
			return pageInfo, nil
		},
	}, nil
}

// TimeBasedCursor is the cursor payload for connections whose edges are
// ordered by time, then id as a tiebreaker.
type TimeBasedCursor struct {
	Nano int64
	ID   string
}

// NewTimeBasedCursor builds a TimeBasedCursor from a time and tiebreaker id.
func NewTimeBasedCursor(t time.Time, id string) TimeBasedCursor {
	return TimeBasedCursor{Nano: t.UnixNano(), ID: id}
}

func timeBasedCursorLess(a, b interface{}) bool {
	ac, bc := a.(TimeBasedCursor), b.(TimeBasedCursor)
	return ac.Nano < bc.Nano || (ac.Nano == bc.Nano && strings.Compare(ac.ID, bc.ID) < 0)
}

// TimeBasedConnectionConfig configures a time-ordered connection.
type TimeBasedConnectionConfig struct {
	Description string
	NamePrefix  string

	EdgeCursor func(edge interface{}) TimeBasedCursor
	EdgeFields map[string]*schema.FieldDefinition

	// EdgeGetter returns edges within [minTime, maxTime]. If limit is
	// zero, every edge in range is returned; if positive, up to limit
	// edges from the start of the range; if negative, up to -limit edges
	// from the end of the range.
	EdgeGetter func(ctx schema.FieldContext, minTime, maxTime time.Time, limit int) (interface{}, error)

	Arguments             map[string]*schema.InputValueDefinition
	ResolveTotalCount     func(ctx schema.FieldContext) (interface{}, error)
	ImplementedInterfaces []*schema.InterfaceType
}

var distantFuture = time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC)

// TimeBasedConnection builds a connection field for edges sorted by time,
// adding atOrAfterTime/beforeTime range arguments alongside the standard
// Relay pagination arguments.
func TimeBasedConnection(config *TimeBasedConnectionConfig) *schema.FieldDefinition {
	arguments := map[string]*schema.InputValueDefinition{
		"atOrAfterTime": {Type: DateTimeType},
		"beforeTime":    {Type: DateTimeType},
	}
	for name, def := range config.Arguments {
		arguments[name] = def
	}

	description := config.Description
	if description == "" {
		description = "Provides nodes sorted by time."
	}

	return Connection(&ConnectionConfig{
		NamePrefix:  config.NamePrefix,
		Arguments:   arguments,
		Description: description,
		EdgeCursor: func(e interface{}) interface{} {
			return config.EdgeCursor(e)
		},
		EdgeFields:        config.EdgeFields,
		CursorType:        reflect.TypeOf(TimeBasedCursor{}),
		ResolveTotalCount: config.ResolveTotalCount,
		ResolveEdges: func(ctx schema.FieldContext, after, before interface{}, limit int) (interface{}, func(a, b interface{}) bool, error) {
			atOrAfterTime := time.Time{}
			if t, ok := ctx.Arguments["atOrAfterTime"].(time.Time); ok {
				atOrAfterTime = t
			}

			beforeTime := distantFuture
			if t, ok := ctx.Arguments["beforeTime"].(time.Time); ok {
				beforeTime = t
			}

			minTime, maxTime := atOrAfterTime, beforeTime.Add(-time.Nanosecond)

			if afterCursor, ok := after.(TimeBasedCursor); ok {
				if t := time.Unix(0, afterCursor.Nano+1); t.After(minTime) {
					minTime = t
				}
			}
			if beforeCursor, ok := before.(TimeBasedCursor); ok {
				if t := time.Unix(0, beforeCursor.Nano-1); t.Before(maxTime) {
					maxTime = t
				}
			}

			edgeSlice, err := config.EdgeGetter(ctx, minTime, maxTime, limit)
			if err != nil {
				return nil, nil, err
			}
			return edgeSlice, timeBasedCursorLess, nil
		},
		ImplementedInterfaces: config.ImplementedInterfaces,
	})
}
