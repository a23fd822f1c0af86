// Package executor implements operation selection, selection-set
// collection, field resolution, path tracking, value completion, and
// error propagation. It is the one package that ties the type system
// (schema), the validator's coercion helpers, and the deferred scheduler
// together into a running request.
package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/deferred"
	"github.com/brinkql/brink/schema"
	"github.com/brinkql/brink/schema/introspection"
	"github.com/brinkql/brink/validator"
)

// FieldResolver resolves a field given its context. It is the signature of
// both schema.FieldDefinition.Resolve and the request-level fallback used
// for fields that don't define their own.
type FieldResolver func(schema.FieldContext) (interface{}, error)

// DefaultFieldResolver is used when a Request doesn't supply its own
// FieldResolver: it returns source[fieldName], calling it first if it's
// callable.
func DefaultFieldResolver(ctx schema.FieldContext) (interface{}, error) {
	name := ""
	if info, ok := ctx.ResolveInfo.(*ResolveInfo); ok {
		name = info.FieldName
	}
	switch source := ctx.Object.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return callIfCallable(source[name])
	}
	rv := reflect.ValueOf(ctx.Object)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, nil
	}
	if m := reflect.ValueOf(ctx.Object).MethodByName(exportedName(name)); m.IsValid() {
		return callReflectFunc(m)
	}
	field := rv.FieldByName(exportedName(name))
	if !field.IsValid() {
		return nil, nil
	}
	return callIfCallable(field.Interface())
}

func exportedName(name string) string {
	if name == "" {
		return name
	}
	b := []byte(name)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

func callIfCallable(v interface{}) (interface{}, error) {
	switch fn := v.(type) {
	case func() (interface{}, error):
		return fn()
	case func() interface{}:
		return fn(), nil
	default:
		rv := reflect.ValueOf(v)
		if rv.IsValid() && rv.Kind() == reflect.Func && rv.Type().NumIn() == 0 {
			return callReflectFunc(rv)
		}
		return v, nil
	}
}

func callReflectFunc(m reflect.Value) (interface{}, error) {
	out := m.Call(nil)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if err, ok := out[0].Interface().(error); ok {
			return nil, err
		}
		return out[0].Interface(), nil
	default:
		var err error
		if e, ok := out[1].Interface().(error); ok {
			err = e
		}
		return out[0].Interface(), err
	}
}

// Request defines all of the inputs required to execute a GraphQL
// operation.
type Request struct {
	Context        context.Context
	Schema         *schema.Schema
	Document       *ast.Document
	OperationName  string
	VariableValues map[string]interface{}
	RootValue      interface{}

	// FieldResolver is used for any field whose definition leaves Resolve
	// nil. Defaults to DefaultFieldResolver.
	FieldResolver FieldResolver

	// Queue backs the default Adapter when Adapter is nil. A fresh Queue
	// is created if both are nil; callers driving multiple executions
	// concurrently (e.g. one per goroutine) must not share a Queue or
	// Adapter across them.
	Queue *deferred.Queue

	// Adapter lets a host swap in an external async runtime for
	// everything the scheduler would otherwise do itself.
	Adapter deferred.Adapter
}

// ExecuteRequest executes a query or mutation request and waits for it to
// complete, returning the response data and any errors collected along the
// way.
func ExecuteRequest(ctx context.Context, r *Request) (*OrderedMap, []*Error) {
	e, err := newExecutor(ctx, r)
	if err != nil {
		return nil, []*Error{err}
	}
	switch e.Operation.EffectiveOperationType() {
	case ast.OperationTypeMutation:
		return e.executeMutation(r.RootValue)
	case ast.OperationTypeSubscription:
		return e.executeSubscriptionEvent(r.RootValue)
	default:
		return e.executeQuery(r.RootValue)
	}
}

// IsSubscription reports whether operationName (selected with the same
// rules as GetOperation) names a subscription operation.
func IsSubscription(doc *ast.Document, operationName string) bool {
	op, err := GetOperation(doc, operationName)
	return err == nil && op.EffectiveOperationType() == ast.OperationTypeSubscription
}

// Subscribe resolves the single root subscription field of r and returns
// the resolver's value. Turning that value into a stream of further
// executions is up to the host.
func Subscribe(ctx context.Context, r *Request) (interface{}, *Error) {
	e, err := newExecutor(ctx, r)
	if err != nil {
		return nil, err
	}
	if e.Operation.EffectiveOperationType() != ast.OperationTypeSubscription {
		return nil, newError(e.Operation, "A subscription operation is required.")
	}
	return e.subscribe(r.RootValue)
}

// GetOperation returns the operation selected by operationName. If
// operationName is "" and the document contains exactly one operation, it
// is returned; otherwise the document must contain exactly one operation
// matching the given name.
func GetOperation(doc *ast.Document, operationName string) (*ast.OperationDefinition, *Error) {
	var ret *ast.OperationDefinition
	for _, def := range doc.Definitions {
		if op, ok := def.(*ast.OperationDefinition); ok {
			if operationName == "" || (op.Name != nil && op.Name.Name == operationName) {
				if ret != nil {
					return nil, newError(op, "Multiple matching operations.")
				}
				ret = op
			}
		}
	}
	if ret == nil {
		return nil, newError(nil, "No matching operations.")
	}
	return ret, nil
}

type executor struct {
	Context             context.Context
	Schema              *schema.Schema
	FragmentDefinitions map[string]*ast.FragmentDefinition
	VariableValues      map[string]interface{}
	Errors              []*Error
	Operation           *ast.OperationDefinition
	FieldResolver       FieldResolver
	Adapter             deferred.Adapter
}

func newExecutor(ctx context.Context, r *Request) (*executor, *Error) {
	operation, err := GetOperation(r.Document, r.OperationName)
	if err != nil {
		return nil, err
	}
	coercedVariableValues, verr := validator.CoerceVariableValues(r.Schema, operation, r.VariableValues)
	if verr != nil {
		return nil, newErrorWithValidatorError(verr)
	}

	fieldResolver := r.FieldResolver
	if fieldResolver == nil {
		fieldResolver = DefaultFieldResolver
	}
	adapter := r.Adapter
	if adapter == nil {
		queue := r.Queue
		if queue == nil {
			queue = deferred.NewQueue()
		}
		adapter = deferred.NewAdapter(queue)
	}

	e := &executor{
		Context:             ctx,
		Schema:              r.Schema,
		FragmentDefinitions: map[string]*ast.FragmentDefinition{},
		VariableValues:      coercedVariableValues,
		Operation:           operation,
		FieldResolver:       fieldResolver,
		Adapter:             adapter,
	}
	for _, def := range r.Document.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			e.FragmentDefinitions[def.Name.Name] = def
		}
	}
	return e, nil
}

func (e *executor) executeQuery(rootValue interface{}) (*OrderedMap, []*Error) {
	queryType := e.Schema.QueryType()
	if queryType == nil {
		return nil, []*Error{newError(e.Operation, "This schema cannot perform queries.")}
	}
	return e.run(e.executeSelections(e.Operation.SelectionSet.Selections, queryType, rootValue, nil, false))
}

func (e *executor) executeMutation(rootValue interface{}) (*OrderedMap, []*Error) {
	mutationType := e.Schema.MutationType()
	if mutationType == nil {
		return nil, []*Error{newError(e.Operation, "This schema cannot perform mutations.")}
	}
	return e.run(e.executeSelections(e.Operation.SelectionSet.Selections, mutationType, rootValue, nil, true))
}

func (e *executor) executeSubscriptionEvent(rootValue interface{}) (*OrderedMap, []*Error) {
	subscriptionType := e.Schema.SubscriptionType()
	if subscriptionType == nil {
		return nil, []*Error{newError(e.Operation, "This schema cannot perform subscriptions.")}
	}
	return e.run(e.executeSelections(e.Operation.SelectionSet.Selections, subscriptionType, rootValue, nil, false))
}

// run waits for an adapter-native root result and normalizes it into the
// (*OrderedMap, []*Error) response shape: a top-level error empties data
// entirely, while field-level errors caught along the way leave data
// populated (with nulls at the affected paths) alongside e.Errors.
func (e *executor) run(result interface{}) (*OrderedMap, []*Error) {
	value, err := e.Adapter.Wait(result)
	if err != nil {
		if ferr, ok := err.(*Error); ok {
			e.Errors = append(e.Errors, ferr)
		} else {
			// A bare error surfacing here (not one of this package's own
			// *Error values) means the scheduler itself broke down, e.g.
			// the task queue drained with a resolver's deferred value
			// never settled: an engine invariant violation, not
			// something a client caused.
			e.Errors = append(e.Errors, &Error{Message: "Internal server error.", IsClientSafe: false, originalError: err})
		}
		return nil, e.Errors
	}
	if value == nil {
		if len(e.Errors) > 0 {
			return nil, e.Errors
		}
		return nil, nil
	}
	return value.(*OrderedMap), e.Errors
}

func (e *executor) subscribe(rootValue interface{}) (interface{}, *Error) {
	subscriptionType := e.Schema.SubscriptionType()
	if subscriptionType == nil {
		return nil, newError(e.Operation, "This schema cannot perform subscriptions.")
	}

	groupedFieldSet := e.collectFields(subscriptionType, e.Operation.SelectionSet.Selections)
	if groupedFieldSet.Len() != 1 {
		return nil, newError(e.Operation.SelectionSet, "Subscriptions must contain exactly one root field selection.")
	}

	item := groupedFieldSet.Items()[0]
	fields := item.Fields
	field := fields[0]
	fieldDef := subscriptionType.Fields[field.Name.Name]
	if fieldDef == nil {
		return nil, newError(field, "Undefined root subscription field.")
	}
	argumentValues, err := coerceArgumentValues(field, fieldDef.Arguments, field.Arguments, e.VariableValues)
	if err != nil {
		return nil, err
	}

	resolve := fieldDef.Resolve
	if resolve == nil {
		resolve = e.FieldResolver
	}
	info := e.resolveInfo(field.Name.Name, fieldDef, subscriptionType, fields, item.Key, rootValue)
	info.Path = ((*path)(nil)).WithStringComponent(item.Key).Slice()
	resolveValue, resolveErr := resolve(schema.FieldContext{
		Context:     e.Context,
		Schema:      e.Schema,
		Object:      rootValue,
		Arguments:   argumentValues,
		IsSubscribe: true,
		ResolveInfo: info,
	})
	if resolveErr != nil {
		return nil, newFieldResolveError(fields, resolveErr, nil)
	}
	return resolveValue, nil
}

func (e *executor) resolveInfo(fieldName string, fieldDef *schema.FieldDefinition, parentType *schema.ObjectType, fields []*ast.Field, responseKey string, rootValue interface{}) *ResolveInfo {
	return &ResolveInfo{
		FieldName:      fieldName,
		ReturnType:     fieldDef.Type,
		ParentType:     parentType,
		Schema:         e.Schema,
		Fragments:      e.FragmentDefinitions,
		VariableValues: e.VariableValues,
		RootValue:      rootValue,
		Operation:      e.Operation,
		fields:         fields,
	}
}

// executeSelections runs the CollectFields + per-field resolution
// algorithm for one selection set against objectType, returning an
// adapter-native value that settles with the assembled *OrderedMap. If
// forceSerial is set (mutation top-level fields), fields are waited on
// one at a time in declaration order instead of being run concurrently
// through the scheduler.
func (e *executor) executeSelections(selections []ast.Selection, objectType *schema.ObjectType, objectValue interface{}, p *path, forceSerial bool) interface{} {
	groupedFieldSet := e.collectFields(objectType, selections)

	// Fields with no resolvable definition are dropped up front (the
	// validator would have rejected a document that relies on them), so
	// the result map's preallocated positions line up exactly with the
	// fields that actually execute.
	type pendingField struct {
		key      string
		fields   []*ast.Field
		fieldDef *schema.FieldDefinition
	}
	pending := make([]pendingField, 0, groupedFieldSet.Len())
	for _, item := range groupedFieldSet.Items() {
		fieldDef := e.lookupField(objectType, item.Fields[0].Name.Name)
		if fieldDef == nil {
			continue
		}
		pending = append(pending, pendingField{key: item.Key, fields: item.Fields, fieldDef: fieldDef})
	}
	resultMap := NewOrderedMapWithLength(len(pending))

	if forceSerial {
		for i, pf := range pending {
			fieldResult := e.catchErrorIfNullable(pf.fieldDef.Type, e.executeField(objectValue, pf.fields, pf.fieldDef, objectType, p.WithStringComponent(pf.key)))
			value, err := e.Adapter.Wait(fieldResult)
			if err != nil {
				return e.Adapter.Rejected(err)
			}
			resultMap.Set(i, pf.key, value)
		}
		return e.Adapter.Resolved(resultMap)
	}

	items := make([]interface{}, 0, len(pending))
	for i, pf := range pending {
		i := i
		pf := pf
		fieldResult := e.catchErrorIfNullable(pf.fieldDef.Type, e.executeField(objectValue, pf.fields, pf.fieldDef, objectType, p.WithStringComponent(pf.key)))
		items = append(items, e.then(fieldResult, func(v interface{}) (interface{}, error) {
			resultMap.Set(i, pf.key, v)
			return nil, nil
		}, nil))
	}

	all := e.Adapter.All(items)
	return e.then(all, func(interface{}) (interface{}, error) {
		return resultMap, nil
	}, nil)
}

// lookupField resolves a response key's field definition: __typename is
// synthesized on every composite type, and the root query type also
// exposes the introspection meta-fields. A miss returns nil; the validator
// would already have rejected a document that relies on it.
func (e *executor) lookupField(objectType *schema.ObjectType, fieldName string) *schema.FieldDefinition {
	if fieldName == "__typename" {
		name := objectType.Name
		return introspection.TypenameFieldDefinition(func(schema.FieldContext) string { return name })
	}
	if def, ok := objectType.Fields[fieldName]; ok {
		return def
	}
	if objectType == e.Schema.QueryType() {
		return introspection.MetaFields[fieldName]
	}
	return nil
}

func (e *executor) executeField(objectValue interface{}, fields []*ast.Field, fieldDef *schema.FieldDefinition, parentType *schema.ObjectType, p *path) interface{} {
	field := fields[0]
	argumentValues, coercionErr := coerceArgumentValues(field, fieldDef.Arguments, field.Arguments, e.VariableValues)
	if coercionErr != nil {
		return e.Adapter.Rejected(coercionErr)
	}
	if err := e.Context.Err(); err != nil {
		return e.Adapter.Rejected(newFieldResolveError(fields, err, p))
	}

	resolve := fieldDef.Resolve
	if resolve == nil {
		resolve = e.FieldResolver
	}
	info := e.resolveInfo(field.Name.Name, fieldDef, parentType, fields, field.ResponseKey(), objectValue)
	info.Path = p.Slice()
	resolvedValue, err := resolve(schema.FieldContext{
		Context:     e.Context,
		Schema:      e.Schema,
		Object:      objectValue,
		Arguments:   argumentValues,
		ResolveInfo: info,
	})
	if err != nil {
		return e.Adapter.Rejected(newFieldResolveError(fields, err, p))
	}
	return e.completeValue(fieldDef.Type, fields, resolvedValue, parentType, p)
}

// catchErrorIfNullable lets a rejection settle as null instead of
// propagating, recording the error, for every field type except non-null
// ones, which must bubble the rejection to the nearest nullable ancestor.
func (e *executor) catchErrorIfNullable(t schema.Type, v interface{}) interface{} {
	if schema.IsNonNullType(t) {
		return v
	}
	return e.then(v, nil, func(err error) (interface{}, error) {
		if ferr, ok := err.(*Error); ok {
			e.Errors = append(e.Errors, ferr)
		} else {
			e.Errors = append(e.Errors, &Error{Message: "Internal server error.", IsClientSafe: false, originalError: err})
		}
		return nil, nil
	})
}

// then chains onto an adapter-native (or freshly-resolved) value,
// tolerating a plain, non-deferred v by resolving it first — every
// Resolved/Rejected/Then/All result this package produces already
// satisfies Adapter.IsDeferred, so this is just a thin convenience wrapper.
func (e *executor) then(v interface{}, onFulfilled func(interface{}) (interface{}, error), onRejected func(error) (interface{}, error)) interface{} {
	if !e.Adapter.IsDeferred(v) {
		v = e.Adapter.Resolved(v)
	}
	return e.Adapter.Then(v, onFulfilled, onRejected)
}

// completeValue fits a resolver's return value to its declared type,
// recursively.
func (e *executor) completeValue(fieldType schema.Type, fields []*ast.Field, result interface{}, parentType *schema.ObjectType, p *path) interface{} {
	if e.Adapter.IsDeferred(result) {
		return e.then(result, func(v interface{}) (interface{}, error) {
			return e.completeValue(fieldType, fields, v, parentType, p), nil
		}, func(err error) (interface{}, error) {
			return nil, newFieldResolveError(fields, err, p)
		})
	}

	if nonNullType, ok := fieldType.(*schema.NonNullType); ok {
		inner := e.completeValue(nonNullType.Type, fields, result, parentType, p)
		return e.then(inner, func(v interface{}) (interface{}, error) {
			if v == nil {
				return nil, newErrorWithPath(fields[0], p, "Cannot return null for non-nullable field %s.%s", parentType.Name, fields[0].Name.Name)
			}
			return v, nil
		}, nil)
	}

	if isNil(result) {
		return e.Adapter.Resolved(nil)
	}

	switch fieldType := schema.Resolve(fieldType).(type) {
	case *schema.ListType:
		rv := reflect.ValueOf(result)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return e.Adapter.Rejected(newErrorWithPath(fields[0], p, "Result is not a list."))
		}
		innerType := fieldType.Type
		items := make([]interface{}, rv.Len())
		for i := range items {
			items[i] = e.catchErrorIfNullable(innerType, e.completeValue(innerType, fields, rv.Index(i).Interface(), parentType, p.WithIntComponent(i)))
		}
		return e.then(e.Adapter.All(items), func(v interface{}) (interface{}, error) {
			return v, nil
		}, nil)
	case *schema.ScalarType:
		coerced, err := fieldType.CoerceResult(result)
		if err != nil {
			return e.Adapter.Rejected(newErrorWithPath(fields[0], p, "Unexpected result: %v", err))
		}
		return e.Adapter.Resolved(coerced)
	case *schema.EnumType:
		coerced, err := fieldType.CoerceResult(result)
		if err != nil {
			return e.Adapter.Rejected(newErrorWithPath(fields[0], p, "Unexpected result: %v", err))
		}
		return e.Adapter.Resolved(coerced)
	case *schema.ObjectType, *schema.InterfaceType, *schema.UnionType:
		objectType, err := e.resolveAbstractType(fieldType, result)
		if err != nil {
			return e.Adapter.Rejected(newErrorWithPath(fields[0], p, "%s", err.Error()))
		}
		return e.executeSelections(mergeSelectionSets(fields), objectType, result, p, false)
	default:
		panic(fmt.Sprintf("unexpected field type: %T", fieldType))
	}
}

func (e *executor) resolveAbstractType(fieldType schema.Type, result interface{}) (*schema.ObjectType, error) {
	switch t := fieldType.(type) {
	case *schema.ObjectType:
		return t, nil
	case *schema.InterfaceType:
		if t.ResolveType != nil {
			if obj := t.ResolveType(result); obj != nil {
				return obj, nil
			}
		}
		for _, obj := range e.Schema.InterfaceImplementations(t.Name) {
			if obj.IsTypeOf != nil && obj.IsTypeOf(result) {
				return obj, nil
			}
		}
		return nil, fmt.Errorf("Unable to determine object type.")
	case *schema.UnionType:
		if t.ResolveType != nil {
			if obj := t.ResolveType(result); obj != nil {
				return obj, nil
			}
		}
		for _, obj := range t.MemberTypes {
			if obj.IsTypeOf != nil && obj.IsTypeOf(result) {
				return obj, nil
			}
		}
		return nil, fmt.Errorf("Unable to determine object type.")
	default:
		panic(fmt.Sprintf("unexpected abstract field type: %T", fieldType))
	}
}

func mergeSelectionSets(fields []*ast.Field) []ast.Selection {
	var selections []ast.Selection
	for _, field := range fields {
		if field.SelectionSet != nil {
			selections = append(selections, field.SelectionSet.Selections...)
		}
	}
	return selections
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// collectFields implements the CollectFields algorithm: it groups a
// selection set's fields by response key, expanding fragment spreads and
// inline fragments whose type condition applies to objectType and
// dropping selections skipped by @skip/@include (or any other directive
// with a FieldCollectionFilter).
func (e *executor) collectFields(objectType *schema.ObjectType, selections []ast.Selection) *GroupedFieldSet {
	groupedFieldSet := NewGroupedFieldSetWithCapacity(len(selections))
	e.collectFieldsImpl(objectType, selections, map[string]struct{}{}, groupedFieldSet)
	return groupedFieldSet
}

func (e *executor) collectFieldsImpl(objectType *schema.ObjectType, selections []ast.Selection, visitedFragments map[string]struct{}, groupedFields *GroupedFieldSet) {
	for _, selection := range selections {
		if e.isSkippedByDirective(selection) {
			continue
		}

		switch selection := selection.(type) {
		case *ast.Field:
			groupedFields.Append(selection.ResponseKey(), selection)
		case *ast.FragmentSpread:
			name := selection.FragmentName.Name
			if _, ok := visitedFragments[name]; ok {
				continue
			}
			visitedFragments[name] = struct{}{}

			fragment := e.FragmentDefinitions[name]
			if fragment == nil {
				continue
			}
			fragmentType := e.schemaType(fragment.TypeCondition)
			if fragmentType == nil || !doesFragmentTypeApply(objectType, fragmentType) {
				continue
			}
			e.collectFieldsImpl(objectType, fragment.SelectionSet.Selections, visitedFragments, groupedFields)
		case *ast.InlineFragment:
			if selection.TypeCondition != nil {
				fragmentType := e.schemaType(selection.TypeCondition)
				if fragmentType == nil || !doesFragmentTypeApply(objectType, fragmentType) {
					continue
				}
			}
			e.collectFieldsImpl(objectType, selection.SelectionSet.Selections, visitedFragments, groupedFields)
		default:
			panic(fmt.Sprintf("unexpected selection type: %T", selection))
		}
	}
}

func (e *executor) isSkippedByDirective(selection ast.Selection) bool {
	for _, directive := range selection.SelectionDirectives() {
		def := e.Schema.DirectiveDefinition(directive.Name.Name)
		if def == nil || def.FieldCollectionFilter == nil {
			continue
		}
		arguments, err := coerceArgumentValues(directive, def.Arguments, directive.Arguments, e.VariableValues)
		if err == nil && !def.FieldCollectionFilter(arguments) {
			return true
		}
	}
	return false
}

func doesFragmentTypeApply(objectType *schema.ObjectType, fragmentType schema.Type) bool {
	switch fragmentType := schema.Resolve(fragmentType).(type) {
	case *schema.ObjectType:
		return objectType.IsSameType(fragmentType)
	case *schema.InterfaceType:
		for _, impl := range objectType.ImplementedInterfaces {
			if impl.IsSameType(fragmentType) {
				return true
			}
		}
		return false
	case *schema.UnionType:
		for _, member := range fragmentType.MemberTypes {
			if member.IsSameType(objectType) {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("unexpected fragment type: %T", fragmentType))
	}
}

func (e *executor) schemaType(t ast.Type) schema.Type {
	switch t := t.(type) {
	case *ast.ListType:
		if inner := e.schemaType(t.Type); inner != nil {
			return schema.NewListType(inner)
		}
	case *ast.NonNullType:
		if inner := e.schemaType(t.Type); inner != nil {
			return schema.NewNonNullType(inner)
		}
	case *ast.NamedType:
		return e.namedType(t.Name.Name)
	default:
		panic(fmt.Sprintf("unexpected ast type: %T", t))
	}
	return nil
}

func (e *executor) namedType(name string) schema.NamedType {
	if t := e.Schema.NamedType(name); t != nil {
		return t
	}
	return introspection.NamedTypes[name]
}

func coerceArgumentValues(node ast.Node, argumentDefinitions map[string]*schema.InputValueDefinition, arguments []*ast.Argument, variableValues map[string]interface{}) (map[string]interface{}, *Error) {
	values, err := validator.CoerceArgumentValues(node, argumentDefinitions, arguments, variableValues)
	return values, newErrorWithValidatorError(err)
}
