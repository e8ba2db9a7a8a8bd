package graphql

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/feral-file/ff-ownership/internal/adapter"
	apierrors "github.com/feral-file/ff-ownership/internal/api/shared/errors"
)

//go:embed schema.graphql
var schemaSDL string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})

// executableSchema runs validated query documents against the resolver.
// Resolved values are encoded with their JSON tags, which match the schema field names,
// then projected onto the requested selection set.
type executableSchema struct {
	resolver *Resolver
	json     adapter.JSON
}

func newExecutableSchema(resolver *Resolver, json adapter.JSON) graphql.ExecutableSchema {
	return &executableSchema{resolver: resolver, json: json}
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

// Complexity leaves every field at the default cost
func (e *executableSchema) Complexity(ctx context.Context, typeName, fieldName string, childComplexity int, args map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	if opCtx.Operation.Operation != ast.Query {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported operation: %s", opCtx.Operation.Operation))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, field := range graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{"Query"}) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeKey(&buf, field.Alias)

			path := ast.Path{ast.PathName(field.Alias)}
			value, err := e.resolveQueryField(ctx, opCtx, field)
			if err != nil {
				graphql.AddError(ctx, gqlerror.WrapPath(path, err))
				buf.WriteString("null")
				continue
			}
			var out bytes.Buffer
			if err := e.write(&out, opCtx, field.Selections, field.Definition.Type, value); err != nil {
				graphql.AddError(ctx, gqlerror.WrapPath(path, err))
				buf.WriteString("null")
				continue
			}
			buf.Write(out.Bytes())
		}
		buf.WriteByte('}')

		return &graphql.Response{Data: buf.Bytes()}
	}
}

func (e *executableSchema) resolveQueryField(ctx context.Context, opCtx *graphql.OperationContext, field graphql.CollectedField) (any, error) {
	switch field.Name {
	case "__typename":
		return "Query", nil
	case "__schema", "__type":
		return nil, apierrors.NewBadRequestError("Introspection is not supported")
	}

	value, err := e.resolver.resolve(ctx, field.Name, field.ArgumentMap(opCtx.Variables))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	// decode into the generic shape the projection walks
	raw, err := e.json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", field.Name, err)
	}
	var generic any
	if err := e.json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", field.Name, err)
	}
	return generic, nil
}

// write encodes value as typ restricted to the selection set
func (e *executableSchema) write(buf *bytes.Buffer, opCtx *graphql.OperationContext, selections ast.SelectionSet, typ *ast.Type, value any) error {
	if value == nil {
		buf.WriteString("null")
		return nil
	}

	if typ.Elem != nil {
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("expected a list for %s, got %T", typ.String(), value)
		}
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.write(buf, opCtx, selections, typ.Elem, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	def := parsedSchema.Types[typ.NamedType]
	if def == nil || def.Kind != ast.Object {
		raw, err := e.json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(raw)
		return nil
	}

	object, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected an object for %s, got %T", def.Name, value)
	}
	buf.WriteByte('{')
	for i, field := range graphql.CollectFields(opCtx, selections, []string{def.Name}) {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, field.Alias)
		if field.Name == "__typename" {
			writeString(buf, def.Name)
			continue
		}
		if err := e.write(buf, opCtx, field.Selections, field.Definition.Type, object[field.Name]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeKey(buf *bytes.Buffer, key string) {
	writeString(buf, key)
	buf.WriteByte(':')
}

func writeString(buf *bytes.Buffer, s string) {
	raw, _ := json.Marshal(s)
	buf.Write(raw)
}
