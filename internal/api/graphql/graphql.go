package graphql

import (
	"context"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/gin-gonic/gin"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/api/middleware"
	"github.com/feral-file/ff-ownership/internal/contribution"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/ownership"
)

// Handler defines the interface for GraphQL API handlers
type Handler interface {
	// HandleGraphQL handles GraphQL queries sent with GET or POST
	HandleGraphQL(c *gin.Context)
}

// gqlHandler implements the Handler interface using gqlgen
type gqlHandler struct {
	server *handler.Server
}

// NewHandler creates a new GraphQL handler with gqlgen
func NewHandler(svc ownership.Service, ledger contribution.Ledger, json adapter.JSON) Handler {
	schema := newExecutableSchema(NewResolver(svc, ledger), json)

	srv := handler.New(schema)
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.SetQueryCache(lru.New[*ast.QueryDocument](1000))
	srv.SetErrorPresenter(ErrorPresenter)
	srv.SetRecoverFunc(RecoverFunc)
	srv.AroundOperations(logOperation)

	return &gqlHandler{server: srv}
}

// logOperation records every operation at debug level
func logOperation(ctx context.Context, next graphql.OperationHandler) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	logger.DebugCtx(ctx, "GraphQL operation", zap.String("operation", opCtx.OperationName))
	return next(ctx)
}

// HandleGraphQL processes GraphQL queries
func (h *gqlHandler) HandleGraphQL(c *gin.Context) {
	h.server.ServeHTTP(c.Writer, c.Request)
}

// SetupRoutes configures GraphQL API routes. Credentials are optional and only used by caller scoped queries.
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator) {
	group := router.Group("/graphql", middleware.Auth(auth))
	group.POST("", handler.HandleGraphQL)
	group.GET("", handler.HandleGraphQL)
}
