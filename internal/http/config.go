package http

import (
	"go.uber.org/zap"

	"github.com/avolkov/librarian/internal/database"
	"github.com/avolkov/librarian/internal/events"
	"github.com/avolkov/librarian/internal/library"
)

// RouterConfig contains all dependencies needed to create the HTTP
// router. This replaces a long parameter list in NewRouter.
type RouterConfig struct {
	Service  *library.Service
	Database *database.Database
	Bus      *events.Bus
	Logger   *zap.Logger

	// Application info
	Version string
}
