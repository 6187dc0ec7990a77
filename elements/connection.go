package elements

import (
	"github.com/informave/argon/ast"
	"github.com/informave/argon/dbdriver"
	"github.com/informave/argon/value"
)

// Connection is a named database connection element, grounded on
// original_source/src/connection.cc. Unlike the original (which opens
// one informave::db::Env/Connection pair per ConnNode at semantic-check
// time), Argon defers the actual *sql.DB dial to the embedder via
// engine.Engine.AddConnection and stores the already-open
// dbdriver.Connection here.
type Connection struct {
	ID     ast.Identifier
	Driver string
	DBC    *dbdriver.Connection
	Info   ast.SourceInfo
}

func (c *Connection) Value() value.Value         { return value.Str(c.ID.String()) }
func (c *Connection) String() string             { return "connection " + c.ID.String() }
func (c *Connection) ElemName() string           { return c.ID.String() }
func (c *Connection) TypeName() string           { return "connection" }
func (c *Connection) SourceInfo() ast.SourceInfo { return c.Info }
