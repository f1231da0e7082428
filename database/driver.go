//go:build !sqlite_glebarez

package database

import (
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
)

// Driver names the SQLite implementation compiled in. The default is the
// wasm build from ncruces, which needs no cgo.
const Driver = "gormlite"

// GetDialect opens path with the compiled-in driver. It serves both the
// keyword store and the gotgproto session database.
func GetDialect(path string) gorm.Dialector {
	return gormlite.Open(path)
}
