//go:build sqlite_glebarez

package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Driver names the SQLite implementation compiled in, here the pure Go
// modernc port selected with the sqlite_glebarez build tag.
const Driver = "glebarez"

func GetDialect(path string) gorm.Dialector {
	return sqlite.Open(path)
}
