package data

import (
	_ "embed"
)

//go:embed initdb/mysql/001-ddl-privileges.sql
var InitdbMySQLPrivileges string
