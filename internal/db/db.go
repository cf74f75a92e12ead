package db

import (
	"database/sql"
	"fmt"
	"net/url"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fundboard/internal/config"
)

// DB wraps one short-lived connection to a single schema.
type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
	Name string
}

// Provisioner opens fresh connections against the two source schemas.
// Every acquisition is scoped: one connection per call, torn down on
// close, never pooled and never retried. The dashboard is read-only, so
// staleness is bounded only by per-request latency.
type Provisioner struct {
	cfg config.DBConfig
}

func NewProvisioner(cfg config.DBConfig) *Provisioner {
	return &Provisioner{cfg: cfg}
}

func (p *Provisioner) dsn(database string) string {
	timeout := p.cfg.ConnectTimeout
	loc := p.cfg.Timezone
	if loc == "" {
		loc = "UTC"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=%s&timeout=%s&autocommit=true",
		p.cfg.User, p.cfg.Password, p.cfg.Host, p.cfg.Port, database,
		url.QueryEscape(loc), timeout)
}

func (p *Provisioner) open(database string) (*DB, error) {
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	gdb, err := gorm.Open(mysql.Open(p.dsn(database)), gcfg)
	if err != nil {
		return nil, err
	}

	sqldb, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	// Single short-lived connection, released as soon as the request ends.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(0)

	return &DB{Gorm: gdb, SQL: sqldb, Name: database}, nil
}

// OpenMT5 opens a fresh connection to the MT5 trading schema.
func (p *Provisioner) OpenMT5() (*DB, error) {
	return p.open(p.cfg.MT5Name)
}

// OpenAdmin opens a fresh connection to the challenge administration schema.
func (p *Provisioner) OpenAdmin() (*DB, error) {
	return p.open(p.cfg.AdminName)
}

// WithMT5 runs fn against a scoped MT5 connection, closing it on every
// exit path.
func (p *Provisioner) WithMT5(fn func(*DB) error) error {
	conn, err := p.OpenMT5()
	if err != nil {
		return err
	}
	defer Close(conn)
	return fn(conn)
}

// WithAdmin runs fn against a scoped admin connection, closing it on
// every exit path.
func (p *Provisioner) WithAdmin(fn func(*DB) error) error {
	conn, err := p.OpenAdmin()
	if err != nil {
		return err
	}
	defer Close(conn)
	return fn(conn)
}

func Close(db *DB) error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Close()
}

func Ping(db *DB) error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Ping()
}
