// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package history

// setup for the history db
// includes migration support and txwrap setup

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/icewmcp/icewmcp/pkg/panelbase"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sawka/txwrap"

	dbfs "github.com/icewmcp/icewmcp/db"
	sqlite3migrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
)

const HistoryDBName = "icewmcp.db"

type TxWrap = txwrap.TxWrap

var globalDB *sqlx.DB
var useTestingDb bool // just for testing (forces MakeDB to return an in-memory db)

func InitHistoryStore() error {
	ctx, cancelFn := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelFn()
	var err error
	globalDB, err = MakeDB(ctx)
	if err != nil {
		return err
	}
	err = migrateDB()
	if err != nil {
		return err
	}
	err = seedRunHistory(ctx)
	if err != nil {
		return err
	}
	log.Printf("history store initialized\n")
	return nil
}

func GetDBName() string {
	dataDir := panelbase.GetPanelDataDir()
	return filepath.Join(dataDir, panelbase.PanelDBDir, HistoryDBName)
}

// migrateDB brings the schema up to date from the migrations embedded in the
// db package. A dirty version means a previous migration died halfway; the
// db file has to be removed by hand.
func migrateDB() error {
	srcDriver, err := iofs.New(dbfs.HistoryMigrationFS, "migrations-history")
	if err != nil {
		return fmt.Errorf("opening migration fs: %w", err)
	}
	dbDriver, err := sqlite3migrate.WithInstance(globalDB.DB, &sqlite3migrate.Config{})
	if err != nil {
		return fmt.Errorf("making migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", srcDriver, "sqlite3", dbDriver)
	if err != nil {
		return fmt.Errorf("making migration: %w", err)
	}
	prevVersion, dirty, err := m.Version()
	if err == migrate.ErrNilVersion {
		prevVersion, dirty, err = 0, false, nil
	}
	if err != nil {
		return fmt.Errorf("cannot get history db version: %w", err)
	}
	if dirty {
		return fmt.Errorf("history db version %d is dirty, remove %s and restart", prevVersion, GetDBName())
	}
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrating history db: %w", err)
	}
	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("cannot get history db version: %w", err)
	}
	if newVersion != prevVersion {
		log.Printf("[db] history schema migrated, version %d -> %d\n", prevVersion, newVersion)
	}
	return nil
}

func MakeDB(ctx context.Context) (*sqlx.DB, error) {
	var rtn *sqlx.DB
	var err error
	if useTestingDb {
		dbName := ":memory:"
		log.Printf("[db] using in-memory db\n")
		rtn, err = sqlx.Open("sqlite3", dbName)
	} else {
		dbName := GetDBName()
		log.Printf("[db] opening db %s\n", dbName)
		rtn, err = sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=rwc&_journal_mode=WAL&_busy_timeout=5000", dbName))
	}
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	rtn.DB.SetMaxOpenConns(1)
	return rtn, nil
}

func CloseDB() {
	if globalDB != nil {
		globalDB.Close()
		globalDB = nil
	}
}

func WithTx(ctx context.Context, fn func(tx *TxWrap) error) error {
	return txwrap.WithTx(ctx, globalDB, fn)
}

func WithTxRtn[RT any](ctx context.Context, fn func(tx *TxWrap) (RT, error)) (RT, error) {
	return txwrap.WithTxRtn(ctx, globalDB, fn)
}
