package models

import (
	"fmt"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Schema tooling.

Migrate creates or updates every table the API needs. GenerateQueries writes gorm/gen typed
query helpers for the same models, and ColumnReport lists columns that exist in the database
but are not mapped by any model, which usually means a column was renamed or dropped from a struct.
*/

// All returns one zero value of every persisted model.
func All() []any {
	return []any{
		&Profile{},
		&Blog{},
		&Project{},
		&Message{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// GenerateQueries writes typed query helpers for all models into outPath.
func GenerateQueries(db *gorm.DB, outPath string) {
	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()
}

// ColumnDrift lists database columns of one table that no model field maps to.
type ColumnDrift struct {
	Table    string
	Unmapped []string
}

// ColumnReport compares the live schema with the models. Tables that do not exist yet are skipped.
func ColumnReport(db *gorm.DB) ([]ColumnDrift, error) {
	var report []ColumnDrift
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table
		if !db.Migrator().HasTable(table) {
			continue
		}

		columns, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("columns of %s: %w", table, err)
		}

		mapped := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			mapped[name] = true
		}

		drift := ColumnDrift{Table: table}
		for _, column := range columns {
			if !mapped[column.Name()] {
				drift.Unmapped = append(drift.Unmapped, column.Name())
			}
		}
		sort.Strings(drift.Unmapped)
		report = append(report, drift)
	}
	return report, nil
}
