package infra

import (
	"fmt"

	"bomboniere/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial indexes in particular).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.Fornecedor{},
		&model.Cliente{},
		&model.Produto{},
		&model.Venda{},
		&model.VendaItem{},
		&model.VendaPagamento{},
		&model.Caixa{},
		&model.MovimentacaoCaixa{},
		&model.FechamentoCaixa{},
		&model.Usuario{},
		&model.Sessao{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// handle on its own. Each statement uses IF NOT EXISTS semantics so re-running
// on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The open-register singleton: at most one caixas row with ativo=true.
		// The application also checks before opening, but only this index makes
		// the invariant hold under concurrent open requests.
		{"unique open caixa", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_caixa_aberto') THEN
    CREATE UNIQUE INDEX uni_caixa_aberto ON caixas (ativo) WHERE ativo;
  END IF;
END $$`},
		// Sweep query support: sessions are deleted by expiry timestamp.
		{"sessoes expiry index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_sessoes_expira_em') THEN
    CREATE INDEX idx_sessoes_expira_em ON sessoes (expira_em);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
