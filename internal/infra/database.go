package infra

import (
	"fmt"

	"github.com/upstagebunion/craftzApp/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// schema. gen_random_uuid() needs the pgcrypto extension on Postgres < 13.
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

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return nil, fmt.Errorf("pgcrypto: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

// RunMigrations applies the schema; also used by integration tests against
// throwaway containers.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Categoria{},
		&model.Subcategoria{},
		&model.Extra{},
		&model.CostoElaboracion{},
		&model.Producto{},
		&model.Variante{},
		&model.Calidad{},
		&model.Color{},
		&model.Talla{},
		&model.ImagenProducto{},
		&model.Venta{},
		&model.VentaItem{},
		&model.VentaItemExtra{},
		&model.Pago{},
		&model.Cotizacion{},
		&model.CotizacionItem{},
		&model.CotizacionItemExtra{},
		&model.MovimientoInventario{},
	)
}
