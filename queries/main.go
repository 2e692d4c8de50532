package queries

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gitlab.com/minerex-platform/admin_api/config"
	"gitlab.com/minerex-platform/admin_api/model"
)

// Repo holds the database cluster connections. Writes go through Conn,
// request-path reads through ConnReader, and heavy admin aggregates
// through ConnReaderAdmin so dashboard scans never starve member traffic.
type Repo struct {
	Conn            *gorm.DB
	ConnReader      *gorm.DB
	ConnReaderAdmin *gorm.DB
}

// NewRepo connects the cluster.
func NewRepo(cfg config.DatabaseClusterConfig) *Repo {
	return &Repo{
		Conn:            open(cfg.Writer),
		ConnReader:      open(cfg.Reader),
		ConnReaderAdmin: open(cfg.ReaderAdmin),
	}
}

func open(cfg config.DatabaseConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn(cfg)), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.Name).Str("host", cfg.Host).Msg("Unable to connect to database")
	}
	return db
}

func dsn(cfg config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s application_name=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Name, cfg.SSLmode, cfg.ApplicationName,
	)
}

// RunMigrations applies pending schema migrations on the writer.
func RunMigrations(cfg config.DatabaseConfig) error {
	if cfg.MigrationsPath == "" {
		return nil
	}
	url := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLmode,
	)
	m, err := migrate.New("file://"+cfg.MigrationsPath, url)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// CreateAdminActivity persists one moderation audit record.
func (repo *Repo) CreateAdminActivity(activity *model.AdminActivity) error {
	return repo.Conn.Create(activity).Error
}

// applyWindow filters a half-open [start, end) window on the given column.
func applyWindow(db *gorm.DB, column string, w model.Window) *gorm.DB {
	if w.Start != nil {
		db = db.Where(column+" >= ?", *w.Start)
	}
	if w.End != nil {
		db = db.Where(column+" < ?", *w.End)
	}
	return db
}

// applyPaging applies limit/offset unless the all sentinel was requested.
func applyPaging(db *gorm.DB, p model.Paging) *gorm.DB {
	if p.Unlimited() {
		return db
	}
	return db.Limit(p.Limit).Offset(p.Offset)
}
