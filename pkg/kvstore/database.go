package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/bautizosmaitte/storefront-api/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the single-table schema behind the database-backed store.
type Entry struct {
	Key       string    `gorm:"column:key;primaryKey;size:255"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName pins the storage table.
func (Entry) TableName() string { return "storefront_state" }

// Database persists entries in a relational table via GORM. Works against
// sqlite for single-node deployments and postgres for hosted ones.
type Database struct {
	client *db.Client
}

// NewDatabase migrates the state table and wraps the db client as a Store.
func NewDatabase(client *db.Client) (*Database, error) {
	if client == nil {
		return nil, errors.New("db client is required")
	}
	if err := client.DB().AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Database{client: client}, nil
}

func (d *Database) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := d.client.DB().WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry.Value, nil
}

func (d *Database) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return d.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).
		Error
}

func (d *Database) Delete(ctx context.Context, key string) error {
	return d.client.DB().WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
}

func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx)
}

func (d *Database) Close() error {
	return d.client.Close()
}
