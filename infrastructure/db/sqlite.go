package db

import (
	"context"
	"time"

	"github.com/prasetyowira/mxlabel/constant"
	"github.com/prasetyowira/mxlabel/domain/label"
	appLogger "github.com/prasetyowira/mxlabel/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// JournalRepository implements label.Journal on SQLite
type JournalRepository struct {
	db *gorm.DB
}

// LabelEventModel is the GORM model for one label generation event
type LabelEventModel struct {
	ID         uint   `gorm:"primaryKey"`
	Kind       string `gorm:"not null"`
	ResourceID string `gorm:"not null"`
	Name       string
	Variant    string `gorm:"not null"`
	Filename   string `gorm:"not null"`
	FontSize   int
	CreatedAt  time.Time `gorm:"index"`
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	// Only log SQL queries if in debug mode
	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewJournalRepository opens (or creates) the journal database and migrates
// its schema
func NewJournalRepository(dbPath string) (*JournalRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	dbLogger := &GormLogger{}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&LabelEventModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Journal database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &JournalRepository{db: db}, nil
}

// Record persists one label generation event
func (r *JournalRepository) Record(ctx context.Context, entry *label.JournalEntry) error {
	result := r.db.Exec(`INSERT INTO label_event_models (kind, resource_id, name, variant, filename, font_size, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(entry.Kind), entry.ResourceID, entry.Name, string(entry.Variant), entry.Filename, entry.FontSize, entry.CreatedAt)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to insert label event", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRecordEvent,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataResourceID: entry.ResourceID,
				constant.DataFilename:   entry.Filename,
			},
		})
		return result.Error
	}

	appLogger.CtxDebug(ctx, "Label event journaled", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRecordEvent,
		Data: map[string]interface{}{
			constant.DataResourceID: entry.ResourceID,
			constant.DataFilename:   entry.Filename,
		},
	})

	return nil
}

// Recent retrieves the most recent label generation events, newest first
func (r *JournalRepository) Recent(ctx context.Context, limit int) ([]label.JournalEntry, error) {
	appLogger.CtxDebug(ctx, "Loading recent label events", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRecent,
		Data: map[string]interface{}{
			constant.DataLimit: limit,
		},
	})

	rows, err := r.db.Raw(`SELECT id, kind, resource_id, name, variant, filename, font_size, created_at FROM label_event_models ORDER BY created_at DESC, id DESC LIMIT ?`, limit).Rows()
	if err != nil {
		appLogger.CtxError(ctx, "Database error while loading label events", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRecent,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBSelect,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataLimit: limit,
			},
		})
		return nil, err
	}
	defer rows.Close()

	entries := []label.JournalEntry{}
	for rows.Next() {
		var model LabelEventModel
		if err := r.db.ScanRows(rows, &model); err != nil {
			appLogger.CtxError(ctx, "Failed to scan database rows", appLogger.LoggerInfo{
				ContextFunction: constant.CtxRecent,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeDBScanRows,
					Message: err.Error(),
					Type:    constant.ErrTypeDB,
				},
			})
			return nil, err
		}
		entries = append(entries, label.JournalEntry{
			ID:         model.ID,
			Kind:       label.Kind(model.Kind),
			ResourceID: model.ResourceID,
			Name:       model.Name,
			Variant:    label.Variant(model.Variant),
			Filename:   model.Filename,
			FontSize:   model.FontSize,
			CreatedAt:  model.CreatedAt,
		})
	}

	if err := rows.Err(); err != nil {
		appLogger.CtxError(ctx, "Row iteration error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRecent,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBRowIterate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxDebug(ctx, "Recent label events loaded", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRecent,
		Data: map[string]interface{}{
			constant.DataRows: len(entries),
		},
	})

	return entries, nil
}

// Close closes the database connection
func (r *JournalRepository) Close() error {
	ctx := context.Background()
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}
