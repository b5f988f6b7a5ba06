package repository

import (
	"context"
	"fmt"

	"code-darpan/internal/common"
	"code-darpan/internal/domain"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Recent 的条数限制
const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// PostgresStore 实现了 port.ReportStore 接口
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore 初始化数据库连接并自动迁移 analysis_records 表
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	// 1. 连接数据库
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, common.WrapError(common.ErrCodeDatabase, "connect to database", err)
	}

	// 2. 自动迁移表结构
	if err := db.AutoMigrate(&domain.AnalysisRecord{}); err != nil {
		return nil, common.WrapError(common.ErrCodeDatabase, "migrate analysis_records", err)
	}

	return &PostgresStore{db: db}, nil
}

// Save 插入一条存档，没有 ID 时自动生成
func (s *PostgresStore) Save(ctx context.Context, record *domain.AnalysisRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return common.WrapError(common.ErrCodeDatabase, fmt.Sprintf("save analysis of %s/%s", record.Owner, record.Repo), err)
	}
	return nil
}

// Recent 获取最近的存档，limit 限制在 [1, MaxRecentLimit]，小于等于 0 时用 DefaultRecentLimit
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]*domain.AnalysisRecord, error) {
	var records []*domain.AnalysisRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Find(&records).Error
	if err != nil {
		return nil, common.WrapError(common.ErrCodeDatabase, "list recent analyses", err)
	}
	return records, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}

// Close 关闭底层连接池
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
