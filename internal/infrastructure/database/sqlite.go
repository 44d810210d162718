// Package database 负责整个状态文档的落盘。
//
// 底层是单文件 SQLite（modernc 纯 Go 驱动，无 cgo），只有一张 KV 表，
// 整个 GlobalState 序列化成一个 JSON 文档写进固定的槽位键。
// 永远整体写入，不写增量，崩溃最多丢失最后一次变更，不会留下半个状态。
package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kael37/PixelLedger/internal/model"
)

// StorageKey 固定的存储槽位键，带版本号，就是旧文档使用的那一个
const StorageKey = "PIXEL_LEDGER_DATA_V2"

var (
	// ErrCorrupted 槽位里有数据但不是合法的状态文档
	ErrCorrupted = errors.New("持久化文档损坏")
	// ErrBadImport 导入的文档结构不完整，现有状态不会被触碰
	ErrBadImport = errors.New("导入文档结构非法")
)

type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore 打开（或创建）数据库文件并建表
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv_slots (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	return err
}

// Save 序列化整个状态并覆盖写入槽位。幂等：同一状态重复保存，再读没有区别
func (s *SQLiteStore) Save(state *model.GlobalState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		StorageKey, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// Load 读取槽位。没有历史数据返回 (nil, nil)，调用方落到出厂状态；
// 有数据但解析失败返回 ErrCorrupted，绝不返回解析了一半的状态
func (s *SQLiteStore) Load() (*model.GlobalState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM kv_slots WHERE key = ?`, StorageKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot: %w", err)
	}
	var state model.GlobalState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return &state, nil
}

// Close 关闭数据库
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Export 导出完整状态文档，和 ParseImport 精确往返
func Export(state *model.GlobalState) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// 导入文档必须带齐的顶层字段
var requiredFields = []string{"blocks", "logs", "mines", "tradingPit", "shield", "user"}

// ParseImport 解析并校验导入文档。
// 结构校验在替换权威状态之前全部完成：任何一个顶层字段缺失、
// 或任何字段类型对不上，都整体拒绝，现有状态保持原样
func ParseImport(data []byte) (*model.GlobalState, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImport, err)
	}
	for _, field := range requiredFields {
		if _, ok := shape[field]; !ok {
			return nil, fmt.Errorf("%w: 缺少顶层字段 %q", ErrBadImport, field)
		}
	}
	var state model.GlobalState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImport, err)
	}
	return &state, nil
}
