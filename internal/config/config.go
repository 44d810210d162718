package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"` // SQLite 数据库文件路径
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SnapshotConfig struct {
	Cron string `mapstructure:"cron"` // 留空则不启用自动快照
	Memo string `mapstructure:"memo"`
}

// LoadConfig 读取配置文件
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config") // 配置文件名 (不带扩展名)
	viper.SetConfigType("yaml")   // 文件类型
	viper.AddConfigPath(".")      // 查找路径：根目录

	// 支持环境变量覆盖 (例如在 Docker 中)
	// 比如设置 PIXEL_JWT_SECRET 可以覆盖 yaml 里的值
	viper.SetEnvPrefix("PIXEL")
	viper.AutomaticEnv()

	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("storage.path", "pixel_ledger.db")
	viper.SetDefault("jwt.expire_hours", 24)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &cfg, nil
}
