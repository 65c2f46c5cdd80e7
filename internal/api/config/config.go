package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.max_body_size", 5<<20)
	viper.SetDefault("database.path", "footprints.db")
	viper.SetDefault("database.max_idle", 2)
	viper.SetDefault("database.max_open", 10)
	viper.SetDefault("database.max_lifetime", 60)
	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.base_url", "/uploads")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// 没有配置文件时全部使用默认值
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
