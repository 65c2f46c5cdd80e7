package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Upload UploadConfig `mapstructure:"upload"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port        int   `mapstructure:"port"`
	MaxBodySize int64 `mapstructure:"max_body_size"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Path        string `mapstructure:"path"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

// RedisConfig Redis配置，Addr 为空时跳过初始化
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// UploadConfig 图片上传配置
type UploadConfig struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url"`
}
