package actor

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DuplicatePolicy 重复注册同名 Actor 时的处理方式
type DuplicatePolicy string

const (
	// DuplicateReject 拒绝，返回 ErrDuplicateName（默认）
	DuplicateReject DuplicatePolicy = "reject"
	// DuplicateReplace 覆盖映射（后写者胜），旧 Ref 仍然可用
	DuplicateReplace DuplicatePolicy = "replace"
	// DuplicateKeep 保留已有 Actor，返回其 Ref
	DuplicateKeep DuplicatePolicy = "keep"
)

// SystemConfig 系统配置
type SystemConfig struct {
	// Name 系统名称
	Name string `koanf:"name"`
	// Workers worker 数量，<= 0 时取 GOMAXPROCS
	Workers int `koanf:"workers"`
	// Throughput 单个处理轮次最多处理的消息数，0 表示排空邮箱
	Throughput int `koanf:"throughput"`
	// AskTimeout Ask 未指定超时时的默认值，0 表示不超时
	AskTimeout time.Duration `koanf:"ask_timeout"`
	// ShutdownTimeout Shutdown 等待排空的上限
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// DuplicatePolicy 重复注册策略
	DuplicatePolicy DuplicatePolicy `koanf:"duplicate_policy"`

	// Logger 自定义日志器
	Logger *slog.Logger `koanf:"-"`
	// FailureHandler 故障处理，默认 LogFailures
	FailureHandler FailureHandler `koanf:"-"`
	// Dispatcher 自定义调度器，默认 PoolDispatcher
	Dispatcher Dispatcher `koanf:"-"`
}

// DefaultSystemConfig 默认系统配置
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		Name:            "actor-system",
		Workers:         runtime.GOMAXPROCS(0),
		Throughput:      0,
		AskTimeout:      5 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		DuplicatePolicy: DuplicateReject,
	}
}

// Validate 校验配置
func (c *SystemConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Throughput < 0 {
		return fmt.Errorf("throughput must not be negative, got %d", c.Throughput)
	}
	if c.AskTimeout < 0 {
		return fmt.Errorf("ask_timeout must not be negative, got %v", c.AskTimeout)
	}
	switch c.DuplicatePolicy {
	case DuplicateReject, DuplicateReplace, DuplicateKeep:
	default:
		return fmt.Errorf("unknown duplicate_policy %q", c.DuplicatePolicy)
	}
	return nil
}

// LoadConfig 从 YAML 文件加载配置，未出现的字段使用默认值
func LoadConfig(path string) (*SystemConfig, error) {
	return loadConfig(file.Provider(path))
}

// ParseConfig 从 YAML 内容解析配置
func ParseConfig(data []byte) (*SystemConfig, error) {
	return loadConfig(rawbytes.Provider(data))
}

func loadConfig(provider koanf.Provider) (*SystemConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultSystemConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load default config: %w", err)
	}
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := &SystemConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
