// Package config 应用配置：YAML 配置文件 + 环境变量覆盖。
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// 默认接入地址。交易网关和行情推送是两套独立服务。
const (
	DefaultTradeBaseURL = "https://jywg.18.cn"
	DefaultQuoteBaseURL = "https://push2.eastmoney.com"
)

// Config 应用配置
type Config struct {
	Username string // 资金账号（可空，登录时再给）
	Password string // 交易密码（可空，登录时再给）

	TradeBaseURL string // 交易网关地址
	QuoteBaseURL string // 行情接口地址

	SessionDuration int // 会话时长（分钟）
	TimeoutSeconds  int // 单次请求超时（秒）
	QuoteCacheTTL   int // 行情缓存时长（秒）

	LogLevel string // 日志级别
	LogFile  string // 日志文件路径（可选）
}

// configFile 配置文件结构（YAML）
type configFile struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	TradeBaseURL string `yaml:"trade_base_url"`
	QuoteBaseURL string `yaml:"quote_base_url"`

	SessionDuration int `yaml:"session_duration"`
	TimeoutSeconds  int `yaml:"timeout_seconds"`
	QuoteCacheTTL   int `yaml:"quote_cache_ttl"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Load 加载配置。path 为空时只用环境变量和默认值。
// 优先级：环境变量 > 配置文件 > 默认值。
func Load(path string) (*Config, error) {
	var cf configFile
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "读取配置文件失败 %s", path)
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil, errors.Errorf("不支持的配置文件格式: %s (支持 .yaml, .yml)", ext)
		}
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, errors.Wrapf(err, "解析配置文件失败 %s", path)
		}
	}

	cfg := &Config{
		Username:        getEnv("EMTA_USERNAME", cf.Username),
		Password:        getEnv("EMTA_PASSWORD", cf.Password),
		TradeBaseURL:    getEnv("EMTA_TRADE_BASE_URL", firstNonEmpty(cf.TradeBaseURL, DefaultTradeBaseURL)),
		QuoteBaseURL:    getEnv("EMTA_QUOTE_BASE_URL", firstNonEmpty(cf.QuoteBaseURL, DefaultQuoteBaseURL)),
		SessionDuration: getEnvInt("EMTA_SESSION_DURATION", firstPositive(cf.SessionDuration, 30)),
		TimeoutSeconds:  getEnvInt("EMTA_TIMEOUT_SECONDS", firstPositive(cf.TimeoutSeconds, 30)),
		QuoteCacheTTL:   getEnvInt("EMTA_QUOTE_CACHE_TTL", firstPositive(cf.QuoteCacheTTL, 3)),
		LogLevel:        getEnv("EMTA_LOG_LEVEL", firstNonEmpty(cf.LogLevel, "info")),
		LogFile:         getEnv("EMTA_LOG_FILE", cf.LogFile),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.TradeBaseURL == "" {
		return errors.New("trade_base_url 不能为空")
	}
	if c.QuoteBaseURL == "" {
		return errors.New("quote_base_url 不能为空")
	}
	if c.SessionDuration <= 0 {
		return errors.New("session_duration 必须大于 0")
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds 必须大于 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
