package config

import (
	"fmt"
	"os"
	"time"

	"github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"

	"github.com/rodrigo-brito/barcolor/model"
	"github.com/rodrigo-brito/barcolor/plot"
	"github.com/rodrigo-brito/barcolor/plot/indicator"
)

// Config 指标参数和图表原生颜色
type Config struct {
	Period      int             `yaml:"period"`
	AboveColor  model.Color     `yaml:"above_color"`
	BelowColor  model.Color     `yaml:"below_color"`
	LineColor   model.Color     `yaml:"line_color"`
	LogInterval string          `yaml:"log_interval"` // 如 "1s"、"500ms"、"1d"
	DataStyle   model.ColorPair `yaml:"data_style"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Period:      indicator.DefaultPeriod,
		AboveColor:  indicator.DefaultAboveColor,
		BelowColor:  indicator.DefaultBelowColor,
		LineColor:   indicator.DefaultLineColor,
		LogInterval: indicator.DefaultLogInterval.String(),
		DataStyle:   plot.DefaultDataStyle,
	}
}

// Load 从YAML文件读取配置，文件中没有的字段使用默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// data_style 要么整体使用默认值，要么两种颜色都由文件给出
	var style struct {
		DataStyle *model.ColorPair `yaml:"data_style"`
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if style.DataStyle != nil {
		cfg.DataStyle = *style.DataStyle
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate 检查参数范围
func (c *Config) Validate() error {
	if c.Period < indicator.MinPeriod || c.Period > indicator.MaxPeriod {
		return fmt.Errorf("period must be between %d and %d", indicator.MinPeriod, indicator.MaxPeriod)
	}
	if c.AboveColor == "" || c.BelowColor == "" {
		return fmt.Errorf("above_color and below_color are required")
	}
	if c.DataStyle.Color1 == "" || c.DataStyle.Color2 == "" {
		return fmt.Errorf("data_style.up and data_style.down are required")
	}
	if _, err := c.Interval(); err != nil {
		return fmt.Errorf("log_interval: %w", err)
	}
	return nil
}

// Interval 解析日志间隔，空字符串表示不限流
func (c *Config) Interval() (time.Duration, error) {
	if c.LogInterval == "" {
		return 0, nil
	}
	return str2duration.ParseDuration(c.LogInterval)
}

// IndicatorOptions 转换成指标的构造选项
func (c *Config) IndicatorOptions() []indicator.Option {
	options := []indicator.Option{
		indicator.WithPeriod(c.Period),
		indicator.WithAboveColor(c.AboveColor),
		indicator.WithBelowColor(c.BelowColor),
	}
	if c.LineColor != "" {
		options = append(options, indicator.WithLineColor(c.LineColor))
	}
	if interval, err := c.Interval(); err == nil {
		options = append(options, indicator.WithLogInterval(interval))
	}
	return options
}

// ChartOptions 转换成图表的构造选项
func (c *Config) ChartOptions() []plot.Option {
	return []plot.Option{
		plot.WithDataStyle(c.DataStyle),
	}
}
