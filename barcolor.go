package barcolor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/rodrigo-brito/barcolor/model"
	"github.com/rodrigo-brito/barcolor/plot"
	"github.com/rodrigo-brito/barcolor/plugin"
	"github.com/rodrigo-brito/barcolor/tools"
	"github.com/rodrigo-brito/barcolor/tools/log"
	"github.com/rodrigo-brito/barcolor/tools/metrics"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04",
	})
}

// Session 把一组K线依次喂给挂在图表上的指标，模拟宿主平台的回调顺序
type Session struct {
	chart      *plot.Chart
	indicator  plugin.Indicator
	controller *plugin.Controller
	scheduler  *tools.Scheduler

	preload       int
	progress      bool
	clearOnFinish bool
}

// Option 配置 Session 的函数选项
type Option func(*Session)

// WithScheduler 在每根K线之前按计划切换指标的显示开关
func WithScheduler(scheduler *tools.Scheduler) Option {
	return func(s *Session) {
		s.scheduler = scheduler
	}
}

// WithPreload 前 n 根K线作为历史数据加载，之后才启动控制器
func WithPreload(n int) Option {
	return func(s *Session) {
		s.preload = n
	}
}

// WithProgressBar 回放时显示进度条
func WithProgressBar() Option {
	return func(s *Session) {
		s.progress = true
	}
}

// WithClearOnFinish 回放结束后移除指标，触发 OnClear
func WithClearOnFinish() Option {
	return func(s *Session) {
		s.clearOnFinish = true
	}
}

// WithLogLevel 设置日志级别
func WithLogLevel(level log.Level) Option {
	return func(_ *Session) {
		log.SetLevel(level)
	}
}

// NewSession 在图表上挂载指标
func NewSession(chart *plot.Chart, indicator plugin.Indicator, options ...Option) *Session {
	s := &Session{
		chart:      chart,
		indicator:  indicator,
		controller: plugin.NewController(chart, indicator),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Chart 返回会话使用的图表
func (s *Session) Chart() *plot.Chart {
	return s.chart
}

// Controller 返回会话使用的控制器
func (s *Session) Controller() *plugin.Controller {
	return s.controller
}

// Run 按时间顺序处理K线。ctx 被取消时停止并返回 ctx.Err()。
func (s *Session) Run(ctx context.Context, candles []model.Candle) error {
	items := make([]model.Item, 0, len(candles))
	for _, candle := range candles {
		items = append(items, candle)
	}
	queue := model.NewPriorityQueue(items)

	var bar *progressbar.ProgressBar
	if s.progress {
		bar = progressbar.Default(int64(queue.Len()))
	}

	if s.preload <= 0 {
		s.controller.Start()
	}

	for processed := 0; queue.Len() > 0; processed++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if processed == s.preload && s.preload > 0 {
			s.controller.Start()
		}

		if s.scheduler != nil && s.scheduler.Pending() > 0 {
			s.scheduler.Update(s.chart.Dataframe(), s.chart)
		}

		s.controller.OnCandle(queue.Pop().(model.Candle))

		if bar != nil {
			if err := bar.Add(1); err != nil {
				log.Warnf("update progressbar fail: %v", err)
			}
		}
	}

	if s.clearOnFinish {
		s.controller.Remove()
	}

	return nil
}

// Summary 输出最后 rows 根K线的着色结果，以及收盘价相对均线的偏离分布
func (s *Session) Summary(w io.Writer, rows int) {
	bars := s.chart.Bars()
	ma := s.movingAverageByTime()

	buffer := bytes.NewBuffer(nil)
	table := tablewriter.NewWriter(buffer)
	table.SetHeader([]string{"Time", "Open", "Close", "MA", "Color", "Source"})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	start := 0
	if rows > 0 && len(bars) > rows {
		start = len(bars) - rows
	}

	var painted int
	distances := make([]float64, 0, len(bars))
	for i, bar := range bars {
		if bar.Painted {
			painted++
		}

		value, ok := ma[bar.Time]
		if ok && value != 0 {
			distances = append(distances, (bar.Close-value)/value*100)
		}

		if i < start {
			continue
		}

		maText := "-"
		if ok {
			maText = fmt.Sprintf("%.4f", value)
		}
		source := "native"
		if bar.Painted {
			source = "indicator"
		}
		table.Append([]string{
			bar.Time.Format(time.RFC3339),
			fmt.Sprintf("%.4f", bar.Open),
			fmt.Sprintf("%.4f", bar.Close),
			maText,
			string(bar.Appearance.BarColor),
			source,
		})
	}

	table.SetFooter([]string{
		"TOTAL", fmt.Sprintf("%d", len(bars)), "", "", fmt.Sprintf("%d painted", painted), "",
	})
	table.Render()

	fmt.Fprintln(w, buffer.String())

	if len(distances) == 0 {
		return
	}

	mean, stdDev := stat.MeanStdDev(distances, nil)
	fmt.Fprintln(w, "------ CLOSE vs MA (%) -------")
	fmt.Fprintf(w, "MEAN: %.3f%%  STDDEV: %.3f%%\n", mean, stdDev)
	interval := metrics.Bootstrap(distances, metrics.Mean, 1000, 0.95)
	fmt.Fprintf(w, "MEAN 95%% CI: [%.3f%%, %.3f%%]\n", interval.Lower, interval.Upper)

	// 所有值相同时没有可以分箱的区间
	if lo.Max(distances) == lo.Min(distances) {
		return
	}
	hist := histogram.Hist(15, distances)
	if err := histogram.Fprint(w, hist, histogram.Linear(10)); err != nil {
		log.Warnf("print histogram fail: %v", err)
	}
	fmt.Fprintln(w)
}

// movingAverageByTime 取出名为 "MA" 的线。会话的指标能绘图时直接用它计算，
// 指标已经从图表上移除时也能得到均线；否则从图表的叠加指标中找。
func (s *Session) movingAverageByTime() map[time.Time]float64 {
	var lines [][]plot.IndicatorMetric
	if overlay, ok := s.indicator.(plot.Indicator); ok {
		overlay.Load(s.chart.Dataframe())
		lines = append(lines, overlay.Metrics())
	} else {
		for _, indicator := range s.chart.Indicators() {
			lines = append(lines, indicator.Metrics)
		}
	}

	values := make(map[time.Time]float64)
	for _, line := range lines {
		for _, metric := range line {
			if metric.Name != "MA" {
				continue
			}
			for i := range metric.Values {
				if i < len(metric.Time) {
					values[metric.Time[i]] = metric.Values[i]
				}
			}
		}
	}
	return values
}
