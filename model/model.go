// 定义模型包
package model

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Color 图表颜色，使用CSS可识别的字符串，如 "#00ff00" 或 "lime"。
type Color string

// 常用颜色
const (
	ColorLime    Color = "#00ff00"
	ColorMagenta Color = "#ff00ff"
	ColorCyan    Color = "#00ffff"
	ColorTeal    Color = "#26a69a"
	ColorRed     Color = "#ef5350"
)

// ColorPair 图表"Data style"设置的值：Color1 用于收盘价>=开盘价的K线，Color2 用于收盘价<开盘价的K线。
type ColorPair struct {
	Color1 Color `yaml:"up"`
	Color2 Color `yaml:"down"`
}

// Pick 根据K线自身的开盘价和收盘价选择原生颜色。
func (p ColorPair) Pick(open, close float64) Color {
	if close >= open {
		return p.Color1
	}
	return p.Color2
}

// BarAppearance 单根K线的外观覆盖：实体、边框和影线颜色。
// 它只影响渲染，不改变K线的价格数据。
type BarAppearance struct {
	BarColor    Color
	BorderColor Color
	WickColor   Color
}

// SolidAppearance 返回实体、边框、影线同色的外观。
func SolidAppearance(color Color) BarAppearance {
	return BarAppearance{
		BarColor:    color,
		BorderColor: color,
		WickColor:   color,
	}
}

// Setting 图表上的一个命名配置项，Value 的具体类型由宿主决定。
type Setting struct {
	Name  string
	Value any
}

// DataStyleSetting 保存K线原生涨跌颜色的图表设置名。
const DataStyleSetting = "Data style"

// Dataframe 定义了数据帧的结构，保存一个交易对按时间排列的K线数据
type Dataframe struct {
	Pair string // 交易对

	Close  Series[float64] // 收盘价序列
	Open   Series[float64] // 开盘价序列
	High   Series[float64] // 最高价序列
	Low    Series[float64] // 最低价序列
	Volume Series[float64] // 成交量序列

	Time       []time.Time // 时间戳序列
	LastUpdate time.Time   // 最后更新时间

	// 自定义用户元数据
	Metadata map[string]Series[float64]
}

// NewDataframe 创建一个空的数据帧
func NewDataframe(pair string) *Dataframe {
	return &Dataframe{
		Pair:     pair,
		Metadata: make(map[string]Series[float64]),
	}
}

// Len 返回数据帧中K线的数量
func (df *Dataframe) Len() int {
	return len(df.Time)
}

// Update 将K线写入数据帧：时间戳与最后一根相同则覆盖（未完成K线的更新），否则追加。
// 返回 true 表示追加了一根新K线。
func (df *Dataframe) Update(candle Candle) bool {
	if last := len(df.Time) - 1; last >= 0 && candle.Time.Equal(df.Time[last]) {
		df.Close[last] = candle.Close
		df.Open[last] = candle.Open
		df.High[last] = candle.High
		df.Low[last] = candle.Low
		df.Volume[last] = candle.Volume
		for k, v := range candle.Metadata {
			if series, ok := df.Metadata[k]; ok && len(series) > last {
				series[last] = v
			}
		}
		df.LastUpdate = candle.Time
		return false
	}

	df.Close = append(df.Close, candle.Close)
	df.Open = append(df.Open, candle.Open)
	df.High = append(df.High, candle.High)
	df.Low = append(df.Low, candle.Low)
	df.Volume = append(df.Volume, candle.Volume)
	df.Time = append(df.Time, candle.Time)
	df.LastUpdate = candle.Time
	for k, v := range candle.Metadata {
		df.Metadata[k] = append(df.Metadata[k], v)
	}
	return true
}

// Sample 方法用于从Dataframe中抽取最近的N个数据点作为一个新的Dataframe
func (df Dataframe) Sample(positions int) Dataframe {
	size := len(df.Time)
	start := size - positions
	if start <= 0 {
		return df
	}

	sample := Dataframe{
		Pair:       df.Pair,
		Close:      df.Close.LastValues(positions),
		Open:       df.Open.LastValues(positions),
		High:       df.High.LastValues(positions),
		Low:        df.Low.LastValues(positions),
		Volume:     df.Volume.LastValues(positions),
		Time:       df.Time[start:],
		LastUpdate: df.LastUpdate,
		Metadata:   make(map[string]Series[float64]),
	}

	for key := range df.Metadata {
		sample.Metadata[key] = df.Metadata[key].LastValues(positions)
	}

	return sample
}

// Candle 定义了K线的结构
type Candle struct {
	Pair      string    // 交易对
	Time      time.Time // 时间戳
	UpdatedAt time.Time // 更新时间
	Open      float64   // 开盘价
	Close     float64   // 收盘价
	Low       float64   // 最低价
	High      float64   // 最高价
	Volume    float64   // 成交量
	Complete  bool      // 是否完成

	// 从CSV输入中附加的额外列
	Metadata map[string]float64
}

// Empty 方法用于判断一个K线是否为空
func (c Candle) Empty() bool {
	return c.Pair == "" && c.Close == 0 && c.Open == 0 && c.Volume == 0
}

// ToSlice 方法将Candle的数据转换成字符串切片
func (c Candle) ToSlice(precision int) []string {
	return []string{
		fmt.Sprintf("%d", c.Time.Unix()),
		strconv.FormatFloat(c.Open, 'f', precision, 64),
		strconv.FormatFloat(c.Close, 'f', precision, 64),
		strconv.FormatFloat(c.Low, 'f', precision, 64),
		strconv.FormatFloat(c.High, 'f', precision, 64),
		strconv.FormatFloat(c.Volume, 'f', precision, 64),
	}
}

// Less 按时间、更新时间、交易对排序，供优先队列使用
func (c Candle) Less(j Item) bool {
	other := j.(Candle)
	if diff := other.Time.Sub(c.Time); diff != 0 {
		return diff > 0
	}

	if diff := other.UpdatedAt.Sub(c.UpdatedAt); diff != 0 {
		return diff > 0
	}

	return c.Pair < other.Pair
}

// HeikinAshi 定义了平均K线(Heikin Ashi)的结构
type HeikinAshi struct {
	PreviousHACandle Candle // 前一个平均K线
}

// NewHeikinAshi 函数用于创建一个新的HeikinAshi实例
func NewHeikinAshi() *HeikinAshi {
	return &HeikinAshi{}
}

// ToHeikinAshi 方法将普通K线转换为平均K线（Heikin Ashi）
func (c Candle) ToHeikinAshi(ha *HeikinAshi) Candle {
	haCandle := ha.CalculateHeikinAshi(c)

	return Candle{
		Pair:      c.Pair,
		Open:      haCandle.Open,
		High:      haCandle.High,
		Low:       haCandle.Low,
		Close:     haCandle.Close,
		Volume:    c.Volume,
		Complete:  c.Complete,
		Time:      c.Time,
		UpdatedAt: c.UpdatedAt,
		Metadata:  c.Metadata,
	}
}

// CalculateHeikinAshi 方法用于计算并返回一个平均K线
func (ha *HeikinAshi) CalculateHeikinAshi(c Candle) Candle {
	var hkCandle Candle

	openValue := ha.PreviousHACandle.Open
	closeValue := ha.PreviousHACandle.Close

	// 如果是第一个平均K线，则使用当前K线的数据
	if ha.PreviousHACandle.Empty() {
		openValue = c.Open
		closeValue = c.Close
	}

	hkCandle.Open = (openValue + closeValue) / 2
	hkCandle.Close = (c.Open + c.High + c.Low + c.Close) / 4
	hkCandle.High = math.Max(c.High, math.Max(hkCandle.Open, hkCandle.Close))
	hkCandle.Low = math.Min(c.Low, math.Min(hkCandle.Open, hkCandle.Close))
	ha.PreviousHACandle = hkCandle

	return hkCandle
}
