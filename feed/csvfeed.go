package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/xhit/go-str2duration/v2"

	"github.com/rodrigo-brito/barcolor/model"
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrEmptyFile        = errors.New("empty csv file")
)

// PairFeed 描述一个交易对的CSV数据源
type PairFeed struct {
	Pair       string // 交易对名称，如"BTCUSDT"
	File       string // CSV文件路径
	Timeframe  string // 文件中K线的周期，如 "1h"
	HeikinAshi bool   // 是否转换成平均K线
}

// CSVFeed 保存从CSV读入的K线，键为 "交易对--周期"
type CSVFeed struct {
	Feeds               map[string]PairFeed
	CandlePairTimeFrame map[string][]model.Candle
}

// parseHeaders 第一行不是数字时当作表头；标准列以外的列作为元数据保留
func parseHeaders(headers []string) (index map[string]int, additional []string, ok bool) {
	headerMap := map[string]int{
		"time": 0, "open": 1, "close": 2, "low": 3, "high": 4, "volume": 5,
	}

	_, err := strconv.Atoi(headers[0])
	if err == nil {
		return headerMap, additional, false
	}

	for index, h := range headers {
		if _, ok := headerMap[h]; !ok {
			additional = append(additional, h)
		}
		headerMap[h] = index
	}

	return headerMap, additional, true
}

// NewCSVFeed 读取每个数据源并重采样到 targetTimeframe
func NewCSVFeed(targetTimeframe string, feeds ...PairFeed) (*CSVFeed, error) {
	csvFeed := &CSVFeed{
		Feeds:               make(map[string]PairFeed),
		CandlePairTimeFrame: make(map[string][]model.Candle),
	}

	for _, feed := range feeds {
		csvFeed.Feeds[feed.Pair] = feed

		csvFile, err := os.Open(feed.File)
		if err != nil {
			return nil, err
		}

		candles, err := ReadCandles(csvFile, feed.Pair, feed.HeikinAshi)
		_ = csvFile.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", feed.File, err)
		}

		csvFeed.CandlePairTimeFrame[csvFeed.feedTimeframeKey(feed.Pair, feed.Timeframe)] = candles

		err = csvFeed.resample(feed.Pair, feed.Timeframe, targetTimeframe)
		if err != nil {
			return nil, err
		}
	}

	return csvFeed, nil
}

// ReadCandles 按 time,open,close,low,high,volume 的列顺序（或按表头）读取K线，time 为 Unix 秒
func ReadCandles(reader io.Reader, pair string, heikinAshi bool) ([]model.Candle, error) {
	csvLines, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(csvLines) == 0 {
		return nil, ErrEmptyFile
	}

	var candles []model.Candle
	ha := model.NewHeikinAshi()

	headerMap, additionalHeaders, hasCustomHeaders := parseHeaders(csvLines[0])
	if hasCustomHeaders {
		csvLines = csvLines[1:]
	}

	for n, line := range csvLines {
		timestamp, err := strconv.Atoi(line[headerMap["time"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}

		candle := model.Candle{
			Time:      time.Unix(int64(timestamp), 0).UTC(),
			UpdatedAt: time.Unix(int64(timestamp), 0).UTC(),
			Pair:      pair,
			Complete:  true,
		}

		fields := []struct {
			name  string
			value *float64
		}{
			{"open", &candle.Open},
			{"close", &candle.Close},
			{"low", &candle.Low},
			{"high", &candle.High},
			{"volume", &candle.Volume},
		}
		for _, field := range fields {
			*field.value, err = strconv.ParseFloat(line[headerMap[field.name]], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d %s: %w", n+1, field.name, err)
			}
		}

		if hasCustomHeaders && len(additionalHeaders) > 0 {
			candle.Metadata = make(map[string]float64)
			for _, header := range additionalHeaders {
				candle.Metadata[header], err = strconv.ParseFloat(line[headerMap[header]], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d %s: %w", n+1, header, err)
				}
			}
		}

		if heikinAshi {
			candle = candle.ToHeikinAshi(ha)
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

func (c CSVFeed) feedTimeframeKey(pair, timeframe string) string {
	return fmt.Sprintf("%s--%s", pair, timeframe)
}

// Candles 返回某个交易对在某个周期上的全部K线
func (c CSVFeed) Candles(pair, timeframe string) ([]model.Candle, error) {
	candles, ok := c.CandlePairTimeFrame[c.feedTimeframeKey(pair, timeframe)]
	if !ok || len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrInsufficientData, pair, timeframe)
	}
	return candles, nil
}

// Limit 只保留最后 duration 时间内的K线
func (c *CSVFeed) Limit(duration time.Duration) *CSVFeed {
	for key, candles := range c.CandlePairTimeFrame {
		if len(candles) == 0 {
			continue
		}
		start := candles[len(candles)-1].Time.Add(-duration)

		c.CandlePairTimeFrame[key] = lo.Filter(candles, func(candle model.Candle, _ int) bool {
			return candle.Time.After(start)
		})
	}
	return c
}

func isFirstCandlePeriod(t time.Time, fromTimeframe, targetTimeframe string) (bool, error) {
	fromDuration, err := str2duration.ParseDuration(fromTimeframe)
	if err != nil {
		return false, err
	}

	prev := t.Add(-fromDuration).UTC()

	return isLastCandlePeriod(prev, fromTimeframe, targetTimeframe)
}

func isLastCandlePeriod(t time.Time, fromTimeframe, targetTimeframe string) (bool, error) {
	if fromTimeframe == targetTimeframe {
		return true, nil
	}

	fromDuration, err := str2duration.ParseDuration(fromTimeframe)
	if err != nil {
		return false, err
	}

	next := t.Add(fromDuration).UTC()

	switch targetTimeframe {
	case "1m":
		return next.Second()%60 == 0, nil
	case "5m":
		return next.Minute()%5 == 0, nil
	case "10m":
		return next.Minute()%10 == 0, nil
	case "15m":
		return next.Minute()%15 == 0, nil
	case "30m":
		return next.Minute()%30 == 0, nil
	case "1h":
		return next.Minute()%60 == 0, nil
	case "2h":
		return next.Minute() == 0 && next.Hour()%2 == 0, nil
	case "4h":
		return next.Minute() == 0 && next.Hour()%4 == 0, nil
	case "12h":
		return next.Minute() == 0 && next.Hour()%12 == 0, nil
	case "1d":
		return next.Minute() == 0 && next.Hour()%24 == 0, nil
	case "1w":
		return next.Minute() == 0 && next.Hour()%24 == 0 && next.Weekday() == time.Sunday, nil
	}

	return false, fmt.Errorf("invalid timeframe: %s", targetTimeframe)
}

// resample 把源周期的K线合并成目标周期，丢弃开头和结尾不完整的周期
func (c *CSVFeed) resample(pair, sourceTimeframe, targetTimeframe string) error {
	sourceKey := c.feedTimeframeKey(pair, sourceTimeframe)
	targetKey := c.feedTimeframeKey(pair, targetTimeframe)
	source := c.CandlePairTimeFrame[sourceKey]

	var i int
	for ; i < len(source); i++ {
		if ok, err := isFirstCandlePeriod(source[i].Time, sourceTimeframe, targetTimeframe); err != nil {
			return err
		} else if ok {
			break
		}
	}

	candles := make([]model.Candle, 0)
	for ; i < len(source); i++ {
		candle := source[i]
		last, err := isLastCandlePeriod(candle.Time, sourceTimeframe, targetTimeframe)
		if err != nil {
			return err
		}
		candle.Complete = last

		lastIndex := len(candles) - 1
		if lastIndex >= 0 && !candles[lastIndex].Complete {
			candle.Time = candles[lastIndex].Time
			candle.Open = candles[lastIndex].Open
			candle.High = math.Max(candles[lastIndex].High, candle.High)
			candle.Low = math.Min(candles[lastIndex].Low, candle.Low)
			candle.Volume += candles[lastIndex].Volume
		}
		candles = append(candles, candle)
	}

	if n := len(candles); n > 0 && !candles[n-1].Complete {
		candles = candles[:n-1]
	}

	c.CandlePairTimeFrame[targetKey] = candles

	return nil
}
