package metrics

import (
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Interval 是自助法估计出的统计量分布
type Interval struct {
	Lower  float64
	Upper  float64
	StdDev float64
	Mean   float64
}

// Measure 对一次重抽样的样本计算统计量，如 stat.Mean 的包装
type Measure func(values []float64) float64

// Mean 样本均值
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}

// Bootstrap 有放回地重抽样 samples 次，返回统计量在 confidence 置信水平下的区间。
// values 为空或 samples <= 0 时返回零值。
func Bootstrap(values []float64, measure Measure, samples int, confidence float64) Interval {
	if len(values) == 0 || samples <= 0 {
		return Interval{}
	}

	estimates := make([]float64, samples)
	resample := make([]float64, len(values))
	for i := range estimates {
		for j := range resample {
			resample[j] = lo.Sample(values)
		}
		estimates[i] = measure(resample)
	}

	sort.Float64s(estimates)
	tail := (1 - confidence) / 2
	mean, stdDev := stat.MeanStdDev(estimates, nil)

	return Interval{
		Lower:  stat.Quantile(tail, stat.LinInterp, estimates, nil),
		Upper:  stat.Quantile(1-tail, stat.LinInterp, estimates, nil),
		StdDev: stdDev,
		Mean:   mean,
	}
}
