package barcolor

import (
	"github.com/rodrigo-brito/barcolor/model"
	"github.com/rodrigo-brito/barcolor/plugin"
)

// 常用类型的别名，使用者不用再引入 model 包
type (
	Candle        = model.Candle
	Dataframe     = model.Dataframe
	Series        = model.Series[float64]
	Color         = model.Color
	ColorPair     = model.ColorPair
	BarAppearance = model.BarAppearance
	UpdateArgs    = plugin.UpdateArgs
)

var (
	ColorLime    = model.ColorLime
	ColorMagenta = model.ColorMagenta
	ColorCyan    = model.ColorCyan
)
