//go:build tools
// +build tools

package tools

// 固定 mockery 的版本，service/mocks 由它生成：go run github.com/vektra/mockery/v2
import (
	_ "github.com/vektra/mockery/v2"
)
