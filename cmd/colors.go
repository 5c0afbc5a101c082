package cmd

import (
	"github.com/fatih/color"

	"github.com/khanhnv2901/urlscore/internal/domain/risk"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
)

func formatRiskWithColor(level risk.Level) string {
	switch level {
	case risk.LevelLow:
		return colorSuccess(level.String())
	case risk.LevelMedium:
		return colorWarn(level.String())
	case risk.LevelHigh:
		return colorError(level.String())
	default:
		return level.String()
	}
}
