package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
//
// 逐字符断行（日文没有空格分词），单个字符超宽时独占一行。
// 空文本返回 nil。
func WrapText(str string, face text.Face, maxWidth float64) []string {
	if str == "" {
		return nil
	}
	if face == nil || maxWidth <= 0 || text.Advance(str, face) <= maxWidth {
		return []string{str}
	}

	var lines []string
	var line strings.Builder

	for _, r := range str {
		if line.Len() > 0 && text.Advance(line.String()+string(r), face) > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
		}
		line.WriteRune(r)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
