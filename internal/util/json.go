package util

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FindJSONArray 在自由文本中定位第一个括号配平的 `[...]` 子串，
// 扫描时跳过字符串字面量内部的括号
func FindJSONArray(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	for start >= 0 {
		depth := 0
		inStr := false
		escaped := false
		for i := start; i < len(s); i++ {
			ch := s[i]
			if inStr {
				switch {
				case escaped:
					escaped = false
				case ch == '\\':
					escaped = true
				case ch == '"':
					inStr = false
				}
				continue
			}
			switch ch {
			case '"':
				inStr = true
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
		next := strings.IndexByte(s[start+1:], '[')
		if next < 0 {
			break
		}
		start = start + 1 + next
	}
	return "", false
}

// StripCodeFences 去掉模型经常附带的 Markdown 代码围栏标记
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ExtractJSONArray 从模型回复中提取JSON数组。
// 先按配平扫描取第一个数组，解析失败时去围栏后整体重试；
// 两次都失败返回 ErrResponseParse
func ExtractJSONArray(raw string) (json.RawMessage, error) {
	if candidate, ok := FindJSONArray(raw); ok && json.Valid([]byte(candidate)) {
		return json.RawMessage(candidate), nil
	}

	cleaned := StripCodeFences(raw)
	if strings.HasPrefix(cleaned, "[") && json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), nil
	}

	return nil, fmt.Errorf("%w: no valid JSON array in reply", ErrResponseParse)
}
