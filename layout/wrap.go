package layout

import "strings"

// WrapURL 将 url 折成测量宽度不超过 maxWidth 的多行，只在 '/' 处断开。
// 带协议时 "scheme://host" 作为首个整体，后续行均以 '/' 开头。
// 单个片段超宽时独占一行，不再拆分。
func WrapURL(url string, measure func(string) float64, maxWidth float64) []string {
	if url == "" {
		return nil
	}
	if measure(url) <= maxWidth {
		return []string{url}
	}

	var lines []string
	current := ""
	push := func(candidate, continuation string) {
		if current != "" && measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = continuation
			return
		}
		current = candidate
	}

	if proto := strings.Index(url, "://"); proto > 0 {
		slash := strings.IndexByte(url[proto+3:], '/')
		if slash < 0 {
			return []string{url}
		}
		slash += proto + 3
		current = url[:slash]
		for _, part := range splitSegments(url[slash+1:]) {
			push(current+"/"+part, "/"+part)
		}
	} else {
		for i, part := range splitSegments(url) {
			candidate := part
			if i > 0 {
				candidate = current + "/" + part
			}
			push(candidate, part)
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitSegments 按 '/' 切分并丢弃空片段。
func splitSegments(s string) []string {
	parts := strings.Split(s, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
