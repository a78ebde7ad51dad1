package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将布局结果以缩进 JSON 写出，便于检查图元列表或对比多次运行结果。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
