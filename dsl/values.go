package dsl

// Interface 将值转换为普通 Go 数据：string、float64、bool、[]any 或 map[string]any。
// 标识符与颜色均转为字符串。
func (v *Value) Interface() any {
	switch {
	case v == nil:
		return nil
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Bool != nil:
		return bool(*v.Bool)
	case v.Ident != nil:
		return *v.Ident
	case v.Array != nil:
		out := make([]any, 0, len(v.Array.Values))
		for _, item := range v.Array.Values {
			out = append(out, item.Interface())
		}
		return out
	case v.Object != nil:
		return assignments(v.Object.Entries)
	default:
		return nil
	}
}

// Map 将块内赋值转换为 map，重复的键以后者为准。
func (b *Block) Map() map[string]any {
	if b == nil {
		return map[string]any{}
	}
	return assignments(b.Entries)
}

// Style 合并所有 style 段落，后出现的覆盖先出现的。
func (b *Batch) Style() map[string]any {
	out := map[string]any{}
	for _, s := range b.Sections {
		if s.Style != nil {
			for k, v := range s.Style.Block.Map() {
				out[k] = v
			}
		}
	}
	return out
}

// Vars 合并所有 vars 段落。
func (b *Batch) Vars() map[string]any {
	out := map[string]any{}
	for _, s := range b.Sections {
		if s.Vars != nil {
			for k, v := range s.Vars.Block.Map() {
				out[k] = v
			}
		}
	}
	return out
}

// Codes 按文件顺序返回 code 语句。
func (b *Batch) Codes() []*CodeSection {
	var out []*CodeSection
	for _, s := range b.Sections {
		if s.Code != nil {
			out = append(out, s.Code)
		}
	}
	return out
}

func assignments(entries []*Assignment) map[string]any {
	out := make(map[string]any, len(entries))
	for _, a := range entries {
		out[a.Key] = a.Value.Interface()
	}
	return out
}
