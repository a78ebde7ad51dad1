package generator

import (
	"fmt"
	"maps"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"

	"github.com/ByLCY/dotqr/binding"
	"github.com/ByLCY/dotqr/dsl"
	"github.com/ByLCY/dotqr/style"
)

// logoKey is read from style blocks but is not a style option.
const logoKey = "logo"

// BatchRequests expands a parsed batch file into one request per code
// statement. The batch style block is applied on top of base, and each code's
// override block on top of that. Content placeholders resolve against the
// vars block plus "id"; unnamed codes get a random id.
func BatchRequests(b *dsl.Batch, base style.Options) ([]Request, error) {
	shared := b.Style()
	vars := b.Vars()
	seen := make(map[string]int)

	var reqs []Request
	for _, code := range b.Codes() {
		merged := maps.Clone(shared)
		maps.Copy(merged, code.Overrides.Map())

		req := Request{QrID: code.ID}
		if req.QrID == "" {
			req.QrID = uuid.NewString()
		}
		if line, dup := seen[req.QrID]; dup {
			return nil, fmt.Errorf("%w: duplicate code id %q at line %d (first at line %d)",
				ErrInvalidConfig, req.QrID, code.Pos.Line, line)
		}
		seen[req.QrID] = code.Pos.Line

		if logo, ok := merged[logoKey]; ok {
			path, isString := logo.(string)
			if !isString {
				return nil, fmt.Errorf("%w: code %q: logo must be a string", ErrInvalidConfig, req.QrID)
			}
			req.LogoPath = path
			delete(merged, logoKey)
		}

		opts, err := DecodeStyle(base, merged)
		if err != nil {
			return nil, fmt.Errorf("%w: code %q: %v", ErrInvalidConfig, req.QrID, err)
		}
		req.Style = opts

		scope := maps.Clone(vars)
		scope["id"] = req.QrID
		content, err := binding.InterpolateStrict(string(code.Content), scope)
		if err != nil {
			return nil, fmt.Errorf("%w: code %q: %v", ErrInvalidConfig, req.QrID, err)
		}
		req.Content = strings.TrimSpace(content)
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// DecodeStyle applies a kebab-case style map over base. Unknown keys are an
// error so typos in batch files do not pass silently.
func DecodeStyle(base style.Options, values map[string]any) (style.Options, error) {
	out := base
	if base.BatchSeed != nil {
		seed := *base.BatchSeed
		out.BatchSeed = &seed
	}
	if len(values) == 0 {
		return out, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return base, err
	}
	if err := dec.Decode(values); err != nil {
		return base, err
	}
	return out, nil
}
