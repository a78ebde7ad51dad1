package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ByLCY/dotqr/layout"
	"github.com/ByLCY/dotqr/sink"
)

// Save writes every artifact of out under dir and returns the written paths
// in artifact order. With dumpLayout set, both layouts are also written as
// <qrId>_raster.json and <qrId>_vector.json under dir/layout.
func (g *Generator) Save(out *Output, dir sink.Dir, dumpLayout bool) ([]string, error) {
	paths := make([]string, 0, len(out.Artifacts)+2)
	for _, a := range out.Artifacts {
		path, err := dir.Write(a.Format, a.Name, a.Data)
		if err != nil {
			return paths, err
		}
		g.log.Infow("saved artifact", "qrId", out.QrID, "format", a.Format,
			"size", fmt.Sprintf("%dx%d", a.Width, a.Height), "path", path)
		paths = append(paths, path)
	}
	if !dumpLayout {
		return paths, nil
	}
	dumps := []struct {
		name string
		res  *layout.Result
	}{
		{out.QrID + "_raster.json", out.RasterLayout},
		{out.QrID + "_vector.json", out.VectorLayout},
	}
	for _, d := range dumps {
		path := dir.Path("layout", d.name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return paths, fmt.Errorf("create layout dir: %w", err)
		}
		if err := layout.WriteDebugJSON(d.res, path); err != nil {
			return paths, fmt.Errorf("dump layout %s: %w", d.name, err)
		}
		g.log.Debugw("dumped layout", "qrId", out.QrID, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}
