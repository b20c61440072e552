package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zomeworks/zome"
	"gonum.org/v1/gonum/spatial/r3"
)

// WriteOBJ writes the structure as Wavefront OBJ text: one object per beam
// and per visible connector, vertices rounded to 6 decimals. Output bytes
// are deterministic for equal structures.
func WriteOBJ(w io.Writer, s *zome.Structure) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# zome N=%d Dmax=%g aDeg=%g\n", s.Params.N, s.Params.DiameterMax, s.Params.ApexAngleDeg)
	base := 1 // OBJ indices are 1-based
	for _, b := range s.Beams {
		base = writeObject(bw, "beam_"+objName(b.EdgeKey), b.ObjVertices, b.ObjFaces, base)
	}
	for _, c := range s.Connectors {
		if c.Hidden {
			continue
		}
		base = writeObject(bw, "conn_"+objName(c.Key), c.ObjVertices, c.ObjFaces, base)
	}
	return bw.Flush()
}

// CreateOBJ writes the structure to an OBJ file.
func CreateOBJ(path string, s *zome.Structure) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	return WriteOBJ(fp, s)
}

func writeObject(w io.Writer, name string, verts []r3.Vec, faces [][]int, base int) int {
	fmt.Fprintf(w, "o %s\n", name)
	for _, v := range verts {
		fmt.Fprintf(w, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	for _, f := range faces {
		io.WriteString(w, "f")
		for _, idx := range f {
			fmt.Fprintf(w, " %d", base+idx)
		}
		io.WriteString(w, "\n")
	}
	return base + len(verts)
}

// objName renders a canonical key as an OBJ-safe object name.
func objName(key string) string {
	return strings.NewReplacer("|", "__", ":", "_").Replace(key)
}
