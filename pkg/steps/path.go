package steps

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// Path is a file or folder picking step. It resolves to absolute paths.
type Path struct {
	Base

	Prompt  string
	Folders bool // pick directories instead of files
	Multi   bool
}

// Present computes the picker's starting location from the previous
// answer: the picked path itself (its parent in file mode) when one was
// picked, the deepest common segment prefix when several were, and the
// accumulator's Context when the step has no previous answer.
func (s *Path) Present(ctx context.Context, p *wizard.Prompt) (wizard.Outcome, error) {
	return p.UI.Path(ctx, wizard.PathRequest{
		Name:     s.ID,
		Title:    p.Title,
		ShowBack: p.ShowBack,
		Prompt:   s.Prompt,
		Dir:      s.startDir(p.Values),
		Folders:  s.Folders,
		Multi:    s.Multi,
	})
}

func (s *Path) startDir(v *wizard.Values) string {
	prev := v.Get(s.ID)
	switch {
	case len(prev) == 1:
		if s.Folders {
			return prev[0]
		}
		return filepath.Dir(prev[0])
	case len(prev) > 1:
		return commonDir(prev)
	}
	return v.Context
}

// commonDir returns the deepest prefix shared by all paths, comparing
// whole path segments.
func commonDir(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	sep := string(filepath.Separator)
	common := strings.Split(filepath.Clean(paths[0]), sep)
	for _, p := range paths[1:] {
		segs := strings.Split(filepath.Clean(p), sep)
		if len(segs) < len(common) {
			common = common[:len(segs)]
		}
		for i := range common {
			if common[i] != segs[i] {
				common = common[:i]
				break
			}
		}
	}
	if len(common) == 0 {
		return ""
	}
	joined := strings.Join(common, sep)
	if joined == "" {
		// Only the root was shared.
		return sep
	}
	return joined
}
