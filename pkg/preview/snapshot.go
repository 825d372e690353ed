package preview

import (
	"fmt"
	"strings"

	"github.com/pluqqy/certadmin/pkg/request"
)

// Snapshot is everything that affects the rendered preview at one instant.
type Snapshot struct {
	Params     request.Params
	RowIndex   int
	RowCount   int
	ServerView bool
}

// Key identifies the snapshot for change detection. Two snapshots with
// the same key would produce the same preview.
func (s Snapshot) Key() string {
	p := s.Params
	var b strings.Builder
	fmt.Fprintf(&b, "view=%t|rows=%d|row=%d", s.ServerView, s.RowCount, s.RowIndex)
	if p.Template != nil {
		fmt.Fprintf(&b, "|tpl=%s#%d", p.Template.Name, p.Template.Revision)
	}
	fmt.Fprintf(&b, "|sheet=%s|range=%s|col=%s|fmt=%s|mode=%s",
		p.SheetID, p.Range, p.NameColumn, p.OutputFormat, p.Mode)
	fmt.Fprintf(&b, "|pos=%g,%g|page=%d", p.Placement.X, p.Placement.Y, p.PageIndex)
	fmt.Fprintf(&b, "|font=%s/%g/%d/%g|color=%s|prefix=%s",
		p.FontFamily, p.FontSize, p.FontWeight, p.LetterSpacing, p.Color, p.FilenamePrefix)
	if p.FontFile != nil {
		fmt.Fprintf(&b, "|ff=%s", p.FontFile.ID)
	}
	return b.String()
}

// Ready reports whether a server render can be attempted.
func (s Snapshot) Ready() bool {
	if !s.ServerView || s.RowCount == 0 {
		return false
	}
	if s.RowIndex < 0 || s.RowIndex >= s.RowCount {
		return false
	}
	return s.Params.Validate() == nil
}
