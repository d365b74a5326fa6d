package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color bool
	// Width limits the display width of quoted token text; 0 means unlimited.
	Width int
}

type palette struct {
	kind, text, pos, dim, err, warn, info *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		kind: color.New(color.FgCyan, color.Bold),
		text: color.New(color.FgGreen),
		pos:  color.New(color.FgHiBlack),
		dim:  color.New(color.Faint),
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgBlue, color.Bold),
	}
	for _, c := range []*color.Color{p.kind, p.text, p.pos, p.dim, p.err, p.warn, p.info} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (o PrettyOpts) quote(s string) string {
	q := strconv.Quote(s)
	if o.Width > 0 && runewidth.StringWidth(q) > o.Width {
		q = runewidth.Truncate(q, o.Width, "…")
	}
	return q
}

// Pretty prints f as an indented tree followed by its diagnostics.
//
//	score.ly
//	├─ Music "{" 1:1
//	│  ├─ Note "c" 1:3 dur 4
//	│  └─ Token "}" 1:6
//	└─ Comment "% end" 2:1
func Pretty(w io.Writer, f File, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	p := newPalette(opts.Color)

	header := f.Path
	if header == "" {
		header = "<input>"
	}
	fmt.Fprintln(bw, p.kind.Sprint(header))
	prettyNodes(bw, f.Items, "", opts, p)
	fmt.Fprintln(bw, p.dim.Sprint(f.Stats.String()))
	if len(f.Diagnostics) > 0 {
		prettyDiagnostics(bw, f.Diagnostics, p)
	}
	return bw.Flush()
}

func prettyNodes(w io.Writer, nodes []Node, indent string, opts PrettyOpts, p palette) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprint(w, indent, branch, p.kind.Sprint(n.Kind))
		if n.Simultaneous {
			fmt.Fprint(w, p.dim.Sprint(" simultaneous"))
		}
		if n.Text != "" {
			fmt.Fprint(w, " ", p.text.Sprint(opts.quote(n.Text)))
		}
		if n.Pos.Line > 0 {
			fmt.Fprint(w, " ", p.pos.Sprintf("%d:%d", n.Pos.Line, n.Pos.Col))
		}
		if n.Duration != "" {
			fmt.Fprint(w, " ", p.dim.Sprint("dur"), " ", n.Duration)
		}
		if n.Value != nil {
			fmt.Fprint(w, " ", p.dim.Sprint("value"), " ", p.text.Sprint(opts.quote(*n.Value)))
		}
		if len(n.Tokens) > 0 && n.Value == nil {
			fmt.Fprint(w, " ", p.dim.Sprintf("+%d tokens", len(n.Tokens)))
		}
		fmt.Fprintln(w)
		prettyNodes(w, n.Children, indent+next, opts, p)
	}
}

// Diagnostics prints one line per diagnostic:
// path:line:col: SEV CODE: message, with notes indented below.
func Diagnostics(w io.Writer, diags []DiagNode, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	prettyDiagnostics(bw, diags, newPalette(opts.Color))
	return bw.Flush()
}

func prettyDiagnostics(w io.Writer, diags []DiagNode, p palette) {
	for _, d := range diags {
		sev := p.info
		switch d.Severity {
		case "ERROR":
			sev = p.err
		case "WARNING":
			sev = p.warn
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", location(d.Path, d.Pos), sev.Sprint(d.Severity), d.Code, d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.dim.Sprint("note:"), location(n.Path, n.Pos), n.Message)
		}
	}
}

func location(path string, pos Pos) string {
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
}
