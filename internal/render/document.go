package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
)

const svgNS = "http://www.w3.org/2000/svg"

// Document is an in-memory SVG surface. Paths are <path> elements under the
// root <svg>; the cursor is exposed as the --x/--y custom properties of the
// root style.
type Document struct {
	doc    *etree.Document
	root   *etree.Element
	bounds Bounds
	class  string
}

// NewDocument creates an empty SVG surface of the given size.
func NewDocument(width, height float64) *Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNS)

	d := &Document{doc: doc, root: root, class: "a__line js-line"}
	d.SetSize(width, height)
	d.SetCursor(0, 0)
	return d
}

// SetOrigin moves the surface box within the host.
func (d *Document) SetOrigin(left, top float64) {
	d.bounds.Left = left
	d.bounds.Top = top
}

// SetSize resizes the surface. Callers resize the driver afterwards.
func (d *Document) SetSize(width, height float64) {
	d.bounds.Width = width
	d.bounds.Height = height
	w := formatNum(width)
	h := formatNum(height)
	d.root.CreateAttr("width", w)
	d.root.CreateAttr("height", h)
	d.root.CreateAttr("viewBox", "0 0 "+w+" "+h)
}

// Style sets the default stroke applied to every line.
func (d *Document) Style(stroke string, width float64) {
	d.root.CreateAttr("fill", "none")
	d.root.CreateAttr("stroke", stroke)
	d.root.CreateAttr("stroke-width", formatNum(width))
}

func (d *Document) Bounds() Bounds { return d.bounds }

func (d *Document) NewPath() Path {
	el := d.root.CreateElement("path")
	el.CreateAttr("class", d.class)
	return &docPath{el: el}
}

func (d *Document) SetCursor(x, y float64) {
	d.root.CreateAttr("style", fmt.Sprintf("--x: %spx; --y: %spx", formatNum(x), formatNum(y)))
}

// Paths returns the current path data in document order.
func (d *Document) Paths() []string {
	els := d.root.SelectElements("path")
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.SelectAttrValue("d", "")
	}
	return out
}

// CursorStyle returns the raw style attribute holding --x/--y.
func (d *Document) CursorStyle() string {
	return d.root.SelectAttrValue("style", "")
}

func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.doc.Indent(2)
	return d.doc.WriteTo(w)
}

func (d *Document) String() string {
	d.doc.Indent(2)
	s, err := d.doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

type docPath struct {
	el *etree.Element
}

func (p *docPath) SetD(s string) {
	p.el.CreateAttr("d", s)
}

func (p *docPath) Remove() {
	if parent := p.el.Parent(); parent != nil {
		parent.RemoveChild(p.el)
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(Round1(v), 'f', -1, 64)
}
