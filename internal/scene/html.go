package scene

import (
	"bytes"
	"html/template"
	"io"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
body{background:#f8fafc;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif}
header{padding:12px 24px;border-bottom:1px solid #e5e7eb;background:#fff;font-size:14px}
header b{font-weight:800}
#canvas{padding:16px}
#tooltip{position:fixed;display:none;pointer-events:none;background:#111827;color:#fff;font-size:12px;padding:6px 10px;border-radius:6px}
</style>
</head>
<body>
<header><b>{{.Title}}</b> · {{.Nodes}} nodes · {{.Edges}} links</header>
<div id="canvas">{{.SVG}}</div>
<div id="tooltip"></div>
<script>
"use strict";
const tip=document.getElementById('tooltip');
document.querySelectorAll('[data-node]').forEach(g=>{
  const label=g.querySelector('title').textContent;
  g.addEventListener('mousemove',e=>{tip.textContent=label;tip.style.display='block';tip.style.left=(e.clientX+12)+'px';tip.style.top=(e.clientY+12)+'px'});
  g.addEventListener('mouseleave',()=>{tip.style.display='none'});
});
</script>
</body>
</html>
`))

// WriteHTML writes sc as a self-contained page around its SVG, with hover
// tooltips carrying the full node labels.
func WriteHTML(w io.Writer, sc Scene, title string) error {
	var svg bytes.Buffer
	if err := WriteSVG(&svg, sc); err != nil {
		return err
	}
	return pageTmpl.Execute(w, struct {
		Title string
		SVG   template.HTML
		Nodes int
		Edges int
	}{title, template.HTML(svg.String()), len(sc.Nodes), len(sc.Edges)})
}
