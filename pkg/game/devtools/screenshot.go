package devtools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"delving/pkg/game/biome"
	"delving/pkg/game/renderer"
)

// htmlColors maps render styles to CSS colours
var htmlColors = map[renderer.TextStyle]string{
	renderer.StyleWall:      "#777",
	renderer.StyleRock:      "#ddd",
	renderer.StyleFloor:     "#444",
	renderer.StyleWood:      "#b8860b",
	renderer.StyleGrass:     "#3c3",
	renderer.StyleRoad:      "#ee4",
	renderer.StyleWater:     "#4cc",
	renderer.StyleDeepWater: "#36f",
	renderer.StyleStairs:    "#fff",
	renderer.StylePlayer:    "#0f0",
	renderer.StyleMonster:   "#f44",
	renderer.StyleItem:      "#bb86fc",
	renderer.StyleTrap:      "#c33",
	renderer.StyleDoor:      "#fc0",
	renderer.StyleSubtle:    "#555",
	renderer.StyleStatus:    "#bb86fc",
}

// htmlStyler renders styled text as coloured spans
type htmlStyler struct{}

func (htmlStyler) Init() {}

func (htmlStyler) Clear(w io.Writer) {}

func (htmlStyler) StyleText(text string, style renderer.TextStyle) string {
	c, ok := htmlColors[style]
	if !ok {
		return html.EscapeString(text)
	}
	return fmt.Sprintf(`<span style="color:%s">%s</span>`, c, html.EscapeString(text))
}

// WriteScreenshotHTML writes a fully revealed level as a standalone HTML page
func WriteScreenshotHTML(w io.Writer, level *biome.Level) error {
	var page strings.Builder

	page.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>`)
	page.WriteString(html.EscapeString(level.Name))
	page.WriteString(`</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            line-height: 1.1;
        }
    </style>
</head>
<body>
`)
	fmt.Fprintf(&page, "<div class=\"header\">%s (depth %d, seed %d)</div>\n",
		html.EscapeString(level.Name), level.Depth, level.Seed)
	page.WriteString("<pre class=\"map-container\">")

	err := renderer.Render(&page, level.Map, renderer.Options{
		Player:   &level.Start,
		Spawns:   level.Spawns,
		ShowAll:  true,
		Renderer: htmlStyler{},
	})
	if err != nil {
		return err
	}

	page.WriteString("</pre>\n</body>\n</html>\n")
	_, err = io.WriteString(w, page.String())
	return err
}

// SaveScreenshotHTML writes the page to path
func SaveScreenshotHTML(path string, level *biome.Level) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteScreenshotHTML(f, level); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
