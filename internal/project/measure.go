package project

import (
	"bytes"
	"encoding/xml"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kode4food/flagstaff/pkg/api"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

func measureCostumes(p *api.Project, assets Assets) {
	for _, t := range p.Targets {
		for _, c := range t.Costumes {
			data, ok := assets[c.FullName]
			if !ok {
				continue
			}
			w, h, ok := measure(c, data)
			if !ok {
				slog.Debug("Costume size unknown",
					slog.String("target", t.Name),
					slog.String("costume", c.Name))
				continue
			}
			c.Width, c.Height = w, h
		}
	}
}

func measure(c *api.Costume, data []byte) (float64, float64, bool) {
	if isVector(c) {
		return svgSize(data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	return float64(cfg.Width), float64(cfg.Height), true
}

func isVector(c *api.Costume) bool {
	return strings.EqualFold(c.DataFormat, "svg")
}

// svgSize reads the root element's width and height, falling back to its
// viewBox
func svgSize(data []byte) (float64, float64, bool) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, 0, false
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if el.Name.Local != "svg" {
			return 0, 0, false
		}
		return svgAttrSize(el.Attr)
	}
}

func svgAttrSize(attrs []xml.Attr) (float64, float64, bool) {
	var w, h float64
	var wOK, hOK bool
	var viewBox string
	for _, a := range attrs {
		switch a.Name.Local {
		case "width":
			w, wOK = svgLength(a.Value)
		case "height":
			h, hOK = svgLength(a.Value)
		case "viewBox":
			viewBox = a.Value
		}
	}
	if wOK && hOK {
		return w, h, true
	}
	parts := strings.Fields(strings.ReplaceAll(viewBox, ",", " "))
	if len(parts) != 4 {
		return 0, 0, false
	}
	vw, err1 := strconv.ParseFloat(parts[2], 64)
	vh, err2 := strconv.ParseFloat(parts[3], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return vw, vh, true
}

func svgLength(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}
