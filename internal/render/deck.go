package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/format"
	"github.com/elephantfactory/promogen/internal/theme"
)

// Single-slide pptx written directly as an OOXML package. The part set is the
// minimum PowerPoint accepts: content types, package rels, presentation,
// one master, one layout, one theme, one slide. Coordinates are EMU.

const emuPerInch = 914400

type deckGeom struct {
	w, h      int64 // slide size, EMU
	headerH   int64
	footerH   int64
	titleY    int64
	titleSize int // hundredths of a point
	bodyY     int64
	lineH     int64
	bodySize  int
	maxLines  int
}

func deckGeomFor(p constants.Profile) (deckGeom, error) {
	sz, ok := constants.ProfileSlideSize(p)
	if !ok {
		return deckGeom{}, fmt.Errorf("%w: profile %q", common.ErrInvalidInput, p)
	}
	w := int64(sz.Width * emuPerInch)
	h := int64(sz.Height * emuPerInch)
	g := deckGeom{
		w:         w,
		h:         h,
		headerH:   h * 15 / 100,
		footerH:   h * 5 / 100,
		titleY:    h * 18 / 100,
		titleSize: 4400,
		bodyY:     h * 34 / 100,
		lineH:     h * 6 / 100,
		bodySize:  2000,
		maxLines:  10,
	}
	if p == constants.ProfileA4 {
		g.titleSize = 5400
		g.bodySize = 2400
	}
	return g, nil
}

// RenderDeck builds a one-slide pptx for the given title and content lines.
func RenderDeck(title string, lines []format.Line, profile constants.Profile, th theme.Theme) ([]byte, error) {
	g, err := deckGeomFor(profile)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	hasLogo := th.Logo != nil && th.Logo.Format != ""
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", deckContentTypes(hasLogo, logoExt(th.Logo))},
		{"_rels/.rels", []byte(deckRootRels)},
		{"ppt/presentation.xml", deckPresentation(g)},
		{"ppt/_rels/presentation.xml.rels", []byte(deckPresentationRels)},
		{"ppt/slideMasters/slideMaster1.xml", []byte(deckSlideMaster)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(deckSlideMasterRels)},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(deckSlideLayout)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", []byte(deckSlideLayoutRels)},
		{"ppt/theme/theme1.xml", []byte(deckTheme)},
		{"ppt/slides/slide1.xml", deckSlide(g, th, title, lines, hasLogo)},
		{"ppt/slides/_rels/slide1.xml.rels", deckSlideRels(hasLogo, logoExt(th.Logo))},
	}
	if hasLogo {
		parts = append(parts, struct {
			name string
			data []byte
		}{"ppt/media/image1." + logoExt(th.Logo), th.Logo.Data})
	}

	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create part %s: %w", p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return nil, fmt.Errorf("write part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close pptx: %w", err)
	}
	return buf.Bytes(), nil
}

func logoExt(l *theme.Logo) string {
	if l == nil {
		return ""
	}
	if l.Format == "jpeg" {
		return "jpeg"
	}
	return "png"
}

func deckContentTypes(hasLogo bool, ext string) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	if hasLogo {
		ct := "image/png"
		if ext == "jpeg" {
			ct = "image/jpeg"
		}
		fmt.Fprintf(&b, `<Default Extension=%q ContentType=%q/>`, ext, ct)
	}
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slides/slide1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

const deckRootRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/></Relationships>`

func deckPresentation(g deckGeom) []byte {
	return []byte(fmt.Sprintf(xml.Header+`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst><p:sldIdLst><p:sldId id="256" r:id="rId2"/></p:sldIdLst><p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/></p:presentation>`, g.w, g.h, g.h, g.w))
}

const deckPresentationRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/><Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/></Relationships>`

const deckSlideMaster = xml.Header + `<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`

const deckSlideMasterRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/></Relationships>`

const deckSlideLayout = xml.Header + `<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld></p:sldLayout>`

const deckSlideLayoutRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/></Relationships>`

const deckTheme = xml.Header + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office"><a:themeElements><a:clrScheme name="Office"><a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2><a:accent1><a:srgbClr val="2B9FD9"/></a:accent1><a:accent2><a:srgbClr val="FF6B6B"/></a:accent2><a:accent3><a:srgbClr val="FFD700"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4><a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6><a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink></a:clrScheme><a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface="맑은 고딕"/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface="맑은 고딕"/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="Office"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst><a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`

func deckSlideRels(hasLogo bool, ext string) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if hasLogo {
		fmt.Fprintf(&b, `<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image1.%s"/>`, ext)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

func deckSlide(g deckGeom, th theme.Theme, title string, lines []format.Line, hasLogo bool) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	id := 2

	// Header and footer bands.
	writeRectShape(&b, id, "header", 0, 0, g.w, g.headerH, hex(th.BrandColor))
	id++
	writeRectShape(&b, id, "footer", 0, g.h-g.footerH, g.w, g.footerH, hex(th.AccentColor))
	id++

	if hasLogo {
		logoW := g.w / 5
		logoH := g.headerH * 7 / 10
		writeLogoShape(&b, id, g.w/40, (g.headerH-logoH)/2, logoW, logoH)
		id++
	}

	writeTextShape(&b, id, "title", g.w/20, g.titleY, g.w*9/10, g.lineH*2,
		[]deckPara{{text: truncateRunes(stripDecorations(title), 50), size: g.titleSize, bold: true, color: hex(th.TextColor), center: true}})
	id++

	paras := make([]deckPara, 0, g.maxLines)
	for _, line := range lines {
		if len(paras) >= g.maxLines {
			break
		}
		if line.Text == "" {
			paras = append(paras, deckPara{size: g.bodySize})
			continue
		}
		p := deckPara{
			text:  truncateRunes(line.Body(), 60),
			size:  g.bodySize,
			color: hex(th.TextColor),
		}
		if line.Class != format.EmphasisPlain {
			p.bold = true
		}
		paras = append(paras, p)
	}
	writeTextShape(&b, id, "content", g.w/20, g.bodyY, g.w*9/10, g.h-g.bodyY-g.footerH, paras)

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr></p:sld>`)
	return []byte(b.String())
}

type deckPara struct {
	text   string
	size   int
	bold   bool
	color  string
	center bool
}

func writeRectShape(b *strings.Builder, id int, name string, x, y, w, h int64, color string) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name=%q/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:solidFill><a:srgbClr val=%q/></a:solidFill><a:ln><a:noFill/></a:ln></p:spPr><p:txBody><a:bodyPr/><a:p/></p:txBody></p:sp>`,
		id, name, x, y, w, h, color)
}

func writeLogoShape(b *strings.Builder, id int, x, y, w, h int64) {
	fmt.Fprintf(b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="logo"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, x, y, w, h)
}

func writeTextShape(b *strings.Builder, id int, name string, x, y, w, h int64, paras []deckPara) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name=%q/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr/></p:nvSpPr><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr><p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr>`,
		id, name, x, y, w, h)
	for _, p := range paras {
		b.WriteString(`<a:p>`)
		if p.center {
			b.WriteString(`<a:pPr algn="ctr"/>`)
		}
		if p.text != "" {
			bold := ""
			if p.bold {
				bold = ` b="1"`
			}
			var esc bytes.Buffer
			xml.EscapeText(&esc, []byte(p.text))
			fmt.Fprintf(b, `<a:r><a:rPr lang="ko-KR" sz="%d"%s dirty="0"><a:solidFill><a:srgbClr val=%q/></a:solidFill></a:rPr><a:t>%s</a:t></a:r>`,
				p.size, bold, p.color, esc.String())
		} else {
			fmt.Fprintf(b, `<a:endParaRPr sz="%d"/>`, p.size)
		}
		b.WriteString(`</a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

// hex strips the leading # for use in srgbClr values.
func hex(c string) string {
	return strings.TrimPrefix(c, "#")
}
