package parser

import (
	"golang.org/x/net/html/atom"

	"github.com/heathj/html5parse/parser/tree"
)

// svgTagNames restores the case of SVG element names the tokenizer lowered.
var svgTagNames = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

var svgAttributeNames = map[string]string{
	"attributename":             "attributeName",
	"attributetype":             "attributeType",
	"basefrequency":             "baseFrequency",
	"baseprofile":               "baseProfile",
	"calcmode":                  "calcMode",
	"clippathunits":             "clipPathUnits",
	"contentscripttype":         "contentScriptType",
	"contentstyletype":          "contentStyleType",
	"diffuseconstant":           "diffuseConstant",
	"edgemode":                  "edgeMode",
	"externalresourcesrequired": "externalResourcesRequired",
	"filterres":                 "filterRes",
	"filterunits":               "filterUnits",
	"glyphref":                  "glyphRef",
	"gradienttransform":         "gradientTransform",
	"gradientunits":             "gradientUnits",
	"kernelmatrix":              "kernelMatrix",
	"kernelunitlength":          "kernelUnitLength",
	"keypoints":                 "keyPoints",
	"keysplines":                "keySplines",
	"keytimes":                  "keyTimes",
	"lengthadjust":              "lengthAdjust",
	"limitingconeangle":         "limitingConeAngle",
	"markerheight":              "markerHeight",
	"markerunits":               "markerUnits",
	"markerwidth":               "markerWidth",
	"maskcontentunits":          "maskContentUnits",
	"maskunits":                 "maskUnits",
	"numoctaves":                "numOctaves",
	"pathlength":                "pathLength",
	"patterncontentunits":       "patternContentUnits",
	"patterntransform":          "patternTransform",
	"patternunits":              "patternUnits",
	"pointsatx":                 "pointsAtX",
	"pointsaty":                 "pointsAtY",
	"pointsatz":                 "pointsAtZ",
	"preservealpha":             "preserveAlpha",
	"preserveaspectratio":       "preserveAspectRatio",
	"primitiveunits":            "primitiveUnits",
	"refx":                      "refX",
	"refy":                      "refY",
	"repeatcount":               "repeatCount",
	"repeatdur":                 "repeatDur",
	"requiredextensions":        "requiredExtensions",
	"requiredfeatures":          "requiredFeatures",
	"specularconstant":          "specularConstant",
	"specularexponent":          "specularExponent",
	"spreadmethod":              "spreadMethod",
	"startoffset":               "startOffset",
	"stddeviation":              "stdDeviation",
	"stitchtiles":               "stitchTiles",
	"surfacescale":              "surfaceScale",
	"systemlanguage":            "systemLanguage",
	"tablevalues":               "tableValues",
	"targetx":                   "targetX",
	"targety":                   "targetY",
	"textlength":                "textLength",
	"viewbox":                   "viewBox",
	"viewtarget":                "viewTarget",
	"xchannelselector":          "xChannelSelector",
	"ychannelselector":          "yChannelSelector",
	"zoomandpan":                "zoomAndPan",
}

type foreignAttribute struct {
	ns        tree.Namespace
	localName string
}

var foreignAttributes = map[string]foreignAttribute{
	"xlink:actuate": {tree.XLink, "actuate"},
	"xlink:arcrole": {tree.XLink, "arcrole"},
	"xlink:href":    {tree.XLink, "href"},
	"xlink:role":    {tree.XLink, "role"},
	"xlink:show":    {tree.XLink, "show"},
	"xlink:title":   {tree.XLink, "title"},
	"xlink:type":    {tree.XLink, "type"},
	"xml:lang":      {tree.XML, "lang"},
	"xml:space":     {tree.XML, "space"},
	"xmlns":         {tree.XMLNS, "xmlns"},
	"xmlns:xlink":   {tree.XMLNS, "xlink"},
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-svg-attributes
func adjustSVGAttributes(t *Token) {
	for i, attr := range t.Attributes {
		if name, ok := svgAttributeNames[attr.Key]; ok {
			t.Attributes[i].Key = name
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-mathml-attributes
func adjustMathMLAttributes(t *Token) {
	for i, attr := range t.Attributes {
		if attr.Key == "definitionurl" {
			t.Attributes[i].Key = "definitionURL"
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-foreign-attributes
func adjustForeignAttributes(t *Token) {
	for i, attr := range t.Attributes {
		if fa, ok := foreignAttributes[attr.Key]; ok {
			t.Attributes[i].Namespace = fa.ns
			t.Attributes[i].Key = fa.localName
		}
	}
}

func adjustSVGTagName(t *Token) {
	if name, ok := svgTagNames[t.TagName]; ok {
		t.TagName = name
		t.Atom = atom.Lookup([]byte(name))
	}
}

// breakoutElements end foreign content when they appear as start tags.
var breakoutElements = newNameSet(
	"b", "big", "blockquote", "body", "br", "center", "code", "dd", "div",
	"dl", "dt", "em", "embed", "h1", "h2", "h3", "h4", "h5", "h6", "head",
	"hr", "i", "img", "li", "listing", "menu", "meta", "nobr", "ol", "p",
	"pre", "ruby", "s", "small", "span", "strong", "strike", "sub", "sup",
	"table", "tt", "u", "ul", "var",
)

// isForeignBreakout reports whether a start tag ends foreign content.
func isForeignBreakout(t *Token) bool {
	if breakoutElements.has(t.TagName) {
		return true
	}
	if t.TagName != "font" {
		return false
	}
	return t.Attributes.Has("color") || t.Attributes.Has("face") || t.Attributes.Has("size")
}
