package parser

import "strings"

const w30DTDW3HTMLStrict3En string = "-//w3o//dtd w3 html strict 3.0//en//"
const w3cDTDHTML4TransitionalEN string = "-/w3c/dtd html 4.0 transitional/en"
const htmlString string = "html"
const ibmxhtml string = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

const silmarilDTDHTMLPro string = "+//silmaril//dtd html pro v0r11 19970101//"
const dTDHTML3asWedit string = "-//as//dtd html 3.0 aswedit + extensions//"
const advaSoftDTDHTML3 string = "-//advasoft ltd//dtd html 3.0 aswedit + extensions//"
const iETFDTDHTML2Level1 string = "-//ietf//dtd html 2.0 level 1//"
const iETFDTDHTML2Level2 string = "-//ietf//dtd html 2.0 level 2//"
const iETFDTDHTML2StrictLevel1 string = "-//ietf//dtd html 2.0 strict level 1//"
const iETFDTDHTML2StrictLevel2 string = "-//ietf//dtd html 2.0 strict level 2//"
const iETFDTDHTML2Strict string = "-//ietf//dtd html 2.0 strict//"
const iETFDTDHTML2 string = "-//ietf//dtd html 2.0//"
const iIETFDTDHTML2E string = "-//ietf//dtd html 2.1e//"
const iETFDTDHTML30 string = "-//ietf//dtd html 3.0//"
const iETFDTDHTML32Final string = "-//ietf//dtd html 3.2 final//"
const iETFDTDHTML32 string = "-//ietf//dtd html 3.2//"
const iETFDTDHTML3 string = "-//ietf//dtd html 3//"
const iETFDTDHTMLLevel0 string = "-//ietf//dtd html level 0//"
const iETFDTDHTMLLevel1 string = "-//ietf//dtd html level 1//"
const iETFDTDHTMLLevel2 string = "-//ietf//dtd html level 2//"
const iETFDTDHTMLLevel3 string = "-//ietf//dtd html level 3//"
const iETFDTDHTMLStrictLevel0 string = "-//ietf//dtd html strict level 0//"
const iETFDTDHTMLStrictLevel1 string = "-//ietf//dtd html strict level 1//"
const iETFDTDHTMLStrictLevel2 string = "-//ietf//dtd html strict level 2//"
const iETFDTDHTMLStrictLevel3 string = "-//ietf//dtd html strict level 3//"
const iETFDTDHTMLStrict string = "-//ietf//dtd html strict//"
const iETFDTDHTML string = "-//ietf//dtd html//"
const metriusDTDMetriusPresentational string = "-//metrius//dtd metrius presentational//"
const microsoftDTDInternetExplorer2HTMLStrict string = "-//microsoft//dtd internet explorer 2.0 html strict//"
const microsoftDTDInternetExplorer2HTML string = "-//microsoft//dtd internet explorer 2.0 html//"
const microsoftDTDInternetExplorer2Tables string = "-//microsoft//dtd internet explorer 2.0 tables//"
const microsoftDTDInternetExplorer3HTMLStrict string = "-//microsoft//dtd internet explorer 3.0 html strict//"
const microsoftDTDInternetExplorer3HTML string = "-//microsoft//dtd internet explorer 3.0 html//"
const microsoftDTDInternetExplorer3Tables string = "-//microsoft//dtd internet explorer 3.0 tables//"
const netscapeCommCorpDTDHTML string = "-//netscape comm. corp.//dtd html//"
const netscapeCommCorpDTDStrictHTML string = "-//netscape comm. corp.//dtd strict html//"
const oReillyAssociatesDTDHTML2 string = "-//o'reilly and associates//dtd html 2.0//"
const oReillyAssociatesDTDHTMLExtended1 string = "-//o'reilly and associates//dtd html extended 1.0//"
const oReillyAssociatesDTDHTMLExtendedRelaxed1 string = "-//o'reilly and associates//dtd html extended relaxed 1.0//"
const sQDTDHTML2HoTMetaLExtensions string = "-//sq//dtd html 2.0 hotmetal + extensions//"
const softQuadSoftwareDTDHoTMetaLPRO string = "-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//"
const softQuadDTDHoTMetaLPRO string = "-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//"
const spyglassDTDHTML2Extended string = "-//spyglass//dtd html 2.0 extended//"
const sunMicrosystemsCorpDTDHotJavaHTML string = "-//sun microsystems corp.//dtd hotjava html//"
const sunMicrosystemsCorpDTDHotJavaStrictHTML string = "-//sun microsystems corp.//dtd hotjava strict html//"
const w3cDTDHTML31 string = "-//w3c//dtd html 3 1995-03-24//"
const w3cDTDHTML32Draft string = "-//w3c//dtd html 3.2 draft//"
const w3cDTDHTML32Final string = "-//w3c//dtd html 3.2 final//"
const w3cDTDHTML32 string = "-//w3c//dtd html 3.2//"
const w3cDTDHTML32SDraft string = "-//w3c//dtd html 3.2s draft//"
const w3cDTDHTML4Frameset string = "-//w3c//dtd html 4.0 frameset//"
const w3cDTDHTML4Transitional string = "-//w3c//dtd html 4.0 transitional//"
const w3cDTDHTML401Frameset string = "-//w3c//dtd html 4.01 frameset//"
const w3cDTDHTML401Transitional string = "-//w3c//dtd html 4.01 transitional//"
const w3cDTDHTMLExperimental1996 string = "-//w3c//dtd html experimental 19960712//"
const w3cDTDHTMLExperimental9704 string = "-//w3c//dtd html experimental 970421//"
const w3cDTDXHTML1Frameset string = "-//w3c//dtd xhtml 1.0 frameset//"
const w3cDTDXHTML1Transitional string = "-//w3c//dtd xhtml 1.0 transitional//"
const w3cDTDW3HTML string = "-//w3c//dtd w3 html//"
const w3cDTDW3HTML3 string = "-//w3o//dtd w3 html 3.0//"
const webTechsDTDMozillaHTML2 string = "-//webtechs//dtd mozilla html 2.0//"
const webTechsDTDMozillaHTML string = "-//webtechs//dtd mozilla html//"

// knownPublicIdentifiers are the public identifier prefixes that put the
// document in quirks mode.
var knownPublicIdentifiers = []string{
	silmarilDTDHTMLPro,
	dTDHTML3asWedit,
	advaSoftDTDHTML3,
	iETFDTDHTML2Level1,
	iETFDTDHTML2Level2,
	iETFDTDHTML2StrictLevel1,
	iETFDTDHTML2StrictLevel2,
	iETFDTDHTML2Strict,
	iETFDTDHTML2,
	iIETFDTDHTML2E,
	iETFDTDHTML30,
	iETFDTDHTML32Final,
	iETFDTDHTML32,
	iETFDTDHTML3,
	iETFDTDHTMLLevel0,
	iETFDTDHTMLLevel1,
	iETFDTDHTMLLevel2,
	iETFDTDHTMLLevel3,
	iETFDTDHTMLStrictLevel0,
	iETFDTDHTMLStrictLevel1,
	iETFDTDHTMLStrictLevel2,
	iETFDTDHTMLStrictLevel3,
	iETFDTDHTMLStrict,
	iETFDTDHTML,
	metriusDTDMetriusPresentational,
	microsoftDTDInternetExplorer2HTMLStrict,
	microsoftDTDInternetExplorer2HTML,
	microsoftDTDInternetExplorer2Tables,
	microsoftDTDInternetExplorer3HTMLStrict,
	microsoftDTDInternetExplorer3HTML,
	microsoftDTDInternetExplorer3Tables,
	netscapeCommCorpDTDHTML,
	netscapeCommCorpDTDStrictHTML,
	oReillyAssociatesDTDHTML2,
	oReillyAssociatesDTDHTMLExtended1,
	oReillyAssociatesDTDHTMLExtendedRelaxed1,
	sQDTDHTML2HoTMetaLExtensions,
	softQuadSoftwareDTDHoTMetaLPRO,
	softQuadDTDHoTMetaLPRO,
	spyglassDTDHTML2Extended,
	sunMicrosystemsCorpDTDHotJavaHTML,
	sunMicrosystemsCorpDTDHotJavaStrictHTML,
	w3cDTDHTML31,
	w3cDTDHTML32Draft,
	w3cDTDHTML32Final,
	w3cDTDHTML32,
	w3cDTDHTML32SDraft,
	w3cDTDHTML4Frameset,
	w3cDTDHTML4Transitional,
	w3cDTDHTMLExperimental1996,
	w3cDTDHTMLExperimental9704,
	w3cDTDW3HTML,
	w3cDTDW3HTML3,
	webTechsDTDMozillaHTML2,
	webTechsDTDMozillaHTML,
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// doctypeQuirksMode picks the document mode a DOCTYPE token selects.
// Identifiers are compared case-insensitively.
// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func doctypeQuirksMode(t *Token) quirksMode {
	publicID := strings.ToLower(t.PublicIdentifier)
	systemID := strings.ToLower(t.SystemIdentifier)

	if t.ForceQuirks || t.TagName != "html" {
		return quirks
	}
	switch publicID {
	case w30DTDW3HTMLStrict3En, w3cDTDHTML4TransitionalEN, htmlString:
		return quirks
	}
	if t.HasSystemIdentifier && systemID == ibmxhtml {
		return quirks
	}
	if hasAnyPrefix(publicID, knownPublicIdentifiers...) {
		return quirks
	}
	if !t.HasSystemIdentifier && hasAnyPrefix(publicID, w3cDTDHTML401Frameset, w3cDTDHTML401Transitional) {
		return quirks
	}

	if hasAnyPrefix(publicID, w3cDTDXHTML1Frameset, w3cDTDXHTML1Transitional) {
		return limitedQuirks
	}
	if t.HasSystemIdentifier && hasAnyPrefix(publicID, w3cDTDHTML401Frameset, w3cDTDHTML401Transitional) {
		return limitedQuirks
	}
	return noQuirks
}

// isConformingDoctype reports whether the DOCTYPE token is one of the
// forms that do not raise a parse error.
func isConformingDoctype(t *Token) bool {
	if t.TagName != "html" || t.HasPublicIdentifier {
		return false
	}
	return !t.HasSystemIdentifier || t.SystemIdentifier == "about:legacy-compat"
}
