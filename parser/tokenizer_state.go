package parser

import "fmt"

type tokenizerState uint

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
)

var tokenizerStateNames = [...]string{
	dataState:                                 "data",
	rcDataState:                               "rcdata",
	rawTextState:                              "rawtext",
	scriptDataState:                           "script data",
	plaintextState:                            "plaintext",
	tagOpenState:                              "tag open",
	endTagOpenState:                           "end tag open",
	tagNameState:                              "tag name",
	rcDataLessThanSignState:                   "rcdata less-than sign",
	rcDataEndTagOpenState:                     "rcdata end tag open",
	rcDataEndTagNameState:                     "rcdata end tag name",
	rawTextLessThanSignState:                  "rawtext less-than sign",
	rawTextEndTagOpenState:                    "rawtext end tag open",
	rawTextEndTagNameState:                    "rawtext end tag name",
	scriptDataLessThanSignState:               "script data less-than sign",
	scriptDataEndTagOpenState:                 "script data end tag open",
	scriptDataEndTagNameState:                 "script data end tag name",
	scriptDataEscapeStartState:                "script data escape start",
	scriptDataEscapeStartDashState:            "script data escape start dash",
	scriptDataEscapedState:                    "script data escaped",
	scriptDataEscapedDashState:                "script data escaped dash",
	scriptDataEscapedDashDashState:            "script data escaped dash dash",
	scriptDataEscapedLessThanSignState:        "script data escaped less-than sign",
	scriptDataEscapedEndTagOpenState:          "script data escaped end tag open",
	scriptDataEscapedEndTagNameState:          "script data escaped end tag name",
	scriptDataDoubleEscapeStartState:          "script data double escape start",
	scriptDataDoubleEscapedState:              "script data double escaped",
	scriptDataDoubleEscapedDashState:          "script data double escaped dash",
	scriptDataDoubleEscapedDashDashState:      "script data double escaped dash dash",
	scriptDataDoubleEscapedLessThanSignState:  "script data double escaped less-than sign",
	scriptDataDoubleEscapeEndState:            "script data double escape end",
	beforeAttributeNameState:                  "before attribute name",
	attributeNameState:                        "attribute name",
	afterAttributeNameState:                   "after attribute name",
	beforeAttributeValueState:                 "before attribute value",
	attributeValueDoubleQuotedState:           "attribute value (double-quoted)",
	attributeValueSingleQuotedState:           "attribute value (single-quoted)",
	attributeValueUnquotedState:               "attribute value (unquoted)",
	afterAttributeValueQuotedState:            "after attribute value (quoted)",
	selfClosingStartTagState:                  "self-closing start tag",
	bogusCommentState:                         "bogus comment",
	markupDeclarationOpenState:                "markup declaration open",
	commentStartState:                         "comment start",
	commentStartDashState:                     "comment start dash",
	commentState:                              "comment",
	commentEndDashState:                       "comment end dash",
	commentEndState:                           "comment end",
	commentEndBangState:                       "comment end bang",
	doctypeState:                              "DOCTYPE",
	beforeDoctypeNameState:                    "before DOCTYPE name",
	doctypeNameState:                          "DOCTYPE name",
	afterDoctypeNameState:                     "after DOCTYPE name",
	afterDoctypePublicKeywordState:            "after DOCTYPE public keyword",
	beforeDoctypePublicIdentifierState:        "before DOCTYPE public identifier",
	doctypePublicIdentifierDoubleQuotedState:  "DOCTYPE public identifier (double-quoted)",
	doctypePublicIdentifierSingleQuotedState:  "DOCTYPE public identifier (single-quoted)",
	afterDoctypePublicIdentifierState:         "after DOCTYPE public identifier",
	betweenDoctypePublicAndSystemIdentifiersState: "between DOCTYPE public and system identifiers",
	afterDoctypeSystemKeywordState:            "after DOCTYPE system keyword",
	beforeDoctypeSystemIdentifierState:        "before DOCTYPE system identifier",
	doctypeSystemIdentifierDoubleQuotedState:  "DOCTYPE system identifier (double-quoted)",
	doctypeSystemIdentifierSingleQuotedState:  "DOCTYPE system identifier (single-quoted)",
	afterDoctypeSystemIdentifierState:         "after DOCTYPE system identifier",
	bogusDoctypeState:                         "bogus DOCTYPE",
	cdataSectionState:                         "CDATA section",
}

func (s tokenizerState) String() string {
	if int(s) < len(tokenizerStateNames) {
		return tokenizerStateNames[s]
	}
	return fmt.Sprintf("tokenizerState(%d)", s)
}

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case rcDataState:
		return p.rcDataStateParser
	case rawTextState:
		return p.rawTextStateParser
	case scriptDataState:
		return p.scriptDataStateParser
	case plaintextState:
		return p.plaintextStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case rcDataLessThanSignState:
		return p.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return p.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return p.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return p.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return p.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return p.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return p.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return p.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return p.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return p.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return p.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return p.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return p.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return p.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return p.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return p.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return p.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return p.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return p.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return p.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case commentEndBangState:
		return p.commentEndBangStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case afterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return p.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return p.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return p.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	case cdataSectionState:
		return p.cdataSectionStateParser
	}
	panic(fmt.Sprintf("tokenizer: no handler for state %s", state))
}
