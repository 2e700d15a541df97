package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func doctype(name, public, system string) *Token {
	return &Token{
		TokenType:           DocTypeToken,
		TagName:             name,
		PublicIdentifier:    public,
		SystemIdentifier:    system,
		HasPublicIdentifier: public != "",
		HasSystemIdentifier: system != "",
	}
}

func TestDoctypeQuirksMode(t *testing.T) {
	t.Parallel()
	forced := doctype("html", "", "")
	forced.ForceQuirks = true

	tests := []struct {
		name  string
		token *Token
		want  quirksMode
	}{
		{"html5", doctype("html", "", ""), noQuirks},
		{"legacy compat", doctype("html", "", "about:legacy-compat"), noQuirks},
		{"force quirks", forced, quirks},
		{"other name", doctype("svg", "", ""), quirks},
		{"html public id", doctype("html", "HTML", ""), quirks},
		{"known prefix", doctype("html", "-//IETF//DTD HTML 2.0//EN", ""), quirks},
		{"exact w3o", doctype("html", "-//W3O//DTD W3 HTML Strict 3.0//EN//", ""), quirks},
		{"ibm system id", doctype("html", "", "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"), quirks},
		{"transitional without system", doctype("html", "-//W3C//DTD HTML 4.01 Transitional//EN", ""), quirks},
		{"transitional with system", doctype("html", "-//W3C//DTD HTML 4.01 Transitional//EN", "http://www.w3.org/TR/html4/loose.dtd"), limitedQuirks},
		{"xhtml frameset", doctype("html", "-//W3C//DTD XHTML 1.0 Frameset//EN", ""), limitedQuirks},
		{"strict", doctype("html", "-//W3C//DTD HTML 4.01//EN", "http://www.w3.org/TR/html4/strict.dtd"), noQuirks},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, doctypeQuirksMode(tt.token))
		})
	}
}

func TestIsConformingDoctype(t *testing.T) {
	t.Parallel()
	assert.True(t, isConformingDoctype(doctype("html", "", "")))
	assert.True(t, isConformingDoctype(doctype("html", "", "about:legacy-compat")))
	assert.False(t, isConformingDoctype(doctype("html", "-//W3C//DTD HTML 4.01//EN", "")))
	assert.False(t, isConformingDoctype(doctype("xhtml", "", "")))
}
